package usecases_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samirrijal/bucketlist/internal/core/domain"
	"github.com/samirrijal/bucketlist/internal/core/usecases"
)

// --- Mock PresentationPublisher ---

type mockPublisher struct {
	mu      sync.Mutex
	effects []domain.Effect
	err     error
}

func (m *mockPublisher) PublishEffect(ctx context.Context, effect domain.Effect) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.effects = append(m.effects, effect)
	return m.err
}

// --- Tests ---

func TestViewService_InitialState(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewViewService(repo, nil, city.DefaultViewport())

	state := svc.State()
	if state.Selection.IsSome() {
		t.Error("expected no selection")
	}
	if state.Viewport != city.DefaultViewport() {
		t.Errorf("expected default viewport, got %+v", state.Viewport)
	}
}

func TestViewService_SelectPublishesEffects(t *testing.T) {
	city, repo := newOrleansRepo(t)
	pub := &mockPublisher{}
	svc := usecases.NewViewService(repo, pub, city.DefaultViewport())
	cafe := repo.catalog.All()[1]

	state, effects, err := svc.Select(context.Background(), cafe.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id, ok := state.Selection.Get(); !ok || id != cafe.ID {
		t.Errorf("expected selection %s, got %v", cafe.ID, state.Selection)
	}
	if len(pub.effects) != len(effects) || len(effects) != 2 {
		t.Fatalf("expected 2 published effects, got %d (returned %d)", len(pub.effects), len(effects))
	}
	if pub.effects[0].Kind != domain.EffectViewportChanged {
		t.Errorf("expected viewport_changed first, got %s", pub.effects[0].Kind)
	}
}

func TestViewService_PublishFailureKeepsTransition(t *testing.T) {
	city, repo := newOrleansRepo(t)
	pub := &mockPublisher{err: errors.New("nats down")}
	svc := usecases.NewViewService(repo, pub, city.DefaultViewport())
	cafe := repo.catalog.All()[1]

	if _, _, err := svc.Select(context.Background(), cafe.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.State().Selection.IsSome() {
		t.Error("expected selection despite publish failure")
	}
}

func TestViewService_SelectThenClear(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewViewService(repo, nil, city.DefaultViewport())
	cajun := repo.catalog.All()[3]

	focused, _, err := svc.Select(context.Background(), cajun.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cleared, _, err := svc.Clear(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared.Selection.IsSome() {
		t.Error("expected selection cleared")
	}
	if cleared.Viewport != focused.Viewport {
		t.Errorf("expected viewport unchanged, got %+v want %+v", cleared.Viewport, focused.Viewport)
	}
}

func TestViewService_UnknownSelection(t *testing.T) {
	city, repo := newOrleansRepo(t)
	pub := &mockPublisher{}
	svc := usecases.NewViewService(repo, pub, city.DefaultViewport())
	before := svc.State()

	state, effects, err := svc.Select(context.Background(), "unknown")
	if !errors.Is(err, domain.ErrUnknownSelection) {
		t.Fatalf("expected ErrUnknownSelection, got %v", err)
	}
	if state != before || svc.State() != before {
		t.Error("expected state unchanged")
	}
	if len(effects) != 0 || len(pub.effects) != 0 {
		t.Error("expected no effects")
	}
}

func TestViewService_NilEvent(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewViewService(repo, nil, city.DefaultViewport())

	if _, _, err := svc.Apply(context.Background(), nil); err == nil {
		t.Error("expected error for nil event")
	}
}

func TestViewService_ConcurrentEventsKeepValidSelection(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewViewService(repo, &mockPublisher{}, city.DefaultViewport())
	all := repo.catalog.All()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				_, _, _ = svc.Select(context.Background(), all[i%len(all)].ID)
			case 1:
				_, _, _ = svc.Clear(context.Background())
			default:
				_, _, _ = svc.Select(context.Background(), "bogus")
			}
		}(i)
	}
	wg.Wait()

	if id, ok := svc.State().Selection.Get(); ok {
		if _, found := repo.catalog.Get(id); !found {
			t.Errorf("selection %s not in catalog", id)
		}
	}
}

// --- Slow PresentationPublisher ---

type slowPublisher struct {
	delay   time.Duration
	started chan struct{}
	once    sync.Once
}

func (p *slowPublisher) PublishEffect(ctx context.Context, effect domain.Effect) error {
	p.once.Do(func() { close(p.started) })
	select {
	case <-time.After(p.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestViewService_StateNotBlockedByPublishing(t *testing.T) {
	city, repo := newOrleansRepo(t)
	pub := &slowPublisher{delay: 500 * time.Millisecond, started: make(chan struct{})}
	svc := usecases.NewViewService(repo, pub, city.DefaultViewport())
	cafe := repo.catalog.All()[1]

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = svc.Select(context.Background(), cafe.ID)
	}()
	<-pub.started

	begin := time.Now()
	state := svc.State()
	if elapsed := time.Since(begin); elapsed > 100*time.Millisecond {
		t.Errorf("State() blocked for %s while effects were publishing", elapsed)
	}
	if id, ok := state.Selection.Get(); !ok || id != cafe.ID {
		t.Errorf("expected the committed selection, got %v", state.Selection)
	}
	<-done
}

func TestViewService_PublishIsBounded(t *testing.T) {
	city, repo := newOrleansRepo(t)
	pub := &slowPublisher{delay: time.Hour, started: make(chan struct{})}
	svc := usecases.NewViewService(repo, pub, city.DefaultViewport())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	begin := time.Now()
	if _, _, err := svc.Select(ctx, repo.catalog.All()[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(begin); elapsed > time.Second {
		t.Errorf("publishing took %s", elapsed)
	}
}
