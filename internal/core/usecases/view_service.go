package usecases

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/bucketlist/internal/core/domain"
	"github.com/samirrijal/bucketlist/internal/core/ports"
	"github.com/samirrijal/bucketlist/internal/pkg/metrics"
)

const publishTimeout = 2 * time.Second

// ViewService owns the selection and camera state of the map view.
// Events are applied one at a time, in arrival order.
type ViewService struct {
	mu        sync.Mutex
	state     domain.ViewState
	catalog   domain.AttractionLookup
	publisher ports.PresentationPublisher
}

// NewViewService creates a ViewService in the Idle state at initial.
// publisher may be nil.
func NewViewService(attractions ports.AttractionRepository, publisher ports.PresentationPublisher, initial domain.Viewport) *ViewService {
	return &ViewService{
		state:     domain.InitialViewState(initial),
		catalog:   attractions.Lookup(),
		publisher: publisher,
	}
}

// State returns a snapshot of the current state.
func (s *ViewService) State() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply runs ev through the reducer and publishes the resulting effects.
// Rejected events leave the state unchanged; the current state is returned
// together with the error.
func (s *ViewService) Apply(ctx context.Context, ev domain.Event) (domain.ViewState, []domain.Effect, error) {
	if ev == nil {
		return s.State(), nil, errors.New("event is required")
	}

	ctx, span := tracer.Start(ctx, "ViewService.Apply")
	defer span.End()
	span.SetAttributes(attribute.String("view.event", ev.Name()))

	s.mu.Lock()
	next, effects, err := domain.Reduce(s.state, ev, s.catalog)
	if err != nil {
		current := s.state
		s.mu.Unlock()
		metrics.ViewEvents.WithLabelValues(ev.Name(), "rejected").Inc()
		span.SetStatus(codes.Error, err.Error())
		return current, nil, err
	}
	s.state = next
	s.mu.Unlock()

	metrics.ViewEvents.WithLabelValues(ev.Name(), "applied").Inc()
	span.SetAttributes(attribute.String("view.mode", next.Mode()))

	s.publish(ctx, effects)
	return next, effects, nil
}

// publish hands effects to the publisher outside the state lock. Each
// publish is bounded by publishTimeout and failures are only logged: the
// transition has already been committed.
func (s *ViewService) publish(ctx context.Context, effects []domain.Effect) {
	if s.publisher == nil {
		return
	}
	for _, eff := range effects {
		pctx, cancel := context.WithTimeout(ctx, publishTimeout)
		if err := s.publisher.PublishEffect(pctx, eff); err != nil {
			slog.WarnContext(ctx, "publish view effect", "kind", eff.Kind, "error", err)
		}
		cancel()
	}
}

// Select focuses the camera on attraction id.
func (s *ViewService) Select(ctx context.Context, id domain.AttractionID) (domain.ViewState, []domain.Effect, error) {
	return s.Apply(ctx, domain.SelectAttraction{ID: id})
}

// Clear dismisses the current selection.
func (s *ViewService) Clear(ctx context.Context) (domain.ViewState, []domain.Effect, error) {
	return s.Apply(ctx, domain.ClearSelection{})
}
