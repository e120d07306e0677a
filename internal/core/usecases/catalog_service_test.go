package usecases_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/bucketlist/internal/core/domain"
	"github.com/samirrijal/bucketlist/internal/core/usecases"
)

// --- Mock AttractionRepository ---

type mockAttractionRepo struct {
	listFn    func(ctx context.Context) ([]domain.Attraction, error)
	getByIDFn func(ctx context.Context, id domain.AttractionID) (*domain.Attraction, error)
	catalog   *domain.Catalog
}

func (m *mockAttractionRepo) List(ctx context.Context) ([]domain.Attraction, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return m.catalog.All(), nil
}

func (m *mockAttractionRepo) GetByID(ctx context.Context, id domain.AttractionID) (*domain.Attraction, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	a, ok := m.catalog.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *mockAttractionRepo) Lookup() domain.AttractionLookup { return m.catalog }

func (m *mockAttractionRepo) Fingerprint() string { return m.catalog.Fingerprint() }

func newOrleansRepo(t *testing.T) (domain.City, *mockAttractionRepo) {
	t.Helper()
	city, attractions := domain.NewOrleans()
	catalog, err := domain.NewCatalog(attractions)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return city, &mockAttractionRepo{catalog: catalog}
}

// --- Mock CacheService ---

type mockCache struct {
	data map[string][]byte
	gets int
	sets int
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.sets++
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// --- Tests ---

func TestCatalogService_Cards(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewCatalogService(repo, nil, city)

	cards, err := svc.Cards(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("expected 5 cards, got %d", len(cards))
	}
	if cards[0].Name != "French Quarter" || cards[0].DistanceLabel != "0.00 mi" {
		t.Errorf("unexpected first card: %+v", cards[0])
	}
	if cards[1].DistanceLabel != "0.24 mi" {
		t.Errorf("expected Café Du Monde at 0.24 mi, got %s", cards[1].DistanceLabel)
	}
	if cards[3].DistanceLabel != "9.81 mi" {
		t.Errorf("expected Cajun Encounters at 9.81 mi, got %s", cards[3].DistanceLabel)
	}
}

func TestCatalogService_Cards_UsesCache(t *testing.T) {
	city, repo := newOrleansRepo(t)
	calls := 0
	repo.listFn = func(ctx context.Context) ([]domain.Attraction, error) {
		calls++
		return repo.catalog.All(), nil
	}
	cache := newMockCache()
	svc := usecases.NewCatalogService(repo, cache, city)

	first, err := svc.Cards(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Cards(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected repo called once, got %d", calls)
	}
	if cache.sets != 1 {
		t.Errorf("expected one cache write, got %d", cache.sets)
	}
	if len(second) != len(first) || second[1].ID != first[1].ID || second[1].DistanceMiles != first[1].DistanceMiles {
		t.Errorf("cached cards differ: %+v vs %+v", second, first)
	}
}

func TestCatalogService_Cards_RepoError(t *testing.T) {
	city, repo := newOrleansRepo(t)
	repo.listFn = func(ctx context.Context) ([]domain.Attraction, error) {
		return nil, errors.New("boom")
	}
	svc := usecases.NewCatalogService(repo, nil, city)

	if _, err := svc.Cards(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestCatalogService_Detail(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewCatalogService(repo, nil, city)
	voodoo := repo.catalog.All()[2]

	detail, err := svc.Detail(context.Background(), voodoo.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.DistanceText != "Distance from city center: 0.29 miles" {
		t.Errorf("unexpected distance text: %s", detail.DistanceText)
	}
	if detail.City != "New Orleans" {
		t.Errorf("expected city New Orleans, got %s", detail.City)
	}
}

func TestCatalogService_Detail_NotFound(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewCatalogService(repo, nil, city)

	_, err := svc.Detail(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_DistanceFrom(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewCatalogService(repo, nil, city)
	ghost := repo.catalog.All()[4]

	miles, err := svc.DistanceFrom(context.Background(), ghost.ID, ghost.Coordinate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(miles) > 1e-9 {
		t.Errorf("expected 0, got %f", miles)
	}

	_, err = svc.DistanceFrom(context.Background(), ghost.ID, domain.GeoPoint{Lat: -100, Lon: 0})
	if !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestCatalogService_Nearby(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewCatalogService(repo, nil, city)

	cards, err := svc.Nearby(context.Background(), city.Center, 0.25, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// French Quarter (0.00), Ghost Adventures (0.15), Café Du Monde (0.24)
	if len(cards) != 3 {
		t.Fatalf("expected 3 nearby attractions, got %d", len(cards))
	}
	want := []string{"French Quarter", "New Orleans Ghost Adventures Tours", "Café Du Monde"}
	for i, name := range want {
		if cards[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, cards[i].Name)
		}
	}
}

func TestCatalogService_Nearby_Limit(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewCatalogService(repo, nil, city)

	cards, err := svc.Nearby(context.Background(), city.Center, 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2, got %d", len(cards))
	}
}

func TestCatalogService_Nearby_InvalidInput(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewCatalogService(repo, nil, city)

	if _, err := svc.Nearby(context.Background(), domain.GeoPoint{Lat: 0, Lon: 200}, 1, 10); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
	if _, err := svc.Nearby(context.Background(), city.Center, 0, 10); err == nil {
		t.Error("expected error for zero radius")
	}
}

func TestCatalogService_Nearby_NonFiniteRadius(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewCatalogService(repo, nil, city)

	for _, r := range []float64{math.NaN(), math.Inf(1), -1} {
		if _, err := svc.Nearby(context.Background(), city.Center, r, 10); err == nil {
			t.Errorf("radius %v: expected error", r)
		}
	}
}

func TestCatalogService_Nearby_AcrossAntimeridian(t *testing.T) {
	catalog, err := domain.NewCatalog([]domain.Attraction{
		{ID: "east", Name: "East", Coordinate: domain.GeoPoint{Lat: -17, Lon: 179.999}},
		{ID: "west", Name: "West", Coordinate: domain.GeoPoint{Lat: -17, Lon: -179.999}},
		{ID: "far", Name: "Far", Coordinate: domain.GeoPoint{Lat: -17, Lon: -170}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	city := domain.City{Name: "Dateline", Center: domain.GeoPoint{Lat: -17, Lon: 179.999}, Span: domain.FocusSpan}
	svc := usecases.NewCatalogService(&mockAttractionRepo{catalog: catalog}, nil, city)

	cards, err := svc.Nearby(context.Background(), city.Center, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != "east" || cards[1].ID != "west" {
		t.Errorf("expected east then west, got %+v", cards)
	}
}

func TestCatalogService_SharedCacheIsScopedToCatalog(t *testing.T) {
	city, repo := newOrleansRepo(t)
	cache := newMockCache()
	first := usecases.NewCatalogService(repo, cache, city)
	if _, err := first.Cards(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same city, different catalog file, same cache.
	other, err := domain.NewCatalog([]domain.Attraction{
		{ID: domain.NewAttractionID("Jackson Square"), Name: "Jackson Square", Coordinate: domain.GeoPoint{Lat: 29.95746, Lon: -90.06295}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	second := usecases.NewCatalogService(&mockAttractionRepo{catalog: other}, cache, city)

	cards, err := second.Cards(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 || cards[0].Name != "Jackson Square" {
		t.Errorf("expected the second catalog's cards, got %+v", cards)
	}
	if cache.sets != 2 {
		t.Errorf("expected separate cache entries, got %d writes", cache.sets)
	}
}

func TestCatalogService_InView(t *testing.T) {
	city, repo := newOrleansRepo(t)
	svc := usecases.NewCatalogService(repo, nil, city)

	cards, err := svc.InView(context.Background(), city.DefaultViewport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Cajun Encounters is ~10 miles out; the rest fit in the 0.01° region.
	if len(cards) != 4 {
		t.Fatalf("expected 4 visible attractions, got %d", len(cards))
	}
	for _, c := range cards {
		if c.Name == "Cajun Encounters" {
			t.Error("Cajun Encounters should be outside the default viewport")
		}
	}
}
