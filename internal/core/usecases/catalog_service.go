package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/bucketlist/internal/core/domain"
	"github.com/samirrijal/bucketlist/internal/core/ports"
	"github.com/samirrijal/bucketlist/internal/pkg/metrics"
)

var tracer = otel.Tracer("github.com/samirrijal/bucketlist/internal/core/usecases")

// CatalogService answers read-only questions about the attraction catalog.
type CatalogService struct {
	attractions ports.AttractionRepository
	cache       ports.CacheService
	city        domain.City
	// keyPrefix scopes cache entries to this catalog, since a shared cache
	// outlives restarts with a different catalog file.
	keyPrefix string
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(attractions ports.AttractionRepository, cache ports.CacheService, city domain.City) *CatalogService {
	return &CatalogService{
		attractions: attractions,
		cache:       cache,
		city:        city,
		keyPrefix:   "attractions:" + attractions.Fingerprint(),
	}
}

// City returns the home city.
func (s *CatalogService) City() domain.City {
	return s.city
}

// Cards returns every attraction in catalog order with its distance from the
// city center.
func (s *CatalogService) Cards(ctx context.Context) ([]domain.AttractionCard, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Cards")
	defer span.End()

	cacheKey := fmt.Sprintf("%s:cards:%.5f:%.5f", s.keyPrefix, s.city.Center.Lat, s.city.Center.Lon)
	var cards []domain.AttractionCard
	if s.cacheGet(ctx, "cards", cacheKey, &cards) {
		return cards, nil
	}

	attractions, err := s.attractions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attractions: %w", err)
	}

	cards = make([]domain.AttractionCard, 0, len(attractions))
	for _, a := range attractions {
		card, err := domain.NewAttractionCard(a, s.city.Center)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	// The catalog never changes, so this can live for a long time.
	s.cacheSet(ctx, cacheKey, cards, 3600)
	return cards, nil
}

// Detail returns the detail sheet for one attraction.
func (s *CatalogService) Detail(ctx context.Context, id domain.AttractionID) (*domain.AttractionDetail, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Detail")
	defer span.End()
	span.SetAttributes(attribute.String("attraction.id", string(id)))

	a, err := s.attractions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail, err := domain.NewAttractionDetail(*a, s.city)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// DistanceFrom returns the distance in miles from attraction id to ref.
func (s *CatalogService) DistanceFrom(ctx context.Context, id domain.AttractionID, ref domain.GeoPoint) (float64, error) {
	a, err := s.attractions.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return domain.Distance(*a, ref)
}

// Nearby returns attractions within radiusMiles of at, nearest first.
func (s *CatalogService) Nearby(ctx context.Context, at domain.GeoPoint, radiusMiles float64, limit int) ([]domain.AttractionCard, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Nearby")
	defer span.End()

	if err := at.Validate(); err != nil {
		return nil, err
	}
	if !(radiusMiles > 0) || math.IsInf(radiusMiles, 1) {
		return nil, fmt.Errorf("radius must be positive and finite, got %f", radiusMiles)
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("%s:nearby:%.4f:%.4f:%.2f:%d", s.keyPrefix, at.Lat, at.Lon, radiusMiles, limit)
	var cards []domain.AttractionCard
	if s.cacheGet(ctx, "nearby", cacheKey, &cards) {
		return cards, nil
	}

	attractions, err := s.attractions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attractions: %w", err)
	}

	// The catalog is small enough to measure every record.
	cards = make([]domain.AttractionCard, 0)
	for _, a := range attractions {
		card, err := domain.NewAttractionCard(a, at)
		if err != nil {
			return nil, err
		}
		if card.DistanceMiles <= radiusMiles {
			cards = append(cards, card)
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].DistanceMiles < cards[j].DistanceMiles
	})
	if len(cards) > limit {
		cards = cards[:limit]
	}

	s.cacheSet(ctx, cacheKey, cards, 300)
	return cards, nil
}

// InView returns the cards of attractions visible in vp, in catalog order,
// with distances from the city center.
func (s *CatalogService) InView(ctx context.Context, vp domain.Viewport) ([]domain.AttractionCard, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.InView")
	defer span.End()

	cards, err := s.Cards(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.AttractionCard, 0, len(cards))
	for _, card := range cards {
		if vp.Contains(card.Coordinate) {
			visible = append(visible, card)
		}
	}
	return visible, nil
}

func (s *CatalogService) cacheGet(ctx context.Context, op, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || json.Unmarshal(data, dst) != nil {
		metrics.CacheMisses.WithLabelValues(op).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(op).Inc()
	return true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, v any, ttlSeconds int) {
	if s.cache == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = s.cache.Set(ctx, key, data, ttlSeconds)
	}
}
