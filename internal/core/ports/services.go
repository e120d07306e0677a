package ports

import (
	"context"

	"github.com/samirrijal/bucketlist/internal/core/domain"
)

// PresentationPublisher forwards viewport and modal requests to renderers.
type PresentationPublisher interface {
	PublishEffect(ctx context.Context, effect domain.Effect) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EffectSubscriber streams presentation effects to a renderer connection.
type EffectSubscriber interface {
	SubscribeEffects(ctx context.Context, handler func(ctx context.Context, effect domain.Effect) error) (cancel func(), err error)
}
