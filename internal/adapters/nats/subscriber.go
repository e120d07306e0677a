package natsadapter

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/bucketlist/internal/core/domain"
)

// Subscriber implements ports.EffectSubscriber with plain NATS
// subscriptions, so each connected renderer gets live effects only.
type Subscriber struct {
	conn *nats.Conn
}

// NewSubscriber creates a subscriber sharing conn.
func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{conn: conn}
}

// SubscribeEffects delivers every published effect to handler until the
// returned cancel function is called.
func (s *Subscriber) SubscribeEffects(ctx context.Context, handler func(ctx context.Context, effect domain.Effect) error) (func(), error) {
	sub, err := s.conn.Subscribe(SubjectPrefix+".>", func(msg *nats.Msg) {
		var effect domain.Effect
		if err := json.Unmarshal(msg.Data, &effect); err != nil {
			slog.Warn("drop malformed effect", "subject", msg.Subject, "error", err)
			return
		}
		if err := handler(ctx, effect); err != nil {
			slog.Debug("effect handler failed", "subject", msg.Subject, "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = sub.Unsubscribe() }, nil
}
