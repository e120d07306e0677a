package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/bucketlist/internal/core/domain"
	"github.com/samirrijal/bucketlist/internal/pkg/metrics"
)

// SubjectPrefix scopes every presentation effect subject.
const SubjectPrefix = "view.effects"

// Subject returns the subject an effect kind is published on.
func Subject(kind domain.EffectKind) string {
	return SubjectPrefix + "." + string(kind)
}

// Connect opens a NATS connection that keeps retrying in the background.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("bucketlist"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}

// Publisher implements ports.PresentationPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher enables JetStream on conn and ensures the effects stream exists.
// The stream lets a renderer that reconnects replay the latest camera moves.
func NewPublisher(conn *nats.Conn) (*Publisher, error) {
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:              "VIEW_EFFECTS",
		Subjects:          []string{SubjectPrefix + ".>"},
		Retention:         nats.LimitsPolicy,
		MaxAge:            10 * time.Minute,
		MaxMsgsPerSubject: 16,
		Storage:           nats.MemoryStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishEffect sends effect as JSON on its kind's subject.
func (p *Publisher) PublishEffect(ctx context.Context, effect domain.Effect) error {
	data, err := json.Marshal(effect)
	if err != nil {
		return err
	}
	if _, err := p.js.Publish(Subject(effect.Kind), data, nats.Context(ctx)); err != nil {
		return err
	}
	metrics.EffectsPublished.WithLabelValues(string(effect.Kind)).Inc()
	return nil
}

// IsConnected reports the underlying connection status.
func (p *Publisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
