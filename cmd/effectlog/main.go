// Command effectlog tails the presentation effects published by the API on
// view.effects.> and logs each one. It is a stand-in renderer for checking
// what a map client would be told to do.
package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	natsadapter "github.com/samirrijal/bucketlist/internal/adapters/nats"
	"github.com/samirrijal/bucketlist/internal/core/domain"
	"github.com/samirrijal/bucketlist/internal/pkg/config"
	"github.com/samirrijal/bucketlist/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load("bucketlist-effectlog")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup("bucketlist-effectlog", cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := natsadapter.Connect(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer conn.Drain()

	sub := natsadapter.NewSubscriber(conn)
	unsubscribe, err := sub.SubscribeEffects(ctx, func(ctx context.Context, eff domain.Effect) error {
		slog.InfoContext(ctx, "effect", effectAttrs(eff)...)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	defer unsubscribe()

	slog.Info("listening for view effects", "subject", natsadapter.SubjectPrefix+".>")
	<-ctx.Done()
	slog.Info("effectlog stopped")
}

// effectAttrs flattens an effect into log attributes.
func effectAttrs(eff domain.Effect) []any {
	attrs := []any{"kind", string(eff.Kind)}
	if eff.Viewport != nil {
		attrs = append(attrs,
			"lat", eff.Viewport.Center.Lat,
			"lon", eff.Viewport.Center.Lon,
			"span", eff.Viewport.Span.LatitudeDelta,
			"animated", eff.Animated,
		)
	}
	if eff.AttractionID != "" {
		attrs = append(attrs, "attraction", string(eff.AttractionID))
	}
	return attrs
}
