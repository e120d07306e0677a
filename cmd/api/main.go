package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/samirrijal/bucketlist/internal/adapters/http"
	"github.com/samirrijal/bucketlist/internal/adapters/memory"
	natsadapter "github.com/samirrijal/bucketlist/internal/adapters/nats"
	"github.com/samirrijal/bucketlist/internal/adapters/valkey"
	"github.com/samirrijal/bucketlist/internal/core/domain"
	"github.com/samirrijal/bucketlist/internal/core/ports"
	"github.com/samirrijal/bucketlist/internal/core/usecases"
	"github.com/samirrijal/bucketlist/internal/pkg/config"
	"github.com/samirrijal/bucketlist/internal/pkg/logging"
	"github.com/samirrijal/bucketlist/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("bucketlist-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup("bucketlist-api", cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Catalog, loaded once
	city := domain.City{
		Name:   cfg.City.Name,
		Center: domain.GeoPoint{Lat: cfg.City.Lat, Lon: cfg.City.Lon},
		Span:   domain.Span{LatitudeDelta: cfg.City.LatitudeDelta, LongitudeDelta: cfg.City.LongitudeDelta},
	}
	catalog, err := loadCatalog(cfg.Catalog.File)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	slog.Info("catalog loaded", "city", city.Name, "attractions", catalog.Len(), "file", cfg.Catalog.File)

	deps := &http.Dependencies{}

	// Cache: Valkey when reachable, in-process otherwise
	var cache ports.CacheService
	if cfg.Valkey.Enabled {
		vc, err := valkey.New(cfg.Valkey.Addr, "bucketlist")
		if err != nil {
			slog.Warn("valkey unavailable, using in-process cache", "error", err)
		} else {
			defer vc.Close()
			cache = vc
			deps.Cache = vc
		}
	}
	if cache == nil {
		cache = memory.NewCache(10 * time.Minute)
	}

	// NATS
	var publisher ports.PresentationPublisher
	if cfg.NATS.Enabled {
		conn, err := natsadapter.Connect(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			pub, err := natsadapter.NewPublisher(conn)
			if err != nil {
				slog.Warn("nats jetstream unavailable", "error", err)
				conn.Close()
			} else {
				defer pub.Close()
				publisher = pub
				deps.Broker = pub
				deps.Effects = natsadapter.NewSubscriber(conn)
			}
		}
	}

	// Use cases
	repo := memory.NewAttractionRepo(catalog)
	deps.Catalog = usecases.NewCatalogService(repo, cache, city)
	deps.View = usecases.NewViewService(repo, publisher, city.DefaultViewport())

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "Bucketlist API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received, draining connections...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// loadCatalog reads the catalog file when one is configured and falls back
// to the built-in New Orleans dataset.
func loadCatalog(path string) (*domain.Catalog, error) {
	if path != "" {
		return memory.LoadCatalogFile(path)
	}
	_, attractions := domain.NewOrleans()
	return domain.NewCatalog(attractions)
}
