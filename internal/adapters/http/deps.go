package http

import (
	"context"

	"github.com/samirrijal/bucketlist/internal/core/ports"
	"github.com/samirrijal/bucketlist/internal/core/usecases"
)

// ConnChecker reports broker connectivity.
type ConnChecker interface {
	IsConnected() bool
}

// Pinger reports cache connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Catalog *usecases.CatalogService
	View    *usecases.ViewService
	// Effects relays published effects to WebSocket renderers. When nil,
	// each connection receives only the effects of its own events.
	Effects ports.EffectSubscriber
	Broker  ConnChecker
	Cache   Pinger
}
