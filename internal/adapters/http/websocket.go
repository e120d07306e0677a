package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/bucketlist/internal/core/domain"
	"github.com/samirrijal/bucketlist/internal/core/usecases"
	"github.com/samirrijal/bucketlist/internal/pkg/metrics"
)

// wsState acknowledges an event with the resulting state, and greets a new
// connection with the current one.
type wsState struct {
	Kind string `json:"kind"` // "state"
	viewResponse
}

type wsError struct {
	Kind    string `json:"kind"` // "error"
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketHandler returns a handler that bridges a rendering client to the
// view controller. The client sends tap events:
//
//	{"type":"select_attraction","id":"..."}
//	{"type":"clear_selection"}
//
// and receives state acknowledgements, errors and presentation effects
// ({"kind":"viewport_changed",...}). With a broker configured, effects of
// every event are relayed to every connected client.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "remote", remoteAddr)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		relayed := false
		if deps.Effects != nil {
			unsubscribe, err := deps.Effects.SubscribeEffects(ctx, func(_ context.Context, eff domain.Effect) error {
				return writeJSON(eff)
			})
			if err != nil {
				slog.Warn("ws effect relay unavailable", "remote", remoteAddr, "error", err)
			} else {
				relayed = true
				defer unsubscribe()
			}
		}

		if err := writeJSON(wsState{Kind: "state", viewResponse: newViewResponse(deps.View.State(), nil)}); err != nil {
			return
		}

		// Keep-alive ping
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}
			if err := writeReplies(ctx, deps.View, msg, relayed, writeJSON); err != nil {
				slog.Debug("ws write failed", "remote", remoteAddr, "error", err)
				break
			}
		}

		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}

// writeReplies applies one client message and writes every reply, stopping
// at the first write error.
func writeReplies(ctx context.Context, view *usecases.ViewService, msg []byte, relayed bool, write func(interface{}) error) error {
	for _, out := range handleRendererMessage(ctx, view, msg, relayed) {
		if err := write(out); err != nil {
			return err
		}
	}
	return nil
}

// handleRendererMessage applies one client message and returns the replies.
// Effects are included only when they are not already relayed by the broker.
func handleRendererMessage(ctx context.Context, view *usecases.ViewService, msg []byte, relayed bool) []interface{} {
	ev, err := decodeEvent(msg)
	if err != nil {
		return []interface{}{wsError{Kind: "error", Code: "bad_request", Message: err.Error()}}
	}

	state, effects, err := view.Apply(ctx, ev)
	if err != nil {
		_, code := classify(err)
		return []interface{}{wsError{Kind: "error", Code: code, Message: err.Error()}}
	}

	out := make([]interface{}, 0, len(effects)+1)
	if !relayed {
		for _, eff := range effects {
			out = append(out, eff)
		}
	}
	return append(out, wsState{Kind: "state", viewResponse: newViewResponse(state, nil)})
}
