package http

import (
	"encoding/json"
	"fmt"

	"github.com/samirrijal/bucketlist/internal/core/domain"
)

// eventMessage is the wire form of a renderer tap event:
//
//	{"type":"select_attraction","id":"..."}
//	{"type":"clear_selection"}
type eventMessage struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// decodeEvent parses an event message.
func decodeEvent(data []byte) (domain.Event, error) {
	var m eventMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch m.Type {
	case domain.SelectAttraction{}.Name():
		if m.ID == "" {
			return nil, fmt.Errorf("id is required for %s", m.Type)
		}
		return domain.SelectAttraction{ID: domain.AttractionID(m.ID)}, nil
	case domain.ClearSelection{}.Name():
		return domain.ClearSelection{}, nil
	case "":
		return nil, fmt.Errorf("type is required")
	default:
		return nil, fmt.Errorf("unknown event type: %s", m.Type)
	}
}

// viewResponse is the JSON form of the controller state.
type viewResponse struct {
	domain.ViewState
	Mode    string          `json:"mode"`
	Effects []domain.Effect `json:"effects,omitempty"`
}

func newViewResponse(state domain.ViewState, effects []domain.Effect) viewResponse {
	return viewResponse{ViewState: state, Mode: state.Mode(), Effects: effects}
}
