package domain

import (
	"encoding/json"
	"fmt"
)

// Selection is the optionally focused attraction. The zero value is None.
type Selection struct {
	id AttractionID
	ok bool
}

// Some returns a selection holding id.
func Some(id AttractionID) Selection { return Selection{id: id, ok: true} }

// None returns the empty selection.
func None() Selection { return Selection{} }

// Get returns the selected ID and whether one is set.
func (s Selection) Get() (AttractionID, bool) { return s.id, s.ok }

// IsSome reports whether an attraction is selected.
func (s Selection) IsSome() bool { return s.ok }

// MarshalJSON encodes the selection as the ID string or null.
func (s Selection) MarshalJSON() ([]byte, error) {
	if !s.ok {
		return []byte("null"), nil
	}
	return json.Marshal(string(s.id))
}

// UnmarshalJSON accepts an ID string or null.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var id *string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	if id == nil {
		*s = None()
		return nil
	}
	*s = Some(AttractionID(*id))
	return nil
}

// ViewState is the controller state: Idle when Selection is None,
// Focused otherwise.
type ViewState struct {
	Selection Selection `json:"selection"`
	Viewport  Viewport  `json:"viewport"`
}

// Mode names the controller state.
func (s ViewState) Mode() string {
	if s.Selection.IsSome() {
		return "focused"
	}
	return "idle"
}

// InitialViewState is the Idle state at the given viewport.
func InitialViewState(vp Viewport) ViewState {
	return ViewState{Selection: None(), Viewport: vp}
}

// Event is a user interaction consumed by Reduce.
type Event interface {
	// Name is a stable label for logs and metrics.
	Name() string
	isEvent()
}

// SelectAttraction is sent when a pin or card is tapped.
type SelectAttraction struct {
	ID AttractionID `json:"id"`
}

func (SelectAttraction) Name() string { return "select_attraction" }
func (SelectAttraction) isEvent()     {}

// ClearSelection is sent when the detail sheet is dismissed.
type ClearSelection struct{}

func (ClearSelection) Name() string { return "clear_selection" }
func (ClearSelection) isEvent()     {}

// EffectKind names a request to the rendering client.
type EffectKind string

const (
	EffectViewportChanged EffectKind = "viewport_changed"
	EffectPresentDetail   EffectKind = "present_detail"
	EffectDismissDetail   EffectKind = "dismiss_detail"
)

// Effect is a presentation request produced by a transition. Animated is
// advisory only.
type Effect struct {
	Kind         EffectKind   `json:"kind"`
	Viewport     *Viewport    `json:"viewport,omitempty"`
	Animated     bool         `json:"animated,omitempty"`
	AttractionID AttractionID `json:"attraction_id,omitempty"`
}

// AttractionLookup resolves catalog IDs. *Catalog satisfies it.
type AttractionLookup interface {
	Get(id AttractionID) (Attraction, bool)
}

// Reduce applies one event to state. An unknown selection leaves state
// untouched and returns ErrUnknownSelection.
func Reduce(state ViewState, ev Event, catalog AttractionLookup) (ViewState, []Effect, error) {
	switch e := ev.(type) {
	case SelectAttraction:
		a, ok := catalog.Get(e.ID)
		if !ok {
			return state, nil, fmt.Errorf("%w: %s", ErrUnknownSelection, e.ID)
		}
		vp := Viewport{Center: a.Coordinate, Span: FocusSpan}
		next := ViewState{Selection: Some(a.ID), Viewport: vp}
		return next, []Effect{
			{Kind: EffectViewportChanged, Viewport: &vp, Animated: true},
			{Kind: EffectPresentDetail, AttractionID: a.ID},
		}, nil

	case ClearSelection:
		if !state.Selection.IsSome() {
			return state, nil, nil
		}
		next := ViewState{Selection: None(), Viewport: state.Viewport}
		return next, []Effect{{Kind: EffectDismissDetail}}, nil

	default:
		return state, nil, fmt.Errorf("unsupported event %T", ev)
	}
}
