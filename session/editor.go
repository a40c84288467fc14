package session

import (
	"context"
	"fmt"

	"github.com/rustyeddy/dialysis/display"
)

type Screen int

const (
	ScreenPre Screen = iota
	ScreenPost
)

func (s Screen) String() string {
	if s == ScreenPost {
		return "post"
	}
	return "pre"
}

type Mode int

const (
	ModeNavigation Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "navigation"
}

// Event is a button press delivered by the front end.
type Event int

const (
	EventUp Event = iota
	EventDown
	EventSelect
	EventLongSelect
	EventBack
)

func (e Event) String() string {
	switch e {
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	case EventSelect:
		return "select"
	case EventLongSelect:
		return "long"
	case EventBack:
		return "back"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// ParseEvent maps a typed key or word to an Event.
func ParseEvent(s string) (Event, bool) {
	switch s {
	case "u", "up", "k", "+":
		return EventUp, true
	case "d", "down", "j", "-":
		return EventDown, true
	case "s", "select", "":
		return EventSelect, true
	case "l", "long":
		return EventLongSelect, true
	case "b", "back", "q":
		return EventBack, true
	}
	return 0, false
}

// Editor is the button-driven state machine of the device front end.
// It owns no record; every change goes through the Session.
type Editor struct {
	sess   *Session
	screen Screen
	mode   Mode
	field  Field

	// Last is set by a completed Finish and cleared by the next event.
	Last    *FinishResult
	LastErr error
}

type FinishResult struct {
	SessionID string
	Rows      []string
}

func NewEditor(s *Session) *Editor {
	return &Editor{sess: s}
}

func (e *Editor) Screen() Screen { return e.screen }
func (e *Editor) Mode() Mode     { return e.mode }
func (e *Editor) Field() Field   { return e.field }

// Handle applies one event.
func (e *Editor) Handle(ctx context.Context, ev Event) {
	e.Last = nil
	e.LastErr = nil

	switch e.screen {
	case ScreenPre:
		e.handlePre(ctx, ev)
	case ScreenPost:
		e.handlePost(ctx, ev)
	}
}

func (e *Editor) handlePre(ctx context.Context, ev Event) {
	if e.mode == ModeEditing {
		switch ev {
		case EventUp:
			e.sess.Adjust(ctx, e.field, 1)
		case EventDown:
			e.sess.Adjust(ctx, e.field, -1)
		case EventSelect, EventBack:
			e.mode = ModeNavigation
		}
		return
	}

	switch ev {
	case EventUp:
		e.field = (e.field + NumFields - 1) % NumFields
	case EventDown:
		e.field = (e.field + 1) % NumFields
	case EventSelect:
		e.mode = ModeEditing
	case EventLongSelect:
		e.sess.BeginPost(ctx)
		e.screen = ScreenPost
	}
}

func (e *Editor) handlePost(ctx context.Context, ev Event) {
	switch ev {
	case EventUp:
		e.sess.AdjustPost(ctx, 1)
	case EventDown:
		e.sess.AdjustPost(ctx, -1)
	case EventSelect:
		entry, err := e.sess.Finish(ctx)
		if err != nil {
			e.LastErr = err
			return
		}
		e.Last = &FinishResult{
			SessionID: entry.SessionID,
			Rows:      display.PostRows(entry.Metrics()),
		}
		e.screen = ScreenPre
		e.mode = ModeNavigation
		e.field = FieldPreWeight
	case EventBack:
		e.screen = ScreenPre
		e.mode = ModeNavigation
	}
}

// View renders the current screen. The selected field is marked with ">"
// and a field being edited with "*".
func (e *Editor) View() []string {
	r := e.sess.Record()

	if e.screen == ScreenPost {
		lines := []string{
			"POST TREATMENT",
			fmt.Sprintf("* Post: %s kg", display.Weight(r.PostWeight)),
		}
		return append(lines, display.PostRows(e.sess.Post())...)
	}

	values := [NumFields]string{
		fmt.Sprintf("Pre:   %s kg", display.Weight(r.PreWeight)),
		fmt.Sprintf("Dry:   %s kg", display.Weight(r.DryWeight)),
		fmt.Sprintf("Time:  %s", display.Time(r.TreatmentTime)),
		fmt.Sprintf("Delta: %s kg", display.Delta(r.DeltaSelection)),
	}

	lines := []string{"PRE TREATMENT"}
	for f, v := range values {
		marker := " "
		if Field(f) == e.field {
			marker = ">"
			if e.mode == ModeEditing {
				marker = "*"
			}
		}
		lines = append(lines, marker+" "+v)
	}
	return append(lines, display.PreRows(e.sess.Pre())...)
}
