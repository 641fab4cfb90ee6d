package gfx

import "fmt"

// EventKind classifies window events
type EventKind int

const (
	EventOther EventKind = iota
	EventClosed
	EventKeyboardInput
)

// Key is a keyboard key, only the keys the program reacts to are named
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyOther
)

// Action is the state change of a key
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Event is a single window event
type Event struct {
	Kind   EventKind
	Key    Key
	Action Action
}

// Closed returns the event sent when the window is asked to close
func Closed() Event {
	return Event{Kind: EventClosed}
}

// KeyboardInput returns a key event
func KeyboardInput(key Key, action Action) Event {
	return Event{Kind: EventKeyboardInput, Key: key, Action: action}
}

// RequestsExit reports whether the event ends the frame loop, which is
// the case for a close request or the Escape key being pressed.
func (e Event) RequestsExit() bool {
	switch e.Kind {
	case EventClosed:
		return true
	case EventKeyboardInput:
		return e.Key == KeyEscape && e.Action == Press
	}
	return false
}

func (e Event) String() string {
	switch e.Kind {
	case EventClosed:
		return "closed"
	case EventKeyboardInput:
		return fmt.Sprintf("key(%d,%d)", e.Key, e.Action)
	}
	return "other"
}
