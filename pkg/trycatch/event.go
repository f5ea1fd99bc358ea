package trycatch

import "fmt"

// EventKind names a runtime state transition.
type EventKind int

const (
	EventInvalid EventKind = iota

	// EventEnter is emitted after a protected extent is entered.
	EventEnter
	// EventExit is emitted after an extent completes or resolves its exception.
	EventExit
	EventThrow
	EventRethrow
	// EventCatch is emitted when a handler's tag matches.
	EventCatch
	// EventUnmatched is emitted when no handler of an extent matches and the
	// exception is forwarded outward.
	EventUnmatched
	EventFree
	EventTerminate
)

var eventKindValueMap = map[EventKind]string{
	EventEnter:     "enter",
	EventExit:      "exit",
	EventThrow:     "throw",
	EventRethrow:   "rethrow",
	EventCatch:     "catch",
	EventUnmatched: "unmatched",
	EventFree:      "free",
	EventTerminate: "terminate",
}

func (k EventKind) String() string {
	v, ok := eventKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", int(k))
	}
	return v
}

// EventKinds returns all valid kinds in declaration order.
func EventKinds() []EventKind {
	return []EventKind{
		EventEnter, EventExit, EventThrow, EventRethrow,
		EventCatch, EventUnmatched, EventFree, EventTerminate,
	}
}

// Event describes one transition. Tag and ExceptionID are zero for events
// without an exception. Depth is the number of active extents after the
// transition.
type Event struct {
	Kind        EventKind
	Tag         Tag
	Depth       int
	ExceptionID uint64
}

// Observer receives runtime events synchronously on the runtime's goroutine.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(ev Event) { f(ev) }
