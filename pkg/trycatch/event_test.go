package trycatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	events []Event
}

func (r *recorder) Observe(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) kinds() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind.String())
	}
	return out
}

func TestEvents_StateMachine(t *testing.T) {
	rec := &recorder{}
	h := newHarness(t, WithObserver(rec))

	h.rt.Try(func() {
		h.rt.Try(func() {
			ThrowTagged(h.rt, "str", "s")
		}, CatchTag("int", func(int) {}))
	}, CatchTag("str", func(string) {}))

	assert.Equal(t, []string{
		"enter", "enter",
		"throw",
		"unmatched", "rethrow",
		"catch", "free", "exit",
	}, rec.kinds())

	throw := rec.events[2]
	assert.Equal(t, Tag("str"), throw.Tag)
	assert.Equal(t, 2, throw.Depth)
	assert.Equal(t, rec.events[5].ExceptionID, throw.ExceptionID)
	assert.Zero(t, rec.events[len(rec.events)-1].Depth)
}

func TestEvents_ObserverFunc(t *testing.T) {
	var kinds []EventKind
	h := newHarness(t, WithObserver(ObserverFunc(func(ev Event) { kinds = append(kinds, ev.Kind) })))

	h.rt.Try(func() {})

	assert.Equal(t, []EventKind{EventEnter, EventExit}, kinds)
}

func TestEventKind_String(t *testing.T) {
	for _, kind := range EventKinds() {
		assert.NotContains(t, kind.String(), "invalid")
	}
	assert.Equal(t, "invalid(0)", EventInvalid.String())
	assert.Equal(t, "invalid(42)", EventKind(42).String())
}
