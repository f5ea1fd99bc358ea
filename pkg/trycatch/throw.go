package trycatch

import (
	"reflect"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

// ThrowException makes e the active exception and transfers control to the
// innermost protected extent. With no extent active the runtime terminates.
// ThrowException never returns. Throwing a nil exception is a programming
// error and is fatal.
func (rt *Runtime) ThrowException(e *Exception) {
	if e == nil {
		rt.fatal(errx.Rethrow("throw of a nil exception").
			WithContext("depth", rt.Depth()), true)
	}
	rt.active = e
	rt.emit(EventThrow, e)
	if rt.log.V(1).Enabled() {
		rt.log.V(1).Info("exception thrown", "tag", string(e.tag), "id", e.id, "depth", rt.Depth())
	}
	rt.transfer(e)
}

// Rethrow forwards the active exception unchanged to the innermost protected
// extent, handing ownership outward. Calling Rethrow with no active exception
// is a programming error and is fatal.
func (rt *Runtime) Rethrow() {
	e := rt.active
	if e == nil {
		rt.fatal(errx.Rethrow("rethrow without an active exception").
			WithContext("depth", rt.Depth()), true)
	}
	rt.needsFree = false
	rt.emit(EventRethrow, e)
	rt.transfer(e)
}

func (rt *Runtime) transfer(e *Exception) {
	if rt.top == nil {
		rt.terminate(e)
	}
	panic(&jump{target: rt.top})
}

// Throw throws a copy of v tagged with TagOf[T].
func Throw[T any](rt *Runtime, v T) {
	ThrowTagged(rt, TagOf[T](), v)
}

// ThrowTagged throws a copy of v under an explicit tag. A previous exception
// the current frame owns is released first.
func ThrowTagged[T any](rt *Runtime, tag Tag, v T) {
	rt.Free(false)
	e := rt.Allocate(reflect.TypeFor[T]())
	e.payload.Elem().Set(reflect.ValueOf(&v).Elem())
	rt.SetType(e, tag)
	rt.ThrowException(e)
}

// ThrowBytes throws a copy of b as a fixed-size byte payload.
func ThrowBytes(rt *Runtime, tag Tag, b []byte) {
	rt.Free(false)
	e := rt.Allocate(reflect.ArrayOf(len(b), reflect.TypeFor[byte]()))
	copy(e.Bytes(), b)
	rt.SetType(e, tag)
	rt.ThrowException(e)
}
