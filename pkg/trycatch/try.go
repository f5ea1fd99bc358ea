package trycatch

import (
	"fmt"
	"reflect"
)

// Handler is one catch clause of a protected extent.
type Handler struct {
	tag      Tag
	catchAll bool
	run      func(e *Exception)
}

// Tag returns the tag the handler matches.
func (h Handler) Tag() Tag { return h.tag }

func (h Handler) matches(e *Exception) bool {
	return h.catchAll || e.tag == h.tag
}

// Catch handles exceptions tagged TagOf[T], passing fn a copy of the payload.
func Catch[T any](fn func(T)) Handler {
	return CatchTag(TagOf[T](), fn)
}

// CatchTag handles exceptions carrying tag, passing fn a copy of the payload.
// The payload must have been thrown as a T; a tag shared by different Go
// types is a programming error and panics.
func CatchTag[T any](tag Tag, fn func(T)) Handler {
	return Handler{
		tag: tag,
		run: func(e *Exception) {
			v, ok := e.Value().(T)
			if !ok && e.payload.Elem().Type() != reflect.TypeFor[T]() {
				panic(fmt.Sprintf("trycatch: exception tagged %q holds %s, not %s",
					e.tag, e.payload.Elem().Type(), reflect.TypeFor[T]()))
			}
			fn(v)
		},
	}
}

// CatchBytes handles exceptions carrying tag, passing fn a copy of the raw
// payload bytes.
func CatchBytes(tag Tag, fn func([]byte)) Handler {
	return Handler{
		tag: tag,
		run: func(e *Exception) {
			fn(append([]byte(nil), e.Bytes()...))
		},
	}
}

func catchAny(fn func(e *Exception)) Handler {
	return Handler{catchAll: true, run: fn}
}

// Try runs body as a protected extent. If body, or anything it calls, throws,
// the handlers are tested in order and the first whose tag matches runs.
// Without a match the exception is rethrown to the enclosing extent. Once a
// handler returns, the exception is released and the exception that was
// active when Try was entered, if any, is active again.
func (rt *Runtime) Try(body func(), handlers ...Handler) {
	var m Marker
	prev := rt.Enter(&m)
	last, lastNeedsFree := rt.active, rt.needsFree
	// the body does not own the enclosing exception
	rt.needsFree = false
	rt.emit(EventEnter, nil)

	if rt.protect(&m, prev, body) {
		rt.Restore(prev)
		rt.SetNeedsFree(true)
		if !rt.dispatch(handlers) {
			rt.emit(EventUnmatched, rt.active)
			rt.Rethrow()
		}
		rt.SetNeedsFree(false)
	}

	rt.Restore(prev)
	if rt.active != last {
		rt.Free(true)
	}
	rt.active = last
	rt.needsFree = lastNeedsFree
	rt.emit(EventExit, nil)
}

// Try runs body as a protected extent of the Default runtime.
func Try(body func(), handlers ...Handler) {
	Default().Try(body, handlers...)
}

func (rt *Runtime) dispatch(handlers []Handler) bool {
	e := rt.active
	if e == nil {
		return false
	}
	for _, h := range handlers {
		if !h.matches(e) {
			continue
		}
		rt.emit(EventCatch, e)
		h.run(e)
		return true
	}
	return false
}

// Do runs body as a protected extent that catches every exception and
// returns it instead of dispatching to handlers. The returned exception is
// detached from the runtime: it stays readable after the runtime released its
// own record. Do returns nil when body completes normally.
func Do(rt *Runtime, body func()) *Exception {
	var caught *Exception
	rt.Try(body, catchAny(func(e *Exception) {
		caught = e.detach()
	}))
	return caught
}
