package trycatch

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

// Tag identifies the declared type of a thrown value. Tags are compared by
// exact string equality; there is no subtyping.
type Tag string

// TagOf returns the tag derived from T's Go type name, e.g. "int",
// "string" or "mypkg.ParseError".
func TagOf[T any]() Tag {
	return Tag(reflect.TypeFor[T]().String())
}

// Exception is a thrown value together with its tag. Its payload storage is
// owned by the runtime until the exception is released.
type Exception struct {
	id       uint64
	tag      Tag
	size     uintptr
	payload  reflect.Value // pointer to the payload
	released bool
}

// ID returns a number unique within the runtime that allocated e.
func (e *Exception) ID() uint64 { return e.id }

// Tag returns the type tag recorded for e.
func (e *Exception) Tag() Tag { return e.tag }

// Size returns the payload size in bytes.
func (e *Exception) Size() uintptr { return e.size }

// Released reports whether e's storage has been given back to the allocator.
func (e *Exception) Released() bool { return e.released }

// Value returns a copy of the payload, or nil once e is released.
func (e *Exception) Value() any {
	if e.released || !e.payload.IsValid() {
		return nil
	}
	return e.payload.Elem().Interface()
}

// Bytes returns a read-only view of the payload bytes. The view is only valid
// while e is active; callers must not modify it.
func (e *Exception) Bytes() []byte {
	if e.released || !e.payload.IsValid() {
		return nil
	}
	return unsafe.Slice((*byte)(e.payload.UnsafePointer()), e.size)
}

func (e *Exception) String() string {
	return fmt.Sprintf("exception #%d (%s, %d bytes)", e.id, e.tag, e.size)
}

// detach copies e into a record that no runtime owns.
func (e *Exception) detach() *Exception {
	c := &Exception{id: e.id, tag: e.tag, size: e.size}
	if e.payload.IsValid() {
		c.payload = reflect.New(e.payload.Elem().Type())
		c.payload.Elem().Set(e.payload.Elem())
	}
	return c
}

// Allocate reserves storage for a payload of type t. Allocation failure is
// fatal: the runtime cannot represent the failure as an exception.
func (rt *Runtime) Allocate(t reflect.Type) *Exception {
	size := t.Size()
	if err := rt.alloc.Allocate(size); err != nil {
		rt.fatal(errx.WrapAllocation(fmt.Sprintf("failed to allocate %d bytes for exception", size), err).
			WithContext("size", size).
			WithContext("type", t.String()), true)
	}
	rt.nextID++
	return &Exception{id: rt.nextID, size: size, payload: reflect.New(t)}
}

// SetType records tag on e.
func (rt *Runtime) SetType(e *Exception, tag Tag) {
	e.tag = tag
}

// IsType reports whether an exception is active and carries exactly tag.
func (rt *Runtime) IsType(tag Tag) bool {
	return rt.active != nil && rt.active.tag == tag
}

// Active returns the active exception; ok is false when there is none.
func (rt *Runtime) Active() (e *Exception, ok bool) {
	return rt.active, rt.active != nil
}

// SetActive installs e, possibly nil, as the active exception without
// releasing the previous one.
func (rt *Runtime) SetActive(e *Exception) {
	rt.active = e
}

// SetNeedsFree marks whether the active exception is released by the next
// non-forced Free.
func (rt *Runtime) SetNeedsFree(needsFree bool) {
	rt.needsFree = needsFree
}

// NeedsFree returns the needs-free flag.
func (rt *Runtime) NeedsFree() bool {
	return rt.needsFree
}

// Free releases the active exception when force is set or the needs-free flag
// is raised, leaving the slot empty. It is a no-op without an active
// exception.
func (rt *Runtime) Free(force bool) {
	e := rt.active
	if e == nil || !(force || rt.needsFree) {
		return
	}
	rt.release(e)
	rt.active = nil
	rt.needsFree = false
}

func (rt *Runtime) release(e *Exception) {
	if e.released {
		return
	}
	e.released = true
	rt.alloc.Free(e.size)
	rt.emit(EventFree, e)
	if rt.log.V(1).Enabled() {
		rt.log.V(1).Info("exception released", "tag", string(e.tag), "id", e.id)
	}
	e.payload = reflect.Value{}
}
