package trycatch

import (
	"io"
	"os"

	"github.com/go-logr/logr"
)

// ExitCodeAbort is the exit status used when the runtime aborts the process.
const ExitCodeAbort = 134

const diagnosticPrefix = "trycatch"

// Runtime is the exception state block. The zero value is not usable; create
// runtimes with New.
type Runtime struct {
	top       *Marker
	active    *Exception
	needsFree bool
	nextID    uint64

	// terminating guards against a terminate handler that throws.
	terminating bool

	onTerminate TerminateHandler
	alloc       Allocator
	observers   []Observer
	log         logr.Logger
	errOut      io.Writer
	abort       func()
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for tracing and fatal diagnostics.
func WithLogger(logger logr.Logger) Option {
	return func(rt *Runtime) { rt.log = logger }
}

// WithAllocator replaces the default HeapAllocator.
func WithAllocator(a Allocator) Option {
	return func(rt *Runtime) {
		if a != nil {
			rt.alloc = a
		}
	}
}

// WithObserver adds an observer notified of every state transition.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) {
		if o != nil {
			rt.observers = append(rt.observers, o)
		}
	}
}

// WithErrorOutput sets where fatal diagnostics are written. Defaults to
// os.Stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(rt *Runtime) {
		if w != nil {
			rt.errOut = w
		}
	}
}

// WithAbort replaces the function that ends the process after a fatal
// condition. The function is expected not to return; if it does, the runtime
// panics with the fatal error.
func WithAbort(abort func()) Option {
	return func(rt *Runtime) {
		if abort != nil {
			rt.abort = abort
		}
	}
}

// WithTerminateHandler registers h as the initial terminate handler.
func WithTerminateHandler(h TerminateHandler) Option {
	return func(rt *Runtime) { rt.onTerminate = h }
}

// New creates a runtime with an empty scope stack and no active exception.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		alloc:  &HeapAllocator{},
		log:    logr.Discard(),
		errOut: os.Stderr,
		abort:  func() { os.Exit(ExitCodeAbort) },
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

var defaultRuntime = New()

// Default returns the process-wide runtime.
func Default() *Runtime {
	return defaultRuntime
}

func (rt *Runtime) emit(kind EventKind, e *Exception) {
	if len(rt.observers) == 0 {
		return
	}
	ev := Event{Kind: kind, Depth: rt.Depth()}
	if e != nil {
		ev.Tag = e.tag
		ev.ExceptionID = e.id
	}
	for _, o := range rt.observers {
		o.Observe(ev)
	}
}
