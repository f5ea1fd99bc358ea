package trycatch

import (
	"fmt"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

// TerminateHandler runs in place of the default diagnostic when an exception
// reaches an empty scope stack. It is expected not to return; if it does, the
// process is aborted anyway.
type TerminateHandler func(e *Exception)

// SetTerminateHandler registers h, replacing any previous handler. A nil h
// restores the default diagnostic-and-abort behaviour.
func (rt *Runtime) SetTerminateHandler(h TerminateHandler) {
	rt.onTerminate = h
}

func (rt *Runtime) terminate(e *Exception) {
	rt.emit(EventTerminate, e)
	err := errx.Uncaught(fmt.Sprintf("terminating due to uncaught exception of type %q", e.tag)).
		WithContext("tag", string(e.tag)).
		WithContext("id", e.id)
	if h := rt.onTerminate; h != nil && !rt.terminating {
		rt.runTerminateHandler(h, e)
		rt.fatal(errx.Terminate(fmt.Sprintf("terminate handler returned for exception of type %q", e.tag)).
			WithContext("tag", string(e.tag)), false)
	}
	rt.fatal(err, true)
}

// runTerminateHandler calls h with the recursion guard raised. The guard is
// lowered however h leaves, so a handler that unwinds stays registered.
func (rt *Runtime) runTerminateHandler(h TerminateHandler, e *Exception) {
	rt.terminating = true
	defer func() { rt.terminating = false }()
	h(e)
}

// fatal reports err and aborts. With diagnose set a single diagnostic line is
// written to the error output first. fatal never returns.
func (rt *Runtime) fatal(err *errx.Error, diagnose bool) {
	logFatal(rt.log, err, "exception runtime aborting")
	if diagnose {
		fmt.Fprintln(rt.errOut, errx.Diagnostic(diagnosticPrefix, err))
	}
	rt.abort()
	panic(err)
}
