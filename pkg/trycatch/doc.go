// Package trycatch implements structured exceptions on top of Go's
// panic/recover: a protected extent is entered with [Runtime.Try], a tagged
// value is thrown from anywhere inside it with [Throw], and control resumes in
// the nearest enclosing extent, whose handlers match the exception's [Tag] by
// exact string identity.
//
// A [Runtime] holds the whole state block: the innermost protected extent,
// the single active exception, its needs-free flag and the optional
// terminate handler. A runtime is not safe for concurrent use; goroutines
// that need exceptions create their own with [New]. [Default] returns the
// process-wide instance.
//
// Basic use:
//
//	rt := trycatch.Default()
//	rt.Try(func() {
//		trycatch.Throw(rt, 42)
//	},
//		trycatch.Catch(func(f float64) { fmt.Println("float", f) }),
//		trycatch.Catch(func(i int) { fmt.Println("int", i) }),
//	)
//
// An exception no handler matches is rethrown to the next enclosing extent.
// With no extent left the runtime terminates: a registered
// [TerminateHandler] runs, otherwise a single diagnostic line naming the tag
// is written to standard error, and the process aborts.
//
// Deferred functions in the frames between the throw site and the handling
// extent run during unwinding, as with any Go panic.
package trycatch
