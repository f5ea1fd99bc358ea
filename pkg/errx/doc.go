// Package errx provides structured, code-based errors for the trycatch runtime
// and its command-line tooling.
//
// Every error carries:
//   - A stable 5-digit code (e.g., "70000" for an uncaught exception)
//   - A category description (e.g., "Uncaught exception")
//   - A message suitable for a one-line diagnostic
//   - Optional structured context (key-value pairs)
//   - Optional cause and base sentinel errors
//
// The first two digits of a code select the domain:
//   - 70xxx: uncaught exceptions reaching an empty scope stack
//   - 71xxx: rethrow without an active exception, throw of a nil exception
//   - 72xxx: exception storage could not be allocated
//   - 73xxx: terminate handler misbehaviour
//   - 74xxx: scenario documents and scenario runs
//   - 75xxx: CLI/argument validation
//   - 79xxx: configuration
//
// The last three digits are reserved for subcodes.
//
// Example usage:
//
//	err := errx.Uncaught("terminating due to uncaught exception").
//		WithContext("tag", "int")
//
//	fmt.Fprintln(os.Stderr, errx.Diagnostic("trycatch", err))
//	fmt.Println(errx.DebugString(err))
package errx
