package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
	"github.com/mhahnFr/mh-tryCatch/pkg/trycatch"
)

// Result is the record of one scenario run.
type Result struct {
	Name     string
	Expected Outcome
	Outcome  Outcome
	// Output holds the lines recorded by print steps.
	Output []string
	Events []trycatch.Event
	// TerminatedTag is the tag of the exception that reached the empty scope
	// stack, if any.
	TerminatedTag  trycatch.Tag
	HandlerInvoked bool
	// Diagnostic is what the runtime wrote to its error output.
	Diagnostic string
	Alloc      trycatch.AllocStats
	Err        error
}

// Passed reports whether the run ended the way the document expected.
func (r *Result) Passed() bool {
	return r.Outcome == r.Expected
}

// Runner executes scenario documents, each on a fresh runtime.
type Runner struct {
	log       logr.Logger
	observers []trycatch.Observer
	// MaxPayload limits payload sizes for documents that set no limit.
	MaxPayload uint64
}

// NewRunner creates a runner that passes logger and observers to every
// runtime it creates.
func NewRunner(logger logr.Logger, observers ...trycatch.Observer) *Runner {
	return &Runner{log: logger, observers: observers}
}

// abortSignal is the panic value of the abort hook; it ends a run the way
// process exit ends a program.
type abortSignal struct{}

// failure is the panic value of a failed expect step.
type failure struct {
	err error
}

type execution struct {
	rt     *trycatch.Runtime
	result *Result
	caught []any
}

// Run executes doc and returns its result. Run itself never aborts the
// process: runtime aborts and expectation failures end only the run.
func (r *Runner) Run(doc *Document) *Result {
	result := &Result{Name: doc.Name, Expected: doc.Outcome.OrDefault()}
	var diag bytes.Buffer
	alloc := &trycatch.HeapAllocator{MaxPayload: uintptr(r.MaxPayload)}
	if doc.MaxPayload > 0 {
		alloc.MaxPayload = uintptr(doc.MaxPayload)
	}

	opts := []trycatch.Option{
		trycatch.WithLogger(r.log.WithValues("scenario", doc.Name)),
		trycatch.WithAllocator(alloc),
		trycatch.WithErrorOutput(&diag),
		trycatch.WithAbort(func() { panic(abortSignal{}) }),
		trycatch.WithObserver(trycatch.ObserverFunc(func(ev trycatch.Event) {
			result.Events = append(result.Events, ev)
			if ev.Kind == trycatch.EventTerminate {
				result.TerminatedTag = ev.Tag
			}
		})),
	}
	for _, o := range r.observers {
		opts = append(opts, trycatch.WithObserver(o))
	}
	if doc.TerminateHandler {
		opts = append(opts, trycatch.WithTerminateHandler(func(e *trycatch.Exception) {
			result.HandlerInvoked = true
			result.Output = append(result.Output, fmt.Sprintf("terminate handler: %s", e.Tag()))
		}))
	}

	ex := &execution{rt: trycatch.New(opts...), result: result}
	result.Outcome, result.Err = ex.run(doc.Steps)
	if result.Outcome == OutcomeAborted && result.TerminatedTag != "" {
		result.Outcome = OutcomeTerminated
	}
	result.Diagnostic = strings.TrimSpace(diag.String())
	result.Alloc = alloc.Stats()
	if !result.Passed() && result.Err == nil {
		result.Err = errx.Scenario(fmt.Sprintf("scenario %q ended %s, expected %s", doc.Name, result.Outcome, result.Expected)).
			WithContext("scenario", doc.Name)
	}
	return result
}

func (ex *execution) run(steps []Step) (outcome Outcome, err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case abortSignal:
			outcome = OutcomeAborted
		case failure:
			outcome, err = OutcomeFailed, r.err
		default:
			panic(r)
		}
	}()
	ex.steps(steps)
	return OutcomeCompleted, nil
}

func (ex *execution) steps(steps []Step) {
	for i := range steps {
		ex.step(&steps[i])
	}
}

func (ex *execution) step(s *Step) {
	switch s.Kind {
	case StepThrow:
		ex.throw(s)
	case StepRethrow:
		ex.rt.Rethrow()
	case StepTry:
		ex.try(s.Try)
	case StepPrint:
		ex.print(s.Print)
	case StepExpect:
		ex.expect(s)
	}
}

func (ex *execution) throw(s *Step) {
	tag := trycatch.Tag(s.Throw.EffectiveTag())
	switch v := s.Throw.Value; v.Kind {
	case ValueInt:
		trycatch.ThrowTagged(ex.rt, tag, v.Int)
	case ValueFloat:
		trycatch.ThrowTagged(ex.rt, tag, v.Float)
	case ValueStr:
		trycatch.ThrowTagged(ex.rt, tag, v.Str)
	case ValueBool:
		trycatch.ThrowTagged(ex.rt, tag, v.Bool)
	default:
		ex.fail(s, "throw step has no value")
	}
}

func (ex *execution) try(s *TryStep) {
	handlers := make([]trycatch.Handler, 0, len(s.Catch))
	for _, clause := range s.Catch {
		handlers = append(handlers, trycatch.CatchTag(trycatch.Tag(clause.Tag), func(v any) {
			ex.caught = append(ex.caught, v)
			defer func() { ex.caught = ex.caught[:len(ex.caught)-1] }()
			ex.steps(clause.Steps)
		}))
	}
	ex.rt.Try(func() { ex.steps(s.Body) }, handlers...)
}

func (ex *execution) print(text string) {
	if n := len(ex.caught); n > 0 {
		text = strings.ReplaceAll(text, "{value}", fmt.Sprint(ex.caught[n-1]))
	}
	ex.result.Output = append(ex.result.Output, text)
}

func (ex *execution) expect(s *Step) {
	want := s.Expect
	if want.Active != "" {
		got := ActiveNone
		if e, ok := ex.rt.Active(); ok {
			got = string(e.Tag())
		}
		if got != want.Active {
			ex.fail(s, fmt.Sprintf("active exception is %s, expected %s", got, want.Active))
		}
	}
	if want.Depth != nil && ex.rt.Depth() != *want.Depth {
		ex.fail(s, fmt.Sprintf("scope depth is %d, expected %d", ex.rt.Depth(), *want.Depth))
	}
}

func (ex *execution) fail(s *Step, msg string) {
	panic(failure{err: errx.Scenario(fmt.Sprintf("line %d: %s", s.Line, msg)).
		WithContext("scenario", ex.result.Name).
		WithContext("line", s.Line)})
}

// RunAll runs every document and returns the results in order. The error
// joins the errors of all runs that did not pass.
func (r *Runner) RunAll(docs []*Document) ([]*Result, error) {
	results := make([]*Result, 0, len(docs))
	var errs []error
	for _, doc := range docs {
		res := r.Run(doc)
		results = append(results, res)
		if !res.Passed() {
			errs = append(errs, res.Err)
		}
	}
	return results, errors.Join(errs...)
}
