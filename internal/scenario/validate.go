package scenario

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Validate checks doc for problems Parse cannot see, such as missing values,
// empty try bodies and duplicate catch tags. The returned list is empty when
// doc is valid.
func Validate(doc *Document) field.ErrorList {
	var errs field.ErrorList
	if doc.Name == "" {
		errs = append(errs, field.Required(field.NewPath("name"), "scenario name is required"))
	}
	if len(doc.Steps) == 0 {
		errs = append(errs, field.Required(field.NewPath("steps"), "at least one step is required"))
	}
	if doc.TerminateHandler && doc.Outcome.OrDefault() == OutcomeCompleted {
		errs = append(errs, field.Invalid(field.NewPath("terminateHandler"), true,
			"a terminate handler only runs when the outcome is terminated"))
	}
	errs = append(errs, validateSteps(field.NewPath("steps"), doc.Steps)...)
	return errs
}

func validateSteps(path *field.Path, steps []Step) field.ErrorList {
	var errs field.ErrorList
	for i := range steps {
		errs = append(errs, validateStep(path.Index(i), &steps[i])...)
	}
	return errs
}

func validateStep(path *field.Path, step *Step) field.ErrorList {
	var errs field.ErrorList
	switch step.Kind {
	case StepThrow:
		if step.Throw.Value.Kind == ValueInvalid {
			errs = append(errs, field.Required(path.Child("throw", "value"), lineDetail(step.Line, "a thrown value is required")))
		}
	case StepTry:
		errs = append(errs, validateTry(path.Child("try"), step)...)
	case StepExpect:
		if step.Expect.Active == "" && step.Expect.Depth == nil {
			errs = append(errs, field.Required(path.Child("expect"), lineDetail(step.Line, "expect needs active or depth")))
		}
		if d := step.Expect.Depth; d != nil && *d < 0 {
			errs = append(errs, field.Invalid(path.Child("expect", "depth"), *d, "must not be negative"))
		}
	case StepPrint, StepRethrow:
	default:
		errs = append(errs, field.NotSupported(path, step.Kind.String(), stepKindNames()))
	}
	return errs
}

func validateTry(path *field.Path, step *Step) field.ErrorList {
	var errs field.ErrorList
	if len(step.Try.Body) == 0 {
		errs = append(errs, field.Required(path.Child("body"), lineDetail(step.Line, "a try needs a body")))
	}
	errs = append(errs, validateSteps(path.Child("body"), step.Try.Body)...)

	seen := sets.New[string]()
	for i, clause := range step.Try.Catch {
		clausePath := path.Child("catch").Index(i)
		switch {
		case clause.Tag == "":
			errs = append(errs, field.Required(clausePath.Child("tag"), lineDetail(clause.Line, "a catch clause needs a tag")))
		case seen.Has(clause.Tag):
			errs = append(errs, field.Duplicate(clausePath.Child("tag"), clause.Tag))
		}
		seen.Insert(clause.Tag)
		errs = append(errs, validateSteps(clausePath.Child("steps"), clause.Steps)...)
	}
	return errs
}

func lineDetail(line int, msg string) string {
	if line == 0 {
		return msg
	}
	return fmt.Sprintf("line %d: %s", line, msg)
}

func stepKindNames() []string {
	names := make([]string, 0, len(stepKindValueMap))
	for _, kind := range []StepKind{StepThrow, StepRethrow, StepTry, StepPrint, StepExpect} {
		names = append(names, kind.String())
	}
	return names
}
