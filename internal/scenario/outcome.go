package scenario

import "fmt"

// Outcome is how a scenario run ended.
type Outcome string

const (
	// OutcomeCompleted means every step ran.
	OutcomeCompleted Outcome = "completed"
	// OutcomeTerminated means an exception reached the empty scope stack.
	OutcomeTerminated Outcome = "terminated"
	// OutcomeAborted means the runtime aborted on misuse, such as a rethrow
	// without an active exception or a failed allocation.
	OutcomeAborted Outcome = "aborted"
	// OutcomeFailed means an expect step did not hold.
	OutcomeFailed Outcome = "failed"
)

// UnmarshalText accepts the outcomes a document may expect.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch v := Outcome(text); v {
	case OutcomeCompleted, OutcomeTerminated, OutcomeAborted:
		*o = v
		return nil
	}
	return fmt.Errorf("unknown outcome %q", string(text))
}

// OrDefault returns o, or OutcomeCompleted when o is empty.
func (o Outcome) OrDefault() Outcome {
	if o == "" {
		return OutcomeCompleted
	}
	return o
}
