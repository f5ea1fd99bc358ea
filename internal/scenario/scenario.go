// Package scenario runs YAML scripts of throw, rethrow and try steps against a
// fresh trycatch runtime and records what happened.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

// Document is one scenario.
type Document struct {
	Name string `yaml:"name"`
	// Outcome is the expected end state; empty means OutcomeCompleted.
	Outcome Outcome `yaml:"outcome"`
	// TerminateHandler installs a terminate handler that records its
	// invocation and returns.
	TerminateHandler bool   `yaml:"terminateHandler"`
	MaxPayload       uint64 `yaml:"maxPayload"`
	Steps            []Step `yaml:"steps"`
}

// StepKind selects which field of a Step is set.
type StepKind int

const (
	StepInvalid StepKind = iota
	StepThrow
	StepRethrow
	StepTry
	StepPrint
	StepExpect
)

var stepKindValueMap = map[StepKind]string{
	StepThrow:   "throw",
	StepRethrow: "rethrow",
	StepTry:     "try",
	StepPrint:   "print",
	StepExpect:  "expect",
}

func (k StepKind) String() string {
	v, ok := stepKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", int(k))
	}
	return v
}

// Step is a single instruction. Exactly one of the pointer fields matching
// Kind is set; rethrow has none.
type Step struct {
	Kind   StepKind
	Line   int
	Throw  *ThrowStep
	Try    *TryStep
	Print  string
	Expect *ExpectStep
}

// ThrowStep throws Value under Tag, or under the value kind name when Tag is
// empty.
type ThrowStep struct {
	Tag   string `yaml:"tag"`
	Value Value  `yaml:"value"`
}

// EffectiveTag returns the tag the step throws with.
func (s *ThrowStep) EffectiveTag() string {
	if s.Tag != "" {
		return s.Tag
	}
	return s.Value.Kind.String()
}

// TryStep is a protected extent with its catch clauses in source order.
type TryStep struct {
	Body  []Step        `yaml:"body"`
	Catch []CatchClause `yaml:"catch"`
}

// CatchClause runs Steps when the active exception carries Tag.
type CatchClause struct {
	Tag   string `yaml:"tag"`
	Steps []Step `yaml:"steps"`
	Line  int    `yaml:"-"`
}

// ExpectStep asserts on the runtime state. Active is a tag or "none".
type ExpectStep struct {
	Active string `yaml:"active"`
	Depth  *int   `yaml:"depth"`
}

// ActiveNone is the ExpectStep.Active value for an empty exception slot.
const ActiveNone = "none"

// UnmarshalYAML decodes a step from either the scalar "rethrow" or a mapping
// with exactly one key.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	s.Line = node.Line
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == StepRethrow.String() {
			s.Kind = StepRethrow
			return nil
		}
		return lineErrorf(node, "unknown step %q", node.Value)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return lineErrorf(node, "a step must have exactly one key, got %d", len(node.Content)/2)
		}
	default:
		return lineErrorf(node, "a step must be a mapping or \"rethrow\"")
	}

	key, value := node.Content[0], node.Content[1]
	switch key.Value {
	case "throw":
		s.Kind = StepThrow
		s.Throw = &ThrowStep{}
		return decodeStrict(value, s.Throw, "tag", "value")
	case "rethrow":
		s.Kind = StepRethrow
		return nil
	case "try":
		s.Kind = StepTry
		s.Try = &TryStep{}
		return decodeStrict(value, s.Try, "body", "catch")
	case "print":
		s.Kind = StepPrint
		return value.Decode(&s.Print)
	case "expect":
		s.Kind = StepExpect
		s.Expect = &ExpectStep{}
		return decodeStrict(value, s.Expect, "active", "depth")
	}
	return lineErrorf(key, "unknown step %q", key.Value)
}

// UnmarshalYAML records the clause line.
func (c *CatchClause) UnmarshalYAML(node *yaml.Node) error {
	type plain CatchClause
	var p plain
	if err := decodeStrict(node, &p, "tag", "steps"); err != nil {
		return err
	}
	*c = CatchClause(p)
	c.Line = node.Line
	return nil
}

// decodeStrict decodes node into out, rejecting mapping keys outside fields.
// node.Decode does not inherit the decoder's known-field checking.
func decodeStrict(node *yaml.Node, out any, fields ...string) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i < len(node.Content); i += 2 {
			key := node.Content[i]
			if !slices.Contains(fields, key.Value) {
				return lineErrorf(key, "unknown field %q, expected one of %s", key.Value, strings.Join(fields, ", "))
			}
		}
	}
	return node.Decode(out)
}

func lineErrorf(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", node.Line, fmt.Sprintf(format, args...))
}

// Parse decodes every YAML document in data.
func Parse(data []byte) ([]*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var docs []*Document
	for {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errx.WrapScenario(fmt.Sprintf("failed to parse scenario: %v", err), err).
				WithContext("document", len(docs)+1)
		}
		docs = append(docs, &doc)
	}
	if len(docs) == 0 {
		return nil, errx.Scenario("no scenario documents found")
	}
	return docs, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) ([]*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errx.WrapScenario(fmt.Sprintf("failed to read scenario file: %v", err), err).
			WithContext("path", path)
	}
	docs, err := Parse(data)
	if err != nil {
		var e *errx.Error
		if errors.As(err, &e) {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return docs, nil
}
