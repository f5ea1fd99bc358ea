package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValueKind is the Go type a scenario value is thrown as.
type ValueKind int

const (
	ValueInvalid ValueKind = iota
	ValueInt
	ValueFloat
	ValueStr
	ValueBool
)

var valueKindValueMap = map[ValueKind]string{
	ValueInt:   "int",
	ValueFloat: "float",
	ValueStr:   "str",
	ValueBool:  "bool",
}

func (k ValueKind) String() string {
	v, ok := valueKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", int(k))
	}
	return v
}

// Value is a scalar thrown by a scenario. The kind follows the YAML tag of
// the scalar, so 42 is an int, 4.2 a float, "42" a str and true a bool.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return lineErrorf(node, "a thrown value must be a scalar")
	}
	switch node.ShortTag() {
	case "!!int":
		v.Kind = ValueInt
		return node.Decode(&v.Int)
	case "!!float":
		v.Kind = ValueFloat
		return node.Decode(&v.Float)
	case "!!str":
		v.Kind = ValueStr
		v.Str = node.Value
		return nil
	case "!!bool":
		v.Kind = ValueBool
		return node.Decode(&v.Bool)
	}
	return lineErrorf(node, "unsupported value %q (%s)", node.Value, node.ShortTag())
}

// Interface returns the Go value the scenario throws.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueInt:
		return v.Int
	case ValueFloat:
		return v.Float
	case ValueStr:
		return v.Str
	case ValueBool:
		return v.Bool
	}
	return nil
}
