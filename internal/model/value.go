package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind is the shape of a no-op value.
type ValueKind string

const (
	// ValueUndefined renders as `void 0`.
	ValueUndefined ValueKind = "undefined"
	// ValueFalse renders as `false`.
	ValueFalse ValueKind = "false"
	// ValueEmptyString renders as `""`.
	ValueEmptyString ValueKind = "empty-string"
	// ValueObject renders as `{}`.
	ValueObject ValueKind = "object"
	// ValueCallable is a function returning another value.
	ValueCallable ValueKind = "callable"
)

// Value is a side-effect-free stand-in for something the retired library
// would have produced.
type Value struct {
	Kind    ValueKind
	Returns *Value
}

// Undefined returns the undefined value.
func Undefined() Value { return Value{Kind: ValueUndefined} }

// False returns the false literal.
func False() Value { return Value{Kind: ValueFalse} }

// EmptyString returns the empty string literal.
func EmptyString() Value { return Value{Kind: ValueEmptyString} }

// Object returns an empty object literal.
func Object() Value { return Value{Kind: ValueObject} }

// Callable returns a function that ignores its arguments and returns ret.
func Callable(ret Value) Value {
	return Value{Kind: ValueCallable, Returns: &ret}
}

// Noop is `() => {}`.
func Noop() Value { return Callable(Undefined()) }

// NoopFactory is `() => () => {}`, the stand-in for a logger constructor.
func NoopFactory() Value { return Callable(Noop()) }

// NoopDepth returns a callable nested depth times. Depth below one yields Noop.
func NoopDepth(depth int) Value {
	v := Noop()
	for i := 1; i < depth; i++ {
		v = Callable(v)
	}
	return v
}

// IsCallable reports whether v is a function.
func (v Value) IsCallable() bool {
	return v.Kind == ValueCallable
}

// Depth is the number of calls v can absorb before yielding a non-function.
func (v Value) Depth() int {
	depth := 0
	for cur := &v; cur != nil && cur.Kind == ValueCallable; cur = cur.Returns {
		depth++
	}

	return depth
}

// Primary reports whether the rendered value can appear anywhere an
// expression can without parentheses.
func (v Value) Primary() bool {
	switch v.Kind {
	case ValueFalse, ValueEmptyString:
		return true
	default:
		return false
	}
}

// Source renders v as JavaScript.
func (v Value) Source() string {
	switch v.Kind {
	case ValueFalse:
		return "false"
	case ValueEmptyString:
		return `""`
	case ValueObject:
		return "{}"
	case ValueCallable:
		ret := Undefined()
		if v.Returns != nil {
			ret = *v.Returns
		}

		switch ret.Kind {
		case ValueUndefined:
			return "() => {}"
		case ValueObject:
			return "() => ({})"
		default:
			return "() => " + ret.Source()
		}
	default:
		return "void 0"
	}
}

func (v Value) String() string {
	return v.Source()
}

// ParseValue reads back a value rendered by Source.
func ParseValue(src string) (Value, error) {
	src = strings.TrimSpace(src)
	switch src {
	case "void 0":
		return Undefined(), nil
	case "false":
		return False(), nil
	case `""`:
		return EmptyString(), nil
	case "{}", "({})":
		return Object(), nil
	case "() => {}":
		return Noop(), nil
	}

	rest, ok := strings.CutPrefix(src, "() => ")
	if !ok {
		return Value{}, fmt.Errorf("unrecognized value %q", src)
	}

	ret, err := ParseValue(rest)
	if err != nil {
		return Value{}, err
	}

	return Callable(ret), nil
}

// MarshalYAML renders the value as its JavaScript source.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Source(), nil
}

// UnmarshalYAML parses a value written by MarshalYAML.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var src string
	if err := node.Decode(&src); err != nil {
		return err
	}

	parsed, err := ParseValue(src)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}
