// Package runtime implements the value system, environment, and evaluator
// for glint.
package runtime

import (
	"errors"
	"strconv"
	"strings"
)

// Value is the tagged-union interface implemented by every runtime kind:
// Undefined, Bool, Long, String, Object, Array, Function.
type Value interface {
	TypeName() string
	String() string
}

// ErrType is returned by every coercion/operation that received an operand
// of the wrong kind. Its text is fixed by the error taxonomy: "type error.".
var ErrType = errors.New("type error.")

// ---- scalar kinds (value semantics) ----

type UndefinedVal struct{}

func (UndefinedVal) TypeName() string { return "undefined" }
func (UndefinedVal) String() string   { return "undefined" }

type BoolVal bool

func (v BoolVal) TypeName() string { return "bool" }
func (v BoolVal) String() string {
	if v {
		return "true"
	}
	return "false"
}

// LongVal is the sole numeric kind: a signed 64-bit integer.
type LongVal int64

func (v LongVal) TypeName() string { return "long" }
func (v LongVal) String() string   { return strconv.FormatInt(int64(v), 10) }

type StringVal string

func (v StringVal) TypeName() string { return "string" }
func (v StringVal) String() string   { return string(v) }

// ---- reference kinds (shared handles) ----

// Object is a heap-shared mapping from property name to Value. Keys
// preserves insertion order (observable through str() rendering).
type Object struct {
	Keys  []string
	Props map[string]Value
}

func NewObject() *Object {
	return &Object{Props: make(map[string]Value)}
}

// Set inserts or overwrites a property, tracking insertion order for new keys.
func (o *Object) Set(name string, v Value) {
	if _, exists := o.Props[name]; !exists {
		o.Keys = append(o.Keys, name)
	}
	o.Props[name] = v
}

func (o *Object) TypeName() string { return "object" }

func (o *Object) String() string {
	parts := make([]string, 0, len(o.Keys))
	for _, k := range o.Keys {
		parts = append(parts, strconv.Quote(k)+": "+o.Props[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Array is a heap-shared ordered sequence of Value, also carrying its own
// property map so it can be treated as an object for property lookup.
type Array struct {
	Elements []Value
	Object
}

func NewArray(elements []Value) *Array {
	return &Array{Elements: elements, Object: Object{Props: make(map[string]Value)}}
}

func (a *Array) TypeName() string { return "array" }

func (a *Array) String() string {
	parts := make([]string, 0, len(a.Elements))
	for _, e := range a.Elements {
		parts = append(parts, e.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v *Function) TypeName() string { return "function" }
func (v *Function) String() string   { return "[function]" }

// ---- coercions (§4.2) ----

func ToBool(v Value) (bool, error) {
	switch vv := v.(type) {
	case BoolVal:
		return bool(vv), nil
	case LongVal:
		return vv != 0, nil
	default:
		return false, ErrType
	}
}

func ToLong(v Value) (int64, error) {
	switch vv := v.(type) {
	case LongVal:
		return int64(vv), nil
	case BoolVal:
		if vv {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, ErrType
	}
}

func ToGoString(v Value) (string, error) {
	if s, ok := v.(StringVal); ok {
		return string(s), nil
	}
	return "", ErrType
}

func ToFunction(v Value) (*Function, error) {
	if f, ok := v.(*Function); ok {
		return f, nil
	}
	return nil, ErrType
}

func ToObject(v Value) (*Object, error) {
	if o, ok := v.(*Object); ok {
		return o, nil
	}
	return nil, ErrType
}

func ToArray(v Value) (*Array, error) {
	if a, ok := v.(*Array); ok {
		return a, nil
	}
	return nil, ErrType
}

// ---- comparisons (§4.2) ----

// Compare implements the CONDITION operators for same-kind scalars.
// Different kinds, or any Object/Array/Function operand, is a type error.
func Compare(left, right Value, op string) (bool, error) {
	switch l := left.(type) {
	case UndefinedVal:
		if _, ok := right.(UndefinedVal); !ok {
			return false, ErrType
		}
		return compareResult(op, 0, true), nil
	case BoolVal:
		r, ok := right.(BoolVal)
		if !ok {
			return false, ErrType
		}
		return compareResult(op, boolCmp(bool(l), bool(r)), false), nil
	case LongVal:
		r, ok := right.(LongVal)
		if !ok {
			return false, ErrType
		}
		return compareResult(op, longCmp(int64(l), int64(r)), false), nil
	case StringVal:
		r, ok := right.(StringVal)
		if !ok {
			return false, ErrType
		}
		return compareResult(op, strings.Compare(string(l), string(r)), false), nil
	default:
		return false, ErrType
	}
}

func boolCmp(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func longCmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareResult applies op to an ordering result. isUndefined short-circuits
// the relational operators to false, per §4.2: only "Undefined == Undefined"
// (and its negation) are meaningful.
func compareResult(op string, cmp int, isUndefined bool) bool {
	if isUndefined {
		return op == "=="
	}
	switch op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}
