package runtime

import "glint-lang/internal/ast"

// Function unifies native and user-defined callables behind one
// representation: exactly one of Native or (Body, Closure) is populated.
type Function struct {
	Params  []ast.Param
	Body    *ast.BlockNode
	Closure *Environment
	Native  NativeFn

	// BoundThis/HasThis record a receiver captured by dot-access (see
	// evalDot): the function itself is never mutated, BindThis returns
	// a shallow copy carrying the receiver.
	BoundThis Value
	HasThis   bool
}

// NativeFn is the Go-side implementation of a builtin function. It reads
// its arguments from callEnv the same way a user-defined function body
// would (by name, via Get), so puts/assert need no special calling
// convention.
type NativeFn func(callEnv *Environment) (Value, error)

// BindThis returns a shallow copy of f with this bound as its receiver.
// f itself is left untouched, so resolving the same property twice (once
// through each of two different objects) never interferes.
func (f *Function) BindThis(this Value) *Function {
	bound := *f
	bound.BoundThis = this
	bound.HasThis = true
	return &bound
}

// GetProperty resolves a named property on v, falling back to the kind's
// builtin properties when v has no own property of that name. User-defined
// properties always shadow builtins of the same name.
func GetProperty(v Value, name string) (Value, error) {
	switch vv := v.(type) {
	case *Object:
		if val, ok := vv.Props[name]; ok {
			return val, nil
		}
		if val, ok := objectBuiltin(vv, name); ok {
			return val, nil
		}
		return nil, ErrType
	case *Array:
		if val, ok := vv.Props[name]; ok {
			return val, nil
		}
		if val, ok := arrayBuiltin(vv, name); ok {
			return val, nil
		}
		return nil, ErrType
	default:
		return nil, ErrType
	}
}

func objectBuiltin(o *Object, name string) (Value, bool) {
	switch name {
	case "size":
		return nativeMethod(func(callEnv *Environment) (Value, error) {
			this, err := callEnv.Get("this")
			if err != nil {
				return nil, err
			}
			obj, err := ToObject(this)
			if err != nil {
				return nil, err
			}
			return LongVal(len(obj.Props)), nil
		}), true
	default:
		return nil, false
	}
}

func arrayBuiltin(a *Array, name string) (Value, bool) {
	switch name {
	case "size":
		return nativeMethod(func(callEnv *Environment) (Value, error) {
			this, err := callEnv.Get("this")
			if err != nil {
				return nil, err
			}
			arr, err := ToArray(this)
			if err != nil {
				return nil, err
			}
			return LongVal(len(arr.Elements)), nil
		}), true
	case "push":
		return nativeMethod(func(callEnv *Environment) (Value, error) {
			this, err := callEnv.Get("this")
			if err != nil {
				return nil, err
			}
			arr, err := ToArray(this)
			if err != nil {
				return nil, err
			}
			arg, err := callEnv.Get("arg")
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, arg)
			return UndefinedVal{}, nil
		}, ast.Param{Name: "arg", Mut: false}), true
	default:
		return nil, false
	}
}

func nativeMethod(fn NativeFn, params ...ast.Param) *Function {
	return &Function{Params: params, Native: fn}
}
