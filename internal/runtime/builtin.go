package runtime

import (
	"fmt"
	"io"

	"glint-lang/internal/ast"
)

// RegisterBuiltins installs the language's two builtin functions, puts and
// assert, into env. Both are immutable bindings, matching every other
// top-level identifier the prelude provides.
func RegisterBuiltins(env *Environment, w io.Writer) {
	env.Initialize("puts", &Function{
		Params: []ast.Param{{Name: "arg", Mut: true}},
		Native: func(callEnv *Environment) (Value, error) {
			arg, err := callEnv.Get("arg")
			if err != nil {
				return nil, err
			}
			fmt.Fprintln(w, arg.String())
			return UndefinedVal{}, nil
		},
	}, false)

	env.Initialize("assert", &Function{
		Params: []ast.Param{{Name: "arg", Mut: true}},
		Native: func(callEnv *Environment) (Value, error) {
			arg, err := callEnv.Get("arg")
			if err != nil {
				return nil, err
			}
			cond, err := ToBool(arg)
			if err != nil {
				return nil, err
			}
			if !cond {
				line, _ := callEnv.Get("__LINE__")
				column, _ := callEnv.Get("__COLUMN__")
				return nil, fmt.Errorf("assert failed at %s:%s.", line.String(), column.String())
			}
			return UndefinedVal{}, nil
		},
	}, false)
}
