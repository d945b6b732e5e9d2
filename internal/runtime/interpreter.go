package runtime

import (
	"fmt"
	"io"
	"strings"

	"glint-lang/internal/ast"
	"glint-lang/internal/span"
)

// RuntimeError is a fully-formed runtime failure, carrying the span at
// which it was raised for diagnostic purposes.
type RuntimeError struct {
	Message string
	Span    span.Span
}

// Error returns the bare message text, verbatim, per the error taxonomy's
// exact-message contract. Span is carried alongside for callers that want
// to render position context themselves; it is never folded into the text.
func (e *RuntimeError) Error() string {
	return e.Message
}

func runtimeErr(s span.Span, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Span: s}
}

// Interpreter walks the AST and executes it against a global environment
// pre-populated with the builtin functions.
type Interpreter struct {
	global *Environment
	output io.Writer
}

// NewInterpreter creates a new interpreter with builtins registered in a
// fresh global scope.
func NewInterpreter(output io.Writer) *Interpreter {
	global := NewEnvironment()
	RegisterBuiltins(global, output)
	return &Interpreter{global: global, output: output}
}

// Global returns the interpreter's global environment, so a REPL can keep
// reusing it across successive inputs.
func (i *Interpreter) Global() *Environment {
	return i.global
}

// Run evaluates an entire parsed file against the interpreter's global
// environment and returns the value of its last expression.
func (i *Interpreter) Run(file *ast.File) (Value, error) {
	return i.RunIn(file, i.global)
}

// RunIn evaluates file against an explicit environment, letting a REPL
// reuse one running environment across inputs while still using a fresh
// one for e.g. tests.
func (i *Interpreter) RunIn(file *ast.File, env *Environment) (Value, error) {
	return eval(file, env)
}

// ============================================================
// Dispatch
// ============================================================

func eval(node ast.Node, env *Environment) (Value, error) {
	switch n := node.(type) {
	case *ast.File:
		return eval(n.Body, env)
	case *ast.StatementsNode:
		return evalStatements(n, env)
	case *ast.BlockNode:
		return eval(n.Body, env)
	case *ast.WhileNode:
		return evalWhile(n, env)
	case *ast.IfNode:
		return evalIf(n, env)
	case *ast.FunctionNode:
		return &Function{Params: n.Params, Body: n.Body, Closure: env}, nil
	case *ast.CallExpr:
		return evalCall(n, env)
	case *ast.IndexExpr:
		return evalIndex(n, env)
	case *ast.DotExpr:
		return evalDot(n, env)
	case *ast.AssignmentNode:
		return evalAssignment(n, env)
	case *ast.LogicalOrNode:
		return evalLogicalOr(n, env)
	case *ast.LogicalAndNode:
		return evalLogicalAnd(n, env)
	case *ast.ConditionNode:
		return evalCondition(n, env)
	case *ast.UnaryPlusNode:
		return eval(n.Operand, env)
	case *ast.UnaryMinusNode:
		return evalUnaryMinus(n, env)
	case *ast.UnaryNotNode:
		return evalUnaryNot(n, env)
	case *ast.AdditiveNode:
		return evalArithFold(n.Span, n.Operands, n.Ops, env)
	case *ast.MultiplicativeNode:
		return evalArithFold(n.Span, n.Operands, n.Ops, env)
	case *ast.IdentifierNode:
		v, err := env.Get(n.Name)
		if err != nil {
			return nil, runtimeErr(n.Span, "%s", err)
		}
		return v, nil
	case *ast.ObjectNode:
		return evalObject(n, env)
	case *ast.ArrayNode:
		return evalArray(n, env)
	case *ast.UndefinedNode:
		return UndefinedVal{}, nil
	case *ast.BooleanNode:
		return BoolVal(n.Value), nil
	case *ast.NumberNode:
		return LongVal(n.Value), nil
	case *ast.StringNode:
		return StringVal(n.Value), nil
	case *ast.InterpolatedStringNode:
		return evalInterpolatedString(n, env)
	default:
		return nil, runtimeErr(node.GetSpan(), "invalid internal condition.")
	}
}

func evalStatements(n *ast.StatementsNode, env *Environment) (Value, error) {
	if len(n.Exprs) == 0 {
		return UndefinedVal{}, nil
	}
	for _, e := range n.Exprs[:len(n.Exprs)-1] {
		if _, err := eval(e, env); err != nil {
			return nil, err
		}
	}
	return eval(n.Exprs[len(n.Exprs)-1], env)
}

func evalWhile(n *ast.WhileNode, env *Environment) (Value, error) {
	for {
		cond, err := eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		ok, err := ToBool(cond)
		if err != nil {
			return nil, runtimeErr(n.Cond.GetSpan(), "%s", err)
		}
		if !ok {
			break
		}
		if _, err := eval(n.Body, env); err != nil {
			return nil, err
		}
	}
	return UndefinedVal{}, nil
}

func evalIf(n *ast.IfNode, env *Environment) (Value, error) {
	for idx, cond := range n.Conds {
		v, err := eval(cond, env)
		if err != nil {
			return nil, err
		}
		ok, err := ToBool(v)
		if err != nil {
			return nil, runtimeErr(cond.GetSpan(), "%s", err)
		}
		if ok {
			return eval(n.Blocks[idx], env)
		}
	}
	if n.ElseBlock != nil {
		return eval(n.ElseBlock, env)
	}
	return UndefinedVal{}, nil
}

func evalCall(n *ast.CallExpr, env *Environment) (Value, error) {
	calleeVal, err := eval(n.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, err := ToFunction(calleeVal)
	if err != nil {
		return nil, runtimeErr(n.Span, "%s", err)
	}
	if len(fn.Params) > len(n.Args) {
		return nil, runtimeErr(n.Span, "arguments error...")
	}

	callEnv := NewEnvironment()
	callEnv.Initialize("self", calleeVal, false)
	for idx, param := range fn.Params {
		argVal, err := eval(n.Args[idx], env)
		if err != nil {
			return nil, err
		}
		callEnv.Initialize(param.Name, argVal, param.Mut)
	}
	callEnv.Initialize("__LINE__", LongVal(n.Span.Start.Line), false)
	callEnv.Initialize("__COLUMN__", LongVal(n.Span.Start.Column), false)

	return fn.Invoke(callEnv)
}

func evalIndex(n *ast.IndexExpr, env *Environment) (Value, error) {
	objVal, err := eval(n.Object, env)
	if err != nil {
		return nil, err
	}
	arr, err := ToArray(objVal)
	if err != nil {
		return nil, runtimeErr(n.Span, "%s", err)
	}
	idxVal, err := eval(n.Index, env)
	if err != nil {
		return nil, err
	}
	idx, err := ToLong(idxVal)
	if err != nil {
		return nil, runtimeErr(n.Span, "%s", err)
	}
	if idx < 0 || idx >= int64(len(arr.Elements)) {
		return UndefinedVal{}, nil
	}
	return arr.Elements[idx], nil
}

func evalDot(n *ast.DotExpr, env *Environment) (Value, error) {
	objVal, err := eval(n.Object, env)
	if err != nil {
		return nil, err
	}
	prop, err := GetProperty(objVal, n.Property)
	if err != nil {
		return nil, runtimeErr(n.Span, "%s", err)
	}
	if fn, ok := prop.(*Function); ok {
		return fn.BindThis(objVal), nil
	}
	return prop, nil
}

func evalAssignment(n *ast.AssignmentNode, env *Environment) (Value, error) {
	val, err := eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	if env.Has(n.Name) {
		if err := env.Assign(n.Name, val); err != nil {
			return nil, runtimeErr(n.Span, "%s", err)
		}
	} else {
		env.Initialize(n.Name, val, n.Mut)
	}
	return val, nil
}

func evalLogicalOr(n *ast.LogicalOrNode, env *Environment) (Value, error) {
	var val Value = UndefinedVal{}
	for _, operand := range n.Operands {
		v, err := eval(operand, env)
		if err != nil {
			return nil, err
		}
		ok, err := ToBool(v)
		if err != nil {
			return nil, runtimeErr(operand.GetSpan(), "%s", err)
		}
		val = v
		if ok {
			return val, nil
		}
	}
	return val, nil
}

func evalLogicalAnd(n *ast.LogicalAndNode, env *Environment) (Value, error) {
	var val Value = UndefinedVal{}
	for _, operand := range n.Operands {
		v, err := eval(operand, env)
		if err != nil {
			return nil, err
		}
		ok, err := ToBool(v)
		if err != nil {
			return nil, runtimeErr(operand.GetSpan(), "%s", err)
		}
		val = v
		if !ok {
			return val, nil
		}
	}
	return val, nil
}

func evalCondition(n *ast.ConditionNode, env *Environment) (Value, error) {
	lhs, err := eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	rhs, err := eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	result, err := Compare(lhs, rhs, n.Op)
	if err != nil {
		return nil, runtimeErr(n.Span, "%s", err)
	}
	return BoolVal(result), nil
}

func evalUnaryMinus(n *ast.UnaryMinusNode, env *Environment) (Value, error) {
	v, err := eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	l, err := ToLong(v)
	if err != nil {
		return nil, runtimeErr(n.Span, "%s", err)
	}
	return LongVal(-l), nil
}

func evalUnaryNot(n *ast.UnaryNotNode, env *Environment) (Value, error) {
	v, err := eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	b, err := ToBool(v)
	if err != nil {
		return nil, runtimeErr(n.Span, "%s", err)
	}
	return BoolVal(!b), nil
}

// evalArithFold implements both ADDITIVE and MULTIPLICATIVE: a
// left-associative fold of Long operands, len(ops) == len(operands)-1.
func evalArithFold(sp span.Span, operands []ast.Expr, ops []string, env *Environment) (Value, error) {
	first, err := eval(operands[0], env)
	if err != nil {
		return nil, err
	}
	ret, err := ToLong(first)
	if err != nil {
		return nil, runtimeErr(sp, "%s", err)
	}
	for idx, op := range ops {
		v, err := eval(operands[idx+1], env)
		if err != nil {
			return nil, err
		}
		n, err := ToLong(v)
		if err != nil {
			return nil, runtimeErr(sp, "%s", err)
		}
		switch op {
		case "+":
			ret += n
		case "-":
			ret -= n
		case "*":
			ret *= n
		case "/":
			if n == 0 {
				return nil, runtimeErr(sp, "division by zero.")
			}
			ret /= n
		case "%":
			if n == 0 {
				return nil, runtimeErr(sp, "division by zero.")
			}
			ret %= n
		}
	}
	return LongVal(ret), nil
}

func evalObject(n *ast.ObjectNode, env *Environment) (Value, error) {
	obj := NewObject()
	for idx, key := range n.Keys {
		val, err := eval(n.Values[idx], env)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	return obj, nil
}

func evalArray(n *ast.ArrayNode, env *Environment) (Value, error) {
	elements := make([]Value, len(n.Elements))
	for idx, e := range n.Elements {
		v, err := eval(e, env)
		if err != nil {
			return nil, err
		}
		elements[idx] = v
	}
	return NewArray(elements), nil
}

func evalInterpolatedString(n *ast.InterpolatedStringNode, env *Environment) (Value, error) {
	var sb strings.Builder
	for idx, part := range n.Parts {
		sb.WriteString(part)
		if idx < len(n.Exprs) {
			v, err := eval(n.Exprs[idx], env)
			if err != nil {
				return nil, err
			}
			sb.WriteString(v.String())
		}
	}
	return StringVal(sb.String()), nil
}

// Invoke calls f with callEnv as its call frame. callEnv already carries
// self/__LINE__/__COLUMN__ and the bound parameters; Invoke only adds the
// receiver (for dot-bound functions) and, for user-defined functions,
// wires the defining closure onto the frame before evaluating the body.
func (f *Function) Invoke(callEnv *Environment) (Value, error) {
	if f.HasThis {
		callEnv.Initialize("this", f.BoundThis, false)
	}
	if f.Native != nil {
		return f.Native(callEnv)
	}
	callEnv.AppendOuter(f.Closure)
	return eval(f.Body, callEnv)
}
