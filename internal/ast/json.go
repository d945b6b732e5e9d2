package ast

import "glint-lang/internal/span"

// NodeToMap converts an AST node to a map suitable for JSON serialization.
// Every node produces a tagged-union structure: a "kind" field plus its own
// fields, recursively.
func NodeToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return m("File", n.Span, "body", NodeToMap(n.Body))
	case *StatementsNode:
		return m("Statements", n.Span, "exprs", exprSlice(n.Exprs))
	case *BlockNode:
		return m("Block", n.Span, "body", NodeToMap(n.Body))
	case *WhileNode:
		return m("While", n.Span, "cond", NodeToMap(n.Cond), "body", NodeToMap(n.Body))
	case *IfNode:
		conds := exprSlice(n.Conds)
		blocks := make([]interface{}, len(n.Blocks))
		for i, b := range n.Blocks {
			blocks[i] = NodeToMap(b)
		}
		result := m("If", n.Span, "conds", conds, "blocks", blocks)
		if n.ElseBlock != nil {
			result["elseBlock"] = NodeToMap(n.ElseBlock)
		}
		return result
	case *FunctionNode:
		return m("Function", n.Span, "params", paramSlice(n.Params), "body", NodeToMap(n.Body))
	case *CallExpr:
		return m("Call", n.Span, "callee", NodeToMap(n.Callee), "args", exprSlice(n.Args))
	case *IndexExpr:
		return m("Index", n.Span, "object", NodeToMap(n.Object), "index", NodeToMap(n.Index))
	case *DotExpr:
		return m("Dot", n.Span, "object", NodeToMap(n.Object), "property", n.Property)
	case *AssignmentNode:
		return m("Assignment", n.Span, "mut", n.Mut, "name", n.Name, "value", NodeToMap(n.Value))
	case *LogicalOrNode:
		return m("LogicalOr", n.Span, "operands", exprSlice(n.Operands))
	case *LogicalAndNode:
		return m("LogicalAnd", n.Span, "operands", exprSlice(n.Operands))
	case *ConditionNode:
		return m("Condition", n.Span, "op", n.Op, "left", NodeToMap(n.Left), "right", NodeToMap(n.Right))
	case *UnaryPlusNode:
		return m("UnaryPlus", n.Span, "operand", NodeToMap(n.Operand))
	case *UnaryMinusNode:
		return m("UnaryMinus", n.Span, "operand", NodeToMap(n.Operand))
	case *UnaryNotNode:
		return m("UnaryNot", n.Span, "operand", NodeToMap(n.Operand))
	case *AdditiveNode:
		return m("Additive", n.Span, "ops", n.Ops, "operands", exprSlice(n.Operands))
	case *MultiplicativeNode:
		return m("Multiplicative", n.Span, "ops", n.Ops, "operands", exprSlice(n.Operands))
	case *IdentifierNode:
		return m("Identifier", n.Span, "name", n.Name)
	case *ObjectNode:
		return m("Object", n.Span, "keys", n.Keys, "values", exprSlice(n.Values))
	case *ArrayNode:
		return m("Array", n.Span, "elements", exprSlice(n.Elements))
	case *UndefinedNode:
		return m("Undefined", n.Span)
	case *BooleanNode:
		return m("Boolean", n.Span, "value", n.Value)
	case *NumberNode:
		return m("Number", n.Span, "value", n.Value)
	case *StringNode:
		return m("String", n.Span, "value", n.Value)
	case *InterpolatedStringNode:
		return m("InterpolatedString", n.Span, "parts", n.Parts, "exprs", exprSlice(n.Exprs))
	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

// ---- helpers ----

func m(kind string, s span.Span, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"span": spanToMap(s),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func spanToMap(s span.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": map[string]interface{}{
			"offset": s.Start.Offset,
			"line":   s.Start.Line,
			"column": s.Start.Column,
		},
		"end": map[string]interface{}{
			"offset": s.End.Offset,
			"line":   s.End.Line,
			"column": s.End.Column,
		},
	}
}

func exprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = NodeToMap(e)
	}
	return result
}

func paramSlice(params []Param) []interface{} {
	result := make([]interface{}, len(params))
	for i, p := range params {
		result[i] = map[string]interface{}{"name": p.Name, "mut": p.Mut}
	}
	return result
}
