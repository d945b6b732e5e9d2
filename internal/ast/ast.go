// Package ast defines the abstract syntax tree for glint.
//
// Every construct in the grammar is an expression — there is no separate
// statement category. A BLOCK/STATEMENTS list is just a sequence of
// expressions whose last value is the sequence's value.
package ast

import "glint-lang/internal/span"

// Node is the interface implemented by all AST nodes.
type Node interface {
	GetSpan() span.Span
}

// Expr is the interface for expression nodes. In this grammar every node is
// an expression, so Expr and Node coincide; the separate name exists for
// readability at call sites that only ever hold expressions.
type Expr interface {
	Node
	exprNode()
}

// ExprBase provides the common Span field embedded by every concrete node.
type ExprBase struct {
	Span span.Span
}

func (e ExprBase) GetSpan() span.Span { return e.Span }
func (e ExprBase) exprNode()          {}

// File is the root of a parsed program: PROGRAM <- STATEMENTS.
type File struct {
	ExprBase
	Body *StatementsNode
}

// StatementsNode is STATEMENTS <- (EXPRESSION ';'?)*.
type StatementsNode struct {
	ExprBase
	Exprs []Expr
}

// BlockNode is BLOCK <- '{' STATEMENTS '}'. Unlike most single-child rules,
// BLOCK is never hoisted away: it is load-bearing in the evaluator (see the
// BLOCK dispatch case).
type BlockNode struct {
	ExprBase
	Body *StatementsNode
}

// WhileNode is WHILE <- 'while' EXPRESSION BLOCK.
type WhileNode struct {
	ExprBase
	Cond Expr
	Body *BlockNode
}

// IfNode is IF <- 'if' EXPRESSION BLOCK ('else' 'if' EXPRESSION BLOCK)* ('else' BLOCK)?.
// Conds[i] corresponds to Blocks[i]; ElseBlock is nil when there is no trailing else.
type IfNode struct {
	ExprBase
	Conds     []Expr
	Blocks    []*BlockNode
	ElseBlock *BlockNode
}

// Param is PARAMETER <- MUTABLE IDENTIFIER.
type Param struct {
	Name string
	Mut  bool
}

// FunctionNode is FUNCTION <- 'fn' PARAMETERS BLOCK.
type FunctionNode struct {
	ExprBase
	Params []Param
	Body   *BlockNode
}

// CallExpr is the ARGUMENTS suffix of CALL: a PRIMARY/suffix-chain applied to
// a parenthesized argument list.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// IndexExpr is the INDEX suffix of CALL.
type IndexExpr struct {
	ExprBase
	Object Expr
	Index  Expr
}

// DotExpr is the DOT suffix of CALL.
type DotExpr struct {
	ExprBase
	Object   Expr
	Property string
}

// AssignmentNode is ASSIGNMENT <- MUTABLE IDENTIFIER '=' EXPRESSION.
type AssignmentNode struct {
	ExprBase
	Mut   bool
	Name  string
	Value Expr
}

// LogicalOrNode is LOGICAL_OR <- LOGICAL_AND ('||' LOGICAL_AND)*, kept as a
// node only when more than one operand was matched (AST hoisting).
type LogicalOrNode struct {
	ExprBase
	Operands []Expr
}

// LogicalAndNode is LOGICAL_AND <- CONDITION ('&&' CONDITION)*.
type LogicalAndNode struct {
	ExprBase
	Operands []Expr
}

// ConditionNode is CONDITION, restricted to a single comparison (see
// DESIGN.md's Open Question decision on CONDITION chaining).
type ConditionNode struct {
	ExprBase
	Left  Expr
	Op    string
	Right Expr
}

// UnaryPlusNode, UnaryMinusNode and UnaryNotNode are only constructed when
// their respective optional operator token was actually present; otherwise
// parsing falls through to the next tighter rule directly (hoisting).
type UnaryPlusNode struct {
	ExprBase
	Operand Expr
}

type UnaryMinusNode struct {
	ExprBase
	Operand Expr
}

type UnaryNotNode struct {
	ExprBase
	Operand Expr
}

// AdditiveNode and MultiplicativeNode are the left-associative n-ary folds
// over ADDITIVE/MULTIPLICATIVE. len(Ops) == len(Operands)-1.
type AdditiveNode struct {
	ExprBase
	Operands []Expr
	Ops      []string
}

type MultiplicativeNode struct {
	ExprBase
	Operands []Expr
	Ops      []string
}

// IdentifierNode is IDENTIFIER.
type IdentifierNode struct {
	ExprBase
	Name string
}

// ObjectNode is OBJECT <- '{' (OBJECT_PROPERTY (',' OBJECT_PROPERTY)*)? '}'.
// Keys[i] corresponds to Values[i], in source order.
type ObjectNode struct {
	ExprBase
	Keys   []string
	Values []Expr
}

// ArrayNode is ARRAY <- '[' (EXPRESSION (',' EXPRESSION)*)? ']'.
type ArrayNode struct {
	ExprBase
	Elements []Expr
}

// UndefinedNode is the UNDEFINED literal.
type UndefinedNode struct {
	ExprBase
}

// BooleanNode is the BOOLEAN literal.
type BooleanNode struct {
	ExprBase
	Value bool
}

// NumberNode is the NUMBER literal. The grammar only produces nonnegative
// values; negative numbers arise solely through UnaryMinusNode.
type NumberNode struct {
	ExprBase
	Value int64
}

// StringNode is the single-quoted STRING literal: no escape processing.
type StringNode struct {
	ExprBase
	Value string
}

// InterpolatedStringNode is the double-quoted INTERPOLATED_STRING literal.
// Parts holds the plain-text chunks; Exprs holds the embedded expressions.
// len(Parts) == len(Exprs)+1: Parts[i] precedes Exprs[i], and Parts[len(Exprs)]
// is the trailing chunk after the last embedded expression.
type InterpolatedStringNode struct {
	ExprBase
	Parts []string
	Exprs []Expr
}
