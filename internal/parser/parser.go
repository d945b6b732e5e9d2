// Package parser implements the syntax analysis for glint.
//
// It is a hand-written recursive-descent parser whose functions mirror the
// grammar's productions one-to-one, replicating PEG-style AST hoisting
// inline: every operator-layer function returns its single child bare when
// no operator token was actually consumed, and only wraps in an n-ary node
// when one was.
package parser

import (
	"strconv"

	"glint-lang/internal/ast"
	"glint-lang/internal/diag"
	"glint-lang/internal/span"
	"glint-lang/internal/token"
)

// Parser holds parsing state over an already-tokenized source.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  []diag.Diagnostic
}

// New creates a Parser over tokens (as produced by lexer.Tokenize).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseFile parses PROGRAM <- STATEMENTS and returns the root File node
// along with any diagnostics encountered.
func (p *Parser) ParseFile() (*ast.File, []diag.Diagnostic) {
	body := p.parseStatements()
	if !p.isAtEnd() {
		p.errorAt(p.peek().Span.Start, "unexpected trailing token %s", p.peekKind())
	}
	file := &ast.File{ExprBase: ast.ExprBase{Span: body.Span}, Body: body}
	return file, p.diags
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekKind() token.Kind {
	return p.tokens[p.pos].Kind
}

func (p *Parser) peekAtKind(offset int) token.Kind {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return token.EOF
	}
	return p.tokens[idx].Kind
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) isAtEnd() bool {
	return p.peekKind() == token.EOF
}

// expect consumes the next token if it matches kind; otherwise it records a
// diagnostic and still consumes one token (unless at EOF), guaranteeing the
// parser always makes forward progress on malformed input.
func (p *Parser) expect(kind token.Kind, msg string) token.Token {
	if p.peekKind() == kind {
		return p.advance()
	}
	p.errorAt(p.peek().Span.Start, "%s (got %s)", msg, p.peekKind())
	if p.isAtEnd() {
		return p.peek()
	}
	return p.advance()
}

func (p *Parser) errorAt(start span.Position, format string, args ...interface{}) {
	end := p.peek().Span.End
	p.diags = append(p.diags, diag.Errorf("E2000", span.Span{Start: start, End: end}, format, args...))
}

// spanFrom builds a span from start to the end of the most recently consumed
// token. Call it after consuming every token that belongs to the node.
func (p *Parser) spanFrom(start span.Position) span.Span {
	end := start
	if p.pos > 0 {
		end = p.tokens[p.pos-1].Span.End
	}
	return span.Span{Start: start, End: end}
}

// ---- STATEMENTS / BLOCK ----

// parseStatements parses STATEMENTS <- (EXPRESSION ';'?)*, stopping at '}'
// or end of input. It is used both for the top-level program and for the
// inside of a BLOCK.
func (p *Parser) parseStatements() *ast.StatementsNode {
	start := p.peek().Span.Start
	var exprs []ast.Expr
	for !p.isAtEnd() && p.peekKind() != token.RBRACE {
		exprs = append(exprs, p.parseExpression())
		if p.peekKind() == token.SEMICOLON {
			p.advance()
		}
	}
	return &ast.StatementsNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Exprs: exprs}
}

// parseBlock parses BLOCK <- '{' STATEMENTS '}'.
func (p *Parser) parseBlock() *ast.BlockNode {
	start := p.peek().Span.Start
	p.expect(token.LBRACE, "expected '{'")
	body := p.parseStatements()
	p.expect(token.RBRACE, "expected '}'")
	return &ast.BlockNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Body: body}
}

// ---- EXPRESSION / ASSIGNMENT ----

// parseExpression parses EXPRESSION <- ASSIGNMENT / LOGICAL_OR.
func (p *Parser) parseExpression() ast.Expr {
	if p.peekKind() == token.KW_MUT ||
		(p.peekKind() == token.IDENT && p.peekAtKind(1) == token.ASSIGN) {
		return p.parseAssignment()
	}
	return p.parseLogicalOr()
}

// parseAssignment parses ASSIGNMENT <- MUTABLE IDENTIFIER '=' EXPRESSION.
func (p *Parser) parseAssignment() ast.Expr {
	start := p.peek().Span.Start
	mut := false
	if p.peekKind() == token.KW_MUT {
		p.advance()
		mut = true
	}
	nameTok := p.expect(token.IDENT, "expected identifier in assignment")
	p.expect(token.ASSIGN, "expected '=' in assignment")
	value := p.parseExpression()
	return &ast.AssignmentNode{
		ExprBase: ast.ExprBase{Span: p.spanFrom(start)},
		Mut:      mut,
		Name:     nameTok.Lexeme,
		Value:    value,
	}
}

// ---- LOGICAL_OR / LOGICAL_AND / CONDITION ----

func (p *Parser) parseLogicalOr() ast.Expr {
	start := p.peek().Span.Start
	first := p.parseLogicalAnd()
	if p.peekKind() != token.OR {
		return first
	}
	operands := []ast.Expr{first}
	for p.peekKind() == token.OR {
		p.advance()
		operands = append(operands, p.parseLogicalAnd())
	}
	return &ast.LogicalOrNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Operands: operands}
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	start := p.peek().Span.Start
	first := p.parseCondition()
	if p.peekKind() != token.AND {
		return first
	}
	operands := []ast.Expr{first}
	for p.peekKind() == token.AND {
		p.advance()
		operands = append(operands, p.parseCondition())
	}
	return &ast.LogicalAndNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Operands: operands}
}

func isComparisonOp(k token.Kind) bool {
	switch k {
	case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE:
		return true
	default:
		return false
	}
}

// parseCondition parses a single (lhs, operator, rhs) comparison. The
// evaluator's CONDITION case expects exactly three children, so only one
// comparison operator is consumed per CONDITION (see DESIGN.md).
func (p *Parser) parseCondition() ast.Expr {
	start := p.peek().Span.Start
	left := p.parseAdditive()
	if !isComparisonOp(p.peekKind()) {
		return left
	}
	opTok := p.advance()
	right := p.parseAdditive()
	return &ast.ConditionNode{
		ExprBase: ast.ExprBase{Span: p.spanFrom(start)},
		Left:     left,
		Op:       opTok.Lexeme,
		Right:    right,
	}
}

// ---- ADDITIVE / UNARY_* / MULTIPLICATIVE ----

func isAdditiveOp(k token.Kind) bool {
	return k == token.PLUS || k == token.MINUS
}

func isMultiplicativeOp(k token.Kind) bool {
	return k == token.STAR || k == token.SLASH || k == token.PERCENT
}

func (p *Parser) parseAdditive() ast.Expr {
	start := p.peek().Span.Start
	first := p.parseUnaryPlus()
	if !isAdditiveOp(p.peekKind()) {
		return first
	}
	operands := []ast.Expr{first}
	var ops []string
	for isAdditiveOp(p.peekKind()) {
		ops = append(ops, p.advance().Lexeme)
		operands = append(operands, p.parseUnaryPlus())
	}
	return &ast.AdditiveNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Operands: operands, Ops: ops}
}

// parseUnaryPlus/parseUnaryMinus/parseUnaryNot each consume at most one of
// their own operator token; note the operand of each is the *next* layer
// down, not a recursive call to itself — a unary prefix therefore binds to
// the entire multiplicative expression that follows it (see SPEC_FULL.md
// §4.1 and §9: "-2 * 3" parses as "-(2 * 3)").
func (p *Parser) parseUnaryPlus() ast.Expr {
	if p.peekKind() == token.PLUS {
		start := p.peek().Span.Start
		p.advance()
		operand := p.parseUnaryMinus()
		return &ast.UnaryPlusNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Operand: operand}
	}
	return p.parseUnaryMinus()
}

func (p *Parser) parseUnaryMinus() ast.Expr {
	if p.peekKind() == token.MINUS {
		start := p.peek().Span.Start
		p.advance()
		operand := p.parseUnaryNot()
		return &ast.UnaryMinusNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Operand: operand}
	}
	return p.parseUnaryNot()
}

func (p *Parser) parseUnaryNot() ast.Expr {
	if p.peekKind() == token.BANG {
		start := p.peek().Span.Start
		p.advance()
		operand := p.parseMultiplicative()
		return &ast.UnaryNotNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Operand: operand}
	}
	return p.parseMultiplicative()
}

func (p *Parser) parseMultiplicative() ast.Expr {
	start := p.peek().Span.Start
	first := p.parseCall()
	if !isMultiplicativeOp(p.peekKind()) {
		return first
	}
	operands := []ast.Expr{first}
	var ops []string
	for isMultiplicativeOp(p.peekKind()) {
		ops = append(ops, p.advance().Lexeme)
		operands = append(operands, p.parseCall())
	}
	return &ast.MultiplicativeNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Operands: operands, Ops: ops}
}

// ---- CALL / ARGUMENTS / INDEX / DOT ----

// parseCall parses CALL <- PRIMARY (ARGUMENTS / INDEX / DOT)*.
func (p *Parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.peekKind() {
		case token.LPAREN:
			expr = p.parseArguments(expr)
		case token.LBRACKET:
			expr = p.parseIndex(expr)
		case token.DOT:
			expr = p.parseDot(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseArguments(callee ast.Expr) ast.Expr {
	start := callee.GetSpan().Start
	p.expect(token.LPAREN, "expected '('")
	var args []ast.Expr
	if p.peekKind() != token.RPAREN {
		args = append(args, p.parseExpression())
		for p.peekKind() == token.COMMA {
			p.advance()
			if p.peekKind() == token.RPAREN {
				break
			}
			args = append(args, p.parseExpression())
		}
	}
	p.expect(token.RPAREN, "expected ')'")
	return &ast.CallExpr{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Callee: callee, Args: args}
}

func (p *Parser) parseIndex(object ast.Expr) ast.Expr {
	start := object.GetSpan().Start
	p.expect(token.LBRACKET, "expected '['")
	index := p.parseExpression()
	p.expect(token.RBRACKET, "expected ']'")
	return &ast.IndexExpr{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Object: object, Index: index}
}

func (p *Parser) parseDot(object ast.Expr) ast.Expr {
	start := object.GetSpan().Start
	p.advance() // '.'
	nameTok := p.expect(token.IDENT, "expected property name after '.'")
	return &ast.DotExpr{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Object: object, Property: nameTok.Lexeme}
}

// ---- PRIMARY ----

func (p *Parser) parsePrimary() ast.Expr {
	start := p.peek().Span.Start

	switch p.peekKind() {
	case token.KW_WHILE:
		return p.parseWhile()
	case token.KW_IF:
		return p.parseIf()
	case token.KW_FN:
		return p.parseFunction()
	case token.LBRACE:
		return p.parseObject()
	case token.LBRACKET:
		return p.parseArray()
	case token.KW_UNDEFINED:
		p.advance()
		return &ast.UndefinedNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}}
	case token.KW_TRUE:
		p.advance()
		return &ast.BooleanNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Value: true}
	case token.KW_FALSE:
		p.advance()
		return &ast.BooleanNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Value: false}
	case token.NUMBER:
		tok := p.advance()
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.errorAt(start, "invalid number literal %q", tok.Lexeme)
		}
		return &ast.NumberNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Value: n}
	case token.IDENT:
		tok := p.advance()
		return &ast.IdentifierNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Name: tok.Lexeme}
	case token.STRING:
		tok := p.advance()
		return &ast.StringNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Value: tok.Lexeme}
	case token.ISTR_LITERAL:
		tok := p.advance()
		return &ast.InterpolatedStringNode{
			ExprBase: ast.ExprBase{Span: p.spanFrom(start)},
			Parts:    []string{tok.Lexeme},
		}
	case token.ISTR_HEAD:
		return p.parseInterpolatedString(start)
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN, "expected ')'")
		return inner
	default:
		p.errorAt(start, "unexpected token %s", p.peekKind())
		if !p.isAtEnd() {
			p.advance()
		}
		return &ast.UndefinedNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}}
	}
}

func (p *Parser) parseWhile() ast.Expr {
	start := p.peek().Span.Start
	p.advance() // 'while'
	cond := p.parseExpression()
	body := p.parseBlock()
	return &ast.WhileNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Cond: cond, Body: body}
}

func (p *Parser) parseIf() ast.Expr {
	start := p.peek().Span.Start
	p.advance() // 'if'

	var conds []ast.Expr
	var blocks []*ast.BlockNode
	var elseBlock *ast.BlockNode

	conds = append(conds, p.parseExpression())
	blocks = append(blocks, p.parseBlock())

	for p.peekKind() == token.KW_ELSE {
		p.advance()
		if p.peekKind() == token.KW_IF {
			p.advance()
			conds = append(conds, p.parseExpression())
			blocks = append(blocks, p.parseBlock())
			continue
		}
		elseBlock = p.parseBlock()
		break
	}

	return &ast.IfNode{
		ExprBase:  ast.ExprBase{Span: p.spanFrom(start)},
		Conds:     conds,
		Blocks:    blocks,
		ElseBlock: elseBlock,
	}
}

func (p *Parser) parseFunction() ast.Expr {
	start := p.peek().Span.Start
	p.advance() // 'fn'
	params := p.parseParameters()
	body := p.parseBlock()
	return &ast.FunctionNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Params: params, Body: body}
}

func (p *Parser) parseParameters() []ast.Param {
	p.expect(token.LPAREN, "expected '('")
	var params []ast.Param
	if p.peekKind() != token.RPAREN {
		params = append(params, p.parseParameter())
		for p.peekKind() == token.COMMA {
			p.advance()
			if p.peekKind() == token.RPAREN {
				break
			}
			params = append(params, p.parseParameter())
		}
	}
	p.expect(token.RPAREN, "expected ')'")
	return params
}

func (p *Parser) parseParameter() ast.Param {
	mut := false
	if p.peekKind() == token.KW_MUT {
		p.advance()
		mut = true
	}
	nameTok := p.expect(token.IDENT, "expected parameter name")
	return ast.Param{Name: nameTok.Lexeme, Mut: mut}
}

func (p *Parser) parseObject() ast.Expr {
	start := p.peek().Span.Start
	p.advance() // '{'
	var keys []string
	var values []ast.Expr
	if p.peekKind() != token.RBRACE {
		k, v := p.parseObjectProperty()
		keys, values = append(keys, k), append(values, v)
		for p.peekKind() == token.COMMA {
			p.advance()
			if p.peekKind() == token.RBRACE {
				break
			}
			k, v = p.parseObjectProperty()
			keys, values = append(keys, k), append(values, v)
		}
	}
	p.expect(token.RBRACE, "expected '}'")
	return &ast.ObjectNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Keys: keys, Values: values}
}

func (p *Parser) parseObjectProperty() (string, ast.Expr) {
	nameTok := p.expect(token.IDENT, "expected property name")
	p.expect(token.COLON, "expected ':' after property name")
	value := p.parseExpression()
	return nameTok.Lexeme, value
}

func (p *Parser) parseArray() ast.Expr {
	start := p.peek().Span.Start
	p.advance() // '['
	var elements []ast.Expr
	if p.peekKind() != token.RBRACKET {
		elements = append(elements, p.parseExpression())
		for p.peekKind() == token.COMMA {
			p.advance()
			if p.peekKind() == token.RBRACKET {
				break
			}
			elements = append(elements, p.parseExpression())
		}
	}
	p.expect(token.RBRACKET, "expected ']'")
	return &ast.ArrayNode{ExprBase: ast.ExprBase{Span: p.spanFrom(start)}, Elements: elements}
}

// parseInterpolatedString parses the remainder of an INTERPOLATED_STRING
// after its ISTR_HEAD token has been recognized by parsePrimary.
func (p *Parser) parseInterpolatedString(start span.Position) ast.Expr {
	headTok := p.advance() // ISTR_HEAD
	parts := []string{headTok.Lexeme}
	var exprs []ast.Expr

	for {
		exprs = append(exprs, p.parseExpression())

		switch p.peekKind() {
		case token.ISTR_MIDDLE:
			tok := p.advance()
			parts = append(parts, tok.Lexeme)
			continue
		case token.ISTR_TAIL:
			tok := p.advance()
			parts = append(parts, tok.Lexeme)
		default:
			p.errorAt(p.peek().Span.Start, "expected continuation of interpolated string")
		}
		break
	}

	return &ast.InterpolatedStringNode{
		ExprBase: ast.ExprBase{Span: p.spanFrom(start)},
		Parts:    parts,
		Exprs:    exprs,
	}
}
