// Package lang is the driver façade binding the lexer, parser and runtime
// together into the single entry point a CLI or REPL needs.
package lang

import (
	"fmt"
	"strings"

	"glint-lang/internal/ast"
	"glint-lang/internal/diag"
	"glint-lang/internal/lexer"
	"glint-lang/internal/parser"
	"glint-lang/internal/runtime"
)

// Parse lexes and parses source, returning every diagnostic collected
// across both passes (lexing never stops at the first error, and parsing
// continues after a syntax error via forced advancement).
func Parse(source, path string) (*ast.File, []diag.Diagnostic) {
	l := lexer.New(source, path)
	tokens, lexDiags := l.Tokenize()

	p := parser.New(tokens)
	file, parseDiags := p.ParseFile()

	diags := make([]diag.Diagnostic, 0, len(lexDiags)+len(parseDiags))
	diags = append(diags, lexDiags...)
	diags = append(diags, parseDiags...)
	return file, diags
}

// Run lexes, parses and evaluates source against interp's environment.
// It mirrors the original interpreter's run() contract: a message string
// explains failure instead of an error to propagate, since a lex/parse
// failure and a runtime failure are reported identically to a caller that
// only wants to print one line and move on.
func Run(interp *runtime.Interpreter, source, path string) (runtime.Value, string, bool) {
	file, diags := Parse(source, path)
	if len(diags) > 0 {
		return nil, FormatDiagnostics(path, diags), false
	}

	val, err := interp.Run(file)
	if err != nil {
		return nil, err.Error(), false
	}
	return val, "", true
}

// FormatDiagnostics renders diagnostics the way the original run() logged
// parser errors: one "path:line:column: message\n" line per diagnostic.
func FormatDiagnostics(path string, diags []diag.Diagnostic) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("%s:%d:%d: %s\n", path, d.Span.Start.Line, d.Span.Start.Column, d.Message)
	}
	return strings.Join(lines, "")
}
