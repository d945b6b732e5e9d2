// Command glint is the CLI entry point for the glint toolchain.
//
// Usage:
//
//	glint tokens <file>            Print tokens
//	glint tokens <file> --json     Print tokens as JSON
//	glint parse  <file>            Print AST as JSON
//	glint run    <file>            Run a source file
//	glint repl                     Start interactive REPL
package main

import (
	"fmt"
	"os"

	"glint-lang/internal/ast"
	"glint-lang/internal/lang"
	"glint-lang/internal/lexer"
	"glint-lang/internal/runtime"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "tokens":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		source := readFile(os.Args[2])
		cmdTokens(source, os.Args[2], hasFlag("--json"))
	case "parse":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		source := readFile(os.Args[2])
		cmdParse(source, os.Args[2])
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "error: missing file argument")
			os.Exit(1)
		}
		source := readFile(os.Args[2])
		cmdRun(source, os.Args[2])
	case "repl":
		cmdRepl()
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command '%s'\n", command)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  glint tokens <file> [--json]   Tokenize and print tokens")
	fmt.Fprintln(os.Stderr, "  glint parse  <file>            Parse and print AST (JSON)")
	fmt.Fprintln(os.Stderr, "  glint run    <file>            Run a source file")
	fmt.Fprintln(os.Stderr, "  glint repl                     Start interactive REPL")
}

func readFile(filename string) string {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot read file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(source)
}

func hasFlag(flag string) bool {
	for _, arg := range os.Args[3:] {
		if arg == flag {
			return true
		}
	}
	return false
}

// ---- tokens command ----

func cmdTokens(source, filename string, jsonMode bool) {
	l := lexer.New(source, filename)
	tokens, diags := l.Tokenize()

	if jsonMode {
		printTokensJSON(tokens, diags)
	} else {
		printTokensText(tokens, diags)
	}

	if len(diags) > 0 {
		os.Exit(1)
	}
}

// ---- parse command ----

func cmdParse(source, filename string) {
	file, diags := lang.Parse(source, filename)

	output := map[string]interface{}{
		"ast":         ast.NodeToMap(file),
		"diagnostics": diagsToSlice(diags),
	}
	printJSON(output)

	if len(diags) > 0 {
		os.Exit(1)
	}
}

// ---- run command ----

func cmdRun(source, filename string) {
	if hasFlag("--ast") {
		if file, diags := lang.Parse(source, filename); len(diags) == 0 {
			printJSON(ast.NodeToMap(file))
		}
	}
	interp := runtime.NewInterpreter(os.Stdout)
	if _, msg, ok := lang.Run(interp, source, filename); !ok {
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
