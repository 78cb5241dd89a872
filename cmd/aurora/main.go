// Command aurora is the Aurora language driver: run a script file to
// completion, or drop into an interactive REPL (spec §6).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/aurora-lang/aurora/internal/ast"
	"github.com/aurora-lang/aurora/internal/interpreter"
	"github.com/aurora-lang/aurora/internal/lexer"
	"github.com/aurora-lang/aurora/internal/parser"
)

var (
	errColor  = color.New(color.FgRed)
	bannerClr = color.New(color.FgCyan)
)

func main() {
	switch len(os.Args) {
	case 1:
		runREPL()
	case 2:
		if err := runFile(os.Args[1]); err != nil {
			errColor.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Println("Usage: aurora [script]")
		os.Exit(1)
	}
}

// runFile reads path as UTF-8 source and runs it to completion against a
// fresh Interpreter. It returns every lex error (or, if lexing succeeded,
// every parse error) joined into one error, or else the first evaluation
// failure.
func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decls, diag := compile(src)
	if diag != "" {
		return fmt.Errorf("%s", diag)
	}

	in := interpreter.NewStdout()
	if err := in.Run(decls); err != nil {
		return err
	}
	return nil
}

// compile lexes and parses src, returning every lex/parse error joined into
// one diagnostic string (empty if there were none).
func compile(src []byte) ([]ast.Stmt, string) {
	toks, lexErrs := lexer.New(src).Scan()
	if len(lexErrs) > 0 {
		var sb strings.Builder
		for _, e := range lexErrs {
			sb.WriteString(e.Error())
			sb.WriteByte('\n')
		}
		return nil, strings.TrimRight(sb.String(), "\n")
	}

	decls, parseErrs := parser.New(toks).Parse()
	if len(parseErrs) > 0 {
		var sb strings.Builder
		for _, e := range parseErrs {
			sb.WriteString(e.Error())
			sb.WriteByte('\n')
		}
		return nil, strings.TrimRight(sb.String(), "\n")
	}

	return decls, ""
}

// runREPL runs every line as a complete program against one persistent
// Interpreter, so top-level var/function/class declarations accumulate
// across lines the way a session-long script would (spec §6).
func runREPL() {
	bannerClr.Println("Aurora REPL — Ctrl+D to exit")

	rl, err := readline.New(">> ")
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	in := interpreter.NewStdout()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl+D, readline.ErrInterrupt on Ctrl+C
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		decls, diag := compile([]byte(line))
		if diag != "" {
			errColor.Fprintln(os.Stdout, diag)
			continue
		}
		if err := in.Run(decls); err != nil {
			errColor.Fprintln(os.Stdout, err)
		}
	}
}
