package interpreter

import (
	"github.com/aurora-lang/aurora/internal/ast"
	"github.com/aurora-lang/aurora/internal/token"
	"github.com/aurora-lang/aurora/internal/value"
)

// captureScan walks body collecting every free name referenced in it that
// WouldCapture reports as needing a shared cell (spec §4.5). It pushes a
// temporary frame holding body's own parameters (bound to Nil) before
// scanning and pops it afterward, so WouldCapture's "not in the topmost
// frame" check is evaluated against this function's own scope rather than
// whatever frame the interpreter happens to be sitting in at definition
// time — which is what makes a global correctly count as a free variable
// even though it's sitting in frame 0.
//
// Nested FunctionStmt/ClassStmt bodies are not themselves capture
// boundaries for this purpose: a name referenced only inside a function
// nested two levels deep is still free at this level unless something at
// an intervening level locally binds it (its own name or parameters), so
// the walk recurses into them, tracking local bindings introduced along
// the way without touching the live environment.
func (in *Interpreter) captureScan(params []string, body []ast.Stmt) []value.Capture {
	in.env.PushFrame()
	for _, p := range params {
		in.env.Define(p, value.Nil{})
	}
	defer in.env.PopFrame()

	bound := make(map[string]bool, len(params))
	for _, p := range params {
		bound[p] = true
	}

	var captures []value.Capture
	captured := make(map[string]bool)

	record := func(name string) {
		if bound[name] || captured[name] {
			return
		}
		if !in.env.WouldCapture(name) {
			return
		}
		captured[name] = true
		if cell, ok := in.env.CellFor(name); ok {
			captures = append(captures, value.Capture{Name: name, Cell: cell})
		}
	}

	shadow := func(names []string) []string {
		var added []string
		for _, n := range names {
			if !bound[n] {
				bound[n] = true
				added = append(added, n)
			}
		}
		return added
	}
	unshadow := func(added []string) {
		for _, n := range added {
			delete(bound, n)
		}
	}

	var scanStmt func(ast.Stmt)
	var scanExpr func(ast.Expr)

	scanExpr = func(e ast.Expr) {
		if e == nil {
			return
		}
		switch x := e.(type) {
		case *ast.Variable:
			record(x.Name.Lexeme)
		case *ast.Assign:
			record(x.Name.Lexeme)
			scanExpr(x.Expr)
		case *ast.This:
			record("this")
		case *ast.Super:
			record("this")
		case *ast.Unary:
			scanExpr(x.Right)
		case *ast.Binary:
			scanExpr(x.Left)
			scanExpr(x.Right)
		case *ast.Logical:
			scanExpr(x.Left)
			scanExpr(x.Right)
		case *ast.Grouping:
			scanExpr(x.Expr)
		case *ast.Call:
			scanExpr(x.Callee)
			for _, a := range x.Args {
				scanExpr(a)
			}
		case *ast.Get:
			scanExpr(x.Object)
		case *ast.Set:
			scanExpr(x.Object)
			scanExpr(x.Value)
		case *ast.Literal:
			// no references
		}
	}

	scanStmt = func(s ast.Stmt) {
		switch x := s.(type) {
		case *ast.ExpressionStmt:
			scanExpr(x.Expr)
		case *ast.PrintStmt:
			scanExpr(x.Expr)
		case *ast.VarStmt:
			scanExpr(x.Init)
		case *ast.BlockStmt:
			for _, d := range x.Decls {
				scanStmt(d)
			}
		case *ast.IfStmt:
			scanExpr(x.Condition)
			scanStmt(x.Then)
			if x.Else != nil {
				scanStmt(x.Else)
			}
		case *ast.WhileStmt:
			scanExpr(x.Condition)
			scanStmt(x.Body)
		case *ast.ForStmt:
			if x.Init != nil {
				scanStmt(x.Init)
			}
			scanExpr(x.Condition)
			scanExpr(x.Incr)
			scanStmt(x.Body)
		case *ast.ReturnStmt:
			scanExpr(x.Value)
		case *ast.FunctionStmt:
			names := append([]string{x.Name.Lexeme}, paramLexemes(x.Params)...)
			added := shadow(names)
			for _, st := range x.Body {
				scanStmt(st)
			}
			unshadow(added)
		case *ast.ClassStmt:
			added := shadow([]string{x.Name.Lexeme})
			for _, m := range x.Methods {
				mAdded := shadow(paramLexemes(m.Params))
				for _, st := range m.Body {
					scanStmt(st)
				}
				unshadow(mAdded)
			}
			unshadow(added)
		}
	}

	for _, s := range body {
		scanStmt(s)
	}

	return captures
}

func paramLexemes(toks []token.Token) []string {
	names := make([]string, len(toks))
	for i, t := range toks {
		names[i] = t.Lexeme
	}
	return names
}
