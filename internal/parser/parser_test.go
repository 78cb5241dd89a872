package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurora-lang/aurora/internal/ast"
	"github.com/aurora-lang/aurora/internal/lexer"
	"github.com/aurora-lang/aurora/internal/parser"
	"github.com/aurora-lang/aurora/internal/token"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, lexErrs := lexer.New([]byte(src)).Scan()
	require.Empty(t, lexErrs)
	decls, errs := parser.New(toks).Parse()
	require.Empty(t, errs)
	return decls
}

func TestParseExpressionPrecedence(t *testing.T) {
	decls := parse(t, "print 1 + 2 * 3;")
	require.Len(t, decls, 1)
	ps, ok := decls[0].(*ast.PrintStmt)
	require.True(t, ok)
	bin, ok := ps.Expr.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op.Lexeme)
	require.IsType(t, &ast.Binary{}, bin.Right)
}

func TestParseAssignmentTargetMustBeVariableOrGet(t *testing.T) {
	_, errs := parser.New(mustScan(t, "1 = 2;")).Parse()
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "Invalid assignment target")
}

func TestParseClassWithSuperclassAndConstructor(t *testing.T) {
	decls := parse(t, `class B < A { B(v) { this.v = v; } get() { return this.v; } }`)
	require.Len(t, decls, 1)
	cd, ok := decls[0].(*ast.ClassStmt)
	require.True(t, ok)
	require.Equal(t, "B", cd.Name.Lexeme)
	require.NotNil(t, cd.Superclass)
	require.Equal(t, "A", cd.Superclass.Name.Lexeme)
	require.Len(t, cd.Methods, 2)
	require.Equal(t, ast.Constructor, cd.Methods[0].Kind)
	require.Equal(t, ast.Method, cd.Methods[1].Kind)
}

func TestParseSuperDotMethod(t *testing.T) {
	decls := parse(t, `class B < A { hi() { return super.hi() + "B"; } }`)
	cd := decls[0].(*ast.ClassStmt)
	ret := cd.Methods[0].Body[0].(*ast.ReturnStmt)
	bin := ret.Value.(*ast.Binary)
	call := bin.Left.(*ast.Call)
	sup := call.Callee.(*ast.Super)
	require.Equal(t, "hi", sup.Method.Lexeme)
}

func TestParseForStmtIsOwnNode(t *testing.T) {
	decls := parse(t, "for (var i = 0; i < 10; i = i + 1) { print i; }")
	_, ok := decls[0].(*ast.ForStmt)
	require.True(t, ok, "for statement must not be desugared at parse time")
}

func TestParseTooManyArguments(t *testing.T) {
	src := "foo("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"
	_, errs := parser.New(mustScan(t, src)).Parse()
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "255")
}

func TestParseSynchronizesAfterError(t *testing.T) {
	// The first statement is broken (no expression after '='); the parser
	// resynchronizes at its ';' and parses the second statement cleanly, so
	// exactly one error is reported.
	_, errs := parser.New(mustScan(t, "var x = ;\nprint 1;")).Parse()
	require.Len(t, errs, 1)
}

func mustScan(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, errs := lexer.New([]byte(src)).Scan()
	require.Empty(t, errs)
	return toks
}
