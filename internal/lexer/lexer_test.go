package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurora-lang/aurora/internal/lexer"
	"github.com/aurora-lang/aurora/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, errs := lexer.New([]byte("(){},.-+;*/ ! != = == < <= > >=")).Scan()
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.Bang, token.BangEqual, token.Equal,
		token.EqualEqual, token.Less, token.LessEqual, token.Greater,
		token.GreaterEqual, token.EOF,
	}, kinds(toks))
}

func TestScanLineComment(t *testing.T) {
	toks, errs := lexer.New([]byte("1 // a comment\n2")).Scan()
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{token.Number, token.Number, token.EOF}, kinds(toks))
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
}

func TestScanStringLiteral(t *testing.T) {
	toks, errs := lexer.New([]byte(`"hello world"`)).Scan()
	require.Empty(t, errs)
	require.Equal(t, token.String, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Literal)
}

func TestScanUnterminatedString(t *testing.T) {
	_, errs := lexer.New([]byte(`"hello`)).Scan()
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "Unterminated string")
}

func TestScanMultilineString(t *testing.T) {
	toks, errs := lexer.New([]byte("\"a\nb\" 1")).Scan()
	require.Empty(t, errs)
	require.Equal(t, "a\nb", toks[0].Literal)
	require.Equal(t, 2, toks[1].Line)
}

func TestScanNumberLiteral(t *testing.T) {
	toks, errs := lexer.New([]byte("123 45.67")).Scan()
	require.Empty(t, errs)
	require.Equal(t, "123", toks[0].Literal)
	require.Equal(t, "45.67", toks[1].Literal)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, errs := lexer.New([]byte("class this super foo_bar")).Scan()
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{token.Class, token.This, token.Super, token.Identifier, token.EOF}, kinds(toks))
}

func TestScanUnexpectedCharacterContinuesBestEffort(t *testing.T) {
	toks, errs := lexer.New([]byte("1 @ 2")).Scan()
	require.Len(t, errs, 1)
	require.Equal(t, []token.Kind{token.Number, token.Number, token.EOF}, kinds(toks))
}
