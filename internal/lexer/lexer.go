// Package lexer turns Aurora source text into a stream of tokens.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aurora-lang/aurora/internal/token"
)

// Error is a lexical diagnostic: an unterminated string or an unexpected
// character. Lexing does not stop at the first one — it records the error
// and keeps scanning (spec: "best-effort").
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// Scanner is a single-pass, single-use byte scanner over UTF-8 source text.
type Scanner struct {
	src    []byte
	idx    int // index of the current byte; -1 before the first next()
	ch     byte
	line   int
	errors []*Error
}

// New creates a Scanner over src.
func New(src []byte) *Scanner {
	return &Scanner{src: src, idx: -1, line: 1}
}

func (s *Scanner) next() bool {
	if s.idx == len(s.src)-1 {
		return false
	}
	s.idx++
	s.ch = s.src[s.idx]
	return true
}

func (s *Scanner) peek() byte {
	if s.idx >= len(s.src)-1 {
		return 0
	}
	return s.src[s.idx+1]
}

func (s *Scanner) peekTwo() byte {
	if s.idx >= len(s.src)-2 {
		return 0
	}
	return s.src[s.idx+2]
}

// Scan tokenizes the whole source in one pass and returns the token list
// (always EOF-terminated) plus every lexical error encountered.
func (s *Scanner) Scan() ([]token.Token, []*Error) {
	toks := make([]token.Token, 0, len(s.src)/4+1)

	for s.next() {
		switch s.ch {
		case ' ', '\t', '\r':
			// skip
		case '\n':
			s.line++
		case '(':
			toks = append(toks, s.tok(token.LeftParen, string(s.ch)))
		case ')':
			toks = append(toks, s.tok(token.RightParen, string(s.ch)))
		case '{':
			toks = append(toks, s.tok(token.LeftBrace, string(s.ch)))
		case '}':
			toks = append(toks, s.tok(token.RightBrace, string(s.ch)))
		case ',':
			toks = append(toks, s.tok(token.Comma, string(s.ch)))
		case '.':
			toks = append(toks, s.tok(token.Dot, string(s.ch)))
		case '-':
			toks = append(toks, s.tok(token.Minus, string(s.ch)))
		case '+':
			toks = append(toks, s.tok(token.Plus, string(s.ch)))
		case ';':
			toks = append(toks, s.tok(token.Semicolon, string(s.ch)))
		case '*':
			toks = append(toks, s.tok(token.Star, string(s.ch)))
		case '/':
			if s.peek() == '/' {
				s.lineComment()
			} else {
				toks = append(toks, s.tok(token.Slash, string(s.ch)))
			}
		case '=':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok(token.EqualEqual, "=="))
			} else {
				toks = append(toks, s.tok(token.Equal, "="))
			}
		case '!':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok(token.BangEqual, "!="))
			} else {
				toks = append(toks, s.tok(token.Bang, "!"))
			}
		case '<':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok(token.LessEqual, "<="))
			} else {
				toks = append(toks, s.tok(token.Less, "<"))
			}
		case '>':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok(token.GreaterEqual, ">="))
			} else {
				toks = append(toks, s.tok(token.Greater, ">"))
			}
		case '"':
			if lexeme, literal, ok := s.stringLiteral(); ok {
				toks = append(toks, token.Token{Kind: token.String, Lexeme: lexeme, Literal: literal, Line: s.line})
			}
		default:
			switch {
			case isDigit(s.ch):
				lexeme, literal := s.numberLiteral()
				toks = append(toks, token.Token{Kind: token.Number, Lexeme: lexeme, Literal: literal, Line: s.line})
			case isAlpha(s.ch):
				ident := s.identifier()
				if kind, ok := token.Keywords[ident]; ok {
					toks = append(toks, s.tok(kind, ident))
				} else {
					toks = append(toks, s.tok(token.Identifier, ident))
				}
			default:
				s.errors = append(s.errors, &Error{
					Line:    s.line,
					Message: fmt.Sprintf("Unexpected character: %s", string(s.ch)),
				})
			}
		}
	}

	toks = append(toks, token.Token{Kind: token.EOF, Line: s.line})
	return toks, s.errors
}

func (s *Scanner) tok(kind token.Kind, lexeme string) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme, Line: s.line}
}

func (s *Scanner) lineComment() {
	for s.peek() != '\n' && s.next() {
	}
}

// stringLiteral consumes the closing quote of a string that begins at the
// current '"'. Returns the raw lexeme (with quotes), the literal content
// (without quotes), and whether the string was properly terminated.
func (s *Scanner) stringLiteral() (lexeme string, literal string, ok bool) {
	start := s.idx
	startLine := s.line

	for {
		if !s.next() {
			s.errors = append(s.errors, &Error{Line: startLine, Message: "Unterminated string."})
			return "", "", false
		}
		if s.ch == '\n' {
			s.line++
		}
		if s.ch == '"' {
			break
		}
	}

	lexeme = string(s.src[start : s.idx+1])
	return lexeme, strings.Trim(lexeme, "\""), true
}

func (s *Scanner) numberLiteral() (lexeme string, literal string) {
	start := s.idx

	for isDigit(s.peek()) {
		s.next()
	}
	if s.peek() == '.' && isDigit(s.peekTwo()) {
		s.next()
		for isDigit(s.peek()) {
			s.next()
		}
	}

	lexeme = string(s.src[start : s.idx+1])
	f, _ := strconv.ParseFloat(lexeme, 64)
	literal = strconv.FormatFloat(f, 'g', -1, 64)
	return lexeme, literal
}

func (s *Scanner) identifier() string {
	start := s.idx
	for isAlphaNumeric(s.peek()) {
		s.next()
	}
	return string(s.src[start : s.idx+1])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
