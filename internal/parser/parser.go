// Package parser implements Aurora's recursive-descent parser.
//
// Precedence, low to high:
//
//	assignment -> or -> and -> equality -> comparison -> term -> factor -> unary -> call -> primary
package parser

import (
	"fmt"

	"github.com/aurora-lang/aurora/internal/ast"
	"github.com/aurora-lang/aurora/internal/token"
)

// maxArgs is the cap on call arguments and function parameters (spec §4.2).
const maxArgs = 255

// Error is a syntax error: an unexpected token, an invalid assignment
// target, or too many call/declaration arguments.
type Error struct {
	Line    int
	Where   string
	Message string
}

func (e *Error) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Where, e.Message)
}

// panicErr unwinds the current declaration so the parser can resynchronize
// at the next statement boundary; it is never returned to the caller as-is.
type panicErr struct{ err *Error }

func (p panicErr) Error() string { return p.err.Error() }

// Parser is a one-token-lookahead recursive-descent parser.
type Parser struct {
	tokens []token.Token
	idx    int
	errors []*Error
}

// New creates a Parser over a complete, EOF-terminated token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token stream and returns every top-level
// declaration parsed, along with every syntax error encountered. Parsing
// continues past an error by synchronizing at the next statement boundary,
// so more than one error may be reported per run.
func (p *Parser) Parse() ([]ast.Stmt, []*Error) {
	var decls []ast.Stmt
	for !p.atEnd() {
		decl, ok := p.declarationSafe()
		if ok {
			decls = append(decls, decl)
		}
	}
	return decls, p.errors
}

// declarationSafe recovers from a panicErr raised anywhere within
// declaration() by synchronizing and reporting, returning ok=false.
func (p *Parser) declarationSafe() (stmt ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			pe, isPanicErr := r.(panicErr)
			if !isPanicErr {
				panic(r)
			}
			p.errors = append(p.errors, pe.err)
			p.synchronize()
			ok = false
		}
	}()
	return p.declaration(), true
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Function):
		return p.functionDecl(ast.PlainFunction)
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.Less) {
		p.consume(token.Identifier, "Expect superclass name.")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(token.LeftBrace, "Expect '{' before class body.")

	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		kind := ast.Method
		if p.check(token.Identifier) && p.current().Lexeme == name.Lexeme {
			kind = ast.Constructor
		}
		methods = append(methods, p.functionDecl(kind).(*ast.FunctionStmt))
	}

	p.consume(token.RightBrace, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) functionDecl(kind ast.FunctionKind) ast.Stmt {
	name := p.consume(token.Identifier, "Expect function name.")
	p.consume(token.LeftParen, "Expect '(' after function name.")

	var params []token.Token
	if !p.check(token.RightParen) {
		params = append(params, p.consume(token.Identifier, "Expect parameter name."))
		for p.match(token.Comma) {
			if len(params) >= maxArgs {
				p.errorAt(p.current(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")

	p.consume(token.LeftBrace, "Expect '{' before function body.")
	body := p.blockBody()

	return &ast.FunctionStmt{Name: name, Params: params, Body: body, Kind: kind}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")

	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")

	return &ast.VarStmt{Name: name, Init: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.LeftBrace):
		return &ast.BlockStmt{Decls: p.blockBody()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) printStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: expr}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")
	then := p.block()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.block()
	}
	return &ast.IfStmt{Condition: cond, Then: then, Else: els}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after while condition.")
	body := p.block()
	return &ast.WhileStmt{Condition: cond, Body: body}
}

// forStmt keeps ForStmt as its own node (spec §4.2, §4.6) rather than
// desugaring to a WhileStmt wrapped in a Block.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		init = nil
	case p.match(token.Var):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var incr ast.Expr
	if !p.check(token.RightParen) {
		incr = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.block()

	return &ast.ForStmt{Init: init, Condition: cond, Incr: incr, Body: body}
}

// block requires a brace-delimited block, matching spec §6's EBNF for the
// if/while/for body positions (`block := "{" declaration* "}"`).
func (p *Parser) block() ast.Stmt {
	p.consume(token.LeftBrace, "Expect '{'.")
	return &ast.BlockStmt{Decls: p.blockBody()}
}

func (p *Parser) blockBody() []ast.Stmt {
	var decls []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		decls = append(decls, p.declaration())
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return decls
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Expr: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}

	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.Or) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EqualEqual, token.BangEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Less, token.LessEqual, token.Greater, token.GreaterEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Plus, token.Minus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Star, token.Slash) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Identifier, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		args = append(args, p.expression())
		for p.match(token.Comma) {
			if len(args) >= maxArgs {
				p.errorAt(p.current(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return &ast.Literal{Token: p.previous(), Text: "false"}
	case p.match(token.True):
		return &ast.Literal{Token: p.previous(), Text: "true"}
	case p.match(token.Nil):
		return &ast.Literal{Token: p.previous(), Text: "nil"}
	case p.match(token.Number):
		return &ast.Literal{Token: p.previous(), Text: p.previous().Literal}
	case p.match(token.String):
		return &ast.Literal{Token: p.previous(), Text: p.previous().Literal}
	case p.match(token.This):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Identifier, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Expr: expr}
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	}

	panic(panicErr{p.errAt(p.current(), "Expect expression.")})
}

// --- token-stream helpers ----------------------------------------------

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, msg string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(panicErr{p.errAt(p.current(), msg)})
}

func (p *Parser) check(kind token.Kind) bool {
	return !p.atEnd() && p.current().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if !p.atEnd() {
		p.idx++
	}
	return tok
}

func (p *Parser) atEnd() bool { return p.current().Kind == token.EOF }

func (p *Parser) current() token.Token { return p.tokens[p.idx] }

func (p *Parser) previous() token.Token {
	if p.idx > 0 {
		return p.tokens[p.idx-1]
	}
	return p.current()
}

func (p *Parser) errAt(tok token.Token, msg string) *Error {
	where := tok.Lexeme
	if tok.Kind == token.EOF {
		where = ""
	}
	return &Error{Line: tok.Line, Where: where, Message: msg}
}

// errorAt records a non-fatal error (e.g. "too many arguments") without
// unwinding the current declaration, since parsing can safely continue.
func (p *Parser) errorAt(tok token.Token, msg string) {
	p.errors = append(p.errors, p.errAt(tok, msg))
}

// synchronize discards tokens until it reaches a likely statement boundary,
// so a single syntax error does not hide every later one (spec §4.2,
// following original_source's multi-error reporting).
func (p *Parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}

		switch p.current().Kind {
		case token.Class, token.Function, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}

		p.advance()
	}
}
