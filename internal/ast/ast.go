// Package ast defines the tagged-variant expression and statement trees
// produced by the parser. Nodes are immutable after parsing.
package ast

import (
	"fmt"
	"strings"

	"github.com/aurora-lang/aurora/internal/token"
)

// Expr is any expression node.
type Expr interface {
	exprNode()
	String() string
}

// Stmt is any statement node.
type Stmt interface {
	stmtNode()
	String() string
}

// FunctionKind distinguishes a plain function from a method bound to an
// instance and the special constructor method.
type FunctionKind int

const (
	PlainFunction FunctionKind = iota
	Method
	Constructor
)

// --- Expressions -----------------------------------------------------------

type Literal struct {
	Token token.Token // NUMBER, STRING, TRUE, FALSE, or NIL
	Text  string      // source text, reused for printing
}

type Variable struct {
	Name token.Token
}

type Assign struct {
	Name token.Token
	Expr Expr
}

type Unary struct {
	Op    token.Token
	Right Expr
}

type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

type Logical struct {
	Left  Expr
	Op    token.Token // AND or OR
	Right Expr
}

type Grouping struct {
	Expr Expr
}

type Call struct {
	Callee Expr
	Paren  token.Token // location of the closing ')', for error reporting
	Args   []Expr
}

type Get struct {
	Object Expr
	Name   token.Token
}

type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

type This struct {
	Keyword token.Token
}

type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (*Literal) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}

func (l *Literal) String() string  { return l.Text }
func (v *Variable) String() string { return v.Name.Lexeme }
func (a *Assign) String() string   { return fmt.Sprintf("%s = %s", a.Name.Lexeme, a.Expr) }
func (u *Unary) String() string    { return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Right) }
func (b *Binary) String() string   { return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right) }
func (l *Logical) String() string  { return fmt.Sprintf("(%s %s %s)", l.Op.Lexeme, l.Left, l.Right) }
func (g *Grouping) String() string { return fmt.Sprintf("(group %s)", g.Expr) }
func (t *This) String() string     { return "this" }
func (s *Super) String() string    { return fmt.Sprintf("super.%s", s.Method.Lexeme) }
func (g *Get) String() string      { return fmt.Sprintf("%s.%s", g.Object, g.Name.Lexeme) }
func (s *Set) String() string      { return fmt.Sprintf("%s.%s = %s", s.Object, s.Name.Lexeme, s.Value) }

func (c *Call) String() string {
	sb := strings.Builder{}
	sb.WriteString(c.Callee.String())
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// --- Statements --------------------------------------------------------

type Program struct {
	Decls []Stmt
}

type ExpressionStmt struct {
	Expr Expr
}

type PrintStmt struct {
	Expr Expr
}

type VarStmt struct {
	Name token.Token
	Init Expr // nil if no initializer
}

type BlockStmt struct {
	Decls []Stmt
}

type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if absent
}

type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// ForStmt is kept as its own node rather than desugared to WhileStmt so the
// evaluator can manage its single enclosing scope explicitly (spec §4.6).
type ForStmt struct {
	Init      Stmt // nil if absent
	Condition Expr // nil if absent (treated as "true")
	Incr      Expr // nil if absent
	Body      Stmt
}

type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
	Kind   FunctionKind
}

type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if no expression given
}

type ClassStmt struct {
	Name       token.Token
	Superclass *Variable // nil if no superclass
	Methods    []*FunctionStmt
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*ForStmt) stmtNode()        {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
func (*ClassStmt) stmtNode()      {}

func (p *Program) String() string {
	sb := strings.Builder{}
	for _, d := range p.Decls {
		sb.WriteString(d.String() + "\n")
	}
	return sb.String()
}

func (e *ExpressionStmt) String() string { return e.Expr.String() }
func (p *PrintStmt) String() string      { return "print " + p.Expr.String() }

func (v *VarStmt) String() string {
	if v.Init == nil {
		return "var " + v.Name.Lexeme
	}
	return fmt.Sprintf("var %s = %s", v.Name.Lexeme, v.Init)
}

func (b *BlockStmt) String() string {
	sb := strings.Builder{}
	sb.WriteString("{\n")
	for _, d := range b.Decls {
		sb.WriteString("    " + d.String() + "\n")
	}
	sb.WriteByte('}')
	return sb.String()
}

func (i *IfStmt) String() string {
	sb := strings.Builder{}
	sb.WriteString("if (" + i.Condition.String() + ") " + i.Then.String())
	if i.Else != nil {
		sb.WriteString(" else " + i.Else.String())
	}
	return sb.String()
}

func (w *WhileStmt) String() string {
	return fmt.Sprintf("while (%s) %s", w.Condition, w.Body)
}

func (f *ForStmt) String() string {
	return fmt.Sprintf("for (...) %s", f.Body)
}

func (f *FunctionStmt) String() string {
	sb := strings.Builder{}
	sb.WriteString("function " + f.Name.Lexeme + "(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Lexeme)
	}
	sb.WriteString(") ")
	for _, s := range f.Body {
		sb.WriteString(s.String() + "\n")
	}
	return sb.String()
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

func (c *ClassStmt) String() string {
	sb := strings.Builder{}
	sb.WriteString("class " + c.Name.Lexeme)
	if c.Superclass != nil {
		sb.WriteString(" < " + c.Superclass.Name.Lexeme)
	}
	sb.WriteString(" {\n")
	for _, m := range c.Methods {
		sb.WriteString("  " + m.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}
