// Package interpreter implements Aurora's statement evaluator: the part of
// the pipeline that walks the AST against a lexically scoped environment,
// manages closure capture, and dispatches class construction and method
// invocation (spec §4.5-§4.9).
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/aurora-lang/aurora/internal/ast"
	"github.com/aurora-lang/aurora/internal/builtins"
	"github.com/aurora-lang/aurora/internal/environment"
	"github.com/aurora-lang/aurora/internal/value"
)

// Interpreter walks a parsed program's statements against one Env.
// Not safe for concurrent use (spec §5). Successive Run calls share the same
// global frame, so declarations from one run stay visible to the next.
type Interpreter struct {
	env *environment.Env
	out io.Writer

	// classContext is the stack of classes lexically enclosing whatever
	// function literal or method body is executing right now. A newly
	// created Function value's DefiningClass is always the top of this
	// stack (nil at top level); super.method resolves against the top
	// entry's Superclass (spec §4.8, §9).
	classContext []*value.Class
}

// New creates an Interpreter whose `print` statements write to out and
// whose global frame already has time()/clock() defined (spec §4.7, §6).
func New(out io.Writer) *Interpreter {
	in := &Interpreter{env: environment.New(), out: out}
	for name, b := range builtins.All() {
		in.env.Define(name, b)
	}
	return in
}

// NewStdout is a convenience constructor for the CLI driver.
func NewStdout() *Interpreter { return New(os.Stdout) }

// Run executes every top-level declaration in order. Execution halts at the
// first RuntimeError (spec §4.9: "All semantic failures are fatal to the
// current program run").
func (in *Interpreter) Run(decls []ast.Stmt) error {
	for _, d := range decls {
		if err := in.exec(d); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) currentClass() *value.Class {
	if len(in.classContext) == 0 {
		return nil
	}
	return in.classContext[len(in.classContext)-1]
}

// --- statements ----------------------------------------------------------

func (in *Interpreter) exec(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.ExpressionStmt:
		_, err := in.eval(st.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.eval(st.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, v.String())
		return nil

	case *ast.VarStmt:
		var v value.Value = value.Nil{}
		if st.Init != nil {
			var err error
			v, err = in.eval(st.Init)
			if err != nil {
				return err
			}
		}
		in.env.Define(st.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return in.execBlock(st.Decls)

	case *ast.IfStmt:
		cond, err := in.eval(st.Condition)
		if err != nil {
			return err
		}
		b, ok := cond.(value.Bool)
		if !ok {
			return newErr(TypeMismatch, lineOf(st.Condition), "Condition must be a boolean.")
		}
		if b.Value {
			return in.exec(st.Then)
		} else if st.Else != nil {
			return in.exec(st.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.eval(st.Condition)
			if err != nil {
				return err
			}
			if !loopContinues(cond) {
				return nil
			}
			if err := in.exec(st.Body); err != nil {
				return err
			}
			if in.env.HasReturn() {
				return nil
			}
		}

	case *ast.ForStmt:
		return in.execFor(st)

	case *ast.FunctionStmt:
		fn := in.newClosure(st.Name.Lexeme, st.Params, st.Body, funcKindOf(st.Kind))
		in.env.Define(st.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		if !in.env.InFunction() {
			return newErr(ReturnOutsideFunction, st.Keyword.Line, "Can't return from top-level code.")
		}
		v := value.Value(value.Nil{})
		if st.Value != nil {
			var err error
			v, err = in.eval(st.Value)
			if err != nil {
				return err
			}
		}
		in.env.MarkReturn(v)
		return nil

	case *ast.ClassStmt:
		return in.execClass(st)
	}

	panic(fmt.Sprintf("unreachable: unknown statement %T", s))
}

// execBlock pushes a frame, executes each child statement top to bottom,
// and stops early the moment the return flag is set (spec §4.6).
func (in *Interpreter) execBlock(decls []ast.Stmt) error {
	in.env.PushFrame()
	defer in.env.PopFrame()

	for _, d := range decls {
		if err := in.exec(d); err != nil {
			return err
		}
		if in.env.HasReturn() {
			return nil
		}
	}
	return nil
}

// execFor pushes a single frame for the whole loop (spec §4.6: "push a new
// frame; run init within it; loop executing body then incr; pop frame"),
// since ForStmt is kept as its own node rather than desugared.
func (in *Interpreter) execFor(f *ast.ForStmt) error {
	in.env.PushFrame()
	defer in.env.PopFrame()

	if f.Init != nil {
		if err := in.exec(f.Init); err != nil {
			return err
		}
	}

	for {
		if f.Condition != nil {
			cond, err := in.eval(f.Condition)
			if err != nil {
				return err
			}
			if !loopContinues(cond) {
				return nil
			}
		}

		if err := in.exec(f.Body); err != nil {
			return err
		}
		if in.env.HasReturn() {
			return nil
		}

		if f.Incr != nil {
			if _, err := in.eval(f.Incr); err != nil {
				return err
			}
		}
	}
}

// loopContinues implements while/for's condition check: continues while
// the condition is not false and not nil (spec §4.6) — looser than the
// strict-bool rule `if` uses.
func loopContinues(v value.Value) bool {
	return value.IsTruthy(v)
}

func funcKindOf(k ast.FunctionKind) value.FuncKind {
	switch k {
	case ast.Method:
		return value.Method
	case ast.Constructor:
		return value.Constructor
	default:
		return value.PlainFunction
	}
}

func lineOf(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Token.Line
	case *ast.Variable:
		return n.Name.Line
	case *ast.This:
		return n.Keyword.Line
	case *ast.Super:
		return n.Keyword.Line
	case *ast.Assign:
		return n.Name.Line
	case *ast.Unary:
		return n.Op.Line
	case *ast.Binary:
		return n.Op.Line
	case *ast.Logical:
		return n.Op.Line
	case *ast.Call:
		return n.Paren.Line
	case *ast.Get:
		return n.Name.Line
	case *ast.Set:
		return n.Name.Line
	case *ast.Grouping:
		return lineOf(n.Expr)
	}
	return 0
}
