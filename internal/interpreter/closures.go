package interpreter

import (
	"github.com/aurora-lang/aurora/internal/ast"
	"github.com/aurora-lang/aurora/internal/token"
	"github.com/aurora-lang/aurora/internal/value"
)

// newClosure builds a Function value, capture-scanning body against the
// environment as it exists right now (spec §4.5) and snapshotting the
// lexically enclosing class, if any, so super resolves correctly even from
// inside a function literal nested in a method (spec §4.8, §9).
func (in *Interpreter) newClosure(name string, paramToks []token.Token, body []ast.Stmt, kind value.FuncKind) *value.Function {
	params := make([]string, len(paramToks))
	for i, p := range paramToks {
		params[i] = p.Lexeme
	}

	return &value.Function{
		Name:          name,
		Params:        params,
		Body:          body,
		Captures:      in.captureScan(params, body),
		FnKind:        kind,
		DefiningClass: in.currentClass(),
	}
}

// bindMethod returns a copy of fn with a {"this": cell} capture appended, so
// calling it brings the receiver into scope (spec §4.8) — mirroring the
// teacher's LoxFunction.bind, but allocating a fresh Cell per bind rather
// than reusing the instance's own storage.
func bindMethod(fn *value.Function, inst *value.Instance) *value.Function {
	captures := make([]value.Capture, len(fn.Captures), len(fn.Captures)+1)
	copy(captures, fn.Captures)
	captures = append(captures, value.Capture{Name: "this", Cell: &value.Cell{Value: inst}})

	return &value.Function{
		Name:          fn.Name,
		Params:        fn.Params,
		Body:          fn.Body,
		Captures:      captures,
		FnKind:        fn.FnKind,
		DefiningClass: fn.DefiningClass,
	}
}

// callFunction invokes fn with args already evaluated in the caller's
// environment (spec §4.6, §4.8).
func (in *Interpreter) callFunction(fn *value.Function, args []value.Value, callLine int) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, newErr(ArityMismatch, callLine, "Expected %d arguments but got %d.", len(fn.Params), len(args))
	}

	in.classContext = append(in.classContext, fn.DefiningClass)
	in.env.PushFuncKind(fn.FnKind)

	paramCells := make([]value.Capture, 0, len(fn.Captures)+len(fn.Params))
	paramCells = append(paramCells, fn.Captures...)
	for i, p := range fn.Params {
		paramCells = append(paramCells, value.Capture{Name: p, Cell: &value.Cell{Value: args[i]}})
	}
	in.env.Inject(paramCells...)
	in.env.PushFrame()

	var result value.Value = value.Nil{}
	var runErr error
	for _, s := range fn.Body {
		if err := in.exec(s); err != nil {
			runErr = err
			break
		}
		if in.env.HasReturn() {
			break
		}
	}
	if runErr == nil {
		result = in.env.TakeReturn()
	}

	// A constructor's call expression always yields the receiver, never
	// whatever its body happened to return (spec §4.8's "constructors
	// implicitly return the new instance").
	if runErr == nil && fn.FnKind == value.Constructor {
		if this, err := in.env.Get("this"); err == nil {
			result = this
		}
	}

	in.env.PopFrame()
	in.env.PopFuncKind()
	in.classContext = in.classContext[:len(in.classContext)-1]

	return result, runErr
}

// instantiate constructs a new Instance of class, runs its constructor (if
// any) with args, and returns the instance (spec §4.8).
func (in *Interpreter) instantiate(class *value.Class, args []value.Value, callLine int) (value.Value, error) {
	inst := value.NewInstance(class)

	ctor := class.FindMethod(class.Name)
	if ctor == nil {
		if len(args) != 0 {
			return nil, newErr(ArityMismatch, callLine, "Expected 0 arguments but got %d.", len(args))
		}
		return inst, nil
	}

	bound := bindMethod(ctor, inst)
	if _, err := in.callFunction(bound, args, callLine); err != nil {
		return nil, err
	}
	return inst, nil
}

// execClass evaluates a class declaration: resolve the superclass (if any),
// build each method as a Function whose DefiningClass is this class, and
// bind the resulting Class value in the enclosing environment (spec §4.8).
func (in *Interpreter) execClass(c *ast.ClassStmt) error {
	var super *value.Class
	if c.Superclass != nil {
		v, err := in.env.Get(c.Superclass.Name.Lexeme)
		if err != nil {
			return newErr(UndefinedName, c.Superclass.Name.Line, "Undefined variable '%s'.", c.Superclass.Name.Lexeme)
		}
		sc, ok := v.(*value.Class)
		if !ok {
			return newErr(NotAClass, c.Superclass.Name.Line, "Superclass must be a class.")
		}
		super = sc
	}

	class := &value.Class{Name: c.Name.Lexeme, Superclass: super, Methods: make(map[string]*value.Function, len(c.Methods))}

	in.classContext = append(in.classContext, class)
	for _, m := range c.Methods {
		class.Methods[m.Name.Lexeme] = in.newClosure(m.Name.Lexeme, m.Params, m.Body, funcKindOf(m.Kind))
	}
	in.classContext = in.classContext[:len(in.classContext)-1]

	in.env.Define(class.Name, class)
	return nil
}
