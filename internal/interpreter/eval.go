package interpreter

import (
	"strconv"

	"github.com/aurora-lang/aurora/internal/ast"
	"github.com/aurora-lang/aurora/internal/builtins"
	"github.com/aurora-lang/aurora/internal/token"
	"github.com/aurora-lang/aurora/internal/value"
)

func parseNumber(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}

func (in *Interpreter) eval(e ast.Expr) (value.Value, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		return evalLiteral(ex)
	case *ast.Variable:
		return in.evalVariable(ex)
	case *ast.Assign:
		return in.evalAssign(ex)
	case *ast.Unary:
		return in.evalUnary(ex)
	case *ast.Binary:
		return in.evalBinary(ex)
	case *ast.Logical:
		return in.evalLogical(ex)
	case *ast.Grouping:
		return in.eval(ex.Expr)
	case *ast.Call:
		return in.evalCall(ex)
	case *ast.Get:
		return in.evalGet(ex)
	case *ast.Set:
		return in.evalSet(ex)
	case *ast.This:
		return in.evalThis(ex)
	case *ast.Super:
		return in.evalSuper(ex)
	}
	panic("unreachable: unknown expression node")
}

func evalLiteral(l *ast.Literal) (value.Value, error) {
	switch l.Token.Kind {
	case token.True:
		return value.Bool{Value: true}, nil
	case token.False:
		return value.Bool{Value: false}, nil
	case token.Nil:
		return value.Nil{}, nil
	case token.String:
		return value.String{Value: l.Text}, nil
	case token.Number:
		f, err := parseNumber(l.Text)
		if err != nil {
			return nil, newErr(TypeMismatch, l.Token.Line, "Invalid number literal %q.", l.Text)
		}
		return value.Number{Value: f}, nil
	}
	panic("unreachable: unknown literal token kind")
}

func (in *Interpreter) evalVariable(v *ast.Variable) (value.Value, error) {
	val, err := in.env.Get(v.Name.Lexeme)
	if err != nil {
		return nil, newErr(UndefinedName, v.Name.Line, "Undefined variable '%s'.", v.Name.Lexeme)
	}
	return val, nil
}

func (in *Interpreter) evalAssign(a *ast.Assign) (value.Value, error) {
	v, err := in.eval(a.Expr)
	if err != nil {
		return nil, err
	}
	if err := in.env.Assign(a.Name.Lexeme, v); err != nil {
		return nil, newErr(UndefinedName, a.Name.Line, "Undefined variable '%s'.", a.Name.Lexeme)
	}
	return v, nil
}

func (in *Interpreter) evalUnary(u *ast.Unary) (value.Value, error) {
	right, err := in.eval(u.Right)
	if err != nil {
		return nil, err
	}

	switch u.Op.Kind {
	case token.Bang:
		b, ok := right.(value.Bool)
		if !ok {
			return nil, newErr(TypeMismatch, u.Op.Line, "Operand of '!' must be a boolean.")
		}
		return value.Bool{Value: !b.Value}, nil
	case token.Minus:
		n, ok := right.(value.Number)
		if !ok {
			return nil, newErr(TypeMismatch, u.Op.Line, "Operand of '-' must be a number.")
		}
		return value.Number{Value: -n.Value}, nil
	}
	panic("unreachable: unknown unary operator")
}

// evalLogical implements short-circuit and/or with the exact return-value
// rules of spec §4.3 (not simply "the truthy operand").
func (in *Interpreter) evalLogical(l *ast.Logical) (value.Value, error) {
	left, err := in.eval(l.Left)
	if err != nil {
		return nil, err
	}

	switch l.Op.Kind {
	case token.And:
		if !value.IsTruthy(left) {
			return value.Bool{Value: false}, nil
		}
		right, err := in.eval(l.Right)
		if err != nil {
			return nil, err
		}
		if !value.IsTruthy(right) {
			return value.Bool{Value: false}, nil
		}
		return left, nil

	case token.Or:
		if value.IsTruthy(left) {
			return left, nil
		}
		right, err := in.eval(l.Right)
		if err != nil {
			return nil, err
		}
		if !value.IsTruthy(right) {
			return value.Bool{Value: false}, nil
		}
		return right, nil
	}
	panic("unreachable: unknown logical operator")
}

func (in *Interpreter) evalBinary(b *ast.Binary) (value.Value, error) {
	left, err := in.eval(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(b.Right)
	if err != nil {
		return nil, err
	}
	line := b.Op.Line

	switch b.Op.Kind {
	case token.Plus:
		ls, lok := left.(value.String)
		rs, rok := right.(value.String)
		if lok && rok {
			return value.String{Value: ls.Value + rs.Value}, nil
		}
		ln, lnok := left.(value.Number)
		rn, rnok := right.(value.Number)
		if lnok && rnok {
			return value.Number{Value: ln.Value + rn.Value}, nil
		}
		return nil, newErr(TypeMismatch, line, "Operands of '+' must be two numbers or two strings.")

	case token.Minus, token.Star, token.Slash, token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, newErr(TypeMismatch, line, "Operands must be numbers.")
		}
		switch b.Op.Kind {
		case token.Minus:
			return value.Number{Value: ln.Value - rn.Value}, nil
		case token.Star:
			return value.Number{Value: ln.Value * rn.Value}, nil
		case token.Slash:
			return value.Number{Value: ln.Value / rn.Value}, nil
		case token.Greater:
			return value.Bool{Value: ln.Value > rn.Value}, nil
		case token.GreaterEqual:
			return value.Bool{Value: ln.Value >= rn.Value}, nil
		case token.Less:
			return value.Bool{Value: ln.Value < rn.Value}, nil
		case token.LessEqual:
			return value.Bool{Value: ln.Value <= rn.Value}, nil
		}

	case token.EqualEqual:
		return value.Bool{Value: value.Equal(left, right)}, nil
	case token.BangEqual:
		return value.Bool{Value: !value.Equal(left, right)}, nil
	}
	panic("unreachable: unknown binary operator")
}

func (in *Interpreter) evalCall(c *ast.Call) (value.Value, error) {
	callee, err := in.eval(c.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch fn := callee.(type) {
	case *value.Function:
		return in.callFunction(fn, args, c.Paren.Line)
	case *value.Class:
		return in.instantiate(fn, args, c.Paren.Line)
	case *value.Builtin:
		if len(args) != fn.Arity {
			return nil, newErr(ArityMismatch, c.Paren.Line, "Expected %d arguments but got %d.", fn.Arity, len(args))
		}
		return builtins.Call(fn, args), nil
	default:
		return nil, newErr(NotCallable, c.Paren.Line, "Can only call functions and classes.")
	}
}

func (in *Interpreter) evalGet(g *ast.Get) (value.Value, error) {
	obj, err := in.eval(g.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*value.Instance)
	if !ok {
		return nil, newErr(NotAnInstance, g.Name.Line, "Only instances have properties.")
	}

	if v, ok := inst.Fields[g.Name.Lexeme]; ok {
		return v, nil
	}
	if m := inst.Class.FindMethod(g.Name.Lexeme); m != nil {
		return bindMethod(m, inst), nil
	}
	return nil, newErr(UndefinedProperty, g.Name.Line, "Undefined property '%s'.", g.Name.Lexeme)
}

func (in *Interpreter) evalSet(s *ast.Set) (value.Value, error) {
	obj, err := in.eval(s.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*value.Instance)
	if !ok {
		return nil, newErr(NotAnInstance, s.Name.Line, "Only instances have fields.")
	}

	v, err := in.eval(s.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(s.Name.Lexeme, v)
	return v, nil
}

func (in *Interpreter) evalThis(t *ast.This) (value.Value, error) {
	v, err := in.env.Get("this")
	if err != nil {
		return nil, newErr(ThisOutsideMethod, t.Keyword.Line, "Can't use 'this' outside of a method.")
	}
	return v, nil
}

func (in *Interpreter) evalSuper(s *ast.Super) (value.Value, error) {
	class := in.currentClass()
	if class == nil {
		return nil, newErr(SuperOutsideSubclass, s.Keyword.Line, "Can't use 'super' outside of a class.")
	}
	if class.Superclass == nil {
		return nil, newErr(NoSuperclass, s.Keyword.Line, "'%s' has no superclass.", class.Name)
	}

	method := class.Superclass.FindMethod(s.Method.Lexeme)
	if method == nil {
		return nil, newErr(UndefinedMethod, s.Method.Line, "Undefined method '%s'.", s.Method.Lexeme)
	}

	thisVal, err := in.env.Get("this")
	if err != nil {
		return nil, newErr(ThisOutsideMethod, s.Keyword.Line, "Can't use 'super' outside of a method.")
	}
	inst, ok := thisVal.(*value.Instance)
	if !ok {
		return nil, newErr(ThisOutsideMethod, s.Keyword.Line, "Can't use 'super' outside of a method.")
	}

	return bindMethod(method, inst), nil
}
