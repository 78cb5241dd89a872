package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurora-lang/aurora/internal/interpreter"
	"github.com/aurora-lang/aurora/internal/lexer"
	"github.com/aurora-lang/aurora/internal/parser"
)

// run lexes, parses, and evaluates src against a fresh Interpreter, returning
// everything it printed to stdout.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	toks, lexErrs := lexer.New([]byte(src)).Scan()
	require.Empty(t, lexErrs)
	decls, parseErrs := parser.New(toks).Parse()
	require.Empty(t, parseErrs)

	var out bytes.Buffer
	err := interpreter.New(&out).Run(decls)
	return out.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `var a = "foo"; var b = "bar"; print a + b;`)
	require.NoError(t, err)
	require.Equal(t, "foobar\n", out)
}

func TestClosureMutationThroughSharedCapture(t *testing.T) {
	out, err := run(t, `var x = 0; function inc() { x = x + 1; } inc(); inc(); print x;`)
	require.NoError(t, err)
	require.Equal(t, "2\n", out)
}

func TestLocalShadowDoesNotLeakIntoAFunctionDefinedElsewhere(t *testing.T) {
	out, err := run(t, `
		var x = "global";
		function showX() { print x; }
		function test() { var x = "local"; showX(); }
		test();
	`)
	require.NoError(t, err)
	require.Equal(t, "global\n", out, "showX must resolve x lexically against the global, not dynamically against test's local")
}

func TestCaptureIsTransitiveThroughNestedFunctionLiterals(t *testing.T) {
	out, err := run(t, `
		function outer() {
			var a = 1;
			function middle() {
				function inner() { return a; }
				return inner;
			}
			return middle;
		}
		var m = outer();
		var i = m();
		print i();
	`)
	require.NoError(t, err)
	require.Equal(t, "1\n", out, "inner must still reach outer's a through middle, even though middle never references a directly")
}

func TestClosureFactoryIndependentCounters(t *testing.T) {
	out, err := run(t, `
		function mk() {
			var i = 0;
			function step() {
				i = i + 1;
				return i;
			}
			return step;
		}
		var s1 = mk();
		var s2 = mk();
		print s1();
		print s1();
		print s2();
	`)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n1\n", out)
}

func TestClassConstructorAndMethod(t *testing.T) {
	out, err := run(t, `
		class C {
			C(v) { this.v = v; }
			get() { return this.v; }
		}
		var o = C(42);
		print o.get();
	`)
	require.NoError(t, err)
	require.Equal(t, "42\n", out)
}

func TestSingleInheritanceSuperDispatch(t *testing.T) {
	out, err := run(t, `
		class A { hi() { return "A"; } }
		class B < A { hi() { return super.hi() + "B"; } }
		print B().hi();
	`)
	require.NoError(t, err)
	require.Equal(t, "AB\n", out)
}

func TestInstanceReferenceSemantics(t *testing.T) {
	out, err := run(t, `
		class Box { }
		var a = Box();
		var b = a;
		a.x = 7;
		print b.x;
	`)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestScopingVarInBlockIsInvisibleOutside(t *testing.T) {
	out, err := run(t, `
		var x = "outer";
		{
			var x = "inner";
			print x;
		}
		print x;
	`)
	require.NoError(t, err)
	require.Equal(t, "inner\nouter\n", out)
}

func TestShortCircuitOr(t *testing.T) {
	out, err := run(t, `
		var calls = 0;
		function sideEffect() {
			calls = calls + 1;
			return true;
		}
		var r = true or sideEffect();
		print calls;
	`)
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestShortCircuitAnd(t *testing.T) {
	out, err := run(t, `
		var calls = 0;
		function sideEffect() {
			calls = calls + 1;
			return true;
		}
		var r = false and sideEffect();
		print calls;
	`)
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestReturnPropagationFromNestedBlocks(t *testing.T) {
	out, err := run(t, `
		function find(n) {
			for (var i = 0; i < 10; i = i + 1) {
				if (i == n) {
					return i;
				}
			}
			return -1;
		}
		print find(5);
	`)
	require.NoError(t, err)
	require.Equal(t, "5\n", out)
}

func TestUndefinedVariableIsFatal(t *testing.T) {
	_, err := run(t, `print missing;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable")
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	_, err := run(t, `if (nil) { print "no"; }`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "TypeMismatch")
}

func TestCallingNonCallableIsFatal(t *testing.T) {
	_, err := run(t, `var x = 1; x();`)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "NotCallable"))
}

func TestArityMismatchIsFatal(t *testing.T) {
	_, err := run(t, `function f(a, b) { return a + b; } f(1);`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ArityMismatch")
}
