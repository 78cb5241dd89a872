package environment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurora-lang/aurora/internal/environment"
	"github.com/aurora-lang/aurora/internal/value"
)

func TestDefineAndGet(t *testing.T) {
	env := environment.New()
	env.Define("x", value.Number{Value: 1})

	v, err := env.Get("x")
	require.NoError(t, err)
	require.Equal(t, value.Number{Value: 1}, v)
}

func TestGetUndefinedNameErrors(t *testing.T) {
	env := environment.New()
	_, err := env.Get("missing")
	require.Error(t, err)
}

func TestAssignWritesThroughToEnclosingFrame(t *testing.T) {
	env := environment.New()
	env.Define("x", value.Number{Value: 1})

	env.PushFrame()
	require.NoError(t, env.Assign("x", value.Number{Value: 2}))
	env.PopFrame()

	v, err := env.Get("x")
	require.NoError(t, err)
	require.Equal(t, value.Number{Value: 2}, v)
}

func TestWouldCaptureIsFalseInTheTopmostFrame(t *testing.T) {
	env := environment.New()
	env.Define("x", value.Number{Value: 1})
	require.False(t, env.WouldCapture("x"))

	env.PushFrame()
	env.Define("y", value.Number{Value: 2})
	require.False(t, env.WouldCapture("y"))
}

func TestWouldCaptureIsTrueForAGlobalOnceAFrameSitsAboveIt(t *testing.T) {
	env := environment.New()
	env.Define("x", value.Number{Value: 1})

	// Mirrors spec §4.5 step 1: a function literal's capture scan pushes a
	// temporary frame for its own parameters before checking WouldCapture, so
	// a global now resolves below the topmost frame and must be captured —
	// frame 0 gets no special treatment.
	env.PushFrame()
	require.True(t, env.WouldCapture("x"))
}

func TestWouldCaptureIsTrueForAnyEnclosingNonTopmostFrame(t *testing.T) {
	env := environment.New()
	env.PushFrame()
	env.Define("x", value.Number{Value: 1})

	env.PushFrame()
	require.True(t, env.WouldCapture("x"))
}

func TestInjectCarriesCellsIntoNextPushedFrame(t *testing.T) {
	env := environment.New()
	env.Define("x", value.Number{Value: 1})
	cell, ok := env.CellFor("x")
	require.True(t, ok)

	env.Inject(value.Capture{Name: "y", Cell: cell})
	env.PushFrame()

	v, err := env.Get("y")
	require.NoError(t, err)
	require.Equal(t, value.Number{Value: 1}, v)

	require.NoError(t, env.Assign("y", value.Number{Value: 9}))
	env.PopFrame()

	v, err = env.Get("x")
	require.NoError(t, err)
	require.Equal(t, value.Number{Value: 9}, v, "injected capture must alias the same cell")
}

func TestReturnSignal(t *testing.T) {
	env := environment.New()
	require.False(t, env.HasReturn())

	env.MarkReturn(value.String{Value: "done"})
	require.True(t, env.HasReturn())
	require.Equal(t, value.String{Value: "done"}, env.TakeReturn())
	require.False(t, env.HasReturn())
}

func TestFuncKindStack(t *testing.T) {
	env := environment.New()
	require.False(t, env.InFunction())

	env.PushFuncKind(value.Method)
	require.True(t, env.InFunction())
	kind, ok := env.CurrentFuncKind()
	require.True(t, ok)
	require.Equal(t, value.Method, kind)

	env.PopFuncKind()
	require.False(t, env.InFunction())
}
