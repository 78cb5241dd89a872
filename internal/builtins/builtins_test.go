package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurora-lang/aurora/internal/builtins"
	"github.com/aurora-lang/aurora/internal/value"
)

func TestAllRegistersTimeAndClock(t *testing.T) {
	all := builtins.All()

	timeFn, ok := all["time"]
	require.True(t, ok)
	require.Equal(t, 0, timeFn.Arity)

	clockFn, ok := all["clock"]
	require.True(t, ok)
	require.Equal(t, 0, clockFn.Arity)
}

func TestCallTimeReturnsString(t *testing.T) {
	all := builtins.All()
	v := builtins.Call(all["time"], nil)
	_, ok := v.(value.String)
	require.True(t, ok)
}

func TestCallClockReturnsNumber(t *testing.T) {
	all := builtins.All()
	v := builtins.Call(all["clock"], nil)
	n, ok := v.(value.Number)
	require.True(t, ok)
	require.Greater(t, n.Value, float64(0))
}
