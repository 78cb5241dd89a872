package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurora-lang/aurora/internal/value"
)

func TestIsTruthy(t *testing.T) {
	require.False(t, value.IsTruthy(value.Nil{}))
	require.False(t, value.IsTruthy(value.Bool{Value: false}))
	require.True(t, value.IsTruthy(value.Bool{Value: true}))
	require.True(t, value.IsTruthy(value.Number{Value: 0}))
	require.True(t, value.IsTruthy(value.String{Value: ""}))
}

func TestEqualPrimitivesAreStructural(t *testing.T) {
	require.True(t, value.Equal(value.Number{Value: 1}, value.Number{Value: 1}))
	require.False(t, value.Equal(value.Number{Value: 1}, value.Number{Value: 2}))
	require.True(t, value.Equal(value.String{Value: "a"}, value.String{Value: "a"}))
	require.False(t, value.Equal(value.Number{Value: 1}, value.String{Value: "1"}))
}

func TestEqualInstancesAreReferenceEquality(t *testing.T) {
	class := &value.Class{Name: "C", Methods: map[string]*value.Function{}}
	a := value.NewInstance(class)
	b := value.NewInstance(class)

	require.True(t, value.Equal(a, a))
	require.False(t, value.Equal(a, b))
}

func TestInstanceFieldMutationIsVisibleThroughEveryAlias(t *testing.T) {
	class := &value.Class{Name: "Box", Methods: map[string]*value.Function{}}
	inst := value.NewInstance(class)
	alias := inst

	inst.Set("x", value.Number{Value: 7})

	v, ok := alias.Get("x")
	require.True(t, ok)
	require.Equal(t, value.Number{Value: 7}, v)
}

func TestFindMethodWalksSuperclassChain(t *testing.T) {
	hi := &value.Function{Name: "hi"}
	base := &value.Class{Name: "A", Methods: map[string]*value.Function{"hi": hi}}
	derived := &value.Class{Name: "B", Superclass: base, Methods: map[string]*value.Function{}}

	require.Same(t, hi, derived.FindMethod("hi"))
	require.Nil(t, derived.FindMethod("missing"))
}

func TestNumberStringDropsTrailingZero(t *testing.T) {
	require.Equal(t, "2", value.Number{Value: 2}.String())
	require.Equal(t, "2.5", value.Number{Value: 2.5}.String())
}
