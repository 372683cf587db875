package oso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingsCloneIsIndependent(t *testing.T) {
	x := Fresh("x", Span{})
	base := NewBindings()
	base.bind(x, NewInt(1, Span{}))

	clone := base.Clone()
	y := Fresh("y", Span{})
	clone.bind(y, NewInt(2, Span{}))

	_, presentInBase := base.lookup(y)
	assert.False(t, presentInBase, "mutating a clone must not affect the original")

	v, ok := base.lookup(x)
	require.True(t, ok)
	assert.Equal(t, float64(1), v.(Number).AsFloat())
}

func TestDeepWalkResolvesNestedStructure(t *testing.T) {
	env := NewBindings()
	x := Fresh("x", Span{})
	env.bind(x, NewInt(5, Span{}))

	list := NewList([]Term{x, NewInt(6, Span{})}, Span{})
	resolved := env.DeepWalk(list)

	rl, ok := resolved.(List)
	require.True(t, ok)
	require.Len(t, rl.Elements, 2)
	assert.Equal(t, float64(5), rl.Elements[0].(Number).AsFloat())
}

func TestWalkStopsAtUnboundVariable(t *testing.T) {
	env := NewBindings()
	x := Fresh("x", Span{})
	assert.Equal(t, x, env.Walk(x))
}
