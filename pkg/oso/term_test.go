package oso

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermGroundness(t *testing.T) {
	t.Run("literals are ground", func(t *testing.T) {
		assert.True(t, NewSymbol("alice", Span{}).IsGround())
		assert.True(t, NewString("s", Span{}).IsGround())
		assert.True(t, NewInt(1, Span{}).IsGround())
		assert.True(t, NewBoolean(true, Span{}).IsGround())
	})

	t.Run("variable is never ground", func(t *testing.T) {
		assert.False(t, Fresh("x", Span{}).IsGround())
	})

	t.Run("list is ground iff every element is", func(t *testing.T) {
		x := Fresh("x", Span{})
		assert.True(t, NewList([]Term{NewInt(1, Span{}), NewInt(2, Span{})}, Span{}).IsGround())
		assert.False(t, NewList([]Term{NewInt(1, Span{}), x}, Span{}).IsGround())
	})

	t.Run("dict is ground iff every field is", func(t *testing.T) {
		x := Fresh("x", Span{})
		assert.True(t, NewDict(map[string]Term{"a": NewInt(1, Span{})}, Span{}).IsGround())
		assert.False(t, NewDict(map[string]Term{"a": x}, Span{}).IsGround())
	})

	t.Run("instance literal, pattern, call, expression are never ground", func(t *testing.T) {
		assert.False(t, NewInstanceLiteral(NewSymbol("User", Span{}), Dict{}, "h", Span{}).IsGround())
		assert.False(t, NewPattern(NewSymbol("User", Span{}), nil, Span{}).IsGround())
		assert.False(t, NewCall(NewSymbol("f", Span{}), nil, Span{}).IsGround())
		assert.False(t, NewExpression(ExprAnd, nil, Span{}).IsGround())
	})
}

func TestTermEquality(t *testing.T) {
	t.Run("symbols equal by name", func(t *testing.T) {
		assert.True(t, NewSymbol("a", Span{}).Equal(NewSymbol("a", Span{})))
		assert.False(t, NewSymbol("a", Span{}).Equal(NewSymbol("b", Span{})))
	})

	t.Run("numbers of equal value but different representation are not equal", func(t *testing.T) {
		assert.False(t, NewInt(1, Span{}).Equal(NewFloat(1.0, Span{})),
			"AsFloat matches but IsFloat differs, so Equal must distinguish them")
	})

	t.Run("distinct unbound variables are never equal, even same name", func(t *testing.T) {
		a := Fresh("x", Span{})
		b := Fresh("x", Span{})
		assert.False(t, a.Equal(b))
		assert.True(t, a.Equal(a))
	})

	t.Run("instance literal equality requires non-nil matching handles", func(t *testing.T) {
		i1 := NewInstanceLiteral(NewSymbol("User", Span{}), Dict{}, "h1", Span{})
		i2 := NewInstanceLiteral(NewSymbol("User", Span{}), Dict{}, "h1", Span{})
		i3 := NewInstanceLiteral(NewSymbol("User", Span{}), Dict{}, nil, Span{})
		assert.True(t, i1.Equal(i2))
		assert.False(t, i3.Equal(i3), "nil handles never compare equal, even to themselves")
	})

	t.Run("list equality is elementwise and order-sensitive", func(t *testing.T) {
		a := NewList([]Term{NewInt(1, Span{}), NewInt(2, Span{})}, Span{})
		b := NewList([]Term{NewInt(1, Span{}), NewInt(2, Span{})}, Span{})
		c := NewList([]Term{NewInt(2, Span{}), NewInt(1, Span{})}, Span{})
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})
}
