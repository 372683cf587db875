package oso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noHostAsk(Question) (Answer, bool) {
	return Answer{}, false
}

func TestApplyFilterGroundMatch(t *testing.T) {
	rule := &Rule{
		Name: NewSymbol("allow", Span{}),
		Params: []Parameter{
			{Parameter: NewSymbol("alice", Span{})},
			{Parameter: NewString("/r/a", Span{})},
		},
	}
	ok, env, cerr := applyFilter(rule, []Term{NewSymbol("alice", Span{}), NewString("/r/a", Span{})}, noHostAsk)
	require.NoError(t, errOf(cerr))
	assert.True(t, ok)
	assert.NotNil(t, env)
}

func TestApplyFilterGroundMismatch(t *testing.T) {
	rule := &Rule{
		Name:   NewSymbol("allow", Span{}),
		Params: []Parameter{{Parameter: NewSymbol("alice", Span{})}},
	}
	ok, env, cerr := applyFilter(rule, []Term{NewSymbol("bob", Span{})}, noHostAsk)
	assert.False(t, ok)
	assert.Nil(t, env)
	assert.Nil(t, cerr, "plain non-applicability is never an error")
}

func TestApplyFilterBuiltinSpecializer(t *testing.T) {
	rule := &Rule{
		Name: NewSymbol("allow", Span{}),
		Params: []Parameter{
			{Parameter: Fresh("x", Span{}), Specializer: &Pattern{Class: NewSymbol("String", Span{})}},
		},
	}
	ok, _, cerr := applyFilter(rule, []Term{NewString("hi", Span{})}, noHostAsk)
	require.Nil(t, cerr)
	assert.True(t, ok)

	ok, _, cerr = applyFilter(rule, []Term{NewInt(1, Span{})}, noHostAsk)
	require.Nil(t, cerr)
	assert.False(t, ok, "a Number argument does not satisfy a String specializer")
}

func TestApplyFilterHostSpecializer(t *testing.T) {
	rule := &Rule{
		Name: NewSymbol("allow", Span{}),
		Params: []Parameter{
			{Parameter: Fresh("x", Span{}), Specializer: &Pattern{Class: NewSymbol("User", Span{})}},
		},
	}
	inst := NewInstanceLiteral(NewSymbol("SuperUser", Span{}), Dict{}, "h1", Span{})

	asked := []Question{}
	ask := func(q Question) (Answer, bool) {
		asked = append(asked, q)
		return Answer{Bool: true}, true
	}

	ok, _, cerr := applyFilter(rule, []Term{inst}, ask)
	require.Nil(t, cerr)
	assert.True(t, ok)
	require.Len(t, asked, 1)
	assert.Equal(t, IsaClass, asked[0].Kind)
	assert.Equal(t, "h1", asked[0].Instance)
}

func TestApplyFilterFieldPattern(t *testing.T) {
	fields := Dict{Fields: map[string]Term{"author": NewSymbol("alice", Span{})}}
	rule := &Rule{
		Name: NewSymbol("allow", Span{}),
		Params: []Parameter{
			{Parameter: Fresh("r", Span{}), Specializer: &Pattern{Class: NewSymbol("Report", Span{}), Fields: &fields}},
		},
	}
	inst := NewInstanceLiteral(NewSymbol("Report", Span{}), Dict{}, "r1", Span{})

	ask := func(q Question) (Answer, bool) {
		switch q.Kind {
		case IsaClass:
			return Answer{Bool: true}, true
		case AttrLookup:
			return Answer{Term: NewSymbol("alice", Span{})}, true
		default:
			return Answer{}, true
		}
	}

	ok, _, cerr := applyFilter(rule, []Term{inst}, ask)
	require.Nil(t, cerr)
	assert.True(t, ok)
}

func TestApplyFilterCancelledAskIsNotApplicableWithNoError(t *testing.T) {
	rule := &Rule{
		Name: NewSymbol("allow", Span{}),
		Params: []Parameter{
			{Parameter: Fresh("x", Span{}), Specializer: &Pattern{Class: NewSymbol("User", Span{})}},
		},
	}
	inst := NewInstanceLiteral(NewSymbol("User", Span{}), Dict{}, "h1", Span{})

	ok, env, cerr := applyFilter(rule, []Term{inst}, noHostAsk)
	assert.False(t, ok)
	assert.Nil(t, env)
	assert.Nil(t, cerr)
}

func errOf(c *CoreError) error {
	if c == nil {
		return nil
	}
	return c
}
