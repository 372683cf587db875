package oso

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchHandleAnswerRejectsBadCorrelationID(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Insert(&Rule{Name: NewSymbol("allow", Span{}), Params: []Parameter{
		{Parameter: Fresh("a", Span{}), Specializer: &Pattern{Class: NewSymbol("User", Span{})}},
	}}))

	handle := reg.Dispatch(context.Background(), NewSymbol("allow", Span{}),
		[]Term{NewInstanceLiteral(NewSymbol("User", Span{}), Dict{}, "h1", Span{})})
	defer handle.Close()

	ev, err := handle.Next()
	require.NoError(t, err)
	require.Equal(t, EventTagHostQuestion, ev.Tag)

	err = handle.Answer(ev.Question.CorrelationID+999, Answer{Bool: true})
	require.Error(t, err)
	var cerr *CoreError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrHostProtocolViolation, cerr.Kind)

	require.NoError(t, handle.Answer(ev.Question.CorrelationID, Answer{Bool: true}))
}

func TestDispatchHandleDoubleAnswerFails(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Insert(&Rule{Name: NewSymbol("allow", Span{}), Params: []Parameter{
		{Parameter: Fresh("a", Span{}), Specializer: &Pattern{Class: NewSymbol("User", Span{})}},
	}}))

	handle := reg.Dispatch(context.Background(), NewSymbol("allow", Span{}),
		[]Term{NewInstanceLiteral(NewSymbol("User", Span{}), Dict{}, "h1", Span{})})
	defer handle.Close()

	ev, err := handle.Next()
	require.NoError(t, err)
	require.Equal(t, EventTagHostQuestion, ev.Tag)

	require.NoError(t, handle.Answer(ev.Question.CorrelationID, Answer{Bool: true}))
	err = handle.Answer(ev.Question.CorrelationID, Answer{Bool: true})
	require.Error(t, err, "a correlation id may only be answered once")
}

func TestDispatchHandleTerminalEventIsSticky(t *testing.T) {
	reg := New()
	handle := reg.Dispatch(context.Background(), NewSymbol("missing", Span{}), []Term{NewInt(1, Span{})})
	defer handle.Close()

	ev1, err := handle.Next()
	require.NoError(t, err)
	assert.Equal(t, EventTagDone, ev1.Tag)

	ev2, err := handle.Next()
	require.NoError(t, err)
	assert.Equal(t, ev1, ev2)
}

func TestDispatchHandleCloseUnblocksGoroutine(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Insert(&Rule{Name: NewSymbol("allow", Span{}), Params: []Parameter{
		{Parameter: Fresh("a", Span{}), Specializer: &Pattern{Class: NewSymbol("User", Span{})}},
	}}))

	handle := reg.Dispatch(context.Background(), NewSymbol("allow", Span{}),
		[]Term{NewInstanceLiteral(NewSymbol("User", Span{}), Dict{}, "h1", Span{})})

	ev, err := handle.Next()
	require.NoError(t, err)
	require.Equal(t, EventTagHostQuestion, ev.Tag)

	handle.Close()

	done := make(chan struct{})
	go func() {
		handle.Answer(ev.Question.CorrelationID, Answer{Bool: true})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Answer did not return after Close")
	}
}

func TestDispatchHandleWithoutRulesIsImmediatelyDone(t *testing.T) {
	handle := newDispatchHandle(context.Background(), nil, nil, nil)
	ev, err := handle.Next()
	require.NoError(t, err)
	assert.Equal(t, EventTagDone, ev.Tag)
}
