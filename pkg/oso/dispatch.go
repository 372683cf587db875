package oso

import (
	"context"
	"sort"
	"sync/atomic"
)

// DispatchHandle drives one query against a Registry as a resumable
// coroutine: it runs on its own goroutine, parking on a channel handoff
// at each of the three suspension points (a filter specializer check, a
// sort comparison, and between successive emitted rules) rather than
// pushing results the caller hasn't asked for yet. See DESIGN.md for why
// this channel-coroutine shape was chosen over an explicit state-machine
// struct: the two are observationally identical — exactly one goroutine
// is ever runnable, no lock is held across a suspension, and the caller
// never receives an event it didn't pull.
type DispatchHandle struct {
	ctx    context.Context
	cancel context.CancelFunc

	eventCh  chan Event
	answerCh chan Answer
	resumeCh chan struct{}

	started   bool
	lastTag   EventTag
	pendingID atomic.Uint64 // 0 means no question outstanding

	terminalSent bool
	terminalEvt  Event

	logger Logger
}

func newDispatchHandle(ctx context.Context, g *genericRule, args []Term, logger Logger) *DispatchHandle {
	if logger == nil {
		logger = noopLogger{}
	}
	dctx, cancel := context.WithCancel(ctx)
	h := &DispatchHandle{
		ctx:      dctx,
		cancel:   cancel,
		eventCh:  make(chan Event, 1),
		answerCh: make(chan Answer),
		resumeCh: make(chan struct{}),
		logger:   logger,
	}
	if g == nil {
		h.eventCh <- Event{Tag: EventTagDone}
		h.terminalSent = true
		h.terminalEvt = Event{Tag: EventTagDone}
		return h
	}
	go h.run(g, args)
	return h
}

// Next advances the dispatch and returns its next Event. Once a terminal
// Event (Done or Error) has been returned, every subsequent call to Next
// returns the same terminal Event again.
func (h *DispatchHandle) Next() (Event, error) {
	if h.terminalSent {
		return h.terminalEvt, nil
	}
	// Only a just-emitted RuleReady leaves the goroutine parked on
	// resumeCh (the third suspension point, §5); after a HostQuestion it
	// is parked on answerCh instead, woken by Answer, not Next.
	if h.started && h.lastTag == EventTagRuleReady {
		select {
		case h.resumeCh <- struct{}{}:
		case <-h.ctx.Done():
		}
	}
	h.started = true

	select {
	case ev := <-h.eventCh:
		h.lastTag = ev.Tag
		if isTerminal(ev) {
			h.terminalSent = true
			h.terminalEvt = ev
			h.cancel()
		}
		return ev, nil
	case <-h.ctx.Done():
		ev := Event{Tag: EventTagDone}
		h.terminalSent = true
		h.terminalEvt = ev
		return ev, nil
	}
}

// Answer supplies the answer to the most recently issued host question.
// It fails with ErrHostProtocolViolation if no question is outstanding or
// correlationID does not match it.
func (h *DispatchHandle) Answer(correlationID uint64, answer Answer) error {
	if correlationID == 0 || !h.pendingID.CompareAndSwap(correlationID, 0) {
		return newCoreError(ErrHostProtocolViolation, ErrHostProtocolViolationSentinel,
			"no outstanding question with correlation id %d", correlationID)
	}
	answer.CorrelationID = correlationID
	select {
	case h.answerCh <- answer:
		return nil
	case <-h.ctx.Done():
		return h.ctx.Err()
	}
}

// Close cancels the dispatch, releasing the goroutine backing it. It is
// safe to call multiple times and after the dispatch has already
// finished on its own.
func (h *DispatchHandle) Close() {
	h.cancel()
}

func (h *DispatchHandle) run(g *genericRule, args []Term) {
	ask := func(q Question) (Answer, bool) {
		correlationID := nextCorrelationID()
		q.CorrelationID = correlationID
		h.pendingID.Store(correlationID)
		h.eventCh <- Event{Tag: EventTagHostQuestion, Question: q}
		select {
		case ans := <-h.answerCh:
			h.pendingID.Store(0)
			return ans, true
		case <-h.ctx.Done():
			return Answer{}, false
		}
	}

	if len(args) != g.arity {
		h.eventCh <- Event{Tag: EventTagDone}
		return
	}

	candidateIDs := g.candidates(args)
	candidates := make([]*Rule, 0, len(candidateIDs))
	for id := range candidateIDs {
		candidates = append(candidates, g.rules[id])
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].DefID < candidates[j].DefID })

	applicable := make([]applicableRule, 0, len(candidates))
	for _, rule := range candidates {
		select {
		case <-h.ctx.Done():
			return
		default:
		}
		ok, env, cerr := applyFilter(rule, args, ask)
		if cerr != nil {
			h.eventCh <- Event{Tag: EventTagError, Err: cerr}
			return
		}
		if ok {
			applicable = append(applicable, applicableRule{rule: rule, env: env})
		}
	}

	cache := classPairCache{}
	cycleLogged := false
	onCycle := func(a, b string) {
		if cycleLogged {
			return
		}
		cycleLogged = true
		h.logger.Warn("class lattice cycle detected, falling back to definition-id order", "class_a", a, "class_b", b)
	}
	if !insertionSort(applicable, ask, cache, onCycle) {
		return
	}

	for _, item := range applicable {
		h.eventCh <- Event{Tag: EventTagRuleReady, Rule: item.rule, Bindings: item.env}
		select {
		case <-h.resumeCh:
		case <-h.ctx.Done():
			return
		}
	}

	h.eventCh <- Event{Tag: EventTagDone}
}
