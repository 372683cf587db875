package oso

import (
	"context"
	"sync"
	"sync/atomic"
)

// Registry is the generic-rule registry: the sole entry point
// applications use to load rules and dispatch queries. The Indexer,
// Filter, and Sorter are internal collaborators reached only through
// Insert and Dispatch.
//
// Loading and querying must not interleave: Insert takes an exclusive
// lock, Dispatch takes a shared one, matching the
// "single-writer/multi-reader, never concurrent" discipline the host is
// expected to honor — a hot reload builds a new Registry and atomically
// swaps the pointer the host holds, rather than mutating this one live.
type Registry struct {
	mu       sync.RWMutex
	generic  map[string]*genericRule
	nextDef  uint64
	logger   Logger
	maxArity int // 0 means unbounded
}

// New creates an empty Registry. opts configure ambient concerns
// (WithLogger, WithMaxArity); the zero Registry from &Registry{} is not
// valid — always construct through New.
func New(opts ...Option) *Registry {
	r := &Registry{generic: make(map[string]*genericRule), logger: noopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger attaches a Logger used for the one ambient diagnostic the
// core emits on its own: a class-lattice cycle warning.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMaxArity bounds the parameter count Insert will accept for any
// rule, guarding against pathological policies rather than any real
// limit in the trie itself. n <= 0 leaves arity unbounded, which is also
// the default when this option is omitted.
func WithMaxArity(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxArity = n
		}
	}
}

// Insert adds rule to the generic rule named rule.Name, creating it if
// absent. It assigns rule.DefID, overwriting whatever the caller set.
// Fails with ErrArityMismatch if rule's arity disagrees with the generic
// rule's already-established arity, or exceeds the Registry's configured
// maximum arity; the generic rule is left unchanged on failure.
func (r *Registry) Insert(rule *Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxArity > 0 && rule.Arity() > r.maxArity {
		return newCoreError(ErrArityMismatch, ErrArityMismatchSentinel,
			"rule %s/%d exceeds configured maximum arity %d", rule.Name.Name, rule.Arity(), r.maxArity)
	}

	rule.DefID = atomic.AddUint64(&r.nextDef, 1)

	g, ok := r.generic[rule.Name.Name]
	if !ok {
		r.generic[rule.Name.Name] = newGenericRule(rule.Name, rule)
		return nil
	}
	return g.addRule(rule)
}

// Dispatch yields rules applicable to args, most-to-least specific, ties
// broken by ascending definition id. If name is unknown the resulting
// stream is immediately Done — unknown predicates are false under
// closed-world semantics, never an error.
func (r *Registry) Dispatch(ctx context.Context, name Symbol, args []Term) *DispatchHandle {
	r.mu.RLock()
	g := r.generic[name.Name]
	r.mu.RUnlock()
	return newDispatchHandle(ctx, g, args, r.logger)
}
