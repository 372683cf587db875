package oso

import "fmt"

// genericRule is the set of all Rule definitions sharing a predicate name
// and arity, indexed as a unit. The first rule inserted
// fixes the arity; later inserts with a different arity are rejected with
// ErrArityMismatch, and the generic rule is left exactly as it was.
type genericRule struct {
	name  Symbol
	arity int
	rules map[uint64]*Rule
	index *Trie
}

func newGenericRule(name Symbol, firstRule *Rule) *genericRule {
	g := &genericRule{
		name:  name,
		arity: firstRule.Arity(),
		rules: make(map[uint64]*Rule),
		index: newTrie(firstRule.Arity()),
	}
	g.rules[firstRule.DefID] = firstRule
	g.index.insert(firstRule.Params, firstRule.DefID)
	return g
}

// addRule inserts rule into an already-established generic rule. It
// never mutates g on failure.
func (g *genericRule) addRule(rule *Rule) error {
	if rule.Arity() != g.arity {
		return newCoreError(ErrArityMismatch, ErrArityMismatchSentinel,
			"rule %s/%d conflicts with existing arity %d", rule.Name.Name, rule.Arity(), g.arity)
	}
	g.rules[rule.DefID] = rule
	g.index.insert(rule.Params, rule.DefID)
	return nil
}

// candidates returns the definition ids the Trie says might apply to
// args — a superset of the ids that will survive the applicability
// filter.
func (g *genericRule) candidates(args []Term) map[uint64]struct{} {
	return g.index.lookup(args)
}

func (g *genericRule) String() string {
	return fmt.Sprintf("%s/%d", g.name.Name, g.arity)
}
