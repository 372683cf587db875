package oso

// Parameter is one position in a rule's parameter list: the term that
// binds against the call argument, and an optional specializer narrowing
// which arguments are accepted at that position.
type Parameter struct {
	Parameter   Term
	Specializer *Pattern // nil when the parameter carries no specializer
}

// Rule is one definition within a GenericRule: a named, fixed-arity
// parameter list and a body (a possibly-empty conjunction, represented as
// a Term so this package does not need to know the evaluator's
// conjunction encoding). DefID is assigned by the Registry at insertion
// and is the final tie-breaker in specificity ordering.
type Rule struct {
	Name   Symbol
	Params []Parameter
	Body   Term
	DefID  uint64
}

// Arity returns the number of parameters the rule declares.
func (r *Rule) Arity() int { return len(r.Params) }
