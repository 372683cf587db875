package oso

// Unify attempts to make a and b structurally equal under env, extending
// env in place with any new variable bindings. It returns false, leaving
// env in an unspecified intermediate state, on the first incompatibility
// — callers that need to retry a failed attempt must Clone the Bindings
// first (see Bindings.Clone); the applicability filter instead starts
// each candidate rule from a fresh NewBindings.
//
// Unification is symmetric: Unify(a, b, env) and Unify(b, a, env) succeed
// or fail together and produce the same bindings up to which side ended
// up holding the variable. The one exception is Pattern against Pattern:
// a's field set must be a subset of b's (see unifyDict), so two Patterns
// whose field sets differ can unify in one order and not the other.
// Occurs-check is mandatory: without it, binding
// a variable to a compound containing itself would make the specificity
// sort's term walks loop forever.
func Unify(a, b Term, env *Bindings) bool {
	a = env.Walk(a)
	b = env.Walk(b)

	if av, ok := a.(Variable); ok {
		return unifyVar(av, b, env)
	}
	if bv, ok := b.(Variable); ok {
		return unifyVar(bv, a, env)
	}

	switch at := a.(type) {
	case Symbol:
		bt, ok := b.(Symbol)
		return ok && at.Name == bt.Name
	case String:
		bt, ok := b.(String)
		return ok && at.Value == bt.Value
	case Number:
		bt, ok := b.(Number)
		return ok && at.AsFloat() == bt.AsFloat()
	case Boolean:
		bt, ok := b.(Boolean)
		return ok && at.Value == bt.Value
	case List:
		bt, ok := b.(List)
		if !ok || len(at.Elements) != len(bt.Elements) {
			return false
		}
		for i := range at.Elements {
			if !Unify(at.Elements[i], bt.Elements[i], env) {
				return false
			}
		}
		return true
	case Dict:
		bt, ok := b.(Dict)
		if !ok || len(at.Fields) != len(bt.Fields) {
			return false
		}
		return unifyDict(at, bt, env)
	case InstanceLiteral:
		bt, ok := b.(InstanceLiteral)
		return ok && at.Handle != nil && at.Handle == bt.Handle
	case Pattern:
		bt, ok := b.(Pattern)
		if !ok || at.Class.Name != bt.Class.Name {
			return false
		}
		if at.Fields == nil && bt.Fields == nil {
			return true
		}
		if at.Fields == nil || bt.Fields == nil {
			return false
		}
		return unifyDict(*at.Fields, *bt.Fields, env)
	case Call:
		bt, ok := b.(Call)
		if !ok || at.Operator.Name != bt.Operator.Name || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Unify(at.Args[i], bt.Args[i], env) {
				return false
			}
		}
		return true
	case Expression:
		bt, ok := b.(Expression)
		if !ok || at.Op != bt.Op || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Unify(at.Args[i], bt.Args[i], env) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func unifyVar(v Variable, t Term, env *Bindings) bool {
	if tv, ok := t.(Variable); ok && tv.id == v.id {
		return true
	}
	if occursCheck(env, v, t) {
		return false
	}
	env.bind(v, t)
	return true
}

// unifyDict implements the pattern-side field unification rule: every
// key on the pattern side must unify against the value side; extra keys
// on the value side are permitted. Callers that
// need exact same-key-set unification (plain Dict-vs-Dict) pre-check
// len(pattern.Fields) == len(value.Fields), which combined with the
// subset check below forces the key sets to be identical.
func unifyDict(pattern, value Dict, env *Bindings) bool {
	for k, pv := range pattern.Fields {
		vv, present := value.Fields[k]
		if !present {
			return false
		}
		if !Unify(pv, vv, env) {
			return false
		}
	}
	return true
}
