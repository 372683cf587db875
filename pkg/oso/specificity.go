package oso

// classPairCache memoizes IsSubclass answers within a single dispatch:
// the class lattice cannot change mid-dispatch, so an answer observed
// once is valid for the rest of that dispatch. Keyed by the ordered
// (sub, super) pair so A-vs-B and B-vs-A are two distinct cached entries.
type classPairCache map[[2]string]bool

// cmp is a three-way comparison result for one parameter position or one
// whole rule: negative means the left side is more specific, positive
// means the right side is more specific, zero means equal or
// incomparable (both fall through to the definition-id tie-break).
type cmp int

const (
	cmpLeftMore  cmp = -1
	cmpEqual     cmp = 0
	cmpRightMore cmp = 1
)

// cycleNotifier is called by compareParam each time the host's class
// lattice answers inconsistently (A <: B and B <: A). It is a function
// value rather than a hard-coded logger call so the dispatcher can route
// it through its Logger; the dispatcher's notifier logs only the first
// such report of a dispatch.
type cycleNotifier func(a, b string)

// compareParam ranks param1 against param2, the same-position parameters
// of two rules that have both already survived the applicability filter
// for the same argument. It never consults the argument itself — by the
// time two rules reach the sorter, both of their specializers (if any)
// are already known to accept it, so only the specializers' relative
// shape and the host's class lattice decide order. Between two
// unspecialized parameters, a ground parameter term (a literal) is more
// specific than a non-ground one (e.g. a Variable).
func compareParam(param1, param2 Parameter, ask askFunc, cache classPairCache, onCycle cycleNotifier) (cmp, bool) {
	s1, s2 := param1.Specializer, param2.Specializer
	if s1 == nil && s2 == nil {
		g1, g2 := param1.Parameter.IsGround(), param2.Parameter.IsGround()
		switch {
		case g1 && !g2:
			return cmpLeftMore, true
		case g2 && !g1:
			return cmpRightMore, true
		}
		return cmpEqual, true
	}
	if s1 != nil && s2 == nil {
		return cmpLeftMore, true
	}
	if s1 == nil && s2 != nil {
		return cmpRightMore, true
	}

	if s1.Class.Name == s2.Class.Name {
		f1, f2 := s1.Fields != nil, s2.Fields != nil
		switch {
		case f1 && !f2:
			return cmpLeftMore, true
		case f2 && !f1:
			return cmpRightMore, true
		default:
			return cmpEqual, true
		}
	}

	aLtB, okAB := isSubclass(s1.Class.Name, s2.Class.Name, ask, cache)
	if !okAB {
		return cmpEqual, false
	}
	bLtA, okBA := isSubclass(s2.Class.Name, s1.Class.Name, ask, cache)
	if !okBA {
		return cmpEqual, false
	}

	switch {
	case aLtB && bLtA:
		if onCycle != nil {
			onCycle(s1.Class.Name, s2.Class.Name)
		}
		return cmpEqual, true
	case aLtB:
		return cmpLeftMore, true
	case bLtA:
		return cmpRightMore, true
	default:
		return cmpEqual, true
	}
}

func isSubclass(sub, super string, ask askFunc, cache classPairCache) (bool, bool) {
	if sub == super {
		return true, true
	}
	key := [2]string{sub, super}
	if v, ok := cache[key]; ok {
		return v, true
	}
	ans, ok := ask(Question{Kind: IsSubclass, Sub: NewSymbol(sub, Span{}), Super: NewSymbol(super, Span{})})
	if !ok {
		return false, false
	}
	cache[key] = ans.Bool
	return ans.Bool, true
}

// compareRules implements the whole-rule specificity order:
// left-to-right lexicographic over parameter positions, first non-equal
// position decides, equally-specific rules fall through to ascending
// DefID.
func compareRules(r1, r2 *Rule, ask askFunc, cache classPairCache, onCycle cycleNotifier) (cmp, bool) {
	for k := range r1.Params {
		c, ok := compareParam(r1.Params[k], r2.Params[k], ask, cache, onCycle)
		if !ok {
			return cmpEqual, false
		}
		if c != cmpEqual {
			return c, true
		}
	}
	switch {
	case r1.DefID < r2.DefID:
		return cmpLeftMore, true
	case r1.DefID > r2.DefID:
		return cmpRightMore, true
	default:
		return cmpEqual, true
	}
}
