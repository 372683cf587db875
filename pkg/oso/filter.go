package oso

// askFunc sends a Question to the host and blocks until the matching
// Answer arrives, or returns ok=false if the dispatch was cancelled
// while waiting. It is the single suspension primitive both the filter
// and the sorter are built on: all suspension points collapse to this
// one blocking call, implemented underneath by DispatchHandle as a
// channel handoff rather than a hand-rolled state machine — see
// DESIGN.md.
type askFunc func(Question) (Answer, bool)

// builtinClassName maps the core's own ground-term shapes to the class
// symbol a Pattern can name when specializing over a plain value instead
// of a host-owned application instance (e.g. `x: String`). Application
// instances never appear here; their class membership is always a host
// question.
func builtinClassName(t Term) (string, bool) {
	switch t.(type) {
	case String:
		return "String", true
	case Number:
		return "Number", true
	case Boolean:
		return "Boolean", true
	case List:
		return "List", true
	case Dict:
		return "Dict", true
	case Symbol:
		return "Symbol", true
	default:
		return "", false
	}
}

// applyFilter runs unification and, when present, the specializer check
// for every parameter of rule against args. It returns (true, env) when
// rule survives and (false, nil) when it is not applicable — the
// ordinary outcome, never an error. A dispatch cancelled mid-ask also
// comes back as (false, nil): the candidate loop's own ctx.Done() check
// ends the dispatch on its next iteration, so nothing here needs to
// raise an error for it (see DispatchHandle.run).
func applyFilter(rule *Rule, args []Term, ask askFunc) (bool, *Bindings, *CoreError) {
	env := NewBindings()
	for k, param := range rule.Params {
		if !Unify(param.Parameter, args[k], env) {
			return false, nil, nil
		}
		if param.Specializer == nil {
			continue
		}
		ok, cerr := checkSpecializer(*param.Specializer, env.Walk(args[k]), env, ask)
		if cerr != nil {
			return false, nil, cerr
		}
		if !ok {
			return false, nil, nil
		}
	}
	return true, env, nil
}

// checkSpecializer evaluates whether value satisfies pattern: the
// specializer's class must be a supertype-or-equal of value's runtime
// class, and any field patterns must unify against the corresponding
// attributes. It currently never returns a non-nil error: the host
// protocol only answers Bool/Term, with no distinct "class unknown"
// response, so ErrUnknownClass (see errors.go) has no producer today.
// The *CoreError return stays so a future host-protocol answer kind can
// report it without changing this signature or applyFilter's.
func checkSpecializer(pattern Pattern, value Term, env *Bindings, ask askFunc) (bool, *CoreError) {
	inst, isInstance := value.(InstanceLiteral)
	if !isInstance || inst.Handle == nil {
		name, known := builtinClassName(value)
		if !known || name != pattern.Class.Name {
			return false, nil
		}
		if pattern.Fields == nil {
			return true, nil
		}
		dict, ok := value.(Dict)
		if !ok {
			return false, nil
		}
		for key, fieldPattern := range pattern.Fields.Fields {
			attr, present := dict.Fields[key]
			if !present {
				return false, nil
			}
			if !Unify(fieldPattern, attr, env) {
				return false, nil
			}
		}
		return true, nil
	}

	isaAns, ok := ask(Question{Kind: IsaClass, Instance: inst.Handle, Class: pattern.Class})
	if !ok {
		return false, nil
	}
	if !isaAns.Bool {
		return false, nil
	}
	if pattern.Fields == nil {
		return true, nil
	}

	for key, fieldPattern := range pattern.Fields.Fields {
		if nested, isPattern := fieldPattern.(Pattern); isPattern {
			fieldAns, ok := ask(Question{Kind: IsaClassField, Instance: inst.Handle, Field: key, Class: nested.Class})
			if !ok {
				return false, nil
			}
			if !fieldAns.Bool {
				return false, nil
			}
			continue
		}
		attrAns, ok := ask(Question{Kind: AttrLookup, Instance: inst.Handle, Field: key})
		if !ok {
			return false, nil
		}
		if attrAns.Term == nil {
			return false, nil
		}
		if !Unify(fieldPattern, attrAns.Term, env) {
			return false, nil
		}
	}
	return true, nil
}
