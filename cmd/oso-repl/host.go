package main

import "github.com/terminalkitten/oso/pkg/oso"

// demoHost is a minimal in-process stand-in for an embedding application,
// answering the four host-question kinds from its own small object model
// instead of reflecting into real host-language values. A real embedder
// (Python, Ruby, Node) answers these same four questions off its own
// class/instance registry; this one exists only to drive the pipeline
// end to end in this demo binary.
type demoHost struct {
	// parents maps a class name to its direct superclass names.
	parents map[string][]string
	// classOf maps an instance handle to its most-derived class name.
	classOf map[oso.InstanceHandle]string
	// fields maps an instance handle to its attribute values.
	fields map[oso.InstanceHandle]map[string]oso.Term
}

func newDemoHost() *demoHost {
	return &demoHost{
		parents: make(map[string][]string),
		classOf: make(map[oso.InstanceHandle]string),
		fields:  make(map[oso.InstanceHandle]map[string]oso.Term),
	}
}

func (h *demoHost) registerClass(name string, parents ...string) {
	h.parents[name] = parents
}

func (h *demoHost) registerInstance(handle oso.InstanceHandle, class string, fields map[string]oso.Term) {
	h.classOf[handle] = class
	h.fields[handle] = fields
}

func (h *demoHost) isSubclass(sub, super string) bool {
	if sub == super {
		return true
	}
	seen := map[string]bool{}
	var walk func(string) bool
	walk = func(name string) bool {
		if seen[name] {
			return false
		}
		seen[name] = true
		for _, p := range h.parents[name] {
			if p == super || walk(p) {
				return true
			}
		}
		return false
	}
	return walk(sub)
}

// answer implements oso's host-question protocol synchronously: it is
// invoked from the REPL's event loop for every EventTagHostQuestion, and
// its return value is handed straight back to DispatchHandle.Answer. A
// host talking over a real IPC boundary would instead serialize Question,
// send it, and deserialize the Answer that comes back — the protocol
// itself doesn't care which.
func (h *demoHost) answer(q oso.Question) oso.Answer {
	switch q.Kind {
	case oso.IsaClass:
		class := h.classOf[q.Instance]
		return oso.Answer{Bool: h.isSubclass(class, q.Class.Name)}

	case oso.IsSubclass:
		return oso.Answer{Bool: h.isSubclass(q.Sub.Name, q.Super.Name)}

	case oso.IsaClassField:
		class := h.classOf[q.Instance]
		fieldVal, ok := h.fields[q.Instance][q.Field]
		if !ok {
			return oso.Answer{Bool: false}
		}
		inst, ok := fieldVal.(oso.InstanceLiteral)
		if !ok {
			return oso.Answer{Bool: false}
		}
		_ = class
		return oso.Answer{Bool: h.isSubclass(h.classOf[inst.Handle], q.Class.Name)}

	case oso.AttrLookup:
		val, ok := h.fields[q.Instance][q.Field]
		if !ok {
			return oso.Answer{}
		}
		return oso.Answer{Term: val}

	default:
		return oso.Answer{}
	}
}
