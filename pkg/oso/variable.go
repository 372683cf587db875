package oso

import (
	"fmt"
	"sync/atomic"
)

// Variable is a logic variable. Two distinct unbound Variables are never
// Equal to one another, even when they share a Name — equality here is by
// identity (a monotonic id assigned at creation), matching the
// observation in spec.md §3 that "two distinct unbound Variables are
// unequal."
type Variable struct {
	span Span
	id   uint64
	Name string
}

var variableIDCounter uint64

// Fresh creates a new Variable with a unique identity. name is cosmetic
// and used only for String(). Safe to call concurrently, matching
// nextCorrelationID's counter in ids.go.
func Fresh(name string, span Span) Variable {
	id := atomic.AddUint64(&variableIDCounter, 1)
	return Variable{span: span, id: id, Name: name}
}

func (v Variable) String() string {
	if v.Name != "" {
		return "_" + v.Name
	}
	return fmt.Sprintf("_%d", v.id)
}
func (v Variable) Span() Span     { return v.span }
func (v Variable) IsGround() bool { return false }
func (Variable) term()            {}

func (v Variable) Equal(other Term) bool {
	o, ok := other.(Variable)
	return ok && o.id == v.id
}

// IsVariable reports whether t is a Variable.
func IsVariable(t Term) bool {
	_, ok := t.(Variable)
	return ok
}

// isIndexableLiteral reports whether t can key a literal edge of the trie
// index: a Symbol, String, Number, or Boolean, or a List made only of
// such terms. Everything else (a Variable, Dict, InstanceLiteral,
// Pattern, Call, Expression, or a List containing one) is indexed as a
// wildcard position instead.
func isIndexableLiteral(t Term) bool {
	switch v := t.(type) {
	case Symbol, String, Number, Boolean:
		return true
	case List:
		for _, e := range v.Elements {
			if !isIndexableLiteral(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
