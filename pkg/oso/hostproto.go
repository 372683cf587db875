package oso

// QuestionKind enumerates the host questions the filter and sorter can
// ask. Each is answered with exactly one Answer before the core resumes.
type QuestionKind int

const (
	// IsaClass asks whether an instance belongs to a class: does
	// instance-handle belong to class-symbol? Answered with Answer.Bool.
	IsaClass QuestionKind = iota
	// IsSubclass asks whether one class is a subtype of (or equal to)
	// another in the host's class lattice. Answered with Answer.Bool.
	IsSubclass
	// IsaClassField asks whether the named attribute of an instance
	// belongs to a class. Answered with Answer.Bool.
	IsaClassField
	// AttrLookup fetches an attribute, boxed back as a Term. Answered
	// with Answer.Term.
	AttrLookup
)

func (k QuestionKind) String() string {
	switch k {
	case IsaClass:
		return "IsaClass"
	case IsSubclass:
		return "IsSubclass"
	case IsaClassField:
		return "IsaClassField"
	case AttrLookup:
		return "AttrLookup"
	default:
		return "Unknown"
	}
}

// Question is a single typed request to the embedding application,
// proxied by the evaluator. Exactly one field set is meaningful per Kind:
//
//	IsaClass:      Instance, Class
//	IsSubclass:    Sub, Super
//	IsaClassField: Instance, Field, Class
//	AttrLookup:    Instance, Field
type Question struct {
	CorrelationID uint64
	Kind          QuestionKind

	Instance InstanceHandle
	Class    Symbol
	Sub      Symbol
	Super    Symbol
	Field    string
}

// Answer is the host's reply to a Question. Exactly one of Bool/Term is
// meaningful, matching the Question's Kind: IsaClass, IsSubclass, and
// IsaClassField answer with Bool; AttrLookup answers with Term.
type Answer struct {
	CorrelationID uint64
	Bool          bool
	Term          Term
}
