package oso

import "github.com/pkg/errors"

// ErrorKind classifies the error kinds the core can surface. Unification
// failure and specializer-check failure are deliberately not represented
// here: they are the ordinary "not applicable" outcome, reported as a
// bool, never an error.
type ErrorKind int

const (
	// ErrArityMismatch: a rule was inserted whose parameter count
	// disagrees with the generic rule's established arity.
	ErrArityMismatch ErrorKind = iota
	// ErrUnknownClass: a specializer names a class the host reports as
	// unknown. Reserved: the current host protocol (hostproto.go) only
	// answers Bool/Term, with no way to distinguish "unknown" from
	// "false", so nothing produces this kind yet — see DESIGN.md.
	ErrUnknownClass
	// ErrHostProtocolViolation: an answer arrived with an unrecognized
	// correlation id, the wrong payload type, or out of the single
	// outstanding request/response slot.
	ErrHostProtocolViolation
	// ErrOccursCheck: unification attempted to bind a variable to a
	// compound term that contains that same variable. Unify reports an
	// occurs-check failure as an ordinary false result (the rule is not
	// applicable), so no dispatch produces this kind.
	ErrOccursCheck
)

func (k ErrorKind) String() string {
	switch k {
	case ErrArityMismatch:
		return "ArityMismatch"
	case ErrUnknownClass:
		return "UnknownClass"
	case ErrHostProtocolViolation:
		return "HostProtocolViolation"
	case ErrOccursCheck:
		return "OccursCheck"
	default:
		return "Unknown"
	}
}

// sentinels. Callers compare with errors.Is; call sites wrap these with
// errors.Wrapf (github.com/pkg/errors) to attach the rule/predicate
// context, mirroring the xerr + pkg/errors idiom used across the example
// pack's rule engines.
var (
	ErrArityMismatchSentinel       = errors.New("oso: rule arity mismatch")
	ErrUnknownClassSentinel        = errors.New("oso: unknown class")
	ErrHostProtocolViolationSentinel = errors.New("oso: host protocol violation")
	ErrOccursCheckSentinel         = errors.New("oso: occurs check failed")
)

// CoreError wraps one of the sentinels above with its ErrorKind and the
// wrapped cause, so a terminal EventError can report both a stable kind
// for programmatic handling and a human-readable cause chain.
type CoreError struct {
	Kind  ErrorKind
	cause error
}

func (e *CoreError) Error() string { return e.cause.Error() }
func (e *CoreError) Unwrap() error { return e.cause }

func newCoreError(kind ErrorKind, sentinel error, format string, args ...any) *CoreError {
	return &CoreError{Kind: kind, cause: errors.Wrapf(sentinel, format, args...)}
}
