package oso

import "fmt"

// Span is source location metadata. It is carried by every Term but is
// semantically inert: it never participates in equality, unification, or
// specificity comparisons.
type Span struct {
	File        string
	Line, Col   int
	EndLine     int
	EndCol      int
}

// Term is the closed tagged union of values in the policy language. The
// concrete cases are Variable, Symbol, String, Number, Boolean, List,
// Dict, InstanceLiteral, Pattern, Call, and Expression. Application
// instances never implement Term themselves; they are referenced
// opaquely through an InstanceLiteral's Handle.
type Term interface {
	// String renders the term for diagnostics and trie key construction.
	String() string

	// Span returns the term's source location.
	Span() Span

	// IsGround reports whether the term contains no free Variable and no
	// InstanceLiteral/Call anywhere in its structure.
	IsGround() bool

	// Equal is structural equality, not unification. Two distinct unbound
	// Variables are never Equal, even when they share a Name, since
	// equality here is by Variable identity (the id assigned by Fresh); a
	// Variable is Equal to itself.
	Equal(other Term) bool

	term() // unexported marker restricting implementers to this package
}

// Symbol is an interned-by-value atom: a predicate name, class name, or
// bare identifier that is not a logic Variable.
type Symbol struct {
	span Span
	Name string
}

func NewSymbol(name string, span Span) Symbol { return Symbol{span: span, Name: name} }

func (s Symbol) String() string       { return s.Name }
func (s Symbol) Span() Span           { return s.span }
func (s Symbol) IsGround() bool       { return true }
func (Symbol) term()                  {}
func (s Symbol) Equal(other Term) bool {
	o, ok := other.(Symbol)
	return ok && o.Name == s.Name
}

// String is a policy-language string literal term. Equality is byte-exact.
type String struct {
	span Span
	Value string
}

func NewString(value string, span Span) String { return String{span: span, Value: value} }

func (s String) String() string       { return fmt.Sprintf("%q", s.Value) }
func (s String) Span() Span           { return s.span }
func (s String) IsGround() bool       { return true }
func (String) term()                  {}
func (s String) Equal(other Term) bool {
	o, ok := other.(String)
	return ok && o.Value == s.Value
}

// Number carries either an integer or floating-point value. Unification
// compares by mathematical value across the two representations; Equal,
// being structural, also requires the same representation, so an int and
// a float of the same value are not Equal.
type Number struct {
	span Span
	IsFloat bool
	Int   int64
	Float float64
}

func NewInt(v int64, span Span) Number   { return Number{span: span, Int: v} }
func NewFloat(v float64, span Span) Number { return Number{span: span, IsFloat: true, Float: v} }

// AsFloat returns the numeric value widened to float64 for comparison.
func (n Number) AsFloat() float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

func (n Number) String() string {
	if n.IsFloat {
		return fmt.Sprintf("%g", n.Float)
	}
	return fmt.Sprintf("%d", n.Int)
}
func (n Number) Span() Span     { return n.span }
func (n Number) IsGround() bool { return true }
func (Number) term()            {}
func (n Number) Equal(other Term) bool {
	o, ok := other.(Number)
	return ok && n.AsFloat() == o.AsFloat() && n.IsFloat == o.IsFloat
}

// Boolean is a ground true/false literal.
type Boolean struct {
	span Span
	Value bool
}

func NewBoolean(v bool, span Span) Boolean { return Boolean{span: span, Value: v} }

func (b Boolean) String() string { return fmt.Sprintf("%t", b.Value) }
func (b Boolean) Span() Span     { return b.span }
func (b Boolean) IsGround() bool { return true }
func (Boolean) term()            {}
func (b Boolean) Equal(other Term) bool {
	o, ok := other.(Boolean)
	return ok && o.Value == b.Value
}

// List is an ordered, fixed-length sequence of terms.
type List struct {
	span Span
	Elements []Term
}

func NewList(elements []Term, span Span) List { return List{span: span, Elements: elements} }

func (l List) String() string {
	out := "["
	for i, e := range l.Elements {
		if i > 0 {
			out += ", "
		}
		out += e.String()
	}
	return out + "]"
}
func (l List) Span() Span { return l.span }
func (l List) IsGround() bool {
	for _, e := range l.Elements {
		if !e.IsGround() {
			return false
		}
	}
	return true
}
func (List) term() {}
func (l List) Equal(other Term) bool {
	o, ok := other.(List)
	if !ok || len(o.Elements) != len(l.Elements) {
		return false
	}
	for i := range l.Elements {
		if !l.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Dict is a keyed map of field name to term. Field order is not
// semantically meaningful; keys are compared structurally.
type Dict struct {
	span Span
	Fields map[string]Term
}

func NewDict(fields map[string]Term, span Span) Dict { return Dict{span: span, Fields: fields} }

func (d Dict) String() string {
	out := "{"
	first := true
	for k, v := range d.Fields {
		if !first {
			out += ", "
		}
		first = false
		out += k + ": " + v.String()
	}
	return out + "}"
}
func (d Dict) Span() Span { return d.span }
func (d Dict) IsGround() bool {
	for _, v := range d.Fields {
		if !v.IsGround() {
			return false
		}
	}
	return true
}
func (Dict) term() {}
func (d Dict) Equal(other Term) bool {
	o, ok := other.(Dict)
	if !ok || len(o.Fields) != len(d.Fields) {
		return false
	}
	for k, v := range d.Fields {
		ov, present := o.Fields[k]
		if !present || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// InstanceHandle is an opaque reference to an application instance. The
// core never dereferences it; only the host, via hostproto questions,
// knows what it is.
type InstanceHandle = any

// InstanceLiteral names a host application instance: `new Class(fields)`
// in source, or an already-constructed handle flowing in as a query
// argument. It is never ground, since its class/fields are owned by the
// host.
type InstanceLiteral struct {
	span Span
	Class  Symbol
	Fields Dict
	Handle InstanceHandle // nil until the evaluator binds a concrete instance
}

func NewInstanceLiteral(class Symbol, fields Dict, handle InstanceHandle, span Span) InstanceLiteral {
	return InstanceLiteral{span: span, Class: class, Fields: fields, Handle: handle}
}

func (i InstanceLiteral) String() string { return i.Class.Name + i.Fields.String() }
func (i InstanceLiteral) Span() Span     { return i.span }
func (i InstanceLiteral) IsGround() bool { return false }
func (InstanceLiteral) term()            {}
func (i InstanceLiteral) Equal(other Term) bool {
	o, ok := other.(InstanceLiteral)
	return ok && i.Handle != nil && i.Handle == o.Handle
}

// Pattern is a specializer term: a class symbol, optionally refined by a
// Dict of field patterns, e.g. Report{author: actor}.
type Pattern struct {
	span Span
	Class  Symbol
	Fields *Dict // nil when the pattern carries no field refinement
}

func NewPattern(class Symbol, fields *Dict, span Span) Pattern {
	return Pattern{span: span, Class: class, Fields: fields}
}

func (p Pattern) String() string {
	if p.Fields == nil {
		return p.Class.Name
	}
	return p.Class.Name + p.Fields.String()
}
func (p Pattern) Span() Span     { return p.span }
func (p Pattern) IsGround() bool { return false }
func (Pattern) term()            {}
func (p Pattern) Equal(other Term) bool {
	o, ok := other.(Pattern)
	if !ok || p.Class.Name != o.Class.Name {
		return false
	}
	if (p.Fields == nil) != (o.Fields == nil) {
		return false
	}
	if p.Fields == nil {
		return true
	}
	return p.Fields.Equal(*o.Fields)
}

// Call is an operator application such as arithmetic or a dotted method
// call: op(args...). Calls are never ground since they require evaluation.
type Call struct {
	span Span
	Operator Symbol
	Args     []Term
}

func NewCall(op Symbol, args []Term, span Span) Call { return Call{span: span, Operator: op, Args: args} }

func (c Call) String() string {
	out := c.Operator.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out + ")"
}
func (c Call) Span() Span     { return c.span }
func (c Call) IsGround() bool { return false }
func (Call) term()            {}
func (c Call) Equal(other Term) bool {
	o, ok := other.(Call)
	if !ok || c.Operator.Name != o.Operator.Name || len(c.Args) != len(o.Args) {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// ExprOp names the boolean/arithmetic operators an Expression can apply.
type ExprOp int

const (
	ExprAnd ExprOp = iota
	ExprOr
	ExprNot
	ExprEq
	ExprNeq
	ExprAdd
	ExprSub
	ExprMul
	ExprDiv
)

// Expression is a boolean or arithmetic combination of sub-terms,
// produced by rule bodies. Like Call, it is never ground.
type Expression struct {
	span Span
	Op   ExprOp
	Args []Term
}

func NewExpression(op ExprOp, args []Term, span Span) Expression {
	return Expression{span: span, Op: op, Args: args}
}

func (e Expression) String() string {
	out := fmt.Sprintf("op%d(", e.Op)
	for i, a := range e.Args {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out + ")"
}
func (e Expression) Span() Span     { return e.span }
func (e Expression) IsGround() bool { return false }
func (Expression) term()            {}
func (e Expression) Equal(other Term) bool {
	o, ok := other.(Expression)
	if !ok || e.Op != o.Op || len(e.Args) != len(o.Args) {
		return false
	}
	for i := range e.Args {
		if !e.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}
