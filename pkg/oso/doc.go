// Package oso implements the generic-rule dispatch core of an embedded
// authorization engine whose policy language is a Prolog-family logic
// language. It answers queries of the form p(a1, ..., an) against a policy
// made of many rule definitions that share a predicate name p.
//
// Dispatch runs in four stages:
//   - the Registry locates the GenericRule for a predicate name
//   - the Trie index narrows it to a candidate set using the query's
//     ground argument values
//   - the Filter narrows candidates to those that actually unify and pass
//     their specializer checks against the arguments
//   - the Sorter orders the applicable set by specificity, most specific
//     first, suspending to ask the embedding application class-lattice
//     questions when needed
//
// The package does not execute rule bodies and does not parse policy
// source; it consumes already-parsed Rule values and hands ordered Rule
// values back to an evaluator that does both of those things.
package oso
