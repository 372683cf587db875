package oso

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
)

// literalKey is the type of a trie literal edge key: a value comparable
// with ==, so it can be a Go map key.
type literalKey string

// canonicalKey renders a ground, specializer-free term into a stable
// literal-edge key for the trie index. Scalars get a cheap tagged string
// encoding; compound literals
// (ground Lists) fall back to a structural hash via hashstructure, which
// is far cheaper than hand-rolling a canonical recursive string builder
// for arbitrarily nested lists and avoids the collision risk of a 64-bit
// FNV hash alone by feeding the whole value through a proper structural
// hasher.
func canonicalKey(t Term) literalKey {
	switch v := t.(type) {
	case Symbol:
		return literalKey("sym:" + v.Name)
	case String:
		return literalKey("str:" + v.Value)
	case Boolean:
		return literalKey(fmt.Sprintf("bool:%t", v.Value))
	case Number:
		return literalKey(fmt.Sprintf("num:%g", v.AsFloat()))
	case List:
		keys := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			keys[i] = string(canonicalKey(e))
		}
		h, err := hashstructure.Hash(keys, hashstructure.FormatV2, nil)
		if err != nil {
			// hashstructure only errors on unhashable inputs (channels,
			// funcs); keys is always []string, so this is unreachable in
			// practice, but fall back to a deterministic non-hash encoding
			// rather than silently index everything under the same bucket.
			return literalKey(fmt.Sprintf("list-raw:%v", keys))
		}
		return literalKey(fmt.Sprintf("list:%d:%x", len(keys), h))
	default:
		// Not reached from the trie: classifyParam and lookupRec only call
		// canonicalKey on terms isIndexableLiteral accepts, and
		// Variable/InstanceLiteral/Call/Expression/specialized parameters
		// are always wildcard-edged instead.
		return literalKey("unsupported:" + t.String())
	}
}
