package oso

// trieNode is one level of a GenericRule's sparse index. Depth equals the
// generic rule's arity; only nodes at that depth carry ids.
type trieNode struct {
	literal  map[literalKey]*trieNode
	wildcard *trieNode
	ids      map[uint64]struct{}
}

func newTrieNode() *trieNode {
	return &trieNode{ids: make(map[uint64]struct{})}
}

func (n *trieNode) literalChild(key literalKey) *trieNode {
	if n.literal == nil {
		n.literal = make(map[literalKey]*trieNode)
	}
	child, ok := n.literal[key]
	if !ok {
		child = newTrieNode()
		n.literal[key] = child
	}
	return child
}

func (n *trieNode) wildcardChild() *trieNode {
	if n.wildcard == nil {
		n.wildcard = newTrieNode()
	}
	return n.wildcard
}

// Trie is the per-GenericRule sparse-trie index. Lookup never fails;
// insertion cannot fail (arity agreement is enforced one level up, by
// genericRule.addRule).
type Trie struct {
	arity int
	root  *trieNode
}

func newTrie(arity int) *Trie {
	return &Trie{arity: arity, root: newTrieNode()}
}

// classifyParam returns the literal-edge key for parameter p (valid only
// when isLiteral is true) and whether p's parameter term is a ground List
// — the one case that contributes both a literal edge and a wildcard
// edge, since a pattern-bearing rule at the same position must stay
// reachable for a differently-shaped list argument.
func classifyParam(p Parameter) (key literalKey, isLiteral bool, isList bool) {
	if p.Specializer != nil {
		return "", false, false
	}
	if !p.Parameter.IsGround() {
		return "", false, false
	}
	if !isIndexableLiteral(p.Parameter) {
		return "", false, false
	}
	_, isList = p.Parameter.(List)
	return canonicalKey(p.Parameter), true, isList
}

// insert adds ruleID reachable along every path its parameter list
// classifies into. A ground-List parameter doubles the paths produced
// for the remaining positions (literal path and wildcard path); every
// other position produces exactly one.
func (t *Trie) insert(params []Parameter, ruleID uint64) {
	insertRec(t.root, params, 0, ruleID)
}

func insertRec(node *trieNode, params []Parameter, pos int, ruleID uint64) {
	if pos == len(params) {
		node.ids[ruleID] = struct{}{}
		return
	}
	key, isLiteral, isList := classifyParam(params[pos])
	if isLiteral {
		insertRec(node.literalChild(key), params, pos+1, ruleID)
		if isList {
			insertRec(node.wildcardChild(), params, pos+1, ruleID)
		}
		return
	}
	insertRec(node.wildcardChild(), params, pos+1, ruleID)
}

// lookup descends the trie: a ground argument follows both its literal
// edge (if present) and the wildcard edge; a non-ground argument follows
// only the wildcard edge.
// The union of every leaf's id set reached is the candidate set.
func (t *Trie) lookup(args []Term) map[uint64]struct{} {
	out := make(map[uint64]struct{})
	lookupRec(t.root, args, 0, out)
	return out
}

func lookupRec(node *trieNode, args []Term, pos int, out map[uint64]struct{}) {
	if node == nil {
		return
	}
	if pos == len(args) {
		for id := range node.ids {
			out[id] = struct{}{}
		}
		return
	}
	arg := args[pos]
	if arg.IsGround() && isIndexableLiteral(arg) && node.literal != nil {
		if child, ok := node.literal[canonicalKey(arg)]; ok {
			lookupRec(child, args, pos+1, out)
		}
	}
	lookupRec(node.wildcard, args, pos+1, out)
}
