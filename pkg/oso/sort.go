package oso

// applicableRule pairs a surviving Rule with the fresh Bindings its
// parameters produced against the query arguments.
type applicableRule struct {
	rule *Rule
	env  *Bindings
}

// insertionSort orders items most-specific-first using compareRules,
// suspending through ask whenever a comparison needs the host's class
// lattice. It is an ordinary insertion sort — adequate since applicable
// sets are small after pre-filtering — but every comparison is
// serialized through the single ask callback rather than a library
// sort.Slice, since a comparator that can suspend rules out the standard
// library sort.
//
// Returns false only if ctx cancellation aborted a comparison mid-sort;
// items is left in a valid but not fully sorted state in that case.
func insertionSort(items []applicableRule, ask askFunc, cache classPairCache, onCycle cycleNotifier) bool {
	for i := 1; i < len(items); i++ {
		j := i
		for j > 0 {
			c, ok := compareRules(items[j].rule, items[j-1].rule, ask, cache, onCycle)
			if !ok {
				return false
			}
			if c != cmpLeftMore {
				break
			}
			items[j], items[j-1] = items[j-1], items[j]
			j--
		}
	}
	return true
}
