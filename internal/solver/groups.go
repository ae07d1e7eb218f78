package solver

import (
	"fmt"
	"sort"
)

// pairKey is the canonical form of an unordered student pair: smaller
// id first, so lookups are independent of the order a rule was written.
type pairKey [2]StudentID

func makePair(a, b StudentID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// constraintSet is the resolved view of the rule set against the
// current roster: transitive together-groups, the realized together
// pairs inside them, canonical apart keys and per-student apart
// partners. Rules referencing students who are not on the roster are
// dropped with a warning, never fatally.
type constraintSet struct {
	groups [][]StudentID
	// together holds the rule pairs that survived roster filtering. A
	// transitively-merged group must still seat each of these pairs on
	// adjacent seats; mere co-membership is not enough.
	together map[pairKey]bool
	apart    map[pairKey]bool
	apartFor map[StudentID][]StudentID
	warnings []string
}

func buildConstraints(roster []Student, rules RuleSet) *constraintSet {
	present := make(map[StudentID]bool, len(roster))
	for _, s := range roster {
		present[s.ID] = true
	}

	cs := &constraintSet{
		together: make(map[pairKey]bool),
		apart:    make(map[pairKey]bool),
		apartFor: make(map[StudentID][]StudentID),
	}

	keep := func(p Pair, kind string) bool {
		if p.A == p.B {
			cs.warnings = append(cs.warnings, fmt.Sprintf("%s rule pairs student %d with itself; dropped", kind, p.A))
			return false
		}
		if !present[p.A] || !present[p.B] {
			cs.warnings = append(cs.warnings, fmt.Sprintf("%s rule (%d,%d) references a student not on the roster; dropped", kind, p.A, p.B))
			return false
		}
		return true
	}

	// Union-find over together pairs. Path halving keeps the find loop
	// iterative, so adversarial chains cannot blow the stack.
	parent := make(map[StudentID]StudentID, len(roster))
	for _, s := range roster {
		parent[s.ID] = s.ID
	}
	find := func(x StudentID) StudentID {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	realized := make(map[StudentID]bool)
	for _, p := range rules.Together {
		if !keep(p, "together") {
			continue
		}
		cs.together[makePair(p.A, p.B)] = true
		ra, rb := find(p.A), find(p.B)
		if ra != rb {
			parent[ra] = rb
		}
		realized[find(p.A)] = true
	}

	// realized was keyed by roots that may have been merged since; remap
	// every marked root to its final representative.
	realizedRoot := make(map[StudentID]bool, len(realized))
	for r := range realized {
		realizedRoot[find(r)] = true
	}

	members := make(map[StudentID][]StudentID)
	for _, s := range roster {
		root := find(s.ID)
		members[root] = append(members[root], s.ID)
	}

	// A class becomes a together-group only when it has at least two
	// members and at least one of its internal pairs actually appears in
	// the rule set. Singleton classes are just unconstrained students.
	for root, ms := range members {
		if len(ms) < 2 || !realizedRoot[root] {
			continue
		}
		sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })
		cs.groups = append(cs.groups, ms)
	}
	sort.Slice(cs.groups, func(i, j int) bool { return cs.groups[i][0] < cs.groups[j][0] })

	for _, p := range rules.Apart {
		if !keep(p, "apart") {
			continue
		}
		k := makePair(p.A, p.B)
		if cs.apart[k] {
			continue
		}
		cs.apart[k] = true
		cs.apartFor[k[0]] = append(cs.apartFor[k[0]], k[1])
		cs.apartFor[k[1]] = append(cs.apartFor[k[1]], k[0])
	}
	for _, partners := range cs.apartFor {
		sort.Slice(partners, func(i, j int) bool { return partners[i] < partners[j] })
	}
	return cs
}

// apartPairs returns the canonical apart keys in deterministic order.
func (cs *constraintSet) apartPairs() []pairKey {
	keys := make([]pairKey, 0, len(cs.apart))
	for k := range cs.apart {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	return keys
}

// apartStudents returns every student involved in at least one apart
// rule, ordered by constraint degree descending (ties by id) so the
// most constrained student is placed first.
func (cs *constraintSet) apartStudents() []StudentID {
	ids := make([]StudentID, 0, len(cs.apartFor))
	for id := range cs.apartFor {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		di, dj := len(cs.apartFor[ids[i]]), len(cs.apartFor[ids[j]])
		if di != dj {
			return di > dj
		}
		return ids[i] < ids[j]
	})
	return ids
}
