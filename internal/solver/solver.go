// Package solver assigns students to seats under pairwise sit-together
// and keep-apart rules. It is a pure computation: one call receives a
// layout, a roster and a rule set, and returns a fresh assignment plus
// the list of constraints it could not satisfy. The solver owns no
// state between calls and mutates none of its inputs, so it is safe to
// invoke repeatedly and concurrently.
//
// The pipeline is strictly sequential: adjacency graph, constraint
// resolution, cluster enumeration, group placement, apart placement,
// fill pass, result assembly. Together-groups are placed first, apart
// constraints second, everyone else last; seat tags are a hard
// requirement, but only for students who declare them.
package solver

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// SeatID identifies a seat within one layout.
type SeatID uint64

// StudentID identifies a student within one roster.
type StudentID uint64

// Seat is a placement slot. Tags are free-form labels (e.g.
// "front-row", "outlet") that students can require.
type Seat struct {
	ID   SeatID
	X    float64
	Y    float64
	Tags []string
}

// Layout is the seat arrangement for one solve. Excluded seats exist
// in the drawing but are never eligible for assignment.
type Layout struct {
	Seats    []Seat
	Excluded map[SeatID]bool
}

// Student is one roster entry. A student that declares tags may only
// sit in a seat carrying all of them.
type Student struct {
	ID          StudentID
	DisplayName string
	Tags        []string
}

// Pair is an unordered student pair referenced by a rule.
type Pair struct {
	A StudentID
	B StudentID
}

// RuleSet holds the pairwise rules for one solve.
type RuleSet struct {
	Together []Pair
	Apart    []Pair
}

// Strategy selects the tie-break ordering discipline. It never changes
// which constraints are enforced.
type Strategy string

const (
	// StrategyAlpha uses canonical orderings throughout; identical
	// inputs always produce identical output.
	StrategyAlpha Strategy = "alpha"
	// StrategyRandom shuffles candidate orderings using the injected
	// random source.
	StrategyRandom Strategy = "random"
)

// DefaultMaxSteps bounds the combined search effort of cluster
// enumeration and both backtracking stages. When the budget runs out
// the solver falls back to its greedy paths instead of stalling.
const DefaultMaxSteps = 200_000

// Options configures one solve.
type Options struct {
	Strategy Strategy
	// Rand is the random source used by StrategyRandom. Injecting it
	// lets tests pin a seed and assert exact output. When nil and the
	// strategy is random, a time-seeded source is created.
	Rand *rand.Rand
	// MaxSteps caps search effort; zero means DefaultMaxSteps.
	MaxSteps  int
	Adjacency AdjacencyOptions
}

// Result is the outcome of one solve. A student absent from SeatOf is
// unplaced and appears in Conflicts; a seat appears at most once as a
// value and excluded seats never appear at all.
type Result struct {
	SeatOf    map[StudentID]SeatID
	Conflicts []Conflict
	Warnings  []string
}

// solveState carries the working set of one Solve call.
type solveState struct {
	layout  Layout
	roster  []Student
	cs      *constraintSet
	adj     Adjacency
	rng     *rand.Rand
	shuffle bool

	availOrder []SeatID
	avail      map[SeatID]bool
	posOf      map[SeatID]int
	seatTags   map[SeatID]map[string]bool
	tagsOf     map[StudentID][]string
	nbCache    map[SeatID][]SeatID

	seatOf    map[StudentID]SeatID
	conflicts []Conflict
	// flagged marks students already named in a TagInfeasible conflict
	// so the capacity sweep does not double-report them.
	flagged map[StudentID]bool

	steps  int
	budget int
}

// Solve runs the full pipeline. It returns an error only for malformed
// input (duplicate seat or student ids); every constraint failure is a
// conflict on the result instead.
func Solve(layout Layout, roster []Student, rules RuleSet, opts Options) (*Result, error) {
	if err := validate(layout, roster); err != nil {
		return nil, err
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyAlpha
	}
	if opts.Strategy != StrategyAlpha && opts.Strategy != StrategyRandom {
		return nil, fmt.Errorf("unknown strategy %q", opts.Strategy)
	}
	rng := opts.Rand
	if rng == nil && opts.Strategy == StrategyRandom {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	budget := opts.MaxSteps
	if budget <= 0 {
		budget = DefaultMaxSteps
	}

	st := &solveState{
		layout:   layout,
		roster:   roster,
		cs:       buildConstraints(roster, rules),
		adj:      BuildAdjacency(layout.Seats, opts.Adjacency),
		rng:      rng,
		shuffle:  opts.Strategy == StrategyRandom,
		avail:    make(map[SeatID]bool),
		posOf:    make(map[SeatID]int, len(layout.Seats)),
		seatTags: make(map[SeatID]map[string]bool, len(layout.Seats)),
		tagsOf:   make(map[StudentID][]string, len(roster)),
		nbCache:  make(map[SeatID][]SeatID),
		seatOf:   make(map[StudentID]SeatID, len(roster)),
		flagged:  make(map[StudentID]bool),
		budget:   budget,
	}
	for i, s := range layout.Seats {
		st.posOf[s.ID] = i
		tags := make(map[string]bool, len(s.Tags))
		for _, t := range s.Tags {
			tags[t] = true
		}
		st.seatTags[s.ID] = tags
		if layout.Excluded[s.ID] {
			continue
		}
		st.availOrder = append(st.availOrder, s.ID)
		st.avail[s.ID] = true
	}
	for _, s := range roster {
		st.tagsOf[s.ID] = s.Tags
	}

	st.placeGroups()
	st.placeApart()
	st.fill()
	st.checkApartPairs()
	st.sweepUnseated()

	return &Result{
		SeatOf:    st.seatOf,
		Conflicts: st.conflicts,
		Warnings:  st.cs.warnings,
	}, nil
}

func validate(layout Layout, roster []Student) error {
	seatIDs := make(map[SeatID]bool, len(layout.Seats))
	for _, s := range layout.Seats {
		if seatIDs[s.ID] {
			return fmt.Errorf("duplicate seat id %d", s.ID)
		}
		seatIDs[s.ID] = true
	}
	studentIDs := make(map[StudentID]bool, len(roster))
	for _, s := range roster {
		if studentIDs[s.ID] {
			return fmt.Errorf("duplicate student id %d", s.ID)
		}
		studentIDs[s.ID] = true
	}
	return nil
}

// spendStep consumes one unit of search budget.
func (st *solveState) spendStep() bool {
	if st.steps >= st.budget {
		return false
	}
	st.steps++
	return true
}

func (st *solveState) place(student StudentID, seat SeatID) {
	st.seatOf[student] = seat
	st.avail[seat] = false
}

func (st *solveState) unplace(student StudentID) {
	if seat, ok := st.seatOf[student]; ok {
		st.avail[seat] = true
		delete(st.seatOf, student)
	}
}

// groupCandidates pairs a together-group with its feasible clusters.
type groupCandidates struct {
	group    []StudentID
	clusters [][]SeatID
}

// placeGroups enumerates candidate clusters per together-group, orders
// groups most-constrained first and backtracks over non-overlapping
// cluster choices. When no joint selection exists (or the effort
// budget runs out) it degrades to first-fit and reports each group
// left without a cluster.
func (st *solveState) placeGroups() {
	if len(st.cs.groups) == 0 {
		return
	}
	cands := make([]groupCandidates, 0, len(st.cs.groups))
	for _, g := range st.cs.groups {
		all := st.findClusters(len(g))
		fit := make([][]SeatID, 0, len(all))
		for _, c := range all {
			if st.clusterFitsGroup(g, c) {
				fit = append(fit, c)
			}
		}
		if st.shuffle {
			st.rng.Shuffle(len(fit), func(i, j int) { fit[i], fit[j] = fit[j], fit[i] })
		}
		cands = append(cands, groupCandidates{group: g, clusters: fit})
	}
	// Fewest candidates first: the standard fail-fast heuristic.
	sort.SliceStable(cands, func(i, j int) bool {
		if len(cands[i].clusters) != len(cands[j].clusters) {
			return len(cands[i].clusters) < len(cands[j].clusters)
		}
		return cands[i].group[0] < cands[j].group[0]
	})

	chosen := make([][]SeatID, len(cands))
	used := make(map[SeatID]bool)
	var pick func(gi int) bool
	pick = func(gi int) bool {
		if gi == len(cands) {
			return true
		}
		if !st.spendStep() {
			return false
		}
		for _, cluster := range cands[gi].clusters {
			overlap := false
			for _, seat := range cluster {
				if used[seat] {
					overlap = true
					break
				}
			}
			if overlap {
				continue
			}
			for _, seat := range cluster {
				used[seat] = true
			}
			chosen[gi] = cluster
			if pick(gi + 1) {
				return true
			}
			for _, seat := range cluster {
				delete(used, seat)
			}
			chosen[gi] = nil
		}
		return false
	}

	if pick(0) {
		for gi, gc := range cands {
			st.commitGroup(gc.group, chosen[gi])
		}
		return
	}

	// Greedy fallback: commit each group to its first cluster that is
	// still free, then report the rest.
	for _, gc := range cands {
		var committed []SeatID
		for _, cluster := range gc.clusters {
			free := true
			for _, seat := range cluster {
				if !st.avail[seat] {
					free = false
					break
				}
			}
			if free {
				committed = cluster
				break
			}
		}
		if committed != nil {
			st.commitGroup(gc.group, committed)
			continue
		}
		st.conflicts = append(st.conflicts, Conflict{
			Kind:       GroupUnseatable,
			Students:   append([]StudentID(nil), gc.group...),
			Structural: len(gc.clusters) == 0,
			Detail:     groupDetail(len(gc.clusters)),
		})
	}
}

func groupDetail(candidates int) string {
	if candidates == 0 {
		return "no cluster of adjacent seats can hold this group"
	}
	return "clusters exist but collide with other groups this round"
}

// commitGroup seats each member on a cluster seat honoring tags and
// pair adjacency.
func (st *solveState) commitGroup(group []StudentID, cluster []SeatID) {
	assign := st.matchGroupToCluster(group, cluster)
	for student, seat := range assign {
		st.place(student, seat)
	}
}

// placeApart seats every not-yet-placed apart-constrained student,
// backtracking so that nobody lands next to a rule partner. If the
// joint search fails it reverts to a greedy pass that always seats the
// student and records the violation instead.
func (st *solveState) placeApart() {
	var pending []StudentID
	for _, id := range st.cs.apartStudents() {
		if _, seated := st.seatOf[id]; !seated {
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return
	}

	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(pending) {
			return true
		}
		if !st.spendStep() {
			return false
		}
		student := pending[i]
		cands := st.candidateSeats(student)
		if len(cands) == 0 {
			// No compatible seat at all; leave the student to the fill
			// pass bookkeeping rather than failing the others.
			if assign(i + 1) {
				return true
			}
			return false
		}
		for _, seat := range cands {
			if st.violatesApart(student, seat) {
				continue
			}
			st.place(student, seat)
			if assign(i + 1) {
				return true
			}
			st.unplace(student)
		}
		return false
	}

	if assign(0) {
		return
	}
	for _, id := range pending {
		st.unplace(id)
	}

	// Greedy: first non-violating seat, else first seat plus a recorded
	// violation. Apart rules never leave a student unseated.
	for _, student := range pending {
		cands := st.candidateSeats(student)
		if len(cands) == 0 {
			st.markUnplaceable(student)
			continue
		}
		picked := SeatID(0)
		found := false
		for _, seat := range cands {
			if !st.violatesApart(student, seat) {
				picked, found = seat, true
				break
			}
		}
		if !found {
			picked = cands[0]
			st.conflicts = append(st.conflicts, Conflict{
				Kind:     ApartViolation,
				Students: []StudentID{student},
				Detail:   "every remaining seat neighbors a keep-apart partner",
			})
		}
		st.place(student, picked)
	}
}

// fill seats every remaining student. Tag-compatible seats only for
// students who declare tags; among candidates prefer one that creates
// no new apart violation.
func (st *solveState) fill() {
	var remaining []StudentID
	for _, s := range st.roster {
		if _, seated := st.seatOf[s.ID]; !seated && !st.flagged[s.ID] {
			remaining = append(remaining, s.ID)
		}
	}
	if st.shuffle {
		st.rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })
	}
	for _, student := range remaining {
		cands := st.candidateSeats(student)
		if len(cands) == 0 {
			st.markUnplaceable(student)
			continue
		}
		picked := SeatID(0)
		found := false
		for _, seat := range cands {
			if !st.violatesApart(student, seat) {
				picked, found = seat, true
				break
			}
		}
		if !found {
			picked = cands[0]
			st.conflicts = append(st.conflicts, Conflict{
				Kind:     ApartViolation,
				Students: []StudentID{student},
				Detail:   "every remaining seat neighbors a keep-apart partner",
			})
		}
		st.place(student, picked)
	}
}

// candidateSeats returns the still-available seats this student may
// occupy, shuffled under the random strategy. Seat exclusion and tag
// mismatch stay separate filters: exclusion already shaped availOrder,
// tags are applied here, and the two produce different conflict kinds.
func (st *solveState) candidateSeats(student StudentID) []SeatID {
	var out []SeatID
	for _, seat := range st.availOrder {
		if !st.avail[seat] {
			continue
		}
		if !st.seatCompatible(student, seat) {
			continue
		}
		out = append(out, seat)
	}
	if st.shuffle {
		st.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

// violatesApart reports whether seating the student here puts them
// next to an already-seated keep-apart partner.
func (st *solveState) violatesApart(student StudentID, seat SeatID) bool {
	for _, partner := range st.cs.apartFor[student] {
		pSeat, seated := st.seatOf[partner]
		if seated && st.adj.Neighbors(seat, pSeat) {
			return true
		}
	}
	return false
}

// markUnplaceable records why a student with zero candidate seats
// stays unseated: a tag mismatch when untagged seats remain is a tag
// infeasibility, anything else is capacity and handled by the final
// sweep.
func (st *solveState) markUnplaceable(student StudentID) {
	if len(st.tagsOf[student]) == 0 {
		return
	}
	anyFree := false
	for _, seat := range st.availOrder {
		if st.avail[seat] {
			anyFree = true
			break
		}
	}
	if !anyFree {
		return
	}
	st.conflicts = append(st.conflicts, Conflict{
		Kind:     TagInfeasible,
		Students: []StudentID{student},
		Detail:   "no remaining seat carries the student's required tags",
	})
	st.flagged[student] = true
}

// checkApartPairs records a violation for every apart pair that ended
// up adjacent without either side having been reported yet. This
// catches pairs that are simultaneously constrained together and
// apart: the together placement wins and the contradiction surfaces
// here.
func (st *solveState) checkApartPairs() {
	reported := make(map[StudentID]bool)
	for _, c := range st.conflicts {
		if c.Kind != ApartViolation {
			continue
		}
		for _, s := range c.Students {
			reported[s] = true
		}
	}
	for _, k := range st.cs.apartPairs() {
		sa, okA := st.seatOf[k[0]]
		sb, okB := st.seatOf[k[1]]
		if !okA || !okB || !st.adj.Neighbors(sa, sb) {
			continue
		}
		if reported[k[0]] || reported[k[1]] {
			continue
		}
		st.conflicts = append(st.conflicts, Conflict{
			Kind:     ApartViolation,
			Students: []StudentID{k[0], k[1]},
			Detail:   "pair is seated adjacently despite a keep-apart rule",
		})
	}
}

// sweepUnseated reports capacity exhaustion for every student who has
// no seat and no more specific conflict already.
func (st *solveState) sweepUnseated() {
	for _, s := range st.roster {
		if _, seated := st.seatOf[s.ID]; seated || st.flagged[s.ID] {
			continue
		}
		st.conflicts = append(st.conflicts, Conflict{
			Kind:     CapacityExhausted,
			Students: []StudentID{s.ID},
			Detail:   "more students than usable seats",
		})
	}
}
