package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowLayout builds n seats in a single row, 50 units apart, so every
// consecutive pair is adjacent.
func rowLayout(n int) Layout {
	seats := make([]Seat, n)
	for i := range seats {
		seats[i] = Seat{ID: SeatID(i + 1), X: float64(i) * 50, Y: 100}
	}
	return Layout{Seats: seats}
}

func students(n int) []Student {
	out := make([]Student, n)
	for i := range out {
		out[i] = Student{ID: StudentID(i + 1), DisplayName: "student"}
	}
	return out
}

func conflictKinds(r *Result) []ConflictKind {
	kinds := make([]ConflictKind, len(r.Conflicts))
	for i, c := range r.Conflicts {
		kinds[i] = c.Kind
	}
	return kinds
}

func TestNoRulesEveryoneSeated(t *testing.T) {
	layout := rowLayout(8)
	layout.Excluded = map[SeatID]bool{3: true}
	roster := students(6)

	res, err := Solve(layout, roster, RuleSet{}, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)
	assert.Len(t, res.SeatOf, 6)

	seen := map[SeatID]bool{}
	for _, seat := range res.SeatOf {
		assert.False(t, seen[seat], "seat %d assigned twice", seat)
		seen[seat] = true
		assert.NotEqual(t, SeatID(3), seat, "excluded seat must never be assigned")
	}
}

func TestAlphaIdempotent(t *testing.T) {
	layout := rowLayout(10)
	roster := students(8)
	rules := RuleSet{
		Together: []Pair{{1, 2}, {2, 3}},
		Apart:    []Pair{{4, 5}, {6, 7}},
	}

	first, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	second, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)

	assert.Equal(t, first.SeatOf, second.SeatOf)
	assert.Equal(t, first.Conflicts, second.Conflicts)
}

func TestTogetherPairAdjacent(t *testing.T) {
	// Scenario: 6 chained seats, 3 students, one together rule.
	layout := rowLayout(6)
	roster := students(3)
	rules := RuleSet{Together: []Pair{{1, 2}}}

	res, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)
	require.Len(t, res.SeatOf, 3)

	adj := BuildAdjacency(layout.Seats, AdjacencyOptions{})
	assert.True(t, adj.Neighbors(res.SeatOf[1], res.SeatOf[2]),
		"together pair must land on adjacent seats")
}

func TestChainedTogetherGroupSeatsPairsAdjacent(t *testing.T) {
	// Together (1,2) and (1,3) merge into one group of three. On a
	// three-seat row the only valid arrangement puts student 1 in the
	// middle; an arbitrary bijection could strand 1 and 3 on the ends.
	layout := rowLayout(3)
	roster := students(3)
	rules := RuleSet{Together: []Pair{{1, 2}, {1, 3}}}

	res, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)
	require.Len(t, res.SeatOf, 3)

	adj := BuildAdjacency(layout.Seats, AdjacencyOptions{})
	assert.True(t, adj.Neighbors(res.SeatOf[1], res.SeatOf[2]),
		"rule pair (1,2) must land on adjacent seats")
	assert.True(t, adj.Neighbors(res.SeatOf[1], res.SeatOf[3]),
		"rule pair (1,3) must land on adjacent seats")
}

func TestTogetherTriangleOnRowReportsConflict(t *testing.T) {
	// All three pairs of the group are rule pairs, but a straight row
	// can never make both end seats adjacent. The group must be
	// reported rather than silently seated apart.
	layout := rowLayout(3)
	roster := students(3)
	rules := RuleSet{Together: []Pair{{1, 2}, {1, 3}, {2, 3}}}

	res, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	require.Contains(t, conflictKinds(res), GroupUnseatable)
	for _, c := range res.Conflicts {
		if c.Kind == GroupUnseatable {
			assert.True(t, c.Structural, "no cluster arrangement exists at all")
			assert.Equal(t, []StudentID{1, 2, 3}, c.Students)
		}
	}
	// The fill pass still seats everyone; the conflict is the report.
	assert.Len(t, res.SeatOf, 3)
}

func TestContradictoryTogetherAndApart(t *testing.T) {
	// The same pair is constrained both together and apart. The
	// together placement wins, both students stay seated, and the
	// contradiction surfaces as a conflict.
	layout := rowLayout(6)
	roster := students(3)
	rules := RuleSet{
		Together: []Pair{{1, 2}},
		Apart:    []Pair{{1, 2}},
	}

	res, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Conflicts)
	assert.Contains(t, res.SeatOf, StudentID(1))
	assert.Contains(t, res.SeatOf, StudentID(2))
}

func TestCapacityExhausted(t *testing.T) {
	// Scenario: 2 usable seats, 3 students, no rules.
	layout := rowLayout(2)
	roster := students(3)

	res, err := Solve(layout, roster, RuleSet{}, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.Len(t, res.SeatOf, 2)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, CapacityExhausted, res.Conflicts[0].Kind)
	assert.Equal(t, []StudentID{3}, res.Conflicts[0].Students)
}

func TestTagInfeasibleStaysUnseated(t *testing.T) {
	// Scenario: a student requires a tag no seat carries. Hard-tag
	// policy: unseated with an explicit conflict, everyone else seated.
	layout := rowLayout(4)
	roster := students(3)
	roster[0].Tags = []string{"front-row"}

	res, err := Solve(layout, roster, RuleSet{}, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.NotContains(t, res.SeatOf, StudentID(1))
	assert.Contains(t, res.SeatOf, StudentID(2))
	assert.Contains(t, res.SeatOf, StudentID(3))
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, TagInfeasible, res.Conflicts[0].Kind)
	assert.Equal(t, []StudentID{1}, res.Conflicts[0].Students)
}

func TestTagCompatibleSeatPreferred(t *testing.T) {
	layout := rowLayout(4)
	layout.Seats[3].Tags = []string{"front-row"}
	roster := students(2)
	roster[0].Tags = []string{"front-row"}

	res, err := Solve(layout, roster, RuleSet{}, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)
	assert.Equal(t, SeatID(4), res.SeatOf[1])
}

func TestApartPairSeparated(t *testing.T) {
	layout := rowLayout(6)
	roster := students(4)
	rules := RuleSet{Apart: []Pair{{1, 2}}}

	res, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)

	adj := BuildAdjacency(layout.Seats, AdjacencyOptions{})
	assert.False(t, adj.Neighbors(res.SeatOf[1], res.SeatOf[2]),
		"apart pair must not occupy adjacent seats")
}

func TestApartViolationStillSeats(t *testing.T) {
	// Two seats next to each other and two students who must stay
	// apart: impossible, but both must still be seated.
	layout := rowLayout(2)
	roster := students(2)
	rules := RuleSet{Apart: []Pair{{1, 2}}}

	res, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.Len(t, res.SeatOf, 2)
	assert.Contains(t, conflictKinds(res), ApartViolation)
}

func TestGroupStructuralInfeasibility(t *testing.T) {
	// Three isolated seats (gaps wider than MaxGap): no cluster can
	// hold a group of three, so the conflict is structural, yet every
	// student still receives a seat in the fill pass.
	seats := []Seat{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 1000, Y: 0},
		{ID: 3, X: 2000, Y: 0},
	}
	roster := students(3)
	rules := RuleSet{Together: []Pair{{1, 2}, {2, 3}}}

	res, err := Solve(Layout{Seats: seats}, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, GroupUnseatable, res.Conflicts[0].Kind)
	assert.True(t, res.Conflicts[0].Structural)
	assert.Len(t, res.SeatOf, 3)
}

func TestGroupCombinatorialConflict(t *testing.T) {
	// One adjacent pair of seats plus two isolated ones. Two groups of
	// two both have exactly one candidate cluster, the same one; the
	// loser is a combinatorial, not structural, conflict.
	seats := []Seat{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 50, Y: 0},
		{ID: 3, X: 1000, Y: 0},
		{ID: 4, X: 2000, Y: 0},
	}
	roster := students(4)
	rules := RuleSet{Together: []Pair{{1, 2}, {3, 4}}}

	res, err := Solve(Layout{Seats: seats}, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, GroupUnseatable, res.Conflicts[0].Kind)
	assert.False(t, res.Conflicts[0].Structural)
	assert.Len(t, res.SeatOf, 4)
}

func TestRandomStrategySeeded(t *testing.T) {
	layout := rowLayout(8)
	roster := students(6)
	rules := RuleSet{Together: []Pair{{1, 2}}, Apart: []Pair{{3, 4}}}

	run := func(seed int64) *Result {
		res, err := Solve(layout, roster, rules, Options{
			Strategy: StrategyRandom,
			Rand:     rand.New(rand.NewSource(seed)),
		})
		require.NoError(t, err)
		return res
	}

	a, b := run(7), run(7)
	assert.Equal(t, a.SeatOf, b.SeatOf, "same seed must reproduce the same chart")

	// Whatever the ordering, the constraints still hold.
	adj := BuildAdjacency(layout.Seats, AdjacencyOptions{})
	res := run(99)
	assert.Empty(t, res.Conflicts)
	assert.True(t, adj.Neighbors(res.SeatOf[1], res.SeatOf[2]))
	assert.False(t, adj.Neighbors(res.SeatOf[3], res.SeatOf[4]))
}

func TestEffortBudgetDegradesGracefully(t *testing.T) {
	layout := rowLayout(10)
	roster := students(9)
	rules := RuleSet{
		Together: []Pair{{1, 2}, {3, 4}, {5, 6}},
		Apart:    []Pair{{7, 8}, {8, 9}},
	}

	res, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha, MaxSteps: 1})
	require.NoError(t, err)
	// The greedy fallbacks must still produce a complete answer: every
	// student is either seated or named in a conflict.
	named := map[StudentID]bool{}
	for _, c := range res.Conflicts {
		for _, s := range c.Students {
			named[s] = true
		}
	}
	for _, s := range roster {
		_, seated := res.SeatOf[s.ID]
		assert.True(t, seated || named[s.ID], "student %d neither seated nor reported", s.ID)
	}
}

func TestDuplicateIDsRejected(t *testing.T) {
	dupSeats := Layout{Seats: []Seat{{ID: 1}, {ID: 1}}}
	_, err := Solve(dupSeats, students(1), RuleSet{}, Options{})
	assert.Error(t, err)

	dupStudents := []Student{{ID: 5}, {ID: 5}}
	_, err = Solve(rowLayout(3), dupStudents, RuleSet{}, Options{})
	assert.Error(t, err)
}

func TestUnknownRuleStudentsDropped(t *testing.T) {
	layout := rowLayout(4)
	roster := students(2)
	rules := RuleSet{Together: []Pair{{1, 99}}, Apart: []Pair{{98, 2}}}

	res, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)
	assert.Len(t, res.SeatOf, 2)
	assert.Len(t, res.Warnings, 2)
}

func TestSolverDoesNotMutateInputs(t *testing.T) {
	layout := rowLayout(4)
	layout.Excluded = map[SeatID]bool{2: true}
	roster := students(3)
	rules := RuleSet{Apart: []Pair{{1, 2}}}

	_, err := Solve(layout, roster, rules, Options{Strategy: StrategyAlpha})
	require.NoError(t, err)

	assert.Equal(t, rowLayout(4).Seats, layout.Seats)
	assert.Equal(t, map[SeatID]bool{2: true}, layout.Excluded)
	assert.Equal(t, students(3), roster)
	assert.Equal(t, RuleSet{Apart: []Pair{{1, 2}}}, rules)
}
