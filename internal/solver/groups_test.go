package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildConstraintsTransitiveMerge(t *testing.T) {
	roster := students(5)
	cs := buildConstraints(roster, RuleSet{
		Together: []Pair{{1, 2}, {2, 3}, {4, 5}},
	})
	assert.Equal(t, [][]StudentID{{1, 2, 3}, {4, 5}}, cs.groups)
	assert.Empty(t, cs.warnings)
}

func TestBuildConstraintsDropsMissingStudents(t *testing.T) {
	roster := students(3)
	cs := buildConstraints(roster, RuleSet{
		Together: []Pair{{1, 2}, {3, 42}},
		Apart:    []Pair{{41, 2}, {1, 1}},
	})
	assert.Equal(t, [][]StudentID{{1, 2}}, cs.groups)
	assert.Empty(t, cs.apart)
	assert.Len(t, cs.warnings, 3)
}

func TestApartKeysCanonical(t *testing.T) {
	roster := students(4)
	cs := buildConstraints(roster, RuleSet{
		Apart: []Pair{{3, 1}, {1, 3}, {2, 4}},
	})
	// Duplicate in reversed argument order collapses to one key.
	assert.Len(t, cs.apart, 2)
	assert.True(t, cs.apart[makePair(1, 3)])
	assert.True(t, cs.apart[makePair(4, 2)])
	assert.Equal(t, []StudentID{3}, cs.apartFor[1])
	assert.Equal(t, []StudentID{1}, cs.apartFor[3])
}

func TestApartStudentsOrderedByDegree(t *testing.T) {
	roster := students(5)
	cs := buildConstraints(roster, RuleSet{
		Apart: []Pair{{1, 2}, {1, 3}, {1, 4}, {2, 3}},
	})
	// Student 1 has three partners, 2 and 3 have two, 4 has one.
	assert.Equal(t, []StudentID{1, 2, 3, 4}, cs.apartStudents())
}

func TestSingletonClassesAreNotGroups(t *testing.T) {
	roster := students(4)
	cs := buildConstraints(roster, RuleSet{})
	assert.Empty(t, cs.groups)
}
