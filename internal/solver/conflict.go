package solver

import (
	"fmt"
	"strings"
)

// ConflictKind labels the reason a constraint could not be satisfied.
// Conflicts are ordinary data on the result, never errors: the solver
// always returns the best assignment it managed to build and leaves it
// to the caller to surface the remainder.
type ConflictKind string

const (
	// GroupUnseatable means a sit-together group could not be committed
	// to a cluster of adjacent seats. The Structural flag on the record
	// distinguishes "no cluster of that size exists in this layout at
	// all" from "clusters exist but collide with other groups".
	GroupUnseatable ConflictKind = "group_unseatable"

	// ApartViolation means a student ended up adjacent to a keep-apart
	// partner. The student is still seated; apart rules degrade rather
	// than block seating.
	ApartViolation ConflictKind = "apart_violation"

	// TagInfeasible means a student declares seat tags and no
	// compatible seat remained. The student is left unseated instead of
	// being silently placed in a mismatched seat.
	TagInfeasible ConflictKind = "tag_infeasible"

	// CapacityExhausted means there were more students than usable
	// seats; the named student is unseated.
	CapacityExhausted ConflictKind = "capacity_exhausted"
)

// Conflict records one unsatisfied constraint together with the
// students it implicates. For GroupUnseatable the Students slice holds
// the whole group.
type Conflict struct {
	Kind       ConflictKind `json:"kind"`
	Students   []StudentID  `json:"students"`
	Structural bool         `json:"structural,omitempty"`
	Detail     string       `json:"detail,omitempty"`
}

func (c Conflict) String() string {
	ids := make([]string, len(c.Students))
	for i, s := range c.Students {
		ids[i] = fmt.Sprintf("%d", s)
	}
	return fmt.Sprintf("%s[%s]", c.Kind, strings.Join(ids, ","))
}
