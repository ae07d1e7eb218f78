package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// grid builds rows*cols seats, 50 units apart horizontally and 80
// vertically. Seat ids are assigned row-major starting at 1.
func grid(rows, cols int) []Seat {
	var seats []Seat
	id := SeatID(1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			seats = append(seats, Seat{ID: id, X: float64(c) * 50, Y: float64(r) * 80})
			id++
		}
	}
	return seats
}

func TestAdjacencySymmetric(t *testing.T) {
	adj := BuildAdjacency(grid(3, 4), AdjacencyOptions{})
	for a, nbs := range adj {
		for b := range nbs {
			assert.True(t, adj.Neighbors(b, a), "adjacency must be symmetric: %d->%d", a, b)
		}
	}
}

func TestAdjacencyRowLinksOnly(t *testing.T) {
	adj := BuildAdjacency(grid(2, 3), AdjacencyOptions{})

	// Within a row: consecutive seats linked, ends not linked to each other.
	assert.True(t, adj.Neighbors(1, 2))
	assert.True(t, adj.Neighbors(2, 3))
	assert.False(t, adj.Neighbors(1, 3))

	// Across rows: nothing, front/back is off by default.
	assert.False(t, adj.Neighbors(1, 4))
	assert.False(t, adj.Neighbors(2, 5))
}

func TestAdjacencyGapBreaksRow(t *testing.T) {
	seats := []Seat{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 50, Y: 0},
		{ID: 3, X: 500, Y: 0}, // across the aisle
		{ID: 4, X: 550, Y: 0},
	}
	adj := BuildAdjacency(seats, AdjacencyOptions{})
	assert.True(t, adj.Neighbors(1, 2))
	assert.True(t, adj.Neighbors(3, 4))
	assert.False(t, adj.Neighbors(2, 3), "seats across a wide gap must not be linked")
}

func TestAdjacencyGapDefaultAppliesOnZeroValue(t *testing.T) {
	// The zero options value must carry the aisle cutoff; an uncapped
	// graph would link seats clear across the room.
	seats := []Seat{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 1000, Y: 0},
	}
	adj := BuildAdjacency(seats, AdjacencyOptions{})
	assert.False(t, adj.Neighbors(1, 2), "default options must cap the horizontal gap")

	// Disabling the cutoff takes a negative MaxGap.
	adj = BuildAdjacency(seats, AdjacencyOptions{MaxGap: -1})
	assert.True(t, adj.Neighbors(1, 2))
}

func TestAdjacencyRowTolerance(t *testing.T) {
	// Slightly uneven y-coordinates still bucket into one row.
	seats := []Seat{
		{ID: 1, X: 0, Y: 100},
		{ID: 2, X: 50, Y: 112},
		{ID: 3, X: 100, Y: 96},
	}
	adj := BuildAdjacency(seats, AdjacencyOptions{})
	assert.True(t, adj.Neighbors(1, 2))
	assert.True(t, adj.Neighbors(2, 3))
}

func TestAdjacencyFrontBackOption(t *testing.T) {
	adj := BuildAdjacency(grid(2, 2), AdjacencyOptions{FrontBack: true})
	assert.True(t, adj.Neighbors(1, 3), "front/back links column neighbors when enabled")
	assert.True(t, adj.Neighbors(2, 4))
	assert.False(t, adj.Neighbors(1, 4), "diagonals are never linked")
}

func TestAdjacencyDeterministic(t *testing.T) {
	seats := grid(3, 3)
	a := BuildAdjacency(seats, AdjacencyOptions{})
	b := BuildAdjacency(seats, AdjacencyOptions{})
	assert.Equal(t, a, b)
}

func TestAdjacencyTinyLayouts(t *testing.T) {
	assert.Empty(t, BuildAdjacency(nil, AdjacencyOptions{}))
	one := BuildAdjacency([]Seat{{ID: 7}}, AdjacencyOptions{})
	assert.Len(t, one, 1)
	assert.Empty(t, one[7])
}
