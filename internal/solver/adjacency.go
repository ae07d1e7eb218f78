package solver

import (
	"math"
	"sort"
)

// AdjacencyOptions tunes how the seat neighbor graph is derived from
// coordinates. The zero value is usable: defaults are filled in by
// BuildAdjacency.
type AdjacencyOptions struct {
	// RowTolerance is the maximum y-distance between two seats that are
	// still considered to be in the same row. Layouts are drawn by
	// hand, so rows need not be pixel-perfect.
	RowTolerance float64
	// MaxGap is the maximum x-distance between two horizontally
	// consecutive seats that still counts as "next to each other".
	// Seats separated by an aisle wider than this are never linked.
	// Zero takes the default; a negative value disables the cutoff.
	MaxGap float64
	// FrontBack additionally links each seat to the nearest seat in the
	// neighboring row whose x-coordinate is within ColTolerance. Off by
	// default; together/apart rules normally only reason about seats
	// side by side.
	FrontBack    bool
	ColTolerance float64
}

const (
	defaultRowTolerance = 30.0
	defaultColTolerance = 40.0
	defaultMaxGap       = 180.0
)

// Adjacency is a symmetric seat neighbor relation.
type Adjacency map[SeatID]map[SeatID]bool

// Neighbors reports whether a and b are adjacent.
func (a Adjacency) Neighbors(x, y SeatID) bool {
	return a[x][y]
}

func (a Adjacency) link(x, y SeatID) {
	if x == y {
		return
	}
	if a[x] == nil {
		a[x] = make(map[SeatID]bool)
	}
	if a[y] == nil {
		a[y] = make(map[SeatID]bool)
	}
	a[x][y] = true
	a[y][x] = true
}

// BuildAdjacency derives the neighbor graph from seat coordinates.
// Seats are bucketed into rows by y within RowTolerance, rows are
// ordered top to bottom and seats within a row left to right, and each
// seat is linked to its immediate left and right neighbor unless the
// horizontal gap exceeds MaxGap. The result is symmetric and fully
// deterministic for a fixed seat list; no randomness is involved.
func BuildAdjacency(seats []Seat, opts AdjacencyOptions) Adjacency {
	if opts.RowTolerance <= 0 {
		opts.RowTolerance = defaultRowTolerance
	}
	if opts.ColTolerance <= 0 {
		opts.ColTolerance = defaultColTolerance
	}
	switch {
	case opts.MaxGap == 0:
		opts.MaxGap = defaultMaxGap
	case opts.MaxGap < 0:
		opts.MaxGap = 0 // cutoff disabled
	}

	adj := make(Adjacency, len(seats))
	for _, s := range seats {
		if adj[s.ID] == nil {
			adj[s.ID] = make(map[SeatID]bool)
		}
	}
	if len(seats) < 2 {
		return adj
	}

	byY := make([]Seat, len(seats))
	copy(byY, seats)
	sort.SliceStable(byY, func(i, j int) bool { return byY[i].Y < byY[j].Y })

	// Bucket into rows: a seat opens a new row when it sits further
	// than RowTolerance below the previous seat.
	var rows [][]Seat
	row := []Seat{byY[0]}
	for _, s := range byY[1:] {
		if s.Y-row[len(row)-1].Y > opts.RowTolerance {
			rows = append(rows, row)
			row = nil
		}
		row = append(row, s)
	}
	rows = append(rows, row)

	for _, r := range rows {
		sort.SliceStable(r, func(i, j int) bool { return r[i].X < r[j].X })
		for i := 1; i < len(r); i++ {
			if opts.MaxGap > 0 && r[i].X-r[i-1].X > opts.MaxGap {
				continue
			}
			adj.link(r[i-1].ID, r[i].ID)
		}
	}

	if opts.FrontBack {
		for ri := 1; ri < len(rows); ri++ {
			linkRows(adj, rows[ri-1], rows[ri], opts.ColTolerance)
		}
	}
	return adj
}

// linkRows connects each seat in the back row to the nearest seat in
// the front row whose x-coordinate lies within tol.
func linkRows(adj Adjacency, front, back []Seat, tol float64) {
	for _, b := range back {
		bestIdx := -1
		bestDist := tol
		for i, f := range front {
			d := math.Abs(f.X - b.X)
			if d <= bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		if bestIdx >= 0 {
			adj.link(front[bestIdx].ID, b.ID)
		}
	}
}
