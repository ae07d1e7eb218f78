package model

import "time"

// Chart is one saved seating chart: the header row of a solver run.
// The newest chart of a room is its current chart; previous charts are
// kept so a teacher can page back through earlier arrangements.
//
// Fields:
//  ID            – primary key identifier.
//  RoomID        – room the chart was computed for.
//  Strategy      – ordering strategy used ("alpha" or "random").
//  ConflictCount – number of conflicts the solver reported.
//  CreatedAt     – when the chart was computed.
type Chart struct {
	ID            uint64    // charts.id
	RoomID        uint64    // charts.room_id
	Strategy      string    // charts.strategy
	ConflictCount uint32    // charts.conflict_count
	CreatedAt     time.Time // charts.created_at
}

// ChartAssignment is one student-to-seat placement of a chart. The
// rows of a chart together form the seat_of map returned by the
// solver, written back verbatim.
//
// Fields:
//  ID        – primary key identifier.
//  ChartID   – chart this placement belongs to.
//  StudentID – seated student.
//  SeatID    – assigned seat.
type ChartAssignment struct {
	ID        uint64 // chart_assignments.id
	ChartID   uint64 // chart_assignments.chart_id
	StudentID uint64 // chart_assignments.student_id
	SeatID    uint64 // chart_assignments.seat_id
}
