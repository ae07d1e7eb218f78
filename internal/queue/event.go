// Package queue defines message payloads exchanged over the message broker.
package queue

// ChartAssignedEvent is published after a seating chart is computed
// and saved. It carries enough for downstream consumers (notification
// mailers, analytics) to act without querying the primary database.
type ChartAssignedEvent struct {
	ChartID       uint64            `json:"chart_id"`
	RoomID        uint64            `json:"room_id"`
	RoomName      string            `json:"room_name"`
	OwnerID       uint64            `json:"owner_id"`
	Strategy      string            `json:"strategy"`
	SeatedCount   int               `json:"seated_count"`
	ConflictCount int               `json:"conflict_count"`
	SeatOf        map[uint64]uint64 `json:"seat_of"`
	ComputedAt    string            `json:"computed_at"`
}

// RosterUpdatedEvent arrives from the school information system when a
// class roster changes. StudentIDs is the full list of students that
// remain enrolled; everyone else in the room is deactivated.
type RosterUpdatedEvent struct {
	RoomID     uint64   `json:"room_id"`
	StudentIDs []uint64 `json:"student_ids"`
	UpdatedAt  string   `json:"updated_at"`
}
