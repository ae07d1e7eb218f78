package model

import "time"

// Seat describes one placement slot in a room's layout. The X/Y
// coordinates position the seat on the room canvas and drive neighbor
// detection; Tags is a comma-separated list of labels such as
// "front-row" that students can require. Excluded seats stay on the
// drawing but are never assigned.
//
// Fields:
//  ID         – primary key identifier.
//  RoomID     – room to which this seat belongs.
//  Label      – display label, e.g. "A3".
//  X          – horizontal canvas coordinate.
//  Y          – vertical canvas coordinate.
//  Tags       – comma-separated seat tags (may be empty).
//  IsExcluded – excluded from assignment when true.
//  IsActive   – whether the seat exists in the current layout.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
	ID         uint64    // seats.id
	RoomID     uint64    // seats.room_id
	Label      string    // seats.label
	X          float64   // seats.x
	Y          float64   // seats.y
	Tags       string    // seats.tags
	IsExcluded bool      // seats.is_excluded
	IsActive   bool      // seats.is_active
	CreatedAt  time.Time // seats.created_at
	UpdatedAt  time.Time // seats.updated_at
}
