package model

import "time"

// Student is one roster entry of a room. Tags lists seat requirements
// (comma-separated); a student with tags is only ever assigned a seat
// carrying all of them. Deactivated students stay in the table so old
// charts keep resolving, but they are no longer part of the roster the
// solver sees.
//
// Fields:
//  ID          – primary key identifier.
//  RoomID      – room whose roster this student belongs to.
//  DisplayName – name shown on the seating chart.
//  Tags        – comma-separated required seat tags (may be empty).
//  IsActive    – whether the student is on the current roster.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Student struct {
	ID          uint64    // students.id
	RoomID      uint64    // students.room_id
	DisplayName string    // students.display_name
	Tags        string    // students.tags
	IsActive    bool      // students.is_active
	CreatedAt   time.Time // students.created_at
	UpdatedAt   time.Time // students.updated_at
}
