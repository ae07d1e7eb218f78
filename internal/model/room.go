package model

import "time"

// Room represents one classroom seating layout. Rooms belong to a
// teacher account; the seats of a room carry the x/y coordinates the
// solver derives its adjacency graph from.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the teacher who manages the room.
//  Name        – unique room name per owner.
//  Description – optional free-form description.
//  IsActive    – whether the room is active.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
	ID          uint64    // rooms.id
	OwnerID     uint64    // rooms.owner_id
	Name        string    // rooms.name
	Description *string   // rooms.description (nullable)
	IsActive    bool      // rooms.is_active
	CreatedAt   time.Time // rooms.created_at
	UpdatedAt   time.Time // rooms.updated_at
}
