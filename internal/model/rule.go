package model

import "time"

// Rule kinds. A rule is an unordered pair of students; the pair is
// stored with StudentA < StudentB so the same pair cannot exist twice
// in different argument order.
const (
	RuleSitTogether = "SIT_TOGETHER" // students must occupy adjacent seats
	RuleKeepApart   = "KEEP_APART"   // students must not occupy adjacent seats
)

// Rule is one pairwise seating rule of a room.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room this rule applies to.
//  StudentA  – smaller student id of the pair.
//  StudentB  – larger student id of the pair.
//  Kind      – RuleSitTogether or RuleKeepApart.
//  CreatedAt – creation timestamp.
type Rule struct {
	ID        uint64    // rules.id
	RoomID    uint64    // rules.room_id
	StudentA  uint64    // rules.student_a
	StudentB  uint64    // rules.student_b
	Kind      string    // rules.kind
	CreatedAt time.Time // rules.created_at
}
