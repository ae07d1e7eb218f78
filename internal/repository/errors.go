// Package repository implements data access for the seating domain.
// This file defines sentinel errors shared by the repositories so that
// handlers can distinguish failure scenarios: ErrForbidden maps to 403,
// ErrConflict to 409, the *NotFound values to 404.
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup yields no row, or the
// room is not owned by the requesting user.
var ErrRoomNotFound = errors.New("room not found")

// ErrSeatNotFound is returned when a seat lookup yields no row.
var ErrSeatNotFound = errors.New("seat not found")

// ErrStudentNotFound is returned when a student lookup yields no row.
var ErrStudentNotFound = errors.New("student not found")

// ErrRuleNotFound is returned when a rule lookup yields no row.
var ErrRuleNotFound = errors.New("rule not found")

// ErrChartNotFound is returned when a room has no saved chart yet.
var ErrChartNotFound = errors.New("chart not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update collides with
// existing state, such as creating a rule that already exists.
var ErrConflict = errors.New("conflict")
