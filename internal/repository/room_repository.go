package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/classroom-seating/internal/model"
)

const roomColumns = "id, owner_id, name, description, is_active, created_at, updated_at"

// RoomRepo provides methods to create and retrieve rooms. Ownership
// checks happen here, not in the handlers: every lookup that takes an
// ownerID only matches rooms of that owner.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

func scanRoom(row *sql.Row) (*model.Room, error) {
	var rm model.Room
	err := row.Scan(&rm.ID, &rm.OwnerID, &rm.Name, &rm.Description, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// Create inserts a new room. OwnerID and Name must be set; on success
// the room is re-read so timestamps and defaults are populated.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rooms (owner_id, name, description) VALUES (?, ?, ?)",
		rm.OwnerID, rm.Name, rm.Description)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	fresh, err := scanRoom(r.db.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = ?", id))
	if err != nil {
		return err
	}
	*rm = *fresh
	return nil
}

// GetByIDAndOwner retrieves a room only if it belongs to the owner.
func (r *RoomRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Room, error) {
	return scanRoom(r.db.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = ? AND owner_id = ?", id, ownerID))
}

// GetByID retrieves a room regardless of owner. Used by the public
// layout endpoint and the roster-sync consumer.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	return scanRoom(r.db.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = ?", id))
}

// ListByOwner returns all rooms of an owner ordered by id.
func (r *RoomRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE owner_id = ? ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Room
	for rows.Next() {
		rm := new(model.Room)
		if err := rows.Scan(&rm.ID, &rm.OwnerID, &rm.Name, &rm.Description, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByIDAndOwner updates name, description and is_active.
func (r *RoomRepo) UpdateByIDAndOwner(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET name = ?, description = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner_id = ?`,
		rm.Name, rm.Description, rm.IsActive, rm.ID, rm.OwnerID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes a room and, via FK cascade, its seats,
// students, rules and charts.
func (r *RoomRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM rooms WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
