package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/classroom-seating/internal/model"
)

const seatColumns = "id, room_id, label, x, y, tags, is_excluded, is_active, created_at, updated_at"

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// Create inserts a single seat record. On success the seat's ID is populated.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	const q = `INSERT INTO seats (room_id, label, x, y, tags, is_excluded)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.RoomID, s.Label, s.X, s.Y, s.Tags, s.IsExcluded)
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
	s.ID = uint64(id)
	return nil
}

// CreateBulk inserts multiple seats in a single statement. Used by the
// grid generator when a whole layout is created at once.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (room_id, label, x, y, tags, is_excluded) VALUES `
	args := make([]interface{}, 0, len(seats)*6)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, seat.RoomID, seat.Label, seat.X, seat.Y, seat.Tags, seat.IsExcluded)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByRoom retrieves all active seats of a room ordered by y then x,
// which is the canonical layout order the solver depends on.
func (r *SeatRepo) GetByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
	const q = `SELECT ` + seatColumns + `
	           FROM seats
	           WHERE room_id = ? AND is_active = 1
	           ORDER BY y, x, id`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(
			&s.ID, &s.RoomID, &s.Label, &s.X, &s.Y, &s.Tags,
			&s.IsExcluded, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByIDAndOwner retrieves a seat by id while enforcing ownership via rooms.
func (r *SeatRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Seat, error) {
	const q = `SELECT s.id, s.room_id, s.label, s.x, s.y, s.tags, s.is_excluded, s.is_active, s.created_at, s.updated_at
	           FROM seats s
	           JOIN rooms r ON r.id = s.room_id
	           WHERE s.id = ? AND r.owner_id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&s.ID, &s.RoomID, &s.Label, &s.X, &s.Y, &s.Tags, &s.IsExcluded, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateByIDAndOwner updates label, position, tags and the exclusion
// flag while ensuring the seat's room belongs to the owner.
func (r *SeatRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint64, label string, x, y float64, tags string, excluded bool) error {
	const q = `UPDATE seats s
	           JOIN rooms r ON r.id = s.room_id
	           SET s.label = ?, s.x = ?, s.y = ?, s.tags = ?, s.is_excluded = ?, s.updated_at = CURRENT_TIMESTAMP
	           WHERE s.id = ? AND r.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, label, x, y, tags, excluded, id, ownerID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// DeleteByIDAndOwner deletes a seat while ensuring ownership.
func (r *SeatRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE s FROM seats s
	           JOIN rooms r ON r.id = s.room_id
	           WHERE s.id = ? AND r.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// DeleteByRoom removes all seats of a room. Used when a layout is
// regenerated from scratch; callers must verify ownership first.
func (r *SeatRepo) DeleteByRoom(ctx context.Context, roomID uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM seats WHERE room_id = ?", roomID)
	return err
}
