package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/classroom-seating/internal/model"
)

const studentColumns = "id, room_id, display_name, tags, is_active, created_at, updated_at"

// StudentRepo provides access to room rosters.
type StudentRepo struct {
	db *sql.DB
}

// NewStudentRepo constructs a StudentRepo with the given DB handle.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// Create inserts a student. On success the ID is populated.
func (r *StudentRepo) Create(ctx context.Context, s *model.Student) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO students (room_id, display_name, tags) VALUES (?, ?, ?)",
		s.RoomID, s.DisplayName, s.Tags)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByRoom returns the active roster of a room ordered by name then id.
func (r *StudentRepo) GetByRoom(ctx context.Context, roomID uint64) ([]model.Student, error) {
	const q = `SELECT ` + studentColumns + `
	           FROM students
	           WHERE room_id = ? AND is_active = 1
	           ORDER BY display_name, id`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.RoomID, &s.DisplayName, &s.Tags, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByIDAndOwner retrieves a student while enforcing ownership via rooms.
func (r *StudentRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Student, error) {
	const q = `SELECT st.id, st.room_id, st.display_name, st.tags, st.is_active, st.created_at, st.updated_at
	           FROM students st
	           JOIN rooms r ON r.id = st.room_id
	           WHERE st.id = ? AND r.owner_id = ?`
	var s model.Student
	err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&s.ID, &s.RoomID, &s.DisplayName, &s.Tags, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateByIDAndOwner updates display_name, tags and is_active.
func (r *StudentRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint64, name, tags string, active bool) error {
	const q = `UPDATE students st
	           JOIN rooms r ON r.id = st.room_id
	           SET st.display_name = ?, st.tags = ?, st.is_active = ?, st.updated_at = CURRENT_TIMESTAMP
	           WHERE st.id = ? AND r.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, tags, active, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes a student while enforcing ownership.
// Rules referencing the student are removed by FK cascade.
func (r *StudentRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE st FROM students st
	           JOIN rooms r ON r.id = st.room_id
	           WHERE st.id = ? AND r.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// DeactivateMissing marks every active student of the room whose id is
// not in keep as inactive and returns the ids it deactivated. Used by
// the roster-sync consumer when an external source says who is still
// enrolled.
func (r *StudentRepo) DeactivateMissing(ctx context.Context, roomID uint64, keep []uint64) ([]uint64, error) {
	current, err := r.GetByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	keepSet := make(map[uint64]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	var gone []uint64
	for _, s := range current {
		if !keepSet[s.ID] {
			gone = append(gone, s.ID)
		}
	}
	if len(gone) == 0 {
		return nil, nil
	}
	query := `UPDATE students SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id IN (`
	args := make([]interface{}, 0, len(gone))
	for i, id := range gone {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}
	return gone, nil
}

// TagsToList splits a comma-separated tag column into clean values.
func TagsToList(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
