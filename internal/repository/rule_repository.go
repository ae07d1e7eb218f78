package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/classroom-seating/internal/model"
)

// RuleRepo stores pairwise seating rules. Pairs are normalized on
// write (student_a < student_b) so the same pair in reversed order is
// the same row.
type RuleRepo struct {
	db *sql.DB
}

// NewRuleRepo constructs a RuleRepo with the given DB handle.
func NewRuleRepo(db *sql.DB) *RuleRepo {
	return &RuleRepo{db: db}
}

// Create inserts a rule after normalizing the pair order. A duplicate
// pair+kind returns ErrConflict.
func (r *RuleRepo) Create(ctx context.Context, rule *model.Rule) error {
	if rule.StudentA > rule.StudentB {
		rule.StudentA, rule.StudentB = rule.StudentB, rule.StudentA
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rules (room_id, student_a, student_b, kind) VALUES (?, ?, ?, ?)",
		rule.RoomID, rule.StudentA, rule.StudentB, rule.Kind)
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
	rule.ID = uint64(id)
	return nil
}

// GetByRoom returns all rules of a room ordered by id.
func (r *RuleRepo) GetByRoom(ctx context.Context, roomID uint64) ([]model.Rule, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, room_id, student_a, student_b, kind, created_at FROM rules WHERE room_id = ? ORDER BY id",
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Rule
	for rows.Next() {
		var ru model.Rule
		if err := rows.Scan(&ru.ID, &ru.RoomID, &ru.StudentA, &ru.StudentB, &ru.Kind, &ru.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, ru)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByIDAndOwner retrieves a rule while enforcing ownership via rooms.
func (r *RuleRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Rule, error) {
	const q = `SELECT ru.id, ru.room_id, ru.student_a, ru.student_b, ru.kind, ru.created_at
	           FROM rules ru
	           JOIN rooms r ON r.id = ru.room_id
	           WHERE ru.id = ? AND r.owner_id = ?`
	var ru model.Rule
	err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&ru.ID, &ru.RoomID, &ru.StudentA, &ru.StudentB, &ru.Kind, &ru.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return &ru, nil
}

// DeleteByIDAndOwner removes a rule while enforcing ownership.
func (r *RuleRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE ru FROM rules ru
	           JOIN rooms r ON r.id = ru.room_id
	           WHERE ru.id = ? AND r.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// PruneMissingStudents deletes every rule of the room that references
// a student who is no longer on the active roster. Returns the number
// of rules removed. Called by the roster-sync consumer so stored rules
// never dangle; the solver additionally drops unknown ids defensively.
func (r *RuleRepo) PruneMissingStudents(ctx context.Context, roomID uint64) (int64, error) {
	const q = `DELETE ru FROM rules ru
	           LEFT JOIN students a ON a.id = ru.student_a AND a.is_active = 1
	           LEFT JOIN students b ON b.id = ru.student_b AND b.is_active = 1
	           WHERE ru.room_id = ? AND (a.id IS NULL OR b.id IS NULL)`
	res, err := r.db.ExecContext(ctx, q, roomID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
