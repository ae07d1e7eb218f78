package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/classroom-seating/internal/model"
)

// ChartRepo persists solver results. A chart header plus its
// assignment rows are written in one transaction so a half-saved chart
// can never become the room's current chart.
type ChartRepo struct {
	db *sql.DB
}

// NewChartRepo constructs a ChartRepo with the given DB handle.
func NewChartRepo(db *sql.DB) *ChartRepo {
	return &ChartRepo{db: db}
}

// Save stores the chart header and its assignments atomically and
// populates chart.ID.
func (r *ChartRepo) Save(ctx context.Context, chart *model.Chart, assignments map[uint64]uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO charts (room_id, strategy, conflict_count) VALUES (?, ?, ?)",
		chart.RoomID, chart.Strategy, chart.ConflictCount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	chart.ID = uint64(id)

	if len(assignments) > 0 {
		query := "INSERT INTO chart_assignments (chart_id, student_id, seat_id) VALUES "
		args := make([]interface{}, 0, len(assignments)*3)
		first := true
		for studentID, seatID := range assignments {
			if !first {
				query += ","
			}
			first = false
			query += "(?, ?, ?)"
			args = append(args, chart.ID, studentID, seatID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LatestByRoom returns the newest chart of a room together with its
// assignment map, or ErrChartNotFound when the room has none.
func (r *ChartRepo) LatestByRoom(ctx context.Context, roomID uint64) (*model.Chart, map[uint64]uint64, error) {
	var c model.Chart
	err := r.db.QueryRowContext(ctx,
		`SELECT id, room_id, strategy, conflict_count, created_at
		 FROM charts WHERE room_id = ? ORDER BY id DESC LIMIT 1`, roomID).
		Scan(&c.ID, &c.RoomID, &c.Strategy, &c.ConflictCount, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrChartNotFound
		}
		return nil, nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT student_id, seat_id FROM chart_assignments WHERE chart_id = ?", c.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	seatOf := make(map[uint64]uint64)
	for rows.Next() {
		var studentID, seatID uint64
		if err := rows.Scan(&studentID, &seatID); err != nil {
			return nil, nil, err
		}
		seatOf[studentID] = seatID
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return &c, seatOf, nil
}

// ClearStudent removes a student's placements from every chart of the
// room. Called when a student leaves the roster so old charts do not
// render references to a removed student.
func (r *ChartRepo) ClearStudent(ctx context.Context, roomID, studentID uint64) error {
	const q = `DELETE ca FROM chart_assignments ca
	           JOIN charts c ON c.id = ca.chart_id
	           WHERE c.room_id = ? AND ca.student_id = ?`
	_, err := r.db.ExecContext(ctx, q, roomID, studentID)
	return err
}
