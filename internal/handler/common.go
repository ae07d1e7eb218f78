package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-seating/internal/config"
	"github.com/iliyamo/classroom-seating/internal/repository"
)

// TeacherHandler bundles the repositories behind the teacher-scoped
// room management endpoints.
type TeacherHandler struct {
	Cfg         config.Config
	RoomRepo    *repository.RoomRepo
	SeatRepo    *repository.SeatRepo
	StudentRepo *repository.StudentRepo
	RuleRepo    *repository.RuleRepo
	ChartRepo   *repository.ChartRepo
}

// NewTeacherHandler constructs a TeacherHandler and panics if any
// dependency is nil.
func NewTeacherHandler(cfg config.Config, rooms *repository.RoomRepo, seats *repository.SeatRepo, students *repository.StudentRepo, rules *repository.RuleRepo, charts *repository.ChartRepo) *TeacherHandler {
	if rooms == nil || seats == nil || students == nil || rules == nil || charts == nil {
		panic("nil repository passed to NewTeacherHandler")
	}
	return &TeacherHandler{
		Cfg:         cfg,
		RoomRepo:    rooms,
		SeatRepo:    seats,
		StudentRepo: students,
		RuleRepo:    rules,
		ChartRepo:   charts,
	}
}

// getUserID extracts the user_id set by the JWT middleware and
// converts it to uint64. Numeric JWT claims decode as float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
