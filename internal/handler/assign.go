package handler

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-seating/internal/model"
	"github.com/iliyamo/classroom-seating/internal/queue"
	"github.com/iliyamo/classroom-seating/internal/repository"
	queue_publisher "github.com/iliyamo/classroom-seating/internal/service"
	"github.com/iliyamo/classroom-seating/internal/solver"
)

// AssignSeats handles POST /v1/rooms/:id/assign. It loads the room's
// layout, roster and rules, runs the solver and saves the outcome as
// the room's newest chart. Query parameters:
//
//	strategy  "alpha" (default) or "random"
//	seed      optional int64; pins the random strategy's shuffle order
func (h *TeacherHandler) AssignSeats(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	room, err := h.RoomRepo.GetByIDAndOwner(c.Request().Context(), roomID, ownerID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	strategy := solver.Strategy(c.QueryParam("strategy"))
	if strategy == "" {
		strategy = solver.StrategyAlpha
	}
	if strategy != solver.StrategyAlpha && strategy != solver.StrategyRandom {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "strategy must be alpha or random"})
	}
	var rng *rand.Rand
	if seedStr := c.QueryParam("seed"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seed"})
		}
		rng = rand.New(rand.NewSource(seed))
	}

	ctx := c.Request().Context()
	seats, err := h.SeatRepo.GetByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	roster, err := h.StudentRepo.GetByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	rules, err := h.RuleRepo.GetByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	layout := solver.Layout{
		Seats:    make([]solver.Seat, 0, len(seats)),
		Excluded: make(map[solver.SeatID]bool),
	}
	for _, s := range seats {
		layout.Seats = append(layout.Seats, solver.Seat{
			ID:   solver.SeatID(s.ID),
			X:    s.X,
			Y:    s.Y,
			Tags: repository.TagsToList(s.Tags),
		})
		if s.IsExcluded {
			layout.Excluded[solver.SeatID(s.ID)] = true
		}
	}
	students := make([]solver.Student, 0, len(roster))
	for _, st := range roster {
		students = append(students, solver.Student{
			ID:          solver.StudentID(st.ID),
			DisplayName: st.DisplayName,
			Tags:        repository.TagsToList(st.Tags),
		})
	}
	var ruleSet solver.RuleSet
	for _, r := range rules {
		pair := solver.Pair{A: solver.StudentID(r.StudentA), B: solver.StudentID(r.StudentB)}
		switch r.Kind {
		case model.RuleSitTogether:
			ruleSet.Together = append(ruleSet.Together, pair)
		case model.RuleKeepApart:
			ruleSet.Apart = append(ruleSet.Apart, pair)
		}
	}

	opts := solver.Options{
		Strategy: strategy,
		Rand:     rng,
		MaxSteps: h.Cfg.SolverMaxSteps,
		Adjacency: solver.AdjacencyOptions{
			RowTolerance: h.Cfg.RowTolerance,
			MaxGap:       h.Cfg.MaxSeatGap,
			FrontBack:    h.Cfg.FrontBackLinks,
			ColTolerance: h.Cfg.ColumnTolerance,
		},
	}
	res, err := solver.Solve(layout, students, ruleSet, opts)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	assignments := make(map[uint64]uint64, len(res.SeatOf))
	for sid, seat := range res.SeatOf {
		assignments[uint64(sid)] = uint64(seat)
	}
	chart := &model.Chart{
		RoomID:        roomID,
		Strategy:      string(strategy),
		ConflictCount: uint32(len(res.Conflicts)),
	}
	if err := h.ChartRepo.Save(ctx, chart, assignments); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save chart failed"})
	}

	// Publish for downstream consumers; a broker outage must not fail
	// the request.
	_ = queue_publisher.PublishChartAssigned(ctx, queue.ChartAssignedEvent{
		ChartID:       chart.ID,
		RoomID:        roomID,
		RoomName:      room.Name,
		OwnerID:       ownerID,
		Strategy:      string(strategy),
		SeatedCount:   len(assignments),
		ConflictCount: len(res.Conflicts),
		SeatOf:        assignments,
		ComputedAt:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"chart_id":  chart.ID,
		"strategy":  string(strategy),
		"seat_of":   assignments,
		"conflicts": res.Conflicts,
		"warnings":  res.Warnings,
	})
}

type chartItem struct {
	StudentID   uint64  `json:"student_id"`
	DisplayName string  `json:"display_name"`
	SeatID      uint64  `json:"seat_id"`
	SeatLabel   string  `json:"seat_label"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// GetChart handles GET /v1/rooms/:id/chart. It returns the newest
// chart of the room with assignments joined against the roster and
// layout, plus every active student left without a seat.
func (h *TeacherHandler) GetChart(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if done, err := h.ownRoom(c, roomID, ownerID); done {
		return err
	}

	ctx := c.Request().Context()
	chart, seatOf, err := h.ChartRepo.LatestByRoom(ctx, roomID)
	if err != nil {
		if err == repository.ErrChartNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no chart yet, run assign first"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	roster, err := h.StudentRepo.GetByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	seats, err := h.SeatRepo.GetByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	seatByID := make(map[uint64]*model.Seat, len(seats))
	for i := range seats {
		seatByID[seats[i].ID] = &seats[i]
	}

	items := make([]chartItem, 0, len(seatOf))
	var unseated []studentResp
	for i := range roster {
		st := &roster[i]
		if seatID, ok := seatOf[st.ID]; ok {
			item := chartItem{
				StudentID:   st.ID,
				DisplayName: st.DisplayName,
				SeatID:      seatID,
			}
			if s := seatByID[seatID]; s != nil {
				item.SeatLabel = s.Label
				item.X = s.X
				item.Y = s.Y
			}
			items = append(items, item)
		} else {
			unseated = append(unseated, toStudentResp(st))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"chart_id":       chart.ID,
		"strategy":       chart.Strategy,
		"conflict_count": chart.ConflictCount,
		"created_at":     chart.CreatedAt,
		"items":          items,
		"unseated":       unseated,
	})
}
