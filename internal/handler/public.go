package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-seating/internal/repository"
)

// PublicHandler serves the unauthenticated layout view that students
// open through a shared link. It deliberately exposes no roster data
// beyond display names on seats.
type PublicHandler struct {
	RoomRepo    *repository.RoomRepo
	SeatRepo    *repository.SeatRepo
	StudentRepo *repository.StudentRepo
	ChartRepo   *repository.ChartRepo
}

func NewPublicHandler(rooms *repository.RoomRepo, seats *repository.SeatRepo, students *repository.StudentRepo, charts *repository.ChartRepo) *PublicHandler {
	if rooms == nil || seats == nil || students == nil || charts == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{RoomRepo: rooms, SeatRepo: seats, StudentRepo: students, ChartRepo: charts}
}

type publicSeat struct {
	ID         uint64  `json:"id"`
	Label      string  `json:"label"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	IsExcluded bool    `json:"is_excluded"`
	OccupiedBy string  `json:"occupied_by,omitempty"`
}

// GetPublicLayout handles GET /v1/rooms/:id/layout. It returns the
// seat canvas with the newest chart's names drawn onto it. Rooms that
// are inactive or have no chart yet still render, just without names.
func (p *PublicHandler) GetPublicLayout(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	room, err := p.RoomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !room.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}

	seats, err := p.SeatRepo.GetByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	// nameOnSeat maps seat id to display name via the newest chart.
	nameOnSeat := make(map[uint64]string)
	if _, seatOf, err := p.ChartRepo.LatestByRoom(ctx, roomID); err == nil {
		roster, err := p.StudentRepo.GetByRoom(ctx, roomID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		names := make(map[uint64]string, len(roster))
		for _, st := range roster {
			names[st.ID] = st.DisplayName
		}
		for studentID, seatID := range seatOf {
			if n, ok := names[studentID]; ok {
				nameOnSeat[seatID] = n
			}
		}
	} else if err != repository.ErrChartNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	items := make([]publicSeat, 0, len(seats))
	for _, s := range seats {
		items = append(items, publicSeat{
			ID:         s.ID,
			Label:      s.Label,
			X:          s.X,
			Y:          s.Y,
			IsExcluded: s.IsExcluded,
			OccupiedBy: nameOnSeat[s.ID],
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id":   room.ID,
		"room_name": room.Name,
		"seats":     items,
	})
}
