package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-seating/internal/model"
	"github.com/iliyamo/classroom-seating/internal/repository"
)

type seatResp struct {
	ID         uint64   `json:"id"`
	RoomID     uint64   `json:"room_id"`
	Label      string   `json:"label"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Tags       []string `json:"tags"`
	IsExcluded bool     `json:"is_excluded"`
}

func toSeatResp(s *model.Seat) seatResp {
	return seatResp{
		ID:         s.ID,
		RoomID:     s.RoomID,
		Label:      s.Label,
		X:          s.X,
		Y:          s.Y,
		Tags:       repository.TagsToList(s.Tags),
		IsExcluded: s.IsExcluded,
	}
}

// joinTags normalizes a tag list into the comma-separated storage
// form: trimmed, lowercased, empties dropped.
func joinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}

// ownRoom verifies the room exists and belongs to the caller. The
// boolean reports whether a response has already been written.
func (h *TeacherHandler) ownRoom(c echo.Context, roomID, ownerID uint64) (bool, error) {
	if _, err := h.RoomRepo.GetByIDAndOwner(c.Request().Context(), roomID, ownerID); err != nil {
		if err == repository.ErrRoomNotFound {
			return true, c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return true, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return false, nil
}

// CreateSeat handles POST /v1/rooms/:id/seats.
func (h *TeacherHandler) CreateSeat(c echo.Context) error {
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

	var body struct {
		Label      string   `json:"label"`
		X          *float64 `json:"x"`
		Y          *float64 `json:"y"`
		Tags       []string `json:"tags"`
		IsExcluded bool     `json:"is_excluded"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(body.Label) == "" || body.X == nil || body.Y == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label, x and y are required"})
	}

	seat := &model.Seat{
		RoomID:     roomID,
		Label:      strings.TrimSpace(body.Label),
		X:          *body.X,
		Y:          *body.Y,
		Tags:       joinTags(body.Tags),
		IsExcluded: body.IsExcluded,
	}
	if err := h.SeatRepo.Create(c.Request().Context(), seat); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat label already used in this room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create seat"})
	}
	return c.JSON(http.StatusCreated, toSeatResp(seat))
}

// CreateSeatGrid handles POST /v1/rooms/:id/seats/grid. It replaces
// the room's seats with a rows x cols grid. Labels follow the
// "A1..A<cols>, B1..." scheme and coordinates use the given spacing so
// the generated layout immediately yields row adjacency.
func (h *TeacherHandler) CreateSeatGrid(c echo.Context) error {
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

	var body struct {
		Rows     int      `json:"rows"`
		Cols     int      `json:"cols"`
		XSpacing *float64 `json:"x_spacing"`
		YSpacing *float64 `json:"y_spacing"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.Rows < 1 || body.Cols < 1 || body.Rows*body.Cols > 2000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rows and cols must be between 1 and a combined 2000 seats"})
	}
	xs, ys := 60.0, 80.0
	if body.XSpacing != nil && *body.XSpacing > 0 {
		xs = *body.XSpacing
	}
	if body.YSpacing != nil && *body.YSpacing > 0 {
		ys = *body.YSpacing
	}

	seats := make([]model.Seat, 0, body.Rows*body.Cols)
	for r := 0; r < body.Rows; r++ {
		label := rowLabel(r)
		for col := 0; col < body.Cols; col++ {
			seats = append(seats, model.Seat{
				RoomID: roomID,
				Label:  fmt.Sprintf("%s%d", label, col+1),
				X:      float64(col) * xs,
				Y:      float64(r) * ys,
			})
		}
	}

	ctx := c.Request().Context()
	if err := h.SeatRepo.DeleteByRoom(ctx, roomID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear old seats"})
	}
	if err := h.SeatRepo.CreateBulk(ctx, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": len(seats)})
}

// rowLabel converts a zero-based row index to A, B, ..., Z, AA, AB.
func rowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// ListSeats handles GET /v1/rooms/:id/seats.
func (h *TeacherHandler) ListSeats(c echo.Context) error {
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
	seats, err := h.SeatRepo.GetByRoom(c.Request().Context(), roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]seatResp, 0, len(seats))
	for i := range seats {
		items = append(items, toSeatResp(&seats[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateSeat handles PUT/PATCH /v1/seats/:id.
func (h *TeacherHandler) UpdateSeat(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.SeatRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Label      *string  `json:"label"`
		X          *float64 `json:"x"`
		Y          *float64 `json:"y"`
		Tags       []string `json:"tags"`
		IsExcluded *bool    `json:"is_excluded"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.Label != nil && strings.TrimSpace(*body.Label) != "" {
		cur.Label = strings.TrimSpace(*body.Label)
	}
	if body.X != nil {
		cur.X = *body.X
	}
	if body.Y != nil {
		cur.Y = *body.Y
	}
	if body.Tags != nil {
		cur.Tags = joinTags(body.Tags)
	}
	if body.IsExcluded != nil {
		cur.IsExcluded = *body.IsExcluded
	}

	if err := h.SeatRepo.UpdateByIDAndOwner(c.Request().Context(), id, ownerID, cur.Label, cur.X, cur.Y, cur.Tags, cur.IsExcluded); err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat label already used in this room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toSeatResp(cur))
}

// DeleteSeat handles DELETE /v1/seats/:id.
func (h *TeacherHandler) DeleteSeat(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.SeatRepo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
