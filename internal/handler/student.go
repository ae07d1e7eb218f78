package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-seating/internal/model"
	"github.com/iliyamo/classroom-seating/internal/repository"
)

type studentResp struct {
	ID          uint64   `json:"id"`
	RoomID      uint64   `json:"room_id"`
	DisplayName string   `json:"display_name"`
	Tags        []string `json:"tags"`
	IsActive    bool     `json:"is_active"`
}

func toStudentResp(s *model.Student) studentResp {
	return studentResp{
		ID:          s.ID,
		RoomID:      s.RoomID,
		DisplayName: s.DisplayName,
		Tags:        repository.TagsToList(s.Tags),
		IsActive:    s.IsActive,
	}
}

// CreateStudent handles POST /v1/rooms/:id/students.
func (h *TeacherHandler) CreateStudent(c echo.Context) error {
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
		DisplayName string   `json:"display_name"`
		Tags        []string `json:"tags"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(body.DisplayName)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "display_name required"})
	}

	st := &model.Student{
		RoomID:      roomID,
		DisplayName: name,
		Tags:        joinTags(body.Tags),
		IsActive:    true,
	}
	if err := h.StudentRepo.Create(c.Request().Context(), st); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create student"})
	}
	return c.JSON(http.StatusCreated, toStudentResp(st))
}

// ListStudents handles GET /v1/rooms/:id/students.
func (h *TeacherHandler) ListStudents(c echo.Context) error {
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
	students, err := h.StudentRepo.GetByRoom(c.Request().Context(), roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]studentResp, 0, len(students))
	for i := range students {
		items = append(items, toStudentResp(&students[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateStudent handles PUT/PATCH /v1/students/:id.
func (h *TeacherHandler) UpdateStudent(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.StudentRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrStudentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		DisplayName *string  `json:"display_name"`
		Tags        []string `json:"tags"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.DisplayName != nil && strings.TrimSpace(*body.DisplayName) != "" {
		cur.DisplayName = strings.TrimSpace(*body.DisplayName)
	}
	if body.Tags != nil {
		cur.Tags = joinTags(body.Tags)
	}
	if body.IsActive != nil {
		cur.IsActive = *body.IsActive
	}

	if err := h.StudentRepo.UpdateByIDAndOwner(c.Request().Context(), id, ownerID, cur.DisplayName, cur.Tags, cur.IsActive); err != nil {
		if err == repository.ErrStudentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	// A deactivated student must not linger in rules or in the latest
	// chart; the next solve would otherwise resurrect them.
	if body.IsActive != nil && !*body.IsActive {
		ctx := c.Request().Context()
		if _, err := h.RuleRepo.PruneMissingStudents(ctx, cur.RoomID); err != nil {
			c.Logger().Warnf("prune rules after deactivate failed: %v", err)
		}
		if err := h.ChartRepo.ClearStudent(ctx, cur.RoomID, id); err != nil {
			c.Logger().Warnf("clear chart refs after deactivate failed: %v", err)
		}
	}
	return c.JSON(http.StatusOK, toStudentResp(cur))
}

// DeleteStudent handles DELETE /v1/students/:id. Rules naming the
// student and their slot in the latest chart are removed with them.
func (h *TeacherHandler) DeleteStudent(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.StudentRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrStudentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	ctx := c.Request().Context()
	if err := h.StudentRepo.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if _, err := h.RuleRepo.PruneMissingStudents(ctx, cur.RoomID); err != nil {
		c.Logger().Warnf("prune rules after delete failed: %v", err)
	}
	if err := h.ChartRepo.ClearStudent(ctx, cur.RoomID, id); err != nil {
		c.Logger().Warnf("clear chart refs after delete failed: %v", err)
	}
	return c.NoContent(http.StatusNoContent)
}
