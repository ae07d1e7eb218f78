package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-seating/internal/model"
	"github.com/iliyamo/classroom-seating/internal/repository"
)

type ruleResp struct {
	ID       uint64 `json:"id"`
	RoomID   uint64 `json:"room_id"`
	StudentA uint64 `json:"student_a"`
	StudentB uint64 `json:"student_b"`
	Kind     string `json:"kind"`
}

func toRuleResp(r *model.Rule) ruleResp {
	return ruleResp{ID: r.ID, RoomID: r.RoomID, StudentA: r.StudentA, StudentB: r.StudentB, Kind: r.Kind}
}

// CreateRule handles POST /v1/rooms/:id/rules. Both students must be
// active roster members of the room; the pair is stored in canonical
// order so the same pair cannot exist twice.
func (h *TeacherHandler) CreateRule(c echo.Context) error {
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
		StudentA uint64 `json:"student_a"`
		StudentB uint64 `json:"student_b"`
		Kind     string `json:"kind"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	kind := strings.ToUpper(strings.TrimSpace(body.Kind))
	if kind != model.RuleSitTogether && kind != model.RuleKeepApart {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be SIT_TOGETHER or KEEP_APART"})
	}
	if body.StudentA == 0 || body.StudentB == 0 || body.StudentA == body.StudentB {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "two distinct students required"})
	}

	ctx := c.Request().Context()
	for _, sid := range []uint64{body.StudentA, body.StudentB} {
		st, err := h.StudentRepo.GetByIDAndOwner(ctx, sid, ownerID)
		if err != nil {
			if err == repository.ErrStudentNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if st.RoomID != roomID || !st.IsActive {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "students must be active members of this room"})
		}
	}

	rule := &model.Rule{RoomID: roomID, StudentA: body.StudentA, StudentB: body.StudentB, Kind: kind}
	if err := h.RuleRepo.Create(ctx, rule); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a rule for this pair already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create rule"})
	}
	return c.JSON(http.StatusCreated, toRuleResp(rule))
}

// ListRules handles GET /v1/rooms/:id/rules.
func (h *TeacherHandler) ListRules(c echo.Context) error {
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
	rules, err := h.RuleRepo.GetByRoom(c.Request().Context(), roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]ruleResp, 0, len(rules))
	for i := range rules {
		items = append(items, toRuleResp(&rules[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteRule handles DELETE /v1/rules/:id.
func (h *TeacherHandler) DeleteRule(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.RuleRepo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrRuleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
