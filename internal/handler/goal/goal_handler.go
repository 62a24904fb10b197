package goal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/model/response/wrapper"
	"github.com/aibekz/productivity-backend/internal/service/goal"
)

type GoalHandler struct {
	service *goal.GoalService
}

func NewGoalHandler(service *goal.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

type updateKeyResultRequest struct {
	CurrentValue float64 `json:"current_value" binding:"min=0"`
}

type linkRequest struct {
	TaskID    *string `json:"task_id"`
	HabitID   *string `json:"habit_id"`
	SessionID *string `json:"session_id"`
}

// CreateGoal godoc
// @Summary Create a goal
// @Description Create a goal with optional weighted key results; progress starts at zero
// @Tags goals
// @Accept json
// @Produce json
// @Param goal body entity.CreateGoalRequest true "Goal"
// @Success 201 {object} wrapper.ResponseWrapper{data=entity.Goal}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req entity.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	created, err := h.service.CreateGoal(c.Request.Context(), userUUID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{Data: created, Success: true})
}

// GetGoals godoc
// @Summary List the authenticated user's goals
// @Tags goals
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.Goal}
// @Router /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := h.service.GetGoals(c.Request.Context(), userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: goals, Success: true})
}

// GetGoal godoc
// @Summary Get a goal with its key results and derived progress
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.Goal}
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid goal ID", Success: false})
		return
	}

	found, err := h.service.GetGoal(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Goal not found", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: found, Success: true})
}

// UpdateGoal godoc
// @Summary Update goal metadata
// @Description Title and dates only; progress and health cannot be set by clients
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param goal body entity.GoalUpdate true "Fields to update"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.Goal}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /goals/{id} [patch]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid goal ID", Success: false})
		return
	}

	var update entity.GoalUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	updated, err := h.service.UpdateGoal(c.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Goal not found", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: updated, Success: true})
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Description Key results cascade; linked tasks, habits and sessions are detached, not deleted
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid goal ID", Success: false})
		return
	}

	if err := h.service.DeleteGoal(c.Request.Context(), id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Goal not found", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "Goal deleted", Success: true})
}

// UpdateKeyResult godoc
// @Summary Update a key result's current value
// @Description Recomputes the owning goal's progress and health
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Key result ID"
// @Param keyResult body updateKeyResultRequest true "Current value"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.KeyResult}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /goals/key-results/{id} [put]
func (h *GoalHandler) UpdateKeyResult(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid key result ID", Success: false})
		return
	}

	var req updateKeyResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	updated, err := h.service.UpdateKeyResult(c.Request.Context(), id, req.CurrentValue)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Key result not found", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: updated, Success: true})
}

// LinkActivity godoc
// @Summary Link a task, habit or session to a goal
// @Description Exactly one of task_id, habit_id or session_id must be set; progress is recomputed
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param link body linkRequest true "Activity to link"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /goals/{id}/links [post]
func (h *GoalHandler) LinkActivity(c *gin.Context) {
	h.changeLink(c, true)
}

// UnlinkActivity godoc
// @Summary Unlink a task, habit or session from a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param link body linkRequest true "Activity to unlink"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /goals/{id}/links [delete]
func (h *GoalHandler) UnlinkActivity(c *gin.Context) {
	h.changeLink(c, false)
}

func (h *GoalHandler) changeLink(c *gin.Context, link bool) {
	goalID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid goal ID", Success: false})
		return
	}

	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	set := 0
	for _, id := range []*string{req.TaskID, req.HabitID, req.SessionID} {
		if id != nil {
			set++
		}
	}
	if set != 1 {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Exactly one of task_id, habit_id or session_id is required", Success: false})
		return
	}

	ctx := c.Request.Context()
	switch {
	case req.TaskID != nil:
		var taskID uuid.UUID
		if taskID, err = uuid.FromString(*req.TaskID); err == nil {
			if link {
				err = h.service.LinkTask(ctx, goalID, taskID)
			} else {
				err = h.service.UnlinkTask(ctx, goalID, taskID)
			}
		}
	case req.HabitID != nil:
		var habitID uuid.UUID
		if habitID, err = uuid.FromString(*req.HabitID); err == nil {
			if link {
				err = h.service.LinkHabit(ctx, goalID, habitID)
			} else {
				err = h.service.UnlinkHabit(ctx, goalID, habitID)
			}
		}
	default:
		var sessionID uuid.UUID
		if sessionID, err = uuid.FromString(*req.SessionID); err == nil {
			if link {
				err = h.service.LinkSession(ctx, goalID, sessionID)
			} else {
				err = h.service.UnlinkSession(ctx, goalID, sessionID)
			}
		}
	}

	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Goal or activity not found", Success: false})
			return
		}
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	message := "Activity linked"
	if !link {
		message = "Activity unlinked"
	}
	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: message, Success: true})
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return uuid.Nil, false
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return uuid.Nil, false
	}

	return userUUID, true
}
