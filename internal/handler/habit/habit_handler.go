package habit

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/model/response/wrapper"
	"github.com/aibekz/productivity-backend/internal/repository"
	"github.com/aibekz/productivity-backend/internal/service/habit"
)

type HabitHandler struct {
	service habit.HabitService
}

func NewHabitHandler(service habit.HabitService) *HabitHandler {
	return &HabitHandler{service: service}
}

// CreateHabit godoc
// @Summary Create a habit
// @Tags habits
// @Accept json
// @Produce json
// @Param habit body entity.CreateHabitRequest true "Habit"
// @Success 201 {object} wrapper.ResponseWrapper{data=entity.Habit}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /habits [post]
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req entity.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	created, err := h.service.CreateHabit(c.Request.Context(), userUUID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{Data: created, Success: true})
}

// GetHabits godoc
// @Summary List the authenticated user's habits
// @Tags habits
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.Habit}
// @Router /habits [get]
func (h *HabitHandler) GetHabits(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	habits, err := h.service.GetHabits(c.Request.Context(), userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: habits, Success: true})
}

// LogHabit godoc
// @Summary Log a habit for a day
// @Description The log date is truncated to a UTC day; logging the same day twice is rejected
// @Tags habits
// @Accept json
// @Produce json
// @Param id path string true "Habit ID"
// @Param log body entity.LogHabitRequest true "Log"
// @Success 201 {object} wrapper.ResponseWrapper{data=entity.HabitLog}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Failure 409 {object} wrapper.ErrorWrapper
// @Router /habits/{id}/logs [post]
func (h *HabitHandler) LogHabit(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid habit ID", Success: false})
		return
	}

	var req entity.LogHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	log, err := h.service.LogHabit(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Habit not found", Success: false})
		case errors.Is(err, repository.ErrDuplicateLog):
			c.JSON(http.StatusConflict, wrapper.ErrorWrapper{Message: "Habit already logged for this day", Success: false})
		default:
			c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		}
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{Data: log, Success: true})
}

// GetLogs godoc
// @Summary List habit logs in a date window
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Param start query string true "Window start (YYYY-MM-DD)"
// @Param end query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.HabitLog}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /habits/{id}/logs [get]
func (h *HabitHandler) GetLogs(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid habit ID", Success: false})
		return
	}

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid start date, expected YYYY-MM-DD", Success: false})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid end date, expected YYYY-MM-DD", Success: false})
		return
	}

	logs, err := h.service.GetLogs(c.Request.Context(), id, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: logs, Success: true})
}

// DeleteHabit godoc
// @Summary Delete a habit and its logs
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /habits/{id} [delete]
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid habit ID", Success: false})
		return
	}

	if err := h.service.DeleteHabit(c.Request.Context(), id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Habit not found", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "Habit deleted", Success: true})
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
