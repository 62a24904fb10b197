package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/model/response/wrapper"
	"github.com/aibekz/productivity-backend/internal/service/analytics"
)

type AnalyticsHandler struct {
	service *analytics.AnalyticsService
}

func NewAnalyticsHandler(service *analytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetHeatmap godoc
// @Summary Weekly focus heatmap
// @Description 7x24 grid of focus minutes for the week containing the given date; weeks start Monday
// @Tags analytics
// @Produce json
// @Param week query string false "Any date inside the week (YYYY-MM-DD), defaults to the current week"
// @Success 200 {object} wrapper.ResponseWrapper{data=[]entity.HeatmapCell}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /analytics/heatmap [get]
func (h *AnalyticsHandler) GetHeatmap(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	ref, ok := dateQuery(c, "week")
	if !ok {
		return
	}

	cells, err := h.service.GetHeatmap(c.Request.Context(), userUUID, ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: cells, Success: true})
}

// GetBurnout godoc
// @Summary Burnout risk assessment
// @Description Flags sustained long focus sessions combined with a falling completion rate
// @Tags analytics
// @Produce json
// @Param window_days query int false "Trailing window in days, default 7"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.BurnoutAssessment}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /analytics/burnout [get]
func (h *AnalyticsHandler) GetBurnout(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	windowDays := 0
	if raw := c.Query("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "window_days must be a positive integer", Success: false})
			return
		}
		windowDays = parsed
	}

	assessment, err := h.service.GetBurnout(c.Request.Context(), userUUID, windowDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: assessment, Success: true})
}

// GetProductivity godoc
// @Summary Composite productivity score
// @Description Weighted blend of focus time, task completion, goal progress and streak consistency
// @Tags analytics
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.ProductivityScore}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /analytics/productivity [get]
func (h *AnalyticsHandler) GetProductivity(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
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
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "end must be after start", Success: false})
		return
	}

	score, err := h.service.GetProductivity(c.Request.Context(), userUUID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: score, Success: true})
}

// CompareWeeks godoc
// @Summary Compare the current week against the previous one
// @Description Absolute and percentage deltas for minutes, sessions and completion rate
// @Tags analytics
// @Produce json
// @Param week query string false "Any date inside the current week (YYYY-MM-DD)"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.PeriodComparison}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /analytics/compare [get]
func (h *AnalyticsHandler) CompareWeeks(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	ref, ok := dateQuery(c, "week")
	if !ok {
		return
	}

	comparison, err := h.service.CompareWeeks(c.Request.Context(), userUUID, ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: comparison, Success: true})
}

// RefreshStreak godoc
// @Summary Recompute the daily goal streak
// @Description Walks back day by day from today and persists the updated streak counters
// @Tags analytics
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=int}
// @Router /analytics/streak/refresh [post]
func (h *AnalyticsHandler) RefreshStreak(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	streak, err := h.service.RefreshStreak(c.Request.Context(), userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: streak, Success: true})
}

func dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Now().UTC(), true
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid " + name + " date, expected YYYY-MM-DD", Success: false})
		return time.Time{}, false
	}
	return parsed, true
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
