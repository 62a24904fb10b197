package insights

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/model/response/wrapper"
	"github.com/aibekz/productivity-backend/internal/service/insights"
)

type InsightsHandler struct {
	service *insights.Service
}

func NewInsightsHandler(service *insights.Service) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// GetWeekly godoc
// @Summary Weekly insights report
// @Description Peak hours, low-productivity days, week-over-week trend, habit correlations and recommendations; computed lazily and cached per week
// @Tags insights
// @Produce json
// @Param week query string false "Any date inside the week (YYYY-MM-DD), defaults to the current week"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.WeeklyInsight}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /insights/weekly [get]
func (h *InsightsHandler) GetWeekly(c *gin.Context) {
	h.serve(c, false)
}

// Regenerate godoc
// @Summary Recompute the weekly insights report
// @Description Discards the stored report for the week and rebuilds it from current activity
// @Tags insights
// @Produce json
// @Param week query string false "Any date inside the week (YYYY-MM-DD), defaults to the current week"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.WeeklyInsight}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /insights/weekly/regenerate [post]
func (h *InsightsHandler) Regenerate(c *gin.Context) {
	h.serve(c, true)
}

func (h *InsightsHandler) serve(c *gin.Context, regenerate bool) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	ref := time.Now().UTC()
	if raw := c.Query("week"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid week date, expected YYYY-MM-DD", Success: false})
			return
		}
		ref = parsed
	}

	insight, err := h.service.GetWeekly(c.Request.Context(), userUUID, ref, regenerate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: insight, Success: true})
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
