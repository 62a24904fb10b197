package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/model/response/wrapper"
	"github.com/aibekz/productivity-backend/internal/service/session"
)

type SessionHandler struct {
	service session.SessionService
}

func NewSessionHandler(service session.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// StartSession godoc
// @Summary Start a work or focus session
// @Description Open a new session; duration stays unset until the session is closed
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body entity.StartSessionRequest true "Session"
// @Success 201 {object} wrapper.ResponseWrapper{data=entity.WorkSession}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req entity.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	created, err := h.service.StartSession(c.Request.Context(), userUUID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{Data: created, Success: true})
}

// CloseSession godoc
// @Summary Close an open session
// @Description Stamp the end time; the duration in minutes is derived, minimum 1
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param session body entity.CloseSessionRequest true "Close payload"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.WorkSession}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /sessions/{id}/close [put]
func (h *SessionHandler) CloseSession(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid session ID", Success: false})
		return
	}

	var req entity.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	closed, err := h.service.CloseSession(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Session not found", Success: false})
			return
		}
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: closed, Success: true})
}

// GetSessions godoc
// @Summary List sessions
// @Description List the authenticated user's sessions with optional filters
// @Tags sessions
// @Produce json
// @Param mode query string false "Session mode (focus|break)"
// @Param start_time query string false "Window start (RFC3339)"
// @Param end_time query string false "Window end (RFC3339)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} entity.PaginatedResponse{data=[]entity.WorkSession}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Router /sessions [get]
func (h *SessionHandler) GetSessions(c *gin.Context) {
	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var filter entity.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}
	filter.UserID = userUUID.String()

	sessions, pagination, err := h.service.GetSessions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, entity.PaginatedResponse{Data: sessions, Success: true, Pagination: pagination})
}

// GetSession godoc
// @Summary Get a session by ID
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.WorkSession}
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid session ID", Success: false})
		return
	}

	found, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Session not found", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: found, Success: true})
}

// DeleteSession godoc
// @Summary Delete a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid session ID", Success: false})
		return
	}

	if err := h.service.DeleteSession(c.Request.Context(), id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Session not found", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "Session deleted", Success: true})
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
