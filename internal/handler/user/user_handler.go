package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aibekz/productivity-backend/internal/entity"
	"github.com/aibekz/productivity-backend/internal/model/request"
	"github.com/aibekz/productivity-backend/internal/model/response/wrapper"
	"github.com/aibekz/productivity-backend/internal/service/user"
	"github.com/aibekz/productivity-backend/pkg/utils"
)

type UserHandler struct {
	srv *user.UserService
}

func NewUserHandler(srv *user.UserService) *UserHandler {
	return &UserHandler{srv: srv}
}

// CreateOrAuthUserWithPassword godoc
// @Summary Create or authenticate user with password
// @Description Create a new user or authenticate an existing user with password
// @Tags users
// @Accept json
// @Produce json
// @Param user body request.CreateUserWithPassword true "User object"
// @Success 200 {object} wrapper.ResponseWrapper{data=response.User}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /users/auth [post]
func (h *UserHandler) CreateOrAuthUserWithPassword(c *gin.Context) {
	var userRequest request.CreateUserWithPassword
	if err := c.ShouldBindJSON(&userRequest); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	originalPassword := userRequest.Password

	if h.srv.CheckIfUserExistsByUsername(userRequest.Username) {
		existingUser, err := h.srv.GetUserByUsername(userRequest.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
			return
		}

		if existingUser.Password == nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "User doesn't have a password", Success: false})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(*existingUser.Password), []byte(originalPassword)); err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid password", Success: false})
			return
		}

		token, err := utils.GenerateToken(existingUser.ID, existingUser.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
			return
		}

		c.SetCookie("token", token, 3600*24, "/", "", false, true)
		c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: token, Success: true})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(originalPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	userRequest.Password = string(hashedPassword)

	userResponse, err := h.srv.CreateUserWithPassword(&userRequest)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	token, err := utils.GenerateToken(userResponse.ID, userResponse.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.SetCookie("token", token, 3600*24, "/", "", false, true)
	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: userResponse, Success: true})
}

// GetUserById godoc
// @Summary Get user profile
// @Description Get the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=response.User}
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /users/profile [get]
func (h *UserHandler) GetUserById(c *gin.Context) {
	userUUID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	userResponse, err := h.srv.GetUserById(userUUID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "User not found", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: userResponse, Success: true})
}

// GetSettings godoc
// @Summary Get user settings
// @Description Get the authenticated user's daily goal and streak settings
// @Tags users
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.UserSettings}
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Router /users/settings [get]
func (h *UserHandler) GetSettings(c *gin.Context) {
	userUUID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	settings, err := h.srv.GetSettings(c.Request.Context(), userUUID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{Message: "Settings not found", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: settings, Success: true})
}

// UpdateSettings godoc
// @Summary Update user settings
// @Description Update the authenticated user's daily focus goal
// @Tags users
// @Accept json
// @Produce json
// @Param settings body entity.UpdateSettingsRequest true "Settings"
// @Success 200 {object} wrapper.ResponseWrapper{data=entity.UserSettings}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Router /users/settings [put]
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userUUID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	var req entity.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	settings, err := h.srv.UpdateDailyGoal(c.Request.Context(), userUUID, req.DailyGoalMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: settings, Success: true})
}

func authenticatedUser(c *gin.Context) (uuid.UUID, bool) {
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
