package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/nqhuy-dev/task-tracker-api/internal/errors"
	"github.com/nqhuy-dev/task-tracker-api/internal/middleware"
	"github.com/nqhuy-dev/task-tracker-api/internal/services"
)

// SessionHandler decodes presented tokens back into their user.
type SessionHandler struct {
	sessionService *services.SessionService
	userService    *services.UserService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService *services.SessionService, userService *services.UserService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		userService:    userService,
	}
}

// RegisterRoutes mounts the session routes; decoding a token is public.
func (h *SessionHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/session", h.Decode)
}

// Decode verifies the posted token and returns the user it was issued for.
func (h *SessionHandler) Decode(c *gin.Context) {
	type decodeRequest struct {
		Token string `json:"token" binding:"required"`
	}

	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "No authentication found")
		return
	}

	userID, err := h.sessionService.Decode(req.Token)
	if err != nil {
		middleware.RespondSessionError(c, err)
		return
	}

	user, err := h.userService.Find(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, "User not found with provided token")
			return
		}
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
