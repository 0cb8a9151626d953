package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/nqhuy-dev/task-tracker-api/internal/errors"
	"github.com/nqhuy-dev/task-tracker-api/internal/pagination"
	"github.com/nqhuy-dev/task-tracker-api/internal/query"
	"github.com/nqhuy-dev/task-tracker-api/internal/services"
	"github.com/nqhuy-dev/task-tracker-api/internal/utils"
)

// UserHandler serves the user resource plus login. Passwords never appear in
// a response body; the model strips them on serialization.
type UserHandler struct {
	userService    *services.UserService
	sessionService *services.SessionService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, sessionService *services.SessionService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		sessionService: sessionService,
	}
}

// RegisterRoutes mounts the user routes. Create and login are public; the
// rest require a valid token.
func (h *UserHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.POST("/user", h.Create)
	r.GET("/user", auth, h.FindAll)
	r.GET("/user/:id", auth, h.FindByID)
	r.PUT("/user/:id", auth, h.UpdateByID)
	r.DELETE("/user/:id", auth, h.DeleteByID)
	r.POST("/login", h.Login)
}

// Create registers a new user. The gender reference must resolve; duplicate
// username/email answers 409.
func (h *UserHandler) Create(c *gin.Context) {
	type createUserRequest struct {
		Username    string `json:"username" binding:"required"`
		Password    string `json:"password" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Name        string `json:"name" binding:"required"`
		Phone       string `json:"phone" binding:"required"`
		DateOfBirth string `json:"dateOfBirth" binding:"required"`
		Gender      uint64 `json:"gender" binding:"required"`
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dob, err := utils.ParseCommonDate(req.DateOfBirth)
	if err != nil {
		apierrors.BadRequest(c, "Invalid dateOfBirth, expected dd/MM/yyyy")
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		DateOfBirth: &dob,
		GenderID:    req.Gender,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.Conflict(c, "Email is already taken")
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.Conflict(c, "Username is already taken")
		case errors.Is(err, services.ErrInvalidGender):
			apierrors.BadRequest(c, fmt.Sprintf("Invalid gender %d", req.Gender))
		default:
			apierrors.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// FindAll lists users with prefix filters on username/email/name/phone and a
// membership filter on gender.
func (h *UserHandler) FindAll(c *gin.Context) {
	filter := services.UserListFilter{
		Username: c.Query("username"),
		Email:    c.Query("email"),
		Name:     c.Query("name"),
		Phone:    c.Query("phone"),
		Genders:  query.ToArray(c.QueryArray("gender")...),
	}
	opts := pagination.FromQuery(c)

	result, err := h.userService.List(filter, opts)
	if err != nil {
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result,
		"code": http.StatusOK,
		"query": gin.H{
			"username": filter.Username,
			"email":    filter.Email,
			"name":     filter.Name,
			"phone":    filter.Phone,
			"gender":   filter.Genders,
		},
		"options": opts,
	})
}

// FindByID fetches one user; malformed ids read as not found.
func (h *UserHandler) FindByID(c *gin.Context) {
	id := c.Param("id")

	user, err := h.userService.Find(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("User not found with id = %s", id))
			return
		}
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// UpdateByID applies a partial update. A present password is re-hashed; an
// absent one is left untouched.
func (h *UserHandler) UpdateByID(c *gin.Context) {
	type updateUserRequest struct {
		Username    *string `json:"username"`
		Password    *string `json:"password"`
		Email       *string `json:"email"`
		Name        *string `json:"name"`
		Phone       *string `json:"phone"`
		DateOfBirth *string `json:"dateOfBirth"`
		Gender      *uint64 `json:"gender"`
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		GenderID: req.Gender,
	}
	if req.DateOfBirth != nil {
		dob, err := utils.ParseCommonDate(*req.DateOfBirth)
		if err != nil {
			apierrors.BadRequest(c, "Invalid dateOfBirth, expected dd/MM/yyyy")
			return
		}
		input.DateOfBirth = &dob
	}

	id := c.Param("id")
	user, err := h.userService.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidGender):
			apierrors.BadRequest(c, fmt.Sprintf("Invalid gender %d", *req.Gender))
		case errors.Is(err, services.ErrNotFound):
			apierrors.NotFound(c, fmt.Sprintf("User not found with id = %s", id))
		default:
			apierrors.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    user,
		"message": fmt.Sprintf("User id = %s updated successfully", id),
	})
}

// DeleteByID removes a user and echoes their last value.
func (h *UserHandler) DeleteByID(c *gin.Context) {
	id := c.Param("id")

	user, err := h.userService.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("User not found with id = %s", id))
			return
		}
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    user,
		"message": fmt.Sprintf("User id = %s deleted successfully", id),
	})
}

// Login authenticates by username or email and answers with a fresh bearer
// token.
func (h *UserHandler) Login(c *gin.Context) {
	type loginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongEmail):
			apierrors.NotFound(c, "Wrong email")
		case errors.Is(err, services.ErrWrongUsername):
			apierrors.NotFound(c, "Wrong username")
		case errors.Is(err, services.ErrWrongPassword):
			apierrors.Unauthorized(c, "Wrong password")
		default:
			apierrors.Internal(c, err)
		}
		return
	}

	token, err := h.sessionService.IssueToken(user)
	if err != nil {
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in",
		"data":    user,
		"token":   token,
	})
}

