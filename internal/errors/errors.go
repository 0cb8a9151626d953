package errors

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform error body: a bare message.
type Response struct {
	Message string `json:"message"`
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, Response{Message: message})
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, Response{Message: message})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, Response{Message: message})
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	c.JSON(http.StatusConflict, Response{Message: message})
}

// Internal logs err and sends a 500 response carrying its message.
func Internal(c *gin.Context, err error) {
	log.Printf("unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, Response{Message: err.Error()})
}
