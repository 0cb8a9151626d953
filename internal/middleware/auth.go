package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/nqhuy-dev/task-tracker-api/internal/errors"
	"github.com/nqhuy-dev/task-tracker-api/internal/services"
)

// SessionErrorCode flags an expired-token rejection in the response body.
const SessionErrorCode = 50014

// RequireToken validates the bearer token carried in headerName. A valid
// token passes control through untouched; the decoded payload is not
// attached to the request here.
func RequireToken(headerName string, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(headerName)
		if token == "" {
			apierrors.BadRequest(c, "No authentication found")
			c.Abort()
			return
		}

		if err := sessions.Verify(token); err != nil {
			RespondSessionError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RespondSessionError converts a token-verification error into the uniform
// session rejection. Expired tokens answer 401 with their expiry metadata
// and code 50014.
func RespondSessionError(c *gin.Context, err error) {
	var expired *services.ExpiredTokenError
	if errors.As(err, &expired) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"name":      "TokenExpiredError",
			"message":   "jwt expired",
			"expiredAt": expired.ExpiredAt,
			"code":      SessionErrorCode,
		})
		return
	}

	if errors.Is(err, services.ErrNoToken) {
		apierrors.BadRequest(c, "No authentication found")
		return
	}

	apierrors.Unauthorized(c, "Invalid token")
}
