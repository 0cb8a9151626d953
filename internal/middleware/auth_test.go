package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nqhuy-dev/task-tracker-api/internal/models"
	"github.com/nqhuy-dev/task-tracker-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenHeader = "x-access-token"

func newGuardedRouter(sessions *services.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireToken(testTokenHeader, sessions), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func getProtected(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set(testTokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireTokenMissingHeader(t *testing.T) {
	r := newGuardedRouter(services.NewSessionService("secret", time.Hour))

	w := getProtected(r, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No authentication found", body["message"])
}

func TestRequireTokenInvalidToken(t *testing.T) {
	r := newGuardedRouter(services.NewSessionService("secret", time.Hour))

	w := getProtected(r, "Bearer junk")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid token", body["message"])
}

func TestRequireTokenExpiredToken(t *testing.T) {
	sessions := services.NewSessionService("secret", -time.Minute)
	token, err := sessions.IssueToken(&models.User{ID: 1, Username: "jdoe"})
	require.NoError(t, err)

	w := getProtected(newGuardedRouter(sessions), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "TokenExpiredError", body["name"])
	assert.Equal(t, "jwt expired", body["message"])
	assert.Equal(t, float64(SessionErrorCode), body["code"])
}

func TestRequireTokenValidToken(t *testing.T) {
	sessions := services.NewSessionService("secret", time.Hour)
	token, err := sessions.IssueToken(&models.User{ID: 1, Username: "jdoe"})
	require.NoError(t, err)

	w := getProtected(newGuardedRouter(sessions), token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireTokenWrongSecret(t *testing.T) {
	other := services.NewSessionService("other", time.Hour)
	token, err := other.IssueToken(&models.User{ID: 1, Username: "jdoe"})
	require.NoError(t, err)

	w := getProtected(newGuardedRouter(services.NewSessionService("secret", time.Hour)), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
