package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nqhuy-dev/task-tracker-api/internal/middleware"
	"github.com/nqhuy-dev/task-tracker-api/internal/models"
	"github.com/nqhuy-dev/task-tracker-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type SessionHandlerTestSuite struct {
	suite.Suite
	db             *gorm.DB
	router         *gin.Engine
	sessionService *services.SessionService
	user           *models.User
}

func (suite *SessionHandlerTestSuite) SetupTest() {
	suite.db = openHandlerTestDB(&suite.Suite)

	suite.user = &models.User{
		Username: "jdoe",
		Password: "irrelevant",
		Email:    "jdoe@example.com",
		Name:     "John Doe",
	}
	suite.Require().NoError(suite.db.Create(suite.user).Error)

	suite.sessionService = services.NewSessionService("test-secret", time.Hour)
	userService := services.NewUserService(suite.db, 4)
	handler := NewSessionHandler(suite.sessionService, userService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	handler.RegisterRoutes(suite.router)
}

func (suite *SessionHandlerTestSuite) TearDownTest() {
	closeHandlerTestDB(&suite.Suite, suite.db)
}

func (suite *SessionHandlerTestSuite) TestDecodeValidToken() {
	token, err := suite.sessionService.IssueToken(suite.user)
	suite.Require().NoError(err)

	w := doJSON(suite.router, "POST", "/session", gin.H{"token": token})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := decodeBody(suite.T(), w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), "jdoe", data["username"])
	assert.NotContains(suite.T(), w.Body.String(), "irrelevant")
}

func (suite *SessionHandlerTestSuite) TestDecodeMissingToken() {
	w := doJSON(suite.router, "POST", "/session", gin.H{})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "No authentication found", decodeBody(suite.T(), w)["message"])
}

func (suite *SessionHandlerTestSuite) TestDecodeGarbageToken() {
	w := doJSON(suite.router, "POST", "/session", gin.H{"token": "Bearer not.a.jwt"})

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(suite.T(), "Invalid token", decodeBody(suite.T(), w)["message"])
}

func (suite *SessionHandlerTestSuite) TestDecodeExpiredToken() {
	expiredSessions := services.NewSessionService("test-secret", -time.Minute)
	token, err := expiredSessions.IssueToken(suite.user)
	suite.Require().NoError(err)

	w := doJSON(suite.router, "POST", "/session", gin.H{"token": token})

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	body := decodeBody(suite.T(), w)
	assert.Equal(suite.T(), "TokenExpiredError", body["name"])
	assert.Equal(suite.T(), "jwt expired", body["message"])
	assert.Equal(suite.T(), float64(middleware.SessionErrorCode), body["code"])
	assert.NotEmpty(suite.T(), body["expiredAt"])
}

func (suite *SessionHandlerTestSuite) TestDecodeWrongSecret() {
	otherSessions := services.NewSessionService("other-secret", time.Hour)
	token, err := otherSessions.IssueToken(suite.user)
	suite.Require().NoError(err)

	w := doJSON(suite.router, "POST", "/session", gin.H{"token": token})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *SessionHandlerTestSuite) TestDecodeTokenForDeletedUser() {
	token, err := suite.sessionService.IssueToken(suite.user)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Delete(&models.User{}, suite.user.ID).Error)

	w := doJSON(suite.router, "POST", "/session", gin.H{"token": token})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "User not found with provided token", decodeBody(suite.T(), w)["message"])
}

func TestSessionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}
