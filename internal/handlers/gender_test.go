package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nqhuy-dev/task-tracker-api/internal/models"
	"github.com/nqhuy-dev/task-tracker-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// passthroughAuth stands in for the token middleware in handler tests.
func passthroughAuth(c *gin.Context) {
	c.Next()
}

func openHandlerTestDB(s *suite.Suite) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	err = db.AutoMigrate(
		&models.Gender{},
		&models.Status{},
		&models.User{},
		&models.Task{},
	)
	s.Require().NoError(err)
	return db
}

func closeHandlerTestDB(s *suite.Suite, db *gorm.DB) {
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func doJSON(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t assert.TestingT, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &out)
	assert.NoError(t, err)
	return out
}

// GenderHandlerTestSuite covers the shared named-resource handler through its
// Gender instance.
type GenderHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *GenderHandlerTestSuite) SetupTest() {
	suite.db = openHandlerTestDB(&suite.Suite)

	service := services.NewNamedService(suite.db, func(name string) *models.Gender {
		return &models.Gender{Name: name}
	})
	handler := NewNamedHandler(service, "Gender")

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	handler.RegisterRoutes(suite.router, "gender", passthroughAuth)
}

func (suite *GenderHandlerTestSuite) TearDownTest() {
	closeHandlerTestDB(&suite.Suite, suite.db)
}

func (suite *GenderHandlerTestSuite) TestCreateSuccess() {
	w := doJSON(suite.router, "POST", "/gender", gin.H{"name": "Male"})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), "Male", data["name"])
	assert.NotZero(suite.T(), data["id"])
}

func (suite *GenderHandlerTestSuite) TestCreateDuplicateName() {
	doJSON(suite.router, "POST", "/gender", gin.H{"name": "Male"})
	w := doJSON(suite.router, "POST", "/gender", gin.H{"name": "Male"})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	body := decodeBody(suite.T(), w)
	assert.Equal(suite.T(), "Another gender with same name existed", body["message"])
}

func (suite *GenderHandlerTestSuite) TestCreateMissingName() {
	w := doJSON(suite.router, "POST", "/gender", gin.H{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *GenderHandlerTestSuite) TestFindByID() {
	doJSON(suite.router, "POST", "/gender", gin.H{"name": "Male"})

	w := doJSON(suite.router, "GET", "/gender/1", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), "Male", data["name"])
}

func (suite *GenderHandlerTestSuite) TestFindByIDNotFound() {
	w := doJSON(suite.router, "GET", "/gender/999", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	body := decodeBody(suite.T(), w)
	assert.Equal(suite.T(), "Gender not found with id = 999", body["message"])
}

func (suite *GenderHandlerTestSuite) TestFindAllPagination() {
	for _, name := range []string{"a", "ab", "abc", "b"} {
		doJSON(suite.router, "POST", "/gender", gin.H{"name": name})
	}

	w := doJSON(suite.router, "GET", "/gender?name=a&page=1&limit=2", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(3), data["total_docs"])
	assert.Equal(suite.T(), float64(2), data["total_pages"])
	assert.True(suite.T(), data["has_next_page"].(bool))
	assert.Len(suite.T(), data["docs"], 2)

	options := body["options"].(map[string]interface{})
	assert.Equal(suite.T(), true, options["pagination"])
}

func (suite *GenderHandlerTestSuite) TestFindAllWithoutPagination() {
	for _, name := range []string{"a", "b", "c"} {
		doJSON(suite.router, "POST", "/gender", gin.H{"name": name})
	}

	w := doJSON(suite.router, "GET", "/gender?pagination=false&limit=1", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	data := body["data"].(map[string]interface{})
	assert.Len(suite.T(), data["docs"], 3)
	assert.Equal(suite.T(), float64(1), data["total_pages"])
}

func (suite *GenderHandlerTestSuite) TestUpdate() {
	doJSON(suite.router, "POST", "/gender", gin.H{"name": "Male"})

	w := doJSON(suite.router, "PUT", "/gender/1", gin.H{"name": "Other"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	assert.Equal(suite.T(), "Gender updated successfully", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), "Other", data["name"])
}

func (suite *GenderHandlerTestSuite) TestUpdateNameConflict() {
	doJSON(suite.router, "POST", "/gender", gin.H{"name": "Male"})
	doJSON(suite.router, "POST", "/gender", gin.H{"name": "Female"})

	w := doJSON(suite.router, "PUT", "/gender/2", gin.H{"name": "Male"})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *GenderHandlerTestSuite) TestUpdateSameRecordKeepsName() {
	doJSON(suite.router, "POST", "/gender", gin.H{"name": "Male"})

	w := doJSON(suite.router, "PUT", "/gender/1", gin.H{"name": "Male"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *GenderHandlerTestSuite) TestUpdateNotFound() {
	w := doJSON(suite.router, "PUT", "/gender/999", gin.H{"name": "x"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *GenderHandlerTestSuite) TestDelete() {
	doJSON(suite.router, "POST", "/gender", gin.H{"name": "Male"})

	w := doJSON(suite.router, "DELETE", "/gender/1", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	assert.Equal(suite.T(), "Gender id = 1 deleted successfully", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), "Male", data["name"])

	assert.Equal(suite.T(), http.StatusNotFound, doJSON(suite.router, "GET", "/gender/1", nil).Code)
}

// A badly-formed id is treated exactly like a missing record, not as a 400.
func (suite *GenderHandlerTestSuite) TestDeleteMalformedID() {
	w := doJSON(suite.router, "DELETE", "/gender/not-an-id", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	body := decodeBody(suite.T(), w)
	assert.Equal(suite.T(), "Gender not found", body["message"])
}

func (suite *GenderHandlerTestSuite) TestValidateName() {
	doJSON(suite.router, "POST", "/gender", gin.H{"name": "Male"})

	w := doJSON(suite.router, "GET", "/gender/validate/name/Male", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), false, decodeBody(suite.T(), w)["data"])

	w = doJSON(suite.router, "GET", "/gender/validate/name/Female", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), true, decodeBody(suite.T(), w)["data"])
}

func TestGenderHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GenderHandlerTestSuite))
}
