package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(tokenManager *util.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(tokenManager)
	router.POST("/jwt", handler.IssueToken)
	return router
}

func TestAuthHandler_IssueToken_Success(t *testing.T) {
	// Arrange
	tokenManager := util.NewTokenManager(testSecret)
	router := setupAuthRouter(tokenManager)

	body, _ := json.Marshal(map[string]interface{}{
		"email": "user@example.com",
		"name":  "Test User",
	})
	req := httptest.NewRequest(http.MethodPost, "/jwt", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert: токен валиден и несет исходные claims
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)

	claims, err := tokenManager.Validate(response.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.Raw["name"])
}

func TestAuthHandler_IssueToken_InvalidBody(t *testing.T) {
	// Arrange
	tokenManager := util.NewTokenManager(testSecret)
	router := setupAuthRouter(tokenManager)

	req := httptest.NewRequest(http.MethodPost, "/jwt", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
