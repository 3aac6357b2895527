package handler

import (
	"net/http"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/util"
	"productpioneer/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// AuthHandler выдает identity-токены
type AuthHandler struct {
	tokenManager *util.TokenManager
}

func NewAuthHandler(tokenManager *util.TokenManager) *AuthHandler {
	return &AuthHandler{
		tokenManager: tokenManager,
	}
}

// IssueToken обрабатывает POST /jwt
// Тело запроса целиком подписывается как claims с часовым сроком действия
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var claims map[string]interface{}
	if err := c.ShouldBindJSON(&claims); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, err := h.tokenManager.Generate(claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	metrics.TokensIssued.Inc()

	c.JSON(http.StatusOK, entity.TokenResponse{Token: token})
}
