package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/service"
	"productpioneer/internal/app/pioneer/util"

	"github.com/gin-gonic/gin"
)

// UserDirectory - ровно та часть UserService, которая нужна для
// проверки роли. Выделена в интерфейс для подмены в тестах
type UserDirectory interface {
	GetUser(ctx context.Context, email string) (*entity.User, error)
}

// AuthMiddleware проверяет JWT токен и роль вызывающего.
// Проверка роли идет через каталог пользователей: одно чтение на каждый
// авторизованный запрос, без кеширования между запросами
type AuthMiddleware struct {
	tokenManager *util.TokenManager
	users        UserDirectory
}

// NewAuthMiddleware создает новый middleware для аутентификации
func NewAuthMiddleware(tokenManager *util.TokenManager, users UserDirectory) *AuthMiddleware {
	return &AuthMiddleware{
		tokenManager: tokenManager,
		users:        users,
	}
}

// Authenticate проверяет JWT токен и добавляет email вызывающего в контекст Gin
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.tokenManager.Validate(parts[1])
		if err != nil {
			if errors.Is(err, util.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("email", claims.Email)
		c.Set("claims", claims.Raw)

		c.Next()
	}
}

// RequireRole сверяет роль вызывающего с требуемой по каталогу
// пользователей. Совпадение строгое: admin не проходит как moderator.
// Должен стоять после Authenticate
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := m.users.GetUser(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				c.Abort()
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check role"})
			c.Abort()
			return
		}

		if user.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		c.Next()
	}
}
