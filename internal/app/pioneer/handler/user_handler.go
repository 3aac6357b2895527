package handler

import (
	"context"
	"errors"
	"net/http"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, email string) (*entity.User, error)
	GetAllUsers(ctx context.Context) ([]entity.User, error)
	UpdateRole(ctx context.Context, email string, req *entity.UpdateUserRoleRequest) error
	UpdateMembership(ctx context.Context, email string, req *entity.UpdateMembershipRequest) error
	DeleteUser(ctx context.Context, email string) error
}

// UserHandler обрабатывает HTTP запросы каталога пользователей
type UserHandler struct {
	userService UserServiceInterface
	validator   *validator.Validate
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// CreateUser обрабатывает POST /users
// Идемпотентная регистрация: повторный email отвечает успехом без вставки
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req entity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusOK, entity.CreateUserResponse{
				Message:    "User already exists",
				InsertedID: nil,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetAllUsers обрабатывает GET /users (только admin)
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get users"})
		return
	}

	c.JSON(http.StatusOK, entity.UserListResponse{
		Users: users,
		Total: len(users),
	})
}

// GetUser обрабатывает GET /user/:email
func (h *UserHandler) GetUser(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateRole обрабатывает PATCH /users/update/:email
// Несуществующий email - no-op с успешным ответом (поведение исходной системы)
func (h *UserHandler) UpdateRole(c *gin.Context) {
	email := c.Param("email")

	var req entity.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.userService.UpdateRole(c.Request.Context(), email, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Role updated"})
}

// UpdateMembership обрабатывает PATCH /users/update-membership/:email
func (h *UserHandler) UpdateMembership(c *gin.Context) {
	email := c.Param("email")

	var req entity.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.userService.UpdateMembership(c.Request.Context(), email, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update membership"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Membership updated"})
}

// DeleteUser обрабатывает DELETE /users/:email
func (h *UserHandler) DeleteUser(c *gin.Context) {
	email := c.Param("email")

	if err := h.userService.DeleteUser(c.Request.Context(), email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "User deleted successfully"})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
