package handler

import (
	"context"
	"net/http"

	"productpioneer/internal/app/pioneer/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetReviewsByProduct(ctx context.Context, productID string) ([]entity.Review, error)
}

// ReviewHandler обрабатывает HTTP запросы отзывов
type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// CreateReview обрабатывает POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviewsByProduct обрабатывает GET /reviews/:id
// Для продукта без отзывов возвращается пустой список, не 404
func (h *ReviewHandler) GetReviewsByProduct(c *gin.Context) {
	productID := c.Param("id")

	reviews, err := h.reviewService.GetReviewsByProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	})
}
