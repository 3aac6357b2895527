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

type PaymentServiceInterface interface {
	CreatePaymentIntent(ctx context.Context, price float64) (string, error)
}

// PaymentHandler обрабатывает запросы платежей за membership
type PaymentHandler struct {
	paymentService PaymentServiceInterface
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator.New(),
	}
}

// CreatePaymentIntent обрабатывает POST /create-payment-intent
// Секрет из ответа используется клиентом для завершения оплаты
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req entity.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	clientSecret, err := h.paymentService.CreatePaymentIntent(c.Request.Context(), req.Price)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		if errors.Is(err, service.ErrPaymentGateway) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, entity.PaymentIntentResponse{ClientSecret: clientSecret})
}
