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

type CouponServiceInterface interface {
	CreateCoupon(ctx context.Context, req *entity.CreateCouponRequest) (*entity.Coupon, error)
	GetAllCoupons(ctx context.Context) ([]entity.Coupon, error)
	UpdateCoupon(ctx context.Context, id string, req *entity.UpdateCouponRequest) error
	DeleteCoupon(ctx context.Context, id string) error
	GetDiscount(ctx context.Context, code string) (int, error)
}

// CouponHandler обрабатывает HTTP запросы промокодов
type CouponHandler struct {
	couponService CouponServiceInterface
	validator     *validator.Validate
}

func NewCouponHandler(couponService CouponServiceInterface) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		validator:     validator.New(),
	}
}

// CreateCoupon обрабатывает POST /coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req entity.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

// GetAllCoupons обрабатывает GET /coupons
func (h *CouponHandler) GetAllCoupons(c *gin.Context) {
	coupons, err := h.couponService.GetAllCoupons(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get coupons"})
		return
	}

	c.JSON(http.StatusOK, entity.CouponListResponse{
		Coupons: coupons,
		Total:   len(coupons),
	})
}

// UpdateCoupon обрабатывает PATCH /coupons/:id
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id := c.Param("id")

	var req entity.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.couponService.UpdateCoupon(c.Request.Context(), id, &req); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Coupon updated"})
}

// DeleteCoupon обрабатывает DELETE /coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Coupon deleted successfully"})
}

// GetDiscount обрабатывает GET /coupons/discount/:code
// Неизвестный или просроченный код дает 404
func (h *CouponHandler) GetDiscount(c *gin.Context) {
	code := c.Param("code")

	discount, err := h.couponService.GetDiscount(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoupon) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid coupon code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get discount"})
		return
	}

	c.JSON(http.StatusOK, entity.DiscountResponse{DiscountPercent: discount})
}
