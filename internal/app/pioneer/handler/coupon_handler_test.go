package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) CreateCoupon(ctx context.Context, req *entity.CreateCouponRequest) (*entity.Coupon, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Coupon), args.Error(1)
}

func (m *MockCouponService) GetAllCoupons(ctx context.Context) ([]entity.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Coupon), args.Error(1)
}

func (m *MockCouponService) UpdateCoupon(ctx context.Context, id string, req *entity.UpdateCouponRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockCouponService) DeleteCoupon(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponService) GetDiscount(ctx context.Context, code string) (int, error) {
	args := m.Called(ctx, code)
	return args.Int(0), args.Error(1)
}

func setupCouponRouter(mockService *MockCouponService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewCouponHandler(mockService)

	router.POST("/coupons", handler.CreateCoupon)
	router.GET("/coupons", handler.GetAllCoupons)
	router.PATCH("/coupons/:id", handler.UpdateCoupon)
	router.DELETE("/coupons/:id", handler.DeleteCoupon)
	router.GET("/coupons/discount/:code", handler.GetDiscount)

	return router
}

func TestCouponHandler_CreateCoupon_Success(t *testing.T) {
	// Arrange
	mockService := new(MockCouponService)
	mockService.On("CreateCoupon", mock.Anything, mock.AnythingOfType("*entity.CreateCouponRequest")).Return(&entity.Coupon{
		CouponCode:      "SAVE10",
		DiscountPercent: 10,
	}, nil)

	router := setupCouponRouter(mockService)

	body, _ := json.Marshal(entity.CreateCouponRequest{CouponCode: "SAVE10", DiscountPercent: 10})
	req := httptest.NewRequest(http.MethodPost, "/coupons", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCouponHandler_CreateCoupon_DiscountOutOfRange(t *testing.T) {
	// Arrange
	mockService := new(MockCouponService)
	router := setupCouponRouter(mockService)

	body, _ := json.Marshal(map[string]interface{}{"couponCode": "BIG", "discountPercent": 150})
	req := httptest.NewRequest(http.MethodPost, "/coupons", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "CreateCoupon", mock.Anything, mock.Anything)
}

func TestCouponHandler_GetDiscount_Success(t *testing.T) {
	// Arrange
	mockService := new(MockCouponService)
	mockService.On("GetDiscount", mock.Anything, "SAVE10").Return(10, nil)

	router := setupCouponRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/coupons/discount/SAVE10", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.DiscountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 10, response.DiscountPercent)
}

func TestCouponHandler_GetDiscount_InvalidCode(t *testing.T) {
	// Arrange
	mockService := new(MockCouponService)
	mockService.On("GetDiscount", mock.Anything, "NOPE").Return(0, service.ErrInvalidCoupon)

	router := setupCouponRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/coupons/discount/NOPE", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Invalid coupon code", response["error"])
}

func TestCouponHandler_UpdateCoupon_InvalidID(t *testing.T) {
	// Arrange
	mockService := new(MockCouponService)
	mockService.On("UpdateCoupon", mock.Anything, "not-a-hex", mock.AnythingOfType("*entity.UpdateCouponRequest")).Return(service.ErrInvalidID)

	router := setupCouponRouter(mockService)

	body, _ := json.Marshal(map[string]interface{}{"discountPercent": 20})
	req := httptest.NewRequest(http.MethodPatch, "/coupons/not-a-hex", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Invalid coupon ID", response["error"])
}

func TestCouponHandler_UpdateCoupon_NotFound(t *testing.T) {
	// Arrange
	mockService := new(MockCouponService)
	mockService.On("UpdateCoupon", mock.Anything, "missing", mock.AnythingOfType("*entity.UpdateCouponRequest")).Return(service.ErrCouponNotFound)

	router := setupCouponRouter(mockService)

	body, _ := json.Marshal(map[string]interface{}{"discountPercent": 20})
	req := httptest.NewRequest(http.MethodPatch, "/coupons/missing", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
