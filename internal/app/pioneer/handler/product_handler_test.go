package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, ownerEmail string, req *entity.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, ownerEmail, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) GetOwnProducts(ctx context.Context, ownerEmail string) ([]entity.Product, error) {
	args := m.Called(ctx, ownerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id string, req *entity.UpdateProductRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) GetAllRanked(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) UpdateStatus(ctx context.Context, id string, req *entity.UpdateStatusRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockProductService) Vote(ctx context.Context, id string, voterEmail string) error {
	args := m.Called(ctx, id, voterEmail)
	return args.Error(0)
}

func (m *MockProductService) Report(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) GetReported(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) MakeFeatured(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) GetFeatured(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) GetTrending(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) SearchProducts(ctx context.Context, page, size int64, term string) ([]entity.Product, error) {
	args := m.Called(ctx, page, size, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) CountProducts(ctx context.Context, term string) (int64, error) {
	args := m.Called(ctx, term)
	return args.Get(0).(int64), args.Error(1)
}

// setupProductRouter поднимает маршруты продуктов; email кладется в
// контекст вместо полного Authenticate, как это делал бы middleware
func setupProductRouter(mockService *MockProductService, email string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewProductHandler(mockService)

	withEmail := func(c *gin.Context) {
		if email != "" {
			c.Set("email", email)
		}
		c.Next()
	}

	router.POST("/products", withEmail, handler.CreateProduct)
	router.GET("/products/:email", withEmail, handler.GetOwnProducts)
	router.GET("/product/:id", handler.GetProduct)
	router.PATCH("/products/:id", handler.UpdateProduct)
	router.DELETE("/products/:id", handler.DeleteProduct)
	router.GET("/products", handler.GetAllRanked)
	router.PATCH("/products/update-status/:id", handler.UpdateStatus)
	router.PATCH("/products/increase-vote/:id", handler.Vote)
	router.PATCH("/products/report/:id", handler.Report)
	router.GET("/reported-products", handler.GetReported)
	router.PATCH("/products/make-featured/:id", handler.MakeFeatured)
	router.GET("/featured", handler.GetFeatured)
	router.GET("/trending", handler.GetTrending)
	router.GET("/all-products", handler.Search)
	router.GET("/products-count", handler.Count)

	return router
}

// ==================== CreateProduct Tests ====================

func TestProductHandler_CreateProduct_Success(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("CreateProduct", mock.Anything, "owner@example.com", mock.AnythingOfType("*entity.CreateProductRequest")).Return(&entity.Product{
		Name:   "AI Notebook",
		Status: entity.StatusPending,
	}, nil)

	router := setupProductRouter(mockService, "owner@example.com")

	body, _ := json.Marshal(entity.CreateProductRequest{Name: "AI Notebook"})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, entity.StatusPending, created.Status)
}

func TestProductHandler_CreateProduct_QuotaExceeded(t *testing.T) {
	// Arrange: квота отдается отличимым статусом, не generic ошибкой
	mockService := new(MockProductService)
	mockService.On("CreateProduct", mock.Anything, "owner@example.com", mock.AnythingOfType("*entity.CreateProductRequest")).Return(nil, service.ErrQuotaExceeded)

	router := setupProductRouter(mockService, "owner@example.com")

	body, _ := json.Marshal(entity.CreateProductRequest{Name: "Second Product"})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusConflict, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Submission quota exceeded", response["error"])
}

func TestProductHandler_CreateProduct_NoEmailInContext(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	router := setupProductRouter(mockService, "")

	body, _ := json.Marshal(entity.CreateProductRequest{Name: "Orphan"})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
}

// ==================== GetOwnProducts Tests ====================

func TestProductHandler_GetOwnProducts_ScopedToTokenEmail(t *testing.T) {
	// Arrange: email из пути игнорируется, выборка по токену
	mockService := new(MockProductService)
	mockService.On("GetOwnProducts", mock.Anything, "owner@example.com").Return([]entity.Product{
		{Name: "Own Product"},
	}, nil)

	router := setupProductRouter(mockService, "owner@example.com")

	req := httptest.NewRequest(http.MethodGet, "/products/someoneelse@example.com", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertCalled(t, "GetOwnProducts", mock.Anything, "owner@example.com")
	mockService.AssertNotCalled(t, "GetOwnProducts", mock.Anything, "someoneelse@example.com")
}

// ==================== Vote Tests ====================

func TestProductHandler_Vote_Success(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("Vote", mock.Anything, "product-1", "voter@example.com").Return(nil)

	router := setupProductRouter(mockService, "")

	body, _ := json.Marshal(entity.VoteRequest{Email: "voter@example.com"})
	req := httptest.NewRequest(http.MethodPatch, "/products/increase-vote/product-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Vote_AlreadyVoted(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("Vote", mock.Anything, "product-1", "voter@example.com").Return(service.ErrAlreadyVoted)

	router := setupProductRouter(mockService, "")

	body, _ := json.Marshal(entity.VoteRequest{Email: "voter@example.com"})
	req := httptest.NewRequest(http.MethodPatch, "/products/increase-vote/product-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "You have voted already", response["error"])
}

func TestProductHandler_Vote_MissingEmail(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	router := setupProductRouter(mockService, "")

	req := httptest.NewRequest(http.MethodPatch, "/products/increase-vote/product-1", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "Vote", mock.Anything, mock.Anything, mock.Anything)
}

// ==================== Moderation Tests ====================

func TestProductHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	router := setupProductRouter(mockService, "")

	body, _ := json.Marshal(map[string]string{"status": "Archived"})
	req := httptest.NewRequest(http.MethodPatch, "/products/update-status/product-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductHandler_MakeFeatured_NotFound(t *testing.T) {
	// Arrange: featured не создает новый документ для неизвестного id
	mockService := new(MockProductService)
	mockService.On("MakeFeatured", mock.Anything, "missing").Return(service.ErrProductNotFound)

	router := setupProductRouter(mockService, "")

	req := httptest.NewRequest(http.MethodPatch, "/products/make-featured/missing", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_GetAllRanked_Success(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("GetAllRanked", mock.Anything).Return([]entity.Product{
		{Name: "Pending One", Status: entity.StatusPending},
		{Name: "Accepted One", Status: entity.StatusAccepted},
	}, nil)

	router := setupProductRouter(mockService, "")

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.ProductListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, entity.StatusPending, response.Products[0].Status)
}

// ==================== Search Tests ====================

func TestProductHandler_Search_ParsesQueryParams(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("SearchProducts", mock.Anything, int64(3), int64(10), "phone").Return([]entity.Product{}, nil)

	router := setupProductRouter(mockService, "")

	req := httptest.NewRequest(http.MethodGet, "/all-products?page=3&size=10&search=phone", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Search_DefaultsWhenAbsent(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("SearchProducts", mock.Anything, int64(1), int64(20), "").Return([]entity.Product{}, nil)

	router := setupProductRouter(mockService, "")

	req := httptest.NewRequest(http.MethodGet, "/all-products", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Count_Success(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("CountProducts", mock.Anything, "phone").Return(int64(25), nil)

	router := setupProductRouter(mockService, "")

	req := httptest.NewRequest(http.MethodGet, "/products-count?search=phone", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.CountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(25), response.Count)
}

func TestProductHandler_GetProduct_NotFound(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("GetProduct", mock.Anything, "missing").Return(nil, service.ErrProductNotFound)

	router := setupProductRouter(mockService, "")

	req := httptest.NewRequest(http.MethodGet, "/product/missing", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_GetProduct_InvalidID(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("GetProduct", mock.Anything, "not-a-hex").Return(nil, service.ErrInvalidID)

	router := setupProductRouter(mockService, "")

	req := httptest.NewRequest(http.MethodGet, "/product/not-a-hex", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Invalid product ID", response["error"])
}

func TestProductHandler_GetProduct_RepositoryFailure(t *testing.T) {
	// Arrange: сбой хранилища не должен выглядеть как ошибка клиента
	mockService := new(MockProductService)
	mockService.On("GetProduct", mock.Anything, "65f000000000000000000000").Return(nil, errors.New("mongo down"))

	router := setupProductRouter(mockService, "")

	req := httptest.NewRequest(http.MethodGet, "/product/65f000000000000000000000", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProductHandler_UpdateStatus_InvalidID(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("UpdateStatus", mock.Anything, "not-a-hex", mock.AnythingOfType("*entity.UpdateStatusRequest")).Return(service.ErrInvalidID)

	router := setupProductRouter(mockService, "")

	body, _ := json.Marshal(entity.UpdateStatusRequest{Status: entity.StatusAccepted})
	req := httptest.NewRequest(http.MethodPatch, "/products/update-status/not-a-hex", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Invalid product ID", response["error"])
}

func TestProductHandler_Vote_InvalidID(t *testing.T) {
	// Arrange
	mockService := new(MockProductService)
	mockService.On("Vote", mock.Anything, "not-a-hex", "voter@example.com").Return(service.ErrInvalidID)

	router := setupProductRouter(mockService, "")

	body, _ := json.Marshal(entity.VoteRequest{Email: "voter@example.com"})
	req := httptest.NewRequest(http.MethodPatch, "/products/increase-vote/not-a-hex", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
