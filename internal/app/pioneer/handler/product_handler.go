package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"productpioneer/internal/app/pioneer/entity"
	"productpioneer/internal/app/pioneer/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, ownerEmail string, req *entity.CreateProductRequest) (*entity.Product, error)
	GetOwnProducts(ctx context.Context, ownerEmail string) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, req *entity.UpdateProductRequest) error
	DeleteProduct(ctx context.Context, id string) error
	GetAllRanked(ctx context.Context) ([]entity.Product, error)
	UpdateStatus(ctx context.Context, id string, req *entity.UpdateStatusRequest) error
	Vote(ctx context.Context, id string, voterEmail string) error
	Report(ctx context.Context, id string) error
	GetReported(ctx context.Context) ([]entity.Product, error)
	MakeFeatured(ctx context.Context, id string) error
	GetFeatured(ctx context.Context) ([]entity.Product, error)
	GetTrending(ctx context.Context) ([]entity.Product, error)
	SearchProducts(ctx context.Context, page, size int64, term string) ([]entity.Product, error)
	CountProducts(ctx context.Context, term string) (int64, error)
}

// ProductHandler обрабатывает HTTP запросы хранилища продуктов
type ProductHandler struct {
	productService ProductServiceInterface
	validator      *validator.Validate
}

func NewProductHandler(productService ProductServiceInterface) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
	}
}

// CreateProduct обрабатывает POST /products
// Владелец берется из токена; для unverified membership действует квота
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), email, &req)
	if err != nil {
		if errors.Is(err, service.ErrQuotaExceeded) {
			// Квота различима для клиента: фронтенд показывает
			// предложение купить membership
			c.JSON(http.StatusConflict, gin.H{"error": "Submission quota exceeded"})
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetOwnProducts обрабатывает GET /products/:email
// Email из пути игнорируется: выборка всегда по identity из токена
func (h *ProductHandler) GetOwnProducts(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	products, err := h.productService.GetOwnProducts(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// GetProduct обрабатывает GET /product/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct обрабатывает PATCH /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.productService.UpdateProduct(c.Request.Context(), id, &req); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product updated"})
}

// DeleteProduct обрабатывает DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product deleted successfully"})
}

// GetAllRanked обрабатывает GET /products - очередь модерации,
// Pending впереди остальных статусов
func (h *ProductHandler) GetAllRanked(c *gin.Context) {
	products, err := h.productService.GetAllRanked(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// UpdateStatus обрабатывает PATCH /products/update-status/:id
func (h *ProductHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req entity.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.productService.UpdateStatus(c.Request.Context(), id, &req); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Status updated"})
}

// Vote обрабатывает PATCH /products/increase-vote/:id
// Повторный голос того же email отклоняется с 400
func (h *ProductHandler) Vote(c *gin.Context) {
	id := c.Param("id")

	var req entity.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.productService.Vote(c.Request.Context(), id, req.Email); err != nil {
		if errors.Is(err, service.ErrAlreadyVoted) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have voted already"})
			return
		}
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Vote counted"})
}

// Report обрабатывает PATCH /products/report/:id
func (h *ProductHandler) Report(c *gin.Context) {
	id := c.Param("id")

	if err := h.productService.Report(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to report product"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Report counted"})
}

// GetReported обрабатывает GET /reported-products
func (h *ProductHandler) GetReported(c *gin.Context) {
	products, err := h.productService.GetReported(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reported products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// MakeFeatured обрабатывает PATCH /products/make-featured/:id
// Только обновление существующей записи, без upsert
func (h *ProductHandler) MakeFeatured(c *gin.Context) {
	id := c.Param("id")

	if err := h.productService.MakeFeatured(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to make product featured"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product featured"})
}

// GetFeatured обрабатывает GET /featured
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	products, err := h.productService.GetFeatured(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get featured products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// GetTrending обрабатывает GET /trending
func (h *ProductHandler) GetTrending(c *gin.Context) {
	products, err := h.productService.GetTrending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trending products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// Search обрабатывает GET /all-products?page=&size=&search=
// page 1-индексирован; в выдаче только Accepted продукты
func (h *ProductHandler) Search(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	size, _ := strconv.ParseInt(c.DefaultQuery("size", "20"), 10, 64)
	search := c.Query("search")

	products, err := h.productService.SearchProducts(c.Request.Context(), page, size, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// Count обрабатывает GET /products-count?search=
func (h *ProductHandler) Count(c *gin.Context) {
	search := c.Query("search")

	count, err := h.productService.CountProducts(c.Request.Context(), search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}

	c.JSON(http.StatusOK, entity.CountResponse{Count: count})
}
