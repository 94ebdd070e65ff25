package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"shopSense/domain"
	"shopSense/pkg/logger"
)

type ProductService interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (domain.Product, error)
	Fetch(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductRequest struct {
	ID           string                 `json:"id" validate:"required"`
	Name         string                 `json:"name" validate:"required"`
	Price        float64                `json:"price" validate:"required,gt=0"`
	Category     string                 `json:"category" validate:"required"`
	Description  string                 `json:"description"`
	Store        string                 `json:"store"`
	Brand        string                 `json:"brand"`
	Rating       float64                `json:"rating" validate:"gte=0,lte=5"`
	ReviewsCount int                    `json:"reviews_count" validate:"gte=0"`
	EcoCertified bool                   `json:"eco_certified"`
	InStock      *bool                  `json:"in_stock"`
	Specs        map[string]interface{} `json:"specs"`
	ImageURL     string                 `json:"image_url"`
}

func (r *ProductRequest) toDomain() *domain.Product {
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	return &domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		Price:        r.Price,
		Category:     r.Category,
		Description:  r.Description,
		Store:        r.Store,
		Brand:        r.Brand,
		Rating:       r.Rating,
		ReviewsCount: r.ReviewsCount,
		EcoCertified: r.EcoCertified,
		InStock:      inStock,
		Specs:        datatypes.JSONMap(r.Specs),
		ImageURL:     r.ImageURL,
	}
}

func (h *ProductHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.Fetch(ctx)
	if err != nil {
		logger.Error("failed to fetch products", "error", err)
		return c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetByID(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := req.toDomain()
	if err := h.productService.Create(ctx, product); err != nil {
		logger.Error("failed to create product", "error", err)
		return c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(product))
}

func (h *ProductHandler) Update(c echo.Context) error {
	var req ProductRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	req.ID = c.Param("id")
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := req.toDomain()
	if err := h.productService.Update(ctx, product); err != nil {
		return c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.Delete(ctx, c.Param("id")); err != nil {
		return c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Product deleted successfully"))
}
