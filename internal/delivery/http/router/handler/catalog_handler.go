package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CatalogHandler exposes product, category and review management.
type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase}
}

// ListProducts handles GET /products.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	filter := repository.ProductFilter{
		Search:      c.QueryParam("search"),
		InStockOnly: c.QueryParam("in_stock") == "true",
		SortBy:      c.QueryParam("sort"),
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return domainerrors.ErrValidation.WrapMessage("invalid category id")
		}
		filter.CategoryID = &categoryID
	}

	products, err := h.catalogUsecase.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, products, "")
}

// GetProduct handles GET /products/:id.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid product id")
	}

	detail, err := h.catalogUsecase.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, detail, "")
}

// CreateProduct handles POST /products.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req usecase.CreateProductInput
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.catalogUsecase.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, product, "Product created")
}

// UpdateProduct handles PUT /products/:id.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid product id")
	}

	var req usecase.UpdateProductInput
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	req.ID = id
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.catalogUsecase.UpdateProduct(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, product, "Product updated")
}

type applyPriceRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
}

// ApplyPrice handles POST /products/:id/price.
func (h *CatalogHandler) ApplyPrice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid product id")
	}

	var req applyPriceRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.catalogUsecase.ApplyPrice(c.Request().Context(), id, req.Price); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Price applied")
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUsecase.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// CreateCategory handles POST /categories.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req usecase.CreateCategoryInput
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.catalogUsecase.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, category, "Category created")
}

type addReviewRequest struct {
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
	Rating     int       `json:"rating" validate:"required"`
	Comment    string    `json:"comment" validate:"max=2000"`
}

// AddReview handles POST /products/:id/reviews.
func (h *CatalogHandler) AddReview(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid product id")
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_REQUEST", "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.catalogUsecase.AddReview(c.Request().Context(), usecase.AddReviewInput{
		ProductID:  productID,
		CustomerID: req.CustomerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, review, "Review posted")
}

// ListReviews handles GET /products/:id/reviews.
func (h *CatalogHandler) ListReviews(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid product id")
	}

	reviews, err := h.catalogUsecase.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, reviews, "")
}
