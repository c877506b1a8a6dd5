package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/construsol/proposal-service/internal/catalog"
	"github.com/construsol/proposal-service/internal/domain/dto"
	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/i18n"
	"github.com/construsol/proposal-service/internal/repository"
)

// CatalogHandler provides HTTP handlers for catalog products.
type CatalogHandler struct {
	products repository.ProductsRepositoryInterface
	cache    *catalog.Cached
}

// NewCatalogHandler creates a new CatalogHandler. The cache is optional;
// when present it is invalidated on upserts so readers never see a stale
// price longer than one lookup.
func NewCatalogHandler(products repository.ProductsRepositoryInterface, cache *catalog.Cached) *CatalogHandler {
	return &CatalogHandler{products: products, cache: cache}
}

// GetProduct handles GET /api/products/:code requests.
//
// @Summary      Get a catalog product
// @Tags         Catalog
// @Produce      json
// @Param        code path string true "Product code"
// @Success      200 {object} dto.SuccessResponse "Product snapshot"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Router       /api/products/{code} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	product, err := h.products.GetProduct(c.Request.Context(), c.Param("code"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	builder.SuccessOK(product)
}

// ListProducts handles GET /api/products requests.
//
// @Summary      List catalog products by category
// @Tags         Catalog
// @Produce      json
// @Param        category query string true "Product category"
// @Success      200 {object} dto.SuccessResponse "Products sorted by code"
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	category := c.Query("category")
	if category == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil)
		return
	}

	products, err := h.products.ListProductsByCategory(c.Request.Context(), category)
	if err != nil {
		_ = c.Error(err)
		return
	}

	builder.SuccessOK(gin.H{"products": products, "count": len(products)})
}

// UpsertProduct handles PUT /api/products requests.
//
// @Summary      Create or replace a catalog product
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.UpsertProductRequest true "Product fields"
// @Success      200 {object} dto.SuccessResponse "Stored product"
// @Failure      400 {object} dto.ErrorResponse "Invalid input"
// @Router       /api/products [put]
func (h *CatalogHandler) UpsertProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	product := model.ProductRecord{
		Code:          req.Code,
		Description:   req.Description,
		UnitPrice:     decimal.NewFromFloat(req.UnitPrice),
		PackageSize:   decimal.NewFromFloat(req.PackageSize),
		UnitOfMeasure: req.UnitOfMeasure,
		Category:      req.Category,
	}
	if product.PackageSize.IsZero() {
		product.PackageSize = decimal.NewFromInt(1)
	}

	if err := h.products.Upsert(c.Request.Context(), product); err != nil {
		_ = c.Error(err)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(product.Code)
	}

	builder.SuccessOK(product)
}
