package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/shop/backend/internal/application/catalog"
)

// ProductReader is the storefront view of the product service
type ProductReader interface {
	ListPublished(ctx context.Context, q catalogapp.ProductListQuery) ([]catalogapp.ProductResponse, int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*catalogapp.ProductResponse, error)
}

// ProductTagReader lists the tags attached to a product
type ProductTagReader interface {
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]catalogapp.TagResponse, error)
}

// ProductHandler serves the public product endpoints
type ProductHandler struct {
	BaseHandler
	products ProductReader
	tags     ProductTagReader
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products ProductReader, tags ProductTagReader) *ProductHandler {
	return &ProductHandler{products: products, tags: tags}
}

// productListParams is the raw query string of GET /products
type productListParams struct {
	Search     string `form:"q" binding:"max=100"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List returns published, active products, optionally searched and filtered
// by category.
//
//	GET /api/v1/products?q=&category_id=&page=&page_size=
func (h *ProductHandler) List(c *gin.Context) {
	var params productListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.ValidationError(c, err)
		return
	}

	query := catalogapp.ProductListQuery{
		Search:   params.Search,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	if params.CategoryID != "" {
		id := uuid.MustParse(params.CategoryID)
		query.CategoryID = &id
	}

	products, total, err := h.products.ListPublished(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := pageOf(query.Page, query.PageSize)
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// GetBySlug returns one published product.
//
//	GET /api/v1/products/:slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.products.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// Tags returns the tags of one published product.
//
//	GET /api/v1/products/:slug/tags
func (h *ProductHandler) Tags(c *gin.Context) {
	product, err := h.products.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	tags, err := h.tags.ListForProduct(c.Request.Context(), product.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tags)
}
