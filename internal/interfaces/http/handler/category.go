package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/domain/shared"
)

// CategoryReader is the storefront view of the category service
type CategoryReader interface {
	Tree(ctx context.Context) ([]catalogapp.CategoryTreeNode, error)
	GetByPath(ctx context.Context, slugs ...string) ([]catalogapp.CategoryResponse, error)
}

// CategoryProductLister lists the published products of a category
type CategoryProductLister interface {
	ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalogapp.ProductResponse, int64, error)
}

// CategoryHandler serves the public category endpoints
type CategoryHandler struct {
	BaseHandler
	categories CategoryReader
	products   CategoryProductLister
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories CategoryReader, products CategoryProductLister) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		products:   products,
	}
}

// pageParams is the paging part of a query string
type pageParams struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Tree returns the whole category hierarchy.
//
//	GET /api/v1/categories
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.categories.Tree(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tree)
}

// GetByPath resolves a slug path such as /kitchen/mugs and returns the leaf
// category, its breadcrumbs and a page of its published products.
//
//	GET /api/v1/categories/*path
func (h *CategoryHandler) GetByPath(c *gin.Context) {
	var params pageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.ValidationError(c, err)
		return
	}

	ctx := c.Request.Context()
	chain, err := h.categories.GetByPath(ctx, strings.Split(c.Param("path"), "/")...)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	leaf := chain[len(chain)-1]

	filter := shared.Filter{Page: params.Page, PageSize: params.PageSize}.Normalize()
	products, total, err := h.products.ListByCategory(ctx, leaf.ID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, catalogapp.CategoryPathResponse{
		Category:    leaf,
		Breadcrumbs: chain,
		Products:    products,
		Total:       total,
	}, total, filter.Page, filter.PageSize)
}
