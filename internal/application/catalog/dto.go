package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=80"`
	Slug     string     `json:"slug" binding:"omitempty,slug,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest represents a request to update a category.
// ClearParent moves the category to the root.
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=80"`
	Slug        *string    `json:"slug" binding:"omitempty,slug,max=100"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ClearParent bool       `json:"clear_parent"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CategoryTreeNode is a category with its nested children
type CategoryTreeNode struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	Path     string             `json:"path"`
	Children []CategoryTreeNode `json:"children"`
}

// CategoryPathResponse is a category resolved from a slug path together with
// its published products
type CategoryPathResponse struct {
	Category    CategoryResponse   `json:"category"`
	Breadcrumbs []CategoryResponse `json:"breadcrumbs"`
	Products    []ProductResponse  `json:"products"`
	Total       int64              `json:"total"`
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=40"`
	Slug string `json:"slug" binding:"omitempty,slug,max=60"`
}

// UpdateTagRequest represents a request to update a tag
type UpdateTagRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=40"`
	Slug *string `json:"slug" binding:"omitempty,slug,max=60"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTagResponse converts a domain tag to a response
func ToTagResponse(t *catalog.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
	}
}

// CreateProductRequest represents a request to create a product. A blank
// slug is derived from the name when the product is saved.
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=120"`
	Slug        string           `json:"slug" binding:"omitempty,slug,max=140"`
	Description string           `json:"description" binding:"max=5000"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	IsActive    *bool            `json:"is_active"`
	Status      string           `json:"status" binding:"omitempty,oneof=draft published archived"`
}

// UpdateProductRequest represents a request to update a product.
// ClearCategory detaches the product from its category.
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=120"`
	Slug          *string          `json:"slug" binding:"omitempty,slug,max=140"`
	Description   *string          `json:"description" binding:"omitempty,max=5000"`
	Price         *decimal.Decimal `json:"price"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	ClearCategory bool             `json:"clear_category"`
	IsActive      *bool            `json:"is_active"`
	Status        *string          `json:"status" binding:"omitempty,oneof=draft published archived"`
}

// ProductListQuery represents the public product listing parameters
type ProductListQuery struct {
	Search     string     `form:"q" binding:"max=100"`
	CategoryID *uuid.UUID `form:"category_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	Status      string          `json:"status"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		IsActive:    p.IsActive,
		Status:      string(p.Status),
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// CreateProductTagRequest represents a request to tag a product. Weight
// defaults to 1 when omitted.
type CreateProductTagRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	TagID     uuid.UUID `json:"tag_id" binding:"required"`
	Weight    *int      `json:"weight" binding:"omitempty,min=0,max=32767"`
}

// UpdateProductTagRequest represents a request to change a link's weight
type UpdateProductTagRequest struct {
	Weight *int `json:"weight" binding:"omitempty,min=0,max=32767"`
}

// ProductTagResponse represents a product-tag link in API responses
type ProductTagResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	TagID     uuid.UUID `json:"tag_id"`
	Weight    int       `json:"weight"`
	AddedAt   time.Time `json:"added_at"`
}

// ToProductTagResponse converts a domain link to a response
func ToProductTagResponse(pt *catalog.ProductTag) ProductTagResponse {
	return ProductTagResponse{
		ID:        pt.ID,
		ProductID: pt.ProductID,
		TagID:     pt.TagID,
		Weight:    pt.Weight,
		AddedAt:   pt.AddedAt,
	}
}
