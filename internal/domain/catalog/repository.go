package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by slug (ignoring case) under parentID; a nil
	// parentID searches the roots
	FindBySlug(ctx context.Context, parentID *uuid.UUID, slug string) (*Category, error)

	// FindAll finds all categories matching the filter, ordered by name by default
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindAllUnpaged returns every category ordered by name
	FindAllUnpaged(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// HasChildren checks if a category has any children
	HasChildren(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// HasProducts checks if any product references the category
	HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	FindBySlug(ctx context.Context, slug string) (*Tag, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Tag, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tag, error)
	Save(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProductQuery narrows a product listing
type ProductQuery struct {
	// ActiveOnly keeps rows with is_active = true
	ActiveOnly bool
	// PublishedOnly keeps active rows with status = published
	PublishedOnly bool
	// Search matches name or description, ignoring case
	Search     string
	CategoryID *uuid.UUID
	Status     ProductStatus
}

// Active returns the query for active products
func Active() ProductQuery {
	return ProductQuery{ActiveOnly: true}
}

// Published returns the query for products visible in the storefront
func Published() ProductQuery {
	return ProductQuery{ActiveOnly: true, PublishedOnly: true}
}

// WithSearch returns a copy of q that also matches term
func (q ProductQuery) WithSearch(term string) ProductQuery {
	q.Search = term
	return q
}

// InCategory returns a copy of q restricted to one category
func (q ProductQuery) InCategory(categoryID uuid.UUID) ProductQuery {
	q.CategoryID = &categoryID
	return q
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActiveBySlug finds the active product holding slug, ignoring case
	FindActiveBySlug(ctx context.Context, slug string) (*Product, error)

	// FindAll lists products matching query, newest first by default
	FindAll(ctx context.Context, query ProductQuery, filter shared.Filter) ([]Product, error)

	// Count counts products matching query and filter
	Count(ctx context.Context, query ProductQuery, filter shared.Filter) (int64, error)

	// FindWithoutSlug returns products whose slug is blank
	FindWithoutSlug(ctx context.Context) ([]Product, error)

	// Save creates or updates a product. Before writing it derives a missing
	// slug against the other active rows and stamps published_at if needed,
	// in the same transaction.
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product and, through the cascade, its tag links
	Delete(ctx context.Context, id uuid.UUID) error

	// SlugTaken reports whether an active product other than excludeID holds
	// slug, ignoring case
	SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

// ProductTagRepository defines the interface for product-tag link persistence
type ProductTagRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductTag, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductTag, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductTag, error)
	Exists(ctx context.Context, productID, tagID uuid.UUID) (bool, error)
	Save(ctx context.Context, link *ProductTag) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
