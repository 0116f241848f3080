package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeCategory   = "Category"
	AggregateTypeTag        = "Tag"
	AggregateTypeProduct    = "Product"
	AggregateTypeProductTag = "ProductTag"
)

// Event type constants
const (
	EventTypeCategoryCreated  = "CategoryCreated"
	EventTypeCategoryDeleted  = "CategoryDeleted"
	EventTypeTagCreated       = "TagCreated"
	EventTypeProductCreated   = "ProductCreated"
	EventTypeProductPublished = "ProductPublished"
	EventTypeProductArchived  = "ProductArchived"
	EventTypeProductTagged    = "ProductTagged"
)

// CategoryCreatedEvent is published when a new category is created
type CategoryCreatedEvent struct {
	shared.BaseDomainEvent
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// NewCategoryCreatedEvent creates a new CategoryCreatedEvent
func NewCategoryCreatedEvent(c *Category) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryCreated, AggregateTypeCategory, c.ID),
		Name:            c.Name,
		Slug:            c.Slug,
		ParentID:        c.ParentID,
	}
}

// CategoryDeletedEvent is published when a category is deleted
type CategoryDeletedEvent struct {
	shared.BaseDomainEvent
	Slug string `json:"slug"`
}

// NewCategoryDeletedEvent creates a new CategoryDeletedEvent
func NewCategoryDeletedEvent(c *Category) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryDeleted, AggregateTypeCategory, c.ID),
		Slug:            c.Slug,
	}
}

// TagCreatedEvent is published when a new tag is created
type TagCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewTagCreatedEvent creates a new TagCreatedEvent
func NewTagCreatedEvent(t *Tag) *TagCreatedEvent {
	return &TagCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTagCreated, AggregateTypeTag, t.ID),
		Name:            t.Name,
		Slug:            t.Slug,
	}
}

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		Name:            p.Name,
		Price:           p.Price,
	}
}

// ProductPublishedEvent is published when a product enters the published status
type ProductPublishedEvent struct {
	shared.BaseDomainEvent
	Name        string     `json:"name"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	// FirstPublication is false when the product had been published before
	FirstPublication bool `json:"first_publication"`
}

// NewProductPublishedEvent creates a new ProductPublishedEvent
func NewProductPublishedEvent(p *Product, first bool) *ProductPublishedEvent {
	return &ProductPublishedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeProductPublished, AggregateTypeProduct, p.ID),
		Name:             p.Name,
		CategoryID:       p.CategoryID,
		PublishedAt:      p.PublishedAt,
		FirstPublication: first,
	}
}

// ProductArchivedEvent is published when a product is archived
type ProductArchivedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductArchivedEvent creates a new ProductArchivedEvent
func NewProductArchivedEvent(p *Product) *ProductArchivedEvent {
	return &ProductArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductArchived, AggregateTypeProduct, p.ID),
		Name:            p.Name,
	}
}

// ProductTaggedEvent is published when a tag is attached to a product
type ProductTaggedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	TagID     uuid.UUID `json:"tag_id"`
	Weight    int       `json:"weight"`
}

// NewProductTaggedEvent creates a new ProductTaggedEvent
func NewProductTaggedEvent(pt *ProductTag) *ProductTaggedEvent {
	return &ProductTaggedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductTagged, AggregateTypeProductTag, pt.ID),
		ProductID:       pt.ProductID,
		TagID:           pt.TagID,
		Weight:          pt.Weight,
	}
}
