package catalog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxProductNameLength is the width of products.name
const MaxProductNameLength = 120

// Price column is NUMERIC(10,2)
const (
	PriceMaxDigits        = 10
	PriceDecimalPlaces    = 2
	priceMaxIntegerDigits = PriceMaxDigits - PriceDecimalPlaces
)

// ProductStatus represents the publication status of a product
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"
)

// IsValid reports whether s is a known status
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusArchived:
		return true
	}
	return false
}

// Product is a sellable catalog item.
//
// Among active products both the name and the slug are unique ignoring case;
// inactive rows are exempt so historical duplicates can be kept.
type Product struct {
	shared.BaseEntity
	shared.EventRecorder
	CategoryID  *uuid.UUID
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	IsActive    bool
	Status      ProductStatus
	PublishedAt *time.Time
}

// NewProduct creates an active draft product
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	p := &Product{
		BaseEntity: shared.NewBaseEntity(),
		Price:      decimal.Zero,
		IsActive:   true,
		Status:     ProductStatusDraft,
	}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}

	p.Record(NewProductCreatedEvent(p))
	return p, nil
}

// Rename changes the product name. The slug is left alone.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return newValidationError(CodeInvalidName, "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxProductNameLength {
		return newValidationError(CodeInvalidName, fmt.Sprintf("Product name cannot exceed %d characters", MaxProductNameLength))
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetSlug sets an explicit slug. An empty value asks for one to be derived
// from the name on the next save.
func (p *Product) SetSlug(slug string) error {
	slug = strings.TrimSpace(slug)
	if err := validateSlug(CodeInvalidSlug, slug, MaxProductSlugLength); err != nil {
		return err
	}
	p.Slug = slug
	p.Touch()
	return nil
}

// SetDescription sets the free-text description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.Touch()
}

// SetPrice sets the price. It must be non-negative and fit NUMERIC(10,2).
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	p.Price = price
	p.Touch()
	return nil
}

// SetCategory assigns or clears the category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
}

// Activate makes the product take part in the active-row uniqueness rules
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
}

// Deactivate exempts the product from the active-row uniqueness rules
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}

// SetStatus moves the product to any status. Entering published or archived
// goes through Publish or Archive.
func (p *Product) SetStatus(status ProductStatus) error {
	if !status.IsValid() {
		return newValidationError(CodeInvalidStatus, fmt.Sprintf("Unknown product status %q", status))
	}
	if status == p.Status {
		return nil
	}
	switch status {
	case ProductStatusPublished:
		p.Publish()
		return nil
	case ProductStatusArchived:
		p.Archive()
		return nil
	}
	p.Status = status
	p.Touch()
	return nil
}

// Publish moves the product to published. It is a no-op when the product is
// already published. PublishedAt is set only if it has never been set, so a
// product keeps its first publication date across unpublish/republish.
// Returns true if the status changed.
func (p *Product) Publish() bool {
	if p.Status == ProductStatusPublished {
		return false
	}
	first := p.PublishedAt == nil
	p.Status = ProductStatusPublished
	p.stampPublication()
	p.Touch()
	p.Record(NewProductPublishedEvent(p, first))
	return true
}

// Archive moves the product to archived. Returns true if the status changed.
func (p *Product) Archive() bool {
	if p.Status == ProductStatusArchived {
		return false
	}
	p.Status = ProductStatusArchived
	p.Touch()
	p.Record(NewProductArchivedEvent(p))
	return true
}

// IsPublished reports whether the product is visible in the storefront
func (p *Product) IsPublished() bool {
	return p.IsActive && p.Status == ProductStatusPublished
}

// EnsureSlug derives a slug from the name when none is set. The first of
// base, base-2, base-3, ... that taken reports free wins; taken must only
// consider other active products.
func (p *Product) EnsureSlug(taken SlugTakenFunc) error {
	if p.Slug != "" {
		return nil
	}
	base := Slugify(p.Name)
	if base == "" {
		base = DefaultProductSlugBase
	}
	slug, err := UniqueSlug(base, MaxProductSlugLength, taken)
	if err != nil {
		return err
	}
	p.Slug = slug
	return nil
}

// PrepareSave runs the bookkeeping every save performs: slug derivation and
// the publication timestamp for rows saved as published.
func (p *Product) PrepareSave(taken SlugTakenFunc) error {
	if err := p.EnsureSlug(taken); err != nil {
		return err
	}
	if p.Status == ProductStatusPublished {
		p.stampPublication()
	}
	return nil
}

func (p *Product) stampPublication() {
	if p.PublishedAt == nil {
		now := shared.Now()
		p.PublishedAt = &now
	}
}

// ValidatePrice checks a price against the products.price column
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return newValidationError(CodeInvalidPrice, "Price cannot be negative")
	}
	if -price.Exponent() > PriceDecimalPlaces && !price.Equal(price.Round(PriceDecimalPlaces)) {
		return newValidationError(CodeInvalidPrice, fmt.Sprintf("Price cannot have more than %d decimal places", PriceDecimalPlaces))
	}
	if len(price.Truncate(0).Abs().String()) > priceMaxIntegerDigits {
		return newValidationError(CodeInvalidPrice, fmt.Sprintf("Price cannot have more than %d digits before the decimal point", priceMaxIntegerDigits))
	}
	return nil
}
