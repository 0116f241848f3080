package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxCategoryNameLength is the width of categories.name
const MaxCategoryNameLength = 80

// Category is a node of the catalog taxonomy. Nodes form an adjacency list
// through ParentID; a nil ParentID marks a root.
type Category struct {
	shared.BaseEntity
	shared.EventRecorder
	Name     string
	Slug     string
	ParentID *uuid.UUID
}

// NewCategory creates a category. A blank slug is derived from the name.
func NewCategory(name, slug string, parentID *uuid.UUID) (*Category, error) {
	c := &Category{
		BaseEntity: shared.NewBaseEntity(),
		ParentID:   parentID,
	}
	if err := c.apply(name, slug); err != nil {
		return nil, err
	}

	c.Record(NewCategoryCreatedEvent(c))
	return c, nil
}

// Update changes the name and slug
func (c *Category) Update(name, slug string) error {
	if err := c.apply(name, slug); err != nil {
		return err
	}
	c.Touch()
	return nil
}

// MoveTo changes the parent. Cycle detection needs the rest of the tree and
// is done by the application service; a direct self-reference is also
// rejected by the cat_no_self_parent check.
func (c *Category) MoveTo(parentID *uuid.UUID) {
	c.ParentID = parentID
	c.Touch()
}

// IsRoot returns true if the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// IsChildOf reports whether parent is the direct parent of c
func (c *Category) IsChildOf(parent *Category) bool {
	return parent != nil && c.ParentID != nil && *c.ParentID == parent.ID
}

// DisplayName renders "Parent > Child" when the parent is known
func (c *Category) DisplayName(parent *Category) string {
	if c.IsChildOf(parent) {
		return fmt.Sprintf("%s > %s", parent.Name, c.Name)
	}
	return c.Name
}

func (c *Category) apply(name, slug string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = truncateSlug(Slugify(name), MaxCategorySlugLength)
	}
	if err := validateSlug(CodeInvalidSlug, slug, MaxCategorySlugLength); err != nil {
		return err
	}
	if slug == "" {
		return newValidationError(CodeInvalidSlug, "Category slug cannot be derived from the name; provide one")
	}
	c.Name = name
	c.Slug = slug
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return newValidationError(CodeInvalidName, "Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return newValidationError(CodeInvalidName, fmt.Sprintf("Category name cannot exceed %d characters", MaxCategoryNameLength))
	}
	return nil
}
