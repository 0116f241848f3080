package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shop/backend/internal/domain/shared"
)

// MaxTagNameLength is the width of tags.name
const MaxTagNameLength = 40

// Tag is a flat label. Name and slug are each globally unique, ignoring case.
type Tag struct {
	shared.BaseEntity
	shared.EventRecorder
	Name string
	Slug string
}

// NewTag creates a tag. A blank slug is derived from the name.
func NewTag(name, slug string) (*Tag, error) {
	t := &Tag{BaseEntity: shared.NewBaseEntity()}
	if err := t.apply(name, slug); err != nil {
		return nil, err
	}
	t.Record(NewTagCreatedEvent(t))
	return t, nil
}

// Update changes the name and slug
func (t *Tag) Update(name, slug string) error {
	if err := t.apply(name, slug); err != nil {
		return err
	}
	t.Touch()
	return nil
}

func (t *Tag) apply(name, slug string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return newValidationError(CodeInvalidName, "Tag name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxTagNameLength {
		return newValidationError(CodeInvalidName, fmt.Sprintf("Tag name cannot exceed %d characters", MaxTagNameLength))
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = truncateSlug(Slugify(name), MaxTagSlugLength)
	}
	if slug == "" {
		return newValidationError(CodeInvalidSlug, "Tag slug cannot be derived from the name; provide one")
	}
	if err := validateSlug(CodeInvalidSlug, slug, MaxTagSlugLength); err != nil {
		return err
	}
	t.Name = name
	t.Slug = slug
	return nil
}
