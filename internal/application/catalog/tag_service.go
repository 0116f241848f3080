package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/telemetry"
)

// TagService handles tag-related business operations
type TagService struct {
	tagRepo catalog.TagRepository
	events  shared.EventPublisher
}

// NewTagService creates a new TagService. events may be nil.
func NewTagService(tagRepo catalog.TagRepository, events shared.EventPublisher) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		events:  events,
	}
}

// List returns a page of tags
func (s *TagService) List(ctx context.Context, filter shared.Filter) ([]TagResponse, int64, error) {
	filter = filter.Normalize()
	tags, err := s.tagRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tagRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TagResponse, len(tags))
	for i := range tags {
		responses[i] = ToTagResponse(&tags[i])
	}
	return responses, total, nil
}

// Get retrieves a tag by ID
func (s *TagService) Get(ctx context.Context, id uuid.UUID) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTagResponse(tag)
	return &resp, nil
}

// Create creates a new tag
func (s *TagService) Create(ctx context.Context, req CreateTagRequest) (resp *TagResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tag", "create")
	defer endSpan(span, &err)

	tag, err := catalog.NewTag(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	dispatch(ctx, s.events, tag)

	telemetry.SetAttributes(span, telemetry.SpanAttrTagID, tag.ID.String())
	r := ToTagResponse(tag)
	return &r, nil
}

// Update renames a tag or changes its slug
func (s *TagService) Update(ctx context.Context, id uuid.UUID, req UpdateTagRequest) (resp *TagResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tag", "update", telemetry.SpanAttrTagID, id.String())
	defer endSpan(span, &err)

	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, slug := tag.Name, tag.Slug
	if req.Name != nil {
		name = *req.Name
	}
	if req.Slug != nil {
		slug = *req.Slug
	}
	if err := tag.Update(name, slug); err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	r := ToTagResponse(tag)
	return &r, nil
}

// Delete deletes a tag together with its product links
func (s *TagService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tag", "delete", telemetry.SpanAttrTagID, id.String())
	defer endSpan(span, &err)

	return s.tagRepo.Delete(ctx, id)
}
