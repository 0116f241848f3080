package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/telemetry"
)

// ProductTagService handles product-tag links
type ProductTagService struct {
	linkRepo    catalog.ProductTagRepository
	productRepo catalog.ProductRepository
	tagRepo     catalog.TagRepository
	events      shared.EventPublisher
}

// NewProductTagService creates a new ProductTagService. events may be nil.
func NewProductTagService(
	linkRepo catalog.ProductTagRepository,
	productRepo catalog.ProductRepository,
	tagRepo catalog.TagRepository,
	events shared.EventPublisher,
) *ProductTagService {
	return &ProductTagService{
		linkRepo:    linkRepo,
		productRepo: productRepo,
		tagRepo:     tagRepo,
		events:      events,
	}
}

// List returns a page of links
func (s *ProductTagService) List(ctx context.Context, filter shared.Filter) ([]ProductTagResponse, int64, error) {
	filter = filter.Normalize()
	links, err := s.linkRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.linkRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductTagResponse, len(links))
	for i := range links {
		responses[i] = ToProductTagResponse(&links[i])
	}
	return responses, total, nil
}

// Get retrieves a link by ID
func (s *ProductTagService) Get(ctx context.Context, id uuid.UUID) (*ProductTagResponse, error) {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductTagResponse(link)
	return &resp, nil
}

// ListForProduct returns the tags attached to a product
func (s *ProductTagService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]TagResponse, error) {
	links, err := s.linkRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(links))
	for i := range links {
		ids[i] = links[i].TagID
	}
	tags, err := s.tagRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Tag, len(tags))
	for i := range tags {
		byID[tags[i].ID] = &tags[i]
	}

	// keep the link order: heaviest first
	responses := make([]TagResponse, 0, len(tags))
	for _, id := range ids {
		if tag, ok := byID[id]; ok {
			responses = append(responses, ToTagResponse(tag))
		}
	}
	return responses, nil
}

// Create tags a product. Weight defaults to 1 when omitted.
func (s *ProductTagService) Create(ctx context.Context, req CreateProductTagRequest) (resp *ProductTagResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_tag", "create",
		telemetry.SpanAttrProductID, req.ProductID.String(),
		telemetry.SpanAttrTagID, req.TagID.String(),
	)
	defer endSpan(span, &err)

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(catalog.CodeInvalidProduct, "Product not found")
		}
		return nil, err
	}
	if _, err := s.tagRepo.FindByID(ctx, req.TagID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(catalog.CodeInvalidTag, "Tag not found")
		}
		return nil, err
	}

	exists, err := s.linkRepo.Exists(ctx, req.ProductID, req.TagID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(catalog.CodeAlreadyTagged, "Product already has this tag")
	}

	weight := catalog.DefaultTagWeight
	if req.Weight != nil {
		weight = *req.Weight
	}
	link, err := catalog.NewProductTag(req.ProductID, req.TagID, weight)
	if err != nil {
		return nil, err
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}
	dispatch(ctx, s.events, link)

	r := ToProductTagResponse(link)
	return &r, nil
}

// Update changes the weight of a link
func (s *ProductTagService) Update(ctx context.Context, id uuid.UUID, req UpdateProductTagRequest) (resp *ProductTagResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_tag", "update")
	defer endSpan(span, &err)

	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Weight != nil {
		if err := link.SetWeight(*req.Weight); err != nil {
			return nil, err
		}
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}
	r := ToProductTagResponse(link)
	return &r, nil
}

// Delete removes a link
func (s *ProductTagService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_tag", "delete")
	defer endSpan(span, &err)

	return s.linkRepo.Delete(ctx, id)
}
