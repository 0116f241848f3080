package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	events       shared.EventPublisher
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	events shared.EventPublisher,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		events:       events,
	}
}

// List returns a page of all products, active or not
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	return s.list(ctx, catalog.ProductQuery{}, filter)
}

// ListPublished returns a page of the products visible in the storefront
func (s *ProductService) ListPublished(ctx context.Context, q ProductListQuery) ([]ProductResponse, int64, error) {
	query := catalog.Published().WithSearch(q.Search)
	if q.CategoryID != nil {
		query = query.InCategory(*q.CategoryID)
	}
	return s.list(ctx, query, shared.Filter{Page: q.Page, PageSize: q.PageSize})
}

// ListByCategory returns a page of the published products of one category
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	return s.list(ctx, catalog.Published().InCategory(categoryID), filter)
}

func (s *ProductService) list(ctx context.Context, query catalog.ProductQuery, filter shared.Filter) ([]ProductResponse, int64, error) {
	filter = filter.Normalize()
	products, err := s.productRepo.FindAll(ctx, query, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, query, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Get retrieves a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetPublishedBySlug retrieves a storefront product by slug, ignoring case.
// Drafts, archived and inactive products are reported as not found.
func (s *ProductService) GetPublishedBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsPublished() {
		return nil, shared.ErrNotFound
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create creates a new product. A blank slug is derived from the name when
// the product is saved.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (resp *ProductResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create")
	defer endSpan(span, &err)

	if req.Price == nil {
		return nil, shared.NewDomainError(catalog.CodeInvalidPrice, "Price is required")
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.Name, *req.Price)
	if err != nil {
		return nil, err
	}
	if req.Slug != "" {
		if err := product.SetSlug(req.Slug); err != nil {
			return nil, err
		}
	}
	product.SetDescription(req.Description)
	product.SetCategory(req.CategoryID)
	if req.IsActive != nil && !*req.IsActive {
		product.Deactivate()
	}
	if req.Status != "" {
		if err := product.SetStatus(catalog.ProductStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	dispatch(ctx, s.events, product)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrProductID, product.ID.String(),
		telemetry.SpanAttrSlug, product.Slug,
	)
	r := ToProductResponse(product)
	return &r, nil
}

// Update changes the given fields of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (resp *ProductResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "update", telemetry.SpanAttrProductID, id.String())
	defer endSpan(span, &err)

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Slug != nil {
		if err := product.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		product.SetDescription(*req.Description)
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	switch {
	case req.ClearCategory:
		product.SetCategory(nil)
	case req.CategoryID != nil:
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}
	if req.Status != nil {
		if err := product.SetStatus(catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	dispatch(ctx, s.events, product)

	r := ToProductResponse(product)
	return &r, nil
}

// Delete deletes a product and its tag links
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "delete", telemetry.SpanAttrProductID, id.String())
	defer endSpan(span, &err)

	return s.productRepo.Delete(ctx, id)
}

// Publish moves a product to published. Publishing a published product
// changes nothing; the first publication date is kept on republish.
func (s *ProductService) Publish(ctx context.Context, id uuid.UUID) (resp *ProductResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "publish", telemetry.SpanAttrProductID, id.String())
	defer endSpan(span, &err)

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Publish() {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
		dispatch(ctx, s.events, product)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrStatus, string(product.Status))
	r := ToProductResponse(product)
	return &r, nil
}

// Archive moves a product to archived
func (s *ProductService) Archive(ctx context.Context, id uuid.UUID) (resp *ProductResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "archive", telemetry.SpanAttrProductID, id.String())
	defer endSpan(span, &err)

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Archive() {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
		dispatch(ctx, s.events, product)
	}

	r := ToProductResponse(product)
	return &r, nil
}

// Reslug assigns slugs to every product whose slug is blank and returns how
// many were updated. A product that fails to save is logged and skipped.
func (s *ProductService) Reslug(ctx context.Context) (updated int, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "reslug")
	defer endSpan(span, &err)

	products, err := s.productRepo.FindWithoutSlug(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to find products without slug: %w", err)
	}

	var failed error
	for i := range products {
		product := &products[i]
		if err := s.productRepo.Save(ctx, product); err != nil {
			logger.FromContext(ctx).Warn("Failed to assign slug",
				zap.String("product_id", product.ID.String()),
				zap.String("name", product.Name),
				zap.Error(err),
			)
			failed = errors.Join(failed, err)
			continue
		}
		updated++
	}
	return updated, failed
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(catalog.CodeInvalidCategory, "Category not found")
		}
		return err
	}
	return nil
}
