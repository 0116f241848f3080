package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/telemetry"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	events       shared.EventPublisher
}

// NewCategoryService creates a new CategoryService. events may be nil.
func NewCategoryService(categoryRepo catalog.CategoryRepository, events shared.EventPublisher) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		events:       events,
	}
}

// List returns a page of categories
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, int64, error) {
	filter = filter.Normalize()
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, total, nil
}

// Get retrieves a category by ID
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (resp *CategoryResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "create")
	defer endSpan(span, &err)

	if req.ParentID != nil {
		if _, err := s.findParent(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	category, err := catalog.NewCategory(req.Name, req.Slug, req.ParentID)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	dispatch(ctx, s.events, category)

	telemetry.SetAttributes(span, telemetry.SpanAttrCategoryID, category.ID.String())
	r := ToCategoryResponse(category)
	return &r, nil
}

// Update changes the name, slug, or parent of a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (resp *CategoryResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "update", telemetry.SpanAttrCategoryID, id.String())
	defer endSpan(span, &err)

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Slug != nil {
		name, slug := category.Name, category.Slug
		if req.Name != nil {
			name = *req.Name
		}
		if req.Slug != nil {
			slug = *req.Slug
		}
		if err := category.Update(name, slug); err != nil {
			return nil, err
		}
	}

	switch {
	case req.ClearParent:
		category.MoveTo(nil)
	case req.ParentID != nil:
		if err := s.checkParent(ctx, category.ID, *req.ParentID); err != nil {
			return nil, err
		}
		category.MoveTo(req.ParentID)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	r := ToCategoryResponse(category)
	return &r, nil
}

// Delete deletes a category. A category that still has children or products
// cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "delete", telemetry.SpanAttrCategoryID, id.String())
	defer endSpan(span, &err)

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError(catalog.CodeHasChildren, "Cannot delete category with child categories")
	}

	hasProducts, err := s.categoryRepo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.NewDomainError(catalog.CodeHasProducts, "Cannot delete category with products")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	category.Record(catalog.NewCategoryDeletedEvent(category))
	dispatch(ctx, s.events, category)
	return nil
}

// Tree returns every category nested under its parent, roots first
func (s *CategoryService) Tree(ctx context.Context) ([]CategoryTreeNode, error) {
	categories, err := s.categoryRepo.FindAllUnpaged(ctx)
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(categories), nil
}

// GetByPath resolves a root-to-leaf slug path such as kitchen/mugs. It
// returns the chain of categories from the root to the leaf.
func (s *CategoryService) GetByPath(ctx context.Context, slugs ...string) ([]CategoryResponse, error) {
	chain := make([]CategoryResponse, 0, len(slugs))
	var parentID *uuid.UUID
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			continue
		}
		category, err := s.categoryRepo.FindBySlug(ctx, parentID, slug)
		if err != nil {
			return nil, err
		}
		chain = append(chain, ToCategoryResponse(category))
		id := category.ID
		parentID = &id
	}
	if len(chain) == 0 {
		return nil, shared.ErrNotFound
	}
	return chain, nil
}

func (s *CategoryService) findParent(ctx context.Context, parentID uuid.UUID) (*catalog.Category, error) {
	parent, err := s.categoryRepo.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(catalog.CodeInvalidParent, "Parent category not found")
		}
		return nil, err
	}
	return parent, nil
}

// checkParent rejects a parent that is the category itself or one of its
// descendants
func (s *CategoryService) checkParent(ctx context.Context, categoryID, parentID uuid.UUID) error {
	if parentID == categoryID {
		return shared.NewDomainError(catalog.CodeSelfParent, "Category cannot be its own parent")
	}

	parent, err := s.findParent(ctx, parentID)
	if err != nil {
		return err
	}

	visited := map[uuid.UUID]bool{parent.ID: true}
	for parent.ParentID != nil {
		ancestorID := *parent.ParentID
		if ancestorID == categoryID {
			return shared.NewDomainError(catalog.CodeCircularReference, "Cannot move category under its own descendant")
		}
		if visited[ancestorID] {
			return shared.NewDomainError(catalog.CodeCircularReference, "Category tree already contains a cycle")
		}
		visited[ancestorID] = true

		parent, err = s.categoryRepo.FindByID(ctx, ancestorID)
		if err != nil {
			return err
		}
	}
	return nil
}

// buildCategoryTree nests categories under their parents. A category whose
// parent is missing from the list is treated as a root.
func buildCategoryTree(categories []catalog.Category) []CategoryTreeNode {
	known := make(map[uuid.UUID]bool, len(categories))
	for i := range categories {
		known[categories[i].ID] = true
	}

	children := make(map[uuid.UUID][]*catalog.Category)
	var roots []*catalog.Category
	for i := range categories {
		c := &categories[i]
		if c.ParentID == nil || !known[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var build func(c *catalog.Category, prefix string) CategoryTreeNode
	build = func(c *catalog.Category, prefix string) CategoryTreeNode {
		node := CategoryTreeNode{
			ID:       c.ID,
			Name:     c.Name,
			Slug:     c.Slug,
			Path:     prefix + "/" + c.Slug,
			Children: make([]CategoryTreeNode, 0, len(children[c.ID])),
		}
		for _, child := range children[c.ID] {
			node.Children = append(node.Children, build(child, node.Path))
		}
		return node
	}

	tree := make([]CategoryTreeNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root, ""))
	}
	return tree
}
