package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveBySlug finds the active product holding slug, ignoring case.
// At most one can exist thanks to product_slug_ci_unique_active.
func (r *GormProductRepository) FindActiveBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND lower(slug) = ?", true, foldCase(slug)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists products matching query, newest first by default
func (r *GormProductRepository) FindAll(ctx context.Context, q catalog.ProductQuery, filter shared.Filter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	query := r.scope(r.db.WithContext(ctx).Model(&models.ProductModel{}), q, filter)
	query = paginate(query.Order(orderClause(filter, ProductSortFields, "created_at DESC")), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// Count counts products matching query and filter
func (r *GormProductRepository) Count(ctx context.Context, q catalog.ProductQuery, filter shared.Filter) (int64, error) {
	var count int64
	query := r.scope(r.db.WithContext(ctx).Model(&models.ProductModel{}), q, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindWithoutSlug returns products whose slug is blank, oldest first
func (r *GormProductRepository) FindWithoutSlug(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("slug = ?", "").
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// Save creates or updates a product. Slug derivation and the publication
// stamp run inside the same transaction as the write; a concurrent writer
// taking the same slug is still caught by product_slug_ci_unique_active.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken := func(candidate string) (bool, error) {
			return slugTaken(tx, candidate, product.ID)
		}
		if err := product.PrepareSave(taken); err != nil {
			return err
		}
		return tx.Save(models.ProductModelFromDomain(product)).Error
	})
	return TranslateError(err)
}

// Delete deletes a product and, through the cascade, its tag links
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SlugTaken reports whether an active product other than excludeID holds
// slug, ignoring case
func (r *GormProductRepository) SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	return slugTaken(r.db.WithContext(ctx), slug, excludeID)
}

func slugTaken(db *gorm.DB, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := db.Model(&models.ProductModel{}).
		Where("is_active = ? AND lower(slug) = ? AND id <> ?", true, foldCase(slug), excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// scope narrows query to q. A search term on the query wins over the
// filter's generic one.
func (r *GormProductRepository) scope(query *gorm.DB, q catalog.ProductQuery, filter shared.Filter) *gorm.DB {
	if q.ActiveOnly || q.PublishedOnly {
		query = query.Where("is_active = ?", true)
	}
	if q.PublishedOnly {
		query = query.Where("status = ?", catalog.ProductStatusPublished)
	} else if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}

	term := q.Search
	if term == "" {
		term = filter.Search
	}
	if term != "" {
		pattern := containsPattern(term)
		query = query.Where(`(lower(name) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return query
}

func productsToDomain(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
