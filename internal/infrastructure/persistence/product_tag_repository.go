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

// GormProductTagRepository implements ProductTagRepository using GORM
type GormProductTagRepository struct {
	db *gorm.DB
}

// NewGormProductTagRepository creates a new GormProductTagRepository
func NewGormProductTagRepository(db *gorm.DB) *GormProductTagRepository {
	return &GormProductTagRepository{db: db}
}

// FindByID finds a link by its ID
func (r *GormProductTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductTag, error) {
	var model models.ProductTagModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct returns the links of a product, heaviest first
func (r *GormProductTagRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductTag, error) {
	var rows []models.ProductTagModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("weight DESC, added_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return productTagsToDomain(rows), nil
}

// FindAll lists links, oldest first by default
func (r *GormProductTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductTag, error) {
	var rows []models.ProductTagModel
	query := r.db.WithContext(ctx).Model(&models.ProductTagModel{}).
		Order(orderClause(filter, ProductTagSortFields, "added_at ASC"))

	if err := paginate(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	return productTagsToDomain(rows), nil
}

// Exists reports whether productID is already linked to tagID
func (r *GormProductTagRepository) Exists(ctx context.Context, productID, tagID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductTagModel{}).
		Where("product_id = ? AND tag_id = ?", productID, tagID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a link
func (r *GormProductTagRepository) Save(ctx context.Context, link *catalog.ProductTag) error {
	return TranslateError(r.db.WithContext(ctx).Save(models.ProductTagModelFromDomain(link)).Error)
}

// Delete deletes a link
func (r *GormProductTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductTagModel{}, "id = ?", id)
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all links
func (r *GormProductTagRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductTagModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func productTagsToDomain(rows []models.ProductTagModel) []catalog.ProductTag {
	links := make([]catalog.ProductTag, len(rows))
	for i := range rows {
		links[i] = *rows[i].ToDomain()
	}
	return links
}

var _ catalog.ProductTagRepository = (*GormProductTagRepository)(nil)
