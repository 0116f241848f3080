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

// GormTagRepository implements TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by its ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a tag by slug, ignoring case
func (r *GormTagRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).First(&model, "lower(slug) = ?", foldCase(slug)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the tags with the given IDs, ordered by name
func (r *GormTagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Tag, error) {
	if len(ids) == 0 {
		return []catalog.Tag{}, nil
	}

	var rows []models.TagModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return tagsToDomain(rows), nil
}

// FindAll finds tags matching the filter, ordered by name by default
func (r *GormTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Tag, error) {
	var rows []models.TagModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.TagModel{}), filter)
	query = paginate(query.Order(orderClause(filter, TagSortFields, "name ASC")), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return tagsToDomain(rows), nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *catalog.Tag) error {
	return TranslateError(r.db.WithContext(ctx).Save(models.TagModelFromDomain(tag)).Error)
}

// Delete deletes a tag and, through the cascade, its product links
func (r *GormTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TagModel{}, "id = ?", id)
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tags matching the filter
func (r *GormTagRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.TagModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTagRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where(`(lower(name) LIKE ? ESCAPE '\' OR lower(slug) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return query
}

func tagsToDomain(rows []models.TagModel) []catalog.Tag {
	tags := make([]catalog.Tag, len(rows))
	for i := range rows {
		tags[i] = *rows[i].ToDomain()
	}
	return tags
}

var _ catalog.TagRepository = (*GormTagRepository)(nil)
