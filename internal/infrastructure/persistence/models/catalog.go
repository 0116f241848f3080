package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for catalog.Category
type CategoryModel struct {
	BaseModel
	Name     string     `gorm:"type:varchar(80);not null"`
	Slug     string     `gorm:"type:varchar(100);not null"`
	ParentID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Slug:       m.Slug,
		ParentID:   m.ParentID,
	}
}

// FromDomain populates the model from a domain Category
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Slug = c.Slug
	m.ParentID = c.ParentID
}

// CategoryModelFromDomain creates a model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// TagModel is the persistence model for catalog.Tag
type TagModel struct {
	BaseModel
	Name string `gorm:"type:varchar(40);not null"`
	Slug string `gorm:"type:varchar(60);not null"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// ToDomain converts the model to a domain Tag
func (m *TagModel) ToDomain() *catalog.Tag {
	return &catalog.Tag{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Slug:       m.Slug,
	}
}

// TagModelFromDomain creates a model from a domain Tag
func TagModelFromDomain(t *catalog.Tag) *TagModel {
	m := &TagModel{Name: t.Name, Slug: t.Slug}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	BaseModel
	CategoryID  *uuid.UUID            `gorm:"type:uuid"`
	Name        string                `gorm:"type:varchar(120);not null"`
	Slug        string                `gorm:"type:varchar(140);not null"`
	Description string                `gorm:"type:text;not null"`
	Price       decimal.Decimal       `gorm:"type:numeric(10,2);not null"`
	IsActive    bool                  `gorm:"not null"`
	Status      catalog.ProductStatus `gorm:"type:varchar(10);not null"`
	PublishedAt *time.Time
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       m.Price,
		IsActive:    m.IsActive,
		Status:      m.Status,
		PublishedAt: m.PublishedAt,
	}
}

// FromDomain populates the model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.CategoryID = p.CategoryID
	m.Name = p.Name
	m.Slug = p.Slug
	m.Description = p.Description
	m.Price = p.Price
	m.IsActive = p.IsActive
	m.Status = p.Status
	m.PublishedAt = p.PublishedAt
}

// ProductModelFromDomain creates a model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductTagModel is the persistence model for catalog.ProductTag
type ProductTagModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	TagID     uuid.UUID `gorm:"type:uuid;not null"`
	Weight    int16     `gorm:"not null"`
	AddedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductTagModel) TableName() string {
	return "product_tags"
}

// ToDomain converts the model to a domain ProductTag
func (m *ProductTagModel) ToDomain() *catalog.ProductTag {
	return &catalog.ProductTag{
		ID:        m.ID,
		ProductID: m.ProductID,
		TagID:     m.TagID,
		Weight:    int(m.Weight),
		AddedAt:   m.AddedAt,
	}
}

// ProductTagModelFromDomain creates a model from a domain ProductTag
func ProductTagModelFromDomain(pt *catalog.ProductTag) *ProductTagModel {
	return &ProductTagModel{
		ID:        pt.ID,
		ProductID: pt.ProductID,
		TagID:     pt.TagID,
		Weight:    int16(pt.Weight),
		AddedAt:   pt.AddedAt,
	}
}
