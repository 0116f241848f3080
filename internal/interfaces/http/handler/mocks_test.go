package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) ListPublished(ctx context.Context, q catalogapp.ProductListQuery) ([]catalogapp.ProductResponse, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]catalogapp.ProductResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductReader) GetPublishedBySlug(ctx context.Context, slug string) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductReader) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalogapp.ProductResponse, int64, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]catalogapp.ProductResponse), args.Get(1).(int64), args.Error(2)
}

type MockProductTagReader struct {
	mock.Mock
}

func (m *MockProductTagReader) ListForProduct(ctx context.Context, productID uuid.UUID) ([]catalogapp.TagResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.TagResponse), args.Error(1)
}

type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) Tree(ctx context.Context) ([]catalogapp.CategoryTreeNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.CategoryTreeNode), args.Error(1)
}

func (m *MockCategoryReader) GetByPath(ctx context.Context, slugs ...string) ([]catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.CategoryResponse), args.Error(1)
}
