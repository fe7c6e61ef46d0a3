package resourceusecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/repositories"
)

type mockResourceRepository struct {
	mock.Mock
}

func (m *mockResourceRepository) Create(ctx context.Context, resource *entities.Resource) (*entities.Resource, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Resource), args.Error(1)
}

func (m *mockResourceRepository) FindByID(ctx context.Context, id string) (*entities.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Resource), args.Error(1)
}

func (m *mockResourceRepository) List(ctx context.Context, viewerID string, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	args := m.Called(ctx, viewerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Resource), args.Error(1)
}

func (m *mockResourceRepository) Update(ctx context.Context, resource *entities.Resource) (*entities.Resource, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Resource), args.Error(1)
}

func (m *mockResourceRepository) IncrementStat(ctx context.Context, resourceID string, stat entities.StatName) error {
	return m.Called(ctx, resourceID, stat).Error(0)
}

func (m *mockResourceRepository) AddComment(ctx context.Context, resourceID string, comment entities.Comment) error {
	return m.Called(ctx, resourceID, comment).Error(0)
}

func (m *mockResourceRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}
