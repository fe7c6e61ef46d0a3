package router_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/api"
	"studenthub/internal/ports/repositories"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input *api.RegisterInput) (*api.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return m.Called(ctx, userID, currentPassword, newPassword).Error(0)
}

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateProfile(ctx context.Context, userID string, patch *api.ProfilePatch) (*entities.User, error) {
	args := m.Called(ctx, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserUseCase) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

type MockActivityUseCase struct {
	mock.Mock
}

func (m *MockActivityUseCase) List(ctx context.Context, actor api.Actor, filter repositories.ActivityFilter) ([]*entities.Activity, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Activity), args.Error(1)
}

func (m *MockActivityUseCase) Create(ctx context.Context, actor api.Actor, input *api.ActivityInput) (*entities.Activity, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Activity), args.Error(1)
}

func (m *MockActivityUseCase) Update(ctx context.Context, actor api.Actor, activityID string, patch *api.ActivityPatch) (*entities.Activity, error) {
	args := m.Called(ctx, actor, activityID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Activity), args.Error(1)
}

func (m *MockActivityUseCase) AddFeedback(ctx context.Context, actor api.Actor, activityID, comment string, rating int) error {
	return m.Called(ctx, actor, activityID, comment, rating).Error(0)
}

type MockResourceUseCase struct {
	mock.Mock
}

func (m *MockResourceUseCase) List(ctx context.Context, actor api.Actor, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Resource), args.Error(1)
}

func (m *MockResourceUseCase) Create(ctx context.Context, actor api.Actor, input *api.ResourceInput) (*entities.Resource, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Resource), args.Error(1)
}

func (m *MockResourceUseCase) Update(ctx context.Context, actor api.Actor, resourceID string, patch *api.ResourcePatch) (*entities.Resource, error) {
	args := m.Called(ctx, actor, resourceID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Resource), args.Error(1)
}

func (m *MockResourceUseCase) IncrementStat(ctx context.Context, resourceID string, stat entities.StatName) error {
	return m.Called(ctx, resourceID, stat).Error(0)
}

func (m *MockResourceUseCase) AddComment(ctx context.Context, actor api.Actor, resourceID, text string) error {
	return m.Called(ctx, actor, resourceID, text).Error(0)
}

type MockStatsUseCase struct {
	mock.Mock
}

func (m *MockStatsUseCase) GetStudentStats(ctx context.Context, userID string) (*api.StudentStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.StudentStats), args.Error(1)
}
