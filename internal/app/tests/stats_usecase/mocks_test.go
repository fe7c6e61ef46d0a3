package statsusecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/repositories"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, userID string, profile entities.Profile) (*entities.User, error) {
	args := m.Called(ctx, userID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *mockUserRepository) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockActivityRepository struct {
	mock.Mock
}

func (m *mockActivityRepository) Create(ctx context.Context, activity *entities.Activity) (*entities.Activity, error) {
	args := m.Called(ctx, activity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Activity), args.Error(1)
}

func (m *mockActivityRepository) FindByID(ctx context.Context, id string) (*entities.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Activity), args.Error(1)
}

func (m *mockActivityRepository) List(ctx context.Context, viewerID string, filter repositories.ActivityFilter) ([]*entities.Activity, error) {
	args := m.Called(ctx, viewerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Activity), args.Error(1)
}

func (m *mockActivityRepository) Update(ctx context.Context, activity *entities.Activity) (*entities.Activity, error) {
	args := m.Called(ctx, activity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Activity), args.Error(1)
}

func (m *mockActivityRepository) AddFeedback(ctx context.Context, activityID string, feedback entities.Feedback) error {
	return m.Called(ctx, activityID, feedback).Error(0)
}

func (m *mockActivityRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockActivityRepository) CountUpcomingDeadlines(ctx context.Context, userID string, until time.Time) (int, error) {
	args := m.Called(ctx, userID, until)
	return args.Int(0), args.Error(1)
}

func (m *mockActivityRepository) Delete(ctx context.Context, id string) error {
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
