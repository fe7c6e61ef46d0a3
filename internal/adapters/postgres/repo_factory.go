package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"studenthub/internal/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo     repositories.UserRepository
	activityRepo repositories.ActivityRepository
	resourceRepo repositories.ResourceRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:     NewUserRepository(pool),
		activityRepo: NewActivityRepository(pool),
		resourceRepo: NewResourceRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// ActivityRepository возвращает репозиторий активностей.
func (f *RepositoryFactory) ActivityRepository() repositories.ActivityRepository {
	return f.activityRepo
}

// ResourceRepository возвращает репозиторий ресурсов.
func (f *RepositoryFactory) ResourceRepository() repositories.ResourceRepository {
	return f.resourceRepo
}
