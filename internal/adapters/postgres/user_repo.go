// Package postgres реализует репозитории хранилища на основе pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"studenthub/internal/domain/entities"
	"studenthub/internal/domain/services"
	"studenthub/internal/ports/repositories"
	"studenthub/pkg/logger"
)

// Код ошибки Postgres для нарушения уникального ограничения.
const pgUniqueViolation = "23505"

// PgxPoolInterface определяет подмножество pgxpool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
        id, email, password_hash, role,
        first_name, last_name, student_id, avatar, department, year,
        social_links, gpa, attendance,
        completed_courses::text[], current_courses::text[],
        achievements, notifications, created_at, updated_at
`

// scanUser читает одну строку таблицы users в доменную сущность.
func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		user          entities.User
		year          *int
		socialLinks   []byte
		achievements  []byte
		notifications []byte
	)

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Profile.FirstName,
		&user.Profile.LastName,
		&user.Profile.StudentID,
		&user.Profile.Avatar,
		&user.Profile.Department,
		&year,
		&socialLinks,
		&user.AcademicInfo.GPA,
		&user.AcademicInfo.Attendance,
		&user.AcademicInfo.CompletedCourses,
		&user.AcademicInfo.CurrentCourses,
		&achievements,
		&notifications,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if year != nil {
		user.Profile.Year = *year
	}
	if err := json.Unmarshal(socialLinks, &user.Profile.SocialLinks); err != nil {
		return nil, fmt.Errorf("error decoding social links: %w", err)
	}
	if err := json.Unmarshal(achievements, &user.Achievements); err != nil {
		return nil, fmt.Errorf("error decoding achievements: %w", err)
	}
	if err := json.Unmarshal(notifications, &user.Notifications); err != nil {
		return nil, fmt.Errorf("error decoding notifications: %w", err)
	}

	return &user, nil
}

// yearParam преобразует нулевой год в NULL.
func yearParam(year int) *int {
	if year == 0 {
		return nil
	}
	return &year
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail находит пользователя по нормализованному email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, entities.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (
            email, password_hash, role,
            first_name, last_name, student_id, avatar, department, year,
            social_links
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + userColumns

	socialLinks, err := json.Marshal(user.Profile.SocialLinks)
	if err != nil {
		return nil, fmt.Errorf("error encoding social links: %w", err)
	}

	createdUser, err := scanUser(r.pool.QueryRow(ctx, query,
		entities.NormalizeEmail(user.Email),
		user.PasswordHash,
		user.Role,
		user.Profile.FirstName,
		user.Profile.LastName,
		user.Profile.StudentID,
		user.Profile.Avatar,
		user.Profile.Department,
		yearParam(user.Profile.Year),
		socialLinks,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Debug(ctx, "duplicate email", zap.String("email", user.Email))
			return nil, services.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return createdUser, nil
}

// UpdateProfile записывает профиль пользователя. Запрос не упоминает
// password_hash, поэтому обновление профиля не может изменить хэш.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, profile entities.Profile) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdateProfile"))

	query := `
        UPDATE users
        SET first_name = $2, last_name = $3, student_id = $4, avatar = $5,
            department = $6, year = $7, social_links = $8, updated_at = $9
        WHERE id = $1
        RETURNING ` + userColumns

	socialLinks, err := json.Marshal(profile.SocialLinks)
	if err != nil {
		return nil, fmt.Errorf("error encoding social links: %w", err)
	}

	updatedUser, err := scanUser(r.pool.QueryRow(ctx, query,
		userID,
		profile.FirstName,
		profile.LastName,
		profile.StudentID,
		profile.Avatar,
		profile.Department,
		yearParam(profile.Year),
		socialLinks,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for profile update", zap.String("id", userID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error updating profile", zap.Error(err))
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	return updatedUser, nil
}

// UpdatePasswordHash заменяет хэш пароля пользователя.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdatePasswordHash"))

	query := `
        UPDATE users
        SET password_hash = $2, updated_at = $3
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, userID, passwordHash, time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error updating password hash", zap.Error(err))
		return fmt.Errorf("error updating password hash: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for password update", zap.String("id", userID))
		return entities.ErrUserNotFound
	}

	return nil
}

// MarkNotificationRead помечает одно уведомление пользователя прочитанным.
func (r *UserRepository) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "MarkNotificationRead"))

	query := `
        UPDATE users
        SET notifications = (
                SELECT COALESCE(jsonb_agg(
                    CASE WHEN elem->>'id' = $2
                         THEN jsonb_set(elem, '{read}', 'true'::jsonb)
                         ELSE elem
                    END), '[]'::jsonb)
                FROM jsonb_array_elements(notifications) AS elem
            ),
            updated_at = $3
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, userID, notificationID, time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error marking notification read", zap.Error(err))
		return fmt.Errorf("error marking notification read: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for notification update", zap.String("id", userID))
		return entities.ErrUserNotFound
	}

	return nil
}

// Delete удаляет пользователя по ID.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	query := `
        DELETE FROM users
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.String("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}
