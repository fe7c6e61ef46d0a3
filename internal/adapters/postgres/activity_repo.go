package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/repositories"
	"studenthub/pkg/logger"
)

// ActivityRepository реализует интерфейс repositories.ActivityRepository для работы с Postgres.
type ActivityRepository struct {
	pool PgxPoolInterface
}

// NewActivityRepository создает новый экземпляр репозитория активностей.
func NewActivityRepository(pool PgxPoolInterface) repositories.ActivityRepository {
	return &ActivityRepository{pool: pool}
}

const activityColumns = `
        id, user_id, type, title, description, status, progress,
        start_date, end_date, attachments, metrics, feedback,
        is_public, tags, created_at, updated_at
`

// scanActivity читает одну строку таблицы activities в доменную сущность.
func scanActivity(row pgx.Row) (*entities.Activity, error) {
	var (
		activity    entities.Activity
		attachments []byte
		metrics     []byte
		feedback    []byte
	)

	err := row.Scan(
		&activity.ID,
		&activity.UserID,
		&activity.Type,
		&activity.Title,
		&activity.Description,
		&activity.Status,
		&activity.Progress,
		&activity.StartDate,
		&activity.EndDate,
		&attachments,
		&metrics,
		&feedback,
		&activity.IsPublic,
		&activity.Tags,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(attachments, &activity.Attachments); err != nil {
		return nil, fmt.Errorf("error decoding attachments: %w", err)
	}
	if err := json.Unmarshal(metrics, &activity.Metrics); err != nil {
		return nil, fmt.Errorf("error decoding metrics: %w", err)
	}
	if err := json.Unmarshal(feedback, &activity.Feedback); err != nil {
		return nil, fmt.Errorf("error decoding feedback: %w", err)
	}

	return &activity, nil
}

// Create создает новую активность.
func (r *ActivityRepository) Create(ctx context.Context, activity *entities.Activity) (*entities.Activity, error) {
	log := logger.Log(ctx).With(zap.String("repository", "activity"), zap.String("method", "Create"))

	query := `
        INSERT INTO activities (
            user_id, type, title, description, status, progress,
            start_date, end_date, attachments, metrics, is_public, tags
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING ` + activityColumns

	attachments, err := json.Marshal(activity.Attachments)
	if err != nil {
		return nil, fmt.Errorf("error encoding attachments: %w", err)
	}
	metrics, err := json.Marshal(activity.Metrics)
	if err != nil {
		return nil, fmt.Errorf("error encoding metrics: %w", err)
	}

	created, err := scanActivity(r.pool.QueryRow(ctx, query,
		activity.UserID,
		activity.Type,
		activity.Title,
		activity.Description,
		activity.Status,
		activity.Progress,
		activity.StartDate,
		activity.EndDate,
		attachments,
		metrics,
		activity.IsPublic,
		activity.Tags,
	))
	if err != nil {
		log.Error(ctx, "error creating activity", zap.Error(err))
		return nil, fmt.Errorf("error creating activity: %w", err)
	}

	return created, nil
}

// FindByID находит активность по ID.
func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*entities.Activity, error) {
	log := logger.Log(ctx).With(zap.String("repository", "activity"), zap.String("method", "FindByID"))

	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`

	activity, err := scanActivity(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "activity not found", zap.String("id", id))
			return nil, entities.ErrActivityNotFound
		}
		log.Error(ctx, "error finding activity by id", zap.Error(err))
		return nil, fmt.Errorf("error querying activity by id: %w", err)
	}

	return activity, nil
}

// List возвращает активности пользователя и публичные активности,
// опционально сужая выборку по типу, статусу и полнотекстовому поиску.
func (r *ActivityRepository) List(ctx context.Context, viewerID string, filter repositories.ActivityFilter) ([]*entities.Activity, error) {
	log := logger.Log(ctx).With(zap.String("repository", "activity"), zap.String("method", "List"))

	query := `SELECT ` + activityColumns + `
        FROM activities
        WHERE (user_id = $1 OR is_public)`
	args := []interface{}{viewerID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		query += fmt.Sprintf(
			" AND to_tsvector('english', title || ' ' || description || ' ' || array_to_string(tags, ' ')) @@ plainto_tsquery('english', $%d)",
			len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error listing activities", zap.Error(err))
		return nil, fmt.Errorf("error listing activities: %w", err)
	}
	defer rows.Close()

	var activities []*entities.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			log.Error(ctx, "error scanning activity row", zap.Error(err))
			return nil, fmt.Errorf("error scanning activity row: %w", err)
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating activity rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}

// Update обновляет активность целиком.
func (r *ActivityRepository) Update(ctx context.Context, activity *entities.Activity) (*entities.Activity, error) {
	log := logger.Log(ctx).With(zap.String("repository", "activity"), zap.String("method", "Update"))

	query := `
        UPDATE activities
        SET type = $2, title = $3, description = $4, status = $5, progress = $6,
            start_date = $7, end_date = $8, attachments = $9, metrics = $10,
            is_public = $11, tags = $12, updated_at = $13
        WHERE id = $1
        RETURNING ` + activityColumns

	attachments, err := json.Marshal(activity.Attachments)
	if err != nil {
		return nil, fmt.Errorf("error encoding attachments: %w", err)
	}
	metrics, err := json.Marshal(activity.Metrics)
	if err != nil {
		return nil, fmt.Errorf("error encoding metrics: %w", err)
	}

	updated, err := scanActivity(r.pool.QueryRow(ctx, query,
		activity.ID,
		activity.Type,
		activity.Title,
		activity.Description,
		activity.Status,
		activity.Progress,
		activity.StartDate,
		activity.EndDate,
		attachments,
		metrics,
		activity.IsPublic,
		activity.Tags,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "activity not found for update", zap.String("id", activity.ID))
			return nil, entities.ErrActivityNotFound
		}
		log.Error(ctx, "error updating activity", zap.Error(err))
		return nil, fmt.Errorf("error updating activity: %w", err)
	}

	return updated, nil
}

// AddFeedback добавляет отзыв в конец последовательности feedback.
func (r *ActivityRepository) AddFeedback(ctx context.Context, activityID string, feedback entities.Feedback) error {
	log := logger.Log(ctx).With(zap.String("repository", "activity"), zap.String("method", "AddFeedback"))

	query := `
        UPDATE activities
        SET feedback = feedback || $2::jsonb, updated_at = $3
        WHERE id = $1
    `

	encoded, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("error encoding feedback: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, activityID, encoded, time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error adding feedback", zap.Error(err))
		return fmt.Errorf("error adding feedback: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "activity not found for feedback", zap.String("id", activityID))
		return entities.ErrActivityNotFound
	}

	return nil
}

// CountCompleted возвращает число завершенных активностей пользователя.
func (r *ActivityRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "activity"), zap.String("method", "CountCompleted"))

	query := `SELECT COUNT(*) FROM activities WHERE user_id = $1 AND status = 'completed'`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		log.Error(ctx, "error counting completed activities", zap.Error(err))
		return 0, fmt.Errorf("error counting completed activities: %w", err)
	}

	return count, nil
}

// CountUpcomingDeadlines возвращает число незавершенных активностей
// со сроком окончания до указанного момента.
func (r *ActivityRepository) CountUpcomingDeadlines(ctx context.Context, userID string, until time.Time) (int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "activity"), zap.String("method", "CountUpcomingDeadlines"))

	query := `
        SELECT COUNT(*) FROM activities
        WHERE user_id = $1
          AND status <> 'completed'
          AND end_date IS NOT NULL
          AND end_date BETWEEN now() AND $2
    `

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, until).Scan(&count); err != nil {
		log.Error(ctx, "error counting upcoming deadlines", zap.Error(err))
		return 0, fmt.Errorf("error counting upcoming deadlines: %w", err)
	}

	return count, nil
}

// Delete удаляет активность по ID.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "activity"), zap.String("method", "Delete"))

	query := `
        DELETE FROM activities
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting activity", zap.Error(err))
		return fmt.Errorf("error deleting activity: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "activity not found for deletion", zap.String("id", id))
		return entities.ErrActivityNotFound
	}

	return nil
}
