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

// ResourceRepository реализует интерфейс repositories.ResourceRepository для работы с Postgres.
type ResourceRepository struct {
	pool PgxPoolInterface
}

// NewResourceRepository создает новый экземпляр репозитория ресурсов.
func NewResourceRepository(pool PgxPoolInterface) repositories.ResourceRepository {
	return &ResourceRepository{pool: pool}
}

const resourceColumns = `
        id, author_id, title, description, type, category, content,
        target_audience, visibility, access_list::text[], tags, metadata,
        stats, comments, expiry_date, created_at, updated_at
`

// scanResource читает одну строку таблицы resources в доменную сущность.
func scanResource(row pgx.Row) (*entities.Resource, error) {
	var (
		resource entities.Resource
		content  []byte
		metadata []byte
		stats    []byte
		comments []byte
	)

	err := row.Scan(
		&resource.ID,
		&resource.AuthorID,
		&resource.Title,
		&resource.Description,
		&resource.Type,
		&resource.Category,
		&content,
		&resource.TargetAudience,
		&resource.Visibility,
		&resource.AccessList,
		&resource.Tags,
		&metadata,
		&stats,
		&comments,
		&resource.ExpiryDate,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(content, &resource.Content); err != nil {
		return nil, fmt.Errorf("error decoding content: %w", err)
	}
	if err := json.Unmarshal(metadata, &resource.Metadata); err != nil {
		return nil, fmt.Errorf("error decoding metadata: %w", err)
	}
	if err := json.Unmarshal(stats, &resource.Stats); err != nil {
		return nil, fmt.Errorf("error decoding stats: %w", err)
	}
	if err := json.Unmarshal(comments, &resource.Comments); err != nil {
		return nil, fmt.Errorf("error decoding comments: %w", err)
	}

	return &resource, nil
}

// Create создает новый ресурс.
func (r *ResourceRepository) Create(ctx context.Context, resource *entities.Resource) (*entities.Resource, error) {
	log := logger.Log(ctx).With(zap.String("repository", "resource"), zap.String("method", "Create"))

	query := `
        INSERT INTO resources (
            author_id, title, description, type, category, content,
            target_audience, visibility, access_list, tags, metadata, expiry_date
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::uuid[], $10, $11, $12)
        RETURNING ` + resourceColumns

	content, err := json.Marshal(resource.Content)
	if err != nil {
		return nil, fmt.Errorf("error encoding content: %w", err)
	}
	metadata, err := json.Marshal(resource.Metadata)
	if err != nil {
		return nil, fmt.Errorf("error encoding metadata: %w", err)
	}

	created, err := scanResource(r.pool.QueryRow(ctx, query,
		resource.AuthorID,
		resource.Title,
		resource.Description,
		resource.Type,
		resource.Category,
		content,
		resource.TargetAudience,
		resource.Visibility,
		resource.AccessList,
		resource.Tags,
		metadata,
		resource.ExpiryDate,
	))
	if err != nil {
		log.Error(ctx, "error creating resource", zap.Error(err))
		return nil, fmt.Errorf("error creating resource: %w", err)
	}

	return created, nil
}

// FindByID находит ресурс по ID.
func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*entities.Resource, error) {
	log := logger.Log(ctx).With(zap.String("repository", "resource"), zap.String("method", "FindByID"))

	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

	resource, err := scanResource(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "resource not found", zap.String("id", id))
			return nil, entities.ErrResourceNotFound
		}
		log.Error(ctx, "error finding resource by id", zap.Error(err))
		return nil, fmt.Errorf("error querying resource by id: %w", err)
	}

	return resource, nil
}

// List возвращает ресурсы, видимые пользователю: публичные, собственные
// и ограниченные, где пользователь включен в access_list.
func (r *ResourceRepository) List(ctx context.Context, viewerID string, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	log := logger.Log(ctx).With(zap.String("repository", "resource"), zap.String("method", "List"))

	query := `SELECT ` + resourceColumns + `
        FROM resources
        WHERE (visibility = 'public'
               OR author_id = $1
               OR (visibility = 'restricted' AND $1 = ANY(access_list::text[])))`
	args := []interface{}{viewerID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
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
		log.Error(ctx, "error listing resources", zap.Error(err))
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	defer rows.Close()

	var resources []*entities.Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			log.Error(ctx, "error scanning resource row", zap.Error(err))
			return nil, fmt.Errorf("error scanning resource row: %w", err)
		}
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating resource rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}

	return resources, nil
}

// Update обновляет ресурс целиком. Счетчики stats запрос не затрагивает.
func (r *ResourceRepository) Update(ctx context.Context, resource *entities.Resource) (*entities.Resource, error) {
	log := logger.Log(ctx).With(zap.String("repository", "resource"), zap.String("method", "Update"))

	query := `
        UPDATE resources
        SET title = $2, description = $3, type = $4, category = $5, content = $6,
            target_audience = $7, visibility = $8, access_list = $9::uuid[],
            tags = $10, metadata = $11, expiry_date = $12, updated_at = $13
        WHERE id = $1
        RETURNING ` + resourceColumns

	content, err := json.Marshal(resource.Content)
	if err != nil {
		return nil, fmt.Errorf("error encoding content: %w", err)
	}
	metadata, err := json.Marshal(resource.Metadata)
	if err != nil {
		return nil, fmt.Errorf("error encoding metadata: %w", err)
	}

	updated, err := scanResource(r.pool.QueryRow(ctx, query,
		resource.ID,
		resource.Title,
		resource.Description,
		resource.Type,
		resource.Category,
		content,
		resource.TargetAudience,
		resource.Visibility,
		resource.AccessList,
		resource.Tags,
		metadata,
		resource.ExpiryDate,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "resource not found for update", zap.String("id", resource.ID))
			return nil, entities.ErrResourceNotFound
		}
		log.Error(ctx, "error updating resource", zap.Error(err))
		return nil, fmt.Errorf("error updating resource: %w", err)
	}

	return updated, nil
}

// IncrementStat атомарно увеличивает один из счетчиков stats на единицу.
// Счетчик меняется только в большую сторону и только этим запросом.
func (r *ResourceRepository) IncrementStat(ctx context.Context, resourceID string, stat entities.StatName) error {
	log := logger.Log(ctx).With(zap.String("repository", "resource"), zap.String("method", "IncrementStat"))

	if !stat.IsValid() {
		return entities.ErrInvalidStatName
	}

	query := `
        UPDATE resources
        SET stats = jsonb_set(stats, ARRAY[$2::text],
                              (COALESCE(stats->>$2, '0')::bigint + 1)::text::jsonb),
            updated_at = $3
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, resourceID, string(stat), time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error incrementing resource stat", zap.Error(err))
		return fmt.Errorf("error incrementing resource stat: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "resource not found for stat increment", zap.String("id", resourceID))
		return entities.ErrResourceNotFound
	}

	return nil
}

// AddComment добавляет комментарий в конец последовательности comments.
func (r *ResourceRepository) AddComment(ctx context.Context, resourceID string, comment entities.Comment) error {
	log := logger.Log(ctx).With(zap.String("repository", "resource"), zap.String("method", "AddComment"))

	query := `
        UPDATE resources
        SET comments = comments || $2::jsonb, updated_at = $3
        WHERE id = $1
    `

	encoded, err := json.Marshal(comment)
	if err != nil {
		return fmt.Errorf("error encoding comment: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, resourceID, encoded, time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error adding comment", zap.Error(err))
		return fmt.Errorf("error adding comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "resource not found for comment", zap.String("id", resourceID))
		return entities.ErrResourceNotFound
	}

	return nil
}

// Delete удаляет ресурс по ID.
func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "resource"), zap.String("method", "Delete"))

	query := `
        DELETE FROM resources
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting resource", zap.Error(err))
		return fmt.Errorf("error deleting resource: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "resource not found for deletion", zap.String("id", id))
		return entities.ErrResourceNotFound
	}

	return nil
}
