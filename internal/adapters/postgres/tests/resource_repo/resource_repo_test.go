package resourcerepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studenthub/internal/adapters/postgres"
	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/repositories"
	"studenthub/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection error")

var resourceColumns = []string{
	"id", "author_id", "title", "description", "type", "category", "content",
	"target_audience", "visibility", "access_list", "tags", "metadata",
	"stats", "comments", "expiry_date", "created_at", "updated_at",
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), testLogger)
}

func testResource() entities.Resource {
	now := time.Now().UTC().Truncate(time.Microsecond)

	return entities.Resource{
		ID:          "res-1",
		AuthorID:    "user-123",
		Title:       "Calculus notes",
		Description: "lecture notes for the first semester",
		Type:        entities.ResourceDocument,
		Category:    entities.CategoryStudyMaterial,
		Visibility:  entities.VisibilityPublic,
		Tags:        []string{"math"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func resourceRows(resource entities.Resource) *pgxmock.Rows {
	return pgxmock.NewRows(resourceColumns).AddRow(
		resource.ID, resource.AuthorID, resource.Title, resource.Description,
		resource.Type, resource.Category, []byte(`{}`),
		resource.TargetAudience, resource.Visibility, resource.AccessList,
		resource.Tags, []byte(`{}`),
		[]byte(`{"views":0,"downloads":0,"likes":0}`), []byte(`[]`),
		resource.ExpiryDate, resource.CreatedAt, resource.UpdatedAt,
	)
}

func TestResourceRepository_FindByID(t *testing.T) {
	ctx := testContext(t)
	resource := testResource()

	t.Run("successful resource acquisition", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM resources WHERE id").
			WithArgs(resource.ID).
			WillReturnRows(resourceRows(resource))

		repo := postgres.NewResourceRepository(mock)

		found, err := repo.FindByID(ctx, resource.ID)
		require.NoError(t, err)
		assert.Equal(t, resource.ID, found.ID)
		assert.Equal(t, resource.Title, found.Title)
		assert.Equal(t, int64(0), found.Stats.Views)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("the resource was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM resources WHERE id").
			WithArgs("missing-id").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewResourceRepository(mock)

		found, err := repo.FindByID(ctx, "missing-id")
		require.Nil(t, found)
		require.ErrorIs(t, err, entities.ErrResourceNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResourceRepository_List(t *testing.T) {
	ctx := testContext(t)
	resource := testResource()
	viewerID := "user-456"

	t.Run("list without filters", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM resources").
			WithArgs(viewerID).
			WillReturnRows(resourceRows(resource))

		repo := postgres.NewResourceRepository(mock)

		resources, err := repo.List(ctx, viewerID, repositories.ResourceFilter{})
		require.NoError(t, err)
		require.Len(t, resources, 1)
		assert.Equal(t, resource.ID, resources[0].ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list narrows by category", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("AND category = \\$2").
			WithArgs(viewerID, entities.CategoryStudyMaterial).
			WillReturnRows(resourceRows(resource))

		repo := postgres.NewResourceRepository(mock)

		filter := repositories.ResourceFilter{Category: entities.CategoryStudyMaterial}

		resources, err := repo.List(ctx, viewerID, filter)
		require.NoError(t, err)
		require.Len(t, resources, 1)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM resources").
			WithArgs(viewerID).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewResourceRepository(mock)

		resources, err := repo.List(ctx, viewerID, repositories.ResourceFilter{})
		require.Nil(t, resources)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error listing resources")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResourceRepository_IncrementStat(t *testing.T) {
	ctx := testContext(t)
	resource := testResource()

	t.Run("successful counter increment", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE resources").
			WithArgs(resource.ID, "views", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewResourceRepository(mock)

		require.NoError(t, repo.IncrementStat(ctx, resource.ID, entities.StatViews))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown stat name is rejected before query", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := postgres.NewResourceRepository(mock)

		err = repo.IncrementStat(ctx, resource.ID, "dislikes")
		require.ErrorIs(t, err, entities.ErrInvalidStatName)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("the resource was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE resources").
			WithArgs("missing-id", "likes", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewResourceRepository(mock)

		err = repo.IncrementStat(ctx, "missing-id", entities.StatLikes)
		require.ErrorIs(t, err, entities.ErrResourceNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResourceRepository_AddComment(t *testing.T) {
	ctx := testContext(t)
	resource := testResource()

	comment := entities.Comment{
		UserID:    "user-456",
		Text:      "very helpful",
		CreatedAt: time.Now().UTC(),
	}

	t.Run("successful comment append", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE resources").
			WithArgs(resource.ID, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewResourceRepository(mock)

		require.NoError(t, repo.AddComment(ctx, resource.ID, comment))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("the resource was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE resources").
			WithArgs("missing-id", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewResourceRepository(mock)

		err = repo.AddComment(ctx, "missing-id", comment)
		require.ErrorIs(t, err, entities.ErrResourceNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
