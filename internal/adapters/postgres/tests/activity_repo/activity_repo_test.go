package activityrepo_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studenthub/internal/adapters/postgres"
	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/repositories"
)

func TestActivityRepository_FindByID(t *testing.T) {
	ctx := testContext(t)
	activity := testActivity()

	t.Run("successful activity acquisition", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM activities WHERE id").
			WithArgs(activity.ID).
			WillReturnRows(activityRows(activity))

		repo := postgres.NewActivityRepository(mock)

		found, err := repo.FindByID(ctx, activity.ID)
		require.NoError(t, err)
		assert.Equal(t, activity.ID, found.ID)
		assert.Equal(t, activity.Title, found.Title)
		assert.Equal(t, activity.Status, found.Status)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("the activity was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM activities WHERE id").
			WithArgs("missing-id").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewActivityRepository(mock)

		found, err := repo.FindByID(ctx, "missing-id")
		require.Nil(t, found)
		require.ErrorIs(t, err, entities.ErrActivityNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityRepository_List(t *testing.T) {
	ctx := testContext(t)
	activity := testActivity()
	viewerID := activity.UserID

	t.Run("list without filters", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM activities(.|\n)+WHERE \\(user_id = \\$1 OR is_public\\)").
			WithArgs(viewerID).
			WillReturnRows(activityRows(activity))

		repo := postgres.NewActivityRepository(mock)

		activities, err := repo.List(ctx, viewerID, repositories.ActivityFilter{})
		require.NoError(t, err)
		require.Len(t, activities, 1)
		assert.Equal(t, activity.ID, activities[0].ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list narrows by type and status", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("AND type = \\$2 AND status = \\$3").
			WithArgs(viewerID, entities.ActivityAcademic, entities.StatusInProgress).
			WillReturnRows(activityRows(activity))

		repo := postgres.NewActivityRepository(mock)

		filter := repositories.ActivityFilter{
			Type:   entities.ActivityAcademic,
			Status: entities.StatusInProgress,
		}

		activities, err := repo.List(ctx, viewerID, filter)
		require.NoError(t, err)
		require.Len(t, activities, 1)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list narrows by full-text search", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("plainto_tsquery\\('english', \\$2\\)").
			WithArgs(viewerID, "algebra").
			WillReturnRows(activityRows(activity))

		repo := postgres.NewActivityRepository(mock)

		activities, err := repo.List(ctx, viewerID, repositories.ActivityFilter{Search: "algebra"})
		require.NoError(t, err)
		require.Len(t, activities, 1)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM activities").
			WithArgs(viewerID).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewActivityRepository(mock)

		activities, err := repo.List(ctx, viewerID, repositories.ActivityFilter{})
		require.Nil(t, activities)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error listing activities")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityRepository_AddFeedback(t *testing.T) {
	ctx := testContext(t)
	activity := testActivity()

	feedback := entities.Feedback{
		UserID:    "user-456",
		Comment:   "well done",
		Rating:    5,
		CreatedAt: time.Now().UTC(),
	}

	t.Run("successful feedback append", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE activities").
			WithArgs(activity.ID, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewActivityRepository(mock)

		require.NoError(t, repo.AddFeedback(ctx, activity.ID, feedback))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("the activity was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE activities").
			WithArgs("missing-id", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewActivityRepository(mock)

		err = repo.AddFeedback(ctx, "missing-id", feedback)
		require.ErrorIs(t, err, entities.ErrActivityNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityRepository_Counters(t *testing.T) {
	ctx := testContext(t)
	userID := "user-123"

	t.Run("count completed activities", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT").
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

		repo := postgres.NewActivityRepository(mock)

		count, err := repo.CountCompleted(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 7, count)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count upcoming deadlines", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		until := time.Now().UTC().Add(7 * 24 * time.Hour)

		mock.ExpectQuery("SELECT COUNT(.|\n)+end_date BETWEEN").
			WithArgs(userID, until).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

		repo := postgres.NewActivityRepository(mock)

		count, err := repo.CountUpcomingDeadlines(ctx, userID, until)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT").
			WithArgs(userID).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewActivityRepository(mock)

		count, err := repo.CountCompleted(ctx, userID)
		assert.Zero(t, count)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error counting completed activities")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
