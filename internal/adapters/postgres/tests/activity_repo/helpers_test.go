package activityrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"studenthub/internal/domain/entities"
	"studenthub/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection error")

var activityColumns = []string{
	"id", "user_id", "type", "title", "description", "status", "progress",
	"start_date", "end_date", "attachments", "metrics", "feedback",
	"is_public", "tags", "created_at", "updated_at",
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), testLogger)
}

func testActivity() entities.Activity {
	now := time.Now().UTC().Truncate(time.Microsecond)

	return entities.Activity{
		ID:          "act-1",
		UserID:      "user-123",
		Type:        entities.ActivityAcademic,
		Title:       "Linear Algebra",
		Description: "weekly problem sets",
		Status:      entities.StatusInProgress,
		Progress:    40,
		IsPublic:    true,
		Tags:        []string{"math"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func activityRows(activity entities.Activity) *pgxmock.Rows {
	return pgxmock.NewRows(activityColumns).AddRow(
		activity.ID, activity.UserID, activity.Type, activity.Title,
		activity.Description, activity.Status, activity.Progress,
		activity.StartDate, activity.EndDate,
		[]byte(`[]`), []byte(`{}`), []byte(`[]`),
		activity.IsPublic, activity.Tags, activity.CreatedAt, activity.UpdatedAt,
	)
}
