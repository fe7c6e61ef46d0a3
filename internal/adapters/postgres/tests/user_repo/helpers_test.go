package userrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studenthub/internal/domain/entities"
	"studenthub/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection error")

var userColumns = []string{
	"id", "email", "password_hash", "role",
	"first_name", "last_name", "student_id", "avatar", "department", "year",
	"social_links", "gpa", "attendance",
	"completed_courses", "current_courses",
	"achievements", "notifications", "created_at", "updated_at",
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), testLogger)
}

func testUser() entities.User {
	now := time.Now().UTC().Truncate(time.Microsecond)

	return entities.User{
		ID:           "user-123",
		Email:        "student@example.com",
		PasswordHash: "hashed_password",
		Role:         entities.RoleStudent,
		Profile: entities.Profile{
			FirstName:  "Alice",
			LastName:   "Johnson",
			StudentID:  "S-100",
			Department: "Mathematics",
			Year:       2,
			SocialLinks: entities.SocialLinks{
				GitHub: "alice",
			},
		},
		AcademicInfo: entities.AcademicInfo{
			GPA:              3.7,
			Attendance:       92.5,
			CompletedCourses: []string{"calc-1"},
			CurrentCourses:   []string{"calc-2"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func userRows(user entities.User) *pgxmock.Rows {
	year := user.Profile.Year

	return pgxmock.NewRows(userColumns).AddRow(
		user.ID, user.Email, user.PasswordHash, user.Role,
		user.Profile.FirstName, user.Profile.LastName, user.Profile.StudentID,
		user.Profile.Avatar, user.Profile.Department, &year,
		[]byte(`{"github":"alice"}`), user.AcademicInfo.GPA, user.AcademicInfo.Attendance,
		user.AcademicInfo.CompletedCourses, user.AcademicInfo.CurrentCourses,
		[]byte(`[]`), []byte(`[]`), user.CreatedAt, user.UpdatedAt,
	)
}

func assertUserEquals(t *testing.T, expected *entities.User, actual *entities.User) {
	t.Helper()

	require.NotNil(t, actual)
	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Email, actual.Email)
	assert.Equal(t, expected.PasswordHash, actual.PasswordHash)
	assert.Equal(t, expected.Role, actual.Role)
	assert.Equal(t, expected.Profile.FirstName, actual.Profile.FirstName)
	assert.Equal(t, expected.Profile.Year, actual.Profile.Year)
	assert.Equal(t, expected.Profile.SocialLinks.GitHub, actual.Profile.SocialLinks.GitHub)
	assert.Equal(t, expected.AcademicInfo.GPA, actual.AcademicInfo.GPA)
}
