package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	svcadapters "studenthub/internal/adapters/services"
	apphttp "studenthub/internal/app/http"
	"studenthub/internal/app/http/middleware"
	"studenthub/internal/domain/entities"
	domainservices "studenthub/internal/domain/services"
	"studenthub/internal/ports/api"
	portservices "studenthub/internal/ports/services"
	"studenthub/pkg/logger"
)

const testSecretKey = "test-secret-key"

var ErrDatabaseConnection = errors.New("database connection error")

// newTestApp собирает приложение с реальным токен-сервисом и
// подменяет прикладные сервисы моками.
func newTestApp(t *testing.T, useCases apphttp.UseCases) (*fiber.App, portservices.TokenService) {
	t.Helper()

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "error"))

	factory := svcadapters.NewServiceFactory(testSecretKey, time.Hour, bcrypt.MinCost)

	app := fiber.New()
	apphttp.SetupRouter(app, useCases, factory.TokenService())

	return app, factory.TokenService()
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer func() { require.NoError(t, resp.Body.Close()) }()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func bearerToken(t *testing.T, tokenService portservices.TokenService, userID string, role entities.Role) string {
	t.Helper()

	token, _, err := tokenService.GenerateAccessToken(context.Background(), userID, string(role))
	require.NoError(t, err)
	return "Bearer " + token
}

func authResult(userID, email string, role entities.Role) *api.AuthResult {
	return &api.AuthResult{
		Session: &domainservices.AuthSession{
			UserID:      userID,
			Role:        string(role),
			AccessToken: "access-token",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
		User: &entities.User{ID: userID, Email: email, Role: role},
	}
}

func TestAuthorizationRequired(t *testing.T) {
	testCases := []struct {
		name          string
		authHeader    string
		expectedError string
	}{
		{
			name:          "missing authorization header",
			authHeader:    "",
			expectedError: middleware.ErrorNoAuthHeader,
		},
		{
			name:          "missing bearer prefix",
			authHeader:    "Token access-token",
			expectedError: middleware.ErrorInvalidTokenFormat,
		},
		{
			name:          "garbage token",
			authHeader:    "Bearer not-a-jwt",
			expectedError: middleware.ErrorInvalidToken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			statsUseCase := new(MockStatsUseCase)
			app, _ := newTestApp(t, apphttp.UseCases{Stats: statsUseCase})

			req := httptest.NewRequest(http.MethodGet, "/api/students/stats", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)

			// Отказ в доступе отдается как JSON с кодом 401, а не как 500.
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, tc.expectedError, body["error"])

			statsUseCase.AssertNotCalled(t, "GetStudentStats")
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		authUseCase := new(MockAuthUseCase)
		authUseCase.On("Login", mock.Anything, "student@example.com", "password123").
			Return(authResult("user-123", "student@example.com", entities.RoleStudent), nil).Once()

		app, _ := newTestApp(t, apphttp.UseCases{Auth: authUseCase})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
			`{"email":"student@example.com","password":"password123"}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "access-token", body["token"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "student@example.com", user["email"])

		authUseCase.AssertExpectations(t)
	})

	t.Run("malformed json body", func(t *testing.T) {
		authUseCase := new(MockAuthUseCase)
		app, _ := newTestApp(t, apphttp.UseCases{Auth: authUseCase})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["error"])

		authUseCase.AssertNotCalled(t, "Login")
	})

	t.Run("missing email", func(t *testing.T) {
		authUseCase := new(MockAuthUseCase)
		app, _ := newTestApp(t, apphttp.UseCases{Auth: authUseCase})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
			`{"password":"password123"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		authUseCase.AssertNotCalled(t, "Login")
	})

	t.Run("invalid credentials", func(t *testing.T) {
		authUseCase := new(MockAuthUseCase)
		authUseCase.On("Login", mock.Anything, "student@example.com", "wrong-password").
			Return(nil, domainservices.ErrInvalidCredentials).Once()

		app, _ := newTestApp(t, apphttp.UseCases{Auth: authUseCase})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
			`{"email":"student@example.com","password":"wrong-password"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, domainservices.ErrInvalidCredentials.Error(), body["error"])

		authUseCase.AssertExpectations(t)
	})
}

func TestRegisterEndpoint(t *testing.T) {
	registerBody := `{"email":"student@example.com","password":"password123","role":"student"}`

	t.Run("success", func(t *testing.T) {
		authUseCase := new(MockAuthUseCase)
		authUseCase.On("Register", mock.Anything, mock.MatchedBy(func(input *api.RegisterInput) bool {
			return input.Email == "student@example.com" && input.Role == entities.RoleStudent
		})).Return(authResult("user-123", "student@example.com", entities.RoleStudent), nil).Once()

		app, _ := newTestApp(t, apphttp.UseCases{Auth: authUseCase})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", registerBody))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "access-token", body["token"])

		authUseCase.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		authUseCase := new(MockAuthUseCase)
		authUseCase.On("Register", mock.Anything, mock.Anything).
			Return(nil, domainservices.ErrEmailAlreadyExists).Once()

		app, _ := newTestApp(t, apphttp.UseCases{Auth: authUseCase})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", registerBody))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, domainservices.ErrEmailAlreadyExists.Error(), body["error"])

		authUseCase.AssertExpectations(t)
	})

	t.Run("short password", func(t *testing.T) {
		authUseCase := new(MockAuthUseCase)
		app, _ := newTestApp(t, apphttp.UseCases{Auth: authUseCase})

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register",
			`{"email":"student@example.com","password":"123"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		authUseCase.AssertNotCalled(t, "Register")
	})
}

func TestStudentStatsEndpoint(t *testing.T) {
	t.Run("success with valid token", func(t *testing.T) {
		statsUseCase := new(MockStatsUseCase)
		statsUseCase.On("GetStudentStats", mock.Anything, "user-123").
			Return(&api.StudentStats{
				GPA:                 3.7,
				Attendance:          92.5,
				CompletedActivities: 4,
				UpcomingDeadlines:   2,
			}, nil).Once()

		app, tokenService := newTestApp(t, apphttp.UseCases{Stats: statsUseCase})

		req := httptest.NewRequest(http.MethodGet, "/api/students/stats", nil)
		req.Header.Set("Authorization", bearerToken(t, tokenService, "user-123", entities.RoleStudent))

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.InDelta(t, 3.7, body["gpa"], 0.001)
		assert.InDelta(t, 4, body["completedActivities"], 0.001)

		statsUseCase.AssertExpectations(t)
	})

	t.Run("use case failure maps to 500", func(t *testing.T) {
		statsUseCase := new(MockStatsUseCase)
		statsUseCase.On("GetStudentStats", mock.Anything, "user-123").
			Return(nil, ErrDatabaseConnection).Once()

		app, tokenService := newTestApp(t, apphttp.UseCases{Stats: statsUseCase})

		req := httptest.NewRequest(http.MethodGet, "/api/students/stats", nil)
		req.Header.Set("Authorization", bearerToken(t, tokenService, "user-123", entities.RoleStudent))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestResourceEndpoints(t *testing.T) {
	t.Run("stat increment accepted", func(t *testing.T) {
		resourceUseCase := new(MockResourceUseCase)
		resourceUseCase.On("IncrementStat", mock.Anything, "res-1", entities.StatViews).
			Return(nil).Once()

		app, tokenService := newTestApp(t, apphttp.UseCases{Resource: resourceUseCase})

		req := httptest.NewRequest(http.MethodPost, "/api/resources/res-1/views", nil)
		req.Header.Set("Authorization", bearerToken(t, tokenService, "user-123", entities.RoleStudent))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resourceUseCase.AssertExpectations(t)
	})

	t.Run("missing resource maps to 404", func(t *testing.T) {
		resourceUseCase := new(MockResourceUseCase)
		resourceUseCase.On("IncrementStat", mock.Anything, "res-404", entities.StatLikes).
			Return(entities.ErrResourceNotFound).Once()

		app, tokenService := newTestApp(t, apphttp.UseCases{Resource: resourceUseCase})

		req := httptest.NewRequest(http.MethodPost, "/api/resources/res-404/likes", nil)
		req.Header.Set("Authorization", bearerToken(t, tokenService, "user-123", entities.RoleStudent))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Contains(t, body["error"], entities.ErrResourceNotFound.Error())
	})
}

func TestRouteNotFound(t *testing.T) {
	app, _ := newTestApp(t, apphttp.UseCases{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Route not found", body["error"])
}
