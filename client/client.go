package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"studenthub/internal/app/dto"
)

// Типизированные ошибки клиента.
var (
	// ErrNotAuthenticated возвращается при вызове защищенной операции
	// анонимной сессией.
	ErrNotAuthenticated = errors.New("session is not authenticated")
)

// NetworkFailure оборачивает транспортные ошибки, чтобы вызывающий код
// мог отличить сбой сети от отказа сервера.
type NetworkFailure struct {
	Err error
}

func (e *NetworkFailure) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkFailure) Unwrap() error {
	return e.Err
}

// APIError представляет отказ, возвращенный сервером.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

const defaultRequestTimeout = 10 * time.Second

// Client выполняет запросы к HTTP API StudentHub от имени одной сессии.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// NewClient создает клиент с заданным базовым URL и сессией.
// Передача nil вместо сессии дает новую анонимную сессию.
func NewClient(baseURL string, session *Session) *Client {
	if session == nil {
		session = NewSession()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		session:    session,
	}
}

// Session возвращает сессию клиента.
func (c *Client) Session() *Session {
	return c.session
}

// Login аутентифицирует пользователя. Сессия обновляется только при
// успехе; после отказа она остается в прежнем состоянии.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.UserResponse, error) {
	req := dto.LoginRequest{Email: email, Password: password}

	var resp dto.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp, false); err != nil {
		return nil, err
	}

	c.session.establish(resp.Token, resp.User)
	if err := c.session.Save(); err != nil {
		return nil, err
	}

	return c.session.User(), nil
}

// Register регистрирует пользователя и аутентифицирует сессию.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	var resp dto.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp, false); err != nil {
		return nil, err
	}

	c.session.establish(resp.Token, resp.User)
	if err := c.session.Save(); err != nil {
		return nil, err
	}

	return c.session.User(), nil
}

// Logout синхронно сбрасывает сессию. Сервер не вызывается: токены
// не имеют серверного состояния.
func (c *Client) Logout() error {
	c.session.clear()
	return c.session.Save()
}

// Me возвращает профиль текущего пользователя с сервера.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp, true); err != nil {
		return nil, err
	}

	c.session.updateUser(resp)
	return c.session.User(), nil
}

// UpdateProfile отправляет частичное обновление профиля и при успехе
// заменяет кэшированного пользователя ответом сервера.
func (c *Client) UpdateProfile(ctx context.Context, profile dto.ProfilePayload) (*dto.UserResponse, error) {
	req := dto.ProfileUpdateRequest{Profile: profile}

	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", req, &resp, true); err != nil {
		return nil, err
	}

	c.session.updateUser(resp)
	if err := c.session.Save(); err != nil {
		return nil, err
	}

	return c.session.User(), nil
}

// MarkNotificationRead отмечает уведомление текущего пользователя прочитанным.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodPut, "/api/auth/notifications/"+notificationID+"/read", nil, nil, true)
}

// GetStudentStats возвращает сводные показатели текущего студента.
func (c *Client) GetStudentStats(ctx context.Context) (*dto.StudentStatsResponse, error) {
	var resp dto.StudentStatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/students/stats", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListActivities возвращает активности, видимые текущему пользователю.
func (c *Client) ListActivities(ctx context.Context) ([]dto.ActivityResponse, error) {
	var resp []dto.ActivityResponse
	if err := c.do(ctx, http.MethodGet, "/api/activities", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListResources возвращает ресурсы, доступные текущему пользователю.
func (c *Client) ListResources(ctx context.Context) ([]dto.ResourceResponse, error) {
	var resp []dto.ResourceResponse
	if err := c.do(ctx, http.MethodGet, "/api/resources", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp, nil
}

// do выполняет один HTTP запрос и разбирает ответ или ошибку сервера.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		token := c.session.Token()
		if token == "" {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkFailure{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkFailure{Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(data),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// decodeErrorMessage извлекает поле error из тела ответа сервера.
func decodeErrorMessage(data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Error == "" {
		return string(data)
	}
	return payload.Error
}
