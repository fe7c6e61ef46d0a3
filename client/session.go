// Package client предоставляет Go-клиент для HTTP API StudentHub
// с локально сохраняемой сессией.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"studenthub/internal/app/dto"
)

// Константы для сообщений об ошибках.
const (
	errCtxLoadingSession = "loading session"
	errCtxSavingSession  = "saving session"
)

// Session хранит состояние аутентификации клиента. Доступ к полям
// потокобезопасен.
type Session struct {
	mu sync.RWMutex

	state sessionState
	path  string
}

// sessionState — сериализуемая часть сессии. В файл попадают только
// токен, пользователь и флаг аутентификации.
type sessionState struct {
	Token           string            `json:"token,omitempty"`
	User            *dto.UserResponse `json:"user,omitempty"`
	IsAuthenticated bool              `json:"isAuthenticated"`
}

// NewSession создает анонимную сессию без привязки к файлу.
func NewSession() *Session {
	return &Session{}
}

// LoadSession читает сессию из файла. Отсутствующий файл дает
// анонимную сессию, а не ошибку.
func LoadSession(path string) (*Session, error) {
	session := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return session, nil
		}
		return nil, fmt.Errorf("%s: %w", errCtxLoadingSession, err)
	}

	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingSession, err)
	}

	session.state = state
	return session, nil
}

// Save записывает сессию в привязанный файл. Сессия без файла не сохраняется.
func (s *Session) Save() error {
	s.mu.RLock()
	state := s.state
	path := s.path
	s.mu.RUnlock()

	if path == "" {
		return nil
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxSavingSession, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", errCtxSavingSession, err)
	}

	return nil
}

// Token возвращает текущий токен доступа.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User возвращает копию кэшированного пользователя или nil.
func (s *Session) User() *dto.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	user := *s.state.User
	return &user
}

// IsAuthenticated сообщает, аутентифицирована ли сессия.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// establish атомарно переводит сессию в аутентифицированное состояние.
func (s *Session) establish(token string, user dto.UserResponse) {
	s.mu.Lock()
	s.state = sessionState{
		Token:           token,
		User:            &user,
		IsAuthenticated: true,
	}
	s.mu.Unlock()
}

// clear синхронно сбрасывает сессию в анонимное состояние.
func (s *Session) clear() {
	s.mu.Lock()
	s.state = sessionState{}
	s.mu.Unlock()
}

// updateUser заменяет кэшированного пользователя, не трогая токен.
func (s *Session) updateUser(user dto.UserResponse) {
	s.mu.Lock()
	s.state.User = &user
	s.mu.Unlock()
}
