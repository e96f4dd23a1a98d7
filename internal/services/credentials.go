package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/shared"
	"golang.org/x/oauth2"
)

// ExchangeFunc trades the current token for a fresh one through the backend's
// refresh endpoint. Wired by the application after the pipeline exists.
type ExchangeFunc func(ctx context.Context, current string) (string, error)

// CredentialStore owns the session token and principal.
//
// The token is the only durable shared resource: all mutation is funneled
// through Persist and Clear so concurrent calls never observe torn state.
// A present token with an absent principal is transient; the session-init
// flow resolves it via SetPrincipal or collapses it via Clear.
type CredentialStore struct {
	mu        sync.RWMutex
	path      string
	token     *oauth2.Token
	principal *models.User
	exchange  ExchangeFunc
	logger    *log.Logger
}

// NewCredentialStore creates a store persisting the token at path and
// restores a previously persisted token if one exists.
func NewCredentialStore(path string, logger *log.Logger) *CredentialStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &CredentialStore{path: path, logger: logger}

	if data, err := os.ReadFile(path); err == nil {
		token := strings.TrimSpace(string(data))
		if token != "" {
			s.token = &oauth2.Token{AccessToken: token}
			logger.Debug("restored persisted token", "path", path)
		}
	}

	return s
}

// SetExchange wires the refresh endpoint call used by [CredentialStore.Refresh].
func (s *CredentialStore) SetExchange(fn ExchangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchange = fn
}

// Current returns a snapshot of the session. Always available, never blocks on IO.
func (s *CredentialStore) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := models.Session{}
	if s.token != nil {
		session.Token = s.token.AccessToken
	}
	if s.principal != nil {
		principal := *s.principal
		session.Principal = &principal
	}
	return session
}

// Attach injects the token as a bearer credential on the outgoing request.
// No-op when no token is held.
func (s *CredentialStore) Attach(req *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token != nil && s.token.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	}
}

// Persist stores the token in memory and writes it to durable storage.
func (s *CredentialStore) Persist(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = &oauth2.Token{AccessToken: token}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	return nil
}

// Clear erases the token from memory and durable storage and drops the principal.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
	s.principal = nil

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove persisted token: %w", err)
	}
	return nil
}

// SetPrincipal resolves the token-without-principal state after a
// current-user fetch.
func (s *CredentialStore) SetPrincipal(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = &u
}

// Refresh exchanges the current token for a new one.
//
// Failure is terminal: the session is destroyed and the error returned;
// callers must not retry automatically more than once per triggering call.
func (s *CredentialStore) Refresh(ctx context.Context) (string, error) {
	s.mu.RLock()
	exchange := s.exchange
	var current string
	if s.token != nil {
		current = s.token.AccessToken
	}
	s.mu.RUnlock()

	if current == "" {
		return "", shared.ErrNoToken
	}
	if exchange == nil {
		return "", fmt.Errorf("%w: no refresh endpoint wired", shared.ErrRefreshFailed)
	}

	fresh, err := exchange(ctx, current)
	if err != nil {
		s.logger.Warn("token refresh failed, destroying session", "error", err)
		if clearErr := s.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear credentials", "error", clearErr)
		}
		return "", fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	if err := s.Persist(fresh); err != nil {
		return "", err
	}
	return fresh, nil
}
