package session

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/protomem/hr-console/internal/model"
)

// Store owns the process-wide session state: the signed-in user plus the
// bearer token issued at login. The token alone survives a restart, in a
// token file; the user is repopulated only by the next login.
type Store struct {
	Logger *slog.Logger

	mux       sync.RWMutex
	user      *model.User
	token     string
	tokenFile string
}

// New builds a Store backed by the given token file and rehydrates any
// previously persisted token. A missing or unreadable file simply leaves the
// session unauthenticated.
func New(logger *slog.Logger, tokenFile string) *Store {
	store := &Store{
		Logger:    logger.With("module", "session"),
		tokenFile: tokenFile,
	}

	data, err := os.ReadFile(tokenFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			store.Logger.Warn("failed to read token file", "file", tokenFile, "error", err)
		}
		return store
	}

	store.token = strings.TrimSpace(string(data))
	if store.token != "" {
		store.Logger.Debug("token rehydrated", "file", tokenFile)
	}

	return store
}

// Login records the authenticated user and token and persists the token.
func (s *Store) Login(user model.User, token string) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.user = &user
	s.token = token

	if err := s.writeTokenFile(token); err != nil {
		s.Logger.Warn("failed to persist token", "file", s.tokenFile, "error", err)
	}
}

// Logout clears the session and removes the persisted token.
func (s *Store) Logout() {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.user = nil
	s.token = ""

	if err := os.Remove(s.tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.Logger.Warn("failed to remove token file", "file", s.tokenFile, "error", err)
	}
}

// Token returns the current bearer token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return s.token
}

// User returns the signed-in user, if one is cached in memory.
func (s *Store) User() (model.User, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

func (s *Store) writeTokenFile(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.tokenFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.tokenFile, []byte(token+"\n"), 0o600)
}
