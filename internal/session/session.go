// Package session holds the identity token that names the current user to
// the community API. A Session is created once by the host and passed to each
// view; nothing reads the token from a global.
//
// The token is persisted in a single file under the state directory so it
// survives between runs until logout removes it.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileName is the token file inside the state directory.
const FileName = "session"

// ErrNoToken is returned by Require when no user is logged in.
var ErrNoToken = errors.New("no identity token: please login first")

// Session is the session-scoped identity store. Safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	token string
	path  string // empty for in-memory sessions
}

// New returns an in-memory session holding token (may be empty).
func New(token string) *Session {
	return &Session{token: strings.TrimSpace(token)}
}

// Open loads the session persisted in dir. A missing file yields an empty
// session; the directory is created on the first Login.
func Open(dir string) (*Session, error) {
	path := filepath.Join(dir, FileName)
	s := &Session{path: path}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	s.token = strings.TrimSpace(string(b))
	return s, nil
}

// Token returns the identity token and whether one is present.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Require returns the token or ErrNoToken.
func (s *Session) Require() (string, error) {
	if tok, ok := s.Token(); ok {
		return tok, nil
	}
	return "", ErrNoToken
}

// Login stores token, persisting it when the session is file-backed.
func (s *Session) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("login: empty identity token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path != "" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
		if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
			return fmt.Errorf("write session: %w", err)
		}
	}
	s.token = token
	return nil
}

// Logout clears the token and removes the persisted file.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Path returns the backing file, or "" for in-memory sessions.
func (s *Session) Path() string {
	return s.path
}
