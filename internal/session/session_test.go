package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_InMemory(t *testing.T) {
	s := New("  user-42 ")
	tok, ok := s.Token()
	if !ok || tok != "user-42" {
		t.Fatalf("Token() = %q, %v; want user-42, true", tok, ok)
	}
	if s.Path() != "" {
		t.Errorf("expected in-memory session, got path %q", s.Path())
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Error("expected no token after logout")
	}
}

func TestRequire_NoToken(t *testing.T) {
	_, err := New("").Require()
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Error("expected empty session for missing file")
	}
}

func TestLoginPersistsAcrossOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Login("abc123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if tok, _ := reopened.Token(); tok != "abc123" {
		t.Errorf("reopened token = %q, want abc123", tok)
	}
}

func TestLogoutRemovesFile(t *testing.T) {
	dir := t.TempDir()
	s, _ := Open(dir)
	if err := s.Login("abc123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Errorf("expected session file removed, stat err = %v", err)
	}
	// Logging out twice is fine.
	if err := s.Logout(); err != nil {
		t.Errorf("second Logout: %v", err)
	}
}

func TestLogin_EmptyToken(t *testing.T) {
	s := New("")
	if err := s.Login("   "); err == nil {
		t.Error("expected error for empty token")
	}
}
