package session

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/protomem/hr-console/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_StartsUnauthenticated(t *testing.T) {
	store := New(testLogger(), filepath.Join(t.TempDir(), "token"))

	if store.Authenticated() {
		t.Error("expected fresh store to be unauthenticated")
	}
	if _, ok := store.User(); ok {
		t.Error("expected no cached user")
	}
}

func TestStore_LoginPersistsToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")

	store := New(testLogger(), tokenFile)
	store.Login(model.User{ID: "u1", Name: "Alice"}, "secret-token")

	if got := store.Token(); got != "secret-token" {
		t.Errorf("got token %q, want %q", got, "secret-token")
	}

	user, ok := store.User()
	if !ok || user.Name != "Alice" {
		t.Errorf("got user %+v (ok=%v), want Alice", user, ok)
	}

	data, err := os.ReadFile(tokenFile)
	if err != nil {
		t.Fatalf("read token file: %v", err)
	}
	if string(data) != "secret-token\n" {
		t.Errorf("token file holds %q", data)
	}
}

func TestStore_RehydratesTokenButNotUser(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")

	first := New(testLogger(), tokenFile)
	first.Login(model.User{ID: "u1", Name: "Alice"}, "secret-token")

	second := New(testLogger(), tokenFile)
	if got := second.Token(); got != "secret-token" {
		t.Errorf("got token %q after restart, want %q", got, "secret-token")
	}
	if _, ok := second.User(); ok {
		t.Error("user must not survive a restart, only the token does")
	}
}

func TestStore_LogoutClearsEverything(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")

	store := New(testLogger(), tokenFile)
	store.Login(model.User{ID: "u1"}, "secret-token")
	store.Logout()

	if store.Authenticated() {
		t.Error("expected store to be unauthenticated after logout")
	}
	if _, ok := store.User(); ok {
		t.Error("expected no user after logout")
	}
	if _, err := os.Stat(tokenFile); !os.IsNotExist(err) {
		t.Errorf("expected token file removed, stat err = %v", err)
	}
}

func TestStore_LogoutWithoutLoginIsNoop(t *testing.T) {
	store := New(testLogger(), filepath.Join(t.TempDir(), "token"))
	store.Logout()

	if store.Authenticated() {
		t.Error("expected store to stay unauthenticated")
	}
}
