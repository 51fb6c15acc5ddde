package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validBlob = `[{"name":"sessionid","value":"abc","domain":".instagram.com","path":"/"}]`

func TestFileCookieStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cookies.json")
	store := NewFileCookieStore(path)

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoCookies) {
		t.Fatalf("Load() on missing file error = %v, want ErrNoCookies", err)
	}

	if err := store.Save(ctx, []byte(validBlob)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if string(got) != validBlob {
		t.Errorf("Load() = %q, want %q", got, validBlob)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("cookie file mode = %v, want 0600", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the cookie file in dir, found %d entries", len(entries))
	}
}

func TestReplaceCookies(t *testing.T) {
	ctx := context.Background()
	store := NewFileCookieStore(filepath.Join(t.TempDir(), "cookies.json"))

	if _, err := ReplaceCookies(ctx, store, []byte("not json")); !errors.Is(err, ErrInvalidCookies) {
		t.Fatalf("ReplaceCookies() error = %v, want ErrInvalidCookies", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoCookies) {
		t.Fatalf("rejected blob must not be stored, Load() error = %v", err)
	}

	n, err := ReplaceCookies(ctx, store, []byte(validBlob))
	if err != nil {
		t.Fatalf("ReplaceCookies() error: %v", err)
	}
	if n != 1 {
		t.Errorf("ReplaceCookies() = %d cookies, want 1", n)
	}
}
