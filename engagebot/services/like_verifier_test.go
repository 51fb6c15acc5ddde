package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/chromedp/cdproto/network"
)

func TestLikedByURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.instagram.com/p/abc/", "https://www.instagram.com/p/abc/liked_by/"},
		{"https://www.instagram.com/reel/abc", "https://www.instagram.com/reel/abc/liked_by/"},
	}
	for _, tt := range tests {
		if got := LikedByURL(tt.in); got != tt.want {
			t.Errorf("LikedByURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContainsHandle(t *testing.T) {
	names := []string{"Home", "  Alice_01 ", "@bob", "Log in"}

	tests := []struct {
		name   string
		handle string
		want   bool
	}{
		{name: "case insensitive", handle: "alice_01", want: true},
		{name: "at sign on page", handle: "bob", want: true},
		{name: "at sign in handle", handle: "@Alice_01", want: true},
		{name: "absent", handle: "carol", want: false},
		{name: "substring does not count", handle: "alice", want: false},
		{name: "empty handle", handle: " ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsHandle(names, tt.handle); got != tt.want {
				t.Errorf("ContainsHandle(%q) = %v, want %v", tt.handle, got, tt.want)
			}
		})
	}
}

// memoryCookieStore keeps the blob in memory and counts saves.
type memoryCookieStore struct {
	mu    sync.Mutex
	blob  []byte
	saves int
}

func (s *memoryCookieStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, ErrNoCookies
	}
	return append([]byte(nil), s.blob...), nil
}

func (s *memoryCookieStore) Save(_ context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = append([]byte(nil), blob...)
	s.saves++
	return nil
}

func sessionCookies(value string) []*network.Cookie {
	return []*network.Cookie{{Name: "sessionid", Value: value, Domain: ".instagram.com", Path: "/", Session: true}}
}

func TestLikeVerifier_PersistRefreshesUnchangedSession(t *testing.T) {
	ctx := context.Background()
	oldBlob, err := EncodeCookies(sessionCookies("OLD"))
	if err != nil {
		t.Fatalf("EncodeCookies() error: %v", err)
	}
	store := &memoryCookieStore{blob: oldBlob}
	v := NewLikeVerifier(store, VerifierOptions{})

	v.persist(ctx, oldBlob, sessionCookies("OLD-refreshed"))

	got, _ := store.Load(ctx)
	if !strings.Contains(string(got), "OLD-refreshed") {
		t.Errorf("stored blob = %s, want the refreshed session", got)
	}
}

func TestLikeVerifier_UploadDuringCheckIsKept(t *testing.T) {
	ctx := context.Background()
	oldBlob, err := EncodeCookies(sessionCookies("OLD"))
	if err != nil {
		t.Fatalf("EncodeCookies() error: %v", err)
	}
	freshBlob, err := EncodeCookies(sessionCookies("FRESH"))
	if err != nil {
		t.Fatalf("EncodeCookies() error: %v", err)
	}

	store := &memoryCookieStore{blob: oldBlob}
	v := NewLikeVerifier(store, VerifierOptions{})

	// A check loaded oldBlob, then an admin uploads while it runs.
	n, err := v.ReplaceCookies(ctx, freshBlob)
	if err != nil {
		t.Fatalf("ReplaceCookies() error: %v", err)
	}
	if n != 1 {
		t.Errorf("ReplaceCookies() = %d cookies, want 1", n)
	}

	v.persist(ctx, oldBlob, sessionCookies("OLD-refreshed"))

	got, _ := store.Load(ctx)
	if string(got) != string(freshBlob) {
		t.Errorf("stored blob = %s, want the uploaded %s", got, freshBlob)
	}
	if store.saves != 1 {
		t.Errorf("store saved %d times, want only the upload", store.saves)
	}
}

func TestLikeVerifier_ReplaceCookiesRejectsInvalid(t *testing.T) {
	store := &memoryCookieStore{}
	v := NewLikeVerifier(store, VerifierOptions{})

	if _, err := v.ReplaceCookies(context.Background(), []byte("{}")); !errors.Is(err, ErrInvalidCookies) {
		t.Fatalf("ReplaceCookies() error = %v, want ErrInvalidCookies", err)
	}
	if store.saves != 0 {
		t.Errorf("invalid upload was saved")
	}
}
