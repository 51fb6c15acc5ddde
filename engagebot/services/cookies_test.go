package services

import (
	"errors"
	"testing"

	"github.com/chromedp/cdproto/network"
)

func TestParseCookies(t *testing.T) {
	tests := []struct {
		name         string
		blob         string
		wantErr      bool
		wantSameSite []network.CookieSameSite
		wantExpires  []bool
	}{
		{
			name: "browser export",
			blob: `[
				{"name":"sessionid","value":"abc","domain":".instagram.com","path":"/","expires":1767225600.5,"httpOnly":true,"secure":true,"sameSite":"Strict"},
				{"name":"csrftoken","value":"x","domain":".instagram.com","expires":-1,"sameSite":"unspecified"},
				{"name":"ds_user_id","value":"1","domain":".instagram.com","sameSite":"no_restriction"}
			]`,
			wantSameSite: []network.CookieSameSite{network.CookieSameSiteStrict, network.CookieSameSiteLax, network.CookieSameSiteNone},
			wantExpires:  []bool{true, false, false},
		},
		{name: "not json", blob: `sessionid=abc`, wantErr: true},
		{name: "empty array", blob: `[]`, wantErr: true},
		{name: "missing domain", blob: `[{"name":"a","value":"b"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCookies([]byte(tt.blob))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCookies) {
					t.Fatalf("ParseCookies() error = %v, want ErrInvalidCookies", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCookies() unexpected error: %v", err)
			}
			if len(got) != len(tt.wantSameSite) {
				t.Fatalf("ParseCookies() returned %d cookies, want %d", len(got), len(tt.wantSameSite))
			}
			for i, c := range got {
				if c.SameSite != tt.wantSameSite[i] {
					t.Errorf("cookie %d sameSite = %s, want %s", i, c.SameSite, tt.wantSameSite[i])
				}
				if (c.Expires != nil) != tt.wantExpires[i] {
					t.Errorf("cookie %d expires set = %v, want %v", i, c.Expires != nil, tt.wantExpires[i])
				}
				if c.Path == "" {
					t.Errorf("cookie %d path should default to /", i)
				}
			}
		})
	}
}

func TestEncodeCookiesRoundTrip(t *testing.T) {
	live := []*network.Cookie{
		{Name: "sessionid", Value: "abc", Domain: ".instagram.com", Path: "/", Expires: 1767225600, HTTPOnly: true, Secure: true, SameSite: network.CookieSameSiteNone},
		{Name: "rur", Value: "y", Domain: ".instagram.com", Path: "/", Session: true},
	}

	blob, err := EncodeCookies(live)
	if err != nil {
		t.Fatalf("EncodeCookies() error: %v", err)
	}
	params, err := ParseCookies(blob)
	if err != nil {
		t.Fatalf("ParseCookies() error: %v", err)
	}

	if params[0].Expires == nil || params[0].Expires.Time().Unix() != 1767225600 {
		t.Errorf("persistent cookie lost its expiry: %v", params[0].Expires)
	}
	if params[0].SameSite != network.CookieSameSiteNone {
		t.Errorf("sameSite = %s, want None", params[0].SameSite)
	}
	if params[1].Expires != nil {
		t.Errorf("session cookie should have no expiry")
	}
	if params[1].SameSite != network.CookieSameSiteLax {
		t.Errorf("empty sameSite should become Lax, got %s", params[1].SameSite)
	}
}
