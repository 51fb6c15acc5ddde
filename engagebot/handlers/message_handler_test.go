package handlers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"

	"github.com/ellavondegurechaff/engagebot/engagebot/services"
	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
)

func TestCookieAttachment(t *testing.T) {
	tests := []struct {
		name        string
		attachments []discord.Attachment
		want        string
		wantOK      bool
	}{
		{name: "No attachments"},
		{name: "Other file", attachments: []discord.Attachment{{Filename: "photo.png"}}},
		{
			name:        "Cookie export among others",
			attachments: []discord.Attachment{{Filename: "photo.png"}, {Filename: "Cookies.JSON", URL: "https://cdn/cookies"}},
			want:        "https://cdn/cookies",
			wantOK:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cookieAttachment(tt.attachments)
			if ok != tt.wantOK || got.URL != tt.want {
				t.Errorf("cookieAttachment() = (%q, %v), want (%q, %v)", got.URL, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCookieUploadMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: utils.ErrTooLarge, want: "too large"},
		{err: fmt.Errorf("parse: %w", services.ErrInvalidCookies), want: "not a valid cookie export"},
		{err: fmt.Errorf("disk full"), want: "try again later"},
	}

	for _, tt := range tests {
		if got := cookieUploadMessage(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("cookieUploadMessage(%v) = %q, want it to mention %q", tt.err, got, tt.want)
		}
	}
}
