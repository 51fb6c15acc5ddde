package utils

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ellavondegurechaff/engagebot/engagebot/services"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
)

func TestFormatQueue(t *testing.T) {
	if got := FormatQueue(nil); !strings.Contains(got, "No unliked") {
		t.Errorf("FormatQueue(nil) = %q, want empty-queue message", got)
	}

	got := FormatQueue([]ledger.Link{
		{ID: 12, URL: "https://www.instagram.com/p/A/"},
		{ID: 7, URL: "https://www.instagram.com/p/B/"},
	})
	if strings.Index(got, "`12`") > strings.Index(got, "`7`") {
		t.Errorf("FormatQueue() must keep the given order, got %q", got)
	}
	for _, want := range []string{"https://www.instagram.com/p/A/", "https://www.instagram.com/p/B/", "/done"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatQueue() missing %q in %q", want, got)
		}
	}
}

func TestFormatLeaderboard(t *testing.T) {
	got := FormatLeaderboard([]ledger.LeaderboardEntry{
		{Handle: "alice", LifetimeScore: 9},
		{Handle: "", LifetimeScore: 1},
		{Handle: "carol", LifetimeScore: 1},
		{Handle: "dave", LifetimeScore: 0},
	})

	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("FormatLeaderboard() gave %d lines, want 4: %q", len(lines), got)
	}
	wants := []string{"🥇 **alice** - **9 points**", "🥈 **(no username)** - **1 point**", "🥉 **carol**", "4. **dave** - **0 points**"}
	for i, want := range wants {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}

	if got := FormatLeaderboard(nil); !strings.Contains(got, "No users") {
		t.Errorf("FormatLeaderboard(nil) = %q", got)
	}
}

func TestFormatStats(t *testing.T) {
	tests := []struct {
		name  string
		stats ledger.Stats
		want  []string
	}{
		{
			name:  "registered",
			stats: ledger.Stats{SpendableScore: 1, LifetimeScore: 6, Handle: "alice"},
			want:  []string{"**1 point**", "**6 points**", "**alice**"},
		},
		{
			name:  "unregistered",
			stats: ledger.Stats{},
			want:  []string{"**0 points**", "/username"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatStats(tt.stats)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("FormatStats() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestClassifyLedgerError(t *testing.T) {
	tests := []struct {
		err      error
		wantType ErrorType
		retry    bool
	}{
		{ledger.ErrHandleRequired, UserError, false},
		{ledger.ErrInvalidHandle, UserError, false},
		{ledger.ErrInsufficientScore, BusinessLogicError, false},
		{ledger.ErrLinkNotFound, NotFoundError, false},
		{ledger.ErrOwnLink, BusinessLogicError, false},
		{ledger.ErrAlreadyLiked, BusinessLogicError, false},
		{ledger.ErrNotLiked, BusinessLogicError, false},
		{fmt.Errorf("%w: %w", ledger.ErrVerificationUnavailable, services.ErrNoCookies), SystemError, true},
		{fmt.Errorf("%w: timeout", ledger.ErrVerificationUnavailable), SystemError, true},
		{fmt.Errorf("load user: %w", ledger.ErrStorageUnavailable), SystemError, true},
		{errors.New("boom"), SystemError, true},
	}

	seen := map[string]error{}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			gotType, msg := ClassifyLedgerError(tt.err)
			if gotType != tt.wantType {
				t.Errorf("ClassifyLedgerError(%v) type = %v, want %v", tt.err, gotType, tt.wantType)
			}
			if strings.Contains(msg, "try again") != tt.retry {
				t.Errorf("ClassifyLedgerError(%v) retry hint = %v, want %v", tt.err, !tt.retry, tt.retry)
			}
			if prev, ok := seen[msg]; ok && !tt.retry {
				t.Errorf("%v and %v share the message %q", prev, tt.err, msg)
			}
			seen[msg] = tt.err
		})
	}
}
