package utils

import (
	"fmt"
	"strings"

	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
)

const unknownHandle = "(no username)"

// Plural returns "1 point", "2 points".
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func FormatQueue(links []ledger.Link) string {
	if len(links) == 0 {
		return "📭 **No unliked Instagram links available.**"
	}

	var sb strings.Builder
	sb.WriteString("Like a post, then run `/done <id>` right away. Only likes count as engagement.\n\n")
	for _, l := range links {
		fmt.Fprintf(&sb, "🔗 **ID:** `%d`\n📎 %s\n\n", l.ID, l.URL)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatLeaderboard(entries []ledger.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "❌ No users found in the leaderboard."
	}

	var sb strings.Builder
	for i, e := range entries {
		handle := e.Handle
		if handle == "" {
			handle = unknownHandle
		}
		fmt.Fprintf(&sb, "%s **%s** - **%s**\n", rankMarker(i+1), handle, Plural(e.LifetimeScore, "point"))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatStats(s ledger.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Your current score is: **%s**.\n", Plural(s.SpendableScore, "point"))
	fmt.Fprintf(&sb, "🏆 Your total score is: **%s**.\n\n", Plural(s.LifetimeScore, "point"))
	if s.Handle != "" {
		fmt.Fprintf(&sb, "👤 Your Instagram username: **%s**", s.Handle)
	} else {
		sb.WriteString("⚠️ You haven't set your Instagram username yet. Use `/username <your_username>` to set it.")
	}
	return sb.String()
}

func rankMarker(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}
