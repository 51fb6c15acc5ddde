package ledger

import "time"

// User is a group member as the ledger sees it.
type User struct {
	ID             string
	Handle         string
	SpendableScore int
	LifetimeScore  int
	CreatedAt      time.Time
}

// HasHandle reports whether the user registered an external profile.
func (u User) HasHandle() bool {
	return u.Handle != ""
}

type Link struct {
	ID          int64
	OwnerID     string
	URL         string
	RuleVersion string
	CreatedAt   time.Time
}

type LikeRecord struct {
	UserID    string
	LinkID    int64
	CreatedAt time.Time
}

type LeaderboardEntry struct {
	Handle        string
	LifetimeScore int
}

// Stats is the read-only view returned for /status. Handle is empty when
// the user never registered one.
type Stats struct {
	SpendableScore int
	LifetimeScore  int
	Handle         string
}
