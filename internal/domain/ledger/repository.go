package ledger

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// Store is the durable side of the ledger. Every call is atomic: it either
// fully applies or has no effect. Infrastructure failures are reported
// wrapped in ErrStorageUnavailable.
type Store interface {
	GetUser(ctx context.Context, id string) (User, bool, error)
	UpsertUserHandle(ctx context.Context, id, handle string) error
	AdjustSpendable(ctx context.Context, id string, delta int) error
	CreditLifetimeAndSpendable(ctx context.Context, id, handleIfNew string) error

	InsertLink(ctx context.Context, ownerID, url, ruleVersion string, at time.Time) (int64, error)
	GetLink(ctx context.Context, linkID int64) (Link, bool, error)
	ListRecentLinksExcludingOwner(ctx context.Context, userID string, limit int) ([]Link, error)

	HasLike(ctx context.Context, userID string, linkID int64) (bool, error)
	InsertLike(ctx context.Context, userID string, linkID int64) error

	TopUsers(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// SpendForLink deducts one spendable point and inserts the link in one
	// transaction. It returns ErrInsufficientScore without writing anything
	// when the score is already zero.
	SpendForLink(ctx context.Context, ownerID, url, ruleVersion string, at time.Time) (int64, error)
	// RecordLike inserts the like record and credits the liker in one
	// transaction. It returns ErrAlreadyLiked when the pair already exists.
	RecordLike(ctx context.Context, userID string, linkID int64, handleIfNew string) error
}

// Verifier confirms that the profile handle liked the post at postURL.
// It may block for several seconds and must honour ctx cancellation.
type Verifier interface {
	Verify(ctx context.Context, handle, postURL string) (bool, error)
}
