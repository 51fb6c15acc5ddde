package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultQueueLimit       = 7
	DefaultLeaderboardLimit = 5
	DefaultVerifyTimeout    = 45 * time.Second
	defaultCommitTimeout    = 10 * time.Second
)

type Options struct {
	QueueLimit       int
	LeaderboardLimit int
	// VerifyTimeout bounds a single collaborator call, on top of whatever
	// deadline the caller already carries.
	VerifyTimeout time.Duration
	// RuleVersion is stamped on every accepted link.
	RuleVersion string
	Now         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.QueueLimit <= 0 {
		o.QueueLimit = DefaultQueueLimit
	}
	if o.LeaderboardLimit <= 0 {
		o.LeaderboardLimit = DefaultLeaderboardLimit
	}
	if o.VerifyTimeout <= 0 {
		o.VerifyTimeout = DefaultVerifyTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type Service interface {
	RegisterHandle(ctx context.Context, userID, handle string) error
	SubmitLink(ctx context.Context, userID, url string) (int64, error)
	RequestVerification(ctx context.Context, userID string, linkID int64) error
	Queue(ctx context.Context, userID string, limit int) ([]Link, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	Stats(ctx context.Context, userID string) (Stats, error)
	// AdjustScore is an operator correction of the spendable balance.
	// Lifetime score is never touched.
	AdjustScore(ctx context.Context, userID string, delta int) (Stats, error)
}

type service struct {
	store    Store
	verifier Verifier
	opts     Options

	userLocks *KeyedMutex
	pairLocks *KeyedMutex
}

func NewService(store Store, verifier Verifier, opts Options) *service {
	return &service{
		store:     store,
		verifier:  verifier,
		opts:      opts.withDefaults(),
		userLocks: NewKeyedMutex(),
		pairLocks: NewKeyedMutex(),
	}
}

func (s *service) RegisterHandle(ctx context.Context, userID, handle string) error {
	handle = NormalizeHandle(handle)
	if handle == "" {
		return ErrInvalidHandle
	}

	unlock := s.userLocks.Lock(userID)
	defer unlock()

	if err := s.store.UpsertUserHandle(ctx, userID, handle); err != nil {
		return storageErr("register handle", err)
	}

	slog.Info("Handle registered",
		slog.String("type", "db"),
		slog.String("user_id", userID),
		slog.String("handle", handle))
	return nil
}

func (s *service) SubmitLink(ctx context.Context, userID, url string) (int64, error) {
	unlock := s.userLocks.Lock(userID)
	defer unlock()

	user, found, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return 0, storageErr("load user", err)
	}
	if !found || !user.HasHandle() {
		return 0, ErrHandleRequired
	}
	if user.SpendableScore <= 0 {
		return 0, ErrInsufficientScore
	}

	linkID, err := s.store.SpendForLink(ctx, userID, url, s.opts.RuleVersion, s.opts.Now())
	if err != nil {
		if errors.Is(err, ErrInsufficientScore) {
			return 0, ErrInsufficientScore
		}
		return 0, storageErr("spend for link", err)
	}

	slog.Info("Link submitted",
		slog.String("type", "db"),
		slog.String("user_id", userID),
		slog.Int64("link_id", linkID),
		slog.String("url", url))
	return linkID, nil
}

func (s *service) RequestVerification(ctx context.Context, userID string, linkID int64) error {
	unlock := s.pairLocks.Lock(userID + ":" + strconv.FormatInt(linkID, 10))
	defer unlock()

	user, found, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return storageErr("load user", err)
	}
	if !found || !user.HasHandle() {
		return ErrHandleRequired
	}

	link, found, err := s.store.GetLink(ctx, linkID)
	if err != nil {
		return storageErr("load link", err)
	}
	if !found {
		return ErrLinkNotFound
	}
	if link.OwnerID == userID {
		return ErrOwnLink
	}

	liked, err := s.store.HasLike(ctx, userID, linkID)
	if err != nil {
		return storageErr("check like", err)
	}
	if liked {
		return ErrAlreadyLiked
	}

	ok, err := s.verify(ctx, user.Handle, link)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotLiked
	}

	// The collaborator already confirmed the like; a caller that went away
	// in the meantime must not leave the pair uncredited.
	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultCommitTimeout)
	defer cancel()

	if err := s.store.RecordLike(commitCtx, userID, linkID, user.Handle); err != nil {
		if errors.Is(err, ErrAlreadyLiked) {
			return ErrAlreadyLiked
		}
		return storageErr("record like", err)
	}

	slog.Info("Like verified and credited",
		slog.String("type", "db"),
		slog.String("user_id", userID),
		slog.Int64("link_id", linkID),
		slog.String("status", "success"))
	return nil
}

func (s *service) verify(ctx context.Context, handle string, link Link) (bool, error) {
	attempt := uuid.NewString()
	start := s.opts.Now()

	verifyCtx, cancel := context.WithTimeout(WithAttempt(ctx, attempt), s.opts.VerifyTimeout)
	defer cancel()

	slog.Debug("Like verification started",
		slog.String("type", "sys"),
		slog.String("attempt", attempt),
		slog.Int64("link_id", link.ID),
		slog.String("handle", handle))

	ok, err := s.verifier.Verify(verifyCtx, handle, link.URL)
	if err != nil {
		slog.Warn("Like verification failed",
			slog.String("type", "sys"),
			slog.String("attempt", attempt),
			slog.Int64("link_id", link.ID),
			slog.String("handle", handle),
			slog.Any("error", err))
		return false, fmt.Errorf("%w: %w", ErrVerificationUnavailable, err)
	}

	slog.Debug("Like verification finished",
		slog.String("type", "sys"),
		slog.String("attempt", attempt),
		slog.Int64("link_id", link.ID),
		slog.String("handle", handle),
		slog.Bool("liked", ok),
		slog.Duration("took", s.opts.Now().Sub(start)))
	return ok, nil
}

func (s *service) Queue(ctx context.Context, userID string, limit int) ([]Link, error) {
	if limit <= 0 {
		limit = s.opts.QueueLimit
	}
	links, err := s.store.ListRecentLinksExcludingOwner(ctx, userID, limit)
	if err != nil {
		return nil, storageErr("list queue", err)
	}
	return links, nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.opts.LeaderboardLimit
	}
	entries, err := s.store.TopUsers(ctx, limit)
	if err != nil {
		return nil, storageErr("load leaderboard", err)
	}
	return entries, nil
}

func (s *service) Stats(ctx context.Context, userID string) (Stats, error) {
	user, found, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return Stats{}, storageErr("load stats", err)
	}
	if !found {
		return Stats{}, nil
	}
	return Stats{
		SpendableScore: user.SpendableScore,
		LifetimeScore:  user.LifetimeScore,
		Handle:         user.Handle,
	}, nil
}

func (s *service) AdjustScore(ctx context.Context, userID string, delta int) (Stats, error) {
	unlock := s.userLocks.Lock(userID)
	defer unlock()

	if delta != 0 {
		if err := s.store.AdjustSpendable(ctx, userID, delta); err != nil {
			return Stats{}, storageErr("adjust score", err)
		}
		slog.Info("Spendable score adjusted",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Int("delta", delta))
	}
	return s.Stats(ctx, userID)
}

// NormalizeHandle trims whitespace and a leading @ from a profile handle.
// Handles containing whitespace are rejected by returning "".
func NormalizeHandle(handle string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" || strings.ContainsAny(handle, " \t\r\n/") {
		return ""
	}
	return handle
}

func storageErr(op string, err error) error {
	if errors.Is(err, ErrStorageUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
