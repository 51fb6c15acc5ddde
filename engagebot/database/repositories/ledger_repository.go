package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/engagebot/engagebot/database/models"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
)

// floorScore adds the argument to the score column without going below zero.
const floorScore = "score = CASE WHEN score + ? < 0 THEN 0 ELSE score + ? END"

// LedgerRepository is the bun-backed ledger.Store.
type LedgerRepository struct {
	*BaseRepository
	startingScore int
	// Links never change once written, so cached entries cannot go stale.
	links *lru.Cache
	now   func() time.Time
}

var _ ledger.Store = (*LedgerRepository)(nil)

func NewLedgerRepository(db *bun.DB, startingScore, cacheSize int) (*LedgerRepository, error) {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create link cache: %w", err)
	}
	return &LedgerRepository{
		BaseRepository: NewBaseRepository(db),
		startingScore:  startingScore,
		links:          cache,
		now:            time.Now,
	}, nil
}

func (r *LedgerRepository) GetUser(ctx context.Context, id string) (ledger.User, bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user models.User
	err := r.db.NewSelect().
		Model(&user).
		Where("discord_id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.User{}, false, nil
	}
	if err != nil {
		return ledger.User{}, false, r.storageError("get", "user", id, err)
	}
	return toLedgerUser(user), true, nil
}

func (r *LedgerRepository) UpsertUserHandle(ctx context.Context, id, handle string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := r.now()
	user := r.newUser(id, handle, now)
	_, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (discord_id) DO UPDATE").
		Set("handle = EXCLUDED.handle").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return r.storageError("upsert_handle", "user", id, err)
	}
	return nil
}

func (r *LedgerRepository) AdjustSpendable(ctx context.Context, id string, delta int) error {
	err := r.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := r.ensureUser(ctx, tx, id, ""); err != nil {
			return err
		}
		_, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set(floorScore, delta, delta).
			Set("updated_at = ?", r.now()).
			Where("discord_id = ?", id).
			Exec(ctx)
		return err
	})
	if err != nil {
		return r.storageError("adjust_spendable", "user", id, err)
	}
	return nil
}

func (r *LedgerRepository) CreditLifetimeAndSpendable(ctx context.Context, id, handleIfNew string) error {
	err := r.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return r.credit(ctx, tx, id, handleIfNew)
	})
	if err != nil {
		return r.storageError("credit", "user", id, err)
	}
	return nil
}

func (r *LedgerRepository) InsertLink(ctx context.Context, ownerID, url, ruleVersion string, at time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	link, err := r.insertLink(ctx, r.db, ownerID, url, ruleVersion, at)
	if err != nil {
		return 0, r.storageError("insert", "link", ownerID, err)
	}
	return link.ID, nil
}

func (r *LedgerRepository) GetLink(ctx context.Context, linkID int64) (ledger.Link, bool, error) {
	if cached, ok := r.links.Get(linkID); ok {
		return cached.(ledger.Link), true, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var link models.Link
	err := r.db.NewSelect().
		Model(&link).
		Where("id = ?", linkID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Link{}, false, nil
	}
	if err != nil {
		return ledger.Link{}, false, r.storageError("get", "link", linkID, err)
	}

	out := toLedgerLink(link)
	r.links.Add(linkID, out)
	return out, true, nil
}

func (r *LedgerRepository) ListRecentLinksExcludingOwner(ctx context.Context, userID string, limit int) ([]ledger.Link, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []models.Link
	err := r.db.NewSelect().
		Model(&rows).
		Where("l.owner_id <> ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM user_likes AS ul WHERE ul.link_id = l.id AND ul.user_id = ?)", userID).
		OrderExpr("l.id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.storageError("list_queue", "link", userID, err)
	}

	links := make([]ledger.Link, 0, len(rows))
	for _, row := range rows {
		links = append(links, toLedgerLink(row))
	}
	return links, nil
}

func (r *LedgerRepository) HasLike(ctx context.Context, userID string, linkID int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.UserLike)(nil)).
		Where("user_id = ?", userID).
		Where("link_id = ?", linkID).
		Exists(ctx)
	if err != nil {
		return false, r.storageError("exists", "user_like", linkID, err)
	}
	return exists, nil
}

func (r *LedgerRepository) InsertLike(ctx context.Context, userID string, linkID int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.insertLike(ctx, r.db, userID, linkID); err != nil {
		return r.storageError("insert", "user_like", linkID, err)
	}
	return nil
}

func (r *LedgerRepository) TopUsers(ctx context.Context, limit int) ([]ledger.LeaderboardEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var users []models.User
	err := r.db.NewSelect().
		Model(&users).
		Column("handle", "total_score").
		OrderExpr("total_score DESC, id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.storageError("leaderboard", "user", limit, err)
	}

	entries := make([]ledger.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, ledger.LeaderboardEntry{Handle: u.Handle, LifetimeScore: u.TotalScore})
	}
	return entries, nil
}

func (r *LedgerRepository) SpendForLink(ctx context.Context, ownerID, url, ruleVersion string, at time.Time) (int64, error) {
	var linkID int64
	err := r.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("score = score - 1").
			Set("updated_at = ?", at).
			Where("discord_id = ?", ownerID).
			Where("score > 0").
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ledger.ErrInsufficientScore
		}

		link, err := r.insertLink(ctx, tx, ownerID, url, ruleVersion, at)
		if err != nil {
			return err
		}
		linkID = link.ID
		return nil
	})
	if errors.Is(err, ledger.ErrInsufficientScore) {
		return 0, err
	}
	if err != nil {
		return 0, r.storageError("spend_for_link", "link", ownerID, err)
	}
	return linkID, nil
}

func (r *LedgerRepository) RecordLike(ctx context.Context, userID string, linkID int64, handleIfNew string) error {
	err := r.inTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		inserted, err := r.insertLike(ctx, tx, userID, linkID)
		if err != nil {
			return err
		}
		if !inserted {
			return ledger.ErrAlreadyLiked
		}
		return r.credit(ctx, tx, userID, handleIfNew)
	})
	if errors.Is(err, ledger.ErrAlreadyLiked) {
		return err
	}
	if err != nil {
		return r.storageError("record_like", "user_like", linkID, err)
	}
	return nil
}

func (r *LedgerRepository) newUser(id, handle string, now time.Time) *models.User {
	return &models.User{
		DiscordID:  id,
		Handle:     handle,
		Score:      r.startingScore,
		TotalScore: r.startingScore,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ensureUser creates the user with the starting score when absent and
// reports whether it did.
func (r *LedgerRepository) ensureUser(ctx context.Context, db bun.IDB, id, handle string) (bool, error) {
	res, err := db.NewInsert().
		Model(r.newUser(id, handle, r.now())).
		Ignore().
		Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LedgerRepository) credit(ctx context.Context, db bun.IDB, id, handleIfNew string) error {
	if _, err := r.ensureUser(ctx, db, id, handleIfNew); err != nil {
		return err
	}
	_, err := db.NewUpdate().
		Model((*models.User)(nil)).
		Set("score = score + 1").
		Set("total_score = total_score + 1").
		Set("updated_at = ?", r.now()).
		Where("discord_id = ?", id).
		Exec(ctx)
	return err
}

func (r *LedgerRepository) insertLink(ctx context.Context, db bun.IDB, ownerID, url, ruleVersion string, at time.Time) (*models.Link, error) {
	link := &models.Link{
		OwnerID:     ownerID,
		URL:         url,
		RuleVersion: ruleVersion,
		CreatedAt:   at,
	}
	if _, err := db.NewInsert().Model(link).Exec(ctx); err != nil {
		return nil, err
	}
	return link, nil
}

func (r *LedgerRepository) insertLike(ctx context.Context, db bun.IDB, userID string, linkID int64) (bool, error) {
	res, err := db.NewInsert().
		Model(&models.UserLike{UserID: userID, LinkID: linkID, CreatedAt: r.now()}).
		Ignore().
		Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func toLedgerUser(u models.User) ledger.User {
	return ledger.User{
		ID:             u.DiscordID,
		Handle:         u.Handle,
		SpendableScore: u.Score,
		LifetimeScore:  u.TotalScore,
		CreatedAt:      u.CreatedAt,
	}
}

func toLedgerLink(l models.Link) ledger.Link {
	return ledger.Link{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		URL:         l.URL,
		RuleVersion: l.RuleVersion,
		CreatedAt:   l.CreatedAt,
	}
}
