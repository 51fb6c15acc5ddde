// Package legacy imports the single-file SQLite database written by the
// previous chat bot into the ledger store.
package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/database/models"
	"github.com/ellavondegurechaff/engagebot/internal/domain/linkfilter"
)

// Timestamps were written as naive local ISO-8601 strings.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type legacyUser struct {
	UserID     int64          `bun:"user_id"`
	Username   sql.NullString `bun:"username"`
	Score      int            `bun:"score"`
	TotalScore int            `bun:"total_score"`
}

type legacyLink struct {
	LinkID    int64  `bun:"link_id"`
	UserID    int64  `bun:"user_id"`
	Link      string `bun:"link"`
	Timestamp string `bun:"timestamp"`
}

type legacyLike struct {
	UserID int64 `bun:"user_id"`
	LinkID int64 `bun:"link_id"`
}

type Options struct {
	// IDMap translates old platform user ids to new ones. Unmapped users
	// are stored as UnmappedPrefix followed by the old id.
	IDMap          map[int64]string
	UnmappedPrefix string
	Rule           *linkfilter.Rule
}

type Report struct {
	Users        int
	Links        int
	Likes        int
	SkippedLinks int
	SkippedLikes int
	// CollidingLinks lists legacy link ids that already existed in the
	// target and were not imported.
	CollidingLinks []int64
}

type Importer struct {
	target *bun.DB
	opts   Options
}

func NewImporter(target *bun.DB, opts Options) *Importer {
	if opts.UnmappedPrefix == "" {
		opts.UnmappedPrefix = "legacy:"
	}
	if opts.Rule == nil {
		opts.Rule = linkfilter.Current()
	}
	return &Importer{target: target, opts: opts}
}

func (im *Importer) userID(old int64) string {
	if id, ok := im.opts.IDMap[old]; ok {
		return id
	}
	return im.opts.UnmappedPrefix + strconv.FormatInt(old, 10)
}

// ImportFile reads the legacy database at path and writes it into the target
// store in one transaction. Existing target rows win over legacy ones.
func (im *Importer) ImportFile(ctx context.Context, path string) (Report, error) {
	sqldb, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return Report{}, fmt.Errorf("failed to open legacy database: %w", err)
	}
	source := bun.NewDB(sqldb, sqlitedialect.New())
	defer source.Close()

	return im.Import(ctx, source)
}

func (im *Importer) Import(ctx context.Context, source *bun.DB) (Report, error) {
	ctx, cancel := context.WithTimeout(ctx, config.ImportQueryTimeout)
	defer cancel()

	var users []legacyUser
	if err := source.NewRaw("SELECT user_id, username, score, total_score FROM users ORDER BY rowid").Scan(ctx, &users); err != nil {
		return Report{}, fmt.Errorf("failed to read legacy users: %w", err)
	}
	var links []legacyLink
	if err := source.NewRaw("SELECT link_id, user_id, link, timestamp FROM instagram_links ORDER BY link_id").Scan(ctx, &links); err != nil {
		return Report{}, fmt.Errorf("failed to read legacy links: %w", err)
	}
	var likes []legacyLike
	if err := source.NewRaw("SELECT user_id, link_id FROM user_likes").Scan(ctx, &likes); err != nil {
		return Report{}, fmt.Errorf("failed to read legacy likes: %w", err)
	}

	var report Report
	err := im.target.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()

		for _, u := range users {
			row := &models.User{
				DiscordID:  im.userID(u.UserID),
				Handle:     u.Username.String,
				Score:      max(u.Score, 0),
				TotalScore: max(u.TotalScore, u.Score, 0),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			res, err := tx.NewInsert().Model(row).Ignore().Exec(ctx)
			if err != nil {
				return fmt.Errorf("user %d: %w", u.UserID, err)
			}
			report.Users += affected(res)
		}

		imported := make(map[int64]bool, len(links))
		for _, l := range links {
			m, ok := im.opts.Rule.Extract(l.Link)
			if !ok {
				report.SkippedLinks++
				slog.Warn("Skipping legacy link that no longer matches the link rule",
					slog.String("type", "db"),
					slog.Int64("link_id", l.LinkID),
					slog.String("url", l.Link))
				continue
			}
			row := &models.Link{
				ID:          l.LinkID,
				OwnerID:     im.userID(l.UserID),
				URL:         m.URL,
				RuleVersion: m.RuleVersion,
				CreatedAt:   parseTimestamp(l.Timestamp, now),
			}
			res, err := tx.NewInsert().Model(row).Ignore().Exec(ctx)
			if err != nil {
				return fmt.Errorf("link %d: %w", l.LinkID, err)
			}
			if affected(res) == 0 {
				// The id is taken in the target; its likes cannot be attached
				// to a different post.
				report.SkippedLinks++
				report.CollidingLinks = append(report.CollidingLinks, l.LinkID)
				slog.Warn("Legacy link id already used in target, link and its likes skipped",
					slog.String("type", "db"),
					slog.Int64("link_id", l.LinkID),
					slog.String("url", m.URL))
				continue
			}
			imported[l.LinkID] = true
			report.Links++
		}

		for _, lk := range likes {
			if !imported[lk.LinkID] {
				report.SkippedLikes++
				continue
			}
			row := &models.UserLike{UserID: im.userID(lk.UserID), LinkID: lk.LinkID, CreatedAt: now}
			res, err := tx.NewInsert().Model(row).Ignore().Exec(ctx)
			if err != nil {
				return fmt.Errorf("like %d/%d: %w", lk.UserID, lk.LinkID, err)
			}
			report.Likes += affected(res)
		}

		return resetLinkSequence(ctx, tx)
	})
	if err != nil {
		return Report{}, fmt.Errorf("failed to import legacy data: %w", err)
	}

	return report, nil
}

// resetLinkSequence moves the Postgres id sequence past explicitly inserted
// ids. SQLite derives the next id from the table itself.
func resetLinkSequence(ctx context.Context, tx bun.Tx) error {
	if tx.Dialect().Name() != dialect.PG {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		"SELECT setval(pg_get_serial_sequence('links', 'id'), COALESCE((SELECT MAX(id) FROM links), 0) + 1, false)")
	return err
}

func affected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}

func parseTimestamp(s string, fallback time.Time) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return fallback
}
