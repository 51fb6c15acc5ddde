package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Link is a submitted post. Rows are append-only.
type Link struct {
	bun.BaseModel `bun:"table:links,alias:l"`

	ID          int64     `bun:"id,pk,autoincrement"`
	OwnerID     string    `bun:"owner_id,notnull"`
	URL         string    `bun:"url,notnull"`
	RuleVersion string    `bun:"rule_version,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}
