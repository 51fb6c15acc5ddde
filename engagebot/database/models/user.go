package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID         int64     `bun:"id,pk,autoincrement"`
	DiscordID  string    `bun:"discord_id,notnull,unique"`
	Handle     string    `bun:"handle,nullzero"`
	Score      int       `bun:"score,notnull,default:0"`
	TotalScore int       `bun:"total_score,notnull,default:0"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
