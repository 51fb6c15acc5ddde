package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserLike records that UserID was credited for liking LinkID.
type UserLike struct {
	bun.BaseModel `bun:"table:user_likes,alias:ul"`

	UserID    string    `bun:"user_id,pk"`
	LinkID    int64     `bun:"link_id,pk"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
