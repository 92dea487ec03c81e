package schemas

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID            string    `bun:"id,pk" json:"id"`
	DiscordID     string    `bun:"discord_id,notnull,unique" json:"discordId"`
	Username      string    `bun:"username,notnull" json:"username"`
	Discriminator string    `bun:"discriminator" json:"discriminator,omitempty"`
	Avatar        *string   `bun:"avatar" json:"avatar"`
	HasClientRole bool      `bun:"has_client_role,notnull,default:false" json:"hasClientRole"`
	IsAdmin       bool      `bun:"is_admin,notnull,default:false" json:"isAdmin"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

type Feedback struct {
	bun.BaseModel `bun:"table:feedbacks"`

	ID        string     `bun:"id,pk" json:"id"`
	UserID    string     `bun:"user_id,notnull" json:"userId"`
	Content   string     `bun:"content,notnull" json:"content"`
	Rating    *int       `bun:"rating" json:"rating"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt *time.Time `bun:"updated_at" json:"updatedAt"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// FeedbackStats is derived on demand and never persisted. AverageRating is
// nil when no rated feedback exists.
type FeedbackStats struct {
	TotalCount         int           `json:"totalCount"`
	AverageRating      *float64      `json:"averageRating"`
	RatingDistribution []RatingCount `json:"ratingDistribution"`
}
