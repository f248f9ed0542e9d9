package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an internal account created on first login. Its ID is the stable
// identity issued by the OAuth provider; the AtCoder handle is linked later
// by the user and may stay unset.
type User struct {
	ID        string         `gorm:"primaryKey" json:"internal_user_id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	AtCoderUserID *string `gorm:"index" json:"atcoder_user_id"`
}

// VirtualContest is a user-curated, time-windowed practice set.
// OwnerUserID is written once at creation and never via update.
type VirtualContest struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	OwnerUserID      string  `gorm:"index" json:"owner_user_id"`
	Title            string  `json:"title"`
	Memo             string  `json:"memo"`
	StartEpochSecond int64   `json:"start_epoch_second"`
	DurationSecond   int64   `json:"duration_second"`
	PenaltySecond    int64   `json:"penalty_second"`
	Mode             *string `json:"mode"`
	IsPublic         bool    `json:"is_public"`
}

// VirtualContestItem is one problem slot of a contest. Point and Order are
// nullable: a missing point means "use default scoring", a missing order
// means the slot is unordered.
type VirtualContestItem struct {
	ContestID string `gorm:"primaryKey" json:"-"`
	ProblemID string `gorm:"primaryKey" json:"id"`

	Point *int64 `json:"point"`
	Order *int64 `json:"order"`
}

// VirtualContestParticipant records membership. The composite primary key
// makes duplicate joins structurally impossible.
type VirtualContestParticipant struct {
	ContestID string `gorm:"primaryKey"`
	UserID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}

// RatedPointSum is one row of the metric relation used by the ranking
// engine. It is populated by the upstream submission ETL, never by this
// service.
type RatedPointSum struct {
	UserID   string `gorm:"primaryKey" json:"user_id"`
	PointSum int64  `json:"point_sum"`
}
