// Package ranking turns the per-user metric relation into tie-aware ranks.
//
// Ranks are dense and zero-indexed: a user's rank is the number of users
// with a strictly greater metric, so equal scores share a rank and the next
// distinct score resumes at rank + tie count. Nothing here is cached; every
// query re-derives its result from the store.
package ranking

import (
	"errors"

	"github.com/probtrack/probtrack/internal/database/models"
	"gorm.io/gorm"
)

// MaxRangeWidth bounds the size of a single ranking window.
const MaxRangeWidth = 1000

var (
	ErrInvalidRange = errors.New("ranking: invalid range")
	ErrNotFound     = errors.New("ranking: user not found")
)

// UserRank is the dense rank of a single user. Count carries the user's own
// point sum, echoed back alongside the rank.
type UserRank struct {
	Count int64 `json:"count"`
	Rank  int64 `json:"rank"`
}

// RankRange returns the ranking rows at ordinal positions [from, to),
// ordered by metric descending with a stable tie order. A window wider than
// MaxRangeWidth or a negative bound is ErrInvalidRange; from > to is an
// empty result, not an error.
func RankRange(db *gorm.DB, from, to int64) ([]models.RatedPointSum, error) {
	if from < 0 || to < 0 || to-from > MaxRangeWidth {
		return nil, ErrInvalidRange
	}
	if from >= to {
		return []models.RatedPointSum{}, nil
	}

	entries := make([]models.RatedPointSum, 0, to-from)
	err := db.Model(&models.RatedPointSum{}).
		Order("point_sum desc, user_id asc").
		Offset(int(from)).
		Limit(int(to - from)).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RankOfUser resolves userID case-insensitively and returns the user's
// point sum together with its dense rank. A user without a metric row is
// ErrNotFound.
func RankOfUser(db *gorm.DB, userID string) (*UserRank, error) {
	var row models.RatedPointSum
	err := db.Where("LOWER(user_id) = LOWER(?)", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rank int64
	if err := db.Model(&models.RatedPointSum{}).
		Where("point_sum > ?", row.PointSum).
		Count(&rank).Error; err != nil {
		return nil, err
	}

	return &UserRank{Count: row.PointSum, Rank: rank}, nil
}
