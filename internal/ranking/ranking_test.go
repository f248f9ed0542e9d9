package ranking_test

import (
	"path/filepath"
	"testing"

	"github.com/probtrack/probtrack/internal/database"
	"github.com/probtrack/probtrack/internal/database/models"
	"github.com/probtrack/probtrack/internal/ranking"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedPointSums(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []models.RatedPointSum{
		{UserID: "u1", PointSum: 1},
		{UserID: "u2", PointSum: 2},
		{UserID: "u3", PointSum: 1},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func TestRankRange(t *testing.T) {
	db := newTestDB(t)
	seedPointSums(t, db)

	entries, err := ranking.RankRange(db, 0, 3)
	require.NoError(t, err)
	require.Equal(t, []models.RatedPointSum{
		{UserID: "u2", PointSum: 2},
		{UserID: "u1", PointSum: 1},
		{UserID: "u3", PointSum: 1},
	}, entries)

	entries, err = ranking.RankRange(db, 1, 3)
	require.NoError(t, err)
	require.Equal(t, []models.RatedPointSum{
		{UserID: "u1", PointSum: 1},
		{UserID: "u3", PointSum: 1},
	}, entries)

	entries, err = ranking.RankRange(db, 0, 1)
	require.NoError(t, err)
	require.Equal(t, []models.RatedPointSum{{UserID: "u2", PointSum: 2}}, entries)
}

func TestRankRangeBeyondRows(t *testing.T) {
	db := newTestDB(t)
	seedPointSums(t, db)

	entries, err := ranking.RankRange(db, 10, 20)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRankRangeInvalid(t *testing.T) {
	db := newTestDB(t)
	seedPointSums(t, db)

	_, err := ranking.RankRange(db, 0, 2000)
	require.ErrorIs(t, err, ranking.ErrInvalidRange)

	_, err = ranking.RankRange(db, -1, 0)
	require.ErrorIs(t, err, ranking.ErrInvalidRange)

	_, err = ranking.RankRange(db, 0, -1)
	require.ErrorIs(t, err, ranking.ErrInvalidRange)
}

func TestRankRangeReversed(t *testing.T) {
	db := newTestDB(t)
	seedPointSums(t, db)

	// from > to is a defined empty result, not a bound violation.
	entries, err := ranking.RankRange(db, 1, 0)
	require.NoError(t, err)
	require.Empty(t, entries)

	// Even when the negative width would make any cap check vacuous.
	entries, err = ranking.RankRange(db, 5000, 0)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRankOfUser(t *testing.T) {
	db := newTestDB(t)
	seedPointSums(t, db)

	rank, err := ranking.RankOfUser(db, "u2")
	require.NoError(t, err)
	require.Equal(t, &ranking.UserRank{Count: 2, Rank: 0}, rank)

	rank, err = ranking.RankOfUser(db, "u1")
	require.NoError(t, err)
	require.Equal(t, &ranking.UserRank{Count: 1, Rank: 1}, rank)

	rank, err = ranking.RankOfUser(db, "u3")
	require.NoError(t, err)
	require.Equal(t, &ranking.UserRank{Count: 1, Rank: 1}, rank)
}

func TestRankOfUserCountEchoesPointSum(t *testing.T) {
	db := newTestDB(t)
	rows := []models.RatedPointSum{
		{UserID: "a", PointSum: 100},
		{UserID: "b", PointSum: 100},
		{UserID: "c", PointSum: 7},
	}
	require.NoError(t, db.Create(&rows).Error)

	// count carries the user's own point sum, not the size of its tie
	// group and not its position.
	rank, err := ranking.RankOfUser(db, "a")
	require.NoError(t, err)
	require.Equal(t, &ranking.UserRank{Count: 100, Rank: 0}, rank)

	rank, err = ranking.RankOfUser(db, "c")
	require.NoError(t, err)
	require.Equal(t, &ranking.UserRank{Count: 7, Rank: 2}, rank)
}

func TestRankOfUserCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedPointSums(t, db)

	for query, want := range map[string]ranking.UserRank{
		"U2": {Count: 2, Rank: 0},
		"U1": {Count: 1, Rank: 1},
		"U3": {Count: 1, Rank: 1},
	} {
		rank, err := ranking.RankOfUser(db, query)
		require.NoError(t, err, query)
		require.Equal(t, &want, rank, query)
	}
}

func TestRankOfUserNotFound(t *testing.T) {
	db := newTestDB(t)
	seedPointSums(t, db)

	_, err := ranking.RankOfUser(db, "not_exist")
	require.ErrorIs(t, err, ranking.ErrNotFound)
}
