// Package contest owns the virtual-contest state machine: creation,
// full-replace updates, item management, membership and visibility-filtered
// listing. It is the only writer of the contest relations.
package contest

import (
	"errors"

	"github.com/probtrack/probtrack/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound  = errors.New("contest: not found")
	ErrForbidden = errors.New("contest: caller is not the owner")
)

// recentLimit bounds the public listing; the frontend never pages past it.
const recentLimit = 500

// Params carries every mutable contest field. IsPublic is a pointer because
// omission means public, both on create and on update. Updating without an
// explicit is_public therefore makes a private contest public again; that
// follows the historical behavior of the API and is kept on purpose.
type Params struct {
	Title            string
	Memo             string
	StartEpochSecond int64
	DurationSecond   int64
	PenaltySecond    int64
	Mode             *string
	IsPublic         *bool
}

// Item is one entry of a full problem-set replace.
type Item struct {
	ProblemID string
	Point     *int64
	Order     *int64
}

// Detail is the full read model of a single contest.
type Detail struct {
	Info         models.VirtualContest       `json:"info"`
	Problems     []models.VirtualContestItem `json:"problems"`
	Participants []string                    `json:"participants"`
}

func isPublic(p Params) bool {
	if p.IsPublic == nil {
		return true
	}
	return *p.IsPublic
}

// Create stores a new contest owned by ownerID and returns its generated id.
func Create(db *gorm.DB, ownerID string, p Params) (string, error) {
	c := models.VirtualContest{
		ID:               uuid.NewString(),
		OwnerUserID:      ownerID,
		Title:            p.Title,
		Memo:             p.Memo,
		StartEpochSecond: p.StartEpochSecond,
		DurationSecond:   p.DurationSecond,
		PenaltySecond:    p.PenaltySecond,
		Mode:             p.Mode,
		IsPublic:         isPublic(p),
	}
	if err := db.Create(&c).Error; err != nil {
		return "", err
	}
	return c.ID, nil
}

// requireOwner is the single ownership gate for every mutating operation.
func requireOwner(db *gorm.DB, callerID, contestID string) (*models.VirtualContest, error) {
	var c models.VirtualContest
	err := db.Where("id = ?", contestID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.OwnerUserID != callerID {
		return nil, ErrForbidden
	}
	return &c, nil
}

// Update replaces every mutable field of the contest. The owner never
// changes, whoever calls and whatever the payload says.
func Update(db *gorm.DB, callerID, contestID string, p Params) error {
	if _, err := requireOwner(db, callerID, contestID); err != nil {
		return err
	}
	return db.Model(&models.VirtualContest{}).
		Where("id = ?", contestID).
		Updates(map[string]interface{}{
			"title":              p.Title,
			"memo":               p.Memo,
			"start_epoch_second": p.StartEpochSecond,
			"duration_second":    p.DurationSecond,
			"penalty_second":     p.PenaltySecond,
			"mode":               p.Mode,
			"is_public":          isPublic(p),
		}).Error
}

// Get returns the contest with its ordered problem list and the judge-site
// handles of its participants. Direct fetch ignores visibility; is_public
// only filters the recent listing.
func Get(db *gorm.DB, contestID string) (*Detail, error) {
	var c models.VirtualContest
	err := db.Where("id = ?", contestID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items := make([]models.VirtualContestItem, 0)
	if err := db.Where("contest_id = ?", contestID).
		Order("`order`, problem_id").
		Find(&items).Error; err != nil {
		return nil, err
	}

	type participantRow struct {
		UserID        string
		AtCoderUserID *string
	}
	var rows []participantRow
	if err := db.Model(&models.VirtualContestParticipant{}).
		Select("virtual_contest_participants.user_id, users.at_coder_user_id").
		Joins("LEFT JOIN users ON users.id = virtual_contest_participants.user_id").
		Where("virtual_contest_participants.contest_id = ?", contestID).
		Order("virtual_contest_participants.created_at, virtual_contest_participants.user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	participants := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.AtCoderUserID != nil && *r.AtCoderUserID != "" {
			participants = append(participants, *r.AtCoderUserID)
		} else {
			participants = append(participants, r.UserID)
		}
	}

	return &Detail{Info: c, Problems: items, Participants: participants}, nil
}

// ListOwned returns every contest owned by userID, newest first, regardless
// of visibility.
func ListOwned(db *gorm.DB, userID string) ([]models.VirtualContest, error) {
	contests := make([]models.VirtualContest, 0)
	err := db.Where("owner_user_id = ?", userID).
		Order("created_at desc").
		Find(&contests).Error
	return contests, err
}

// ListJoined returns every contest userID has joined, most recent join
// first, regardless of visibility.
func ListJoined(db *gorm.DB, userID string) ([]models.VirtualContest, error) {
	contests := make([]models.VirtualContest, 0)
	err := db.Model(&models.VirtualContest{}).
		Joins("JOIN virtual_contest_participants p ON p.contest_id = virtual_contests.id").
		Where("p.user_id = ?", userID).
		Order("p.created_at desc").
		Find(&contests).Error
	return contests, err
}

// ListRecent returns public contests only, newest first.
func ListRecent(db *gorm.DB) ([]models.VirtualContest, error) {
	contests := make([]models.VirtualContest, 0)
	err := db.Where("is_public = ?", true).
		Order("created_at desc").
		Limit(recentLimit).
		Find(&contests).Error
	return contests, err
}

// Join adds userID to the contest. Joining twice is a no-op.
func Join(db *gorm.DB, userID, contestID string) error {
	if err := exists(db, contestID); err != nil {
		return err
	}
	p := models.VirtualContestParticipant{ContestID: contestID, UserID: userID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error
}

// Leave removes userID from the contest. Leaving a contest not joined is a
// no-op.
func Leave(db *gorm.DB, userID, contestID string) error {
	if err := exists(db, contestID); err != nil {
		return err
	}
	return db.Where("contest_id = ? AND user_id = ?", contestID, userID).
		Delete(&models.VirtualContestParticipant{}).Error
}

func exists(db *gorm.DB, contestID string) error {
	var count int64
	if err := db.Model(&models.VirtualContest{}).
		Where("id = ?", contestID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateItems atomically replaces the whole problem set of the contest:
// items in the new list are upserted by problem id, items absent from it
// are removed. Re-issuing the same list leaves the stored state unchanged.
func UpdateItems(db *gorm.DB, callerID, contestID string, items []Item) error {
	if _, err := requireOwner(db, callerID, contestID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		keep := make([]string, 0, len(items))
		for _, item := range items {
			keep = append(keep, item.ProblemID)
		}

		stale := tx.Where("contest_id = ?", contestID)
		if len(keep) > 0 {
			stale = stale.Where("problem_id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.VirtualContestItem{}).Error; err != nil {
			return err
		}

		for _, item := range items {
			row := models.VirtualContestItem{
				ContestID: contestID,
				ProblemID: item.ProblemID,
				Point:     item.Point,
				Order:     item.Order,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "contest_id"}, {Name: "problem_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"point", "order"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
