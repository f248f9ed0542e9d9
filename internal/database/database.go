package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/probtrack/probtrack/internal/database/models"
	"go.uber.org/zap"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Init(dsn string) (*gorm.DB, error) {
	if !strings.HasPrefix(dsn, "file:") {
		if _, err := os.Stat(dsn); os.IsNotExist(err) {
			zap.S().Infof("database file not found at '%s', creating directory for it.", dsn)
			// Ensure the directory for the database file exists.
			dbDir := filepath.Dir(dsn)
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema. Exposed separately so tests can run against
// their own in-memory or temp-file databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.VirtualContest{},
		&models.VirtualContestItem{},
		&models.VirtualContestParticipant{},
		&models.RatedPointSum{},
	)
}
