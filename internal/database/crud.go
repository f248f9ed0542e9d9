package database

import (
	"github.com/probtrack/probtrack/internal/database/models"
	"gorm.io/gorm"
)

// User CRUD
func CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreateUser returns the user for the given provider identity, creating
// the record on first login.
func GetOrCreateUser(db *gorm.DB, id string) (*models.User, error) {
	user, err := GetUserByID(db, id)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	newUser := models.User{ID: id}
	if err := CreateUser(db, &newUser); err != nil {
		return nil, err
	}
	return &newUser, nil
}

// UpdateAtCoderUserID links (or relinks) the external judge-site handle.
func UpdateAtCoderUserID(db *gorm.DB, userID, atcoderUserID string) error {
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("at_coder_user_id", atcoderUserID).Error
}
