package services

import (
	"github.com/Tzeak/yumlog/config"
	"github.com/Tzeak/yumlog/models"

	"gorm.io/gorm/clause"
)

// UpsertUser records the identity the provider handed us. Runs on every
// authenticated request, so it has to be a single cheap statement.
func UpsertUser(userID, phoneNumber string) error {
	user := models.User{ID: userID, PhoneNumber: phoneNumber}
	return config.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"phone_number", "updated_at"}),
		}).
		Create(&user).Error
}

func GetUserByID(userID string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
