package models

import "gorm.io/gorm"

// Migrate creates or updates the schema for every domain table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&AssistanceRequest{},
		&Pledge{},
		&Survey{},
		&SurveyAttachment{},
		&Notification{},
	)
}
