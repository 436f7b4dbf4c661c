package services

import (
	"log"

	"github.com/darshanik-apparels/b2b-api/models"
	"gorm.io/gorm"
)

// RecordActivity appends an entry to the user's activity feed. Activities
// are best-effort: failures are logged and swallowed so they can never fail
// the order, sample, or design mutation that emitted them.
func RecordActivity(db *gorm.DB, userID uint, activityType string, relatedID uint, title, description string) {
	activity := models.Activity{
		UserID:      userID,
		Type:        activityType,
		RelatedID:   relatedID,
		Title:       title,
		Description: description,
	}

	if err := db.Create(&activity).Error; err != nil {
		log.Printf("Failed to record %s activity for user %d: %v", activityType, userID, err)
	}
}
