package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darshanik-apparels/b2b-api/config"
	"github.com/darshanik-apparels/b2b-api/models"
)

// ListActivities handles GET /api/v1/activities - returns the client's
// activity feed, newest first
func ListActivities(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var activities []models.Activity
	if err := db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch activities",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    activities,
	})
}
