package controllers

import (
	"net/http"
	"strconv"
	"time"
	"welfare-assistance-api/config"
	"welfare-assistance-api/models"

	"github.com/gin-gonic/gin"
)

// GetNotifications returns the account's notifications, newest first.
func GetNotifications(c *gin.Context) {
	accountID := currentAccountID(c)

	var notifications []models.Notification
	if err := config.DB.Where("account_id = ?", accountID).
		Order("create_at DESC").Limit(50).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	var unread int64
	config.DB.Model(&models.Notification{}).
		Where("account_id = ? AND is_read = ?", accountID, false).Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationRead marks one of the account's notifications read.
func MarkNotificationRead(c *gin.Context) {
	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	accountID := currentAccountID(c)

	now := time.Now()
	res := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND account_id = ?", notificationID, accountID).
		Updates(map[string]interface{}{
			"is_read":   true,
			"update_at": now,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllNotificationsRead clears the account's unread counter.
func MarkAllNotificationsRead(c *gin.Context) {
	accountID := currentAccountID(c)

	now := time.Now()
	if err := config.DB.Model(&models.Notification{}).
		Where("account_id = ? AND is_read = ?", accountID, false).
		Updates(map[string]interface{}{
			"is_read":   true,
			"update_at": now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
