package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/famly-app/family-reminder/models"
	"github.com/famly-app/family-reminder/services"
	"github.com/famly-app/family-reminder/utils"
)

// notificationLimit caps a single list read; notifications are never deleted,
// only the newest page is served.
const notificationLimit = 50

type NotificationController struct {
	DB        *gorm.DB
	Reminders *services.ReminderService
}

func NewNotificationController(db *gorm.DB, reminders *services.ReminderService) *NotificationController {
	return &NotificationController{DB: db, Reminders: reminders}
}

// GetNotifications lists the recipient's notifications, newest first, with
// the originating event's creator name joined in.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var notifs []models.Notification
	if err := nc.DB.Preload("Creator").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(notificationLimit).
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for i := range notifs {
		notifs[i].CreatorName = notifs[i].Creator.Username
	}
	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}

// GetUnreadCount returns how many of the recipient's notifications are unread.
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var count int64
	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unread count", gin.H{"count": count})
}

// MarkAsRead flips the read flag on one of the recipient's notifications.
// A notification owned by someone else reads as not found.
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	notifID, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	res := nc.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notifID, userID).
		Update("is_read", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", gin.H{"notif_id": notifID})
}

// MarkAllAsRead flips the read flag on everything the recipient has.
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	res := nc.DB.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("is_read", true)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", gin.H{
		"updated": res.RowsAffected,
	})
}

// TriggerReminders runs the reminder generator for today, on demand. The same
// logic the daily schedule runs; safe to call repeatedly.
func (nc *NotificationController) TriggerReminders(c *gin.Context) {
	processed, err := nc.Reminders.GenerateDueReminders(time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if processed == 0 {
		utils.RespondJSON(c, http.StatusOK, "No events found that need reminders today", gin.H{
			"eventsProcessed": 0,
		})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reminder notifications processed", gin.H{
		"eventsProcessed": processed,
	})
}
