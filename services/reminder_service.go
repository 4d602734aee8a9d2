package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/famly-app/family-reminder/models"
	"github.com/famly-app/family-reminder/utils"
)

// ReminderService generates reminder notifications and the event_created
// fan-out. All writes go through InsertIfAbsent, which relies on the
// notifications dedup index, so the daily cron, the manual trigger and any
// concurrent caller can run the same day without producing duplicate rows.
type ReminderService struct {
	DB *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{DB: db}
}

// GenerateDueReminders creates the reminder notifications that are due on the
// calendar day of asOf (UTC). An event is due when event_date - reminder_days
// equals that day. Every family member gets one, the creator included.
// Returns the number of events scanned. A repository error aborts the run;
// notifications already inserted stay.
func (rs *ReminderService) GenerateDueReminders(asOf time.Time) (int, error) {
	day := utils.TruncateToDay(asOf)
	dayKey := utils.DayKey(day)

	events, err := rs.ListEventsDueOn(day)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	var users []models.User
	if err := rs.DB.Find(&users).Error; err != nil {
		return 0, err
	}

	for _, event := range events {
		title := "Reminder: " + event.Title
		message := reminderMessage(event.Title, event.Creator.Username, event.ReminderDays)

		for _, user := range users {
			notif := models.Notification{
				UserID:      user.ID,
				EventID:     event.ID,
				CreatorID:   event.CreatorID,
				Title:       title,
				Message:     message,
				Type:        models.NotificationTypeReminder,
				CreatedDate: dayKey,
			}
			inserted, err := rs.InsertIfAbsent(&notif)
			if err != nil {
				return 0, err
			}
			if inserted {
				utils.InfoLogger.Printf("Created reminder for user %s about event %q", user.Username, event.Title)
			}
		}
	}

	return len(events), nil
}

// ListEventsDueOn returns the events whose reminder window opens on the given
// calendar day. The filter runs in Go: sqlite and mysql spell date arithmetic
// differently, and a family's event list is small.
func (rs *ReminderService) ListEventsDueOn(day time.Time) ([]models.Event, error) {
	var events []models.Event
	if err := rs.DB.Preload("Creator").Find(&events).Error; err != nil {
		return nil, err
	}

	dayKey := utils.DayKey(day)
	due := make([]models.Event, 0)
	for _, e := range events {
		dueOn := e.EventDate.AddDate(0, 0, -e.ReminderDays)
		if utils.DayKey(dueOn) == dayKey {
			due = append(due, e)
		}
	}
	return due, nil
}

// NotifyEventCreated fans out an event_created notification to every family
// member except the creator. Called synchronously from the create handler.
func (rs *ReminderService) NotifyEventCreated(event models.Event) error {
	var creator models.User
	if err := rs.DB.First(&creator, event.CreatorID).Error; err != nil {
		return err
	}

	var users []models.User
	if err := rs.DB.Where("id != ?", event.CreatorID).Find(&users).Error; err != nil {
		return err
	}

	message := fmt.Sprintf("%s created a new %s: %q", creator.Username, event.EventType, event.Title)
	dayKey := utils.DayKey(time.Now())

	for _, user := range users {
		notif := models.Notification{
			UserID:      user.ID,
			EventID:     event.ID,
			CreatorID:   event.CreatorID,
			Title:       "New Event: " + event.Title,
			Message:     message,
			Type:        models.NotificationTypeEventCreated,
			CreatedDate: dayKey,
		}
		if _, err := rs.InsertIfAbsent(&notif); err != nil {
			return err
		}
	}
	return nil
}

// InsertIfAbsent writes the notification unless a row with the same
// (user, event, type, calendar day) already exists. The check and the write
// are one conditional insert against the unique index, so two callers racing
// on the same key cannot both insert. Reports whether a row was created;
// losing the race is not an error.
func (rs *ReminderService) InsertIfAbsent(n *models.Notification) (bool, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.CreatedDate == "" {
		n.CreatedDate = utils.DayKey(n.CreatedAt)
	}

	res := rs.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(n)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether a notification is already present for the dedup key.
func (rs *ReminderService) Exists(userID, eventID uint, kind string, day time.Time) (bool, error) {
	var count int64
	err := rs.DB.Model(&models.Notification{}).
		Where("user_id = ? AND event_id = ? AND type = ? AND created_date = ?",
			userID, eventID, kind, utils.DayKey(day)).
		Count(&count).Error
	return count > 0, err
}

func reminderMessage(title, creatorName string, daysUntil int) string {
	when := "today"
	switch {
	case daysUntil == 1:
		when = "in 1 day"
	case daysUntil > 1:
		when = fmt.Sprintf("in %d days", daysUntil)
	}
	return fmt.Sprintf("Don't forget: %q is %s! Created by %s.", title, when, creatorName)
}
