package models

import "time"

// Valid values for Event.EventType.
var EventTypes = []string{"birthday", "anniversary", "holiday", "appointment", "meeting", "general"}

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	Creator     User      `gorm:"foreignKey:CreatorID;references:ID" json:"-"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	EventDate   time.Time `gorm:"type:date;not null;index" json:"event_date"`
	EventType   string    `gorm:"type:varchar(32);not null;default:'general'" json:"event_type"`
	// ReminderDays is the reminder window: the reminder becomes due on
	// event_date - reminder_days. No gorm default here: gorm drops
	// zero-valued fields on insert when one is set, which would turn a
	// same-day window into a 7-day one. The controller applies the default.
	ReminderDays int       `gorm:"not null" json:"reminder_days"`
	IsRecurring  bool      `gorm:"not null;default:false" json:"is_recurring"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`

	CreatorName string `gorm:"-" json:"creator_name,omitempty"`
}

func ValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}
