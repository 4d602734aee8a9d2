package models

import "time"

const (
	NotificationTypeEventCreated = "event_created"
	NotificationTypeReminder     = "reminder"
)

// Notification is one message for one recipient about one event.
//
// The composite unique index over (user_id, event_id, type, created_date) is
// the deduplication index: at most one notification may exist per recipient,
// event, kind and calendar day. CreatedDate holds the creation timestamp
// truncated to a UTC calendar day ("2006-01-02") so the constraint works the
// same on mysql and sqlite. Inserts go through the index with ON CONFLICT DO
// NOTHING, so concurrent generators cannot produce duplicate rows.
type Notification struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_notifications_dedup" json:"user_id"`
	User    User `gorm:"foreignKey:UserID;references:ID" json:"-"`
	EventID uint `gorm:"not null;uniqueIndex:idx_notifications_dedup" json:"event_id"`
	// CreatorID is captured at generation time, not re-derived from the event.
	CreatorID   uint      `gorm:"not null" json:"creator_id"`
	Creator     User      `gorm:"foreignKey:CreatorID;references:ID" json:"-"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Type        string    `gorm:"type:varchar(32);not null;default:'event_created';uniqueIndex:idx_notifications_dedup" json:"type"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_notifications_dedup" json:"-"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`

	CreatorName string `gorm:"-" json:"creator_name,omitempty"`
}
