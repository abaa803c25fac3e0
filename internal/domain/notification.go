package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeSystem         NotificationType = "SYSTEM"
	NotificationTypeAlert          NotificationType = "ALERT"
	NotificationTypeReminder       NotificationType = "REMINDER"
	NotificationTypeRecommendation NotificationType = "RECOMMENDATION"
)

var NotificationTypes = NewEnumSet("typeNotification",
	NotificationTypeSystem,
	NotificationTypeAlert,
	NotificationTypeReminder,
	NotificationTypeRecommendation,
)

func ParseNotificationType(raw string) (NotificationType, error) {
	return NotificationTypes.Parse(raw)
}

// Notification is a stored message for a user. CreatedAt is set once when the
// record is created.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	IsRead    bool
	UserID    string
}

func NewNotification(t NotificationType, message string, isRead bool, userID string, now time.Time) Notification {
	return Notification{
		ID:        uuid.New().String(),
		Type:      t,
		Message:   message,
		CreatedAt: now,
		IsRead:    isRead,
		UserID:    userID,
	}
}
