package model

import "time"

const (
	NotificationMention          = "mention"
	NotificationEventInteraction = "event_interaction"
	NotificationAdmin            = "admin_notification"
	NotificationComment          = "comment"
)

// Notification domain object defining a message surfaced to a single recipient
type Notification struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	UserID           uint      `gorm:"index" json:"userId"`
	User             *User     `json:"-"`
	Message          string    `json:"message"`
	Link             string    `json:"link"`
	NotificationType string    `json:"notificationType"`
	EventID          *uint     `json:"eventId,omitempty"`
	Event            *Event    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CommentID        *uint     `json:"commentId,omitempty"`
	Comment          *Comment  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Read             bool      `json:"read"`
}
