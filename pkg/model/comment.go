package model

import "time"

// Comment domain object defining a comment on an event
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	EventID   uint      `gorm:"index" json:"eventId"`
	Event     *Event    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint      `json:"userId"`
	User      *User     `json:"-"`
	Text      string    `json:"text"`
}
