package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionCreate       = "create"
	ActionStatusChange = "status_change"
	ActionTypeChange   = "type_change"
	ActionEdit         = "edit"
	ActionComment      = "comment"
)

// EventHistory is an append-only audit record of one state-changing action on
// an event. Entries are never updated; they only go away when the owning
// event is deleted and the delete cascades.
type EventHistory struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time         `json:"createdAt"`
	EventID        uint              `gorm:"index" json:"eventId"`
	Event          *Event            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID         uint              `json:"userId"`
	User           *User             `json:"-"`
	ActionType     string            `json:"actionType"`
	PreviousValue  string            `json:"previousValue"`
	NewValue       string            `json:"newValue"`
	AdditionalData datatypes.JSONMap `gorm:"type:jsonb" json:"additionalData"`
}
