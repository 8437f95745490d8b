package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventStatusOpen       = "open"
	EventStatusInProgress = "in-progress"
	EventStatusResolved   = "resolved"
	EventStatusClosed     = "closed"
)

const (
	EventStateRed    = "red"
	EventStateYellow = "yellow"
	EventStateGreen  = "green"
)

// Event domain object defining a field event pinned to a site map
type Event struct {
	ID           uint                        `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
	ProjectID    uint                        `gorm:"index" json:"projectId"`
	Project      *Project                    `json:"-"`
	MapID        uint                        `gorm:"index" json:"mapId"`
	Map          *SiteMap                    `json:"-"`
	CreatedByID  uint                        `json:"createdById"`
	CreatedBy    *User                       `json:"createdBy,omitempty"`
	Title        string                      `json:"title"`
	Description  string                      `json:"description"`
	Status       string                      `gorm:"default:open" json:"status"`
	State        string                      `json:"state"`
	ActiveLayers datatypes.JSONMap           `gorm:"type:jsonb;not null;default:'{}'" json:"activeLayers"`
	Tags         datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	PositionX    float64                     `json:"positionX"`
	PositionY    float64                     `json:"positionY"`
}
