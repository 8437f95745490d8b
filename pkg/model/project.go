package model

import "time"

// Project domain object defining a construction project
type Project struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"index;unique" json:"name"`
	Users     []User    `gorm:"many2many:project_members;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"users"`
	Admins    []User    `gorm:"many2many:project_admins;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"admins"`
	Maps      []SiteMap `json:"maps"`
}

// SiteMap is a site plan events are pinned to. ImagePath is an opaque
// reference into the attachment store, validated elsewhere.
type SiteMap struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ProjectID uint      `gorm:"index" json:"projectId"`
	Name      string    `json:"name"`
	ImagePath string    `json:"imagePath"`
}
