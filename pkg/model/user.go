package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User domain object defining a user
type User struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Email         string    `gorm:"index;unique" json:"email"`
	Username      string    `gorm:"index;unique" json:"username"`
	Password      string    `json:"-"`
	EmailToken    uuid.UUID `json:"-"`
	Validated     bool      `json:"validated"`
	Projects      []Project `gorm:"many2many:project_members;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"projects"`
	AdminProjects []Project `gorm:"many2many:project_admins;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"adminProjects"`
}

func (u *User) IsMemberOf(projectId uint) bool {
	return u.IsAdminOf(projectId) || u.contains(projectId, u.Projects)
}

// IsAdminOf reports whether the user carries the elevated capability for the
// project, required to close or reopen events.
func (u *User) IsAdminOf(projectId uint) bool {
	return u.contains(projectId, u.AdminProjects)
}

func (u *User) contains(projectId uint, projects []Project) bool {
	for _, p := range projects {
		if projectId == p.ID {
			return true
		}
	}
	return false
}

type userCtxKey int

var userKey userCtxKey

// NewContextWithUser returns a new [context.Context] that carries the acting user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the user stored in ctx, if any.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
