package event

import (
	"slices"

	"github.com/sitegrid/fm-manager/pkg/model"
	"gorm.io/datatypes"
)

// UpdateEvent lists the fields a mutation may touch. A nil field is left
// alone.
type UpdateEvent struct {
	Title       *string
	Description *string
	Status      *string
	State       *string
	Tags        *[]string
}

// Apply mutates only the set fields and returns the names of the fields
// whose value actually changed. It does not persist; committing the change
// is the caller's call.
func (u UpdateEvent) Apply(event *model.Event) []string {
	var changed []string

	if u.Title != nil && *u.Title != event.Title {
		event.Title = *u.Title
		changed = append(changed, "title")
	}
	if u.Description != nil && *u.Description != event.Description {
		event.Description = *u.Description
		changed = append(changed, "description")
	}
	if u.Status != nil && *u.Status != event.Status {
		event.Status = *u.Status
		changed = append(changed, "status")
	}
	if u.State != nil && *u.State != event.State {
		event.State = *u.State
		changed = append(changed, "state")
	}
	if u.Tags != nil && !slices.Equal(*u.Tags, []string(event.Tags)) {
		event.Tags = datatypes.NewJSONSlice(*u.Tags)
		changed = append(changed, "tags")
	}

	return changed
}
