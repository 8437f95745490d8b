package history

import (
	"context"
	"fmt"
	"time"

	"github.com/sitegrid/fm-manager/pkg/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

// Entry is a history record joined with the actor's username and the event
// title for display.
type Entry struct {
	ID             uint              `json:"id"`
	CreatedAt      time.Time         `json:"createdAt"`
	EventID        uint              `json:"eventId"`
	UserID         uint              `json:"userId"`
	ActorUsername  string            `json:"actorUsername"`
	EventTitle     string            `json:"eventTitle"`
	ActionType     string            `json:"actionType"`
	PreviousValue  string            `json:"previousValue"`
	NewValue       string            `json:"newValue"`
	AdditionalData datatypes.JSONMap `gorm:"type:jsonb" json:"additionalData"`
}

// record appends one immutable entry. It runs in its own persistence scope;
// the event mutation it describes has already been committed.
func (r repository) record(ctx context.Context, entry *model.EventHistory) error {
	err := r.db.WithContext(ctx).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to record history for event %d: %v", entry.EventID, err)
	}
	return nil
}

func (r repository) findByEvent(ctx context.Context, eventId uint, skip, limit int, newestFirst bool) ([]Entry, error) {
	return r.find(ctx, "event_histories.event_id = ?", eventId, skip, limit, newestFirst)
}

func (r repository) findByProject(ctx context.Context, projectId uint, skip, limit int, newestFirst bool) ([]Entry, error) {
	return r.find(ctx, "events.project_id = ?", projectId, skip, limit, newestFirst)
}

func (r repository) find(ctx context.Context, condition string, id uint, skip, limit int, newestFirst bool) ([]Entry, error) {
	order := "event_histories.created_at DESC"
	if !newestFirst {
		order = "event_histories.created_at ASC"
	}

	entries := []Entry{}
	err := r.db.
		WithContext(ctx).
		Model(&model.EventHistory{}).
		Select("event_histories.id, event_histories.created_at, event_histories.event_id, event_histories.user_id, event_histories.action_type, event_histories.previous_value, event_histories.new_value, event_histories.additional_data, users.username AS actor_username, events.title AS event_title").
		Joins("LEFT JOIN users ON users.id = event_histories.user_id").
		Joins("LEFT JOIN events ON events.id = event_histories.event_id").
		Where(condition, id).
		Order(order).
		Offset(skip).
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find history: %v", err)
	}

	return entries, nil
}
