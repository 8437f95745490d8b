package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/sitegrid/fm-manager/internal/errdef"
	"github.com/sitegrid/fm-manager/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) Create(ctx context.Context, event *model.Event) error {
	if event.Title == "" {
		return errdef.NewBadRequest("event title is required")
	}
	if event.ProjectID == 0 || event.MapID == 0 {
		return errdef.NewBadRequest("event must reference a project and a map")
	}
	if event.Status == "" {
		event.Status = model.EventStatusOpen
	}

	event.ActiveLayers = normalizeLayersOnWrite(event.ActiveLayers)

	return r.db.WithContext(ctx).Create(&event).Error
}

func (r repository) FindById(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.
		WithContext(ctx).
		Preload("CreatedBy").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find event with id %d", id)
	}
	if err != nil {
		return nil, err
	}

	normalizeLayersOnRead(event)

	return event, nil
}

func (r repository) FindByProject(ctx context.Context, projectId uint, skip, limit int) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.
		WithContext(ctx).
		Where("project_id = ?", projectId).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events of project %d: %v", projectId, err)
	}

	for _, event := range events {
		normalizeLayersOnRead(event)
	}

	return events, nil
}

func (r repository) Save(ctx context.Context, event *model.Event) error {
	event.ActiveLayers = normalizeLayersOnWrite(event.ActiveLayers)
	return r.db.WithContext(ctx).Save(&event).Error
}

// Delete removes the event. History, notifications and comments referencing
// it go with it through the storage-level cascade.
func (r repository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx).Unscoped().Delete(&model.Event{}, id)
	if db.Error != nil {
		return db.Error
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find event with id %d", id)
	}
	return nil
}

func (r repository) CreateComment(ctx context.Context, comment *model.Comment) error {
	if comment.Text == "" {
		return errdef.NewBadRequest("comment text is required")
	}
	return r.db.WithContext(ctx).Create(&comment).Error
}
