package history

import (
	"context"

	"github.com/sitegrid/fm-manager/pkg/model"
	"gorm.io/datatypes"
)

const defaultPageSize = 50

func NewService(repository *repository) *Service {
	return &Service{repository}
}

type Service struct {
	repository *repository
}

// Record appends one immutable audit entry describing an action on an event.
// Callers invoke it after the primary mutation has been committed; a failure
// here must not be allowed to fail the mutation.
func (s Service) Record(ctx context.Context, eventId, actorId uint, actionType, previousValue, newValue string, additionalData map[string]any) error {
	entry := &model.EventHistory{
		EventID:        eventId,
		UserID:         actorId,
		ActionType:     actionType,
		PreviousValue:  previousValue,
		NewValue:       newValue,
		AdditionalData: datatypes.JSONMap(additionalData),
	}
	return s.repository.record(ctx, entry)
}

// FindByEvent returns the event's history, newest first by default. An
// unknown event id yields an empty slice, not an error, so read paths stay
// resilient after deletes.
func (s Service) FindByEvent(ctx context.Context, eventId uint, skip, limit int, newestFirst bool) ([]Entry, error) {
	return s.repository.findByEvent(ctx, eventId, skip, normalizeLimit(limit), newestFirst)
}

// FindByProject returns the history of all the project's events.
func (s Service) FindByProject(ctx context.Context, projectId uint, skip, limit int, newestFirst bool) ([]Entry, error) {
	return s.repository.findByProject(ctx, projectId, skip, normalizeLimit(limit), newestFirst)
}

func normalizeLimit(limit int) int {
	if limit < 1 {
		return defaultPageSize
	}
	return limit
}
