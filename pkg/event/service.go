package event

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/sitegrid/fm-manager/internal/errdef"
	"github.com/sitegrid/fm-manager/pkg/model"
)

type eventStore interface {
	Create(ctx context.Context, event *model.Event) error
	FindById(ctx context.Context, id uint) (*model.Event, error)
	FindByProject(ctx context.Context, projectId uint, skip, limit int) ([]*model.Event, error)
	Save(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uint) error
	CreateComment(ctx context.Context, comment *model.Comment) error
}

type historyRecorder interface {
	Record(ctx context.Context, eventId, actorId uint, actionType, previousValue, newValue string, additionalData map[string]any) error
}

type fanout interface {
	MentionNotifications(ctx context.Context, actor *model.User, event *model.Event, comment *model.Comment, text string) error
	OwnerNotification(ctx context.Context, actor *model.User, event *model.Event, actionDescription string) error
	AdminBroadcast(ctx context.Context, actor *model.User, event *model.Event, actionDescription string) error
	CommentNotification(ctx context.Context, actor *model.User, event *model.Event, comment *model.Comment) error
}

func NewService(logger *slog.Logger, repository eventStore, history historyRecorder, notifications fanout) *Service {
	return &Service{
		logger:        logger,
		repository:    repository,
		history:       history,
		notifications: notifications,
	}
}

// Service coordinates event mutations: the primary commit, the audit trail
// and the notification fan-out. Only the primary commit can fail a mutation;
// everything after it is best effort and failures there are logged and
// swallowed so a flaky audit or notification store can't take field
// reporting down with it.
type Service struct {
	logger        *slog.Logger
	repository    eventStore
	history       historyRecorder
	notifications fanout
}

// Create persists a new event and records its birth in the audit trail.
func (s Service) Create(ctx context.Context, actor *model.User, event *model.Event) (*model.Event, error) {
	if !actor.IsMemberOf(event.ProjectID) {
		return nil, errdef.NewForbidden("not a member of project %d", event.ProjectID)
	}

	event.CreatedByID = actor.ID

	err := s.repository.Create(ctx, event)
	if err != nil {
		if errdef.IsBadRequest(err) {
			return nil, err
		}
		return nil, errdef.NewPersistence("failed to create event: %v", err)
	}

	// committed; from here on nothing may fail the call
	if err := s.history.Record(ctx, event.ID, actor.ID, model.ActionCreate, "", event.Status, nil); err != nil {
		s.logger.ErrorContext(ctx, "failed to record event creation", "event", event.ID, "error", err)
	}

	if err := s.notifications.AdminBroadcast(ctx, actor, event, "created the event"); err != nil {
		s.logger.ErrorContext(ctx, "failed to notify admins of event creation", "event", event.ID, "error", err)
	}

	if event.Description != "" {
		if err := s.notifications.MentionNotifications(ctx, actor, event, nil, event.Description); err != nil {
			s.logger.ErrorContext(ctx, "failed to notify mentioned users", "event", event.ID, "error", err)
		}
	}

	return event, nil
}

func (s Service) FindById(ctx context.Context, actor *model.User, id uint) (*model.Event, error) {
	event, err := s.repository.FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsMemberOf(event.ProjectID) {
		return nil, errdef.NewForbidden("not a member of project %d", event.ProjectID)
	}

	return event, nil
}

func (s Service) FindByProject(ctx context.Context, actor *model.User, projectId uint, skip, limit int) ([]*model.Event, error) {
	if !actor.IsMemberOf(projectId) {
		return nil, errdef.NewForbidden("not a member of project %d", projectId)
	}
	if limit < 1 {
		limit = 50
	}
	return s.repository.FindByProject(ctx, projectId, skip, limit)
}

// Update applies a partial field set to the event. Closing an event and
// reopening a closed one require the project-admin capability; every other
// status or state transition is open to any member.
//
// Two concurrent updates to the same event are not serialized; the last
// write wins. Known gap, kept deliberately.
func (s Service) Update(ctx context.Context, actor *model.User, id uint, update UpdateEvent) (*model.Event, error) {
	event, err := s.repository.FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsMemberOf(event.ProjectID) {
		return nil, errdef.NewForbidden("not a member of project %d", event.ProjectID)
	}

	if update.Status != nil {
		if err := validateTransition(actor, event, *update.Status); err != nil {
			return nil, err
		}
	}

	previousStatus := event.Status
	previousState := event.State

	changed := update.Apply(event)
	if len(changed) == 0 {
		return event, nil
	}

	err = s.repository.Save(ctx, event)
	if err != nil {
		return nil, errdef.NewPersistence("failed to update event %d: %v", id, err)
	}

	// committed; history and notifications are each their own isolated,
	// best-effort step
	statusChanged := previousStatus != event.Status
	stateChanged := previousState != event.State

	if statusChanged {
		if err := s.history.Record(ctx, event.ID, actor.ID, model.ActionStatusChange, previousStatus, event.Status, nil); err != nil {
			s.logger.ErrorContext(ctx, "failed to record status change", "event", event.ID, "error", err)
		}
	}
	if stateChanged {
		if err := s.history.Record(ctx, event.ID, actor.ID, model.ActionTypeChange, previousState, event.State, nil); err != nil {
			s.logger.ErrorContext(ctx, "failed to record state change", "event", event.ID, "error", err)
		}
	}
	if edited := editedFields(changed); len(edited) > 0 {
		additionalData := map[string]any{"fields": edited}
		if err := s.history.Record(ctx, event.ID, actor.ID, model.ActionEdit, "", "", additionalData); err != nil {
			s.logger.ErrorContext(ctx, "failed to record edit", "event", event.ID, "error", err)
		}
	}

	description := describeChange(changed, event)

	if err := s.notifications.OwnerNotification(ctx, actor, event, description); err != nil {
		s.logger.ErrorContext(ctx, "failed to notify event owner", "event", event.ID, "error", err)
	}
	if err := s.notifications.AdminBroadcast(ctx, actor, event, description); err != nil {
		s.logger.ErrorContext(ctx, "failed to notify admins", "event", event.ID, "error", err)
	}
	if update.Description != nil && slices.Contains(changed, "description") {
		if err := s.notifications.MentionNotifications(ctx, actor, event, nil, event.Description); err != nil {
			s.logger.ErrorContext(ctx, "failed to notify mentioned users", "event", event.ID, "error", err)
		}
	}

	return event, nil
}

// Delete removes the event. History and notifications disappear with it via
// the storage cascade; nothing is recorded about the deletion itself.
func (s Service) Delete(ctx context.Context, actor *model.User, id uint) error {
	event, err := s.repository.FindById(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsMemberOf(event.ProjectID) {
		return errdef.NewForbidden("not a member of project %d", event.ProjectID)
	}

	err = s.repository.Delete(ctx, id)
	if err != nil {
		if errdef.IsNotFound(err) {
			return err
		}
		return errdef.NewPersistence("failed to delete event %d: %v", id, err)
	}

	return nil
}

// AddComment appends a comment to the event and fans out to the owner and
// anyone mentioned in the comment text.
func (s Service) AddComment(ctx context.Context, actor *model.User, eventId uint, text string) (*model.Comment, error) {
	event, err := s.repository.FindById(ctx, eventId)
	if err != nil {
		return nil, err
	}

	if !actor.IsMemberOf(event.ProjectID) {
		return nil, errdef.NewForbidden("not a member of project %d", event.ProjectID)
	}

	comment := &model.Comment{
		EventID: event.ID,
		UserID:  actor.ID,
		Text:    text,
	}

	err = s.repository.CreateComment(ctx, comment)
	if err != nil {
		if errdef.IsBadRequest(err) {
			return nil, err
		}
		return nil, errdef.NewPersistence("failed to comment on event %d: %v", eventId, err)
	}

	if err := s.history.Record(ctx, event.ID, actor.ID, model.ActionComment, "", text, nil); err != nil {
		s.logger.ErrorContext(ctx, "failed to record comment", "event", event.ID, "error", err)
	}

	if err := s.notifications.CommentNotification(ctx, actor, event, comment); err != nil {
		s.logger.ErrorContext(ctx, "failed to notify event owner of comment", "event", event.ID, "error", err)
	}
	if err := s.notifications.MentionNotifications(ctx, actor, event, comment, text); err != nil {
		s.logger.ErrorContext(ctx, "failed to notify mentioned users", "event", event.ID, "error", err)
	}

	return comment, nil
}

// validateTransition gates the closed status in both directions. All other
// transitions are open to any project member.
func validateTransition(actor *model.User, event *model.Event, newStatus string) error {
	if newStatus == event.Status {
		return nil
	}

	intoClosed := newStatus == model.EventStatusClosed
	outOfClosed := event.Status == model.EventStatusClosed

	if (intoClosed || outOfClosed) && !actor.IsAdminOf(event.ProjectID) {
		if intoClosed {
			return errdef.NewForbidden("only project admins can close events")
		}
		return errdef.NewForbidden("only project admins can reopen closed events")
	}

	return nil
}

func editedFields(changed []string) []string {
	var edited []string
	for _, field := range changed {
		if field != "status" && field != "state" {
			edited = append(edited, field)
		}
	}
	return edited
}

// describeChange renders the net change for notification messages, favoring
// the most significant field.
func describeChange(changed []string, event *model.Event) string {
	if slices.Contains(changed, "status") {
		return fmt.Sprintf("changed the status to %q", event.Status)
	}
	if slices.Contains(changed, "state") {
		return fmt.Sprintf("changed the state to %q", event.State)
	}
	return "edited the event"
}
