package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/sitegrid/fm-manager/pkg/mention"
	"github.com/sitegrid/fm-manager/pkg/model"
)

type userDirectory interface {
	FindByUsernames(ctx context.Context, usernames []string) ([]*model.User, error)
}

type adminDirectory interface {
	FindAdmins(ctx context.Context, projectId uint) ([]*model.User, error)
}

type creator interface {
	Create(ctx context.Context, notification *model.Notification) error
}

func NewFanout(notificationService creator, userService userDirectory, projectService adminDirectory, uiUrl string) *Fanout {
	return &Fanout{
		notificationService: notificationService,
		userService:         userService,
		projectService:      projectService,
		uiUrl:               uiUrl,
	}
}

// Fanout builds notification records for mentioned users, the event owner and
// project admins. Policies are independent; the caller decides which to run
// and what to do with failures.
type Fanout struct {
	notificationService creator
	userService         userDirectory
	projectService      adminDirectory
	uiUrl               string

	// SuppressSelfMentions drops a mention of the acting user themself.
	// Default off, matching the behavior the product has always had; product
	// owners have been asked whether suppression is wanted.
	SuppressSelfMentions bool
}

// MentionNotifications notifies every resolved @username in text. Duplicate
// mentions were already collapsed by the extractor; unknown usernames resolve
// to nothing and are dropped silently.
func (f Fanout) MentionNotifications(ctx context.Context, actor *model.User, event *model.Event, comment *model.Comment, text string) error {
	candidates := mention.Extract(text)
	if len(candidates) == 0 {
		return nil
	}

	users, err := f.userService.FindByUsernames(ctx, candidates)
	if err != nil {
		return err
	}

	var errs []error
	for _, u := range users {
		if f.SuppressSelfMentions && u.ID == actor.ID {
			continue
		}

		notification := &model.Notification{
			UserID:           u.ID,
			Message:          fmt.Sprintf("%s mentioned you in %q", actor.Username, event.Title),
			Link:             f.eventLink(event),
			NotificationType: model.NotificationMention,
			EventID:          &event.ID,
		}
		if comment != nil {
			notification.CommentID = &comment.ID
		}

		if err := f.notificationService.Create(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// OwnerNotification tells the event's creator what someone else did to their
// event. A no-op when the actor is the creator.
func (f Fanout) OwnerNotification(ctx context.Context, actor *model.User, event *model.Event, actionDescription string) error {
	if actor.ID == event.CreatedByID {
		return nil
	}

	notification := &model.Notification{
		UserID:           event.CreatedByID,
		Message:          fmt.Sprintf("%s %s on your event %q", actor.Username, actionDescription, event.Title),
		Link:             f.eventLink(event),
		NotificationType: model.NotificationEventInteraction,
		EventID:          &event.ID,
	}

	return f.notificationService.Create(ctx, notification)
}

// AdminBroadcast notifies every project admin except the actor. Cost grows
// with the admin count; fine at the directory sizes we run at.
func (f Fanout) AdminBroadcast(ctx context.Context, actor *model.User, event *model.Event, actionDescription string) error {
	admins, err := f.projectService.FindAdmins(ctx, event.ProjectID)
	if err != nil {
		return err
	}

	var errs []error
	for _, admin := range admins {
		if admin.ID == actor.ID {
			continue
		}

		notification := &model.Notification{
			UserID:           admin.ID,
			Message:          fmt.Sprintf("%s %s on %q", actor.Username, actionDescription, event.Title),
			Link:             f.eventLink(event),
			NotificationType: model.NotificationAdmin,
			EventID:          &event.ID,
		}

		if err := f.notificationService.Create(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// CommentNotification tells the event's creator about a new comment on their
// event. A no-op when the commenter is the creator.
func (f Fanout) CommentNotification(ctx context.Context, actor *model.User, event *model.Event, comment *model.Comment) error {
	if actor.ID == event.CreatedByID {
		return nil
	}

	notification := &model.Notification{
		UserID:           event.CreatedByID,
		Message:          fmt.Sprintf("%s commented on your event %q", actor.Username, event.Title),
		Link:             f.eventLink(event),
		NotificationType: model.NotificationComment,
		EventID:          &event.ID,
		CommentID:        &comment.ID,
	}

	return f.notificationService.Create(ctx, notification)
}

func (f Fanout) eventLink(event *model.Event) string {
	return fmt.Sprintf("%s/projects/%d/events/%d", f.uiUrl, event.ProjectID, event.ID)
}
