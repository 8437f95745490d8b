package notification

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/sitegrid/fm-manager/pkg/model"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailQueue carries the ids of notifications whose recipients should also be
// emailed.
const EmailQueue = "notification-email"

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

func NewService(logger *slog.Logger, repository *repository, publisher publisher, broker *Broker) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		publisher:  publisher,
		broker:     broker,
	}
}

type Service struct {
	logger     *slog.Logger
	repository *repository
	publisher  publisher
	broker     *Broker
}

type emailMessage struct {
	ID uint `json:"id"`
}

// Create persists the notification and then, best effort, pushes it to the
// recipient's live stream and queues an email. Only the persist can fail the
// call; delivery problems are logged and swallowed.
func (s Service) Create(ctx context.Context, notification *model.Notification) error {
	err := s.repository.create(ctx, notification)
	if err != nil {
		return err
	}

	s.broker.Send(notification.UserID, *notification)

	payload, err := json.Marshal(emailMessage{ID: notification.ID})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal notification email message", "notification", notification.ID, "error", err)
		return nil
	}

	err = s.publisher.PublishWithContext(ctx, "", EmailQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to queue notification email", "notification", notification.ID, "error", err)
	}

	return nil
}

func (s Service) FindByUser(ctx context.Context, userId uint, skip, limit int) ([]model.Notification, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repository.findByUser(ctx, userId, skip, limit)
}

func (s Service) MarkRead(ctx context.Context, id, userId uint) error {
	return s.repository.setRead(ctx, id, userId, true)
}

func (s Service) MarkUnread(ctx context.Context, id, userId uint) error {
	return s.repository.setRead(ctx, id, userId, false)
}

func (s Service) Delete(ctx context.Context, id, userId uint) error {
	return s.repository.delete(ctx, id, userId)
}
