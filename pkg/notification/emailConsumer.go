package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-mail/mail"
	amqp "github.com/rabbitmq/amqp091-go"
)

type dailer interface {
	DialAndSend(m ...*mail.Message) error
}

type consumerChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewEmailConsumer(logger *slog.Logger, channel consumerChannel, repository *repository, dialer dailer) *emailConsumer {
	return &emailConsumer{
		logger:     logger,
		channel:    channel,
		repository: repository,
		dailer:     dialer,
	}
}

// emailConsumer turns queued notification ids into emails. Delivery is best
// effort; a message that can't be handled is dropped, never requeued, so a
// broken notification can't wedge the queue.
type emailConsumer struct {
	logger     *slog.Logger
	channel    consumerChannel
	repository *repository
	dailer     dailer
}

func (c *emailConsumer) Consume() error {
	_, err := c.channel.QueueDeclare(EmailQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %v", EmailQueue, err)
	}

	deliveries, err := c.channel.Consume(EmailQueue, "fm-manager", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %q: %v", EmailQueue, err)
	}

	go func() {
		for d := range deliveries {
			c.handle(d)
		}
	}()

	return nil
}

func (c *emailConsumer) handle(d amqp.Delivery) {
	ctx := context.Background()

	var message emailMessage
	if err := json.Unmarshal(d.Body, &message); err != nil {
		c.logger.Error("failed to unmarshal notification email message", "error", err)
		c.nack(d)
		return
	}

	notification, err := c.repository.findById(ctx, message.ID)
	if err != nil {
		c.logger.Error("failed to load notification for email", "notification", message.ID, "error", err)
		c.nack(d)
		return
	}

	m := mail.NewMessage()
	m.SetHeader("From", "Field Manager <no-reply@sitegrid.io>")
	m.SetHeader("To", notification.User.Email)
	m.SetHeader("Subject", "New activity on your project")
	body := fmt.Sprintf("%s<br/><a href=%q>View</a>", notification.Message, notification.Link)
	m.SetBody("text/html", body)

	if err := c.dailer.DialAndSend(m); err != nil {
		c.logger.Error("failed to send notification email", "notification", notification.ID, "error", err)
		c.nack(d)
		return
	}

	if err := d.Ack(false); err != nil {
		c.logger.Error("failed to acknowledge notification email message", "notification", notification.ID, "error", err)
	}
}

func (c *emailConsumer) nack(d amqp.Delivery) {
	if err := d.Nack(false, false); err != nil {
		c.logger.Error("failed to negatively acknowledge notification email message", "error", err)
	}
}
