package notification

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/sitegrid/fm-manager/internal/handler"
	"github.com/sitegrid/fm-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(logger loggerService, notificationService notificationService, broker broker) Handler {
	return Handler{logger, notificationService, broker}
}

type loggerService interface {
	Info(msg string, args ...any)
}

type notificationService interface {
	FindByUser(ctx context.Context, userId uint, skip, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userId uint) error
	MarkUnread(ctx context.Context, id, userId uint) error
	Delete(ctx context.Context, id, userId uint) error
}

type broker interface {
	Subscribe(user model.User)
	Unsubscribe(id uint)
	Receive(id uint) (model.Notification, bool)
}

type Handler struct {
	logger              loggerService
	notificationService notificationService
	broker              broker
}

// FindAll notifications of the current user
func (h Handler) FindAll(c *gin.Context) {
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	notifications, err := h.notificationService.FindByUser(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead notification
func (h Handler) MarkRead(c *gin.Context) {
	h.update(c, h.notificationService.MarkRead)
}

// MarkUnread notification
func (h Handler) MarkUnread(c *gin.Context) {
	h.update(c, h.notificationService.MarkUnread)
}

// Delete notification
func (h Handler) Delete(c *gin.Context) {
	h.update(c, h.notificationService.Delete)
}

func (h Handler) update(c *gin.Context, op func(ctx context.Context, id, userId uint) error) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	err = op(c.Request.Context(), id, user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusOK)
}

// Subscribe streams notifications to the current user as server-sent events.
func (h Handler) Subscribe(c *gin.Context) {
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.broker.Subscribe(*user)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")

	defer func() {
		h.broker.Unsubscribe(user.ID)
		h.logger.Info("Closing notification stream", "user", user.ID)
	}()

	go func() {
		<-c.Done()
		h.broker.Unsubscribe(user.ID)
	}()

	c.Stream(func(w io.Writer) bool {
		if notification, ok := h.broker.Receive(user.ID); ok {
			c.SSEvent(notification.NotificationType, notification)
			return true
		}
		return false
	})
}
