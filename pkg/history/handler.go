package history

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sitegrid/fm-manager/internal/errdef"
	"github.com/sitegrid/fm-manager/internal/handler"
	"github.com/sitegrid/fm-manager/pkg/model"

	"github.com/gin-gonic/gin"
)

func NewHandler(historyService historyService, eventFinder eventFinder) Handler {
	return Handler{historyService, eventFinder}
}

type Handler struct {
	historyService historyService
	eventFinder    eventFinder
}

type historyService interface {
	FindByEvent(ctx context.Context, eventId uint, skip, limit int, newestFirst bool) ([]Entry, error)
	FindByProject(ctx context.Context, projectId uint, skip, limit int, newestFirst bool) ([]Entry, error)
}

type eventFinder interface {
	FindById(ctx context.Context, id uint) (*model.Event, error)
}

// FindByEvent history
func (h Handler) FindByEvent(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventFinder.FindById(c.Request.Context(), id)
	if err != nil {
		// a deleted or unknown event has no history; read paths stay resilient
		if errdef.IsNotFound(err) {
			c.JSON(http.StatusOK, []Entry{})
			return
		}
		_ = c.Error(err)
		return
	}

	if !user.IsMemberOf(event.ProjectID) {
		_ = c.Error(errdef.NewForbidden("not a member of project %d", event.ProjectID))
		return
	}

	h.find(c, id, h.historyService.FindByEvent)
}

// FindByProject history
func (h Handler) FindByProject(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if !user.IsMemberOf(id) {
		_ = c.Error(errdef.NewForbidden("not a member of project %d", id))
		return
	}

	h.find(c, id, h.historyService.FindByProject)
}

func (h Handler) find(c *gin.Context, id uint, find func(ctx context.Context, id uint, skip, limit int, newestFirst bool) ([]Entry, error)) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	newestFirst := c.DefaultQuery("order", "desc") != "asc"

	entries, err := find(c.Request.Context(), id, skip, limit, newestFirst)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
