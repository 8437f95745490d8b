package event

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sitegrid/fm-manager/internal/handler"
	"github.com/sitegrid/fm-manager/pkg/model"
	"gorm.io/datatypes"
)

func NewHandler(eventService eventService) Handler {
	return Handler{eventService}
}

type eventService interface {
	Create(ctx context.Context, actor *model.User, event *model.Event) (*model.Event, error)
	FindById(ctx context.Context, actor *model.User, id uint) (*model.Event, error)
	FindByProject(ctx context.Context, actor *model.User, projectId uint, skip, limit int) ([]*model.Event, error)
	Update(ctx context.Context, actor *model.User, id uint, update UpdateEvent) (*model.Event, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
	AddComment(ctx context.Context, actor *model.User, eventId uint, text string) (*model.Comment, error)
}

type Handler struct {
	eventService eventService
}

type CreateEventRequest struct {
	ProjectID   uint     `json:"projectId" binding:"required"`
	MapID       uint     `json:"mapId" binding:"required"`
	Title       string   `json:"title" binding:"required,lte=256"`
	Description string   `json:"description"`
	Status      string   `json:"status" binding:"omitempty,oneOf=open in-progress resolved closed"`
	State       string   `json:"state" binding:"omitempty,oneOf=red yellow green"`
	Tags        []string `json:"tags"`
	// ActiveLayers is accepted in any shape clients send and coerced to a
	// mapping on the way in.
	ActiveLayers any `json:"activeLayers"`
	// pointers so a missing coordinate is a binding error, not a silent 0
	PositionX *float64 `json:"positionX" binding:"required"`
	PositionY *float64 `json:"positionY" binding:"required"`
}

// Create event
func (h Handler) Create(c *gin.Context) {
	var request CreateEventRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event := &model.Event{
		ProjectID:    request.ProjectID,
		MapID:        request.MapID,
		Title:        request.Title,
		Description:  request.Description,
		Status:       request.Status,
		State:        request.State,
		Tags:         datatypes.NewJSONSlice(request.Tags),
		ActiveLayers: NormalizeLayers(request.ActiveLayers),
		PositionX:    *request.PositionX,
		PositionY:    *request.PositionY,
	}

	created, err := h.eventService.Create(c.Request.Context(), user, event)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// FindById event
func (h Handler) FindById(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.FindById(c.Request.Context(), user, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// FindByProject lists the events of a project, newest first
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

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	events, err := h.eventService.FindByProject(c.Request.Context(), user, id, skip, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

type UpdateEventRequest struct {
	Title       *string   `json:"title" binding:"omitempty,lte=256"`
	Description *string   `json:"description"`
	Status      *string   `json:"status" binding:"omitempty,oneOf=open in-progress resolved closed"`
	State       *string   `json:"state" binding:"omitempty,oneOf=red yellow green"`
	Tags        *[]string `json:"tags"`
}

// Update event
func (h Handler) Update(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateEventRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	update := UpdateEvent{
		Title:       request.Title,
		Description: request.Description,
		Status:      request.Status,
		State:       request.State,
		Tags:        request.Tags,
	}

	event, err := h.eventService.Update(c.Request.Context(), user, id, update)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete event
func (h Handler) Delete(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	err = h.eventService.Delete(c.Request.Context(), user, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddComment to event
func (h Handler) AddComment(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request AddCommentRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	comment, err := h.eventService.AddComment(c.Request.Context(), user, id, request.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
