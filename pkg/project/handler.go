package project

import (
	"context"
	"net/http"

	"github.com/sitegrid/fm-manager/internal/errdef"
	"github.com/sitegrid/fm-manager/internal/handler"

	"github.com/gin-gonic/gin"
)

func NewHandler(projectService *Service) Handler {
	return Handler{projectService}
}

type Handler struct {
	projectService *Service
}

type CreateProjectRequest struct {
	Name string `json:"name" binding:"required,gte=3,lte=128"`
}

// Create project
func (h Handler) Create(c *gin.Context) {
	var request CreateProjectRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	project, err := h.projectService.Create(ctx, request.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// the creator administers the project
	err = h.projectService.AddAdmin(ctx, project.ID, user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// FindById project
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

	if !user.IsMemberOf(id) {
		_ = c.Error(errdef.NewForbidden("not a member of project %d", id))
		return
	}

	project, err := h.projectService.Find(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// FindAll projects of the current user
func (h Handler) FindAll(c *gin.Context) {
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	projects, err := h.projectService.FindAll(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

type AddUserRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// AddMember to project
func (h Handler) AddMember(c *gin.Context) {
	h.addUser(c, h.projectService.AddMember)
}

// AddAdmin to project
func (h Handler) AddAdmin(c *gin.Context) {
	h.addUser(c, h.projectService.AddAdmin)
}

func (h Handler) addUser(c *gin.Context, add func(ctx context.Context, projectId, userId uint) error) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request AddUserRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if !user.IsAdminOf(id) {
		_ = c.Error(errdef.NewForbidden("only project admins can manage members"))
		return
	}

	err = add(c.Request.Context(), id, request.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusCreated)
}

// Delete project
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

	if !user.IsAdminOf(id) {
		_ = c.Error(errdef.NewForbidden("only project admins can delete the project"))
		return
	}

	err = h.projectService.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}

type AddMapRequest struct {
	Name      string `json:"name" binding:"required"`
	ImagePath string `json:"imagePath" binding:"required"`
}

// AddMap to project
func (h Handler) AddMap(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request AddMapRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
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

	siteMap, err := h.projectService.AddMap(c.Request.Context(), id, request.Name, request.ImagePath)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, siteMap)
}
