package user

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sitegrid/fm-manager/internal/errdef"
	"github.com/sitegrid/fm-manager/internal/handler"

	"github.com/sitegrid/fm-manager/pkg/model"
	"github.com/sitegrid/fm-manager/pkg/token"
	"github.com/gin-gonic/gin"
)

func NewHandler(userService userService, tokenService tokenService) Handler {
	return Handler{
		userService,
		tokenService,
	}
}

type Handler struct {
	userService  userService
	tokenService tokenService
}

type userService interface {
	SignUp(ctx context.Context, email, username, password string) (*model.User, error)
	FindById(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	ValidateEmail(ctx context.Context, token uuid.UUID) error
	Delete(ctx context.Context, id uint) error
}

type tokenService interface {
	GetTokens(user *model.User) (*token.Tokens, error)
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,gte=3,lte=64"`
	Password string `json:"password" binding:"required,gte=16,lte=128"`
}

// SignUp user
func (h Handler) SignUp(c *gin.Context) {
	var request SignUpRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), request.Email, request.Username, request.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// SignIn exchanges basic auth credentials for tokens. The credentials are
// checked by the basic authentication middleware before we get here.
func (h Handler) SignIn(c *gin.Context) {
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokens, err := h.tokenService.GetTokens(user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, tokens)
}

// ValidateEmail user
func (h Handler) ValidateEmail(c *gin.Context) {
	emailToken, err := uuid.Parse(c.Param("token"))
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("error parsing email token: %v", err))
		return
	}

	err = h.userService.ValidateEmail(c.Request.Context(), emailToken)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusOK)
}

// Me user
func (h Handler) Me(c *gin.Context) {
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	userWithProjects, err := h.userService.FindById(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, userWithProjects)
}

// FindById user
func (h Handler) FindById(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	userWithProjects, err := h.userService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, userWithProjects)
}

// FindAll user
func (h Handler) FindAll(c *gin.Context) {
	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Delete user
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

	if user.ID == id {
		_ = c.Error(errdef.NewBadRequest("cannot delete the current user"))
		return
	}

	err = h.userService.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}
