package server

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/sitegrid/fm-manager/internal/handler"
	"github.com/sitegrid/fm-manager/internal/middleware"
	"github.com/sitegrid/fm-manager/pkg/event"
	"github.com/sitegrid/fm-manager/pkg/health"
	"github.com/sitegrid/fm-manager/pkg/history"
	"github.com/sitegrid/fm-manager/pkg/notification"
	"github.com/sitegrid/fm-manager/pkg/project"
	"github.com/sitegrid/fm-manager/pkg/user"
)

type Handlers struct {
	User         user.Handler
	Project      project.Handler
	Event        event.Handler
	History      history.Handler
	Notification notification.Handler
}

func GetEngine(logger *slog.Logger, basePath string, authMiddleware middleware.AuthenticationMiddleware, handlers Handlers) (*gin.Engine, error) {
	if err := handler.RegisterValidation(); err != nil {
		return nil, err
	}

	r := gin.New()
	// lets c.Done() track the request context so the notification stream
	// notices disconnecting clients
	r.ContextWithFallback = true
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	router.GET("/health", health.Health)

	user.Routes(router, authMiddleware, handlers.User)
	project.Routes(router, authMiddleware.TokenAuthentication, handlers.Project)
	event.Routes(router, authMiddleware.TokenAuthentication, handlers.Event)
	history.Routes(router, authMiddleware.TokenAuthentication, handlers.History)
	notification.Routes(router, authMiddleware.TokenAuthentication, handlers.Notification)

	return r, nil
}
