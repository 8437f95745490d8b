package event

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticator gin.HandlerFunc, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticator)

	tokenAuthenticationRouter.POST("/events", handler.Create)
	tokenAuthenticationRouter.GET("/events/:id", handler.FindById)
	tokenAuthenticationRouter.PUT("/events/:id", handler.Update)
	tokenAuthenticationRouter.DELETE("/events/:id", handler.Delete)
	tokenAuthenticationRouter.POST("/events/:id/comments", handler.AddComment)
	tokenAuthenticationRouter.GET("/projects/:id/events", handler.FindByProject)
}
