package history

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticator gin.HandlerFunc, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticator)

	tokenAuthenticationRouter.GET("/events/:id/history", handler.FindByEvent)
	tokenAuthenticationRouter.GET("/projects/:id/history", handler.FindByProject)
}
