package notification

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticator gin.HandlerFunc, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticator)

	tokenAuthenticationRouter.GET("/notifications", handler.FindAll)
	tokenAuthenticationRouter.GET("/notifications/subscribe", handler.Subscribe)
	tokenAuthenticationRouter.PUT("/notifications/:id/read", handler.MarkRead)
	tokenAuthenticationRouter.DELETE("/notifications/:id/read", handler.MarkUnread)
	tokenAuthenticationRouter.DELETE("/notifications/:id", handler.Delete)
}
