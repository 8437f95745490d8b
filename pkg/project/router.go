package project

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticator gin.HandlerFunc, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticator)

	tokenAuthenticationRouter.POST("/projects", handler.Create)
	tokenAuthenticationRouter.GET("/projects", handler.FindAll)
	tokenAuthenticationRouter.GET("/projects/:id", handler.FindById)
	tokenAuthenticationRouter.DELETE("/projects/:id", handler.Delete)
	tokenAuthenticationRouter.POST("/projects/:id/members", handler.AddMember)
	tokenAuthenticationRouter.POST("/projects/:id/admins", handler.AddAdmin)
	tokenAuthenticationRouter.POST("/projects/:id/maps", handler.AddMap)
}
