package user

import (
	"github.com/sitegrid/fm-manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	r.POST("/users", handler.SignUp)
	r.GET("/users/validate/:token", handler.ValidateEmail)

	basicAuthenticationRouter := r.Group("")
	basicAuthenticationRouter.Use(authenticationMiddleware.BasicAuthentication)
	basicAuthenticationRouter.POST("/tokens", handler.SignIn)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/me", handler.Me)
	tokenAuthenticationRouter.GET("/users", handler.FindAll)
	tokenAuthenticationRouter.GET("/users/:id", handler.FindById)
	tokenAuthenticationRouter.DELETE("/users/:id", handler.Delete)
}
