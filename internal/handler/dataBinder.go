package handler

import (
	"github.com/sitegrid/fm-manager/internal/errdef"

	"github.com/gin-gonic/gin"
)

func DataBinder(c *gin.Context, req interface{}) error {
	if c.ContentType() != "application/json" {
		return errdef.NewUnsupportedMediaType("%s only accepts content of type application/json", c.FullPath())
	}

	if err := c.ShouldBind(req); err != nil {
		return errdef.NewBadRequest("error binding data: %v", err)
	}

	return nil
}
