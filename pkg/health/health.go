package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type response struct {
	Status string `json:"status"`
}

// Health reports liveness
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, response{Status: "up"})
}
