package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Run serves the router until the listener fails. An empty port falls back
// to 8080.
func Run(router *gin.Engine, port string) error {
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
