// Command stubapi runs the in-memory reference backend for local
// development: the CLI can log in, manage teams and availability against
// it without any external service.
package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"teamsched/internal/config"
	"teamsched/internal/logging"
	"teamsched/internal/server"
	"teamsched/internal/stubapi"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := stubapi.New(cfg.StubJWTSecret, log)
	router := s.Router(cfg.StubRatePerMin)

	log.Info("stub api listening", zap.String("port", cfg.StubPort))
	if err := server.Run(router, cfg.StubPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
