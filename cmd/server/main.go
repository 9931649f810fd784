package main

import (
	"log/slog"
	"os"

	"taskboard/internal/config"
	"taskboard/internal/server"
)

// @title           Task Board API
// @version         1.0
// @description     Multi-tenant task boards: users own boards, boards hold workflow states and tasks.

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()

	s, err := server.Init(cfg, logger)
	if err != nil {
		logger.Error("server initialization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	s.Run()
}
