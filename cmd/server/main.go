package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/focuslock/internal/logging"
	"github.com/dmitrijs2005/focuslock/internal/server"
	"github.com/dmitrijs2005/focuslock/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(slog.LevelInfo)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "server init failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
