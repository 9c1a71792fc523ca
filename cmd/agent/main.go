package main

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/focuslock/internal/client/app"
	"github.com/dmitrijs2005/focuslock/internal/client/config"
	"github.com/dmitrijs2005/focuslock/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(slog.LevelInfo)

	a, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "agent init failed", "error", err)
		os.Exit(1)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		a.Run(ctx, func(ctx context.Context) { a.Console().Run(ctx, os.Stdin) })
		return
	}

	a.Run(ctx)

}
