package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"newsdesk/internal/buildinfo"
	"newsdesk/internal/client/cli"
	"newsdesk/internal/client/config"
	"newsdesk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// Optional .env next to the binary; absence is not an error.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
