package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"eventtracker/internal/buildinfo"
	"eventtracker/internal/client/cli"
	"eventtracker/internal/client/config"
	"eventtracker/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.NewDefault(slog.LevelInfo)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())
}
