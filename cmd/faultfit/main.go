package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/geniusinaction/GEO244/cmd/faultfit/app"
)

func main() {
	var logLevel slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel}))

	var pointsPath, covarPath, configPath string
	flag.StringVar(&pointsPath, "points", "", "Path to the observed displacement table")
	flag.StringVar(&covarPath, "covar", "", "Path to a fitted covariance model (YAML, optional)")
	flag.StringVar(&configPath, "config", "", "Path to the inversion configuration file")
	flag.Parse()

	if pointsPath == "" {
		logger.Error("no observation table provided")
		os.Exit(1)
	}
	if configPath == "" {
		logger.Error("no configuration file provided")
		os.Exit(1)
	}

	config, err := app.LoadConfig(configPath)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to load configuration file: %s", err.Error()), slog.String("path", configPath))
		os.Exit(1)
	}
	config.Points = pointsPath
	config.CovarModel = covarPath

	if config.LogLevel != "" {
		if err := logLevel.UnmarshalText([]byte(config.LogLevel)); err != nil {
			logger.Error(fmt.Sprintf("bad log level: %s", err.Error()))
			os.Exit(1)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = app.Run(ctx, config, logger); err != nil {
		logger.Error(err.Error())

		cancel()
		os.Exit(1)
	}
}
