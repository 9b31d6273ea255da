package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/geniusinaction/GEO244/cmd/covarest/app"
)

func main() {
	var logLevel slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: &logLevel}))

	var configPath, outPath string
	flag.StringVar(&configPath, "config", "", "Path to the estimation configuration file")
	flag.StringVar(&outPath, "out", "", "Path for the fitted covariance model (YAML)")
	flag.Parse()

	if configPath == "" {
		logger.Error("no configuration file provided")
		os.Exit(1)
	}

	config, err := app.LoadConfig(configPath)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to load configuration file: %s", err.Error()), slog.String("path", configPath))
		os.Exit(1)
	}
	config.Output = outPath

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
