// Package main is the entry point for the ltitoken CLI
package main

import (
	"os"

	"github.com/jrschumacher/ltitoken/cmd"
	"github.com/jrschumacher/ltitoken/internal/config"
	"github.com/jrschumacher/ltitoken/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("LTITOKEN_CONFIG"))
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	cmd.Execute(cfg)
}
