package main

import (
	"os"

	"github.com/DRSN-tech/go-catalog/internal/app"
	config "github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	bootLog := logger.NewSlogLogger()

	if err := config.LoadEnvFiles(); err != nil {
		bootLog.Errorf(err, "failed to read .env")
		return 1
	}

	logCfg := config.LoadLogCfg()
	log, err := logger.New(logCfg.Backend, logCfg.Mode)
	if err != nil {
		bootLog.Errorf(err, "failed to initialize logger")
		return 1
	}
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		return 1
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		return 1
	}

	if err := application.Run(); err != nil {
		return 1
	}

	return 0
}
