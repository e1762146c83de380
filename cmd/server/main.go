package main

import (
	"context"
	"os"

	"github.com/vikas-0-3/farmer/internal/app"
	"github.com/vikas-0-3/farmer/internal/app/config"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
)

func main() {
	cfg := config.MustLoad()

	log := logger.NewZapLogger(logger.ZapLoggerConfig{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Errorf("application stopped with error: %v", err)
		os.Exit(1)
	}
}
