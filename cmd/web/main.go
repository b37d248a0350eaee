package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"github.com/jabbapizza/web/internal/app"
	"github.com/jabbapizza/web/internal/infrastructure/config"
	"github.com/jabbapizza/web/pkg/logger"
)

func main() {
	debug := flag.Bool("debug", false, "listen on 127.0.0.1 with debug logging")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if *debug {
		cfg.Host = "127.0.0.1"
		cfg.LogLevel = "debug"
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  *debug,
		Service: "pizza-web",
	})

	ctx := context.Background()
	a, err := app.NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	if err := a.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
