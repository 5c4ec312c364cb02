package main

import (
	"context"
	"errors"
	"os"

	"github.com/myflix/myflix/internal/repositories"
	"github.com/myflix/myflix/internal/services"
	"github.com/myflix/myflix/internal/session"
	"github.com/myflix/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog services.Service
	if svc, err := services.NewOMDbService(config.Credentials.OMDb.BaseURL, config.Credentials.OMDb.APIKey, nil); err == nil {
		catalog = svc
	} else {
		logger.Warn("catalog service unavailable", "error", err)
	}

	var sessions *session.Manager
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Warn("database unavailable, session state will not persist", "error", err)
	} else {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		defer db.Close()
		sessions = session.NewManager(repositories.NewKVRepository(db), logger)
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Service:  catalog,
		Sessions: sessions,
		DB:       db,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "myflix",
		Usage:    "Browse movies, search the catalog & preview trailers",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
