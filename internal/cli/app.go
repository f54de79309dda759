// Package cli wires the configuration, store and services together and
// dispatches the command words of the authdb tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/avolkov/authdb/internal/config"
	"github.com/avolkov/authdb/internal/logging"
	"github.com/avolkov/authdb/internal/repositories/storemanager"
	"github.com/avolkov/authdb/internal/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	manager  *storemanager.Manager
	users    *services.UserService
	sessions *services.SessionService
	auth     *services.AuthService
	out      io.Writer
}

// NewApp opens the store described by the config and builds the service
// layer on top of it. The caller owns Close.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	})))

	manager, err := storemanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	ur := manager.Users(manager.DB())
	sr := manager.Sessions(manager.DB())

	return &App{
		config:   cfg,
		logger:   logger,
		manager:  manager,
		users:    services.NewUserService(ur, logger),
		sessions: services.NewSessionService(manager.DB(), manager, logger),
		auth:     services.NewAuthService(ur, sr, logger),
		out:      os.Stdout,
	}, nil
}

// Close releases the store handle.
func (a *App) Close() error {
	return a.manager.Close()
}

func slogLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
