// Command missionapi serves the public mission and participant endpoints
// over sqlite for local development of the registration site.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gdg-garage/mission-registration/internal/catalog"
	"github.com/gdg-garage/mission-registration/internal/config"
	"github.com/gdg-garage/mission-registration/internal/database"
	"github.com/gdg-garage/mission-registration/internal/logging"
	"github.com/gdg-garage/mission-registration/internal/missionapi"
	"github.com/gdg-garage/mission-registration/internal/notifier"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := logging.New("info", os.Stderr)
		bootLogger.Fatal().Err(err).Msg("configuration error")
	}
	logger := logging.New(cfg.LogLevel, os.Stdout)

	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open database")
	}
	if err := database.SeedMissions(db, catalog.All()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed missions")
	}
	if err := database.SeedAPIKeys(db, cfg.MissionAPIKeys); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed api keys")
	}

	var n notifier.Notifier = notifier.Nop{}
	if cfg.DiscordBotToken != "" && cfg.DiscordNotificationsChannelID != "" {
		session, err := notifier.NewDiscordSession(cfg.DiscordBotToken)
		if err != nil {
			logger.Warn().Err(err).Msg("discord notifier not initialized")
		} else {
			n = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
		}
	}

	r := chi.NewRouter()
	missionapi.RegisterRoutes(r, db, missionapi.NewHandler(db, n, logger), logger)

	srv := &http.Server{
		Addr:         ":" + cfg.MissionAPIPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("database", cfg.DatabasePath).Msg("mission api starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-stop
	logger.Info().Msg("shutting down mission api")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("shutdown error")
	}
	logger.Info().Msg("mission api stopped")
}
