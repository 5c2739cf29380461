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
	"golang.org/x/oauth2/clientcredentials"

	"github.com/gdg-garage/mission-registration/internal/client"
	"github.com/gdg-garage/mission-registration/internal/config"
	"github.com/gdg-garage/mission-registration/internal/flash"
	"github.com/gdg-garage/mission-registration/internal/handlers"
	"github.com/gdg-garage/mission-registration/internal/logging"
	"github.com/gdg-garage/mission-registration/internal/registration"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := logging.New("info", os.Stderr)
		bootLogger.Fatal().Err(err).Msg("configuration error")
	}
	logger := logging.New(cfg.LogLevel, os.Stdout)

	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is required")
	}

	// The mission API is reached with client credentials when configured,
	// otherwise with the static API key.
	var opts []client.Option
	if cfg.OAuthEnabled() {
		cc := &clientcredentials.Config{
			ClientID:     cfg.APIClientID,
			ClientSecret: cfg.APIClientSecret,
			TokenURL:     cfg.APITokenURL,
		}
		hc := cc.Client(context.Background())
		hc.Timeout = cfg.APITimeout
		opts = append(opts, client.WithHTTPClient(hc))
	} else if cfg.APIKey != "" {
		opts = append(opts, client.WithAPIKey(cfg.APIKey))
	}
	missionClient := client.New(cfg.APIBaseURL, cfg.APITimeout, opts...)

	submitter := registration.NewSubmitter(missionClient, logger)
	registrationHandler := handlers.NewRegistrationHandler(
		missionClient,
		submitter,
		flash.NewSigner(cfg.JWTSecret, cfg.SecureCookies),
		cfg.SiteName,
		logger,
	)
	apiHandler := handlers.NewAPIHandler(logger)

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, registrationHandler, apiHandler, logger, handlers.RouteOptions{
		EnableCORS:    cfg.EnableCORS,
		CORSOrigins:   cfg.CORSOrigins,
		CSRFKey:       cfg.CSRFKey,
		SecureCookies: cfg.SecureCookies,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
		// Submissions wait on the mission API, so writes get its timeout on top.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("api_base_url", cfg.APIBaseURL).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-stop
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("shutdown error")
	}
	logger.Info().Msg("server stopped")
}
