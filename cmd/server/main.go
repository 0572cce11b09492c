package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audiosurvey/internal/catalog"
	"audiosurvey/internal/config"
	"audiosurvey/internal/logger"
	"audiosurvey/internal/service"
	"audiosurvey/internal/session"
	"audiosurvey/internal/sink"
	"audiosurvey/internal/transport/rest"
	"audiosurvey/internal/transport/web"
	"audiosurvey/internal/transport/ws"

	"github.com/rs/zerolog/log"
)

// @title Audio Evaluation Survey API
// @version 1.0
// @description Listening survey: play each clip, rate or transcribe it, submit all 30 answers.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logg := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Logger = logg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize WebSocket hub
	wsHub := ws.NewHub(logg)

	// Sessions own their view, player and sink
	answers := sink.NewLogSink(logg)
	store := session.NewInMemoryStore(wsHub, answers, cfg.SessionTTL, logg)
	store.SetAttachTTL(cfg.AttachTTL)
	store.SetPresence(wsHub)
	go store.RunJanitor(ctx, cfg.SweepInterval)

	renderer, err := web.NewRenderer(catalog.Questions())
	if err != nil {
		logg.Fatal().Err(err).Msg("parse templates")
	}

	// Initialize services
	tokenSvc := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	surveySvc := service.NewSurveyService(store, tokenSvc, logg)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	surveySvc.SetBroadcaster(wsHub)
	surveySvc.SetRenderer(renderer)

	container := &rest.Container{
		SurveyService:  surveySvc,
		TokenService:   tokenSvc,
		Renderer:       renderer,
		WSHub:          wsHub,
		AudioDir:       cfg.AudioDir,
		AllowedOrigins: cfg.AllowedOrigin,
		Log:            logg,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           rest.NewRouter(container),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info().
			Str("addr", srv.Addr).
			Str("audioDir", cfg.AudioDir).
			Int("questions", catalog.Size).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal().Err(err).Msg("listen and serve")
		}
	}()

	<-ctx.Done()
	logg.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logg.Info().Int("openSessions", store.Len()).Msg("server exited")
}
