package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/asthmacare/clinic-api/config"
	"github.com/asthmacare/clinic-api/internal/handler"
	authHandler "github.com/asthmacare/clinic-api/internal/handler/auth"
	patientHandler "github.com/asthmacare/clinic-api/internal/handler/patient"
	publicHandler "github.com/asthmacare/clinic-api/internal/handler/public"
	statsHandler "github.com/asthmacare/clinic-api/internal/handler/stats"
	visitHandler "github.com/asthmacare/clinic-api/internal/handler/visit"
	"github.com/asthmacare/clinic-api/internal/middleware"
	"github.com/asthmacare/clinic-api/internal/repository/sheets"
	"github.com/asthmacare/clinic-api/internal/router"
	authService "github.com/asthmacare/clinic-api/internal/service/auth"
	patientService "github.com/asthmacare/clinic-api/internal/service/patient"
	statsService "github.com/asthmacare/clinic-api/internal/service/stats"
	visitService "github.com/asthmacare/clinic-api/internal/service/visit"
	pkgauth "github.com/asthmacare/clinic-api/pkg/auth"
	"github.com/asthmacare/clinic-api/pkg/logger"
	"github.com/asthmacare/clinic-api/pkg/metrics"
	"github.com/asthmacare/clinic-api/pkg/security"
)

func main() {
	logger.New(nil).SetGlobal()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	m := metrics.New("clinic_api")

	ctx := context.Background()
	client, err := sheets.NewClient(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsFile, m)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to spreadsheet")
	}
	store := sheets.NewCachedStore(client, cfg.Sheets.CacheTTL, m)

	patientRepo := sheets.NewPatientRepository(store, cfg.Sheets.PatientsTab)
	visitRepo := sheets.NewVisitRepository(store, cfg.Sheets.VisitsTab)
	techniqueRepo := sheets.NewTechniqueRepository(store, cfg.Sheets.TechniquesTab)
	intentRepo := sheets.NewIntentRepository(store, cfg.Sheets.IntentsTab)

	jwtSvc := pkgauth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.SessionExpiry)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	authSvc := authService.NewService(cfg.Auth.PasswordHash, hasher, jwtSvc)
	patientSvc := patientService.NewService(patientRepo, visitRepo, m)
	visitSvc := visitService.NewService(visitRepo, techniqueRepo, patientRepo, intentRepo, m)
	statsSvc := statsService.NewService(patientRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		publicHandler.NewHandler(patientSvc),
		patientHandler.NewHandler(patientSvc),
		visitHandler.NewHandler(visitSvc),
		statsHandler.NewHandler(statsSvc),
		handler.NewHandler(client),
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimitRPS:     cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst:   cfg.RateLimit.Burst,
			CORSConfig:       corsConfig,
			MetricsPrefix:    "clinic_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
