// Command server runs the room chat relay: a WebSocket hub that fans chat and
// data frames out between the participants of each room, plus the REST API for
// room directory, history, and announcements.
//
// Startup order:
//  1. Load .env (best effort) and environment configuration
//  2. Configure zerolog (level, optional pretty console)
//  3. Initialize OpenTelemetry (optional, via OTEL_ENABLED)
//  4. Open the history database and run migrations (optional, HISTORY_ENABLED)
//  5. Start the relay hub and mount the HTTP routes
//  6. Serve until SIGINT/SIGTERM, then drain gracefully
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	_ "github.com/meetwire/go-room-chat/docs" // swagger spec registration
	"github.com/meetwire/go-room-chat/internal/config"
	httpapi "github.com/meetwire/go-room-chat/internal/http"
	"github.com/meetwire/go-room-chat/internal/observability"
	"github.com/meetwire/go-room-chat/internal/relay"
	"github.com/meetwire/go-room-chat/internal/repo"
	"github.com/meetwire/go-room-chat/internal/services"
	"github.com/meetwire/go-room-chat/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Best effort: a missing .env is normal outside dev.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing (no-op unless OTEL_ENABLED).
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize OpenTelemetry")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("OTel shutdown incomplete")
		}
	}()

	// History archive (optional).
	var db *gorm.DB
	if cfg.HistoryEnabled {
		db, err = repo.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open history database")
		}
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate history schema")
		}
		log.Info().Str("path", cfg.DBPath).Msg("history archive enabled")
	} else {
		log.Info().Msg("history archive disabled")
	}

	// Relay hub with the archive as its write-behind sink.
	hub := relay.NewHub(&services.HistoryService{DB: db})
	go hub.Run(ctx)

	// HTTP surface.
	r := gin.New()
	httpapi.RegisterRoutes(r, hub, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("relay listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("stopped")
}
