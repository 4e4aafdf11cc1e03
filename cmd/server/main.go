package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/tactical-scout-service/internal/backend"
	"github.com/maxviazov/tactical-scout-service/internal/chat"
	"github.com/maxviazov/tactical-scout-service/internal/config"
	"github.com/maxviazov/tactical-scout-service/internal/handler"
	"github.com/maxviazov/tactical-scout-service/internal/latest"
	"github.com/maxviazov/tactical-scout-service/internal/logger"
	"github.com/maxviazov/tactical-scout-service/internal/middleware"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
	"github.com/maxviazov/tactical-scout-service/internal/repository/memory"
	"github.com/maxviazov/tactical-scout-service/internal/repository/postgres"
	"github.com/maxviazov/tactical-scout-service/internal/repository/redis"
	"github.com/maxviazov/tactical-scout-service/internal/service"
)

const (
	readHeaderTimeout = 10 * time.Second

	// in-memory retention: pages of history per team, transcripts per live session slot
	reportsPerPage        = 10
	transcriptsPerSession = 4
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("service stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("history store close failed")
		}
	}()

	client := backend.NewClient(cfg.Backend, logger)
	responder, err := chat.NewResponder(ctx, cfg.Chat, client, logger)
	if err != nil {
		return fmt.Errorf("chat responder: %w", err)
	}
	registry, err := chat.NewRegistry(cfg.Chat.MaxSessions)
	if err != nil {
		return err
	}

	scoutingSvc := service.NewScoutingService(client, store, latest.NewTracker(), service.ScoutingOptions{
		DefaultMatchLimit: cfg.Backend.DefaultMatchLimit,
		HistoryLimit:      cfg.Storage.HistoryLimit,
	}, logger)
	draftSvc := service.NewDraftService(client, logger)
	chatSvc := service.NewChatService(registry, responder, store, logger)

	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine, store, scoutingSvc, draftSvc, chatSvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           middleware.RequestID(logger)(middleware.CORS(cfg.CORS.AllowedOrigins).Handler(engine)),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().
			Str("addr", srv.Addr).
			Str("chat_mode", cfg.Chat.Mode).
			Str("storage", cfg.Storage.Driver).
			Str("backend", cfg.Backend.BaseURL).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.HistoryStore, error) {
	l := logger.With().Str("module", "repository").Str("component", cfg.Storage.Driver).Logger()
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres, l)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, l); err != nil {
			pool.Close()
			return nil, err
		}
		return postgres.NewHistoryStore(pool), nil
	case config.StorageRedis:
		client, err := redis.Connect(ctx, cfg.Storage.RedisURL, l)
		if err != nil {
			return nil, err
		}
		return redis.NewHistoryStore(client, cfg.Storage.KeyPrefix), nil
	default:
		l.Info().Msg("using in-memory history; it is lost on restart")
		return memory.NewHistoryStore(
			memory.WithReportsPerTeam(cfg.Storage.HistoryLimit*reportsPerPage),
			memory.WithSessions(cfg.Chat.MaxSessions*transcriptsPerSession),
		), nil
	}
}
