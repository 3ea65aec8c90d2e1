package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/transitline/metro-console/internal/api"
	"github.com/transitline/metro-console/internal/core/service"
	redisdb "github.com/transitline/metro-console/internal/infrastructure/db/redis"
	"github.com/transitline/metro-console/internal/infrastructure/metro"
	"github.com/transitline/metro-console/internal/infrastructure/poller"
	"github.com/transitline/metro-console/internal/pkg/config"
	"github.com/transitline/metro-console/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	tokens := redisdb.NewTokenStore(rdb)

	// The 401 sink late-binds to the session manager: the manager needs the
	// general client for its own calls, and the clients need the sink.
	var sessions *service.SessionManager
	onUnauthorized := func(ctx context.Context, rejected string) {
		if sessions != nil {
			sessions.Invalidate(ctx, rejected)
		}
	}

	general, err := metro.NewClient(metro.Config{
		BaseURL: cfg.Metro.BaseURL,
		Surface: metro.SurfaceGeneral,
		Timeout: cfg.Metro.Timeout,
	}, tokens, onUnauthorized, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build general metro client")
	}

	admin, err := metro.NewClient(metro.Config{
		BaseURL: cfg.Metro.BaseURL,
		Surface: metro.SurfaceAdmin,
		Timeout: cfg.Metro.Timeout,
	}, tokens, onUnauthorized, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build admin metro client")
	}

	sessions = service.NewSessionManager(general, tokens, log)

	statusSvc := service.NewStatusService(general, redisdb.NewStatusCache(rdb), log)
	poller.New(func(ctx context.Context) error {
		_, err := statusSvc.Refresh(ctx)
		return err
	}, cfg.Metro.StatusRefresh, log).Start(ctx)

	// Startup session resolution: exchange any stored token for an identity.
	// Guards hold requests on a placeholder until this completes.
	go sessions.Resolve(ctx)

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Guard:    sessions,
		Transit:  general,
		Admin:    admin,
		Status:   statusSvc,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("metro_api", cfg.Metro.BaseURL).Msg("console gateway started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
