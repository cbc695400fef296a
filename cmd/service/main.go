package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tunaaoguzhann/pow-captcha/core"
)

func main() {
	cfg := loadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("init store", "store", cfg.Store, "err", err)
		os.Exit(1)
	}

	manager, err := core.NewManager(core.Config{
		Store:     store,
		Logger:    logger,
		OpTimeout: cfg.OpTimeout,
	})
	if err != nil {
		logger.Error("init manager", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           newRouter(manager, cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", srv.Addr, "store", cfg.Store)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

// buildStore opens the configured backend and starts its expiry sweep
// where the backend needs one.
func buildStore(ctx context.Context, cfg config, logger *slog.Logger) (core.Store, error) {
	opts := core.ManagerOptions{
		RedisKeyPrefix: cfg.RedisKeyPrefix,
	}
	switch cfg.Store {
	case "postgres":
		opts.PostgresDSN = cfg.PostgresDSN
	case "redis":
		opts.RedisAddr = cfg.RedisAddr
	case "memory":
	default:
		return nil, errors.New("unknown store " + strconv.Quote(cfg.Store))
	}

	store, err := core.OpenStore(ctx, opts)
	if err != nil {
		return nil, err
	}

	switch s := store.(type) {
	case *core.MemoryStore:
		logger.Info("using in-memory store")
		go s.Run(ctx, cfg.SweepInterval)
	case *core.PostgresStore:
		logger.Info("using postgres store")
		go sweepPostgres(ctx, s, cfg.SweepInterval, logger)
	case *core.RedisStore:
		logger.Info("using redis store", "addr", cfg.RedisAddr)
	}
	return store, nil
}

func sweepPostgres(ctx context.Context, s *core.PostgresStore, interval time.Duration, logger *slog.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Cleanup(ctx)
			if err != nil {
				logger.Warn("postgres sweep failed", "err", err)
				continue
			}
			logger.Debug("postgres sweep", "removed", n)
		}
	}
}
