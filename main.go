package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/drag"
	"taskboard/internal/events"
	"taskboard/internal/handlers"
	"taskboard/internal/store"
)

func main() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Log)
	logger.WithFields(log.Fields{"env": cfg.Env, "store": cfg.Store.Driver}).Info("read env")

	ctx := context.Background()

	s, err := openStore(ctx, cfg.Store)
	if err != nil {
		logger.Fatalf("store: %v", err)
	}
	if s != nil {
		defer s.Close()
	}

	b, err := loadBoard(ctx, s, cfg.Board.Seed)
	if err != nil {
		logger.Fatalf("board: %v", err)
	}
	logger.WithFields(log.Fields{"columns": len(b.Columns()), "tasks": b.TaskCount()}).Info("board ready")

	if s != nil {
		b.AddHook(store.NewSyncer(s, cfg.Store.SaveTimeout, logger).Hook)
	}
	bus := events.NewBus(logger)
	b.AddHook(bus.Hook)

	policy, err := drag.ParsePolicy(cfg.Board.SameColumnDrops)
	if err != nil {
		logger.Fatalf("drag: %v", err)
	}
	d := drag.New(b, drag.WithPolicy(policy), drag.WithLogger(logger))

	h := handlers.New(b, d, bus, logger)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      h.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting server on http://localhost%s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	ctxSh, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxSh); err != nil {
		logger.WithError(err).Error("shutdown")
	}
}

func newLogger(cfg config.LogConfig) *log.Logger {
	logger := log.New()
	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		logger.WithError(err).Warn("unknown LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore returns nil for the memory driver.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return nil, nil
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		s, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverRedis:
		s, err := store.OpenRedis(ctx, cfg.RedisURL, cfg.RedisKey)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

// loadBoard restores the saved board. With nothing saved it starts from
// the seed board, or an empty one when seeding is off.
func loadBoard(ctx context.Context, s store.Store, seed bool) (*board.Board, error) {
	if s != nil {
		snap, err := s.LoadBoard(ctx)
		switch {
		case err == nil:
			return board.FromSnapshot(*snap)
		case !errors.Is(err, store.ErrEmpty):
			return nil, err
		}
	}
	if !seed {
		return board.New(), nil
	}
	b := board.Seeded()
	if s != nil {
		if err := s.SaveBoard(ctx, b.Snapshot()); err != nil {
			return nil, fmt.Errorf("failed to save seed board: %w", err)
		}
	}
	return b, nil
}
