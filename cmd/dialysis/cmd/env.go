package cmd

import (
	"context"
	"fmt"

	"github.com/rustyeddy/dialysis/config"
	"github.com/rustyeddy/dialysis/journal"
	"github.com/rustyeddy/dialysis/logging"
	"github.com/rustyeddy/dialysis/session"
	"github.com/rustyeddy/dialysis/storage"
	"go.uber.org/zap"
)

// env is everything a command needs, opened from the config once.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *storage.Store
	journal journal.Journal
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(cfgFile); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if dbOverride != "" {
		cfg.Storage.Type = "sqlite"
		cfg.Storage.DBPath = dbOverride
	}
	if logOverride != "" {
		cfg.Log.Level = logOverride
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, "dialysis")
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	kv, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("open journal: %w", err)
	}

	return &env{
		cfg:     cfg,
		log:     log,
		store:   storage.New(kv, storage.WithLogger(log)),
		journal: j,
	}, nil
}

func (e *env) session(ctx context.Context) *session.Session {
	return session.Start(ctx, e.store,
		session.WithLogger(e.log),
		session.WithJournal(e.journal),
	)
}

func (e *env) Close() error {
	_ = e.log.Sync()
	jerr := e.journal.Close()
	if err := e.store.Close(); err != nil {
		return err
	}
	return jerr
}
