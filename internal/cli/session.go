package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/mantrad/internal/app"
	"github.com/sandeepkv93/mantrad/internal/clock"
	"github.com/sandeepkv93/mantrad/internal/config"
	"github.com/sandeepkv93/mantrad/internal/storage"
)

type session struct {
	cfg   config.RuntimeConfig
	store storage.Store
	ctx   *app.Context
	label string
	close func() error
}

func loadConfig(opts *rootOptions) (config.RuntimeConfig, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	return cfg, nil
}

// openSession loads config, opens the store and builds the application
// context. Callers must call close when done.
func openSession(opts *rootOptions) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, close: func() error { return nil }}
	if opts.ephemeral {
		s.store = storage.NewMemoryStore()
		s.label = "memory (ephemeral)"
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		db, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		s.store = db
		s.label = cfg.DBPath
		s.close = db.Close
	}

	ctx, err := app.New(s.store, clock.System, cfg)
	if err != nil {
		_ = s.close()
		return nil, err
	}
	s.ctx = ctx
	if opts.verbose {
		log.Printf("cli: session store=%s lang=%q", s.label, cfg.Language)
	}
	return s, nil
}
