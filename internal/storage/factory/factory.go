// Package factory resolves a storage configuration into a ready backend.
// The choice happens once at startup; everything past this point talks to
// the contract interface and never inspects the kind again.
package factory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"trellcord/internal/storage"
	"trellcord/internal/storage/kvstore"
	"trellcord/internal/storage/sqlstore"
)

// Preset returns the built-in configuration for an environment name.
// The presets differ only in database name and storage kind, never schema.
// The test preset leaves Dir empty, which selects the in-memory KV store.
func Preset(env string) (storage.Config, error) {
	switch env {
	case "development":
		return storage.Config{Name: "trellcord_dev", Version: 1, Kind: storage.KindKV, Dir: "data"}, nil
	case "production":
		return storage.Config{Name: "trellcord", Version: 1, Kind: storage.KindSQLite, Dir: "data"}, nil
	case "test":
		return storage.Config{Name: "trellcord_test", Version: 1, Kind: storage.KindKV}, nil
	}
	return storage.Config{}, fmt.Errorf("factory: unknown environment %q", env)
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (storage.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return storage.Config{}, fmt.Errorf("factory: read config: %w", err)
	}
	var cfg storage.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return storage.Config{}, fmt.Errorf("factory: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return storage.Config{}, err
	}
	return cfg, nil
}

// Open constructs the backend cfg names and initializes it exactly once.
// An initialization failure is fatal for the session: no retry, no fallback
// to the other backend.
func Open(ctx context.Context, cfg storage.Config, log *slog.Logger) (storage.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var svc storage.Service
	switch cfg.Kind {
	case storage.KindKV:
		var kv kvstore.KV
		if cfg.Dir == "" {
			kv = kvstore.NewMemoryKV()
		} else {
			fileKV, err := kvstore.OpenFileKV(filepath.Join(cfg.Dir, cfg.Name+".json"))
			if err != nil {
				return nil, storage.Unavailable("open kv file", err)
			}
			kv = fileKV
		}
		svc = kvstore.New(cfg.Name, kv, log)
	case storage.KindSQLite, storage.KindPostgres:
		store, err := sqlstore.Open(cfg, log)
		if err != nil {
			return nil, err
		}
		svc = store
	}
	if err := svc.Initialize(ctx); err != nil {
		return nil, err
	}
	log.Info("storage ready", "db", cfg.Name, "kind", string(cfg.Kind))
	return svc, nil
}

// Provider holds the session's single backend instance. Every caller gets
// the same instance, or the same initialization error.
type Provider struct {
	cfg  storage.Config
	log  *slog.Logger
	once sync.Once
	svc  storage.Service
	err  error
}

func NewProvider(cfg storage.Config, log *slog.Logger) *Provider {
	return &Provider{cfg: cfg, log: log}
}

func (p *Provider) Service(ctx context.Context) (storage.Service, error) {
	p.once.Do(func() {
		p.svc, p.err = Open(ctx, p.cfg, p.log)
	})
	return p.svc, p.err
}
