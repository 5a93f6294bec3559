package factory

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"trellcord/internal/storage"
	"trellcord/internal/storage/kvstore"
	"trellcord/internal/storage/sqlstore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPresets(t *testing.T) {
	dev, err := Preset("development")
	require.NoError(t, err)
	require.Equal(t, storage.KindKV, dev.Kind)
	require.Equal(t, "trellcord_dev", dev.Name)

	prod, err := Preset("production")
	require.NoError(t, err)
	require.Equal(t, storage.KindSQLite, prod.Kind)
	require.Equal(t, "trellcord", prod.Name)

	test, err := Preset("test")
	require.NoError(t, err)
	require.Equal(t, storage.KindKV, test.Kind)
	require.Empty(t, test.Dir)

	_, err = Preset("staging")
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trellcord.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: custom\nstorage: sqlite\ndir: state\nversion: 2\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "custom", cfg.Name)
	require.Equal(t, storage.KindSQLite, cfg.Kind)
	require.Equal(t, "state", cfg.Dir)
	require.Equal(t, 2, cfg.Version)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("storage: mongodb\n"), 0o644))
	_, err = LoadConfig(bad)
	require.Error(t, err)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	// Empty Dir picks the in-memory KV store.
	svc, err := Open(ctx, storage.Config{Name: "t"}, testLogger())
	require.NoError(t, err)
	require.IsType(t, &kvstore.Store{}, svc)
	require.NoError(t, svc.Close())

	svc, err = Open(ctx, storage.Config{Name: "t", Kind: storage.KindSQLite, Dir: t.TempDir()}, testLogger())
	require.NoError(t, err)
	require.IsType(t, &sqlstore.Store{}, svc)
	require.NoError(t, svc.Close())

	_, err = Open(ctx, storage.Config{Name: "t", Kind: "mongodb"}, testLogger())
	require.Error(t, err)
}

func TestOpenReturnsReadyBackend(t *testing.T) {
	ctx := context.Background()
	svc, err := Open(ctx, storage.Config{Name: "t", Kind: storage.KindSQLite, Dir: t.TempDir()}, testLogger())
	require.NoError(t, err)
	defer svc.Close()

	// No second Initialize needed.
	_, err = svc.CreateBoard(ctx, storage.Board{Title: "ready"})
	require.NoError(t, err)
}

func TestProviderReturnsOneInstance(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(storage.Config{Name: "t"}, testLogger())

	first, err := p.Service(ctx)
	require.NoError(t, err)
	second, err := p.Service(ctx)
	require.NoError(t, err)
	require.Same(t, first, second)

	// Writes through one handle are visible through the other.
	require.NoError(t, first.Clear(ctx))
	board, err := first.CreateBoard(ctx, storage.Board{Title: "shared"})
	require.NoError(t, err)
	got, err := second.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Equal(t, "shared", got.Title)
}

func TestProviderCachesFailure(t *testing.T) {
	p := NewProvider(storage.Config{Name: "t", Kind: "mongodb"}, testLogger())

	_, err := p.Service(context.Background())
	require.Error(t, err)
	_, again := p.Service(context.Background())
	require.Equal(t, err, again)
}
