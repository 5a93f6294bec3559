package sqlstore

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"trellcord/internal/storage"
	"trellcord/internal/storage/storagetest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T, cfg storage.Config) *Store {
	t.Helper()
	s, err := Open(cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Service {
		cfg := storage.Config{Name: "conformance", Version: 1, Kind: storage.KindSQLite, Dir: t.TempDir()}
		s := openTestStore(t, cfg)
		require.NoError(t, s.Initialize(context.Background()))
		return s
	})
}

func TestGuardBeforeInitialize(t *testing.T) {
	cfg := storage.Config{Name: "guard", Version: 1, Kind: storage.KindSQLite, Dir: t.TempDir()}
	s := openTestStore(t, cfg)
	ctx := context.Background()

	_, err := s.ListBoards(ctx)
	require.ErrorIs(t, err, storage.ErrUnavailable)
	_, err = s.CreateBoard(ctx, storage.Board{Title: "early"})
	require.ErrorIs(t, err, storage.ErrUnavailable)
	require.ErrorIs(t, s.Clear(ctx), storage.ErrUnavailable)
}

func TestNeverSeeds(t *testing.T) {
	cfg := storage.Config{Name: "fresh", Version: 1, Kind: storage.KindSQLite, Dir: t.TempDir()}
	s := openTestStore(t, cfg)
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))

	boards, err := s.ListBoards(ctx)
	require.NoError(t, err)
	require.Empty(t, boards)
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestDataSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	cfg := storage.Config{Name: "persist", Version: 1, Kind: storage.KindSQLite, Dir: dir}

	first, err := Open(cfg, testLogger())
	require.NoError(t, err)
	require.NoError(t, first.Initialize(ctx))
	board, err := first.CreateBoard(ctx, storage.Board{Title: "Durable"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openTestStore(t, cfg)
	require.NoError(t, second.Initialize(ctx))
	got, err := second.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Equal(t, "Durable", got.Title)
}

func TestSchemaUpgradePreservesRows(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	v1 := storage.Config{Name: "upgrade", Version: 1, Kind: storage.KindSQLite, Dir: dir}
	first, err := Open(v1, testLogger())
	require.NoError(t, err)
	require.NoError(t, first.Initialize(ctx))
	board, err := first.CreateBoard(ctx, storage.Board{Title: "Keep me"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// A version bump reruns the additive schema pass; existing rows stay.
	v2 := storage.Config{Name: "upgrade", Version: 2, Kind: storage.KindSQLite, Dir: dir}
	second := openTestStore(t, v2)
	require.NoError(t, second.Initialize(ctx))

	got, err := second.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Equal(t, "Keep me", got.Title)

	version, err := second.schemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, version)
}

func TestInitializeIsIdempotent(t *testing.T) {
	cfg := storage.Config{Name: "twice", Version: 1, Kind: storage.KindSQLite, Dir: t.TempDir()}
	s := openTestStore(t, cfg)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Initialize(ctx))

	_, err := s.CreateBoard(ctx, storage.Board{Title: "fine"})
	require.NoError(t, err)
}
