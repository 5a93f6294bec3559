package kvstore

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

func TestConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Service {
		s := New("test", NewMemoryKV(), testLogger())
		require.NoError(t, s.Initialize(context.Background()))
		// Initialize seeds a fresh store; the suite wants an empty one.
		require.NoError(t, s.Clear(context.Background()))
		return s
	})
}

func TestGuardBeforeInitialize(t *testing.T) {
	s := New("test", NewMemoryKV(), testLogger())
	ctx := context.Background()

	_, err := s.ListBoards(ctx)
	require.ErrorIs(t, err, storage.ErrUnavailable)
	_, err = s.CreateBoard(ctx, storage.Board{Title: "early"})
	require.ErrorIs(t, err, storage.ErrUnavailable)
	require.ErrorIs(t, s.Clear(ctx), storage.ErrUnavailable)
}

func TestSeedOnFirstRun(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	s := New("trellcord", kv, testLogger())
	require.NoError(t, s.Initialize(ctx))

	boards, err := s.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	require.Equal(t, "Marketing Campaign", boards[0].Title)
	require.True(t, boards[0].IsStarred)
	require.Equal(t, "Dev Tasks", boards[1].Title)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	archived, err := s.ListArchivedBoards(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	require.Equal(t, "archived-1", archived[0].ID)
	require.Equal(t, "Old Project Board", archived[0].OriginalBoard.Title)
}

func TestSeedSkippedWhenDataExists(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	first := New("trellcord", kv, testLogger())
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.DeleteBoard(ctx, "1"))

	// A second session over the same data must not restore the sample board.
	second := New("trellcord", kv, testLogger())
	require.NoError(t, second.Initialize(ctx))

	boards, err := second.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, "2", boards[0].ID)
}

func TestDatabasesAreScopedByName(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	dev := New("dev", kv, testLogger())
	require.NoError(t, dev.Initialize(ctx))
	require.NoError(t, dev.Clear(ctx))
	board, err := dev.CreateBoard(ctx, storage.Board{Title: "dev only"})
	require.NoError(t, err)

	other := New("other", kv, testLogger())
	require.NoError(t, other.Initialize(ctx))
	require.NoError(t, other.Clear(ctx))

	boards, err := other.ListBoards(ctx)
	require.NoError(t, err)
	require.Empty(t, boards)

	// The first database still has its board.
	got, err := dev.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Equal(t, "dev only", got.Title)
}
