package activity

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trellcord/internal/storage"
	"trellcord/internal/storage/kvstore"
)

func newTestStore(t *testing.T) storage.Service {
	t.Helper()
	s := kvstore.New("test", kvstore.NewMemoryKV(), testLogger())
	require.NoError(t, s.Initialize(context.Background()))
	require.NoError(t, s.Clear(context.Background()))
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTrackerRecordsBoardHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	tracker := NewTracker(store, testLogger())

	user := storage.User{ID: "u1", Name: "Dana"}
	board := storage.Board{ID: "b1", Title: "Launch"}

	created, err := tracker.BoardCreated(ctx, board, user)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, storage.ActivityBoardCreated, created.Type)
	require.Equal(t, `Dana created the board "Launch"`, created.Description)
	require.Equal(t, "b1", created.BoardID)

	card := storage.Card{ID: "c1", Title: "Ship", ListID: "l2"}
	moved, err := tracker.CardMoved(ctx, card, board, user, "To Do", "Done")
	require.NoError(t, err)
	require.Equal(t, storage.ActivityCardMoved, moved.Type)
	require.Equal(t, "c1", moved.CardID)
	require.Equal(t, "To Do", moved.Metadata["fromList"])
	require.Equal(t, "Done", moved.Metadata["toList"])

	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	dated, err := tracker.DueDateChanged(ctx, card, board, user, due)
	require.NoError(t, err)
	require.Equal(t, `Dana set the due date of "Ship" to 2026-10-01`, dated.Description)

	history, err := store.ListActivities(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
}

func TestTrackerScopesByBoard(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	tracker := NewTracker(store, testLogger())

	user := storage.User{ID: "u1", Name: "Dana"}
	one := storage.Board{ID: "b1", Title: "One"}
	two := storage.Board{ID: "b2", Title: "Two"}

	_, err := tracker.BoardCreated(ctx, one, user)
	require.NoError(t, err)
	_, err = tracker.ListCreated(ctx, storage.List{ID: "l1", Title: "Backlog"}, two, user)
	require.NoError(t, err)

	history, err := store.ListActivities(ctx, two.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, storage.ActivityListCreated, history[0].Type)
	require.Equal(t, "l1", history[0].ListID)
}

func TestTrackerPropagatesStoreFailure(t *testing.T) {
	ctx := context.Background()
	// Uninitialized backend rejects every write.
	store := kvstore.New("test", kvstore.NewMemoryKV(), testLogger())
	tracker := NewTracker(store, testLogger())

	_, err := tracker.BoardCreated(ctx, storage.Board{ID: "b1"}, storage.User{ID: "u1"})
	require.ErrorIs(t, err, storage.ErrUnavailable)
}
