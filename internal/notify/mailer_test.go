package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

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

func TestRender(t *testing.T) {
	n := storage.Notification{Type: storage.NotifyCardAssigned, Title: "t", Message: "m"}
	email := Render(n, map[string]string{"cardTitle": "Ship it"})
	require.Equal(t, "You were assigned a card: Ship it", email.Subject)
	require.Contains(t, email.Body, "Card: Ship it")

	// Missing data falls back instead of rendering empty.
	email = Render(n, nil)
	require.Equal(t, "You were assigned a card: Untitled", email.Subject)

	email = Render(storage.Notification{Type: "unknown", Title: "t", Message: "m"}, nil)
	require.Equal(t, "t", email.Subject)
}

func TestNotifyDefaultsToInstantEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	mailer := NewMailer(store, testLogger())
	recipient := storage.User{ID: "u1", Email: "u1@example.com"}

	// No settings row: the defaults allow instant email.
	n, err := mailer.Notify(ctx, recipient, storage.Notification{
		Type: storage.NotifyBoardUpdate, Title: "Board updated", Message: "things moved",
	}, nil)
	require.NoError(t, err)
	require.True(t, n.EmailSent)
	require.False(t, n.Read)
	require.Equal(t, "u1", n.UserID)

	stored, err := store.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.True(t, stored[0].EmailSent)
}

func TestNotifyHonorsSettings(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	mailer := NewMailer(store, testLogger())
	recipient := storage.User{ID: "u1", Email: "u1@example.com"}

	settings := DefaultSettings("u1")
	settings.EmailNotifications.OnCardAssigned = false
	_, err := store.SaveSettings(ctx, settings)
	require.NoError(t, err)

	// The muted type records the row without an email.
	n, err := mailer.Notify(ctx, recipient, storage.Notification{Type: storage.NotifyCardAssigned}, nil)
	require.NoError(t, err)
	require.False(t, n.EmailSent)

	// Other types still go out.
	n, err = mailer.Notify(ctx, recipient, storage.Notification{Type: storage.NotifyBoardUpdate}, nil)
	require.NoError(t, err)
	require.True(t, n.EmailSent)

	// A digest frequency suppresses all instant email.
	settings.EmailNotifications.Frequency = storage.FrequencyDaily
	_, err = store.SaveSettings(ctx, settings)
	require.NoError(t, err)
	n, err = mailer.Notify(ctx, recipient, storage.Notification{Type: storage.NotifyBoardUpdate}, nil)
	require.NoError(t, err)
	require.False(t, n.EmailSent)

	// Disabled email suppresses everything too.
	settings.EmailNotifications.Frequency = storage.FrequencyInstant
	settings.EmailNotifications.Enabled = false
	_, err = store.SaveSettings(ctx, settings)
	require.NoError(t, err)
	n, err = mailer.Notify(ctx, recipient, storage.Notification{Type: storage.NotifyCommentMention}, nil)
	require.NoError(t, err)
	require.False(t, n.EmailSent)
}

func TestNotifyCardChangeSkipsActor(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	mailer := NewMailer(store, testLogger())

	actor := storage.User{ID: "u1", Name: "Dana"}
	members := []storage.User{actor, {ID: "u2", Name: "Sam"}, {ID: "u3", Name: "Lee"}}
	card := storage.Card{ID: "c1", Title: "Ship"}

	require.NoError(t, mailer.NotifyCardChange(ctx, members, card, actor, "moved"))

	mine, err := store.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, mine)

	theirs, err := store.ListNotifications(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	require.Equal(t, storage.NotifyCardMoved, theirs[0].Type)
	require.Equal(t, "c1", theirs[0].CardID)
}

func TestNotifyNewCommentMentionsBeforeMembers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	mailer := NewMailer(store, testLogger())

	author := storage.User{ID: "u1", Name: "Dana"}
	mentioned := storage.User{ID: "u2", Name: "Sam"}
	bystander := storage.User{ID: "u3", Name: "Lee"}
	members := []storage.User{author, mentioned, bystander}
	card := storage.Card{ID: "c1", Title: "Ship"}

	require.NoError(t, mailer.NotifyNewComment(ctx, members, card, author, []storage.User{mentioned, author}))

	// The author never notifies themselves, not even via a self-mention.
	mine, err := store.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, mine)

	// A mentioned member gets exactly one notification, the mention.
	sams, err := store.ListNotifications(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, sams, 1)
	require.Equal(t, storage.NotifyCommentMention, sams[0].Type)

	lees, err := store.ListNotifications(ctx, "u3")
	require.NoError(t, err)
	require.Len(t, lees, 1)
	require.Equal(t, storage.NotifyBoardUpdate, lees[0].Type)
}
