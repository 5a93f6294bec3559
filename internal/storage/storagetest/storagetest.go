// Package storagetest holds the conformance suite every backend must pass.
// The two implementations differ in representation only; the observable
// behavior exercised here has to be identical.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"trellcord/internal/storage"
)

// Factory returns a fresh, initialized, empty Service. Each subtest gets its
// own instance, so tests never observe each other's writes.
type Factory func(t *testing.T) storage.Service

// Run executes the full conformance suite against the backend factory builds.
func Run(t *testing.T, newStore Factory) {
	t.Run("BoardLifecycle", func(t *testing.T) { testBoardLifecycle(t, newStore(t)) })
	t.Run("ListsAndCards", func(t *testing.T) { testListsAndCards(t, newStore(t)) })
	t.Run("CascadeDelete", func(t *testing.T) { testCascadeDelete(t, newStore(t)) })
	t.Run("ArchiveRestore", func(t *testing.T) { testArchiveRestore(t, newStore(t)) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("CommentsAndAttachments", func(t *testing.T) { testCommentsAndAttachments(t, newStore(t)) })
	t.Run("MessagesAndActivities", func(t *testing.T) { testMessagesAndActivities(t, newStore(t)) })
	t.Run("Notifications", func(t *testing.T) { testNotifications(t, newStore(t)) })
	t.Run("Settings", func(t *testing.T) { testSettings(t, newStore(t)) })
	t.Run("DeleteMissing", func(t *testing.T) { testDeleteMissing(t, newStore(t)) })
	t.Run("Clear", func(t *testing.T) { testClear(t, newStore(t)) })
}

func testBoardLifecycle(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	boards, err := svc.ListBoards(ctx)
	require.NoError(t, err)
	require.Empty(t, boards)

	created, err := svc.CreateBoard(ctx, storage.Board{Title: "Roadmap", Description: "Q3 planning"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.True(t, created.UpdatedAt.Equal(created.CreatedAt))
	require.NotNil(t, created.Members)
	require.NotNil(t, created.Lists)

	got, err := svc.GetBoard(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(created, got))

	_, err = svc.GetBoard(ctx, "nope")
	require.ErrorIs(t, err, storage.ErrNotFound)

	title := "Roadmap 2026"
	starred := true
	updated, err := svc.UpdateBoard(ctx, created.ID, storage.BoardPatch{Title: &title, IsStarred: &starred})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.True(t, updated.IsStarred)
	// Untouched fields survive a partial update.
	require.Equal(t, "Q3 planning", updated.Description)
	require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	_, err = svc.UpdateBoard(ctx, "nope", storage.BoardPatch{Title: &title})
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, svc.DeleteBoard(ctx, created.ID))
	_, err = svc.GetBoard(ctx, created.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func testListsAndCards(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, storage.Board{Title: "Sprint"})
	require.NoError(t, err)
	other, err := svc.CreateBoard(ctx, storage.Board{Title: "Elsewhere"})
	require.NoError(t, err)

	todo, err := svc.CreateList(ctx, storage.List{Title: "To Do", BoardID: board.ID, Position: 0})
	require.NoError(t, err)
	doing, err := svc.CreateList(ctx, storage.List{Title: "Doing", BoardID: board.ID, Position: 1})
	require.NoError(t, err)
	_, err = svc.CreateList(ctx, storage.List{Title: "Noise", BoardID: other.ID})
	require.NoError(t, err)

	// Relation lookup returns only the owning board's lists.
	lists, err := svc.ListLists(ctx, board.ID)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]storage.List{todo, doing}, lists,
		cmpopts.SortSlices(func(a, b storage.List) bool { return a.Position < b.Position })))

	pos := 5
	moved, err := svc.UpdateList(ctx, todo.ID, storage.ListPatch{Position: &pos})
	require.NoError(t, err)
	require.Equal(t, 5, moved.Position)
	require.Equal(t, todo.Title, moved.Title)

	due := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	card, err := svc.CreateCard(ctx, storage.Card{Title: "Ship it", ListID: todo.ID, DueDate: &due})
	require.NoError(t, err)
	require.NotEmpty(t, card.ID)
	require.NotNil(t, card.Members)
	require.NotNil(t, card.Labels)
	require.NotNil(t, card.Attachments)
	require.NotNil(t, card.Comments)
	require.True(t, card.DueDate.Equal(due))

	cards, err := svc.ListCards(ctx, todo.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Empty(t, cmp.Diff(card, cards[0]))

	// Moving a card to another list updates the relation lookup.
	moveTo := doing.ID
	movedCard, err := svc.UpdateCard(ctx, card.ID, storage.CardPatch{ListID: &moveTo})
	require.NoError(t, err)
	require.Equal(t, doing.ID, movedCard.ListID)

	cards, err = svc.ListCards(ctx, todo.ID)
	require.NoError(t, err)
	require.Empty(t, cards)
	cards, err = svc.ListCards(ctx, doing.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	// Clearing a due date through the double pointer.
	var noDue *time.Time
	cleared, err := svc.UpdateCard(ctx, card.ID, storage.CardPatch{DueDate: &noDue})
	require.NoError(t, err)
	require.Nil(t, cleared.DueDate)
}

func testCascadeDelete(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, storage.Board{Title: "Doomed"})
	require.NoError(t, err)
	survivor, err := svc.CreateBoard(ctx, storage.Board{Title: "Survivor"})
	require.NoError(t, err)

	list, err := svc.CreateList(ctx, storage.List{Title: "Work", BoardID: board.ID})
	require.NoError(t, err)
	keepList, err := svc.CreateList(ctx, storage.List{Title: "Keep", BoardID: survivor.ID})
	require.NoError(t, err)

	card, err := svc.CreateCard(ctx, storage.Card{Title: "Task", ListID: list.ID})
	require.NoError(t, err)
	keepCard, err := svc.CreateCard(ctx, storage.Card{Title: "Other task", ListID: keepList.ID})
	require.NoError(t, err)

	comment, err := svc.CreateComment(ctx, storage.Comment{Content: "On it", CardID: card.ID})
	require.NoError(t, err)
	attachment, err := svc.CreateAttachment(ctx, storage.Attachment{Filename: "brief.pdf", CardID: card.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBoard(ctx, board.ID))

	// The whole owned subtree is gone.
	lists, err := svc.ListLists(ctx, board.ID)
	require.NoError(t, err)
	require.Empty(t, lists)
	cards, err := svc.ListCards(ctx, list.ID)
	require.NoError(t, err)
	require.Empty(t, cards)
	comments, err := svc.ListComments(ctx, card.ID)
	require.NoError(t, err)
	require.Empty(t, comments)
	attachments, err := svc.ListAttachments(ctx, card.ID)
	require.NoError(t, err)
	require.Empty(t, attachments)
	require.ErrorIs(t, svc.DeleteComment(ctx, comment.ID), storage.ErrNotFound)
	require.ErrorIs(t, svc.DeleteAttachment(ctx, attachment.ID), storage.ErrNotFound)

	// The other board's subtree is untouched.
	_, err = svc.GetBoard(ctx, survivor.ID)
	require.NoError(t, err)
	cards, err = svc.ListCards(ctx, keepList.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, keepCard.ID, cards[0].ID)
}

func testArchiveRestore(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, storage.Board{Title: "Marketing", Description: "Campaigns"})
	require.NoError(t, err)

	// Embed the layout in the board document so the snapshot carries it.
	embedded := []storage.List{{ID: "l1", Title: "Ideas", BoardID: board.ID, Cards: []storage.Card{}}}
	board, err = svc.UpdateBoard(ctx, board.ID, storage.BoardPatch{Lists: &embedded})
	require.NoError(t, err)

	archived, err := svc.ArchiveBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Equal(t, board.ID, archived.ID)
	require.Equal(t, "Marketing", archived.Title)
	require.False(t, archived.ArchivedAt.IsZero())
	require.Empty(t, cmp.Diff(board, archived.OriginalBoard))

	// Archiving removes the live board.
	_, err = svc.GetBoard(ctx, board.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	all, err := svc.ListArchivedBoards(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = svc.ArchiveBoard(ctx, board.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	restored, err := svc.RestoreBoard(ctx, archived.ID)
	require.NoError(t, err)
	// Restoration mints a fresh id; content comes back intact.
	require.NotEqual(t, board.ID, restored.ID)
	require.Equal(t, board.Title, restored.Title)
	require.Equal(t, board.Description, restored.Description)
	require.Empty(t, cmp.Diff(embedded, restored.Lists))

	all, err = svc.ListArchivedBoards(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	_, err = svc.RestoreBoard(ctx, archived.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func testUsers(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, storage.User{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(u, got))

	online := true
	updated, err := svc.UpdateUser(ctx, u.ID, storage.UserPatch{IsOnline: &online})
	require.NoError(t, err)
	require.True(t, updated.IsOnline)
	require.Equal(t, "Dana", updated.Name)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = svc.GetUser(ctx, "nope")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func testCommentsAndAttachments(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, storage.Board{Title: "B"})
	require.NoError(t, err)
	list, err := svc.CreateList(ctx, storage.List{Title: "L", BoardID: board.ID})
	require.NoError(t, err)
	card, err := svc.CreateCard(ctx, storage.Card{Title: "C", ListID: list.ID})
	require.NoError(t, err)
	otherCard, err := svc.CreateCard(ctx, storage.Card{Title: "C2", ListID: list.ID})
	require.NoError(t, err)

	comment, err := svc.CreateComment(ctx, storage.Comment{Content: "First", CardID: card.ID})
	require.NoError(t, err)
	require.NotEmpty(t, comment.ID)
	require.False(t, comment.CreatedAt.IsZero())
	require.Nil(t, comment.UpdatedAt)

	_, err = svc.CreateComment(ctx, storage.Comment{Content: "Elsewhere", CardID: otherCard.ID})
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "First", comments[0].Content)

	content := "First, edited"
	edited, err := svc.UpdateComment(ctx, comment.ID, storage.CommentPatch{Content: &content})
	require.NoError(t, err)
	require.Equal(t, content, edited.Content)
	require.NotNil(t, edited.UpdatedAt)

	att, err := svc.CreateAttachment(ctx, storage.Attachment{
		Filename: "mock.png", URL: "https://files.example.com/mock.png",
		Size: 2048, MimeType: "image/png", CardID: card.ID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, att.ID)
	require.False(t, att.UploadedAt.IsZero())

	attachments, err := svc.ListAttachments(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	require.Empty(t, cmp.Diff(att, attachments[0]))

	require.NoError(t, svc.DeleteComment(ctx, comment.ID))
	require.NoError(t, svc.DeleteAttachment(ctx, att.ID))
	comments, err = svc.ListComments(ctx, card.ID)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func testMessagesAndActivities(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, storage.Board{Title: "Chatty"})
	require.NoError(t, err)
	other, err := svc.CreateBoard(ctx, storage.Board{Title: "Quiet"})
	require.NoError(t, err)

	msg, err := svc.CreateMessage(ctx, storage.Message{Content: "standup in 5", BoardID: board.ID})
	require.NoError(t, err)
	require.NotEmpty(t, msg.ID)
	_, err = svc.CreateMessage(ctx, storage.Message{Content: "elsewhere", BoardID: other.ID})
	require.NoError(t, err)

	messages, err := svc.ListMessages(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "standup in 5", messages[0].Content)

	act, err := svc.CreateActivity(ctx, storage.Activity{
		Type:        storage.ActivityCardMoved,
		Description: "moved a card",
		BoardID:     board.ID,
		Metadata:    map[string]any{"from": "To Do", "to": "Done"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, act.ID)
	require.False(t, act.CreatedAt.IsZero())

	activities, err := svc.ListActivities(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, storage.ActivityCardMoved, activities[0].Type)

	activities, err = svc.ListActivities(ctx, other.ID)
	require.NoError(t, err)
	require.Empty(t, activities)
}

func testNotifications(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		n, err := svc.CreateNotification(ctx, storage.Notification{
			Type: storage.NotifyBoardUpdate, Title: title, UserID: "u1",
		})
		require.NoError(t, err)
		ids = append(ids, n.ID)
		// Distinct creation instants keep the ordering deterministic.
		time.Sleep(2 * time.Millisecond)
	}
	_, err := svc.CreateNotification(ctx, storage.Notification{
		Type: storage.NotifyCardAssigned, Title: "someone else's", UserID: "u2",
	})
	require.NoError(t, err)

	// Newest first, scoped to the user.
	list, err := svc.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "third", list[0].Title)
	require.Equal(t, "second", list[1].Title)
	require.Equal(t, "first", list[2].Title)

	read := true
	marked, err := svc.UpdateNotification(ctx, ids[1], storage.NotificationPatch{Read: &read})
	require.NoError(t, err)
	require.True(t, marked.Read)

	unread, err := svc.ListUnreadNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, unread, 2)
	require.Equal(t, "third", unread[0].Title)
	require.Equal(t, "first", unread[1].Title)

	require.NoError(t, svc.DeleteNotification(ctx, ids[0]))
	list, err = svc.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func testSettings(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	_, err := svc.GetSettings(ctx, "u1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	saved, err := svc.SaveSettings(ctx, storage.UserSettings{
		UserID: "u1",
		EmailNotifications: storage.EmailSettings{
			Enabled: true, OnBoardUpdate: true, Frequency: storage.FrequencyInstant,
		},
		PushNotifications: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := svc.GetSettings(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(saved, got))

	// Saving again is an upsert: same row, same id.
	saved.EmailNotifications.Frequency = storage.FrequencyDaily
	again, err := svc.SaveSettings(ctx, saved)
	require.NoError(t, err)
	require.Equal(t, saved.ID, again.ID)
	require.Equal(t, storage.FrequencyDaily, again.EmailNotifications.Frequency)

	other, err := svc.SaveSettings(ctx, storage.UserSettings{UserID: "u2"})
	require.NoError(t, err)
	require.NotEqual(t, saved.ID, other.ID)
}

func testDeleteMissing(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	require.ErrorIs(t, svc.DeleteBoard(ctx, "nope"), storage.ErrNotFound)
	require.ErrorIs(t, svc.DeleteArchivedBoard(ctx, "nope"), storage.ErrNotFound)
	require.ErrorIs(t, svc.DeleteList(ctx, "nope"), storage.ErrNotFound)
	require.ErrorIs(t, svc.DeleteCard(ctx, "nope"), storage.ErrNotFound)
	require.ErrorIs(t, svc.DeleteComment(ctx, "nope"), storage.ErrNotFound)
	require.ErrorIs(t, svc.DeleteAttachment(ctx, "nope"), storage.ErrNotFound)
	require.ErrorIs(t, svc.DeleteNotification(ctx, "nope"), storage.ErrNotFound)
}

func testClear(t *testing.T, svc storage.Service) {
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, storage.Board{Title: "Gone soon"})
	require.NoError(t, err)
	list, err := svc.CreateList(ctx, storage.List{Title: "L", BoardID: board.ID})
	require.NoError(t, err)
	_, err = svc.CreateCard(ctx, storage.Card{Title: "C", ListID: list.ID})
	require.NoError(t, err)
	_, err = svc.CreateNotification(ctx, storage.Notification{Title: "N", UserID: "u1"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	boards, err := svc.ListBoards(ctx)
	require.NoError(t, err)
	require.Empty(t, boards)
	cards, err := svc.ListCards(ctx, list.ID)
	require.NoError(t, err)
	require.Empty(t, cards)
	notifications, err := svc.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, notifications)

	// Idempotent, and the store stays usable afterwards.
	require.NoError(t, svc.Clear(ctx))
	_, err = svc.CreateBoard(ctx, storage.Board{Title: "Back"})
	require.NoError(t, err)
}
