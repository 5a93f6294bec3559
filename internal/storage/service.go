// Package storage defines the persistence contract shared by every backend:
// the entity model, the operation surface, and the error taxonomy. Backends
// live in the kvstore and sqlstore subpackages; the factory package selects
// one from configuration.
package storage

import (
	"context"
	"time"
)

// Service is the operation set every backend implements. All operations take
// a context and report failure as a NotFoundError or UnavailableError; the
// layer performs no retries and substitutes no defaults. Create operations
// assign the id and timestamps, update operations refresh UpdatedAt even if
// the caller supplied one, and deletes cascade through owned children before
// removing the parent row.
type Service interface {
	// Boards
	ListBoards(ctx context.Context) ([]Board, error)
	GetBoard(ctx context.Context, id string) (Board, error)
	CreateBoard(ctx context.Context, b Board) (Board, error)
	UpdateBoard(ctx context.Context, id string, p BoardPatch) (Board, error)
	DeleteBoard(ctx context.Context, id string) error

	// Archived boards
	ListArchivedBoards(ctx context.Context) ([]ArchivedBoard, error)
	ArchiveBoard(ctx context.Context, boardID string) (ArchivedBoard, error)
	RestoreBoard(ctx context.Context, archivedID string) (Board, error)
	DeleteArchivedBoard(ctx context.Context, id string) error

	// Lists
	ListLists(ctx context.Context, boardID string) ([]List, error)
	CreateList(ctx context.Context, l List) (List, error)
	UpdateList(ctx context.Context, id string, p ListPatch) (List, error)
	DeleteList(ctx context.Context, id string) error

	// Cards
	ListCards(ctx context.Context, listID string) ([]Card, error)
	CreateCard(ctx context.Context, c Card) (Card, error)
	UpdateCard(ctx context.Context, id string, p CardPatch) (Card, error)
	DeleteCard(ctx context.Context, id string) error

	// Users
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (User, error)
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, id string, p UserPatch) (User, error)

	// Comments
	ListComments(ctx context.Context, cardID string) ([]Comment, error)
	CreateComment(ctx context.Context, c Comment) (Comment, error)
	UpdateComment(ctx context.Context, id string, p CommentPatch) (Comment, error)
	DeleteComment(ctx context.Context, id string) error

	// Attachments
	ListAttachments(ctx context.Context, cardID string) ([]Attachment, error)
	CreateAttachment(ctx context.Context, a Attachment) (Attachment, error)
	DeleteAttachment(ctx context.Context, id string) error

	// Board chat
	ListMessages(ctx context.Context, boardID string) ([]Message, error)
	CreateMessage(ctx context.Context, m Message) (Message, error)

	// Activity history
	ListActivities(ctx context.Context, boardID string) ([]Activity, error)
	CreateActivity(ctx context.Context, a Activity) (Activity, error)

	// Notifications. ListNotifications returns newest first.
	ListNotifications(ctx context.Context, userID string) ([]Notification, error)
	ListUnreadNotifications(ctx context.Context, userID string) ([]Notification, error)
	CreateNotification(ctx context.Context, n Notification) (Notification, error)
	UpdateNotification(ctx context.Context, id string, p NotificationPatch) (Notification, error)
	DeleteNotification(ctx context.Context, id string) error

	// Per-user settings, unique by user id.
	GetSettings(ctx context.Context, userID string) (UserSettings, error)
	SaveSettings(ctx context.Context, s UserSettings) (UserSettings, error)

	// Initialize must be called exactly once before any other operation.
	// Backends that seed first-run data do it here, only when empty.
	Initialize(ctx context.Context) error
	// Clear erases every collection unconditionally. Idempotent.
	Clear(ctx context.Context) error
	Close() error
}

// Patch types carry partial updates; nil fields are left untouched.

type BoardPatch struct {
	Title       *string
	Description *string
	IsStarred   *bool
	Members     *[]User
	Lists       *[]List
}

type ListPatch struct {
	Title    *string
	BoardID  *string
	Position *int
	Cards    *[]Card
}

type CardPatch struct {
	Title       *string
	Description *string
	ListID      *string
	Position    *int
	Members     *[]User
	Labels      *[]Label
	DueDate     **time.Time
}

type UserPatch struct {
	Name     *string
	Email    *string
	Avatar   *string
	IsOnline *bool
}

type CommentPatch struct {
	Content     *string
	Attachments *[]Attachment
}

type NotificationPatch struct {
	Read      *bool
	EmailSent *bool
}
