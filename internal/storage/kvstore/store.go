// Package kvstore implements the storage contract on a flat string key/value
// store. Each collection is one JSON array under "{name}_{collection}";
// every read deserializes the whole array and every write rewrites it whole.
// Relation lookups are linear filters, which is fine while the entire
// dataset already sits in memory.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"trellcord/internal/storage"
)

type Store struct {
	name  string
	kv    KV
	log   *slog.Logger
	ready bool
}

var _ storage.Service = (*Store)(nil)

// New wraps kv as a contract backend scoped to name. Initialize must run
// before any other operation.
func New(name string, kv KV, log *slog.Logger) *Store {
	return &Store{name: name, kv: kv, log: log}
}

func (s *Store) key(collection string) string {
	return s.name + "_" + collection
}

func (s *Store) guard() error {
	if !s.ready {
		return storage.Unavailable("kv backend not initialized", nil)
	}
	return nil
}

func generateID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

// readAll is the backend's decode half: typed unmarshal rehydrates every
// timestamp field, so serialized time strings never leak to callers.
func readAll[T any](s *Store, collection string) ([]T, error) {
	raw, ok, err := s.kv.Get(s.key(collection))
	if err != nil {
		return nil, fmt.Errorf("kvstore: read %s: %w", collection, err)
	}
	if !ok {
		return nil, nil
	}
	var rows []T
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("kvstore: decode %s: %w", collection, err)
	}
	return rows, nil
}

func writeAll[T any](s *Store, collection string, rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("kvstore: encode %s: %w", collection, err)
	}
	if err := s.kv.Set(s.key(collection), string(raw)); err != nil {
		return fmt.Errorf("kvstore: write %s: %w", collection, err)
	}
	return nil
}

// Boards

func (s *Store) ListBoards(ctx context.Context) ([]storage.Board, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return readAll[storage.Board](s, storage.CollectionBoards)
}

func (s *Store) GetBoard(ctx context.Context, id string) (storage.Board, error) {
	boards, err := s.ListBoards(ctx)
	if err != nil {
		return storage.Board{}, err
	}
	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}
	return storage.Board{}, storage.NotFoundf(storage.CollectionBoards, id)
}

func (s *Store) CreateBoard(ctx context.Context, b storage.Board) (storage.Board, error) {
	if err := s.guard(); err != nil {
		return storage.Board{}, err
	}
	boards, err := readAll[storage.Board](s, storage.CollectionBoards)
	if err != nil {
		return storage.Board{}, err
	}
	b.ID = generateID()
	b.CreatedAt = now()
	b.UpdatedAt = b.CreatedAt
	if b.Members == nil {
		b.Members = []storage.User{}
	}
	if b.Lists == nil {
		b.Lists = []storage.List{}
	}
	boards = append(boards, b)
	if err := writeAll(s, storage.CollectionBoards, boards); err != nil {
		return storage.Board{}, err
	}
	return b, nil
}

func (s *Store) UpdateBoard(ctx context.Context, id string, p storage.BoardPatch) (storage.Board, error) {
	if err := s.guard(); err != nil {
		return storage.Board{}, err
	}
	boards, err := readAll[storage.Board](s, storage.CollectionBoards)
	if err != nil {
		return storage.Board{}, err
	}
	for i := range boards {
		if boards[i].ID != id {
			continue
		}
		b := &boards[i]
		if p.Title != nil {
			b.Title = *p.Title
		}
		if p.Description != nil {
			b.Description = *p.Description
		}
		if p.IsStarred != nil {
			b.IsStarred = *p.IsStarred
		}
		if p.Members != nil {
			b.Members = *p.Members
		}
		if p.Lists != nil {
			b.Lists = *p.Lists
		}
		b.UpdatedAt = now()
		if err := writeAll(s, storage.CollectionBoards, boards); err != nil {
			return storage.Board{}, err
		}
		return *b, nil
	}
	return storage.Board{}, storage.NotFoundf(storage.CollectionBoards, id)
}

func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	boards, err := readAll[storage.Board](s, storage.CollectionBoards)
	if err != nil {
		return err
	}
	kept := boards[:0]
	found := false
	for _, b := range boards {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return storage.NotFoundf(storage.CollectionBoards, id)
	}
	if err := writeAll(s, storage.CollectionBoards, kept); err != nil {
		return err
	}
	// Cascade to owned lists; each list cascades to its cards. Steps commit
	// independently, so a failure here leaves a partially-cascaded store and
	// the caller decides whether to retry the whole delete.
	lists, err := s.ListLists(ctx, id)
	if err != nil {
		return err
	}
	for _, l := range lists {
		if err := s.DeleteList(ctx, l.ID); err != nil {
			s.log.Error("cascade step failed", "collection", storage.CollectionLists, "id", l.ID, "board", id, "err", err)
			return err
		}
	}
	return nil
}

// Archived boards

func (s *Store) ListArchivedBoards(ctx context.Context) ([]storage.ArchivedBoard, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return readAll[storage.ArchivedBoard](s, storage.CollectionArchivedBoards)
}

func (s *Store) ArchiveBoard(ctx context.Context, boardID string) (storage.ArchivedBoard, error) {
	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return storage.ArchivedBoard{}, err
	}
	ab := storage.ArchivedBoard{
		ID:            board.ID,
		Title:         board.Title,
		Description:   board.Description,
		Members:       board.Members,
		ArchivedAt:    now(),
		OriginalBoard: board,
	}
	archived, err := readAll[storage.ArchivedBoard](s, storage.CollectionArchivedBoards)
	if err != nil {
		return storage.ArchivedBoard{}, err
	}
	archived = append(archived, ab)
	if err := writeAll(s, storage.CollectionArchivedBoards, archived); err != nil {
		return storage.ArchivedBoard{}, err
	}
	if err := s.DeleteBoard(ctx, boardID); err != nil {
		return storage.ArchivedBoard{}, err
	}
	return ab, nil
}

func (s *Store) RestoreBoard(ctx context.Context, archivedID string) (storage.Board, error) {
	archived, err := s.ListArchivedBoards(ctx)
	if err != nil {
		return storage.Board{}, err
	}
	for _, ab := range archived {
		if ab.ID != archivedID {
			continue
		}
		// Re-created through CreateBoard, so the restored board gets a new id.
		restored, err := s.CreateBoard(ctx, storage.Board{
			Title:       ab.OriginalBoard.Title,
			Description: ab.OriginalBoard.Description,
			IsStarred:   ab.OriginalBoard.IsStarred,
			Members:     ab.OriginalBoard.Members,
			Lists:       ab.OriginalBoard.Lists,
		})
		if err != nil {
			return storage.Board{}, err
		}
		if err := s.DeleteArchivedBoard(ctx, archivedID); err != nil {
			return storage.Board{}, err
		}
		return restored, nil
	}
	return storage.Board{}, storage.NotFoundf(storage.CollectionArchivedBoards, archivedID)
}

func (s *Store) DeleteArchivedBoard(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	archived, err := readAll[storage.ArchivedBoard](s, storage.CollectionArchivedBoards)
	if err != nil {
		return err
	}
	kept := archived[:0]
	found := false
	for _, ab := range archived {
		if ab.ID == id {
			found = true
			continue
		}
		kept = append(kept, ab)
	}
	if !found {
		return storage.NotFoundf(storage.CollectionArchivedBoards, id)
	}
	return writeAll(s, storage.CollectionArchivedBoards, kept)
}

// Lists

func (s *Store) ListLists(ctx context.Context, boardID string) ([]storage.List, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	lists, err := readAll[storage.List](s, storage.CollectionLists)
	if err != nil {
		return nil, err
	}
	out := []storage.List{}
	for _, l := range lists {
		if l.BoardID == boardID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) CreateList(ctx context.Context, l storage.List) (storage.List, error) {
	if err := s.guard(); err != nil {
		return storage.List{}, err
	}
	lists, err := readAll[storage.List](s, storage.CollectionLists)
	if err != nil {
		return storage.List{}, err
	}
	l.ID = generateID()
	if l.Cards == nil {
		l.Cards = []storage.Card{}
	}
	lists = append(lists, l)
	if err := writeAll(s, storage.CollectionLists, lists); err != nil {
		return storage.List{}, err
	}
	return l, nil
}

func (s *Store) UpdateList(ctx context.Context, id string, p storage.ListPatch) (storage.List, error) {
	if err := s.guard(); err != nil {
		return storage.List{}, err
	}
	lists, err := readAll[storage.List](s, storage.CollectionLists)
	if err != nil {
		return storage.List{}, err
	}
	for i := range lists {
		if lists[i].ID != id {
			continue
		}
		l := &lists[i]
		if p.Title != nil {
			l.Title = *p.Title
		}
		if p.BoardID != nil {
			l.BoardID = *p.BoardID
		}
		if p.Position != nil {
			l.Position = *p.Position
		}
		if p.Cards != nil {
			l.Cards = *p.Cards
		}
		if err := writeAll(s, storage.CollectionLists, lists); err != nil {
			return storage.List{}, err
		}
		return *l, nil
	}
	return storage.List{}, storage.NotFoundf(storage.CollectionLists, id)
}

func (s *Store) DeleteList(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	lists, err := readAll[storage.List](s, storage.CollectionLists)
	if err != nil {
		return err
	}
	kept := lists[:0]
	found := false
	for _, l := range lists {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return storage.NotFoundf(storage.CollectionLists, id)
	}
	if err := writeAll(s, storage.CollectionLists, kept); err != nil {
		return err
	}
	cards, err := s.ListCards(ctx, id)
	if err != nil {
		return err
	}
	for _, c := range cards {
		if err := s.DeleteCard(ctx, c.ID); err != nil {
			s.log.Error("cascade step failed", "collection", storage.CollectionCards, "id", c.ID, "list", id, "err", err)
			return err
		}
	}
	return nil
}

// Cards

func (s *Store) ListCards(ctx context.Context, listID string) ([]storage.Card, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	cards, err := readAll[storage.Card](s, storage.CollectionCards)
	if err != nil {
		return nil, err
	}
	out := []storage.Card{}
	for _, c := range cards {
		if c.ListID == listID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) CreateCard(ctx context.Context, c storage.Card) (storage.Card, error) {
	if err := s.guard(); err != nil {
		return storage.Card{}, err
	}
	cards, err := readAll[storage.Card](s, storage.CollectionCards)
	if err != nil {
		return storage.Card{}, err
	}
	c.ID = generateID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	if c.Members == nil {
		c.Members = []storage.User{}
	}
	if c.Labels == nil {
		c.Labels = []storage.Label{}
	}
	if c.Attachments == nil {
		c.Attachments = []storage.Attachment{}
	}
	if c.Comments == nil {
		c.Comments = []storage.Comment{}
	}
	cards = append(cards, c)
	if err := writeAll(s, storage.CollectionCards, cards); err != nil {
		return storage.Card{}, err
	}
	return c, nil
}

func (s *Store) UpdateCard(ctx context.Context, id string, p storage.CardPatch) (storage.Card, error) {
	if err := s.guard(); err != nil {
		return storage.Card{}, err
	}
	cards, err := readAll[storage.Card](s, storage.CollectionCards)
	if err != nil {
		return storage.Card{}, err
	}
	for i := range cards {
		if cards[i].ID != id {
			continue
		}
		c := &cards[i]
		applyCardPatch(c, p)
		c.UpdatedAt = now()
		if err := writeAll(s, storage.CollectionCards, cards); err != nil {
			return storage.Card{}, err
		}
		return *c, nil
	}
	return storage.Card{}, storage.NotFoundf(storage.CollectionCards, id)
}

func applyCardPatch(c *storage.Card, p storage.CardPatch) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.ListID != nil {
		c.ListID = *p.ListID
	}
	if p.Position != nil {
		c.Position = *p.Position
	}
	if p.Members != nil {
		c.Members = *p.Members
	}
	if p.Labels != nil {
		c.Labels = *p.Labels
	}
	if p.DueDate != nil {
		c.DueDate = *p.DueDate
	}
}

func (s *Store) DeleteCard(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	cards, err := readAll[storage.Card](s, storage.CollectionCards)
	if err != nil {
		return err
	}
	kept := cards[:0]
	found := false
	for _, c := range cards {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return storage.NotFoundf(storage.CollectionCards, id)
	}
	if err := writeAll(s, storage.CollectionCards, kept); err != nil {
		return err
	}
	// Owned comments and attachments go with the card.
	comments, err := s.ListComments(ctx, id)
	if err != nil {
		return err
	}
	for _, c := range comments {
		if err := s.DeleteComment(ctx, c.ID); err != nil {
			s.log.Error("cascade step failed", "collection", storage.CollectionComments, "id", c.ID, "card", id, "err", err)
			return err
		}
	}
	attachments, err := s.ListAttachments(ctx, id)
	if err != nil {
		return err
	}
	for _, a := range attachments {
		if err := s.DeleteAttachment(ctx, a.ID); err != nil {
			s.log.Error("cascade step failed", "collection", storage.CollectionAttachments, "id", a.ID, "card", id, "err", err)
			return err
		}
	}
	return nil
}

// Users

func (s *Store) ListUsers(ctx context.Context) ([]storage.User, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return readAll[storage.User](s, storage.CollectionUsers)
}

func (s *Store) GetUser(ctx context.Context, id string) (storage.User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return storage.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return storage.User{}, storage.NotFoundf(storage.CollectionUsers, id)
}

func (s *Store) CreateUser(ctx context.Context, u storage.User) (storage.User, error) {
	if err := s.guard(); err != nil {
		return storage.User{}, err
	}
	users, err := readAll[storage.User](s, storage.CollectionUsers)
	if err != nil {
		return storage.User{}, err
	}
	u.ID = generateID()
	users = append(users, u)
	if err := writeAll(s, storage.CollectionUsers, users); err != nil {
		return storage.User{}, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, p storage.UserPatch) (storage.User, error) {
	if err := s.guard(); err != nil {
		return storage.User{}, err
	}
	users, err := readAll[storage.User](s, storage.CollectionUsers)
	if err != nil {
		return storage.User{}, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		u := &users[i]
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.Email != nil {
			u.Email = *p.Email
		}
		if p.Avatar != nil {
			u.Avatar = *p.Avatar
		}
		if p.IsOnline != nil {
			u.IsOnline = *p.IsOnline
		}
		if err := writeAll(s, storage.CollectionUsers, users); err != nil {
			return storage.User{}, err
		}
		return *u, nil
	}
	return storage.User{}, storage.NotFoundf(storage.CollectionUsers, id)
}

// Comments

func (s *Store) ListComments(ctx context.Context, cardID string) ([]storage.Comment, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	comments, err := readAll[storage.Comment](s, storage.CollectionComments)
	if err != nil {
		return nil, err
	}
	out := []storage.Comment{}
	for _, c := range comments {
		if c.CardID == cardID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) CreateComment(ctx context.Context, c storage.Comment) (storage.Comment, error) {
	if err := s.guard(); err != nil {
		return storage.Comment{}, err
	}
	comments, err := readAll[storage.Comment](s, storage.CollectionComments)
	if err != nil {
		return storage.Comment{}, err
	}
	c.ID = generateID()
	c.CreatedAt = now()
	c.UpdatedAt = nil
	comments = append(comments, c)
	if err := writeAll(s, storage.CollectionComments, comments); err != nil {
		return storage.Comment{}, err
	}
	return c, nil
}

func (s *Store) UpdateComment(ctx context.Context, id string, p storage.CommentPatch) (storage.Comment, error) {
	if err := s.guard(); err != nil {
		return storage.Comment{}, err
	}
	comments, err := readAll[storage.Comment](s, storage.CollectionComments)
	if err != nil {
		return storage.Comment{}, err
	}
	for i := range comments {
		if comments[i].ID != id {
			continue
		}
		c := &comments[i]
		if p.Content != nil {
			c.Content = *p.Content
		}
		if p.Attachments != nil {
			c.Attachments = *p.Attachments
		}
		t := now()
		c.UpdatedAt = &t
		if err := writeAll(s, storage.CollectionComments, comments); err != nil {
			return storage.Comment{}, err
		}
		return *c, nil
	}
	return storage.Comment{}, storage.NotFoundf(storage.CollectionComments, id)
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	comments, err := readAll[storage.Comment](s, storage.CollectionComments)
	if err != nil {
		return err
	}
	kept := comments[:0]
	found := false
	for _, c := range comments {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return storage.NotFoundf(storage.CollectionComments, id)
	}
	return writeAll(s, storage.CollectionComments, kept)
}

// Attachments

func (s *Store) ListAttachments(ctx context.Context, cardID string) ([]storage.Attachment, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	attachments, err := readAll[storage.Attachment](s, storage.CollectionAttachments)
	if err != nil {
		return nil, err
	}
	out := []storage.Attachment{}
	for _, a := range attachments {
		if a.CardID == cardID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) CreateAttachment(ctx context.Context, a storage.Attachment) (storage.Attachment, error) {
	if err := s.guard(); err != nil {
		return storage.Attachment{}, err
	}
	attachments, err := readAll[storage.Attachment](s, storage.CollectionAttachments)
	if err != nil {
		return storage.Attachment{}, err
	}
	a.ID = generateID()
	a.UploadedAt = now()
	attachments = append(attachments, a)
	if err := writeAll(s, storage.CollectionAttachments, attachments); err != nil {
		return storage.Attachment{}, err
	}
	return a, nil
}

func (s *Store) DeleteAttachment(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	attachments, err := readAll[storage.Attachment](s, storage.CollectionAttachments)
	if err != nil {
		return err
	}
	kept := attachments[:0]
	found := false
	for _, a := range attachments {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return storage.NotFoundf(storage.CollectionAttachments, id)
	}
	return writeAll(s, storage.CollectionAttachments, kept)
}

// Messages

func (s *Store) ListMessages(ctx context.Context, boardID string) ([]storage.Message, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	messages, err := readAll[storage.Message](s, storage.CollectionMessages)
	if err != nil {
		return nil, err
	}
	out := []storage.Message{}
	for _, m := range messages {
		if m.BoardID == boardID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) CreateMessage(ctx context.Context, m storage.Message) (storage.Message, error) {
	if err := s.guard(); err != nil {
		return storage.Message{}, err
	}
	messages, err := readAll[storage.Message](s, storage.CollectionMessages)
	if err != nil {
		return storage.Message{}, err
	}
	m.ID = generateID()
	m.CreatedAt = now()
	messages = append(messages, m)
	if err := writeAll(s, storage.CollectionMessages, messages); err != nil {
		return storage.Message{}, err
	}
	return m, nil
}

// Activities

func (s *Store) ListActivities(ctx context.Context, boardID string) ([]storage.Activity, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	activities, err := readAll[storage.Activity](s, storage.CollectionActivities)
	if err != nil {
		return nil, err
	}
	out := []storage.Activity{}
	for _, a := range activities {
		if a.BoardID == boardID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) CreateActivity(ctx context.Context, a storage.Activity) (storage.Activity, error) {
	if err := s.guard(); err != nil {
		return storage.Activity{}, err
	}
	activities, err := readAll[storage.Activity](s, storage.CollectionActivities)
	if err != nil {
		return storage.Activity{}, err
	}
	a.ID = generateID()
	a.CreatedAt = now()
	activities = append(activities, a)
	if err := writeAll(s, storage.CollectionActivities, activities); err != nil {
		return storage.Activity{}, err
	}
	return a, nil
}

// Notifications

func (s *Store) ListNotifications(ctx context.Context, userID string) ([]storage.Notification, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	notifications, err := readAll[storage.Notification](s, storage.CollectionNotifications)
	if err != nil {
		return nil, err
	}
	out := []storage.Notification{}
	for _, n := range notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListUnreadNotifications(ctx context.Context, userID string) ([]storage.Notification, error) {
	notifications, err := s.ListNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []storage.Notification{}
	for _, n := range notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *Store) CreateNotification(ctx context.Context, n storage.Notification) (storage.Notification, error) {
	if err := s.guard(); err != nil {
		return storage.Notification{}, err
	}
	notifications, err := readAll[storage.Notification](s, storage.CollectionNotifications)
	if err != nil {
		return storage.Notification{}, err
	}
	n.ID = generateID()
	n.CreatedAt = now()
	notifications = append(notifications, n)
	if err := writeAll(s, storage.CollectionNotifications, notifications); err != nil {
		return storage.Notification{}, err
	}
	return n, nil
}

func (s *Store) UpdateNotification(ctx context.Context, id string, p storage.NotificationPatch) (storage.Notification, error) {
	if err := s.guard(); err != nil {
		return storage.Notification{}, err
	}
	notifications, err := readAll[storage.Notification](s, storage.CollectionNotifications)
	if err != nil {
		return storage.Notification{}, err
	}
	for i := range notifications {
		if notifications[i].ID != id {
			continue
		}
		n := &notifications[i]
		if p.Read != nil {
			n.Read = *p.Read
		}
		if p.EmailSent != nil {
			n.EmailSent = *p.EmailSent
		}
		if err := writeAll(s, storage.CollectionNotifications, notifications); err != nil {
			return storage.Notification{}, err
		}
		return *n, nil
	}
	return storage.Notification{}, storage.NotFoundf(storage.CollectionNotifications, id)
}

func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	notifications, err := readAll[storage.Notification](s, storage.CollectionNotifications)
	if err != nil {
		return err
	}
	kept := notifications[:0]
	found := false
	for _, n := range notifications {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return storage.NotFoundf(storage.CollectionNotifications, id)
	}
	return writeAll(s, storage.CollectionNotifications, kept)
}

// Settings

func (s *Store) GetSettings(ctx context.Context, userID string) (storage.UserSettings, error) {
	if err := s.guard(); err != nil {
		return storage.UserSettings{}, err
	}
	settings, err := readAll[storage.UserSettings](s, storage.CollectionSettings)
	if err != nil {
		return storage.UserSettings{}, err
	}
	for _, st := range settings {
		if st.UserID == userID {
			return st, nil
		}
	}
	return storage.UserSettings{}, storage.NotFoundf(storage.CollectionSettings, userID)
}

func (s *Store) SaveSettings(ctx context.Context, in storage.UserSettings) (storage.UserSettings, error) {
	if err := s.guard(); err != nil {
		return storage.UserSettings{}, err
	}
	settings, err := readAll[storage.UserSettings](s, storage.CollectionSettings)
	if err != nil {
		return storage.UserSettings{}, err
	}
	for i := range settings {
		if settings[i].UserID == in.UserID {
			in.ID = settings[i].ID
			settings[i] = in
			if err := writeAll(s, storage.CollectionSettings, settings); err != nil {
				return storage.UserSettings{}, err
			}
			return in, nil
		}
	}
	in.ID = generateID()
	settings = append(settings, in)
	if err := writeAll(s, storage.CollectionSettings, settings); err != nil {
		return storage.UserSettings{}, err
	}
	return in, nil
}

// Lifecycle

func (s *Store) Initialize(ctx context.Context) error {
	if s.ready {
		return nil
	}
	s.ready = true
	// First run only: the boards key missing means an empty store.
	_, ok, err := s.kv.Get(s.key(storage.CollectionBoards))
	if err != nil {
		s.ready = false
		return storage.Unavailable("kv backend open failed", err)
	}
	if !ok {
		if err := s.seed(ctx); err != nil {
			s.ready = false
			return storage.Unavailable("kv backend seeding failed", err)
		}
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}
	for _, c := range storage.Collections {
		if err := s.kv.Delete(s.key(c)); err != nil {
			return fmt.Errorf("kvstore: clear %s: %w", c, err)
		}
	}
	return nil
}

func (s *Store) Close() error { return nil }
