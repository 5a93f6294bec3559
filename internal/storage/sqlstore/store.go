// Package sqlstore implements the storage contract on a relational database
// through database/sql: one table per collection, the entity serialized as a
// JSON document beside its indexed foreign-key columns. The embedded SQLite
// driver is the default; a Postgres DSN selects pgx instead. Relation
// lookups go through the secondary-index columns, never a scan-and-filter.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"trellcord/internal/storage"
)

type Store struct {
	db    *sql.DB
	cfg   storage.Config
	log   *slog.Logger
	ready bool
}

var _ storage.Service = (*Store)(nil)

// Open creates the handle but does not touch the schema; Initialize does.
func Open(cfg storage.Config, log *slog.Logger) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Kind {
	case storage.KindPostgres:
		db, err = sql.Open("pgx", cfg.DSN)
	default:
		dir := cfg.Dir
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storage.Unavailable("create database dir", err)
		}
		db, err = sql.Open("sqlite", filepath.Join(dir, cfg.Name+".db"))
	}
	if err != nil {
		return nil, storage.Unavailable("open database", err)
	}
	return &Store{db: db, cfg: cfg, log: log}, nil
}

func (s *Store) guard() error {
	if !s.ready {
		return storage.Unavailable("sql backend not initialized", nil)
	}
	return nil
}

func generateID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

// encode/decode are the backend's serialization boundary. Decoding through
// the typed entity rehydrates every timestamp, so callers never see the
// serialized time representation.
func encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("sqlstore: encode: %w", err)
	}
	return string(raw), nil
}

func decode[T any](doc string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return v, fmt.Errorf("sqlstore: decode: %w", err)
	}
	return v, nil
}

// querier is satisfied by *sql.DB and *sql.Tx, so row helpers work inside
// and outside a transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getRow[T any](ctx context.Context, s *Store, table, collection, id string) (T, error) {
	var zero T
	if err := s.guard(); err != nil {
		return zero, err
	}
	return getRowOn[T](ctx, s.db, table, collection, id)
}

func getRowOn[T any](ctx context.Context, q querier, table, collection, id string) (T, error) {
	var zero T
	var doc string
	err := q.QueryRowContext(ctx, `select doc from `+table+` where id=$1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, storage.NotFoundf(collection, id)
	}
	if err != nil {
		return zero, err
	}
	return decode[T](doc)
}

// withTx runs a read-modify-write sequence in one transaction.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := s.guard(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func listRows[T any](ctx context.Context, s *Store, query string, args ...any) ([]T, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) deleteRow(ctx context.Context, table, collection, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `delete from `+table+` where id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.NotFoundf(collection, id)
	}
	return nil
}

// Boards

func (s *Store) ListBoards(ctx context.Context) ([]storage.Board, error) {
	return listRows[storage.Board](ctx, s, `select doc from boards order by created_at, id`)
}

func (s *Store) GetBoard(ctx context.Context, id string) (storage.Board, error) {
	return getRow[storage.Board](ctx, s, "boards", storage.CollectionBoards, id)
}

func (s *Store) CreateBoard(ctx context.Context, b storage.Board) (storage.Board, error) {
	if err := s.guard(); err != nil {
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
	doc, err := encode(b)
	if err != nil {
		return storage.Board{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into boards(id, created_at, doc) values($1,$2,$3)`,
		b.ID, b.CreatedAt.UnixNano(), doc)
	if err != nil {
		return storage.Board{}, err
	}
	return b, nil
}

func (s *Store) UpdateBoard(ctx context.Context, id string, p storage.BoardPatch) (storage.Board, error) {
	var b storage.Board
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		b, err = getRowOn[storage.Board](ctx, tx, "boards", storage.CollectionBoards, id)
		if err != nil {
			return err
		}
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
		doc, err := encode(b)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `update boards set doc=$1 where id=$2`, doc, id)
		return err
	})
	if err != nil {
		return storage.Board{}, err
	}
	return b, nil
}

func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	if err := s.deleteRow(ctx, "boards", storage.CollectionBoards, id); err != nil {
		return err
	}
	// One commit per cascade step, matching the contract: a crash partway
	// leaves orphans for the caller to clean up by retrying the delete.
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
	return listRows[storage.ArchivedBoard](ctx, s, `select doc from archived_boards order by archived_at, id`)
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
	doc, err := encode(ab)
	if err != nil {
		return storage.ArchivedBoard{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into archived_boards(id, archived_at, doc) values($1,$2,$3)`,
		ab.ID, ab.ArchivedAt.UnixNano(), doc)
	if err != nil {
		return storage.ArchivedBoard{}, err
	}
	if err := s.DeleteBoard(ctx, boardID); err != nil {
		return storage.ArchivedBoard{}, err
	}
	return ab, nil
}

func (s *Store) RestoreBoard(ctx context.Context, archivedID string) (storage.Board, error) {
	ab, err := getRow[storage.ArchivedBoard](ctx, s, "archived_boards", storage.CollectionArchivedBoards, archivedID)
	if err != nil {
		return storage.Board{}, err
	}
	// CreateBoard assigns a fresh id; restoration does not preserve the
	// original one.
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

func (s *Store) DeleteArchivedBoard(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "archived_boards", storage.CollectionArchivedBoards, id)
}

// Lists

func (s *Store) ListLists(ctx context.Context, boardID string) ([]storage.List, error) {
	return listRows[storage.List](ctx, s, `select doc from lists where board_id=$1 order by id`, boardID)
}

func (s *Store) CreateList(ctx context.Context, l storage.List) (storage.List, error) {
	if err := s.guard(); err != nil {
		return storage.List{}, err
	}
	l.ID = generateID()
	if l.Cards == nil {
		l.Cards = []storage.Card{}
	}
	doc, err := encode(l)
	if err != nil {
		return storage.List{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into lists(id, board_id, doc) values($1,$2,$3)`,
		l.ID, l.BoardID, doc)
	if err != nil {
		return storage.List{}, err
	}
	return l, nil
}

func (s *Store) UpdateList(ctx context.Context, id string, p storage.ListPatch) (storage.List, error) {
	var l storage.List
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		l, err = getRowOn[storage.List](ctx, tx, "lists", storage.CollectionLists, id)
		if err != nil {
			return err
		}
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
		doc, err := encode(l)
		if err != nil {
			return err
		}
		// board_id is an indexed column, keep it in step with the document.
		_, err = tx.ExecContext(ctx, `update lists set board_id=$1, doc=$2 where id=$3`, l.BoardID, doc, id)
		return err
	})
	if err != nil {
		return storage.List{}, err
	}
	return l, nil
}

func (s *Store) DeleteList(ctx context.Context, id string) error {
	if err := s.deleteRow(ctx, "lists", storage.CollectionLists, id); err != nil {
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
	return listRows[storage.Card](ctx, s, `select doc from cards where list_id=$1 order by created_at, id`, listID)
}

func (s *Store) CreateCard(ctx context.Context, c storage.Card) (storage.Card, error) {
	if err := s.guard(); err != nil {
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
	doc, err := encode(c)
	if err != nil {
		return storage.Card{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into cards(id, list_id, created_at, doc) values($1,$2,$3,$4)`,
		c.ID, c.ListID, c.CreatedAt.UnixNano(), doc)
	if err != nil {
		return storage.Card{}, err
	}
	return c, nil
}

func (s *Store) UpdateCard(ctx context.Context, id string, p storage.CardPatch) (storage.Card, error) {
	var c storage.Card
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		c, err = getRowOn[storage.Card](ctx, tx, "cards", storage.CollectionCards, id)
		if err != nil {
			return err
		}
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
		c.UpdatedAt = now()
		doc, err := encode(c)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `update cards set list_id=$1, doc=$2 where id=$3`, c.ListID, doc, id)
		return err
	})
	if err != nil {
		return storage.Card{}, err
	}
	return c, nil
}

func (s *Store) DeleteCard(ctx context.Context, id string) error {
	if err := s.deleteRow(ctx, "cards", storage.CollectionCards, id); err != nil {
		return err
	}
	// Owned comments and attachments go with the card, one commit each.
	if _, err := s.db.ExecContext(ctx, `delete from comments where card_id=$1`, id); err != nil {
		s.log.Error("cascade step failed", "collection", storage.CollectionComments, "card", id, "err", err)
		return err
	}
	if _, err := s.db.ExecContext(ctx, `delete from attachments where card_id=$1`, id); err != nil {
		s.log.Error("cascade step failed", "collection", storage.CollectionAttachments, "card", id, "err", err)
		return err
	}
	return nil
}

// Users

func (s *Store) ListUsers(ctx context.Context) ([]storage.User, error) {
	return listRows[storage.User](ctx, s, `select doc from users order by id`)
}

func (s *Store) GetUser(ctx context.Context, id string) (storage.User, error) {
	return getRow[storage.User](ctx, s, "users", storage.CollectionUsers, id)
}

func (s *Store) CreateUser(ctx context.Context, u storage.User) (storage.User, error) {
	if err := s.guard(); err != nil {
		return storage.User{}, err
	}
	u.ID = generateID()
	doc, err := encode(u)
	if err != nil {
		return storage.User{}, err
	}
	if _, err := s.db.ExecContext(ctx, `insert into users(id, doc) values($1,$2)`, u.ID, doc); err != nil {
		return storage.User{}, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, p storage.UserPatch) (storage.User, error) {
	var u storage.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		u, err = getRowOn[storage.User](ctx, tx, "users", storage.CollectionUsers, id)
		if err != nil {
			return err
		}
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
		doc, err := encode(u)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `update users set doc=$1 where id=$2`, doc, id)
		return err
	})
	if err != nil {
		return storage.User{}, err
	}
	return u, nil
}

// Comments

func (s *Store) ListComments(ctx context.Context, cardID string) ([]storage.Comment, error) {
	return listRows[storage.Comment](ctx, s, `select doc from comments where card_id=$1 order by created_at, id`, cardID)
}

func (s *Store) CreateComment(ctx context.Context, c storage.Comment) (storage.Comment, error) {
	if err := s.guard(); err != nil {
		return storage.Comment{}, err
	}
	c.ID = generateID()
	c.CreatedAt = now()
	c.UpdatedAt = nil
	doc, err := encode(c)
	if err != nil {
		return storage.Comment{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into comments(id, card_id, created_at, doc) values($1,$2,$3,$4)`,
		c.ID, c.CardID, c.CreatedAt.UnixNano(), doc)
	if err != nil {
		return storage.Comment{}, err
	}
	return c, nil
}

func (s *Store) UpdateComment(ctx context.Context, id string, p storage.CommentPatch) (storage.Comment, error) {
	var c storage.Comment
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		c, err = getRowOn[storage.Comment](ctx, tx, "comments", storage.CollectionComments, id)
		if err != nil {
			return err
		}
		if p.Content != nil {
			c.Content = *p.Content
		}
		if p.Attachments != nil {
			c.Attachments = *p.Attachments
		}
		t := now()
		c.UpdatedAt = &t
		doc, err := encode(c)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `update comments set doc=$1 where id=$2`, doc, id)
		return err
	})
	if err != nil {
		return storage.Comment{}, err
	}
	return c, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "comments", storage.CollectionComments, id)
}

// Attachments

func (s *Store) ListAttachments(ctx context.Context, cardID string) ([]storage.Attachment, error) {
	return listRows[storage.Attachment](ctx, s, `select doc from attachments where card_id=$1 order by id`, cardID)
}

func (s *Store) CreateAttachment(ctx context.Context, a storage.Attachment) (storage.Attachment, error) {
	if err := s.guard(); err != nil {
		return storage.Attachment{}, err
	}
	a.ID = generateID()
	a.UploadedAt = now()
	doc, err := encode(a)
	if err != nil {
		return storage.Attachment{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into attachments(id, card_id, doc) values($1,$2,$3)`,
		a.ID, a.CardID, doc)
	if err != nil {
		return storage.Attachment{}, err
	}
	return a, nil
}

func (s *Store) DeleteAttachment(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "attachments", storage.CollectionAttachments, id)
}

// Messages

func (s *Store) ListMessages(ctx context.Context, boardID string) ([]storage.Message, error) {
	return listRows[storage.Message](ctx, s, `select doc from messages where board_id=$1 order by created_at, id`, boardID)
}

func (s *Store) CreateMessage(ctx context.Context, m storage.Message) (storage.Message, error) {
	if err := s.guard(); err != nil {
		return storage.Message{}, err
	}
	m.ID = generateID()
	m.CreatedAt = now()
	doc, err := encode(m)
	if err != nil {
		return storage.Message{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into messages(id, board_id, created_at, doc) values($1,$2,$3,$4)`,
		m.ID, m.BoardID, m.CreatedAt.UnixNano(), doc)
	if err != nil {
		return storage.Message{}, err
	}
	return m, nil
}

// Activities

func (s *Store) ListActivities(ctx context.Context, boardID string) ([]storage.Activity, error) {
	return listRows[storage.Activity](ctx, s, `select doc from activities where board_id=$1 order by created_at, id`, boardID)
}

func (s *Store) CreateActivity(ctx context.Context, a storage.Activity) (storage.Activity, error) {
	if err := s.guard(); err != nil {
		return storage.Activity{}, err
	}
	a.ID = generateID()
	a.CreatedAt = now()
	doc, err := encode(a)
	if err != nil {
		return storage.Activity{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into activities(id, board_id, created_at, doc) values($1,$2,$3,$4)`,
		a.ID, a.BoardID, a.CreatedAt.UnixNano(), doc)
	if err != nil {
		return storage.Activity{}, err
	}
	return a, nil
}

// Notifications

func (s *Store) ListNotifications(ctx context.Context, userID string) ([]storage.Notification, error) {
	return listRows[storage.Notification](ctx, s,
		`select doc from notifications where user_id=$1 order by created_at desc, id`, userID)
}

func (s *Store) ListUnreadNotifications(ctx context.Context, userID string) ([]storage.Notification, error) {
	return listRows[storage.Notification](ctx, s,
		`select doc from notifications where user_id=$1 and read_flag=0 order by created_at desc, id`, userID)
}

func (s *Store) CreateNotification(ctx context.Context, n storage.Notification) (storage.Notification, error) {
	if err := s.guard(); err != nil {
		return storage.Notification{}, err
	}
	n.ID = generateID()
	n.CreatedAt = now()
	doc, err := encode(n)
	if err != nil {
		return storage.Notification{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into notifications(id, user_id, read_flag, created_at, doc) values($1,$2,$3,$4,$5)`,
		n.ID, n.UserID, boolFlag(n.Read), n.CreatedAt.UnixNano(), doc)
	if err != nil {
		return storage.Notification{}, err
	}
	return n, nil
}

func (s *Store) UpdateNotification(ctx context.Context, id string, p storage.NotificationPatch) (storage.Notification, error) {
	var n storage.Notification
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		n, err = getRowOn[storage.Notification](ctx, tx, "notifications", storage.CollectionNotifications, id)
		if err != nil {
			return err
		}
		if p.Read != nil {
			n.Read = *p.Read
		}
		if p.EmailSent != nil {
			n.EmailSent = *p.EmailSent
		}
		doc, err := encode(n)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`update notifications set read_flag=$1, doc=$2 where id=$3`,
			boolFlag(n.Read), doc, id)
		return err
	})
	if err != nil {
		return storage.Notification{}, err
	}
	return n, nil
}

func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "notifications", storage.CollectionNotifications, id)
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Settings

func (s *Store) GetSettings(ctx context.Context, userID string) (storage.UserSettings, error) {
	if err := s.guard(); err != nil {
		return storage.UserSettings{}, err
	}
	var doc string
	err := s.db.QueryRowContext(ctx, `select doc from settings where user_id=$1`, userID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.UserSettings{}, storage.NotFoundf(storage.CollectionSettings, userID)
	}
	if err != nil {
		return storage.UserSettings{}, err
	}
	return decode[storage.UserSettings](doc)
}

func (s *Store) SaveSettings(ctx context.Context, in storage.UserSettings) (storage.UserSettings, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var existingDoc string
		err := tx.QueryRowContext(ctx, `select doc from settings where user_id=$1`, in.UserID).Scan(&existingDoc)
		switch {
		case err == nil:
			existing, err := decode[storage.UserSettings](existingDoc)
			if err != nil {
				return err
			}
			in.ID = existing.ID
			doc, err := encode(in)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `update settings set doc=$1 where user_id=$2`, doc, in.UserID)
			return err
		case errors.Is(err, sql.ErrNoRows):
			in.ID = generateID()
			doc, err := encode(in)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `insert into settings(id, user_id, doc) values($1,$2,$3)`, in.ID, in.UserID, doc)
			return err
		default:
			return err
		}
	})
	if err != nil {
		return storage.UserSettings{}, err
	}
	return in, nil
}

// Lifecycle

func (s *Store) Initialize(ctx context.Context) error {
	if s.ready {
		return nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return storage.Unavailable("database ping failed", err)
	}
	if err := s.migrate(ctx); err != nil {
		return storage.Unavailable("schema migration failed", err)
	}
	s.ready = true
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}
	for _, table := range dataTables {
		if _, err := s.db.ExecContext(ctx, `delete from `+table); err != nil {
			return fmt.Errorf("sqlstore: clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
