package sqlstore

import (
	"context"
	"fmt"
)

// One table per collection: id primary key, the foreign-key and ordering
// columns each relation lookup needs, and the JSON document in doc. The
// statements are additive and idempotent, so re-running the pass on a
// version bump adds new tables and indexes without touching existing rows.
// Everything here runs unchanged on SQLite and Postgres.
var schemaStatements = []string{
	`create table if not exists boards(
		id text primary key,
		created_at bigint not null,
		doc text not null
	)`,
	`create table if not exists archived_boards(
		id text primary key,
		archived_at bigint not null,
		doc text not null
	)`,
	`create table if not exists lists(
		id text primary key,
		board_id text not null,
		doc text not null
	)`,
	`create index if not exists lists_board_idx on lists(board_id)`,
	`create table if not exists cards(
		id text primary key,
		list_id text not null,
		created_at bigint not null,
		doc text not null
	)`,
	`create index if not exists cards_list_idx on cards(list_id)`,
	`create table if not exists users(
		id text primary key,
		doc text not null
	)`,
	`create table if not exists comments(
		id text primary key,
		card_id text not null,
		created_at bigint not null,
		doc text not null
	)`,
	`create index if not exists comments_card_idx on comments(card_id)`,
	`create table if not exists attachments(
		id text primary key,
		card_id text not null,
		doc text not null
	)`,
	`create index if not exists attachments_card_idx on attachments(card_id)`,
	`create table if not exists messages(
		id text primary key,
		board_id text not null,
		created_at bigint not null,
		doc text not null
	)`,
	`create index if not exists messages_board_idx on messages(board_id)`,
	`create table if not exists activities(
		id text primary key,
		board_id text not null,
		created_at bigint not null,
		doc text not null
	)`,
	`create index if not exists activities_board_idx on activities(board_id)`,
	`create table if not exists notifications(
		id text primary key,
		user_id text not null,
		read_flag bigint not null default 0,
		created_at bigint not null,
		doc text not null
	)`,
	`create index if not exists notifications_user_idx on notifications(user_id)`,
	`create index if not exists notifications_read_idx on notifications(read_flag)`,
	`create table if not exists settings(
		id text primary key,
		user_id text not null,
		doc text not null
	)`,
	`create unique index if not exists settings_user_idx on settings(user_id)`,
	`create table if not exists schema_version(
		version bigint not null
	)`,
}

// dataTables lists every row-holding table, in the order Clear empties them.
var dataTables = []string{
	"boards", "archived_boards", "lists", "cards", "users",
	"comments", "attachments", "messages", "activities",
	"notifications", "settings",
}

// migrate runs the schema pass when the recorded version is below the
// configured one. Version zero means a fresh database.
func (s *Store) migrate(ctx context.Context) error {
	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if current >= s.cfg.Version {
		return nil
	}
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore: schema: %w", err)
		}
	}
	if _, err := s.db.ExecContext(ctx, `delete from schema_version`); err != nil {
		return fmt.Errorf("sqlstore: reset version: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `insert into schema_version(version) values($1)`, s.cfg.Version); err != nil {
		return fmt.Errorf("sqlstore: record version: %w", err)
	}
	s.log.Info("schema migrated", "db", s.cfg.Name, "from", current, "to", s.cfg.Version)
	return nil
}

func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, `select version from schema_version limit 1`).Scan(&version)
	if err != nil {
		// No row, or the version table itself does not exist yet: treat both
		// as a fresh database. Connectivity problems surface in the ping that
		// runs before this.
		return 0, nil
	}
	return version, nil
}
