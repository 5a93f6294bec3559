package kvstore

import (
	"context"
	"time"

	"trellcord/internal/storage"
)

// seed writes the first-run sample data: three users, two boards, and one
// archived board. Fixed ids and dates keep the result stable across runs.
func (s *Store) seed(ctx context.Context) error {
	users := []storage.User{
		{ID: "1", Name: "Alan Ugarte", Email: "alan@example.com", IsOnline: true},
		{ID: "2", Name: "Sarah Wilson", Email: "sarah@example.com"},
		{ID: "3", Name: "Mike Johnson", Email: "mike@example.com", IsOnline: true},
	}
	if err := writeAll(s, storage.CollectionUsers, users); err != nil {
		return err
	}

	boards := []storage.Board{
		{
			ID:          "1",
			Title:       "Marketing Campaign",
			Description: "Plan and execute marketing campaigns",
			IsStarred:   true,
			Members:     []storage.User{users[0], users[1], users[2]},
			Lists:       []storage.List{},
			CreatedAt:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Title:       "Dev Tasks",
			Description: "Development tasks and features",
			Members:     []storage.User{users[0], users[2]},
			Lists:       []storage.List{},
			CreatedAt:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC),
		},
	}
	if err := writeAll(s, storage.CollectionBoards, boards); err != nil {
		return err
	}

	original := storage.Board{
		ID:          "archived-1",
		Title:       "Old Project Board",
		Description: "A completed project that was archived",
		Members:     []storage.User{users[0], users[1]},
		Lists:       []storage.List{},
		CreatedAt:   time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	archived := []storage.ArchivedBoard{
		{
			ID:            "archived-1",
			Title:         original.Title,
			Description:   original.Description,
			Members:       original.Members,
			ArchivedAt:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			OriginalBoard: original,
		},
	}
	return writeAll(s, storage.CollectionArchivedBoards, archived)
}
