// Package activity records board history through the storage contract.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trellcord/internal/storage"
)

// Tracker writes Activity rows. It is constructed with the backend it
// should write to; nothing here is process-global.
type Tracker struct {
	store storage.Service
	log   *slog.Logger
}

func NewTracker(store storage.Service, log *slog.Logger) *Tracker {
	return &Tracker{store: store, log: log}
}

func (t *Tracker) record(ctx context.Context, a storage.Activity) (storage.Activity, error) {
	out, err := t.store.CreateActivity(ctx, a)
	if err != nil {
		t.log.Error("activity not recorded", "type", string(a.Type), "err", err)
		return storage.Activity{}, err
	}
	t.log.Debug("activity logged", "type", string(a.Type), "description", a.Description)
	return out, nil
}

func (t *Tracker) BoardCreated(ctx context.Context, board storage.Board, user storage.User) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityBoardCreated,
		Description: fmt.Sprintf("%s created the board %q", user.Name, board.Title),
		User:        user,
		BoardID:     board.ID,
		Metadata:    map[string]any{"boardTitle": board.Title},
	})
}

func (t *Tracker) BoardUpdated(ctx context.Context, board storage.Board, user storage.User, changes []string) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityBoardUpdated,
		Description: fmt.Sprintf("%s updated the board %q", user.Name, board.Title),
		User:        user,
		BoardID:     board.ID,
		Metadata:    map[string]any{"boardTitle": board.Title, "changes": changes},
	})
}

func (t *Tracker) ListCreated(ctx context.Context, list storage.List, board storage.Board, user storage.User) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityListCreated,
		Description: fmt.Sprintf("%s created the list %q", user.Name, list.Title),
		User:        user,
		BoardID:     board.ID,
		ListID:      list.ID,
		Metadata:    map[string]any{"listTitle": list.Title, "boardTitle": board.Title},
	})
}

func (t *Tracker) ListMoved(ctx context.Context, list storage.List, board storage.Board, user storage.User, from, to int) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityListMoved,
		Description: fmt.Sprintf("%s moved the list %q from position %d to %d", user.Name, list.Title, from, to),
		User:        user,
		BoardID:     board.ID,
		ListID:      list.ID,
		Metadata:    map[string]any{"listTitle": list.Title, "fromPosition": from, "toPosition": to},
	})
}

func (t *Tracker) ListDeleted(ctx context.Context, list storage.List, board storage.Board, user storage.User) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityListDeleted,
		Description: fmt.Sprintf("%s deleted the list %q", user.Name, list.Title),
		User:        user,
		BoardID:     board.ID,
		ListID:      list.ID,
		Metadata:    map[string]any{"listTitle": list.Title},
	})
}

func (t *Tracker) CardCreated(ctx context.Context, card storage.Card, board storage.Board, user storage.User) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityCardCreated,
		Description: fmt.Sprintf("%s created the card %q", user.Name, card.Title),
		User:        user,
		BoardID:     board.ID,
		CardID:      card.ID,
		ListID:      card.ListID,
		Metadata:    map[string]any{"cardTitle": card.Title},
	})
}

func (t *Tracker) CardMoved(ctx context.Context, card storage.Card, board storage.Board, user storage.User, fromList, toList string) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityCardMoved,
		Description: fmt.Sprintf("%s moved the card %q from %q to %q", user.Name, card.Title, fromList, toList),
		User:        user,
		BoardID:     board.ID,
		CardID:      card.ID,
		ListID:      card.ListID,
		Metadata:    map[string]any{"cardTitle": card.Title, "fromList": fromList, "toList": toList},
	})
}

func (t *Tracker) CardDeleted(ctx context.Context, card storage.Card, board storage.Board, user storage.User) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityCardDeleted,
		Description: fmt.Sprintf("%s deleted the card %q", user.Name, card.Title),
		User:        user,
		BoardID:     board.ID,
		CardID:      card.ID,
		Metadata:    map[string]any{"cardTitle": card.Title},
	})
}

func (t *Tracker) CommentAdded(ctx context.Context, card storage.Card, board storage.Board, user storage.User) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityCommentAdded,
		Description: fmt.Sprintf("%s commented on the card %q", user.Name, card.Title),
		User:        user,
		BoardID:     board.ID,
		CardID:      card.ID,
		Metadata:    map[string]any{"cardTitle": card.Title},
	})
}

func (t *Tracker) MemberAdded(ctx context.Context, board storage.Board, actor, member storage.User) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityMemberJoined,
		Description: fmt.Sprintf("%s added %s to the board %q", actor.Name, member.Name, board.Title),
		User:        actor,
		BoardID:     board.ID,
		Metadata:    map[string]any{"memberName": member.Name, "boardTitle": board.Title},
	})
}

func (t *Tracker) DueDateChanged(ctx context.Context, card storage.Card, board storage.Board, user storage.User, due time.Time) (storage.Activity, error) {
	return t.record(ctx, storage.Activity{
		Type:        storage.ActivityDueDateChanged,
		Description: fmt.Sprintf("%s set the due date of %q to %s", user.Name, card.Title, due.Format("2006-01-02")),
		User:        user,
		BoardID:     board.ID,
		CardID:      card.ID,
		Metadata:    map[string]any{"cardTitle": card.Title, "dueDate": due.Format(time.RFC3339)},
	})
}
