// Package notify composes notifications and their email rendering. There is
// no real mail transport: a "sent" email is rendered and logged, and the
// notification row records whether that happened.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"trellcord/internal/storage"
)

type Email struct {
	Subject string
	Body    string
}

// Mailer writes Notification rows and renders their emails, honoring the
// recipient's settings. Constructed per session with the backend to use.
type Mailer struct {
	store storage.Service
	log   *slog.Logger
}

func NewMailer(store storage.Service, log *slog.Logger) *Mailer {
	return &Mailer{store: store, log: log}
}

// Render builds the per-type email template.
func Render(n storage.Notification, data map[string]string) Email {
	title := func(key, fallback string) string {
		if v, ok := data[key]; ok && v != "" {
			return v
		}
		return fallback
	}
	switch n.Type {
	case storage.NotifyBoardUpdate:
		return Email{
			Subject: fmt.Sprintf("Board updated: %s", title("boardTitle", "Untitled")),
			Body:    fmt.Sprintf("%s\n%s\nCheck the changes on your board.", n.Title, n.Message),
		}
	case storage.NotifyCardAssigned:
		return Email{
			Subject: fmt.Sprintf("You were assigned a card: %s", title("cardTitle", "Untitled")),
			Body:    fmt.Sprintf("%s\n%s\nCard: %s", n.Title, n.Message, title("cardTitle", "Untitled")),
		}
	case storage.NotifyCommentMention:
		return Email{
			Subject: "You were mentioned in a comment",
			Body:    fmt.Sprintf("%s\n%s\nSomeone mentioned you in a comment.", n.Title, n.Message),
		}
	case storage.NotifyDueDateReminder:
		return Email{
			Subject: "Reminder: due date approaching",
			Body:    fmt.Sprintf("%s\n%s\nA card is close to its due date.", n.Title, n.Message),
		}
	case storage.NotifyCardMoved:
		return Email{
			Subject: "A card was moved",
			Body:    fmt.Sprintf("%s\n%s", n.Title, n.Message),
		}
	case storage.NotifyMemberAdded:
		return Email{
			Subject: "You were added to a board",
			Body:    fmt.Sprintf("%s\n%s\nYou are now a member of a new board.", n.Title, n.Message),
		}
	}
	return Email{Subject: n.Title, Body: fmt.Sprintf("%s\n%s", n.Title, n.Message)}
}

// DefaultSettings is what a user without a settings row gets: everything on,
// instant delivery.
func DefaultSettings(userID string) storage.UserSettings {
	return storage.UserSettings{
		UserID: userID,
		EmailNotifications: storage.EmailSettings{
			Enabled:           true,
			OnBoardUpdate:     true,
			OnCardAssigned:    true,
			OnCommentMention:  true,
			OnDueDateReminder: true,
			Frequency:         storage.FrequencyInstant,
		},
		PushNotifications: true,
		BoardUpdates:      true,
		Mentions:          true,
	}
}

func wantsEmail(s storage.UserSettings, t storage.NotificationType) bool {
	e := s.EmailNotifications
	if !e.Enabled || e.Frequency != storage.FrequencyInstant {
		// Daily and weekly digests only record the row; nothing goes out now.
		return false
	}
	switch t {
	case storage.NotifyCardAssigned:
		return e.OnCardAssigned
	case storage.NotifyCommentMention:
		return e.OnCommentMention
	case storage.NotifyDueDateReminder:
		return e.OnDueDateReminder
	default:
		return e.OnBoardUpdate
	}
}

// Notify persists the notification for recipient and emails it when the
// recipient's settings allow. EmailSent on the stored row reflects the
// outcome.
func (m *Mailer) Notify(ctx context.Context, recipient storage.User, n storage.Notification, data map[string]string) (storage.Notification, error) {
	settings, err := m.store.GetSettings(ctx, recipient.ID)
	if errors.Is(err, storage.ErrNotFound) {
		settings = DefaultSettings(recipient.ID)
	} else if err != nil {
		return storage.Notification{}, err
	}
	n.UserID = recipient.ID
	n.Read = false
	n.EmailSent = false
	if wantsEmail(settings, n.Type) {
		email := Render(n, data)
		m.log.Info("email sent", "to", recipient.Email, "subject", email.Subject)
		n.EmailSent = true
	}
	return m.store.CreateNotification(ctx, n)
}

// NotifyCardChange fans a card change out to the card's members, skipping
// the acting user.
func (m *Mailer) NotifyCardChange(ctx context.Context, members []storage.User, card storage.Card, actor storage.User, change string) error {
	typ := storage.NotifyBoardUpdate
	if change == "moved" {
		typ = storage.NotifyCardMoved
	}
	for _, member := range members {
		if member.ID == actor.ID {
			continue
		}
		_, err := m.Notify(ctx, member, storage.Notification{
			Type:    typ,
			Title:   fmt.Sprintf("Card changed: %s", card.Title),
			Message: fmt.Sprintf("%s %s the card %q", actor.Name, change, card.Title),
			CardID:  card.ID,
		}, map[string]string{"cardTitle": card.Title})
		if err != nil {
			return err
		}
	}
	return nil
}

// NotifyNewComment notifies mentioned users first, then the remaining card
// members, never the author.
func (m *Mailer) NotifyNewComment(ctx context.Context, members []storage.User, card storage.Card, author storage.User, mentions []storage.User) error {
	mentioned := map[string]bool{}
	for _, u := range mentions {
		if u.ID == author.ID {
			continue
		}
		mentioned[u.ID] = true
		_, err := m.Notify(ctx, u, storage.Notification{
			Type:    storage.NotifyCommentMention,
			Title:   "You were mentioned in a comment",
			Message: fmt.Sprintf("%s mentioned you on the card %q", author.Name, card.Title),
			CardID:  card.ID,
		}, map[string]string{"cardTitle": card.Title})
		if err != nil {
			return err
		}
	}
	for _, member := range members {
		if member.ID == author.ID || mentioned[member.ID] {
			continue
		}
		_, err := m.Notify(ctx, member, storage.Notification{
			Type:    storage.NotifyBoardUpdate,
			Title:   "New comment",
			Message: fmt.Sprintf("%s commented on the card %q", author.Name, card.Title),
			CardID:  card.ID,
		}, map[string]string{"cardTitle": card.Title})
		if err != nil {
			return err
		}
	}
	return nil
}
