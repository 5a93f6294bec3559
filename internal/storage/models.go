package storage

import "time"

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	IsOnline bool   `json:"isOnline,omitempty"`
}

type Board struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsStarred   bool      `json:"isStarred"`
	Members     []User    `json:"members"`
	Lists       []List    `json:"lists"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type List struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	BoardID  string `json:"boardId"`
	Cards    []Card `json:"cards"`
	Position int    `json:"position"`
}

type Card struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	ListID      string       `json:"listId"`
	Position    int          `json:"position"`
	Members     []User       `json:"members"`
	Labels      []Label      `json:"labels"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Attachments []Attachment `json:"attachments"`
	Comments    []Comment    `json:"comments"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ArchivedBoard is a snapshot wrapper, not a flagged Board: the live row is
// deleted when archiving and OriginalBoard keeps the full copy for restore.
type ArchivedBoard struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Members       []User    `json:"members"`
	ArchivedAt    time.Time `json:"archivedAt"`
	OriginalBoard Board     `json:"originalBoard"`
}

type Comment struct {
	ID          string       `json:"id"`
	Content     string       `json:"content"`
	Author      User         `json:"author"`
	CardID      string       `json:"cardId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Attachment struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimeType"`
	UploadedBy User      `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
	CardID     string    `json:"cardId,omitempty"`
	CommentID  string    `json:"commentId,omitempty"`
}

type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    User      `json:"author"`
	BoardID   string    `json:"boardId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ActivityType string

const (
	ActivityCardMoved       ActivityType = "card_moved"
	ActivityCardCreated     ActivityType = "card_created"
	ActivityCardDeleted     ActivityType = "card_deleted"
	ActivityCardUpdated     ActivityType = "card_updated"
	ActivityCommentAdded    ActivityType = "comment_added"
	ActivityCommentUpdated  ActivityType = "comment_updated"
	ActivityCommentDeleted  ActivityType = "comment_deleted"
	ActivityMemberJoined    ActivityType = "member_joined"
	ActivityMemberRemoved   ActivityType = "member_removed"
	ActivityDueDateChanged  ActivityType = "due_date_changed"
	ActivityDueDateAdded    ActivityType = "due_date_added"
	ActivityDueDateRemoved  ActivityType = "due_date_removed"
	ActivityAttachmentAdded ActivityType = "attachment_added"
	ActivityLabelAdded      ActivityType = "label_added"
	ActivityListCreated     ActivityType = "list_created"
	ActivityListMoved       ActivityType = "list_moved"
	ActivityListDeleted     ActivityType = "list_deleted"
	ActivityBoardCreated    ActivityType = "board_created"
	ActivityBoardUpdated    ActivityType = "board_updated"
)

type Activity struct {
	ID          string         `json:"id"`
	Type        ActivityType   `json:"type"`
	Description string         `json:"description"`
	User        User           `json:"user"`
	CreatedAt   time.Time      `json:"createdAt"`
	BoardID     string         `json:"boardId,omitempty"`
	CardID      string         `json:"cardId,omitempty"`
	ListID      string         `json:"listId,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type NotificationType string

const (
	NotifyBoardUpdate     NotificationType = "board_update"
	NotifyCardAssigned    NotificationType = "card_assigned"
	NotifyCommentMention  NotificationType = "comment_mention"
	NotifyDueDateReminder NotificationType = "due_date_reminder"
	NotifyCardMoved       NotificationType = "card_moved"
	NotifyMemberAdded     NotificationType = "member_added"
)

type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	UserID    string           `json:"userId"`
	BoardID   string           `json:"boardId,omitempty"`
	CardID    string           `json:"cardId,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
	EmailSent bool             `json:"emailSent"`
}

type EmailFrequency string

const (
	FrequencyInstant EmailFrequency = "instant"
	FrequencyDaily   EmailFrequency = "daily"
	FrequencyWeekly  EmailFrequency = "weekly"
)

type EmailSettings struct {
	Enabled           bool           `json:"enabled"`
	OnBoardUpdate     bool           `json:"onBoardUpdate"`
	OnCardAssigned    bool           `json:"onCardAssigned"`
	OnCommentMention  bool           `json:"onCommentMention"`
	OnDueDateReminder bool           `json:"onDueDateReminder"`
	Frequency         EmailFrequency `json:"frequency"`
}

// UserSettings has one row per user; UserID doubles as the unique key.
type UserSettings struct {
	ID                 string        `json:"id"`
	UserID             string        `json:"userId"`
	EmailNotifications EmailSettings `json:"emailNotifications"`
	PushNotifications  bool          `json:"pushNotifications"`
	BoardUpdates       bool          `json:"boardUpdates"`
	Mentions           bool          `json:"mentions"`
}
