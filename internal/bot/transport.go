package bot

import "context"

// Callback action tokens attached to outgoing messages.
const (
	ActionConfirmBook    = "confirm_book_details"
	ActionNextBook       = "get_next_book_details"
	ActionChangeGenre    = "change_genre"
	ActionChangeLanguage = "change_language"
	ActionLooksGood      = "no_change_req"
	ActionReadingDone    = "reading_done"
)

// Action is a button offered with an outgoing message.
type Action struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Outgoing is a message pushed to the user.
type Outgoing struct {
	Text     string   `json:"text"`
	PhotoURL string   `json:"photo_url,omitempty"` // cover image, optional
	Actions  []Action `json:"actions,omitempty"`
}

// Incoming is a user message or button press. Exactly one of Text or
// CallbackData is set.
type Incoming struct {
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name,omitempty"`
	Text         string `json:"text,omitempty"`
	CallbackData string `json:"callback_data,omitempty"`
}

// IsCallback reports whether the event is a button press.
func (in *Incoming) IsCallback() bool {
	return in.CallbackData != ""
}

// Sender pushes messages to users. Implementations wrap a messaging
// platform; tests use MemorySender.
type Sender interface {
	Send(ctx context.Context, userID string, msg Outgoing) error
}

// MemorySender records outgoing messages per user. Safe for the
// single-goroutine-per-user dispatch the router guarantees.
type MemorySender struct {
	Messages map[string][]Outgoing
}

// NewMemorySender creates an empty in-memory sender.
func NewMemorySender() *MemorySender {
	return &MemorySender{Messages: make(map[string][]Outgoing)}
}

// Send appends the message to the user's log.
func (m *MemorySender) Send(ctx context.Context, userID string, msg Outgoing) error {
	m.Messages[userID] = append(m.Messages[userID], msg)
	return nil
}

// Sent returns all messages pushed to a user, in order.
func (m *MemorySender) Sent(userID string) []Outgoing {
	return m.Messages[userID]
}

// Last returns the most recent message pushed to a user.
func (m *MemorySender) Last(userID string) *Outgoing {
	msgs := m.Messages[userID]
	if len(msgs) == 0 {
		return nil
	}
	return &msgs[len(msgs)-1]
}
