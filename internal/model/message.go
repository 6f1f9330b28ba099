package model

import "time"

type MessageID string

// Message is the sole persisted entity of the messaging core. Content is
// immutable after creation; only IsRead ever changes, and only from false to
// true. Seq is the insertion sequence, used to break CreatedAt ties so the
// timeline of a flat is a strict order.
type Message struct {
	ID        MessageID `db:"ID" json:"id"`
	Seq       int64     `db:"Seq" json:"-"`
	FlatID    FlatID    `db:"FlatID" json:"flatId"`
	SenderID  UserID    `db:"SenderID" json:"senderId"`
	Content   string    `db:"Content" json:"content"`
	IsRead    bool      `db:"IsRead" json:"isRead"`
	CreatedAt time.Time `db:"CreatedAt" json:"createdAt"`
}

// ConversationMessage is a message joined with its sender's summary, the shape
// returned by the paged feed and the conversation view.
type ConversationMessage struct {
	Message
	Sender UserSummary `json:"sender"`
}

// SentMessage is a message joined with the flat it belongs to, the shape
// returned by the caller's sent-messages view.
type SentMessage struct {
	Message
	Flat Flat `json:"flat"`
}

type Order int

const (
	OrderAscending Order = iota
	OrderDescending
)

// MessageQuery is the window passed to the store's message query. A Limit of
// zero means no window: all messages are returned.
type MessageQuery struct {
	Order  Order
	Offset int
	Limit  int
}

// MessageEvent is the payload broadcast to real-time subscribers under the
// new-message topic.
type MessageEvent struct {
	FlatID   FlatID `json:"flatId"`
	Content  string `json:"content"`
	SenderID UserID `json:"senderId"`
}
