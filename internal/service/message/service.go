package message

import (
	"strings"

	"pt.arrendado.flatfinder/internal/model"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type Store interface {
	FlatByID(id model.FlatID) (*model.Flat, error)
	AppendMessage(flatID model.FlatID, senderID model.UserID, content string) (*model.Message, error)
	MessagesForFlat(flatID model.FlatID, query model.MessageQuery) ([]model.ConversationMessage, error)
	MessagesBySender(senderID model.UserID) ([]model.SentMessage, error)
	MarkAllRead(flatID model.FlatID) (int64, error)
	HasMessagesFrom(flatID model.FlatID, senderID model.UserID) (bool, error)
}

// Publisher pushes a committed message to connected real-time subscribers.
// It must not block and must not fail the send.
type Publisher interface {
	Publish(event model.MessageEvent)
}

type service struct {
	store     Store
	publisher Publisher
}

func New(store Store, publisher Publisher) *service {
	return &service{store, publisher}
}

// Send appends a message to a flat's conversation and publishes it to
// real-time subscribers. The publish happens only after the write committed;
// a failed write publishes nothing.
func (s *service) Send(flatID model.FlatID, senderID model.UserID, content string) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.ErrorEmptyContent
	}

	message, err := s.store.AppendMessage(flatID, senderID, content)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(model.MessageEvent{
		FlatID:   message.FlatID,
		Content:  message.Content,
		SenderID: message.SenderID,
	})

	return message, nil
}

// Page returns one page of a flat's messages, newest first. Pages are
// 1-based; a page past the end is an empty slice, not an error. Zero values
// fall back to the defaults.
func (s *service) Page(flatID model.FlatID, page, pageSize int) ([]model.ConversationMessage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	return s.store.MessagesForFlat(flatID, model.MessageQuery{
		Order:  model.OrderDescending,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
}

// Conversation returns a flat's full conversation, oldest first, to the
// flat's owner or to anyone who has already sent a message for it. Everyone
// else is forbidden. Participation is re-checked against the current message
// set on every call.
func (s *service) Conversation(callerID model.UserID, flatID model.FlatID) ([]model.ConversationMessage, error) {
	flat, err := s.store.FlatByID(flatID)
	if err != nil {
		return nil, err
	}

	if flat.OwnerID != callerID {
		participant, err := s.store.HasMessagesFrom(flatID, callerID)
		if err != nil {
			return nil, err
		}
		if !participant {
			return nil, model.ErrorForbidden
		}
	}

	return s.store.MessagesForFlat(flatID, model.MessageQuery{Order: model.OrderAscending})
}

func (s *service) MarkAllRead(flatID model.FlatID) (int64, error) {
	return s.store.MarkAllRead(flatID)
}

func (s *service) SentBy(senderID model.UserID) ([]model.SentMessage, error) {
	return s.store.MessagesBySender(senderID)
}
