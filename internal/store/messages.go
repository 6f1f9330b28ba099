package store

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"pt.arrendado.flatfinder/internal/model"
)

type conversationRow struct {
	model.Message
	SenderFirstName string `db:"SenderFirstName"`
	SenderLastName  string `db:"SenderLastName"`
}

// AppendMessage is the only write path for message content. It verifies the
// flat exists, then persists a new unread message with a server-assigned
// timestamp and sequence number.
func (s *Store) AppendMessage(flatID model.FlatID, senderID model.UserID, content string) (*model.Message, error) {
	if _, err := s.FlatByID(flatID); err != nil {
		return nil, err
	}

	message := &model.Message{
		ID:        model.MessageID(model.CreateID()),
		FlatID:    flatID,
		SenderID:  senderID,
		Content:   content,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.db.NamedExec(`insert into message
		(ID, FlatID, SenderID, Content, IsRead, CreatedAt)
		values(:ID, :FlatID, :SenderID, :Content, :IsRead, :CreatedAt)`, message)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting message sequence: %w", err)
	}
	message.Seq = seq

	return message, nil
}

// MessagesForFlat returns a flat's messages joined with their sender
// summaries, ordered by CreatedAt with the insertion sequence breaking ties.
func (s *Store) MessagesForFlat(flatID model.FlatID, query model.MessageQuery) ([]model.ConversationMessage, error) {
	direction := "asc"
	if query.Order == model.OrderDescending {
		direction = "desc"
	}

	stmt := fmt.Sprintf(`select
			m.Seq, m.ID, m.FlatID, m.SenderID, m.Content, m.IsRead, m.CreatedAt,
			u.FirstName as SenderFirstName, u.LastName as SenderLastName
		from message m
		join user u on u.ID = m.SenderID
		where m.FlatID = ?
		order by m.CreatedAt %s, m.Seq %s`, direction, direction)

	args := []interface{}{flatID}
	if query.Limit > 0 {
		stmt += ` limit ? offset ?`
		args = append(args, query.Limit, query.Offset)
	}

	rows := []conversationRow{}
	if err := s.db.Select(&rows, stmt, args...); err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}

	messages := make([]model.ConversationMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, model.ConversationMessage{
			Message: row.Message,
			Sender: model.UserSummary{
				ID:        row.SenderID,
				FirstName: row.SenderFirstName,
				LastName:  row.SenderLastName,
			},
		})
	}
	return messages, nil
}

// MessagesBySender returns every message a user has sent, newest first, each
// with the flat it belongs to.
func (s *Store) MessagesBySender(senderID model.UserID) ([]model.SentMessage, error) {
	messages := []model.Message{}
	err := s.db.Select(&messages, `select * from message
		where SenderID = ?
		order by CreatedAt desc, Seq desc`, senderID)
	if err != nil {
		return nil, fmt.Errorf("querying sent messages: %w", err)
	}

	if len(messages) == 0 {
		return []model.SentMessage{}, nil
	}

	flatIDs := make([]model.FlatID, 0, len(messages))
	seen := map[model.FlatID]bool{}
	for _, m := range messages {
		if !seen[m.FlatID] {
			seen[m.FlatID] = true
			flatIDs = append(flatIDs, m.FlatID)
		}
	}

	stmt, args, err := sqlx.In(`select * from flat where ID in (?)`, flatIDs)
	if err != nil {
		return nil, fmt.Errorf("building flat query: %w", err)
	}

	flats := []model.Flat{}
	if err := s.db.Select(&flats, s.db.Rebind(stmt), args...); err != nil {
		return nil, fmt.Errorf("querying flats for sent messages: %w", err)
	}

	flatsByID := map[model.FlatID]model.Flat{}
	for _, f := range flats {
		flatsByID[f.ID] = f
	}

	sent := make([]model.SentMessage, 0, len(messages))
	for _, m := range messages {
		sent = append(sent, model.SentMessage{Message: m, Flat: flatsByID[m.FlatID]})
	}
	return sent, nil
}

// MarkAllRead flips every message of a flat to read in a single statement and
// reports how many rows it touched. Re-running it is a no-op.
func (s *Store) MarkAllRead(flatID model.FlatID) (int64, error) {
	res, err := s.db.Exec(`update message set IsRead = 1 where FlatID = ?`, flatID)
	if err != nil {
		return 0, fmt.Errorf("marking messages read: %w", err)
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return updated, nil
}

// HasMessagesFrom reports whether a user has ever sent a message for a flat,
// i.e. whether they are a participant in its conversation.
func (s *Store) HasMessagesFrom(flatID model.FlatID, senderID model.UserID) (bool, error) {
	var exists bool
	err := s.db.Get(&exists, `select exists(
		select 1 from message where FlatID = ? and SenderID = ?)`, flatID, senderID)
	if err != nil {
		return false, fmt.Errorf("checking participation: %w", err)
	}
	return exists, nil
}
