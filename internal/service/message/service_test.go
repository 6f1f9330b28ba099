package message

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pt.arrendado.flatfinder/internal/boot"
	"pt.arrendado.flatfinder/internal/model"
	"pt.arrendado.flatfinder/internal/store"
)

type capturePublisher struct {
	events []model.MessageEvent
}

func (p *capturePublisher) Publish(event model.MessageEvent) {
	p.events = append(p.events, event)
}

type fixture struct {
	store     *store.Store
	publisher *capturePublisher
	service   *service
	owner     *model.User
	tenant    *model.User
	stranger  *model.User
	flat      *model.Flat
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	config := &boot.Config{Env: "test", DataDir: t.TempDir()}
	db, err := store.Open(config)
	if err != nil {
		t.Fatalf("opening test store: %+v", err)
	}
	t.Cleanup(func() { db.Close() })

	f := &fixture{store: db, publisher: &capturePublisher{}}
	f.service = New(db, f.publisher)
	f.owner = f.seedUser(t, "Olivia", "Owner")
	f.tenant = f.seedUser(t, "Tiago", "Tenant")
	f.stranger = f.seedUser(t, "Sofia", "Stranger")
	f.flat = f.seedFlat(t, f.owner)
	return f
}

func (f *fixture) seedUser(t *testing.T, firstName, lastName string) *model.User {
	t.Helper()

	user := &model.User{
		ID:        model.UserID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		Email:     firstName + "." + lastName + "@testdomain.com",
		Password:  "hashed",
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := f.store.CreateUser(user); err != nil {
		t.Fatalf("seeding user: %+v", err)
	}
	return user
}

func (f *fixture) seedFlat(t *testing.T, owner *model.User) *model.Flat {
	t.Helper()

	flat := &model.Flat{
		ID:        model.FlatID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		OwnerID:   owner.ID,
		City:      "Porto",
	}
	if err := f.store.CreateFlat(flat); err != nil {
		t.Fatalf("seeding flat: %+v", err)
	}
	return flat
}

func TestSend(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)

	t.Run("append publishes after commit", func(t *testing.T) {
		message, err := f.service.Send(f.flat.ID, f.tenant.ID, "Is this available?")
		assert.Nil(err)
		assert.False(message.IsRead)

		assert.Len(f.publisher.events, 1)
		assert.Equal(model.MessageEvent{
			FlatID:   f.flat.ID,
			Content:  "Is this available?",
			SenderID: f.tenant.ID,
		}, f.publisher.events[0])
	})

	t.Run("empty content is rejected before the store", func(t *testing.T) {
		before := len(f.publisher.events)

		_, err := f.service.Send(f.flat.ID, f.tenant.ID, "   ")
		assert.ErrorIs(err, model.ErrorEmptyContent)
		assert.Len(f.publisher.events, before)

		messages, err := f.service.Page(f.flat.ID, 0, 0)
		assert.Nil(err)
		assert.Len(messages, 1)
	})

	t.Run("unknown flat publishes nothing", func(t *testing.T) {
		before := len(f.publisher.events)

		_, err := f.service.Send("no-such-flat", f.tenant.ID, "hello?")
		assert.ErrorIs(err, model.ErrorFlatNotFound)
		assert.Len(f.publisher.events, before)
	})
}

func TestPage(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)

	const total = 23
	for i := 0; i < total; i++ {
		_, err := f.service.Send(f.flat.ID, f.tenant.ID, fmt.Sprintf("message %02d", i))
		assert.Nil(err)
	}

	t.Run("defaults", func(t *testing.T) {
		page, err := f.service.Page(f.flat.ID, 0, 0)
		assert.Nil(err)
		assert.Len(page, DefaultPageSize)
		assert.Equal("message 22", page[0].Content)
	})

	t.Run("pages reconstruct the sequence", func(t *testing.T) {
		collected := []model.ConversationMessage{}
		for page := 1; page <= 3; page++ {
			messages, err := f.service.Page(f.flat.ID, page, 10)
			assert.Nil(err)
			collected = append(collected, messages...)
		}

		assert.Len(collected, total)
		seen := map[model.MessageID]bool{}
		for i, m := range collected {
			assert.Equal(fmt.Sprintf("message %02d", total-1-i), m.Content)
			assert.False(seen[m.ID])
			seen[m.ID] = true
		}
	})

	t.Run("page beyond range is empty", func(t *testing.T) {
		page, err := f.service.Page(f.flat.ID, 9, 10)
		assert.Nil(err)
		assert.Empty(page)
	})
}

func TestConversation(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)

	_, err := f.service.Send(f.flat.ID, f.tenant.ID, "first")
	assert.Nil(err)
	_, err = f.service.Send(f.flat.ID, f.owner.ID, "second")
	assert.Nil(err)

	t.Run("owner is always granted", func(t *testing.T) {
		messages, err := f.service.Conversation(f.owner.ID, f.flat.ID)
		assert.Nil(err)
		assert.Len(messages, 2)
		assert.Equal("first", messages[0].Content)
		assert.Equal("second", messages[1].Content)
	})

	t.Run("prior sender is granted", func(t *testing.T) {
		messages, err := f.service.Conversation(f.tenant.ID, f.flat.ID)
		assert.Nil(err)
		assert.Len(messages, 2)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := f.service.Conversation(f.stranger.ID, f.flat.ID)
		assert.ErrorIs(err, model.ErrorForbidden)
	})

	t.Run("participation is granted once a message is sent", func(t *testing.T) {
		_, err := f.service.Send(f.flat.ID, f.stranger.ID, "me too")
		assert.Nil(err)

		messages, err := f.service.Conversation(f.stranger.ID, f.flat.ID)
		assert.Nil(err)
		assert.Len(messages, 3)
	})

	t.Run("unknown flat", func(t *testing.T) {
		_, err := f.service.Conversation(f.owner.ID, "no-such-flat")
		assert.ErrorIs(err, model.ErrorFlatNotFound)
	})
}

func TestMarkAllRead(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)

	_, err := f.service.Send(f.flat.ID, f.tenant.ID, "unread")
	assert.Nil(err)

	updated, err := f.service.MarkAllRead(f.flat.ID)
	assert.Nil(err)
	assert.EqualValues(1, updated)

	messages, err := f.service.Conversation(f.owner.ID, f.flat.ID)
	assert.Nil(err)
	assert.True(messages[0].IsRead)

	// a second run leaves the state unchanged
	_, err = f.service.MarkAllRead(f.flat.ID)
	assert.Nil(err)
	messages, err = f.service.Conversation(f.owner.ID, f.flat.ID)
	assert.Nil(err)
	assert.True(messages[0].IsRead)
}
