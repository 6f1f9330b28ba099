package hub

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"pt.arrendado.flatfinder/internal/model"
)

func dial(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialling: %+v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func subscribe(t *testing.T, h *Hub, conn *websocket.Conn, flatID model.FlatID, want int) {
	t.Helper()

	err := conn.WriteJSON(command{Action: "subscribe", FlatID: flatID})
	if err != nil {
		t.Fatalf("subscribing: %+v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for h.Subscribers(flatID) < want {
		if time.Now().After(deadline) {
			t.Fatalf("subscription for %s never registered", flatID)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPublish(t *testing.T) {
	assert := assert.New(t)

	h := New()
	server := echo.New()
	server.GET("/ws", h.Handler())
	ts := httptest.NewServer(server)
	defer ts.Close()

	subscriber := dial(t, ts.URL)
	subscribe(t, h, subscriber, "F1", 1)

	bystander := dial(t, ts.URL)
	subscribe(t, h, bystander, "F2", 1)

	event := model.MessageEvent{FlatID: "F1", Content: "Is this available?", SenderID: "U_tenant"}
	h.Publish(event)

	t.Run("topic subscriber receives the event", func(t *testing.T) {
		subscriber.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := subscriber.ReadMessage()
		assert.Nil(err)

		received := envelope{}
		assert.Nil(json.Unmarshal(raw, &received))
		assert.Equal(EventNewMessage, received.Event)

		data, _ := json.Marshal(received.Data)
		receivedEvent := model.MessageEvent{}
		assert.Nil(json.Unmarshal(data, &receivedEvent))
		assert.Equal(event, receivedEvent)
	})

	t.Run("other topics hear nothing", func(t *testing.T) {
		bystander.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		_, _, err := bystander.ReadMessage()
		assert.NotNil(err)
	})
}

func TestUnsubscribe(t *testing.T) {
	assert := assert.New(t)

	h := New()
	server := echo.New()
	server.GET("/ws", h.Handler())
	ts := httptest.NewServer(server)
	defer ts.Close()

	conn := dial(t, ts.URL)
	subscribe(t, h, conn, "F1", 1)

	err := conn.WriteJSON(command{Action: "unsubscribe", FlatID: "F1"})
	assert.Nil(err)

	deadline := time.Now().Add(2 * time.Second)
	for h.Subscribers("F1") > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("unsubscribe never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	h.Publish(model.MessageEvent{FlatID: "F1", Content: "gone", SenderID: "U"})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = conn.ReadMessage()
	assert.NotNil(err)
}

func TestDisconnectRemovesClient(t *testing.T) {
	assert := assert.New(t)

	h := New()
	server := echo.New()
	server.GET("/ws", h.Handler())
	ts := httptest.NewServer(server)
	defer ts.Close()

	conn := dial(t, ts.URL)
	subscribe(t, h, conn, "F1", 1)

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.Subscribers("F1") > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("disconnect never removed the client")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// publishing to an empty topic is a no-op, not a failure
	h.Publish(model.MessageEvent{FlatID: "F1", Content: "nobody home", SenderID: "U"})
	assert.Zero(h.Subscribers("F1"))
}
