package hub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"pt.arrendado.flatfinder/internal/model"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
	sendBuffer   = 16

	EventNewMessage = "new-message"
)

// envelope is the wire format of server-to-client events.
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// command is the only client-to-server message: subscribe to or unsubscribe
// from a flat's topic. Message sends go through the REST write path.
type command struct {
	Action string       `json:"action"`
	FlatID model.FlatID `json:"flatId"`
}

type client struct {
	conn  *websocket.Conn
	send  chan []byte
	flats map[model.FlatID]bool
}

// Hub owns the registry of connected real-time subscribers, keyed by the flat
// topics they follow. Nothing outside this package touches the registry;
// connect and disconnect mutate it, Publish reads it.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]bool
	upgrader websocket.Upgrader
}

func New() *Hub {
	return &Hub{
		clients: map[*client]bool{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Publish broadcasts a new-message event to every subscriber of the event's
// flat topic. It never blocks: a subscriber with a full send queue is skipped,
// and delivery failures are logged, never returned.
func (h *Hub) Publish(event model.MessageEvent) {
	payload, err := json.Marshal(envelope{Event: EventNewMessage, Data: event})
	if err != nil {
		log.Errorf("marshalling event: %+v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if !c.flats[event.FlatID] {
			continue
		}
		select {
		case c.send <- payload:
		default:
			log.Warnf("dropping event for slow subscriber")
		}
	}
}

// Subscribers reports how many connected clients follow a flat's topic.
func (h *Hub) Subscribers(flatID model.FlatID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for c := range h.clients {
		if c.flats[flatID] {
			n++
		}
	}
	return n
}

// Handler upgrades the request to a websocket connection and serves it until
// the client disconnects.
func (h *Hub) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}

		cl := &client{
			conn:  conn,
			send:  make(chan []byte, sendBuffer),
			flats: map[model.FlatID]bool{},
		}
		h.add(cl)
		c.Logger().Infof("realtime client connected: %s", conn.RemoteAddr())

		go h.writePump(cl)
		h.readPump(cl)

		c.Logger().Infof("realtime client disconnected: %s", conn.RemoteAddr())
		return nil
	}
}

func (h *Hub) add(cl *client) {
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	if h.clients[cl] {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
}

func (h *Hub) readPump(cl *client) {
	defer func() {
		h.remove(cl)
		cl.conn.Close()
	}()

	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}

		cmd := command{}
		if err := json.Unmarshal(raw, &cmd); err != nil {
			log.Warnf("ignoring malformed realtime command: %s", raw)
			continue
		}

		switch cmd.Action {
		case "subscribe":
			h.setSubscription(cl, cmd.FlatID, true)
		case "unsubscribe":
			h.setSubscription(cl, cmd.FlatID, false)
		default:
			log.Warnf("ignoring unknown realtime action: %s", cmd.Action)
		}
	}
}

func (h *Hub) setSubscription(cl *client, flatID model.FlatID, on bool) {
	if flatID == "" {
		return
	}
	h.mu.Lock()
	if on {
		cl.flats[flatID] = true
	} else {
		delete(cl.flats, flatID)
	}
	h.mu.Unlock()
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
