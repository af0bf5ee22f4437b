package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func hubLogger() *zap.Logger {
	return common.GetLogger().Named(common.LoggerNameEventHub)
}

// eventClient is one dashboard connection. An empty childID receives the
// events of every child.
type eventClient struct {
	hub     *Hub
	conn    *websocket.Conn
	childID string
	send    chan []byte
}

// Hub fans family events out to websocket connections. It satisfies
// family.INotifier.
type Hub struct {
	clients    map[*eventClient]bool
	register   chan *eventClient
	unregister chan *eventClient
	broadcast  chan models.Event
	done       chan struct{}

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*eventClient]bool),
		register:   make(chan *eventClient),
		unregister: make(chan *eventClient),
		broadcast:  make(chan models.Event, 256),
		done:       make(chan struct{}),
	}
}

// Notify queues an event without blocking. Events are dropped when the
// queue is full.
func (h *Hub) Notify(event models.Event) {
	select {
	case h.broadcast <- event:
	default:
		hubLogger().Warn("event queue full, event dropped",
			zap.String("kind", string(event.Kind)),
			zap.String(common.LoggerFieldChildID, event.ChildID))
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Run(ctx context.Context) {
	logger := hubLogger()

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Info("client connected", zap.String(common.LoggerFieldChildID, client.childID))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				logger.Error("failed to encode event", zap.Error(err))
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				if client.childID != "" && client.childID != event.ChildID {
					continue
				}
				select {
				case client.send <- data:
				default:
					// a client that cannot keep up is dropped
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (c *eventClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// the feed is one way; reading only serves control frames and close
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				hubLogger().Warn("unexpected close", zap.Error(err))
			}
			return
		}
	}
}

func (c *eventClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeEvents upgrades to a websocket streaming family events, optionally
// only those of ?child_id=.
func (rs *RestfulServer) ServeEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		restfulLogger(c).Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &eventClient{
		hub:     rs.Hub,
		conn:    conn,
		childID: c.Query("child_id"),
		send:    make(chan []byte, sendBuffer),
	}
	select {
	case rs.Hub.register <- client:
	case <-rs.Hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
