package api

import (
	"net/http"
	"sync"
	"time"

	models "AstroFeed/internal/domain/models"
	xlogger "AstroFeed/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Feeds are public read-only documents.
	CheckOrigin: func(*http.Request) bool { return true },
}

// FeedHub pushes every freshly generated feed to connected websocket
// subscribers. Slow subscribers are dropped, never waited on.
type FeedHub struct {
	logger  *xlogger.Logger
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan *models.Feed
}

func NewFeedHub(logger *xlogger.Logger) *FeedHub {
	return &FeedHub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Serve upgrades the connection and streams feeds until the peer goes
// away.
func (h *FeedHub) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := &client{
		conn: conn,
		send: make(chan *models.Feed, sendBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return nil
	}
	h.clients[cl] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("ws subscriber connected", xlogger.Int("subscribers", n))

	go h.writeLoop(cl)
	h.readLoop(cl)
	return nil
}

// Broadcast fans a feed out to every subscriber.
func (h *FeedHub) Broadcast(feed *models.Feed) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for cl := range h.clients {
		select {
		case cl.send <- feed:
		default:
			// Subscriber cannot keep up; cut it loose.
			delete(h.clients, cl)
			close(cl.send)
			h.logger.Warn("ws subscriber dropped, send buffer full")
		}
	}
}

// Close disconnects every subscriber.
func (h *FeedHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for cl := range h.clients {
		delete(h.clients, cl)
		close(cl.send)
	}
}

// Subscribers reports the current connection count.
func (h *FeedHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *FeedHub) remove(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
}

func (h *FeedHub) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case feed, ok := <-cl.send:
			if !ok {
				_ = cl.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteJSON(feed); err != nil {
				h.remove(cl)
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(cl)
				return
			}
		}
	}
}

// readLoop drains inbound frames so pongs and close frames are
// processed; subscribers never send application data.
func (h *FeedHub) readLoop(cl *client) {
	defer func() {
		h.remove(cl)
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(512)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}
