// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vizdash/internal/domain/record"
	"vizdash/internal/service/analytics"
	"vizdash/internal/service/dataset"
)

// Message types exchanged on the dashboard socket
const (
	MessageWelcome  = "welcome"
	MessageFilter   = "filter"
	MessageView     = "view"
	MessageCriteria = "criteria"
	MessageError    = "error"
)

// LiveDataset is a dataset that announces snapshot swaps
type LiveDataset interface {
	Dataset
	Listen(fn dataset.Listener) func()
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64

	// Messages queued per client before new ones are dropped
	SendBuffer int
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 64 * 1024,
		SendBuffer:     16,
	}
}

// ClientMessage is sent by the browser
type ClientMessage struct {
	Type   string               `json:"type"`
	Filter record.AppliedFilter `json:"filter"`
	Page   int                  `json:"page,omitempty"`
}

// ServerMessage is pushed to the browser
type ServerMessage struct {
	Type     string                 `json:"type"`
	ClientID string                 `json:"client_id,omitempty"`
	View     *analytics.View        `json:"view,omitempty"`
	Criteria *record.FilterCriteria `json:"criteria,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The socket only serves read-only views
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DashboardHandler streams recomputed views to connected dashboards
type DashboardHandler struct {
	data   LiveDataset
	opts   analytics.ViewOptions
	config WebSocketConfig
}

// NewDashboardHandler creates a new dashboard socket handler
func NewDashboardHandler(data LiveDataset, opts analytics.ViewOptions, config WebSocketConfig) *DashboardHandler {
	return &DashboardHandler{
		data:   data,
		opts:   opts,
		config: config,
	}
}

// dashboardClient is one connected dashboard
type dashboardClient struct {
	id       string
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}
	once     sync.Once
	handler  *DashboardHandler
	unlisten func()

	mu     sync.Mutex
	filter record.AppliedFilter
	page   int
}

// ServeWS upgrades the request and serves the dashboard socket
func (h *DashboardHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Warn("failed to upgrade to WebSocket", zap.Error(err))
		return
	}

	client := &dashboardClient{
		id:      uuid.New().String(),
		conn:    conn,
		send:    make(chan []byte, h.config.SendBuffer),
		done:    make(chan struct{}),
		handler: h,
	}
	client.unlisten = h.data.Listen(client.onSnapshot)

	criteria := h.data.Snapshot().Criteria
	client.push(ServerMessage{Type: MessageWelcome, ClientID: client.id, Criteria: &criteria})

	go client.writePump()
	go client.readPump()

	zap.L().Info("dashboard connected", zap.String("client_id", client.id))
}

// readPump applies filters sent by the browser
func (c *dashboardClient) readPump() {
	config := c.handler.config

	defer c.close()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("WebSocket error", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}

		c.processIncomingMessage(message)
	}
}

// writePump delivers queued messages and keeps the connection alive
func (c *dashboardClient) writePump() {
	config := c.handler.config
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *dashboardClient) processIncomingMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.push(ServerMessage{Type: MessageError, Error: "malformed message"})
		return
	}

	switch msg.Type {
	case MessageFilter:
		if msg.Page < 0 {
			msg.Page = 0
		}
		c.mu.Lock()
		c.filter = msg.Filter
		c.page = msg.Page
		c.mu.Unlock()

		c.pushView(c.handler.data.Snapshot())

	default:
		c.push(ServerMessage{Type: MessageError, Error: "unknown message type: " + msg.Type})
	}
}

// onSnapshot runs on the goroutine that swapped the dataset
func (c *dashboardClient) onSnapshot(snap dataset.Snapshot) {
	criteria := snap.Criteria
	c.push(ServerMessage{Type: MessageCriteria, Criteria: &criteria})
	c.pushView(snap)
}

func (c *dashboardClient) pushView(snap dataset.Snapshot) {
	c.mu.Lock()
	filter, page := c.filter, c.page
	c.mu.Unlock()

	opts := c.handler.opts
	opts.Page = page
	view := analytics.BuildView(snap.Records, filter, opts)
	c.push(ServerMessage{Type: MessageView, View: &view})
}

// push queues msg without blocking; a full queue drops it
func (c *dashboardClient) push(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		zap.L().Error("failed to marshal dashboard message", zap.Error(err))
		return
	}

	select {
	case <-c.done:
	case c.send <- data:
	default:
		zap.L().Warn("dropping dashboard message",
			zap.String("client_id", c.id),
			zap.String("type", msg.Type),
		)
	}
}

func (c *dashboardClient) close() {
	c.once.Do(func() {
		c.unlisten()
		close(c.done)
		c.conn.Close()
		zap.L().Info("dashboard disconnected", zap.String("client_id", c.id))
	})
}
