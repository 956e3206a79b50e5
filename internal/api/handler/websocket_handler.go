package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"smart_parking_booking/internal/domain"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	broadcastBuffer = 64
	writeWait       = 5 * time.Second
)

var ErrBroadcastFull = errors.New("websocket broadcast channel is full")
var ErrManagerStopped = errors.New("websocket manager stopped")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Cho phép kết nối từ mọi nguồn
	},
}

// WebSocketManager giữ các client /ws và phát SlotEvent tới tất cả.
type WebSocketManager struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *zerolog.Logger
}

func NewWebSocketManager(logger *zerolog.Logger) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Start runs the hub loop until ctx is cancelled, then closes every client.
func (wsm *WebSocketManager) Start(ctx context.Context) {
	defer close(wsm.done)
	for {
		select {
		case <-ctx.Done():
			wsm.mutex.Lock()
			for client := range wsm.clients {
				client.Close()
				delete(wsm.clients, client)
			}
			wsm.mutex.Unlock()
			return

		case client := <-wsm.register:
			wsm.mutex.Lock()
			wsm.clients[client] = true
			total := len(wsm.clients)
			wsm.mutex.Unlock()
			wsm.logger.Debug().Int("clients", total).Msg("websocket client connected")

		case client := <-wsm.unregister:
			wsm.mutex.Lock()
			if _, ok := wsm.clients[client]; ok {
				delete(wsm.clients, client)
				client.Close()
			}
			total := len(wsm.clients)
			wsm.mutex.Unlock()
			wsm.logger.Debug().Int("clients", total).Msg("websocket client disconnected")

		case message := <-wsm.broadcast:
			wsm.mutex.Lock()
			for client := range wsm.clients {
				client.SetWriteDeadline(time.Now().Add(writeWait))
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					wsm.logger.Warn().Err(err).Msg("writing to websocket client failed")
					client.Close()
					delete(wsm.clients, client)
				}
			}
			wsm.mutex.Unlock()
		}
	}
}

func (wsm *WebSocketManager) ClientCount() int {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()
	return len(wsm.clients)
}

// Publish queues event for every connected client without waiting for delivery.
func (wsm *WebSocketManager) Publish(_ context.Context, event domain.SlotEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}

	select {
	case <-wsm.done:
		return ErrManagerStopped
	default:
	}

	select {
	case wsm.broadcast <- message:
		return nil
	default:
		return ErrBroadcastFull
	}
}

type WebSocketHandler struct {
	wsManager *WebSocketManager
	logger    *zerolog.Logger
}

func NewWebSocketHandler(wsManager *WebSocketManager, logger *zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{wsManager: wsManager, logger: logger}
}

// GET /ws
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	select {
	case h.wsManager.register <- conn:
	case <-h.wsManager.done:
		conn.Close()
		return
	}

	// Client chỉ nhận dữ liệu; vòng đọc dùng để phát hiện ngắt kết nối.
	go func() {
		defer func() {
			select {
			case h.wsManager.unregister <- conn:
			case <-h.wsManager.done:
			}
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Debug().Err(err).Msg("websocket read error")
				}
				return
			}
		}
	}()
}
