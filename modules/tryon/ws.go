package tryon

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressEvent - 세션으로 push되는 진행 이벤트
type ProgressEvent struct {
	Type      string `json:"type"` // progress | done | error
	SessionID string `json:"sessionId"`
	Message   string `json:"message,omitempty"`
}

// ProgressClient - 웹소켓 연결 하나
type ProgressClient struct {
	conn *websocket.Conn
	send chan []byte
}

// ProgressHub - 세션 id별 구독자 관리
type ProgressHub struct {
	mu      sync.RWMutex
	clients map[string]map[*ProgressClient]bool
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{
		clients: make(map[string]map[*ProgressClient]bool),
	}
}

// Broadcast - 해당 세션의 모든 구독자에게 이벤트 전송
// 느린 클라이언트는 건너뜀 (생성 워크플로우를 블로킹하면 안 됨)
func (h *ProgressHub) Broadcast(sessionID, eventType, message string) {
	if h == nil {
		return
	}

	payload, err := json.Marshal(ProgressEvent{
		Type:      eventType,
		SessionID: sessionID,
		Message:   message,
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[sessionID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}

func (h *ProgressHub) register(sessionID string, client *ProgressClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[*ProgressClient]bool)
	}
	h.clients[sessionID][client] = true
}

func (h *ProgressHub) unregister(sessionID string, client *ProgressClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.clients[sessionID]; ok {
		if subs[client] {
			delete(subs, client)
			close(client.send)
		}
		if len(subs) == 0 {
			delete(h.clients, sessionID)
		}
	}
}

// HandleWebSocket - GET /ws?session=<id>
func (h *ProgressHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [WS] Upgrade failed: %v", err)
		return
	}

	client := &ProgressClient{
		conn: conn,
		send: make(chan []byte, 16),
	}
	h.register(sessionID, client)
	log.Printf("🔌 [WS] Client connected for session %s", sessionID)

	go client.writePump()
	go h.readPump(sessionID, client)
}

// writePump - send 채널의 이벤트를 연결로 흘려보냄 + 주기적 ping
func (c *ProgressClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump - 클라이언트 메시지는 무시, 연결 종료 감지용
func (h *ProgressHub) readPump(sessionID string, client *ProgressClient) {
	defer func() {
		h.unregister(sessionID, client)
		client.conn.Close()
		log.Printf("🔌 [WS] Client disconnected from session %s", sessionID)
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
