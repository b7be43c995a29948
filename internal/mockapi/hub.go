package mockapi

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a hint to the peer
	writeWait = 10 * time.Second

	// Send pings to peers with this period
	pingPeriod = 30 * time.Second
)

// hub tracks the websocket subscribers of each conversation's hint stream
// and fans a refresh hint out to them when a message lands.
type hub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{rooms: make(map[string]map[*websocket.Conn]bool)}
}

// add registers a subscriber for a conversation
func (h *hub) add(matchID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[matchID] == nil {
		h.rooms[matchID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[matchID][conn] = true
	log.Printf("[MockAPI] Stream subscriber joined match %s (total: %d)", matchID, len(h.rooms[matchID]))
}

// remove drops a subscriber and cleans up empty rooms
func (h *hub) remove(matchID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.rooms[matchID]; ok {
		if subs[conn] {
			delete(subs, conn)
			conn.Close()
		}
		if len(subs) == 0 {
			delete(h.rooms, matchID)
		}
	}
}

// broadcast sends a refresh hint to every subscriber of a conversation.
// Subscribers that cannot be written to are dropped.
func (h *hub) broadcast(matchID string) {
	h.mu.Lock()
	subs := make([]*websocket.Conn, 0, len(h.rooms[matchID]))
	for conn := range h.rooms[matchID] {
		subs = append(subs, conn)
	}
	h.mu.Unlock()

	for _, conn := range subs {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(map[string]string{"type": "refresh"}); err != nil {
			log.Printf("[MockAPI] Dropping stream subscriber for match %s: %v", matchID, err)
			h.remove(matchID, conn)
		}
	}
}
