package state

import (
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

// Conn is the part of *websocket.Conn the hub writes through.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// ClientState is one connected websocket client, keyed by its hub identity.
type ClientState struct {
	ID            string
	Conn          Conn
	ConnMu        sync.Mutex
	subscriptions map[uint64]struct{}
}

var (
	logger    = log.New("websocket")
	clients   = make(map[string]*ClientState)
	clientsMu sync.RWMutex
)

// RegisterClient replaces any previous connection of the same identity and
// closes the one it replaced.
func RegisterClient(id string, conn Conn) *ClientState {
	client := &ClientState{
		ID:            id,
		Conn:          conn,
		subscriptions: make(map[uint64]struct{}),
	}

	clientsMu.Lock()
	prev := clients[id]
	clients[id] = client
	clientsMu.Unlock()

	if prev != nil && prev.Conn != nil && prev.Conn != conn {
		if err := prev.Conn.Close(); err != nil {
			logger.Warnf("Error closing replaced connection of %s: %v", id, err)
		}
	}
	return client
}

// UnregisterClient drops id only if conn is still its current connection.
func UnregisterClient(id string, conn Conn) {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	if c, ok := clients[id]; ok && c.Conn == conn {
		delete(clients, id)
	}
}

func GetClient(id string) *ClientState {
	clientsMu.RLock()
	defer clientsMu.RUnlock()

	return clients[id]
}

func Subscribe(id string, tournamentID uint64) bool {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	c, ok := clients[id]
	if !ok {
		return false
	}
	c.subscriptions[tournamentID] = struct{}{}
	return true
}

func Unsubscribe(id string, tournamentID uint64) bool {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	c, ok := clients[id]
	if !ok {
		return false
	}
	delete(c.subscriptions, tournamentID)
	return true
}

func SubscribersOf(tournamentID uint64) []string {
	clientsMu.RLock()
	defer clientsMu.RUnlock()

	ids := make([]string, 0)
	for id, c := range clients {
		if _, ok := c.subscriptions[tournamentID]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func Reset() {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	clients = make(map[string]*ClientState)
}
