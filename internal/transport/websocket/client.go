package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// client wraps one socket. gorilla allows a single concurrent writer, so
// every write, pings included, goes through mu.
type client struct {
	id   uint64
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// ConnectionManager tracks open analysis sockets thread-safely
type ConnectionManager struct {
	connections map[uint64]*client
	nextID      uint64
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[uint64]*client),
	}
}

// AddConnection registers conn and returns its client wrapper
func (cm *ConnectionManager) AddConnection(conn *websocket.Conn) *client {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.nextID++
	c := &client{id: cm.nextID, conn: conn}
	cm.connections[c.id] = c
	return c
}

// RemoveConnection closes the socket and forgets it
func (cm *ConnectionManager) RemoveConnection(c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if _, exists := cm.connections[c.id]; exists {
		c.conn.Close()
		delete(cm.connections, c.id)
	}
}

// Count is the number of open sockets.
func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// CloseAll sends a going-away close frame to every socket, for shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	for id, c := range cm.connections {
		c.mu.Lock()
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.mu.Unlock()
		c.conn.Close()
		delete(cm.connections, id)
	}
}
