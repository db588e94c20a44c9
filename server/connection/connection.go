package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a connected player socket
type Client struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	PlayerID string   // set once the client identifies itself
	GameIDs  []string // games the player is seated at
}

// Manager handles all client connections
type Manager struct {
	clients   map[string]*Client // connection ID -> client
	playerMap map[string]string  // player ID -> connection ID
	mutex     sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:   make(map[string]*Client),
		playerMap: make(map[string]string),
	}
}

// Register adds a client. Synchronous: once it returns, a command read
// from the socket can already bind the connection.
func (m *Manager) Register(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.clients[client.ID] = client
	if client.PlayerID != "" {
		m.playerMap[client.PlayerID] = client.ID
	}
}

// Unregister removes a client and closes its send channel
func (m *Manager) Unregister(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.ID]; ok {
		if client.PlayerID != "" && m.playerMap[client.PlayerID] == client.ID {
			delete(m.playerMap, client.PlayerID)
		}
		delete(m.clients, client.ID)
		close(client.Send)
	}
}

// BindPlayer links a player ID to a connection once it identifies itself
func (m *Manager) BindPlayer(clientID, playerID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[clientID]; ok {
		client.PlayerID = playerID
		m.playerMap[playerID] = clientID
	}
}

// AddGameToClient adds a game ID to a client's games
func (m *Manager) AddGameToClient(clientID, gameID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	for _, id := range client.GameIDs {
		if id == gameID {
			return true
		}
	}
	client.GameIDs = append(client.GameIDs, gameID)
	return true
}

// SendToPlayer sends a message to a specific player
func (m *Manager) SendToPlayer(playerID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if connID, exists := m.playerMap[playerID]; exists {
		if client, ok := m.clients[connID]; ok {
			select {
			case client.Send <- message:
				return true
			default:
				// Slow consumer; drop rather than block the sender.
				return false
			}
		}
	}
	return false
}

// SendToGame sends a message to every client seated at a game
func (m *Manager) SendToGame(gameID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.clients {
		for _, id := range client.GameIDs {
			if id == gameID {
				select {
				case client.Send <- message:
				default:
				}
				break
			}
		}
	}
}
