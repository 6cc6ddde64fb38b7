package websocket

import (
	"log"
	"sync"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.Message)

// RunHub pushes each new direct message to its receiver when they hold an
// open socket. Offline receivers just pick the message up over REST.
func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case message := <-Broadcast:
			clientsMu.RLock()
			conn, ok := clients[message.ReceiverID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(message); err != nil {
				log.Printf("Error sending message to client %s: %v", message.ReceiverID, err)
				conn.Close()
				clientsMu.Lock()
				delete(clients, message.ReceiverID)
				clientsMu.Unlock()
			}
		}
	}
}
