package chatws

import (
	"encoding/json"
	"log"
	"time"

	websocket "github.com/gofiber/contrib/websocket"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/services"
)

type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Payload
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

type sender interface {
	SendMessage(actorID, role, peerID, text string) (*services.ChatDelivery, error)
}

// Payload is the wire shape pushed to connected clients. Type is "message",
// "notification", or "error".
type Payload struct {
	Type         string               `json:"type"`
	ThreadKey    string               `json:"thread_key,omitempty"`
	SenderID     string               `json:"sender_id,omitempty"`
	RecipientID  string               `json:"recipient_id,omitempty"`
	Content      string               `json:"content,omitempty"`
	Timestamp    string               `json:"timestamp,omitempty"`
	Notification *models.Notification `json:"notification,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Payload, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case payload := <-h.broadcast:
			h.deliver(payload)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastDelivery pushes a sent chat message to both participants'
// live sessions.
func (h *Hub) BroadcastDelivery(senderID string, delivery *services.ChatDelivery) {
	h.broadcast <- &Payload{
		Type:        "message",
		ThreadKey:   delivery.ThreadKey,
		SenderID:    senderID,
		RecipientID: delivery.RecipientID,
		Content:     delivery.Message.Text,
		Timestamp:   services.FormatChatTimestamp(delivery.Message.SentAt),
	}
}

// PublishNotification pushes a stored notification to the account's live
// sessions. Implements services.NotificationPublisher.
func (h *Hub) PublishNotification(accountID string, notification models.Notification) {
	n := notification
	h.broadcast <- &Payload{
		Type:         "notification",
		RecipientID:  accountID,
		Timestamp:    services.FormatChatTimestamp(notification.CreatedAt),
		Notification: &n,
	}
}

func (h *Hub) deliver(payload *Payload) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		log.Printf("hub encode payload: %v", err)
		return
	}

	if payload.SenderID != "" {
		h.sendToUser(payload.SenderID, encoded)
	}
	if payload.RecipientID != "" && payload.RecipientID != payload.SenderID {
		h.sendToUser(payload.RecipientID, encoded)
	}
}

func (h *Hub) sendToUser(userID string, payload []byte) {
	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

func (c *Client) ReadPump(service sender, role string) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type string `json:"type"`
			To   string `json:"to"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			writeError(c, "invalid message payload")
			continue
		}
		if incoming.Type != "message" {
			writeError(c, "unsupported message type")
			continue
		}

		delivery, err := service.SendMessage(c.userID, role, incoming.To, incoming.Text)
		if err != nil {
			writeError(c, "failed to send message")
			continue
		}

		c.hub.BroadcastDelivery(c.userID, delivery)
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func writeError(client *Client, message string) {
	payload, err := json.Marshal(Payload{
		Type:      "error",
		Content:   message,
		Timestamp: services.FormatChatTimestamp(time.Now().UTC()),
	})
	if err != nil {
		return
	}
	select {
	case client.send <- payload:
	default:
		client.hub.Unregister(client)
	}
}
