package handlers

import (
	"net/http"
	"sync"
	"time"

	"fluidbook/internal/auth"
	"fluidbook/internal/http/middleware"
	"fluidbook/pkg/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketMessage represents a message sent through the booking feed
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// wsClient is one connected admin dashboard
type wsClient struct {
	conn *websocket.Conn
	send chan WebSocketMessage
	hub  *wsHub
}

// wsHub manages the connected booking-feed clients
type wsHub struct {
	clients    map[*wsClient]bool
	broadcast  chan WebSocketMessage
	register   chan *wsClient
	unregister chan *wsClient
	mu         sync.RWMutex
}

// WebSocketHandler pushes new-booking events to connected admin dashboards
type WebSocketHandler struct {
	hub         *wsHub
	authService *auth.Service
}

// NewWebSocketHandler creates a new websocket handler and starts its hub
func NewWebSocketHandler(authService *auth.Service) *WebSocketHandler {
	hub := &wsHub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan WebSocketMessage),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}

	go hub.run()
	return &WebSocketHandler{hub: hub, authService: authService}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The session cookie is the actual gate; the dashboard is same-origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleBookingFeed upgrades an admin connection to the booking feed.
// Authentication uses the same session cookie as the REST surface.
func (h *WebSocketHandler) HandleBookingFeed(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if _, err := h.authService.Validate(cookie.Value); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := &wsClient{
		conn: conn,
		send: make(chan WebSocketMessage, 256),
		hub:  h.hub,
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}

// BroadcastNewBooking announces a freshly created booking to all clients
func (h *WebSocketHandler) BroadcastNewBooking(booking *models.Booking) {
	h.hub.broadcast <- WebSocketMessage{
		Type:      "booking_created",
		Data:      booking,
		Timestamp: time.Now(),
	}
}

// ConnectedClients returns the number of connected feed clients
func (h *WebSocketHandler) ConnectedClients() int {
	h.hub.mu.RLock()
	defer h.hub.mu.RUnlock()
	return len(h.hub.clients)
}

func (hub *wsHub) run() {
	for {
		select {
		case client := <-hub.register:
			welcome := WebSocketMessage{
				Type:      "connection",
				Data:      map[string]string{"status": "connected"},
				Timestamp: time.Now(),
			}
			hub.mu.Lock()
			hub.clients[client] = true
			select {
			case client.send <- welcome:
			default:
				close(client.send)
				delete(hub.clients, client)
			}
			hub.mu.Unlock()
			log.Info().Msg("Booking feed client connected")

		case client := <-hub.unregister:
			hub.mu.Lock()
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
				close(client.send)
				log.Info().Msg("Booking feed client disconnected")
			}
			hub.mu.Unlock()

		case message := <-hub.broadcast:
			// Slow clients are dropped here, so the map can shrink mid-loop
			// and the broadcast needs the write lock.
			hub.mu.Lock()
			for client := range hub.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(hub.clients, client)
				}
			}
			hub.mu.Unlock()
		}
	}
}

func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	// 30s read deadline, refreshed by pongs from the 20s ping cycle
	c.conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("WebSocket read error")
			}
			break
		}
		// The feed is one-way; client messages are drained and ignored
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(20 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				log.Warn().Err(err).Msg("WebSocket write error")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
