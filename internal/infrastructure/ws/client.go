package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // должен быть меньше pongWait
	maxMessageSize = 512
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client — одно подключение подписчика.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan *Event
	topic string
}

func (c *Client) accepts(eventType string) bool {
	return c.topic == "" || c.topic == eventType
}

// ServeWs переводит запрос в WebSocket и подписывает клиента на события.
// Query-параметр type ограничивает поток одним типом события.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	if h.stopped.Load() {
		http.Error(w, "event stream is closed", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf(err, "Websocket upgrade failed")
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan *Event, sendBuffer),
		topic: r.URL.Query().Get("type"),
	}

	select {
	case h.register <- client:
	case <-h.quit:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump только поддерживает соединение: входящие сообщения игнорируются.
func (c *Client) readPump() {
	defer func() {
		_ = c.conn.Close()
		select {
		case c.hub.unregister <- c:
		default:
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warnf("Websocket read error: %v", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				c.hub.logger.Errorf(err, "Failed to marshal event %s", event.ID)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
