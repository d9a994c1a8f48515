// Package ws рассылает события каталога подписчикам по WebSocket.
package ws

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/go-catalog/internal/usecase"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
)

const (
	broadcastBuffer = 256
	drainTimeout    = 5 * time.Second
)

// Event — сообщение, которое получает подписчик.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Hub хранит подписчиков и рассылает им события.
// Подписчик может ограничить поток одним типом события (topic).
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	quit    chan struct{}
	done    chan struct{}
	stopped atomic.Bool

	clientCount int64
	logger      logger.Logger
}

func NewHub(logger logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client, broadcastBuffer),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run обслуживает регистрацию и рассылку до вызова Close.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			atomic.AddInt64(&h.clientCount, 1)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.clients {
				if !client.accepts(event.Type) {
					continue
				}
				select {
				case client.send <- event:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range slow {
				h.logger.Warnf("Dropping slow websocket subscriber: %s", client.conn.RemoteAddr())
				h.unregisterClient(client)
			}

		case <-h.quit:
			h.shutdown()
			return
		}
	}
}

// WriteMessage ставит событие в очередь рассылки. Если очередь переполнена, событие отбрасывается.
func (h *Hub) WriteMessage(ctx context.Context, req *usecase.WriteMessageReq) error {
	if h.stopped.Load() {
		return e.Wrap("Hub.WriteMessage", e.ErrHubClosed)
	}

	event := &Event{
		ID:         req.ID,
		Type:       string(req.Type),
		Key:        req.Key,
		Payload:    req.Payload,
		OccurredAt: req.OccurredAt,
	}

	select {
	case h.broadcast <- event:
		return nil
	case <-ctx.Done():
		return e.Wrap("Hub.WriteMessage", ctx.Err())
	default:
		h.logger.Warnf("Websocket broadcast queue is full, event %s dropped", req.ID)
		return nil
	}
}

// ClientCount возвращает число активных подписчиков.
func (h *Hub) ClientCount() int64 {
	return atomic.LoadInt64(&h.clientCount)
}

// Close останавливает Run, закрывает соединения и ждёт завершения цикла.
func (h *Hub) Close(ctx context.Context) error {
	if !h.stopped.CompareAndSwap(false, true) {
		return nil
	}
	close(h.quit)

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return e.Wrap("Hub.Close", ctx.Err())
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		h.unregisterClient(client)
	}

	timeout := time.After(drainTimeout)
	for {
		select {
		case client := <-h.unregister:
			h.unregisterClient(client)
		case <-h.broadcast:
		case <-timeout:
			return
		default:
			return
		}
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.mu.Unlock()

	atomic.AddInt64(&h.clientCount, -1)
}
