// Package hub fans snapshot-update events out to connected staff clients
// over WebSocket, so an open complaint list re-renders when a background
// refresh lands.
package hub

import (
	"log"
	"time"
)

// Event is pushed to every connected client when the complaint snapshot
// changes.
type Event struct {
	Type     string    `json:"type"` // "snapshot_updated"
	Count    int       `json:"count"`
	SyncedAt time.Time `json:"synced_at"`
}

// Client is one connected listener. It abstracts the underlying transport
// so the hub can manage connections uniformly.
type Client interface {
	// GetSessionID returns the unique identifier of this connection.
	GetSessionID() string
	// GetSendChannel returns the channel the hub pushes events into.
	GetSendChannel() chan<- Event
	// Run starts the client's read and write pumps.
	Run()
	// Close shuts the client's connection down.
	Close()
}

// Service is the connection registry and dispatcher.
type Service struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan Event
}

// NewService Constructor
func NewService() *Service {
	return &Service{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan Event, 8),
	}
}

// Run is the hub's main goroutine. All access to Clients happens here.
func (m *Service) Run() {
	log.Println("Push hub started.")
	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client.GetSessionID()] = client

		case client := <-m.UnregisterCh:
			if _, ok := m.Clients[client.GetSessionID()]; ok {
				delete(m.Clients, client.GetSessionID())
				client.Close()
			}

		case event := <-m.BroadcastCh:
			for id, client := range m.Clients {
				select {
				case client.GetSendChannel() <- event:
				default:
					// Slow client, drop it rather than block the hub.
					delete(m.Clients, id)
					client.Close()
				}
			}
		}
	}
}

// BroadcastSnapshot satisfies feed.Broadcaster.
func (m *Service) BroadcastSnapshot(count int, syncedAt time.Time) {
	m.BroadcastCh <- Event{Type: "snapshot_updated", Count: count, SyncedAt: syncedAt}
}
