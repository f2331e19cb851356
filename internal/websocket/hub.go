package websocket

import (
	"strconv"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of connected feed clients and routes employer events
// to the clients subscribed to that employer.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Employer ID (as string) to the set of clients watching that feed.
	subscriptions map[string]map[*Client]bool

	publish chan publication
}

type publication struct {
	key     string
	message []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		publish:       make(chan publication, 64),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client, client.FeedKey)
			log.Info().Int("total_clients", len(h.clients)).Str("feed", client.FeedKey).Msg("Feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
			}
		case pub := <-h.publish:
			for client := range h.subscriptions[pub.key] {
				select {
				case client.Send <- pub.message:
				default:
					close(client.Send)
					delete(h.clients, client)
					delete(h.subscriptions[pub.key], client)
				}
			}
		}
	}
}

// Publish sends a message to every client watching the given employer's feed.
// It satisfies services.Notifier.
func (h *Hub) Publish(employerID int64, message []byte) {
	select {
	case h.publish <- publication{key: strconv.FormatInt(employerID, 10), message: message}:
	default:
		log.Warn().Int64("employer_id", employerID).Msg("Feed backlog full, dropping event")
	}
}

func (h *Hub) addSubscription(client *Client, key string) {
	if key == "" {
		return
	}
	if h.subscriptions[key] == nil {
		h.subscriptions[key] = make(map[*Client]bool)
	}
	h.subscriptions[key][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for key, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, key)
			}
		}
	}
}
