package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/aiagenz/donate/internal/donation"
	"github.com/aiagenz/donate/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// FormSubscriber streams the views of a mounted donation form.
type FormSubscriber interface {
	Subscribe(id string) (<-chan donation.View, func(), error)
}

// EventsHandler pushes donation form views to the browser as they change.
type EventsHandler struct {
	forms    FormSubscriber
	upgrader websocket.Upgrader
}

// NewEventsHandler creates a new EventsHandler. Browsers may only connect from
// allowedOrigins; requests without an Origin header are accepted.
func NewEventsHandler(forms FormSubscriber, allowedOrigins []string) *EventsHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &EventsHandler{
		forms: forms,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// Handle upgrades GET /api/donate/forms/{id}/events to a WebSocket and writes
// one JSON view per change until the form is closed or the client leaves.
func (h *EventsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	views, cancel, err := h.forms.Subscribe(id)
	if err != nil {
		handler.Error(w, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Client → server traffic is only pongs and the close frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case v, ok := <-views:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "form closed"))
				return
			}
			if err := conn.WriteJSON(v); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
