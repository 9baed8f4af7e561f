package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"setgame/internal/config"
	"setgame/internal/protocol"
	qr "setgame/internal/qrcode"
	"setgame/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	Sessions *session.Manager
	Config   config.Config

	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewHandlers(cfg config.Config) *Handlers {
	return &Handlers{
		Sessions: session.NewManager(cfg.GameConfig(), cfg.MaxViewers),
		Config:   cfg,
		hubs:     make(map[string]*Hub),
	}
}

func (h *Handlers) hub(id string) (*Hub, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	hub, ok := h.hubs[id]
	return hub, ok
}

// Close stops every hub.
func (h *Handlers) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, hub := range h.hubs {
		hub.Stop()
		delete(h.hubs, id)
		h.Sessions.Remove(id)
	}
}

// joinURL is the link a phone follows to reach a session.
func (h *Handlers) joinURL(r *http.Request, gameID string) string {
	base := strings.TrimRight(h.Config.PublicURL, "/")
	if base == "" {
		base = "http://" + r.Host
	}
	return fmt.Sprintf("%s/?game=%s", base, url.QueryEscape(gameID))
}

// HandleCreateGame creates a new session and returns its ID and join links.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Create()
	hub := NewHub(s)
	h.mu.Lock()
	h.hubs[s.ID] = hub
	h.mu.Unlock()
	go hub.Run()
	log.Printf("session %s created", s.ID)

	writeJSON(w, http.StatusCreated, protocol.CreatedMsg{
		GameID:  s.ID,
		JoinURL: h.joinURL(r, s.ID),
		QRURL:   "/api/qr?game=" + url.QueryEscape(s.ID),
	})
}

// HandleState returns the current game snapshot as JSON.
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	png, err := qr.Generate(h.joinURL(r, s.ID), h.Config.QRSize)
	if err != nil {
		log.Printf("qr for session %s: %v", s.ID, err)
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	clientID := r.URL.Query().Get("client")

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub, ok := h.hub(gameID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if clientID == "" {
		clientID = session.NewClientID()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	client := NewClient(hub, conn, clientID)
	select {
	case hub.register <- client:
	case <-hub.quit:
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandleClientID returns a new client ID.
func (h *Handlers) HandleClientID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(session.NewClientID()))
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return nil, false
	}
	s, err := h.Sessions.Get(gameID)
	if errors.Is(err, session.ErrSessionNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
