package server

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"setgame/internal/engine"
	"setgame/internal/protocol"
	"setgame/internal/session"
)

// Hub manages WebSocket connections for one session. Run is the only
// goroutine that applies intents to the session's game.
type Hub struct {
	session    *session.Session
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	stopOnce   sync.Once
}

func NewHub(s *session.Session) *Hub {
	return &Hub{
		session:    s,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.sendState(client, h.session.View())
			h.sendViewers(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.release(client)
				h.broadcastViewers()
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			for client := range h.clients {
				close(client.send)
			}
			h.clients = nil
			return
		}
	}
}

// Stop shuts the hub down and disconnects its clients.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	if !h.clients[msg.Client] {
		return
	}
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgSync:
		h.sendState(msg.Client, h.session.View())
	default:
		if !msg.Client.joined {
			h.sendError(msg.Client, "join the game before playing")
			return
		}
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	id := msg.Client.ClientID
	if join.ClientID != "" {
		id = join.ClientID
	}
	if err := h.session.Join(id, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	if id != msg.Client.ClientID {
		h.release(msg.Client)
		msg.Client.ClientID = id
	}
	msg.Client.joined = true
	h.broadcastViewers()
}

// release drops client from the roster unless another joined connection
// still holds the same client id.
func (h *Hub) release(client *Client) {
	if !client.joined {
		return
	}
	client.joined = false
	for other := range h.clients {
		if other != client && other.joined && other.ClientID == client.ClientID {
			return
		}
	}
	h.session.Leave(client.ClientID)
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	action, err := parseAction(msg.Envelope)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	events, view, err := h.session.Apply(action)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	for _, ev := range events {
		h.broadcastAll(protocol.MustEnvelope(protocol.MsgEvent, ev))
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameState, view))
}

func parseAction(env protocol.Envelope) (engine.Action, error) {
	action := engine.Action{Type: engine.ActionType(env.Type)}
	switch action.Type {
	case engine.ActionChooseCard:
		if len(env.Payload) == 0 {
			return engine.Action{}, fmt.Errorf("choose_card needs an index")
		}
		var msg protocol.ChooseCardMsg
		if err := env.Decode(&msg); err != nil {
			return engine.Action{}, err
		}
		action.Index = msg.Index
	case engine.ActionDealMore, engine.ActionNewGame:
	default:
		return engine.Action{}, fmt.Errorf("unknown message type %q", env.Type)
	}
	return action, nil
}

func (h *Hub) viewerList() protocol.ViewerList {
	viewers := h.session.Viewers()
	out := protocol.ViewerList{GameID: h.session.ID, Viewers: make([]protocol.Viewer, len(viewers))}
	for i, v := range viewers {
		out.Viewers[i] = protocol.Viewer{ID: v.ID, Name: v.Name}
	}
	return out
}

func (h *Hub) sendViewers(client *Client) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgViewers, h.viewerList()))
}

func (h *Hub) broadcastViewers() {
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgViewers, h.viewerList()))
}

func (h *Hub) sendState(client *Client, view engine.ViewData) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgGameState, view))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}
	for client := range h.clients {
		client.enqueue(data)
	}
}

func (h *Hub) sendError(client *Client, message string) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message}))
}
