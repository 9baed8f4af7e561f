package engine

// ActionType identifies player intents sent to Game.Apply.
type ActionType string

const (
	ActionChooseCard ActionType = "choose_card"
	ActionDealMore   ActionType = "deal_more"
	ActionNewGame    ActionType = "new_game"
)

// Action is a player's intent.
type Action struct {
	Type  ActionType `json:"type"`
	Index int        `json:"index,omitempty"` // choose_card: tableau slot
}

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventGameStarted    EventType = "game_started"
	EventCardSelected   EventType = "card_selected"
	EventCardDeselected EventType = "card_deselected"
	EventSetMatched     EventType = "set_matched"
	EventSetRejected    EventType = "set_rejected"
	EventCardsDealt     EventType = "cards_dealt"
	EventGameOver       EventType = "game_over"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Apply is the single entry point for player intents.
func (g *Game) Apply(action Action) ([]Event, error) {
	switch action.Type {
	case ActionChooseCard:
		return g.ChooseCard(action.Index)
	case ActionDealMore:
		return g.DealMore(), nil
	case ActionNewGame:
		return g.Reset(), nil
	default:
		return nil, ErrInvalidAction
	}
}
