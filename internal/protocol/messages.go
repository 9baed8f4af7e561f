package protocol

// Message types: Server → Client
const (
	MsgViewers   = "viewers"
	MsgGameState = "game_state"
	MsgEvent     = "event"
	MsgError     = "error"
)

// Message types: Client → Server
const (
	MsgJoin = "join"
	MsgSync = "sync"
	// Game intents use the same names as engine ActionType
	MsgChooseCard = "choose_card"
	MsgDealMore   = "deal_more"
	MsgNewGame    = "new_game"
)

// ViewerList is sent to all clients when someone joins or leaves.
type ViewerList struct {
	GameID  string   `json:"game_id"`
	Viewers []Viewer `json:"viewers"`
}

type Viewer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JoinMsg names the client connected to a session.
type JoinMsg struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
}

// ChooseCardMsg selects or deselects the card at a tableau slot.
type ChooseCardMsg struct {
	Index int `json:"index"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}

// CreatedMsg is the HTTP response body for a new session.
type CreatedMsg struct {
	GameID  string `json:"game_id"`
	JoinURL string `json:"join_url"`
	QRURL   string `json:"qr_url"`
}
