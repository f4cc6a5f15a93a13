package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	actionError     = "error"
	actionNewGame   = "game:new"
	actionGameState = "game:state"
	actionGameTurn  = "game:turn"
	actionGameReset = "game:reset"
	actionGameLeave = "game:leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID string       `json:"game_id,omitempty"`
	Move   *entity.Move `json:"move,omitempty"`
	Game   *entity.Game `json:"game,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func newMessage(action string, payload *Payload) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}

	return Message{
		Action:  action,
		Payload: raw,
	}
}
