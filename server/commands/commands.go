// Package commands defines the JSON messages accepted over the websocket.
// Every command carries a "name" discriminator matched against Name().
package commands

type Command interface {
	Name() string
}

type CreateTable struct {
	TableName string `json:"tableName"`
}

func (c CreateTable) Name() string { return "CREATE_TABLE" }

type JoinTable struct {
	TableID    string `json:"tableId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

func (c JoinTable) Name() string { return "JOIN_TABLE" }

type LeaveTable struct {
	TableID  string `json:"tableId"`
	PlayerID string `json:"playerId"`
}

func (c LeaveTable) Name() string { return "LEAVE_TABLE" }

type StartHand struct {
	TableID string `json:"tableId"`
}

func (c StartHand) Name() string { return "START_HAND" }

type PlayerAction struct {
	TableID  string `json:"tableId"`
	PlayerID string `json:"playerId"`
	Kind     string `json:"kind"` // fold | call | raise | allin
	Amount   int    `json:"amount,omitempty"`
}

func (c PlayerAction) Name() string { return "PLAYER_ACTION" }
