package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pokerlabs/holdemd/domain"
	"github.com/pokerlabs/holdemd/server/commands"
	"github.com/pokerlabs/holdemd/server/connection"
)

// Envelope wraps an outbound message with its name for client consumption
type Envelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

func newEnvelope(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Name: name, Payload: data})
}

// errorPayload reports a rejected command back to its sender.
type errorPayload struct {
	Command string `json:"command"`
	Message string `json:"message"`
}

// tableCreatedPayload announces a freshly created table to its creator.
type tableCreatedPayload struct {
	TableID string `json:"tableId"`
	Name    string `json:"name"`
}

// CommandRouter routes incoming commands to the appropriate handler
type CommandRouter struct {
	registry    *Registry
	coordinator *Coordinator
	connMgr     *connection.Manager
	logger      logrus.FieldLogger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(registry *Registry, coordinator *Coordinator, connMgr *connection.Manager, logger logrus.FieldLogger) *CommandRouter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CommandRouter{
		registry:    registry,
		coordinator: coordinator,
		connMgr:     connMgr,
		logger:      logger,
	}
}

// HandleCommand processes one incoming command message. Rejections are
// reported back to the sender; whatever the outcome, the table's current
// state is rebroadcast so callers can detect actions that had no effect.
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return err
	}

	var err error
	switch baseCmd.Name {
	case commands.CreateTable{}.Name():
		var cmd commands.CreateTable
		if err = json.Unmarshal(message, &cmd); err == nil {
			err = r.handleCreateTable(client, cmd)
		}

	case commands.JoinTable{}.Name():
		var cmd commands.JoinTable
		if err = json.Unmarshal(message, &cmd); err == nil {
			err = r.handleJoinTable(client, cmd)
		}

	case commands.LeaveTable{}.Name():
		var cmd commands.LeaveTable
		if err = json.Unmarshal(message, &cmd); err == nil {
			err = r.handleLeaveTable(client, cmd)
		}

	case commands.StartHand{}.Name():
		var cmd commands.StartHand
		if err = json.Unmarshal(message, &cmd); err == nil {
			err = r.handleStartHand(client, cmd)
		}

	case commands.PlayerAction{}.Name():
		var cmd commands.PlayerAction
		if err = json.Unmarshal(message, &cmd); err == nil {
			err = r.handlePlayerAction(client, cmd)
		}

	default:
		err = fmt.Errorf("unknown command %q", baseCmd.Name)
	}

	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"client":  client.ID,
			"command": baseCmd.Name,
		}).WithError(err).Debug("command rejected")
		r.sendError(client, baseCmd.Name, err)
	}

	return nil
}

func (r *CommandRouter) handleCreateTable(client *connection.Client, cmd commands.CreateTable) error {
	table := r.registry.CreateTable(cmd.TableName, domain.DefaultTableRules())

	data, err := newEnvelope("TABLE_CREATED", tableCreatedPayload{
		TableID: table.ID,
		Name:    table.Name,
	})
	if err != nil {
		return err
	}
	r.connMgr.SendToClient(client.ID, data)
	return nil
}

func (r *CommandRouter) handleJoinTable(client *connection.Client, cmd commands.JoinTable) error {
	err := r.coordinator.Do(cmd.TableID, func(t *domain.Table) error {
		return t.Seat(cmd.PlayerID, cmd.PlayerName)
	})
	if err != nil {
		return err
	}

	r.connMgr.BindPlayer(client.ID, cmd.PlayerID)
	r.connMgr.AddTableToClient(client.ID, cmd.TableID)

	r.broadcastTable(cmd.TableID)
	return nil
}

func (r *CommandRouter) handleLeaveTable(client *connection.Client, cmd commands.LeaveTable) error {
	err := r.coordinator.Do(cmd.TableID, func(t *domain.Table) error {
		return t.RemovePlayer(cmd.PlayerID)
	})

	r.connMgr.RemoveTableFromClient(client.ID, cmd.TableID)
	r.broadcastTable(cmd.TableID)
	return err
}

func (r *CommandRouter) handleStartHand(client *connection.Client, cmd commands.StartHand) error {
	err := r.coordinator.Do(cmd.TableID, func(t *domain.Table) error {
		return t.StartHand()
	})

	r.broadcastTable(cmd.TableID)
	return err
}

func (r *CommandRouter) handlePlayerAction(client *connection.Client, cmd commands.PlayerAction) error {
	kind, ok := domain.ActionKindFromString(cmd.Kind)
	if !ok {
		return fmt.Errorf("unknown action kind %q", cmd.Kind)
	}

	err := r.coordinator.Do(cmd.TableID, func(t *domain.Table) error {
		return t.ApplyAction(cmd.PlayerID, domain.Action{Kind: kind, Amount: cmd.Amount})
	})

	// Rejected or not, republish the (possibly unchanged) state so the
	// caller can resync.
	r.broadcastTable(cmd.TableID)
	return err
}

// HandleDisconnect unseats a dropped connection's player from every table
// it joined. Removal goes through the engine's departure path, so a player
// still in a hand is folded out and the hand continues (or settles), and
// the remaining players are told about the new state.
func (r *CommandRouter) HandleDisconnect(client *connection.Client) {
	if client.PlayerID == "" {
		return
	}

	for _, tableID := range client.TableIDs {
		err := r.coordinator.Do(tableID, func(t *domain.Table) error {
			return t.RemovePlayer(client.PlayerID)
		})
		if err != nil && !errors.Is(err, ErrUnknownTable) && !errors.Is(err, domain.ErrUnknownPlayer) {
			r.logger.WithFields(logrus.Fields{
				"table":  tableID,
				"player": client.PlayerID,
			}).WithError(err).Warn("failed to unseat disconnected player")
			continue
		}

		r.broadcastTable(tableID)
	}

	r.logger.WithFields(logrus.Fields{
		"client": client.ID,
		"player": client.PlayerID,
		"tables": len(client.TableIDs),
	}).Info("disconnected player unseated")
}

// broadcastTable sends each seated player their own projection of the
// table. Views are built inside the table's job queue so they observe a
// consistent post-action state.
func (r *CommandRouter) broadcastTable(tableID string) {
	type targeted struct {
		playerID string
		data     []byte
	}
	var messages []targeted

	err := r.coordinator.Do(tableID, func(t *domain.Table) error {
		for _, p := range t.Players {
			view := t.ViewFor(p.ID)
			data, err := newEnvelope("TABLE_STATE", view)
			if err != nil {
				return err
			}
			messages = append(messages, targeted{playerID: p.ID, data: data})
		}
		return nil
	})
	if err != nil {
		r.logger.WithField("table", tableID).WithError(err).Warn("failed to build table views")
		return
	}

	for _, msg := range messages {
		r.connMgr.SendToPlayer(msg.playerID, msg.data)
	}
}

func (r *CommandRouter) sendError(client *connection.Client, command string, cause error) {
	data, err := newEnvelope("ERROR", errorPayload{
		Command: command,
		Message: cause.Error(),
	})
	if err != nil {
		return
	}
	r.connMgr.SendToClient(client.ID, data)
}
