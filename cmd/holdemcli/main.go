package main

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/pokerlabs/holdemd/domain"
	"github.com/pokerlabs/holdemd/server"
	"github.com/pokerlabs/holdemd/server/commands"
)

func send(conn *websocket.Conn, cmd commands.Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	// splice the name discriminator into the command's own fields
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	fields["name"] = cmd.Name()
	return conn.WriteJSON(fields)
}

func main() {
	if err := godotenv.Load(); err == nil {
		pterm.Debug.Println("loaded .env")
	}

	serverURL := os.Getenv("HOLDEM_URL")
	if serverURL == "" {
		serverURL = "ws://localhost:7777/ws"
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Hold", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("em", pterm.FgDarkGray.ToStyle()),
	).Render()

	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your username").Show()
	pterm.Println()

	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		pterm.Error.Printfln("could not reach %s: %v", serverURL, err)
		os.Exit(1)
	}
	defer conn.Close()
	pterm.Info.Printfln("Connected to %s", serverURL)

	tableID, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Enter a table ID to join, or leave empty to create one").
		Show()
	pterm.Println()

	if tableID == "" {
		tableName, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Name your table").Show()
		if err := send(conn, commands.CreateTable{TableName: tableName}); err != nil {
			pterm.Error.Printfln("create table: %v", err)
			os.Exit(1)
		}
		tableID, err = awaitTableCreated(conn)
		if err != nil {
			pterm.Error.Printfln("create table: %v", err)
			os.Exit(1)
		}
		pterm.Success.Printfln("Table created: %s (share this ID)", tableID)
	}

	playerID := uuid.NewString()
	if err := send(conn, commands.JoinTable{TableID: tableID, PlayerID: playerID, PlayerName: name}); err != nil {
		pterm.Error.Printfln("join table: %v", err)
		os.Exit(1)
	}

	run(conn, tableID, playerID)
}

// awaitTableCreated reads envelopes until the table creation ack arrives.
func awaitTableCreated(conn *websocket.Conn) (string, error) {
	for {
		var env server.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return "", err
		}
		if env.Name != "TABLE_CREATED" {
			continue
		}
		var payload struct {
			TableID string `json:"tableId"`
		}
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return "", err
		}
		return payload.TableID, nil
	}
}

// run is the client's main loop: render every table state pushed by the
// server, and prompt for input whenever it is our turn (or a new hand can
// be started).
func run(conn *websocket.Conn, tableID, playerID string) {
	for {
		var env server.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			pterm.Error.Printfln("connection lost: %v", err)
			return
		}

		switch env.Name {
		case "ERROR":
			var payload struct {
				Command string `json:"command"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(env.Payload, &payload); err == nil {
				pterm.Error.Printfln("%s rejected: %s", payload.Command, payload.Message)
			}

		case "TABLE_STATE":
			var view domain.TableView
			if err := json.Unmarshal(env.Payload, &view); err != nil {
				pterm.Error.Printfln("bad table state: %v", err)
				continue
			}

			printTable(view, playerID)

			switch {
			case view.CurrentPlayerID == playerID:
				action, amount := promptAction()
				if err := send(conn, commands.PlayerAction{
					TableID:  tableID,
					PlayerID: playerID,
					Kind:     action,
					Amount:   amount,
				}); err != nil {
					pterm.Error.Printfln("send action: %v", err)
					return
				}

			case view.Phase == domain.PhaseWaiting || view.Phase == domain.PhaseShowdown:
				if len(view.Players) >= 2 {
					if ok, _ := pterm.DefaultInteractiveConfirm.
						WithDefaultText("Start the next hand?").
						WithDefaultValue(false).Show(); ok {
						if err := send(conn, commands.StartHand{TableID: tableID}); err != nil {
							pterm.Error.Printfln("start hand: %v", err)
							return
						}
					}
				} else {
					pterm.Info.Println("Waiting for more players to join ...")
				}
			}
		}
	}
}
