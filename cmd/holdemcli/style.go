package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/pokerlabs/holdemd/domain"
)

func printTable(view domain.TableView, myID string) {
	var panels []pterm.Panel
	var mainPlayer pterm.Panel
	for _, p := range view.Players {
		if p.ID != myID {
			panels = append(panels, pterm.Panel{Data: printPlayerInfo(p, 4)})
		} else {
			mainPlayer = pterm.Panel{Data: printPlayerInfo(p, 10)}
		}
	}
	board := pterm.Panel{Data: printBoardInfo(view)}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		panels,
		{board},
		{mainPlayer},
	}).Render()
}

func printPlayerInfo(p domain.PlayerView, hpadding int) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)

	var status string
	switch {
	case p.Winner:
		status = pterm.LightGreen("Winner")
	case p.Folded:
		status = pterm.LightRed("Folded")
	case p.AllIn:
		status = pterm.LightYellow("All-in")
	case p.IsTurn:
		status = pterm.LightCyan("To act")
	default:
		status = "Active"
	}

	hand := "? - ?"
	if len(p.HoleCards) == 2 {
		hand = pterm.BgGreen.Sprintf("%s - %s", p.HoleCards[0].String(), p.HoleCards[1].String())
	}

	info := pterm.Sprintf("%s\nChips: %d\nCurrent Bet: %d\n%s\n", status, p.Chips, p.CurrentBet, hand)
	if p.HandDescription != "" {
		info += pterm.Sprintfln("%s", pterm.LightMagenta(p.HandDescription))
	}
	return pbox.WithTitle(p.Name).WithTitleTopLeft().Sprint(info)
}

func printBoardInfo(view domain.TableView) string {
	board := strings.Join(view.CommunityCards.Strings(), " - ")
	if board == "" {
		board = "(no community cards)"
	}
	board += " | Pot: " + strconv.Itoa(view.Pot) + " | " + string(view.Phase)

	return pterm.DefaultHeader.WithBackgroundStyle(pterm.BgGreen.ToStyle()).Sprint(board)
}

func promptAction() (kind string, amount int) {
	actions := []string{"Fold", "Call", "Raise", "AllIn"}

	for {
		selected, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText("Select your next action").
			WithOptions(actions).Show()

		switch selected {
		case "Fold":
			kind = "fold"
		case "Call":
			kind = "call"
		case "Raise":
			kind = "raise"
			raw, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter the amount to raise").Show()
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				pterm.Error.Println("Raise amount must be a positive number")
				continue
			}
			amount = parsed
		case "AllIn":
			kind = "allin"
		}

		if confirm, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText(pterm.Sprintf("Confirm to %s?", selected)).
			WithDefaultValue(true).Show(); confirm {
			return kind, amount
		}
		pterm.Info.Println("Action cancelled.")
	}
}
