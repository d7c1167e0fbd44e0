package domain

import "github.com/pokerlabs/holdemd/cards"

// TableView is one viewer's projection of the table: everything public plus
// that viewer's own hole cards. Hole cards of other players appear only once
// the hand is over and their owner did not fold.
type TableView struct {
	TableID         string       `json:"tableId"`
	Name            string       `json:"name"`
	Phase           Phase        `json:"phase"`
	Pot             int          `json:"pot"`
	CommunityCards  cards.Stack  `json:"communityCards"`
	CurrentPlayerID string       `json:"currentPlayerId,omitempty"`
	Players         []PlayerView `json:"players"`
}

// PlayerView is the public face of one seat, with hole cards included only
// when the viewer is entitled to them.
type PlayerView struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Chips           int         `json:"chips"`
	CurrentBet      int         `json:"currentBet"`
	TotalBet        int         `json:"totalBet"`
	Folded          bool        `json:"folded"`
	AllIn           bool        `json:"allIn"`
	IsTurn          bool        `json:"isTurn"`
	Winner          bool        `json:"winner"`
	HoleCards       cards.Stack `json:"holeCards,omitempty"`
	HandDescription string      `json:"handDescription,omitempty"`
	BestFive        cards.Stack `json:"bestFive,omitempty"`
}

// ViewFor builds the table state as seen by the given viewer.
func (t *Table) ViewFor(viewerID string) TableView {
	view := TableView{
		TableID:        t.ID,
		Name:           t.Name,
		Phase:          t.Phase,
		Pot:            t.Pot,
		CommunityCards: t.CommunityCards,
	}

	if t.HandInProgress() && len(t.Players) > 0 {
		view.CurrentPlayerID = t.Players[t.CurrentPlayerIndex].ID
	}

	view.Players = make([]PlayerView, 0, len(t.Players))
	for i, p := range t.Players {
		pv := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			TotalBet:   p.TotalBet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			IsTurn:     t.HandInProgress() && i == t.CurrentPlayerIndex,
			Winner:     p.Winner,
		}

		if t.canSeeHoleCards(viewerID, p) {
			pv.HoleCards = p.Hand
			pv.HandDescription = p.HandDescription
			pv.BestFive = p.BestFive
		}

		view.Players = append(view.Players, pv)
	}

	return view
}

// canSeeHoleCards: owners always see their own cards; everyone sees the
// cards of players who reached the showdown without folding.
func (t *Table) canSeeHoleCards(viewerID string, p *Player) bool {
	if p.ID == viewerID {
		return true
	}
	return t.Phase == PhaseShowdown && !p.Folded
}
