package domain

import "github.com/pokerlabs/holdemd/cards"

// Player represents a player seated at a table. Seating order is turn order,
// so the player's position in Table.Players is its seat.
type Player struct {
	ID    string
	Name  string
	Chips int

	// Per-hand state, reset by resetForNewHand.
	Hand       cards.Stack
	CurrentBet int // chips committed this betting round
	TotalBet   int // chips committed this hand
	Folded     bool
	AllIn      bool
	HasActed   bool // has responded to the current highest bet this round

	// Showdown annotations, valid only after settlement.
	Winner          bool
	HandDescription string
	BestFive        cards.Stack
}

// resetForNewHand clears all per-hand state. Chips persist across hands.
func (p *Player) resetForNewHand() {
	p.Hand = nil
	p.CurrentBet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.HasActed = false
	p.Winner = false
	p.HandDescription = ""
	p.BestFive = nil
}

// commit moves amount from the player's stack into the current and total
// bets. Callers clamp amount to the stack beforehand.
func (p *Player) commit(amount int) {
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
}

// canAct reports whether the player is still able to make betting decisions.
func (p *Player) canAct() bool {
	return !p.Folded && !p.AllIn
}
