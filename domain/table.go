package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pokerlabs/holdemd/cards"
	"github.com/pokerlabs/holdemd/hands"
)

// Phase is the shared stage of a hand.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePreflop  Phase = "preflop"
	PhaseFlop     Phase = "flop"
	PhaseTurn     Phase = "turn"
	PhaseRiver    Phase = "river"
	PhaseShowdown Phase = "showdown"
)

// noAggressor marks a betting round without a raise so far.
const noAggressor = -1

// TableRules defines the fixed parameters of a poker table
type TableRules struct {
	StartingStack int
	MaxPlayers    int
	// Seed makes deals deterministic when non-zero. Zero seeds from the
	// wall clock; tests pin a seed to get reproducible decks.
	Seed int64
}

// DefaultTableRules returns the rules used when a table is created without
// explicit configuration.
func DefaultTableRules() TableRules {
	return TableRules{
		StartingStack: 1000,
		MaxPlayers:    10,
	}
}

// Table is the aggregate root of one poker table: the seated players in turn
// order, the deck, the shared cards, the pot and the turn state. A table is
// reusable across hands; chip stacks persist, per-hand state does not.
//
// Table is not safe for concurrent use. The coordinator serializes access so
// that at most one action is applied per table at any instant.
type Table struct {
	ID    string
	Name  string
	Rules TableRules

	Players        []*Player
	Deck           *cards.Deck
	CommunityCards cards.Stack
	Pot            int
	Phase          Phase

	// CurrentPlayerIndex is the seat whose action is awaited.
	// LastAggressorIndex is the seat that last raised, or noAggressor.
	CurrentPlayerIndex int
	LastAggressorIndex int

	evaluator hands.Evaluator
	logger    logrus.FieldLogger
}

// NewTable creates a table with the given rules. A nil evaluator defaults to
// the seven-card oracle, a nil logger to the logrus standard logger.
func NewTable(name string, rules TableRules, evaluator hands.Evaluator, logger logrus.FieldLogger) *Table {
	if evaluator == nil {
		evaluator = hands.NewEvaluator()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if rules.MaxPlayers <= 0 {
		rules.MaxPlayers = DefaultTableRules().MaxPlayers
	}
	if rules.StartingStack <= 0 {
		rules.StartingStack = DefaultTableRules().StartingStack
	}

	return &Table{
		ID:                 uuid.NewString(),
		Name:               name,
		Rules:              rules,
		Phase:              PhaseWaiting,
		LastAggressorIndex: noAggressor,
		evaluator:          evaluator,
		logger:             logger,
	}
}

// Seat adds a player to the table. Seating the same identity twice is
// idempotent: the existing seat is kept and no error is returned.
func (t *Table) Seat(playerID, name string) error {
	for _, p := range t.Players {
		if p.ID == playerID {
			return nil
		}
	}

	if len(t.Players) >= t.Rules.MaxPlayers {
		return ErrTableFull
	}

	t.Players = append(t.Players, &Player{
		ID:    playerID,
		Name:  name,
		Chips: t.Rules.StartingStack,
	})

	t.logger.WithFields(logrus.Fields{
		"table":  t.ID,
		"player": playerID,
	}).Debug("player seated")

	return nil
}

// HandInProgress reports whether a hand is currently being played.
func (t *Table) HandInProgress() bool {
	return t.Phase != PhaseWaiting && t.Phase != PhaseShowdown
}

// StartHand deals a fresh hand: new shuffled deck, two hole cards per
// player, empty board, pot at zero, action on the first seat. Requires at
// least one seated player and no hand in progress.
func (t *Table) StartHand() error {
	if len(t.Players) == 0 {
		return ErrNoPlayers
	}
	if t.HandInProgress() {
		return ErrHandInProgress
	}

	t.Deck = cards.NewDeck()
	t.Deck.Shuffle(t.Rules.Seed)
	t.CommunityCards = nil
	t.Pot = 0
	t.LastAggressorIndex = noAggressor

	for _, p := range t.Players {
		p.resetForNewHand()
	}

	for _, p := range t.Players {
		hand, err := t.Deck.Deal(2)
		if err != nil {
			return t.abortHand(fmt.Errorf("dealing hole cards: %w", err))
		}
		p.Hand = hand
	}

	t.Phase = PhasePreflop
	t.CurrentPlayerIndex = t.firstEligibleSeat()

	t.logger.WithFields(logrus.Fields{
		"table":   t.ID,
		"players": len(t.Players),
	}).Info("hand started")

	return nil
}

// abortHand cancels the current hand after an unrecoverable fault (deck
// underflow). The table returns to waiting and can start a fresh hand.
func (t *Table) abortHand(cause error) error {
	t.logger.WithFields(logrus.Fields{
		"table": t.ID,
		"cause": cause,
	}).Error("hand aborted")

	for _, p := range t.Players {
		// return this hand's wagers before clearing them
		p.Chips += p.TotalBet
		p.resetForNewHand()
	}
	t.Pot = 0
	t.CommunityCards = nil
	t.Phase = PhaseWaiting
	t.LastAggressorIndex = noAggressor

	return cause
}

// RemovePlayer removes a seat. If the player is still in a running hand the
// departure is treated as an implicit fold through the normal fold path, so
// early-termination and round-completion checks stay consistent, and only
// then is the seat removed.
func (t *Table) RemovePlayer(playerID string) error {
	idx := t.playerIndex(playerID)
	if idx == -1 {
		return ErrUnknownPlayer
	}

	if t.HandInProgress() && !t.Players[idx].Folded {
		t.foldAndContinue(idx)
		// settlement may have paid the departing seat; chips leave with it
		idx = t.playerIndex(playerID)
	}

	t.Players = append(t.Players[:idx], t.Players[idx+1:]...)

	// Re-point seat indices past the removed seat.
	if t.CurrentPlayerIndex > idx {
		t.CurrentPlayerIndex--
	} else if t.CurrentPlayerIndex == idx {
		if len(t.Players) == 0 {
			t.CurrentPlayerIndex = 0
		} else {
			t.CurrentPlayerIndex %= len(t.Players)
		}
	}
	if t.LastAggressorIndex > idx {
		t.LastAggressorIndex--
	} else if t.LastAggressorIndex == idx {
		t.LastAggressorIndex = noAggressor
	}

	t.logger.WithFields(logrus.Fields{
		"table":  t.ID,
		"player": playerID,
	}).Debug("player left table")

	return nil
}

// GetPlayer returns the seated player with the given identity, or nil.
func (t *Table) GetPlayer(playerID string) *Player {
	if idx := t.playerIndex(playerID); idx != -1 {
		return t.Players[idx]
	}
	return nil
}

func (t *Table) playerIndex(playerID string) int {
	for i, p := range t.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// maxCurrentBet is the highest per-round wager on the table, computed fresh
// from every seat each time it is needed.
func (t *Table) maxCurrentBet() int {
	max := 0
	for _, p := range t.Players {
		if p.CurrentBet > max {
			max = p.CurrentBet
		}
	}
	return max
}

// contenders are the players still holding a claim on the pot.
func (t *Table) contenders() []*Player {
	var out []*Player
	for _, p := range t.Players {
		if !p.Folded {
			out = append(out, p)
		}
	}
	return out
}

// activeCount counts players who can still act: neither folded nor all-in.
func (t *Table) activeCount() int {
	n := 0
	for _, p := range t.Players {
		if p.canAct() {
			n++
		}
	}
	return n
}

// firstEligibleSeat returns the first seat in seating order that can act,
// or 0 when none can.
func (t *Table) firstEligibleSeat() int {
	for i, p := range t.Players {
		if p.canAct() {
			return i
		}
	}
	return 0
}

// nextEligibleSeat walks from the given seat, wrapping, and returns the next
// seat able to act. Returns from unchanged when a full cycle finds none.
func (t *Table) nextEligibleSeat(from int) int {
	n := len(t.Players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if t.Players[i].canAct() {
			return i
		}
	}
	return from
}
