package domain

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ApplyAction validates and applies one player action. It is the single
// entry point of the betting round engine: it enforces turn order, moves
// chips, detects early termination and round completion, and advances the
// phase or the turn pointer accordingly.
//
// A returned error means the action was rejected and nothing changed.
func (t *Table) ApplyAction(playerID string, action Action) error {
	idx := t.playerIndex(playerID)
	if idx == -1 {
		return ErrUnknownPlayer
	}
	if t.Phase == PhaseWaiting {
		return ErrNoHandInProgress
	}
	if t.Phase == PhaseShowdown {
		return ErrHandOver
	}

	p := t.Players[idx]
	if p.Folded {
		return ErrPlayerFolded
	}
	if p.AllIn {
		return ErrPlayerAllIn
	}
	if idx != t.CurrentPlayerIndex {
		return ErrOutOfTurn
	}

	switch action.Kind {
	case ActionFold:
		p.Folded = true
		p.HasActed = true

	case ActionCall:
		toCall := t.maxCurrentBet() - p.CurrentBet
		if toCall < 0 {
			toCall = 0
		}
		// Short stacks call for whatever they have left.
		if toCall >= p.Chips {
			toCall = p.Chips
			p.AllIn = true
		}
		p.commit(toCall)
		t.Pot += toCall
		p.HasActed = true

	case ActionRaise:
		if action.Amount <= 0 {
			return ErrInvalidAmount
		}
		total := (t.maxCurrentBet() - p.CurrentBet) + action.Amount
		if total >= p.Chips {
			// Not enough behind for the full raise: degenerates to an
			// all-in, which does not reopen action for the others.
			total = p.Chips
			p.AllIn = true
			p.commit(total)
			t.Pot += total
			p.HasActed = true
			break
		}
		p.commit(total)
		t.Pot += total
		// A raise reopens action: everyone still able to act must respond
		// to the new highest bet.
		t.LastAggressorIndex = idx
		for i, other := range t.Players {
			if i != idx && other.canAct() {
				other.HasActed = false
			}
		}
		p.HasActed = true

	case ActionAllIn:
		committed := p.Chips
		p.commit(committed)
		t.Pot += committed
		p.AllIn = true
		p.HasActed = true

	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidAmount, action.Kind)
	}

	t.logger.WithFields(logrus.Fields{
		"table":  t.ID,
		"player": playerID,
		"action": action.Kind,
		"pot":    t.Pot,
	}).Debug("action applied")

	t.advanceAfter(idx)
	return nil
}

// foldAndContinue folds the given seat outside the turn-enforced entry
// point. Departures use it so a leaving player's fold still runs the
// early-termination and round-completion checks.
func (t *Table) foldAndContinue(idx int) {
	p := t.Players[idx]
	p.Folded = true
	p.HasActed = true
	t.advanceAfter(idx)
}

// advanceAfter runs the shared post-action pipeline: early termination
// first, then round completion, otherwise the turn moves to the next seat
// still able to act.
func (t *Table) advanceAfter(idx int) {
	// At most one player can still be contested: the hand is decided now.
	// This covers everyone-folded-but-one as well as all-in domination.
	if t.activeCount() <= 1 {
		t.settle()
		return
	}

	if t.roundComplete() {
		t.advancePhase()
		return
	}

	if t.CurrentPlayerIndex == idx {
		t.CurrentPlayerIndex = t.nextEligibleSeat(idx)
	}
}

// roundComplete reports whether the current betting round is finished:
// every player still able to act has matched the highest bet and has acted
// since the last raise (a raise clears the acted flag of everyone else, so
// the aggressor-cycle condition is implied).
func (t *Table) roundComplete() bool {
	maxBet := t.maxCurrentBet()
	for _, p := range t.Players {
		if !p.canAct() {
			continue
		}
		if !p.HasActed || p.CurrentBet != maxBet {
			return false
		}
	}
	return true
}

// advancePhase moves the hand to the next street, dealing community cards
// as required, and resets the per-round betting state. At the river it
// settles instead of dealing.
func (t *Table) advancePhase() {
	switch t.Phase {
	case PhasePreflop:
		if !t.dealCommunity(3) {
			return
		}
		t.Phase = PhaseFlop
	case PhaseFlop:
		if !t.dealCommunity(1) {
			return
		}
		t.Phase = PhaseTurn
	case PhaseTurn:
		if !t.dealCommunity(1) {
			return
		}
		t.Phase = PhaseRiver
	case PhaseRiver:
		t.settle()
		return
	default:
		return
	}

	for _, p := range t.Players {
		p.CurrentBet = 0
		p.HasActed = false
	}
	t.LastAggressorIndex = noAggressor
	t.CurrentPlayerIndex = t.firstEligibleSeat()

	t.logger.WithFields(logrus.Fields{
		"table": t.ID,
		"phase": t.Phase,
		"board": t.CommunityCards.Strings(),
	}).Debug("betting round complete")
}

// dealCommunity deals n shared cards, aborting the hand on deck underflow.
// Returns false when the hand was aborted.
func (t *Table) dealCommunity(n int) bool {
	dealt, err := t.Deck.Deal(n)
	if err != nil {
		_ = t.abortHand(fmt.Errorf("dealing community cards: %w", err))
		return false
	}
	t.CommunityCards = append(t.CommunityCards, dealt...)
	return true
}
