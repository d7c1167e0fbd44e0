package domain

import (
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"

	"github.com/pokerlabs/holdemd/cards"
	"github.com/pokerlabs/holdemd/hands"
)

// settle ends the hand and distributes the pot. It runs exactly once per
// hand: either early (a single contender remains) or after the river round.
// Whatever happens, the hand finishes in the terminal phase: a settlement
// that cannot determine a winner is surfaced, never left hanging.
func (t *Table) settle() {
	t.Phase = PhaseShowdown

	contenders := t.contenders()
	if len(contenders) == 0 {
		// Unreachable by construction; surfaced rather than swallowed.
		t.logger.WithField("table", t.ID).Error("settlement with no contenders, pot left unresolved")
		t.logger.Debug(litter.Sdump(t.Players))
		return
	}

	if len(contenders) == 1 {
		winner := contenders[0]
		winner.Winner = true
		winner.Chips += t.Pot

		t.logger.WithFields(logrus.Fields{
			"table":  t.ID,
			"winner": winner.ID,
			"won":    t.Pot,
		}).Info("hand won uncontested")

		t.Pot = 0
		return
	}

	// The oracle ranks seven cards, so the board is run out when betting
	// ended before the river (all-in domination).
	if missing := 5 - len(t.CommunityCards); missing > 0 {
		dealt, err := t.Deck.Deal(missing)
		if err != nil {
			t.logger.WithFields(logrus.Fields{
				"table": t.ID,
				"cause": err,
			}).Error("board runout failed, pot left unresolved")
			return
		}
		t.CommunityCards = append(t.CommunityCards, dealt...)
	}

	ranked := make([]hands.RankedHand, 0, len(contenders))
	byID := make(map[string]*Player, len(contenders))
	for _, p := range contenders {
		seven := make(cards.Stack, 0, 7)
		seven = append(seven, p.Hand...)
		seven = append(seven, t.CommunityCards...)

		rh, err := t.evaluator.Rank(p.ID, seven)
		if err != nil {
			t.logger.WithFields(logrus.Fields{
				"table":  t.ID,
				"player": p.ID,
				"cause":  err,
			}).Error("hand evaluation failed, pot left unresolved")
			t.logger.Debug(litter.Sdump(seven))
			return
		}

		p.HandDescription = rh.Description
		p.BestFive = rh.BestFive
		ranked = append(ranked, rh)
		byID[p.ID] = p
	}

	winners := t.evaluator.Winners(ranked)
	if len(winners) == 0 {
		t.logger.WithField("table", t.ID).Error("oracle returned no winners, pot left unresolved")
		return
	}

	share := t.Pot / len(winners)
	remainder := t.Pot - share*len(winners)
	for _, w := range winners {
		p := byID[w.PlayerID]
		p.Winner = true
		p.Chips += share
	}
	if remainder > 0 {
		// Odd-chip policy is an open question; the remainder is dropped
		// but never silently.
		t.logger.WithFields(logrus.Fields{
			"table":     t.ID,
			"remainder": remainder,
			"winners":   len(winners),
		}).Warn("odd chips not distributed on split pot")
	}

	winnerIDs := make([]string, len(winners))
	for i, w := range winners {
		winnerIDs[i] = w.PlayerID
	}
	t.logger.WithFields(logrus.Fields{
		"table":   t.ID,
		"winners": winnerIDs,
		"share":   share,
	}).Info("hand settled at showdown")

	t.Pot = 0
}
