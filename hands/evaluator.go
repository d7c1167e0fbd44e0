// Package hands adapts an external hand-evaluation oracle for the betting
// engine. The engine never ranks cards itself: it hands seven cards per
// contender to the oracle and asks it to pick the winners.
package hands

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/pokerlabs/holdemd/cards"
)

// RankedHand is the oracle's verdict for one player's seven cards.
type RankedHand struct {
	PlayerID    string
	Description string      // e.g. "two pair, kings and fives"
	BestFive    cards.Stack // the five cards making the best hand
	score       int16
}

// Evaluator ranks seven-card combinations and breaks ties between them.
// Implementations must be pure: no side effects, same input same output.
type Evaluator interface {
	Rank(playerID string, seven cards.Stack) (RankedHand, error)
	Winners(ranked []RankedHand) []RankedHand
}

// SevenCardEvaluator evaluates hands with the paulhankin/poker lookup tables.
type SevenCardEvaluator struct{}

// NewEvaluator returns the default oracle implementation.
func NewEvaluator() *SevenCardEvaluator {
	return &SevenCardEvaluator{}
}

// suit order used by the oracle library: clubs, diamonds, hearts, spades
func oracleSuit(s cards.Suit) (uint8, error) {
	switch s {
	case cards.Clubs:
		return 0, nil
	case cards.Diamonds:
		return 1, nil
	case cards.Hearts:
		return 2, nil
	case cards.Spades:
		return 3, nil
	}
	return 0, fmt.Errorf("invalid suit %q", s)
}

// rank order used by the oracle library: ace is 1, king is 13
func oracleRank(v cards.Value) (uint8, error) {
	switch v {
	case cards.Ace:
		return 1, nil
	case cards.Two:
		return 2, nil
	case cards.Three:
		return 3, nil
	case cards.Four:
		return 4, nil
	case cards.Five:
		return 5, nil
	case cards.Six:
		return 6, nil
	case cards.Seven:
		return 7, nil
	case cards.Eight:
		return 8, nil
	case cards.Nine:
		return 9, nil
	case cards.Ten:
		return 10, nil
	case cards.Jack:
		return 11, nil
	case cards.Queen:
		return 12, nil
	case cards.King:
		return 13, nil
	}
	return 0, fmt.Errorf("invalid value %q", v)
}

func toOracleCard(c cards.Card) (poker.Card, error) {
	suit, err := oracleSuit(c.Suit)
	if err != nil {
		return 0, err
	}
	rank, err := oracleRank(c.Value)
	if err != nil {
		return 0, err
	}
	return poker.MakeCard(poker.Suit(suit), poker.Rank(rank))
}

// Rank evaluates a player's two hole cards plus the five community cards.
func (e *SevenCardEvaluator) Rank(playerID string, seven cards.Stack) (RankedHand, error) {
	if len(seven) != 7 {
		return RankedHand{}, fmt.Errorf("expected 7 cards, got %d", len(seven))
	}

	var hand [7]poker.Card
	for i, c := range seven {
		oc, err := toOracleCard(c)
		if err != nil {
			return RankedHand{}, fmt.Errorf("card %s: %w", c, err)
		}
		hand[i] = oc
	}

	description, err := poker.Describe(hand[:])
	if err != nil {
		return RankedHand{}, fmt.Errorf("describe hand: %w", err)
	}

	return RankedHand{
		PlayerID:    playerID,
		Description: description,
		BestFive:    bestFive(seven, &hand),
		score:       poker.Eval7(&hand),
	}, nil
}

// bestFive finds the five-card subset with the highest score among the
// 21 combinations of the seven cards.
func bestFive(seven cards.Stack, hand *[7]poker.Card) cards.Stack {
	var (
		best      cards.Stack
		bestScore int16 = -1
	)

	for skipA := 0; skipA < 7; skipA++ {
		for skipB := skipA + 1; skipB < 7; skipB++ {
			var five [5]poker.Card
			subset := make(cards.Stack, 0, 5)
			n := 0
			for i := 0; i < 7; i++ {
				if i == skipA || i == skipB {
					continue
				}
				five[n] = hand[i]
				subset = append(subset, seven[i])
				n++
			}
			if score := poker.Eval5(&five); score > bestScore {
				bestScore = score
				best = subset
			}
		}
	}

	return best
}

// Winners selects the best-ranked hands, returning more than one on a tie.
// Input order is preserved among the winners.
func (e *SevenCardEvaluator) Winners(ranked []RankedHand) []RankedHand {
	if len(ranked) == 0 {
		return nil
	}

	best := ranked[0].score
	for _, rh := range ranked[1:] {
		if rh.score > best {
			best = rh.score
		}
	}

	var winners []RankedHand
	for _, rh := range ranked {
		if rh.score == best {
			winners = append(winners, rh)
		}
	}
	return winners
}
