package hands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerlabs/holdemd/cards"
)

func seven(shorthand ...string) cards.Stack {
	out := make(cards.Stack, 0, len(shorthand))
	for _, s := range shorthand {
		out = append(out, cards.MustCard(s))
	}
	return out
}

func withBoard(hole []string, board []string) cards.Stack {
	return seven(append(append([]string{}, hole...), board...)...)
}

func TestRankRequiresSevenCards(t *testing.T) {
	e := NewEvaluator()
	_, err := e.Rank("p1", seven("As", "Kd"))
	require.Error(t, err)
}

func TestRankDescribesHand(t *testing.T) {
	e := NewEvaluator()

	rh, err := e.Rank("p1", seven("As", "Ad", "Ah", "Ac", "Ks", "2d", "3c"))
	require.NoError(t, err)

	assert.Equal(t, "p1", rh.PlayerID)
	assert.NotEmpty(t, rh.Description)
}

func TestRankBestFiveIsSubsetOfInput(t *testing.T) {
	e := NewEvaluator()

	input := seven("As", "Ad", "Ah", "Ac", "Ks", "2d", "3c")
	rh, err := e.Rank("p1", input)
	require.NoError(t, err)

	require.Len(t, rh.BestFive, 5)
	for _, c := range rh.BestFive {
		assert.True(t, input.Contains(c), "best five contains %s, not among the seven", c)
	}

	// quads plus the king kicker beat quads plus any lower kicker
	assert.True(t, rh.BestFive.Contains(cards.MustCard("Ks")))
	assert.False(t, rh.BestFive.Contains(cards.MustCard("2d")))
	assert.False(t, rh.BestFive.Contains(cards.MustCard("3c")))
}

func TestWinnersPicksStrongerHand(t *testing.T) {
	e := NewEvaluator()
	board := []string{"2h", "7d", "9c", "Jh", "Qs"}

	trips, err := e.Rank("trips", withBoard([]string{"9h", "9d"}, board))
	require.NoError(t, err)
	pair, err := e.Rank("pair", withBoard([]string{"Ah", "As"}, board))
	require.NoError(t, err)

	winners := e.Winners([]RankedHand{pair, trips})
	require.Len(t, winners, 1)
	assert.Equal(t, "trips", winners[0].PlayerID)
}

func TestWinnersTiePreservesOrder(t *testing.T) {
	e := NewEvaluator()

	// Both players play the board: identical straights.
	board := []string{"5h", "6d", "7c", "8s", "9h"}
	a, err := e.Rank("a", withBoard([]string{"2h", "2d"}, board))
	require.NoError(t, err)
	b, err := e.Rank("b", withBoard([]string{"3h", "3d"}, board))
	require.NoError(t, err)

	winners := e.Winners([]RankedHand{a, b})
	require.Len(t, winners, 2)
	assert.Equal(t, "a", winners[0].PlayerID)
	assert.Equal(t, "b", winners[1].PlayerID)
}

func TestWinnersEmptyInput(t *testing.T) {
	e := NewEvaluator()
	assert.Nil(t, e.Winners(nil))
}
