package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewHidesOtherHoleCards(t *testing.T) {
	table := newTestTable(t, 2)
	require.NoError(t, table.StartHand())

	view := table.ViewFor("p1")

	require.Len(t, view.Players, 2)
	assert.Len(t, view.Players[0].HoleCards, 2, "viewers see their own cards")
	assert.Empty(t, view.Players[1].HoleCards, "opponents' cards stay hidden mid-hand")
}

func TestViewExposesPublicState(t *testing.T) {
	table := newTestTable(t, 2)
	require.NoError(t, table.StartHand())
	require.NoError(t, table.ApplyAction("p1", Raise(50)))

	view := table.ViewFor("p2")

	assert.Equal(t, table.ID, view.TableID)
	assert.Equal(t, PhasePreflop, view.Phase)
	assert.Equal(t, 50, view.Pot)
	assert.Equal(t, "p2", view.CurrentPlayerID)
	assert.Equal(t, 50, view.Players[0].CurrentBet)
	assert.Equal(t, 950, view.Players[0].Chips)
	assert.False(t, view.Players[0].IsTurn)
	assert.True(t, view.Players[1].IsTurn)
}

func TestViewRevealsContendersAtShowdown(t *testing.T) {
	table := newTestTable(t, 2)
	require.NoError(t, table.StartHand())

	// check the hand down to showdown
	for i := 0; i < 4; i++ {
		require.NoError(t, table.ApplyAction("p1", Call()))
		require.NoError(t, table.ApplyAction("p2", Call()))
	}
	require.Equal(t, PhaseShowdown, table.Phase)

	view := table.ViewFor("p1")
	assert.Len(t, view.Players[0].HoleCards, 2)
	assert.Len(t, view.Players[1].HoleCards, 2, "showdown reveals every contender's cards")
	assert.Empty(t, view.CurrentPlayerID)
}

func TestViewKeepsFoldedHandsHiddenAtShowdown(t *testing.T) {
	table := newTestTable(t, 3)
	require.NoError(t, table.StartHand())

	require.NoError(t, table.ApplyAction("p1", Fold()))
	// p2 and p3 check down to showdown
	for i := 0; i < 4; i++ {
		require.NoError(t, table.ApplyAction("p2", Call()))
		require.NoError(t, table.ApplyAction("p3", Call()))
	}
	require.Equal(t, PhaseShowdown, table.Phase)

	view := table.ViewFor("p2")
	assert.Empty(t, view.Players[0].HoleCards, "folded players never show their cards")
	assert.Len(t, view.Players[1].HoleCards, 2)
	assert.Len(t, view.Players[2].HoleCards, 2)
}

func TestViewIsSerializableForAnyViewer(t *testing.T) {
	table := newTestTable(t, 2)
	require.NoError(t, table.StartHand())

	// an unknown viewer gets the public projection only
	view := table.ViewFor("spectator")
	for _, pv := range view.Players {
		assert.Empty(t, pv.HoleCards)
	}
}
