package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHeadsUpHandFlow walks a complete two-player hand step by step,
// checking the table state after every action.
func TestHeadsUpHandFlow(t *testing.T) {
	table := newTestTable(t, 2)
	p1 := table.GetPlayer("p1")
	p2 := table.GetPlayer("p2")
	require.Equal(t, 1000, p1.Chips)
	require.Equal(t, 1000, p2.Chips)

	// Hand starts: two hole cards each, preflop, empty pot, action on p1.
	require.NoError(t, table.StartHand())
	require.Equal(t, PhasePreflop, table.Phase)
	require.Zero(t, table.Pot)
	require.Len(t, p1.Hand, 2)
	require.Len(t, p2.Hand, 2)
	require.Equal(t, 0, table.CurrentPlayerIndex)

	// P1 checks (nothing owed): marked acted, turn moves to P2.
	require.NoError(t, table.ApplyAction("p1", Call()))
	assert.True(t, p1.HasActed)
	assert.Equal(t, 1, table.CurrentPlayerIndex)
	assert.Equal(t, PhasePreflop, table.Phase)

	// P2 checks: both acted with equal bets, the flop comes down.
	require.NoError(t, table.ApplyAction("p2", Call()))
	assert.Equal(t, PhaseFlop, table.Phase)
	assert.Len(t, table.CommunityCards, 3)
	assert.Zero(t, table.Pot)
	assert.Zero(t, p1.CurrentBet)
	assert.Zero(t, p2.CurrentBet)
	assert.False(t, p1.HasActed)
	assert.False(t, p2.HasActed)
	assert.Equal(t, 0, table.CurrentPlayerIndex)

	// P1 bets 50: pot grows, P2 owes a response.
	require.NoError(t, table.ApplyAction("p1", Raise(50)))
	assert.Equal(t, 50, table.Pot)
	assert.Equal(t, 50, p1.CurrentBet)
	assert.Equal(t, 950, p1.Chips)
	assert.False(t, p2.HasActed)
	assert.Equal(t, 0, table.LastAggressorIndex)
	assert.Equal(t, 1, table.CurrentPlayerIndex)

	// P2 folds: P1 is the lone contender and takes the pot back.
	require.NoError(t, table.ApplyAction("p2", Fold()))
	assert.Equal(t, PhaseShowdown, table.Phase)
	assert.True(t, p1.Winner)
	assert.Zero(t, table.Pot)

	// P1 won back their own bet; nobody gained or lost anything.
	assert.Equal(t, 1000, p1.Chips)
	assert.Equal(t, 1000, p2.Chips)
	assert.Equal(t, 2000, totalChips(table))
}
