package cards

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"A♠", Card{Suit: Spades, Value: Ace}},
		{"As", Card{Suit: Spades, Value: Ace}},
		{"AS", Card{Suit: Spades, Value: Ace}},
		{"10♥", Card{Suit: Hearts, Value: Ten}},
		{"Th", Card{Suit: Hearts, Value: Ten}},
		{"Kd", Card{Suit: Diamonds, Value: King}},
		{"2c", Card{Suit: Clubs, Value: Two}},
		{"Q♣", Card{Suit: Clubs, Value: Queen}},
	}

	for _, tc := range tests {
		got, err := CardFromString(tc.in)
		require.NoError(t, err, "parsing %q", tc.in)
		require.True(t, got.Equals(tc.want), "parsing %q: got %s", tc.in, got)
	}
}

func TestCardFromStringInvalid(t *testing.T) {
	for _, in := range []string{"", "A", "Ax", "1s", "11h", "♠A", "♠"} {
		_, err := CardFromString(in)
		require.Error(t, err, "expected %q to be rejected", in)
	}
}

func TestCardString(t *testing.T) {
	require.Equal(t, "A♠", Card{Suit: Spades, Value: Ace}.String())
	require.Equal(t, "10♦", Card{Suit: Diamonds, Value: Ten}.String())
}

func TestMustCardPanicsOnGarbage(t *testing.T) {
	require.Panics(t, func() { MustCard("zz") })
}

func TestStackContains(t *testing.T) {
	s := NewStack(MustCard("As"), MustCard("Kd"))
	require.True(t, s.Contains(MustCard("Kd")))
	require.False(t, s.Contains(MustCard("Kh")))
}
