package domain

// ActionKind is the closed set of betting actions a player can take.
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCall  ActionKind = "call"
	ActionRaise ActionKind = "raise"
	ActionAllIn ActionKind = "allin"
)

// Action is one player decision handed to the betting engine. Amount is
// only meaningful for raises; a call matches the table's highest bet and an
// all-in always commits the player's entire remaining stack.
type Action struct {
	Kind   ActionKind
	Amount int
}

// Fold gives up the hand.
func Fold() Action {
	return Action{Kind: ActionFold}
}

// Call matches the current highest bet (a check when nothing is owed).
func Call() Action {
	return Action{Kind: ActionCall}
}

// Raise increases the current highest bet by amount.
func Raise(amount int) Action {
	return Action{Kind: ActionRaise, Amount: amount}
}

// AllIn commits the player's whole remaining stack.
func AllIn() Action {
	return Action{Kind: ActionAllIn}
}

// ActionKindFromString maps a wire-level action name onto the closed set.
func ActionKindFromString(s string) (ActionKind, bool) {
	switch ActionKind(s) {
	case ActionFold, ActionCall, ActionRaise, ActionAllIn:
		return ActionKind(s), true
	}
	return "", false
}
