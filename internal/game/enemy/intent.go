package enemy

import "fmt"

// IntentKind identifies the telegraphed action an enemy will take on its
// next turn.
type IntentKind string

const (
	IntentAttack IntentKind = "attack"
	IntentBlock  IntentKind = "block"
	IntentBuff   IntentKind = "buff"
	IntentDebuff IntentKind = "debuff"
)

// Intent is the tagged variant shown to the player ahead of time and executed
// unchanged on the enemy's turn. The shown intent and the executed intent are
// always the same value.
type Intent struct {
	Kind IntentKind
	// Value is the attack damage, block gained, or effect magnitude.
	Value int
	// Effect names the buff/debuff applied; empty for attack and block.
	Effect string
}

// String returns a human-readable intent label for logging and presentation.
func (i Intent) String() string {
	switch i.Kind {
	case IntentAttack:
		return fmt.Sprintf("attack %d", i.Value)
	case IntentBlock:
		return fmt.Sprintf("block %d", i.Value)
	case IntentBuff:
		return fmt.Sprintf("buff %s %d", i.Effect, i.Value)
	case IntentDebuff:
		return fmt.Sprintf("debuff %s %d", i.Effect, i.Value)
	default:
		return "unknown"
	}
}
