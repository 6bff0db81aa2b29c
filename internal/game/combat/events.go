package combat

// EventKind identifies what happened during one resolution sub-step.
type EventKind string

const (
	EventEnergySpent   EventKind = "energy_spent"
	EventEnergyGained  EventKind = "energy_gained"
	EventDamageDealt   EventKind = "damage_dealt"
	EventBlockGained   EventKind = "block_gained"
	EventCardDrawn     EventKind = "card_drawn"
	EventReshuffle     EventKind = "reshuffle"
	EventHealed        EventKind = "healed"
	EventStatusApplied EventKind = "status_applied"
	EventCardDiscarded EventKind = "card_discarded"
	EventCardExhausted EventKind = "card_exhausted"
	EventEnemyDefeated EventKind = "enemy_defeated"
	EventIntentShown   EventKind = "intent_shown"
	EventTurnStarted   EventKind = "turn_started"
	EventVictory       EventKind = "victory"
	EventDefeat        EventKind = "defeat"
)

// PlayerID is the actor/target identifier for the player in emitted events.
const PlayerID = "player"

// Event records one observable state change. Events are observational only:
// presentation consumes them, but no core component depends on them for
// correctness. The emission order within a call matches resolution order.
type Event struct {
	Kind EventKind
	// Actor is the entity that caused the change: PlayerID or an enemy
	// instance ID.
	Actor string
	// Target is the entity affected, where one exists.
	Target string
	// Value is the numeric magnitude: damage after block for damage_dealt,
	// block gained, cards drawn, turns for status_applied, and so on.
	Value int
	// Blocked is the portion of a hit absorbed by block (damage_dealt only).
	Blocked int
	// Status names the applied status for status_applied events.
	Status string
	// Card is the card instance ID for card-scoped events.
	Card string
	// Intent is the human-readable intent label for intent_shown events.
	Intent string
}
