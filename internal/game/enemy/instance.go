package enemy

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/deckbound/internal/game/status"
)

// Instance is a live enemy occupying one slot of an encounter roster.
// An instance with CurrentHP <= 0 is removed from the roster; absence is
// death, there is no dead state.
type Instance struct {
	// ID uniquely identifies this runtime instance.
	ID string
	// TemplateID is the source template's ID, or empty for ad-hoc enemies.
	TemplateID string
	// Name is copied from the template for display.
	Name string
	// CurrentHP is the instance's current hit points. Never exceeds MaxHP.
	CurrentHP int
	// MaxHP is the instance's maximum hit points.
	MaxHP int
	// Effects holds the enemy's block, strength, and debuff counters.
	// Enemy block persists until consumed, unlike player block.
	Effects status.Effects
	// Intent is the telegraphed next action, regenerated each enemy turn.
	// Nil until the first generation.
	Intent *Intent
	// Moves is the behavior table copied from the template at spawn time.
	// Empty means intents come from the generic fallback policy.
	Moves []Move
}

// NewInstance creates a live enemy from a template.
//
// Precondition: tmpl must be non-nil and validated.
// Postcondition: CurrentHP equals tmpl.MaxHP; the instance has a unique ID.
func NewInstance(tmpl *Template) *Instance {
	moves := make([]Move, len(tmpl.Moves))
	copy(moves, tmpl.Moves)
	return &Instance{
		ID:         uuid.NewString(),
		TemplateID: tmpl.ID,
		Name:       tmpl.Name,
		CurrentHP:  tmpl.MaxHP,
		MaxHP:      tmpl.MaxHP,
		Effects:    status.Effects{Strength: tmpl.Strength},
		Moves:      moves,
	}
}

// IsDead reports whether this enemy has been reduced to 0 hit points.
//
// Postcondition: Returns true iff CurrentHP <= 0.
func (e *Instance) IsDead() bool {
	return e.CurrentHP <= 0
}

// ApplyDamage routes damage through the enemy's block and reduces CurrentHP
// by the remainder, flooring at zero. Returns the block consumed and the hit
// points lost.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHP >= 0; Effects.Block >= 0.
func (e *Instance) ApplyDamage(amount int) (blocked, hpLost int) {
	before := e.Effects.Block
	remainder := e.Effects.AbsorbDamage(amount)
	blocked = before - e.Effects.Block
	if remainder > e.CurrentHP {
		remainder = e.CurrentHP
	}
	e.CurrentHP -= remainder
	return blocked, remainder
}
