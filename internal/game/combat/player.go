package combat

import "github.com/cory-johannsen/deckbound/internal/game/status"

// Player is the player's combat resource snapshot for one encounter. Hit
// points persist across encounters and are owned by the surrounding run; the
// session borrows them and hands the final values back through the caller.
type Player struct {
	// CurrentHP is the player's current hit points. Never exceeds MaxHP.
	CurrentHP int
	// MaxHP is the player's maximum hit points.
	MaxHP int
	// Energy is the current energy available for card costs.
	// Invariant: 0 <= Energy <= MaxEnergy.
	Energy int
	// MaxEnergy is the per-turn energy refill target.
	MaxEnergy int
	// Effects holds the player's block, strength, and dexterity. Player
	// block absorbs the round's enemy attacks, then expires at the round
	// boundary.
	Effects status.Effects
}

// NewPlayer creates a player resource snapshot with full energy.
//
// Precondition: currentHP >= 1; maxHP >= currentHP; maxEnergy >= 0.
func NewPlayer(currentHP, maxHP, maxEnergy int) *Player {
	return &Player{
		CurrentHP: currentHP,
		MaxHP:     maxHP,
		Energy:    maxEnergy,
		MaxEnergy: maxEnergy,
	}
}

// IsDead reports whether the player has been reduced to 0 hit points.
func (p *Player) IsDead() bool {
	return p.CurrentHP <= 0
}

// ApplyDamage routes damage through the player's block and reduces CurrentHP
// by the remainder, flooring at zero. Returns block consumed and hp lost.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHP >= 0; Effects.Block >= 0.
func (p *Player) ApplyDamage(amount int) (blocked, hpLost int) {
	before := p.Effects.Block
	remainder := p.Effects.AbsorbDamage(amount)
	blocked = before - p.Effects.Block
	if remainder > p.CurrentHP {
		remainder = p.CurrentHP
	}
	p.CurrentHP -= remainder
	return blocked, remainder
}

// Heal restores hit points, capped at MaxHP. Returns the amount restored.
//
// Precondition: amount >= 0.
func (p *Player) Heal(amount int) int {
	healed := amount
	if p.CurrentHP+healed > p.MaxHP {
		healed = p.MaxHP - p.CurrentHP
	}
	p.CurrentHP += healed
	return healed
}

// GainEnergy adds energy, capped at MaxEnergy. Returns the amount gained.
//
// Precondition: amount >= 0.
func (p *Player) GainEnergy(amount int) int {
	gained := amount
	if p.Energy+gained > p.MaxEnergy {
		gained = p.MaxEnergy - p.Energy
	}
	p.Energy += gained
	return gained
}
