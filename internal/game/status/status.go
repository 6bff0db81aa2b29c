// Package status defines the numeric combat statuses shared by the card
// resolver and the enemy intent executor: block absorption, flat strength and
// dexterity bonuses, and the vulnerable/weak turn-counters with their decay
// and damage-arithmetic rules.
package status

// Effects tracks the stacked combat statuses on a single actor.
// It is not safe for concurrent use; the owning session serialises access.
type Effects struct {
	// Block absorbs incoming damage 1:1 before hit-point loss.
	// Player block expires at each round boundary; enemy block persists
	// until consumed or the enemy is removed.
	Block int
	// Strength is a flat additive bonus to all damage the actor deals.
	// It does not decay.
	Strength int
	// Dexterity is a flat additive bonus to all block the actor gains from
	// card effects. It does not decay.
	Dexterity int
	// Vulnerable is a turn counter. While > 0, damage the actor receives is
	// multiplied by 1.5 and floored.
	Vulnerable int
	// Weak is a turn counter. While > 0, damage the actor deals is
	// multiplied by 0.75 and floored.
	Weak int
}

// GainBlock adds amount plus the actor's dexterity to Block.
//
// Precondition: amount >= 0.
// Postcondition: Block increases by amount + Dexterity (uncapped).
func (e *Effects) GainBlock(amount int) int {
	gained := amount + e.Dexterity
	if gained < 0 {
		gained = 0
	}
	e.Block += gained
	return gained
}

// AbsorbDamage consumes Block against an incoming hit and returns the
// remainder that carries through to hit points.
//
// Precondition: damage >= 0.
// Postcondition: Block >= 0; returned remainder >= 0; Block + remainder
// equals the pre-call Block + damage - min(Block, damage).
func (e *Effects) AbsorbDamage(damage int) int {
	if damage <= e.Block {
		e.Block -= damage
		return 0
	}
	remainder := damage - e.Block
	e.Block = 0
	return remainder
}

// ResetBlock zeroes Block. Called on the player at the round boundary after
// enemy processing; never called on enemies.
func (e *Effects) ResetBlock() {
	e.Block = 0
}

// AddVulnerable adds turns to the Vulnerable counter. Additive, never
// replacing the existing counter.
//
// Precondition: turns >= 0.
func (e *Effects) AddVulnerable(turns int) {
	e.Vulnerable += turns
}

// AddWeak adds turns to the Weak counter. Additive, never replacing.
//
// Precondition: turns >= 0.
func (e *Effects) AddWeak(turns int) {
	e.Weak += turns
}

// TickDebuffs decrements the Vulnerable and Weak counters by 1 each, flooring
// at 0. Called after the holder acts, so a 1-turn counter covers exactly one
// action.
//
// Postcondition: Vulnerable >= 0 and Weak >= 0.
func (e *Effects) TickDebuffs() {
	if e.Vulnerable > 0 {
		e.Vulnerable--
	}
	if e.Weak > 0 {
		e.Weak--
	}
}

// IsVulnerable reports whether the Vulnerable counter is active.
func (e *Effects) IsVulnerable() bool { return e.Vulnerable > 0 }

// IsWeak reports whether the Weak counter is active.
func (e *Effects) IsWeak() bool { return e.Weak > 0 }

// VulnerableDamage returns floor(d * 1.5) using integer arithmetic.
//
// Precondition: d >= 0.
// Postcondition: result == floor(d * 1.5) >= d.
func VulnerableDamage(d int) int {
	return d * 3 / 2
}

// WeakenedDamage returns floor(d * 0.75) using integer arithmetic.
//
// Precondition: d >= 0.
// Postcondition: result == floor(d * 0.75) <= d.
func WeakenedDamage(d int) int {
	return d * 3 / 4
}
