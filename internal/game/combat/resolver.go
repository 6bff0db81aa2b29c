package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deckbound/internal/game/card"
	"github.com/cory-johannsen/deckbound/internal/game/enemy"
	"github.com/cory-johannsen/deckbound/internal/game/status"
)

// Result summarises one card resolution for the caller.
type Result struct {
	// CardInstanceID is the played card's instance identity.
	CardInstanceID string
	// EnergySpent is the card's cost, deducted before any effect ran.
	EnergySpent int
	// DamageDealt is the total post-modifier damage delivered to enemies.
	// It counts the portion absorbed by block and any overkill beyond the
	// target's remaining hit points, so it reports the attack's magnitude,
	// not the hp delta.
	DamageDealt int
	// BlockGained is the block the player gained, dexterity included.
	BlockGained int
	// Exhausted is true when the card was removed from circulation instead
	// of discarded.
	Exhausted bool
	// DefeatedEnemies lists the instance IDs of enemies removed from the
	// roster during this resolution.
	DefeatedEnemies []string
}

// NoTarget is the target argument for cards that do not require one.
const NoTarget = -1

// targetSlot tracks a card's enemy target across the effect list. Once the
// enemy dies and leaves the roster, remaining targeted effects fizzle.
type targetSlot struct {
	enemy   *enemy.Instance
	removed bool
}

// live returns the target enemy while it remains on the roster, else nil.
func (t *targetSlot) live() *enemy.Instance {
	if t == nil || t.removed || t.enemy == nil || t.enemy.IsDead() {
		return nil
	}
	return t.enemy
}

// Resolve plays the card at handIndex against the enemy at the positional
// roster index target (NoTarget when the card needs none).
//
// Preconditions checked at runtime, each a recoverable no-op returning
// ok=false with the card left in hand and no energy spent:
//   - the session is in the player phase and not terminal;
//   - handIndex addresses a card in hand;
//   - the card's cost does not exceed current energy;
//   - a card that needs a target is given the index of a live enemy.
//
// Resolution order is fixed: energy cost, then the card's effects in template
// order, then the hand-to-discard (or exhaust) move, then the victory check.
// Each sub-step appends a typed Event; events are observational only and no
// core component depends on them for correctness.
func (s *Session) Resolve(handIndex, target int) (Result, []Event, bool) {
	if s.terminal || s.phase != PhasePlayer {
		return Result{}, nil, false
	}
	if handIndex < 0 || handIndex >= len(s.hand) {
		return Result{}, nil, false
	}
	inst := s.hand[handIndex]
	tmpl := inst.Template
	if tmpl.Cost > s.player.Energy {
		return Result{}, nil, false
	}
	if tmpl.NeedsTarget() && (target < 0 || target >= len(s.enemies)) {
		return Result{}, nil, false
	}

	res := Result{CardInstanceID: inst.InstanceID, EnergySpent: tmpl.Cost}
	var events []Event

	// 1. Deduct energy immediately.
	s.player.Energy -= tmpl.Cost
	events = append(events, Event{Kind: EventEnergySpent, Actor: PlayerID, Value: tmpl.Cost, Card: inst.InstanceID})

	var slot *targetSlot
	if target >= 0 && target < len(s.enemies) {
		slot = &targetSlot{enemy: s.enemies[target]}
	}

	for _, eff := range tmpl.Effects {
		switch eff.Kind {
		case card.EffectDamage:
			events = s.resolveDamage(inst, eff.Value, slot, &res, events)
		case card.EffectBlock:
			gained := s.player.Effects.GainBlock(eff.Value)
			res.BlockGained += gained
			events = append(events, Event{Kind: EventBlockGained, Actor: PlayerID, Target: PlayerID, Value: gained})
		case card.EffectDraw:
			events = s.draw(eff.Value, events)
		case card.EffectEnergy:
			gained := s.player.GainEnergy(eff.Value)
			events = append(events, Event{Kind: EventEnergyGained, Actor: PlayerID, Value: gained})
		case card.EffectHeal:
			healed := s.player.Heal(eff.Value)
			events = append(events, Event{Kind: EventHealed, Actor: PlayerID, Target: PlayerID, Value: healed})
		case card.EffectApplyVulnerable:
			if e := slot.live(); e != nil {
				e.Effects.AddVulnerable(eff.Value)
				events = append(events, Event{Kind: EventStatusApplied, Actor: PlayerID, Target: e.ID, Status: "vulnerable", Value: eff.Value})
			}
		case card.EffectApplyWeak:
			if e := slot.live(); e != nil {
				e.Effects.AddWeak(eff.Value)
				events = append(events, Event{Kind: EventStatusApplied, Actor: PlayerID, Target: e.ID, Status: "weak", Value: eff.Value})
			}
		case card.EffectStrengthGain:
			s.player.Effects.Strength += eff.Value
			events = append(events, Event{Kind: EventStatusApplied, Actor: PlayerID, Target: PlayerID, Status: "strength", Value: eff.Value})
		case card.EffectSelfDamage:
			blocked, hpLost := s.player.ApplyDamage(eff.Value)
			events = append(events, Event{Kind: EventDamageDealt, Actor: PlayerID, Target: PlayerID, Value: hpLost, Blocked: blocked})
		}
	}

	// 6. Move the card out of hand: discard, or remove permanently on exhaust.
	s.hand = append(s.hand[:handIndex], s.hand[handIndex+1:]...)
	if tmpl.Exhaust {
		s.exhausted = append(s.exhausted, inst)
		res.Exhausted = true
		events = append(events, Event{Kind: EventCardExhausted, Actor: PlayerID, Card: inst.InstanceID})
	} else {
		s.discard = append(s.discard, inst)
		events = append(events, Event{Kind: EventCardDiscarded, Actor: PlayerID, Card: inst.InstanceID})
	}

	s.logger.Debug("card resolved",
		zap.String("card", tmpl.ID),
		zap.Int("cost", tmpl.Cost),
		zap.Int("damage", res.DamageDealt),
		zap.Int("turn", s.turn),
	)

	// 7. Victory is checked after every resolution, mid-turn included.
	events = s.checkVictory(events)
	if !s.terminal && s.player.IsDead() {
		events = s.enterDefeat(events)
	}
	return res, events, true
}

// resolveDamage applies one damage effect in the fixed order: strength bonus,
// regional pipeline multiplier, vulnerable multiplier (floored), enemy block
// absorption, hp loss, and roster removal with index recomputation.
func (s *Session) resolveDamage(inst *card.Instance, base int, slot *targetSlot, res *Result, events []Event) []Event {
	e := slot.live()
	if e == nil {
		return events
	}

	dmg := base + s.player.Effects.Strength
	dmg = s.pipeline.ApplyDamage(dmg, inst.Template)
	if e.Effects.IsVulnerable() {
		dmg = status.VulnerableDamage(dmg)
	}

	blocked, hpLost := e.ApplyDamage(dmg)
	res.DamageDealt += dmg
	events = append(events, Event{
		Kind:    EventDamageDealt,
		Actor:   PlayerID,
		Target:  e.ID,
		Value:   hpLost,
		Blocked: blocked,
	})

	if e.IsDead() {
		for i, other := range s.enemies {
			if other == e {
				s.removeEnemy(i)
				break
			}
		}
		slot.removed = true
		res.DefeatedEnemies = append(res.DefeatedEnemies, e.ID)
		events = append(events, Event{Kind: EventEnemyDefeated, Actor: PlayerID, Target: e.ID})
	}
	return events
}
