package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deckbound/internal/game/enemy"
	"github.com/cory-johannsen/deckbound/internal/game/status"
)

// EndTurn ends the player phase and runs enemy processing synchronously:
// every living enemy in roster order executes its stored intent against the
// player's remaining block, ticks its debuff counters, and generates its next
// intent. If the player survives, their block expires for the round, energy
// refills, the hand is discarded, a fresh hand is drawn, and the turn counter
// increments.
//
// A stored Weak or Vulnerable counter applies to the enemy's action this
// round and is decremented afterwards, so a counter of 1 covers exactly one
// enemy action (the counter the player just applied is not consumed before
// it has had any effect). Player block likewise absorbs this round's enemy
// attacks before expiring at the round boundary.
//
// Calling EndTurn outside the player phase or after a terminal transition is
// a no-op returning ok=false.
func (s *Session) EndTurn() ([]Event, bool) {
	if s.terminal || s.phase != PhasePlayer {
		return nil, false
	}

	s.phase = PhaseEnemy

	var events []Event
	for _, e := range s.enemies {
		if e.IsDead() {
			continue
		}
		events = s.executeIntent(e, events)
		e.Effects.TickDebuffs()

		intent := s.gen.Generate(e, s.turn+1)
		events = append(events, Event{Kind: EventIntentShown, Actor: e.ID, Intent: intent.String()})
	}

	if s.player.IsDead() {
		return s.enterDefeat(events), true
	}

	// Back to the player: block expires, refill, discard the hand, draw fresh.
	s.player.Effects.ResetBlock()
	s.player.Energy = s.player.MaxEnergy
	s.discard = append(s.discard, s.hand...)
	s.hand = nil
	events = s.draw(s.handSize, events)
	s.turn++
	s.phase = PhasePlayer
	events = append(events, Event{Kind: EventTurnStarted, Value: s.turn})

	s.logger.Debug("turn started",
		zap.Int("turn", s.turn),
		zap.Int("player_hp", s.player.CurrentHP),
		zap.Int("enemies", len(s.enemies)),
	)
	return events, true
}

// executeIntent runs one enemy's stored intent. The executed intent is the
// same value that was shown to the player; a missing intent (never generated)
// is generated on the spot before executing.
func (s *Session) executeIntent(e *enemy.Instance, events []Event) []Event {
	if e.Intent == nil {
		s.gen.Generate(e, s.turn)
	}
	intent := *e.Intent

	switch intent.Kind {
	case enemy.IntentAttack:
		dmg := intent.Value + e.Effects.Strength
		if e.Effects.IsWeak() {
			dmg = status.WeakenedDamage(dmg)
		}
		blocked, hpLost := s.player.ApplyDamage(dmg)
		events = append(events, Event{
			Kind:    EventDamageDealt,
			Actor:   e.ID,
			Target:  PlayerID,
			Value:   hpLost,
			Blocked: blocked,
		})

	case enemy.IntentBlock:
		e.Effects.Block += intent.Value
		events = append(events, Event{Kind: EventBlockGained, Actor: e.ID, Target: e.ID, Value: intent.Value})

	case enemy.IntentBuff:
		switch intent.Effect {
		case enemy.BuffStrength:
			e.Effects.Strength += intent.Value
		case enemy.BuffBlock:
			e.Effects.Block += intent.Value
		}
		events = append(events, Event{Kind: EventStatusApplied, Actor: e.ID, Target: e.ID, Status: intent.Effect, Value: intent.Value})

	case enemy.IntentDebuff:
		// blockBreak is the only shipped debuff: Vulnerable and Weak are
		// enemy-only statuses, so enemy debuffs strip player block instead.
		if intent.Effect == enemy.DebuffBlockBreak {
			broken := intent.Value
			if broken > s.player.Effects.Block {
				broken = s.player.Effects.Block
			}
			s.player.Effects.Block -= broken
			events = append(events, Event{Kind: EventStatusApplied, Actor: e.ID, Target: PlayerID, Status: intent.Effect, Value: broken})
		}
	}
	return events
}
