// Package combat implements the encounter engine for Deckbound: the combat
// session aggregate, the card effect resolver, and the turn sequencer.
// A session is single-threaded and synchronous; every mutating call runs to
// completion before the next is accepted, and once a terminal phase is
// reached all further mutating calls are safe no-ops.
package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deckbound/internal/game/card"
	"github.com/cory-johannsen/deckbound/internal/game/dice"
	"github.com/cory-johannsen/deckbound/internal/game/enemy"
	"github.com/cory-johannsen/deckbound/internal/game/modifier"
)

// DefaultHandSize is the number of cards drawn at the start of every player
// turn, including the opening hand.
const DefaultHandSize = 5

// Phase is the session's state-machine position.
type Phase int

const (
	// PhasePlayer accepts Resolve and EndTurn calls.
	PhasePlayer Phase = iota
	// PhaseEnemy exists only transiently inside EndTurn; enemy processing
	// is synchronous and not separately observable.
	PhaseEnemy
	// PhaseVictory is terminal: the enemy roster is empty.
	PhaseVictory
	// PhaseDefeat is terminal: the player's hit points reached 0.
	PhaseDefeat
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case PhasePlayer:
		return "player"
	case PhaseEnemy:
		return "enemy"
	case PhaseVictory:
		return "resolvingVictory"
	case PhaseDefeat:
		return "resolvingDefeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase accepts no further mutation.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Options configures optional session collaborators. The zero value is valid:
// crypto randomness, no modifier pipeline, no behavior scripting, nop logger.
type Options struct {
	// Source provides randomness for shuffles and intent generation.
	// Nil uses crypto/rand.
	Source dice.Source
	// Generator produces enemy intents. Nil builds a default generator
	// from Source with no precondition evaluator.
	Generator *enemy.Generator
	// Pipeline adjusts damage and corruption numbers. Nil is the identity.
	Pipeline *modifier.Pipeline
	// Logger receives debug/info logs. Nil uses a nop logger.
	Logger *zap.Logger
	// HandSize overrides DefaultHandSize when > 0.
	HandSize int
}

// Session is the aggregate root for one encounter. It owns the hand, draw,
// discard, and exhaust piles, the enemy roster, and the turn state machine.
// It is created when an encounter starts and discarded once the caller has
// consumed the terminal victory or defeat event; it is never reused.
//
// Invariant: |hand| + |draw| + |discard| + |exhausted| equals the size of the
// deck the session was created with, at every observation point.
type Session struct {
	logger   *zap.Logger
	src      dice.Source
	gen      *enemy.Generator
	pipeline *modifier.Pipeline
	handSize int

	player  *Player
	enemies []*enemy.Instance

	hand      []*card.Instance
	drawPile  []*card.Instance
	discard   []*card.Instance
	exhausted []*card.Instance
	deckSize  int

	turn  int
	phase Phase
	// terminal latches once a victory or defeat event has been emitted.
	// It rejects all further mutating calls; duplicate submissions from
	// asynchronous callers become no-ops rather than corrupting state.
	terminal bool
}

// NewSession starts an encounter with the given deck and enemy roster.
// The deck is shuffled into the draw pile, the opening hand is drawn, each
// enemy's first intent is generated, and turn 1 begins in the player phase.
// An empty deck yields an empty hand rather than an error.
//
// Precondition: player must be non-nil; enemies must contain only live
// instances.
// Postcondition: The returned events include the opening draws and the
// initial intent of every enemy.
func NewSession(deck []*card.Instance, enemies []*enemy.Instance, player *Player, opts Options) (*Session, []Event) {
	src := opts.Source
	if src == nil {
		src = dice.NewCryptoSource()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gen := opts.Generator
	if gen == nil {
		gen = enemy.NewGenerator(src, nil, logger)
	}
	handSize := opts.HandSize
	if handSize <= 0 {
		handSize = DefaultHandSize
	}

	roster := make([]*enemy.Instance, len(enemies))
	copy(roster, enemies)

	s := &Session{
		logger:   logger,
		src:      src,
		gen:      gen,
		pipeline: opts.Pipeline,
		handSize: handSize,
		player:   player,
		enemies:  roster,
		drawPile: make([]*card.Instance, len(deck)),
		deckSize: len(deck),
		turn:     1,
		phase:    PhasePlayer,
	}
	copy(s.drawPile, deck)
	s.shuffleDrawPile()

	var events []Event
	events = append(events, Event{Kind: EventTurnStarted, Value: s.turn})
	events = s.draw(handSize, events)
	for _, e := range s.enemies {
		intent := s.gen.Generate(e, s.turn)
		events = append(events, Event{Kind: EventIntentShown, Actor: e.ID, Intent: intent.String()})
	}
	return s, events
}

// shuffleDrawPile performs a Fisher–Yates shuffle of the draw pile in place.
func (s *Session) shuffleDrawPile() {
	dice.Shuffle(s.src, len(s.drawPile), func(i, j int) {
		s.drawPile[i], s.drawPile[j] = s.drawPile[j], s.drawPile[i]
	})
}

// draw moves up to n cards from the draw pile to the hand, reshuffling the
// discard pile into the draw pile whenever the draw pile runs out. Drawing
// stops short only when both piles are empty.
func (s *Session) draw(n int, events []Event) []Event {
	for i := 0; i < n; i++ {
		if len(s.drawPile) == 0 {
			if len(s.discard) == 0 {
				break
			}
			s.drawPile = s.discard
			s.discard = nil
			s.shuffleDrawPile()
			events = append(events, Event{Kind: EventReshuffle, Value: len(s.drawPile)})
		}
		top := s.drawPile[len(s.drawPile)-1]
		s.drawPile = s.drawPile[:len(s.drawPile)-1]
		s.hand = append(s.hand, top)
		events = append(events, Event{
			Kind:  EventCardDrawn,
			Actor: PlayerID,
			Card:  top.InstanceID,
		})
	}
	return events
}

// removeEnemy drops the enemy at index i from the roster. Positional indices
// above i shift down; callers holding indices must re-resolve them.
func (s *Session) removeEnemy(i int) {
	s.enemies = append(s.enemies[:i], s.enemies[i+1:]...)
}

// checkVictory transitions to PhaseVictory when the roster is empty. It runs
// after every card resolution, not only at turn boundaries, so a mid-turn
// lethal play terminates the session immediately.
//
// Postcondition: Returns events with a single victory event appended iff the
// transition happened on this call.
func (s *Session) checkVictory(events []Event) []Event {
	if s.terminal || len(s.enemies) > 0 {
		return events
	}
	s.phase = PhaseVictory
	s.terminal = true
	s.logger.Info("encounter won", zap.Int("turn", s.turn))
	return append(events, Event{Kind: EventVictory, Value: s.turn})
}

// enterDefeat transitions to PhaseDefeat.
//
// Postcondition: Returns events with a single defeat event appended iff the
// transition happened on this call.
func (s *Session) enterDefeat(events []Event) []Event {
	if s.terminal {
		return events
	}
	s.phase = PhaseDefeat
	s.terminal = true
	s.logger.Info("encounter lost", zap.Int("turn", s.turn))
	return append(events, Event{Kind: EventDefeat, Value: s.turn})
}

// Phase returns the session's current phase.
func (s *Session) Phase() Phase { return s.phase }

// Turn returns the current turn number, starting at 1.
func (s *Session) Turn() int { return s.turn }

// Player returns the player resource snapshot the session borrows.
func (s *Session) Player() *Player { return s.player }

// Enemies returns the live roster in positional order. The slice is a copy;
// the instances are shared.
func (s *Session) Enemies() []*enemy.Instance {
	out := make([]*enemy.Instance, len(s.enemies))
	copy(out, s.enemies)
	return out
}

// Hand returns the current hand in order. The slice is a copy.
func (s *Session) Hand() []*card.Instance {
	out := make([]*card.Instance, len(s.hand))
	copy(out, s.hand)
	return out
}

// PileSizes returns the sizes of the hand, draw, discard, and exhaust piles.
func (s *Session) PileSizes() (hand, draw, discard, exhausted int) {
	return len(s.hand), len(s.drawPile), len(s.discard), len(s.exhausted)
}

// DeckSize returns the number of card instances the session started with.
func (s *Session) DeckSize() int { return s.deckSize }
