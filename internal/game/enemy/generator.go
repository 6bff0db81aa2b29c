package enemy

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deckbound/internal/game/dice"
)

// Generic fallback policy bounds, used when an enemy has no behavior table.
const (
	fallbackMin = 5
	fallbackMax = 9
)

// Snapshot is the enemy state visible to behavior preconditions.
type Snapshot struct {
	HP    int
	MaxHP int
	Block int
	Turn  int
}

// PreconditionEvaluator evaluates a named behavior precondition against an
// enemy snapshot. Implemented by the scripting manager; a nil evaluator means
// every scripted row is treated as eligible.
type PreconditionEvaluator interface {
	// EvalPrecondition calls the named Lua function with the snapshot and
	// returns its boolean result. Returns an error if the function is
	// missing or fails.
	EvalPrecondition(name string, snap Snapshot) (bool, error)
}

// Generator produces enemy intents from behavior tables, falling back to a
// generic attack/block policy when no table is supplied.
//
// Invariant: src must not be nil; eval and logger may be nil.
type Generator struct {
	src    dice.Source
	eval   PreconditionEvaluator
	logger *zap.Logger
}

// NewGenerator constructs a Generator.
//
// Precondition: src must not be nil.
func NewGenerator(src dice.Source, eval PreconditionEvaluator, logger *zap.Logger) *Generator {
	if src == nil {
		panic("enemy.NewGenerator: src must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{src: src, eval: eval, logger: logger}
}

// Generate picks the enemy's next intent and stores it on the instance.
// Eligible behavior-table rows (precondition absent, evaluator absent, or
// precondition true) are selected from uniformly at random. Rows whose
// precondition errors are skipped and logged. An empty or fully filtered
// table falls back to the generic policy: two-thirds attack, one-third block,
// with values uniform in [5, 9].
//
// The returned intent is the exact intent later executed; there is no hidden
// divergence between what the player is shown and what runs.
//
// Precondition: e must not be nil.
// Postcondition: e.Intent is non-nil and equal to the returned intent.
func (g *Generator) Generate(e *Instance, turn int) Intent {
	eligible := g.eligibleMoves(e, turn)

	var intent Intent
	if len(eligible) == 0 {
		intent = g.fallbackIntent()
	} else {
		m := eligible[g.src.Intn(len(eligible))]
		intent = Intent{Kind: m.Kind, Value: m.Value, Effect: m.Effect}
	}

	e.Intent = &intent
	return intent
}

func (g *Generator) eligibleMoves(e *Instance, turn int) []Move {
	var eligible []Move
	for _, m := range e.Moves {
		if m.Precondition == "" || g.eval == nil {
			eligible = append(eligible, m)
			continue
		}
		snap := Snapshot{HP: e.CurrentHP, MaxHP: e.MaxHP, Block: e.Effects.Block, Turn: turn}
		ok, err := g.eval.EvalPrecondition(m.Precondition, snap)
		if err != nil {
			g.logger.Warn("behavior precondition failed; skipping move",
				zap.String("enemy", e.Name),
				zap.String("precondition", m.Precondition),
				zap.Error(err),
			)
			continue
		}
		if ok {
			eligible = append(eligible, m)
		}
	}
	return eligible
}

func (g *Generator) fallbackIntent() Intent {
	value := dice.Between(g.src, fallbackMin, fallbackMax)
	if g.src.Intn(3) < 2 {
		return Intent{Kind: IntentAttack, Value: value}
	}
	return Intent{Kind: IntentBlock, Value: value}
}
