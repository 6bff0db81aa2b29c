// Package main provides the encounter simulator: it loads card, enemy, and
// region content, runs one full combat with a greedy autoplayer, and prints
// the outcome. Results can optionally be recorded to PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deckbound/internal/config"
	"github.com/cory-johannsen/deckbound/internal/game/card"
	"github.com/cory-johannsen/deckbound/internal/game/combat"
	"github.com/cory-johannsen/deckbound/internal/game/dice"
	"github.com/cory-johannsen/deckbound/internal/game/enemy"
	"github.com/cory-johannsen/deckbound/internal/game/modifier"
	"github.com/cory-johannsen/deckbound/internal/game/reward"
	"github.com/cory-johannsen/deckbound/internal/observability"
	"github.com/cory-johannsen/deckbound/internal/scripting"
	"github.com/cory-johannsen/deckbound/internal/storage/postgres"
)

// maxTurns aborts runaway encounters where neither side can finish the job.
const maxTurns = 200

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	deckSpec := flag.String("deck", "strike:5,defend:4,bash:1", "deck as comma-separated card_id:count pairs")
	enemySpec := flag.String("enemies", "gnawer,gnawer", "comma-separated enemy template ids")
	rewardsPath := flag.String("rewards", "content/rewards/standard.yaml", "path to the reward table YAML")
	record := flag.Bool("record", false, "record the result to PostgreSQL")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting encounter simulator",
		zap.String("deck", *deckSpec),
		zap.String("enemies", *enemySpec),
		zap.String("region", cfg.Game.Region),
		zap.Int("corruption", cfg.Game.Corruption),
	)

	// Load content
	cards, err := card.LoadDirectory(cfg.Content.CardsDir)
	if err != nil {
		logger.Fatal("loading cards", zap.Error(err))
	}
	enemyTemplates, err := enemy.LoadTemplates(cfg.Content.EnemiesDir)
	if err != nil {
		logger.Fatal("loading enemies", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("cards", len(cards.All())),
		zap.Int("enemies", len(enemyTemplates)),
	)

	// Resolve the active region, if any.
	var pipeline *modifier.Pipeline
	if cfg.Game.Region != "" {
		regions, err := modifier.LoadRegions(cfg.Content.RegionsDir)
		if err != nil {
			logger.Fatal("loading regions", zap.Error(err))
		}
		region, ok := modifier.FindRegion(regions, cfg.Game.Region)
		if !ok {
			logger.Fatal("unknown region", zap.String("region", cfg.Game.Region))
		}
		pipeline = modifier.NewPipeline(region, cfg.Game.Corruption)
	}

	// Behavior scripts are optional: without them, enemies fall back to
	// unconditional move tables.
	src := dice.NewCryptoSource()
	var gen *enemy.Generator
	if cfg.Content.ScriptsDir != "" {
		if _, statErr := os.Stat(cfg.Content.ScriptsDir); statErr == nil {
			mgr := scripting.NewManager(logger)
			if err := mgr.LoadDirectory(cfg.Content.ScriptsDir, cfg.Content.ScriptInstructionLimit); err != nil {
				logger.Fatal("loading behavior scripts", zap.Error(err))
			}
			defer mgr.Close()
			gen = enemy.NewGenerator(src, mgr, logger)
		}
	}

	deck, err := buildDeck(cards, *deckSpec)
	if err != nil {
		logger.Fatal("building deck", zap.Error(err))
	}
	roster, err := buildRoster(enemyTemplates, *enemySpec)
	if err != nil {
		logger.Fatal("building enemy roster", zap.Error(err))
	}

	player := combat.NewPlayer(cfg.Game.StartingHP, cfg.Game.MaxHP, cfg.Game.MaxEnergy)
	session, events := combat.NewSession(deck, roster, player, combat.Options{
		Source:    src,
		Generator: gen,
		Pipeline:  pipeline,
		Logger:    logger,
		HandSize:  cfg.Game.HandSize,
	})

	// At high corruption, displayed damage numbers flicker before settling
	// on the authoritative value. Combat arithmetic is unaffected.
	distortion := modifier.NewDistortion(cfg.Game.Corruption, src)
	printEvents(distortion, events)

	cardsPlayed, corruptedPlayed, enemiesDefeated := autoplay(session, distortion)

	logger.Info("encounter finished",
		zap.String("outcome", session.Phase().String()),
		zap.Int("turns", session.Turn()),
		zap.Int("player_hp", player.CurrentHP),
		zap.Int("cards_played", cardsPlayed),
		zap.Duration("elapsed", time.Since(start)),
	)

	// Corrupted card use feeds the run's corruption, scaled by the region.
	if gain := pipeline.CorruptionGainModifier(corruptedPlayed); gain > 0 {
		logger.Info("corruption gained", zap.Int("gain", gain))
	}

	var pkg reward.Package
	if session.Phase() == combat.PhaseVictory {
		table, err := reward.LoadTable(*rewardsPath)
		if err != nil {
			logger.Fatal("loading reward table", zap.Error(err))
		}
		pkg = reward.Generate(table, src)
		fmt.Printf("rewards: %d currency, card options %v, %d items\n",
			pkg.Currency, pkg.CardOptions, len(pkg.Items))
	}

	if *record {
		if err := recordResult(cfg, session, player, pkg, cardsPlayed, enemiesDefeated, logger); err != nil {
			logger.Fatal("recording encounter", zap.Error(err))
		}
	}
}

// autoplay drives the session with a greedy policy: play the first affordable
// card each step (targeting the first enemy), end the turn when nothing is
// playable. Returns the cards played (total and corrupted) and enemies
// defeated. The card cap guards against degenerate decks that cycle without
// damage.
func autoplay(s *combat.Session, distortion *modifier.Distortion) (cardsPlayed, corruptedPlayed, enemiesDefeated int) {
	for !s.Phase().Terminal() && s.Turn() <= maxTurns && cardsPlayed < maxTurns*20 {
		played := false
		for idx, inst := range s.Hand() {
			target := combat.NoTarget
			if inst.Template.NeedsTarget() {
				if len(s.Enemies()) == 0 {
					continue
				}
				target = 0
			}
			res, events, ok := s.Resolve(idx, target)
			if !ok {
				continue
			}
			printEvents(distortion, events)
			cardsPlayed++
			if inst.Template.Corrupted {
				corruptedPlayed++
			}
			enemiesDefeated += len(res.DefeatedEnemies)
			played = true
			break
		}
		if played {
			continue
		}
		events, ok := s.EndTurn()
		if !ok {
			break
		}
		printEvents(distortion, events)
	}
	return cardsPlayed, corruptedPlayed, enemiesDefeated
}

// buildDeck expands a "card_id:count,..." spec against the registry.
func buildDeck(reg *card.Registry, spec string) ([]*card.Instance, error) {
	var templates []*card.Template
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, countStr, found := strings.Cut(part, ":")
		count := 1
		if found {
			n, err := strconv.Atoi(countStr)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("bad count in deck entry %q", part)
			}
			count = n
		}
		tmpl, ok := reg.Get(id)
		if !ok {
			return nil, fmt.Errorf("unknown card %q", id)
		}
		for i := 0; i < count; i++ {
			templates = append(templates, tmpl)
		}
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("deck spec %q produced no cards", spec)
	}
	return card.NewDeck(templates), nil
}

// buildRoster instantiates enemies from a comma-separated template id list.
func buildRoster(templates []*enemy.Template, spec string) ([]*enemy.Instance, error) {
	byID := make(map[string]*enemy.Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	var roster []*enemy.Instance
	for _, id := range strings.Split(spec, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		tmpl, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown enemy %q", id)
		}
		roster = append(roster, enemy.NewInstance(tmpl))
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("enemy spec %q produced no enemies", spec)
	}
	return roster, nil
}

func printEvents(distortion *modifier.Distortion, events []combat.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case combat.EventTurnStarted:
			fmt.Printf("-- turn %d --\n", ev.Value)
		case combat.EventDamageDealt:
			shown := distortion.Display(ev.Value)
			settled := distortion.Settle(ev.Value)
			if shown != settled {
				fmt.Printf("%s hits %s for %d… %d (%d blocked)\n", ev.Actor, ev.Target, shown, settled, ev.Blocked)
				continue
			}
			fmt.Printf("%s hits %s for %d (%d blocked)\n", ev.Actor, ev.Target, settled, ev.Blocked)
		case combat.EventIntentShown:
			fmt.Printf("%s intends: %s\n", ev.Actor, ev.Intent)
		case combat.EventEnemyDefeated:
			fmt.Printf("%s is defeated\n", ev.Target)
		case combat.EventVictory:
			fmt.Printf("victory on turn %d\n", ev.Value)
		case combat.EventDefeat:
			fmt.Printf("defeat on turn %d\n", ev.Value)
		}
	}
}

func recordResult(cfg config.Config, s *combat.Session, player *combat.Player, pkg reward.Package, cardsPlayed, enemiesDefeated int, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	outcome := postgres.OutcomeDefeat
	if s.Phase() == combat.PhaseVictory {
		outcome = postgres.OutcomeVictory
	}

	repo := postgres.NewEncounterRepository(pool.DB())
	enc, err := repo.Record(ctx, postgres.Encounter{
		Region:          cfg.Game.Region,
		Corruption:      cfg.Game.Corruption,
		Outcome:         outcome,
		Turns:           s.Turn(),
		PlayerHP:        player.CurrentHP,
		EnemiesDefeated: enemiesDefeated,
		CardsPlayed:     cardsPlayed,
		Currency:        pkg.Currency,
	})
	if err != nil {
		return err
	}
	logger.Info("encounter recorded", zap.String("id", enc.ID))
	return nil
}
