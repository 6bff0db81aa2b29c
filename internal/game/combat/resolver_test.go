package combat_test

import (
	"testing"

	"github.com/cory-johannsen/deckbound/internal/game/card"
	"github.com/cory-johannsen/deckbound/internal/game/combat"
	"github.com/cory-johannsen/deckbound/internal/game/enemy"
	"github.com/cory-johannsen/deckbound/internal/game/modifier"
)

// TestDamage_VulnerableFloor: a vulnerable enemy takes floor(d * 1.5).
func TestDamage_VulnerableFloor(t *testing.T) {
	cases := []struct {
		base int
		want int
	}{
		{6, 9},
		{7, 10},
		{1, 1},
		{0, 0},
	}
	for _, tc := range cases {
		tmpl := &card.Template{
			ID: "strike", Name: "Strike", Type: card.TypeAttack, Cost: 1,
			Effects: []card.Effect{{Kind: card.EffectDamage, Value: tc.base}},
		}
		deck := card.NewDeck([]*card.Template{tmpl})
		foe := attackOnly("husk", 100, 4)
		foe.Effects.AddVulnerable(2)
		player := combat.NewPlayer(70, 80, 3)
		s, _ := combat.NewSession(deck, []*enemy.Instance{foe}, player, combat.Options{Source: fixedSrc{val: 0}})

		res, _, ok := s.Resolve(0, 0)
		if !ok {
			t.Fatalf("base %d: Resolve failed", tc.base)
		}
		if res.DamageDealt != tc.want {
			t.Errorf("base %d: damage = %d, want %d", tc.base, res.DamageDealt, tc.want)
		}
	}
}

// TestDamage_StrengthBeforeVulnerable: strength is added before the
// vulnerable multiplier, so 2 strength on a 6-damage card against a
// vulnerable enemy yields floor(8 * 1.5) = 12, not floor(6*1.5)+2 = 11.
func TestDamage_StrengthBeforeVulnerable(t *testing.T) {
	deck := deckOf(strikeTmpl, 1)
	foe := attackOnly("husk", 100, 4)
	foe.Effects.AddVulnerable(1)
	player := combat.NewPlayer(70, 80, 3)
	player.Effects.Strength = 2
	s, _ := combat.NewSession(deck, []*enemy.Instance{foe}, player, combat.Options{Source: fixedSrc{val: 0}})

	res, _, ok := s.Resolve(0, 0)
	if !ok {
		t.Fatal("Resolve failed")
	}
	if res.DamageDealt != 12 {
		t.Errorf("damage = %d, want 12", res.DamageDealt)
	}
}

// TestDamage_RegionalPipeline: a corrupted card in a region with a 1.25x
// corrupted-damage modifier deals floor(6 * 1.25) = 7; stacked with
// vulnerable it deals floor(7 * 1.5) = 10.
func TestDamage_RegionalPipeline(t *testing.T) {
	region := &modifier.Region{
		ID: "ashlands", Name: "Ashlands",
		DamageModifiers: map[string]float64{
			modifier.CategoryStandard:  1.0,
			modifier.CategoryCorrupted: 1.25,
		},
	}
	corrupted := &card.Template{
		ID: "tainted", Name: "Tainted Strike", Type: card.TypeAttack, Cost: 1, Corrupted: true,
		Effects: []card.Effect{{Kind: card.EffectDamage, Value: 6}},
	}

	t.Run("corrupted multiplier floors", func(t *testing.T) {
		deck := card.NewDeck([]*card.Template{corrupted})
		foe := attackOnly("husk", 100, 4)
		player := combat.NewPlayer(70, 80, 3)
		s, _ := combat.NewSession(deck, []*enemy.Instance{foe}, player, combat.Options{
			Source:   fixedSrc{val: 0},
			Pipeline: modifier.NewPipeline(region, 0),
		})
		res, _, ok := s.Resolve(0, 0)
		if !ok {
			t.Fatal("Resolve failed")
		}
		if res.DamageDealt != 7 {
			t.Errorf("damage = %d, want 7", res.DamageDealt)
		}
	})

	t.Run("pipeline before vulnerable", func(t *testing.T) {
		deck := card.NewDeck([]*card.Template{corrupted})
		foe := attackOnly("husk", 100, 4)
		foe.Effects.AddVulnerable(1)
		player := combat.NewPlayer(70, 80, 3)
		s, _ := combat.NewSession(deck, []*enemy.Instance{foe}, player, combat.Options{
			Source:   fixedSrc{val: 0},
			Pipeline: modifier.NewPipeline(region, 0),
		})
		res, _, ok := s.Resolve(0, 0)
		if !ok {
			t.Fatal("Resolve failed")
		}
		if res.DamageDealt != 10 {
			t.Errorf("damage = %d, want 10", res.DamageDealt)
		}
	})
}

// TestResolve_MultiEffectTargetDies: a card whose first hit kills its target
// lets the remaining targeted effects fizzle rather than error.
func TestResolve_MultiEffectTargetDies(t *testing.T) {
	doubleTap := &card.Template{
		ID: "doubletap", Name: "Double Tap", Type: card.TypeAttack, Cost: 1,
		Effects: []card.Effect{
			{Kind: card.EffectDamage, Value: 6},
			{Kind: card.EffectDamage, Value: 6},
			{Kind: card.EffectApplyWeak, Value: 2},
		},
	}
	deck := card.NewDeck([]*card.Template{doubleTap})
	foe := attackOnly("husk", 5, 4)
	player := combat.NewPlayer(70, 80, 3)
	s, _ := combat.NewSession(deck, []*enemy.Instance{foe}, player, combat.Options{Source: fixedSrc{val: 0}})

	res, events, ok := s.Resolve(0, 0)
	if !ok {
		t.Fatal("Resolve failed")
	}
	// First hit overkills; the second hit and the weak application fizzle.
	if res.DamageDealt != 6 {
		t.Errorf("damage = %d, want 6 (second hit fizzles)", res.DamageDealt)
	}
	if got := countKind(events, combat.EventDamageDealt); got != 1 {
		t.Errorf("damage events = %d, want 1", got)
	}
	if got := countKind(events, combat.EventStatusApplied); got != 0 {
		t.Errorf("status events = %d, want 0", got)
	}
	if s.Phase() != combat.PhaseVictory {
		t.Errorf("phase = %v, want victory", s.Phase())
	}
}

// TestResolve_BlockGainIncludesDexterity: 3 dexterity makes a 5-block card
// grant 8 block.
func TestResolve_BlockGainIncludesDexterity(t *testing.T) {
	deck := card.NewDeck([]*card.Template{defendTmpl})
	player := combat.NewPlayer(70, 80, 3)
	player.Effects.Dexterity = 3
	s, _ := combat.NewSession(deck, []*enemy.Instance{attackOnly("rat", 12, 4)}, player, combat.Options{Source: fixedSrc{val: 0}})

	res, _, ok := s.Resolve(0, combat.NoTarget)
	if !ok {
		t.Fatal("Resolve failed")
	}
	if res.BlockGained != 8 {
		t.Errorf("block gained = %d, want 8", res.BlockGained)
	}
	if player.Effects.Block != 8 {
		t.Errorf("player block = %d, want 8", player.Effects.Block)
	}
}

// TestResolve_SelfDamageHitsBlockFirst: self-damage respects the player's
// block before touching hp.
func TestResolve_SelfDamageHitsBlockFirst(t *testing.T) {
	reckless := &card.Template{
		ID: "reckless", Name: "Reckless Swing", Type: card.TypeAttack, Cost: 0,
		Effects: []card.Effect{
			{Kind: card.EffectDamage, Value: 10},
			{Kind: card.EffectSelfDamage, Value: 3},
		},
	}
	deck := card.NewDeck([]*card.Template{reckless})
	player := combat.NewPlayer(70, 80, 3)
	player.Effects.Block = 2
	s, _ := combat.NewSession(deck, []*enemy.Instance{attackOnly("ogre", 50, 4)}, player, combat.Options{Source: fixedSrc{val: 0}})

	if _, _, ok := s.Resolve(0, 0); !ok {
		t.Fatal("Resolve failed")
	}
	if player.Effects.Block != 0 {
		t.Errorf("player block = %d, want 0", player.Effects.Block)
	}
	if player.CurrentHP != 69 {
		t.Errorf("player hp = %d, want 69", player.CurrentHP)
	}
}

// TestResolve_SelfDamageCanDefeat: a self-damage card that drops the player
// to 0 ends the session in defeat even during the player phase.
func TestResolve_SelfDamageCanDefeat(t *testing.T) {
	reckless := &card.Template{
		ID: "sacrifice", Name: "Sacrifice", Type: card.TypeSkill, Cost: 0,
		Effects: []card.Effect{{Kind: card.EffectSelfDamage, Value: 5}},
	}
	deck := card.NewDeck([]*card.Template{reckless})
	player := combat.NewPlayer(3, 80, 3)
	s, _ := combat.NewSession(deck, []*enemy.Instance{attackOnly("rat", 12, 4)}, player, combat.Options{Source: fixedSrc{val: 0}})

	_, events, ok := s.Resolve(0, combat.NoTarget)
	if !ok {
		t.Fatal("Resolve failed")
	}
	if s.Phase() != combat.PhaseDefeat {
		t.Errorf("phase = %v, want defeat", s.Phase())
	}
	if got := countKind(events, combat.EventDefeat); got != 1 {
		t.Errorf("defeat events = %d, want 1", got)
	}
	if player.CurrentHP != 0 {
		t.Errorf("player hp = %d, want 0 (never negative)", player.CurrentHP)
	}
}

// TestResolve_HealCapsAtMax: healing never exceeds max hp.
func TestResolve_HealCapsAtMax(t *testing.T) {
	mend := &card.Template{
		ID: "mend", Name: "Mend", Type: card.TypeSkill, Cost: 1,
		Effects: []card.Effect{{Kind: card.EffectHeal, Value: 20}},
	}
	deck := card.NewDeck([]*card.Template{mend})
	player := combat.NewPlayer(75, 80, 3)
	s, _ := combat.NewSession(deck, []*enemy.Instance{attackOnly("rat", 12, 4)}, player, combat.Options{Source: fixedSrc{val: 0}})

	_, events, ok := s.Resolve(0, combat.NoTarget)
	if !ok {
		t.Fatal("Resolve failed")
	}
	if player.CurrentHP != 80 {
		t.Errorf("player hp = %d, want 80", player.CurrentHP)
	}
	for _, ev := range events {
		if ev.Kind == combat.EventHealed && ev.Value != 5 {
			t.Errorf("healed event value = %d, want 5", ev.Value)
		}
	}
}
