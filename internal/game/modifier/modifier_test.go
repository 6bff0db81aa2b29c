package modifier_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cory-johannsen/deckbound/internal/game/card"
	"github.com/cory-johannsen/deckbound/internal/game/modifier"
)

func ashlandsRegion() *modifier.Region {
	return &modifier.Region{
		ID:   "ashlands",
		Name: "The Ashlands",
		DamageModifiers: map[string]float64{
			modifier.CategoryStandard:  1.0,
			modifier.CategoryCorrupted: 1.25,
		},
		CorruptionGainScale: 1.5,
	}
}

func TestDamageModifier_ByCategory(t *testing.T) {
	p := modifier.NewPipeline(ashlandsRegion(), 0)

	plain := &card.Template{ID: "strike", Name: "Strike", Type: card.TypeAttack, Cost: 1}
	if got := p.DamageModifier(plain); got != 1.0 {
		t.Errorf("standard modifier = %f, want 1.0", got)
	}

	corrupted := &card.Template{ID: "blight", Name: "Blight", Type: card.TypeAttack, Cost: 1, Corrupted: true}
	if got := p.DamageModifier(corrupted); got != 1.25 {
		t.Errorf("corrupted modifier = %f, want 1.25", got)
	}
}

func TestApplyDamage_Floors(t *testing.T) {
	p := modifier.NewPipeline(ashlandsRegion(), 0)
	corrupted := &card.Template{ID: "blight", Name: "Blight", Type: card.TypeAttack, Cost: 1, Corrupted: true}

	// 7 * 1.25 = 8.75 -> 8
	if got := p.ApplyDamage(7, corrupted); got != 8 {
		t.Errorf("ApplyDamage(7, corrupted) = %d, want 8", got)
	}
}

func TestNilPipeline_Identity(t *testing.T) {
	var p *modifier.Pipeline
	tmpl := &card.Template{ID: "strike", Name: "Strike", Type: card.TypeAttack, Cost: 1, Corrupted: true}
	if got := p.DamageModifier(tmpl); got != 1.0 {
		t.Errorf("nil pipeline modifier = %f, want 1.0", got)
	}
	if got := p.ApplyDamage(9, tmpl); got != 9 {
		t.Errorf("nil pipeline ApplyDamage = %d, want 9", got)
	}
	if got := p.CorruptionGainModifier(4); got != 4 {
		t.Errorf("nil pipeline corruption gain = %d, want 4", got)
	}
}

func TestCorruptionGainModifier_Scales(t *testing.T) {
	p := modifier.NewPipeline(ashlandsRegion(), 20)
	// 5 * 1.5 = 7.5 -> 7
	if got := p.CorruptionGainModifier(5); got != 7 {
		t.Errorf("CorruptionGainModifier(5) = %d, want 7", got)
	}
}

func TestRegionValidate(t *testing.T) {
	r := ashlandsRegion()
	if err := r.Validate(); err != nil {
		t.Fatalf("valid region rejected: %v", err)
	}
	r.DamageModifiers["corrupted"] = -0.5
	if err := r.Validate(); err == nil {
		t.Error("expected error for negative multiplier")
	}
}

func TestLoadRegions(t *testing.T) {
	dir := t.TempDir()
	data := "id: mire\nname: The Mire\ndamage_modifiers:\n  corrupted: 0.75\ncorruption_gain_scale: 2.0\n"
	if err := os.WriteFile(filepath.Join(dir, "mire.yaml"), []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	regions, err := modifier.LoadRegions(dir)
	if err != nil {
		t.Fatalf("LoadRegions: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("loaded %d regions, want 1", len(regions))
	}
	r, ok := modifier.FindRegion(regions, "mire")
	if !ok {
		t.Fatal("FindRegion(mire) not found")
	}
	if r.DamageModifiers["corrupted"] != 0.75 {
		t.Errorf("corrupted modifier = %f, want 0.75", r.DamageModifiers["corrupted"])
	}
}

// zeroSrc always returns 0, producing maximum negative jitter.
type zeroSrc struct{}

func (zeroSrc) Intn(_ int) int { return 0 }

func TestDistortion_LowCorruptionIsExact(t *testing.T) {
	d := modifier.NewDistortion(5, zeroSrc{})
	if got := d.Display(12); got != 12 {
		t.Errorf("Display(12) at low corruption = %d, want 12", got)
	}
}

func TestDistortion_SettleAlwaysAuthoritative(t *testing.T) {
	d := modifier.NewDistortion(80, zeroSrc{})
	if got := d.Settle(12); got != 12 {
		t.Errorf("Settle(12) = %d, want 12", got)
	}
}

func TestDistortion_DisplayNeverNegative(t *testing.T) {
	d := modifier.NewDistortion(100, zeroSrc{})
	if got := d.Display(3); got < 0 {
		t.Errorf("Display(3) = %d, want >= 0", got)
	}
}
