package card_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cory-johannsen/deckbound/internal/game/card"
)

func validTemplate() *card.Template {
	return &card.Template{
		ID:   "strike",
		Name: "Strike",
		Type: card.TypeAttack,
		Cost: 1,
		Effects: []card.Effect{
			{Kind: card.EffectDamage, Value: 6},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validTemplate().Validate(); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*card.Template)
	}{
		{"empty id", func(c *card.Template) { c.ID = "" }},
		{"empty name", func(c *card.Template) { c.Name = "" }},
		{"bad type", func(c *card.Template) { c.Type = "curse" }},
		{"negative cost", func(c *card.Template) { c.Cost = -1 }},
		{"unknown effect", func(c *card.Template) { c.Effects[0].Kind = "explode" }},
		{"negative value", func(c *card.Template) { c.Effects[0].Value = -4 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tmpl := validTemplate()
			tc.mutate(tmpl)
			if err := tmpl.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestNeedsTarget(t *testing.T) {
	atk := validTemplate()
	if !atk.NeedsTarget() {
		t.Error("attack card should need a target")
	}
	skill := &card.Template{ID: "defend", Name: "Defend", Type: card.TypeSkill, Cost: 1}
	if skill.NeedsTarget() {
		t.Error("plain skill should not need a target")
	}
	skill.RequiresTarget = true
	if !skill.NeedsTarget() {
		t.Error("requires_target skill should need a target")
	}
}

func TestNewDeck_DistinctInstanceIDs(t *testing.T) {
	tmpl := validTemplate()
	deck := card.NewDeck([]*card.Template{tmpl, tmpl, tmpl})
	if len(deck) != 3 {
		t.Fatalf("deck size = %d, want 3", len(deck))
	}
	seen := make(map[string]bool)
	for _, inst := range deck {
		if inst.InstanceID == "" {
			t.Fatal("empty instance ID")
		}
		if seen[inst.InstanceID] {
			t.Fatalf("duplicate instance ID %q", inst.InstanceID)
		}
		seen[inst.InstanceID] = true
		if inst.Template != tmpl {
			t.Fatal("instance does not point at source template")
		}
	}
}

func TestLoadTemplateFromBytes_RejectsUnknownFields(t *testing.T) {
	data := []byte("id: strike\nname: Strike\ntype: attack\ncost: 1\nrarity: epic\n")
	if _, err := card.LoadTemplateFromBytes(data); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoadTemplates_Directory(t *testing.T) {
	dir := t.TempDir()
	good := "id: strike\nname: Strike\ntype: attack\ncost: 1\neffects:\n  - kind: damage\n    value: 6\n"
	if err := os.WriteFile(filepath.Join(dir, "strike.yaml"), []byte(good), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	templates, err := card.LoadTemplates(dir)
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("loaded %d templates, want 1", len(templates))
	}
	if templates[0].ID != "strike" {
		t.Errorf("template ID = %q, want strike", templates[0].ID)
	}
}

func TestRegistry_GetAndAll(t *testing.T) {
	reg := card.NewRegistry()
	tmpl := validTemplate()
	reg.Register(tmpl)

	got, ok := reg.Get("strike")
	if !ok || got != tmpl {
		t.Fatalf("Get(strike) = %v, %v", got, ok)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) should report not found")
	}
	if len(reg.All()) != 1 {
		t.Errorf("All() len = %d, want 1", len(reg.All()))
	}
}
