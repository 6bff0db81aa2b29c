// Package enemy provides enemy template definitions, live instances, and
// intent generation for the Deckbound combat engine.
package enemy

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Buff and debuff effect names accepted in behavior tables.
const (
	BuffStrength = "strength"
	BuffBlock    = "block"
	// DebuffBlockBreak strips block from the player. Vulnerable and Weak are
	// enemy-only statuses, so this is the only shipped debuff effect.
	DebuffBlockBreak = "blockBreak"
)

// Move is one row in an enemy's behavior table: the intent it produces and an
// optional Lua precondition gating when the row is eligible.
type Move struct {
	Kind  IntentKind `yaml:"kind"`
	Value int        `yaml:"value"`
	// Effect names the buff/debuff applied; empty for attack and block moves.
	Effect string `yaml:"effect"`
	// Precondition is a Lua function name evaluated against a snapshot of
	// the enemy's state. Empty means always eligible.
	Precondition string `yaml:"precondition"`
}

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	MaxHP    int    `yaml:"max_hp"`
	Strength int    `yaml:"strength"`
	// Moves is the behavior table. Empty means the generic fallback policy
	// generates this enemy's intents.
	Moves []Move `yaml:"moves"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, MaxHP >= 1, and
// every move has a valid kind, a non-negative value, and an effect name iff
// the kind is buff or debuff; returns an error on the first violation.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("enemy template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", t.ID)
	}
	if t.MaxHP < 1 {
		return fmt.Errorf("enemy template %q: max_hp must be >= 1", t.ID)
	}
	for i, m := range t.Moves {
		switch m.Kind {
		case IntentAttack, IntentBlock:
			if m.Effect != "" {
				return fmt.Errorf("enemy template %q: move[%d] %s must not name an effect", t.ID, i, m.Kind)
			}
		case IntentBuff:
			if m.Effect != BuffStrength && m.Effect != BuffBlock {
				return fmt.Errorf("enemy template %q: move[%d] buff effect %q is not %q or %q",
					t.ID, i, m.Effect, BuffStrength, BuffBlock)
			}
		case IntentDebuff:
			if m.Effect != DebuffBlockBreak {
				return fmt.Errorf("enemy template %q: move[%d] debuff effect %q is not %q",
					t.ID, i, m.Effect, DebuffBlockBreak)
			}
		default:
			return fmt.Errorf("enemy template %q: move[%d] has unknown kind %q", t.ID, i, m.Kind)
		}
		if m.Value < 0 {
			return fmt.Errorf("enemy template %q: move[%d] value must be >= 0, got %d", t.ID, i, m.Value)
		}
	}
	return nil
}

// LoadTemplateFromBytes parses a single enemy template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("parsing enemy template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed enemy
// templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemy dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
