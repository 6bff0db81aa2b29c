// Package card provides card template definitions and per-copy instances.
// Templates are immutable and loaded from YAML; every copy in a deck, hand,
// or pile is an Instance with its own identity so duplicate templates can be
// tracked independently.
package card

import (
	"fmt"

	"github.com/google/uuid"
)

// Type classifies a card template.
type Type string

const (
	TypeAttack Type = "attack"
	TypeSkill  Type = "skill"
	TypePower  Type = "power"
)

// EffectKind identifies one typed card effect.
type EffectKind string

const (
	EffectDamage          EffectKind = "damage"
	EffectBlock           EffectKind = "block"
	EffectDraw            EffectKind = "draw"
	EffectEnergy          EffectKind = "energy"
	EffectHeal            EffectKind = "heal"
	EffectApplyVulnerable EffectKind = "applyVulnerable"
	EffectApplyWeak       EffectKind = "applyWeak"
	EffectStrengthGain    EffectKind = "strengthGain"
	EffectSelfDamage      EffectKind = "selfDamage"
)

// validEffectKinds is the closed set accepted by Validate.
var validEffectKinds = map[EffectKind]bool{
	EffectDamage:          true,
	EffectBlock:           true,
	EffectDraw:            true,
	EffectEnergy:          true,
	EffectHeal:            true,
	EffectApplyVulnerable: true,
	EffectApplyWeak:       true,
	EffectStrengthGain:    true,
	EffectSelfDamage:      true,
}

// Effect is one entry in a card's ordered effect list.
type Effect struct {
	Kind  EffectKind `yaml:"kind"`
	Value int        `yaml:"value"`
}

// Template defines a reusable card loaded from YAML. Templates are immutable
// after Validate; all mutation happens on piles of Instances.
type Template struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Type Type   `yaml:"type"`
	// Cost is the energy cost to play the card. Always >= 0.
	Cost    int      `yaml:"cost"`
	Effects []Effect `yaml:"effects"`
	// Exhaust removes the card from circulation after one play instead of
	// discarding it.
	Exhaust  bool `yaml:"exhaust"`
	Upgraded bool `yaml:"upgraded"`
	// Corrupted marks the card as belonging to the corrupted category for
	// the regional modifier pipeline.
	Corrupted bool `yaml:"corrupted"`
	// RequiresTarget forces an enemy target even for non-attack cards.
	RequiresTarget bool `yaml:"requires_target"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Type is one of
// attack/skill/power, Cost >= 0, and every effect has a known kind and a
// non-negative value; returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("card template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("card template %q: name must not be empty", t.ID)
	}
	switch t.Type {
	case TypeAttack, TypeSkill, TypePower:
	default:
		return fmt.Errorf("card template %q: type %q is not attack, skill, or power", t.ID, t.Type)
	}
	if t.Cost < 0 {
		return fmt.Errorf("card template %q: cost must be >= 0, got %d", t.ID, t.Cost)
	}
	for i, e := range t.Effects {
		if !validEffectKinds[e.Kind] {
			return fmt.Errorf("card template %q: effect[%d] has unknown kind %q", t.ID, i, e.Kind)
		}
		if e.Value < 0 {
			return fmt.Errorf("card template %q: effect[%d] value must be >= 0, got %d", t.ID, i, e.Value)
		}
	}
	return nil
}

// NeedsTarget reports whether playing this card requires a live enemy target.
//
// Postcondition: Returns true iff Type == attack or RequiresTarget is set.
func (t *Template) NeedsTarget() bool {
	return t.Type == TypeAttack || t.RequiresTarget
}

// Instance is one playable copy of a Template with its own identity.
type Instance struct {
	// InstanceID uniquely identifies this copy for the life of a session.
	InstanceID string
	Template   *Template
}

// NewInstance creates a copy of tmpl with a fresh instance identity.
//
// Precondition: tmpl must be non-nil and validated.
// Postcondition: Returns an Instance with a unique, non-empty InstanceID.
func NewInstance(tmpl *Template) *Instance {
	return &Instance{
		InstanceID: uuid.NewString(),
		Template:   tmpl,
	}
}

// NewDeck creates one Instance per entry in templates, preserving order.
// Duplicate templates yield distinct instances.
//
// Precondition: every template must be non-nil and validated.
func NewDeck(templates []*Template) []*Instance {
	deck := make([]*Instance, 0, len(templates))
	for _, t := range templates {
		deck = append(deck, NewInstance(t))
	}
	return deck
}
