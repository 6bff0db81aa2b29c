package modifier

import (
	"math"

	"github.com/cory-johannsen/deckbound/internal/game/card"
)

// Pipeline answers the resolver's modifier queries as pure functions of the
// active region and corruption level. It never mutates combat state; the
// resolver applies its output. A nil *Pipeline behaves as the identity
// (multiplier 1.0, unadjusted corruption gain).
type Pipeline struct {
	region     *Region
	corruption int
}

// NewPipeline constructs a Pipeline for the given region and corruption
// level. region may be nil (no regional modifiers).
//
// Precondition: corruption >= 0.
func NewPipeline(region *Region, corruption int) *Pipeline {
	return &Pipeline{region: region, corruption: corruption}
}

// DamageModifier returns the damage multiplier for the card's category under
// the active region. Cards flagged Corrupted use the "corrupted" category;
// all others use "standard". Missing entries default to 1.0.
//
// Precondition: tmpl must not be nil.
// Postcondition: Returns >= 0; exactly 1.0 when the pipeline or region is nil.
func (p *Pipeline) DamageModifier(tmpl *card.Template) float64 {
	if p == nil || p.region == nil {
		return 1.0
	}
	category := CategoryStandard
	if tmpl.Corrupted {
		category = CategoryCorrupted
	}
	mult, ok := p.region.DamageModifiers[category]
	if !ok {
		return 1.0
	}
	return mult
}

// ApplyDamage scales base damage by the card's modifier, flooring the result.
//
// Precondition: base >= 0.
// Postcondition: Returns floor(base * DamageModifier(tmpl)) >= 0.
func (p *Pipeline) ApplyDamage(base int, tmpl *card.Template) int {
	return int(math.Floor(float64(base) * p.DamageModifier(tmpl)))
}

// CorruptionGainModifier adjusts a base corruption gain by the region's
// scale, flooring the result.
//
// Precondition: base >= 0.
// Postcondition: Returns >= 0; returns base unchanged when the pipeline or
// region is nil or the scale is unset.
func (p *Pipeline) CorruptionGainModifier(base int) int {
	if p == nil || p.region == nil || p.region.CorruptionGainScale == 0 {
		return base
	}
	return int(math.Floor(float64(base) * p.region.CorruptionGainScale))
}

// Corruption returns the corruption level the pipeline was built with.
func (p *Pipeline) Corruption() int {
	if p == nil {
		return 0
	}
	return p.corruption
}
