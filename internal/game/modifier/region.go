// Package modifier implements the pluggable numeric-modifier pipeline:
// regional "biome" multipliers and corruption scaling applied by the card
// resolver before damage lands, plus the cosmetic distortion layer that
// presentation may use but the resolver never reads.
package modifier

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Card categories recognised by regional damage modifiers.
const (
	CategoryStandard  = "standard"
	CategoryCorrupted = "corrupted"
)

// Region defines one narrative biome and its numeric modifiers.
type Region struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// DamageModifiers maps a card category to its damage multiplier.
	// Missing categories default to 1.0.
	DamageModifiers map[string]float64 `yaml:"damage_modifiers"`
	// CorruptionGainScale multiplies corruption gained in this region.
	// Zero is treated as 1.0 (unset).
	CorruptionGainScale float64 `yaml:"corruption_gain_scale"`
}

// Validate checks the region's invariants.
//
// Precondition: r must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty and every
// multiplier is non-negative.
func (r *Region) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("region: id must not be empty")
	}
	if r.Name == "" {
		return fmt.Errorf("region %q: name must not be empty", r.ID)
	}
	for cat, mult := range r.DamageModifiers {
		if mult < 0 {
			return fmt.Errorf("region %q: damage modifier for %q must be >= 0, got %f", r.ID, cat, mult)
		}
	}
	if r.CorruptionGainScale < 0 {
		return fmt.Errorf("region %q: corruption_gain_scale must be >= 0, got %f", r.ID, r.CorruptionGainScale)
	}
	return nil
}

// LoadRegions reads all .yaml files in dir and parses each as a Region.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated regions (may be an empty
// slice) or a non-nil error.
func LoadRegions(dir string) ([]*Region, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading region dir %q: %w", dir, err)
	}
	var regions []*Region
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var r Region
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("parsing region file %q: %w", path, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		regions = append(regions, &r)
	}
	return regions, nil
}

// FindRegion returns the region with the given ID, or (nil, false).
func FindRegion(regions []*Region, id string) (*Region, bool) {
	for _, r := range regions {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}
