package modifier

import "github.com/cory-johannsen/deckbound/internal/game/dice"

// Distortion is the corruption-driven cosmetic number flicker. Presentation
// may show Display values briefly, but every sequence settles on the
// authoritative number via Settle. The resolver never reads this type;
// authoritative arithmetic lives entirely in the Pipeline and the session.
type Distortion struct {
	corruption int
	src        dice.Source
}

// NewDistortion constructs a Distortion for the given corruption level.
//
// Precondition: corruption >= 0; src must not be nil.
func NewDistortion(corruption int, src dice.Source) *Distortion {
	if src == nil {
		panic("modifier.NewDistortion: src must not be nil")
	}
	return &Distortion{corruption: corruption, src: src}
}

// Display returns a possibly jittered rendering of the authoritative value.
// The jitter magnitude grows with corruption (±corruption/10, minimum 0) and
// never pushes a non-negative value below zero.
//
// Precondition: authoritative >= 0.
// Postcondition: Returns >= 0; returns authoritative exactly when corruption
// is below 10.
func (d *Distortion) Display(authoritative int) int {
	spread := d.corruption / 10
	if spread <= 0 {
		return authoritative
	}
	jitter := d.src.Intn(2*spread+1) - spread
	shown := authoritative + jitter
	if shown < 0 {
		shown = 0
	}
	return shown
}

// Settle returns the authoritative value. Presentation must call this within
// a bounded delay after any flicker; the true number is always available.
//
// Postcondition: Returns authoritative unchanged.
func (d *Distortion) Settle(authoritative int) int {
	return authoritative
}
