package dice_test

import (
	"sort"
	"testing"

	"pgregory.net/rapid"

	"github.com/cory-johannsen/deckbound/internal/game/dice"
)

// seqSrc returns pre-programmed values, cycling when exhausted.
type seqSrc struct {
	vals []int
	i    int
}

func (s *seqSrc) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func TestBetween_SingleValueRange(t *testing.T) {
	src := &seqSrc{vals: []int{0}}
	if got := dice.Between(src, 7, 7); got != 7 {
		t.Errorf("Between(7,7) = %d, want 7", got)
	}
}

func TestBetween_Bounds(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 100; i++ {
		v := dice.Between(src, 5, 9)
		if v < 5 || v > 9 {
			t.Fatalf("Between(5,9) = %d, out of range", v)
		}
	}
}

func TestShuffle_PreservesMultiset(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		orig := rapid.SliceOfN(rapid.IntRange(0, 50), 0, 20).Draw(rt, "elems")
		cards := make([]int, len(orig))
		copy(cards, orig)

		src := dice.NewCryptoSource()
		dice.Shuffle(src, len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})

		a := make([]int, len(orig))
		b := make([]int, len(cards))
		copy(a, orig)
		copy(b, cards)
		sort.Ints(a)
		sort.Ints(b)
		for i := range a {
			if a[i] != b[i] {
				rt.Fatalf("shuffle changed multiset: %v vs %v", orig, cards)
			}
		}
	})
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	src := dice.NewCryptoSource()
	dice.Shuffle(src, 0, nil)
	one := []int{42}
	dice.Shuffle(src, 1, func(i, j int) { one[i], one[j] = one[j], one[i] })
	if one[0] != 42 {
		t.Errorf("single-element shuffle mutated value: %v", one)
	}
}
