package dice

// Between returns a uniform random int in [lo, hi] drawn from src.
//
// Precondition: src must be non-nil; lo <= hi.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	if lo > hi {
		panic("dice: Between called with lo > hi")
	}
	if lo == hi {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Shuffle performs an in-place Fisher–Yates shuffle of n elements using src,
// calling swap(i, j) for each exchange.
//
// Precondition: src must be non-nil; n >= 0; swap must be non-nil when n > 1.
// Postcondition: Every permutation of the n elements is equally likely given a
// uniform Source.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}
