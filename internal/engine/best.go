package engine

// BestTracker keeps the running maximum of candidate scores.
// Equal scores never replace the current best, so the first one seen wins.
type BestTracker struct {
	name  string
	score float64
	set   bool
}

// Offer records a candidate score and reports whether it became the new best.
func (b *BestTracker) Offer(name string, score float64) bool {
	if b.set && score <= b.score {
		return false
	}
	b.name, b.score, b.set = name, score, true
	return true
}

// Best returns the best candidate so far; ok is false before the first Offer.
func (b *BestTracker) Best() (name string, score float64, ok bool) {
	return b.name, b.score, b.set
}
