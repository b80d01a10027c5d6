// internal/service/draw/selector.go
package draw

import (
	"math/rand"

	"reviewspin-service/internal/domain/campaign"
)

// PrizeSelector performs the weighted random draw over in-stock prizes.
// Probabilities are authored per prize in [0,1] and validated at
// configuration time to sum to at most 1; the residual mass is the "no
// prize" outcome. The selector never re-normalizes.
type PrizeSelector struct {
	randFloat func() float64
}

// NewPrizeSelector builds a selector. randFloat must return uniform values
// in [0,1); pass nil for the default source.
func NewPrizeSelector(randFloat func() float64) *PrizeSelector {
	if randFloat == nil {
		randFloat = rand.Float64
	}
	return &PrizeSelector{randFloat: randFloat}
}

// Select walks the prize list in its stable load order, accumulating
// probability mass until it exceeds the drawn value. Returns (0, false) when
// the draw lands in the residual mass: a legitimate no-win play, not an
// error. Prizes with no remaining stock are skipped even if present, so a
// stale list can never award an exhausted prize.
func (s *PrizeSelector) Select(prizes []campaign.Prize) (int64, bool) {
	r := s.randFloat()

	cumulative := 0.0
	for _, p := range prizes {
		if !p.InStock() {
			continue
		}
		cumulative += p.Probability
		if r < cumulative {
			return p.ID, true
		}
	}

	return 0, false
}
