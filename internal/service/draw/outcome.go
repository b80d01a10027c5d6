// internal/service/draw/outcome.go
package draw

import (
	"math/rand"

	"reviewspin-service/internal/domain/campaign"
	"reviewspin-service/internal/domain/draw"
)

// OutcomeMapper converts a won prize into the game-specific visual result:
// a wheel segment id or a slot symbol triple. The choice is cosmetic only;
// it never changes which prize was won.
type OutcomeMapper struct {
	intn func(n int) int
}

// NewOutcomeMapper builds a mapper; pass nil for the default random source.
func NewOutcomeMapper(intn func(n int) int) *OutcomeMapper {
	if intn == nil {
		intn = rand.Intn
	}
	return &OutcomeMapper{intn: intn}
}

// MapOutcome resolves the visual binding for a draw. An empty outcome means
// the client falls back to its generic animation: no prize won, no game
// configured, or no segment/pattern bound to the prize's index.
func (m *OutcomeMapper) MapOutcome(snap *campaign.Snapshot, wonPrizeID int64, won bool) draw.Outcome {
	if !won || snap.Game == nil || snap.Game.Config == nil {
		return draw.Outcome{}
	}

	prizeIndex, ok := snap.PrizeIndex(wonPrizeID)
	if !ok {
		return draw.Outcome{}
	}

	switch cfg := snap.Game.Config.(type) {
	case campaign.WheelConfig:
		seg, ok := cfg.SegmentForPrize(prizeIndex)
		if !ok {
			return draw.Outcome{}
		}
		return draw.Outcome{SegmentID: &seg.ID}

	case campaign.SlotConfig:
		patterns := cfg.PatternsForPrize(prizeIndex)
		if len(patterns) == 0 {
			return draw.Outcome{}
		}
		chosen := patterns[0]
		if len(patterns) > 1 {
			chosen = patterns[m.intn(len(patterns))]
		}
		triple := chosen.Symbols
		return draw.Outcome{SymbolTriple: &triple}

	default:
		return draw.Outcome{}
	}
}
