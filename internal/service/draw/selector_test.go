package draw

import (
	"math/rand"
	"testing"

	"reviewspin-service/internal/domain/campaign"
)

func threePrizes() []campaign.Prize {
	return []campaign.Prize{
		{ID: 11, CampaignID: 1, Name: "Free Coffee", Probability: 0.20, Remaining: 5, Position: 0},
		{ID: 12, CampaignID: 1, Name: "10% Off", Probability: 0.10, Remaining: 3, Position: 1},
		{ID: 13, CampaignID: 1, Name: "Grand Prize", Probability: 0.01, Remaining: 1, Position: 2},
	}
}

func fixedFloat(v float64) func() float64 {
	return func() float64 { return v }
}

func TestPrizeSelector_BoundaryWalk(t *testing.T) {
	prizes := threePrizes()

	cases := []struct {
		name   string
		r      float64
		wantID int64
		won    bool
	}{
		{"zero lands on first prize", 0.0, 11, true},
		{"just inside first band", 0.199, 11, true},
		{"boundary belongs to next band", 0.20, 12, true},
		{"inside second band", 0.25, 12, true},
		{"inside third band", 0.305, 13, true},
		{"residual mass is no win", 0.35, 0, false},
		{"far residual is no win", 0.99, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			selector := NewPrizeSelector(fixedFloat(tc.r))
			id, won := selector.Select(prizes)
			if won != tc.won || id != tc.wantID {
				t.Errorf("r=%v: got (%d, %v), want (%d, %v)", tc.r, id, won, tc.wantID, tc.won)
			}
		})
	}
}

func TestPrizeSelector_SkipsExhaustedStock(t *testing.T) {
	prizes := threePrizes()
	prizes[0].Remaining = 0

	// 0.05 would have landed on the first prize; with it out of stock the
	// cumulative walk starts at the second prize instead.
	selector := NewPrizeSelector(fixedFloat(0.05))
	id, won := selector.Select(prizes)
	if !won || id != 12 {
		t.Fatalf("expected prize 12, got (%d, %v)", id, won)
	}

	// An out-of-stock prize also shrinks the total winnable mass.
	selector = NewPrizeSelector(fixedFloat(0.12))
	if id, won := selector.Select(prizes); won {
		t.Fatalf("expected no win past shrunken mass, got prize %d", id)
	}
}

func TestPrizeSelector_EmptyList(t *testing.T) {
	selector := NewPrizeSelector(fixedFloat(0.0))
	if id, won := selector.Select(nil); won {
		t.Fatalf("expected no win from empty list, got prize %d", id)
	}
}

func TestPrizeSelector_Distribution(t *testing.T) {
	prizes := threePrizes()
	prizes[0].Remaining = 1 << 30
	prizes[1].Remaining = 1 << 30
	prizes[2].Remaining = 1 << 30

	rng := rand.New(rand.NewSource(42))
	selector := NewPrizeSelector(rng.Float64)

	const trials = 100000
	hits := map[int64]int{}
	for i := 0; i < trials; i++ {
		if id, won := selector.Select(prizes); won {
			hits[id]++
		}
	}

	check := func(prizeID int64, want float64) {
		got := float64(hits[prizeID]) / trials
		if got < want-0.01 || got > want+0.01 {
			t.Errorf("prize %d: observed frequency %.4f, want %.2f ±0.01", prizeID, got, want)
		}
	}
	check(11, 0.20)
	check(12, 0.10)
	check(13, 0.01)

	noWin := trials - hits[11] - hits[12] - hits[13]
	if got := float64(noWin) / trials; got < 0.68 || got > 0.70 {
		t.Errorf("no-win frequency %.4f, want 0.69 ±0.01", got)
	}
}
