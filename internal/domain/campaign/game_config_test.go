package campaign

import "testing"

func TestDecodeGameConfig(t *testing.T) {
	t.Run("wheel", func(t *testing.T) {
		raw := []byte(`{"segments":[{"id":1,"label":"Espresso","prize_index":0},{"id":2,"label":"Try Again"}]}`)
		cfg, err := DecodeGameConfig(GameTypeWheel, raw)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		wheel, ok := cfg.(WheelConfig)
		if !ok {
			t.Fatalf("expected WheelConfig, got %T", cfg)
		}
		if len(wheel.Segments) != 2 {
			t.Fatalf("expected 2 segments, got %d", len(wheel.Segments))
		}
		if wheel.Segments[0].PrizeIndex == nil || *wheel.Segments[0].PrizeIndex != 0 {
			t.Error("first segment lost its prize binding")
		}
		if wheel.Segments[1].PrizeIndex != nil {
			t.Error("decorative segment must have no prize binding")
		}
	})

	t.Run("mini wheel shares the wheel shape", func(t *testing.T) {
		cfg, err := DecodeGameConfig(GameTypeWheelMini, []byte(`{"segments":[]}`))
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if _, ok := cfg.(WheelConfig); !ok {
			t.Fatalf("expected WheelConfig, got %T", cfg)
		}
	})

	t.Run("slot machine", func(t *testing.T) {
		raw := []byte(`{"winning_patterns":[{"symbols":["🍒","🍒","🍒"],"prize_index":0}]}`)
		cfg, err := DecodeGameConfig(GameTypeSlot, raw)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		slot, ok := cfg.(SlotConfig)
		if !ok {
			t.Fatalf("expected SlotConfig, got %T", cfg)
		}
		if slot.WinningPatterns[0].Symbols != [3]string{"🍒", "🍒", "🍒"} {
			t.Errorf("unexpected symbols %v", slot.WinningPatterns[0].Symbols)
		}
	})

	t.Run("no game", func(t *testing.T) {
		cfg, err := DecodeGameConfig(GameTypeNone, nil)
		if err != nil || cfg != nil {
			t.Fatalf("expected (nil, nil), got (%v, %v)", cfg, err)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := DecodeGameConfig(GameType("PACHINKO"), []byte(`{}`)); err == nil {
			t.Fatal("expected an error for an unknown game type")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := DecodeGameConfig(GameTypeWheel, []byte(`{segments`)); err == nil {
			t.Fatal("expected an error for malformed config")
		}
	})
}

func TestWheelConfigSegmentForPrize(t *testing.T) {
	idx := 1
	cfg := WheelConfig{Segments: []WheelSegment{
		{ID: 1, Label: "Try Again"},
		{ID: 2, Label: "Latte", PrizeIndex: &idx},
	}}

	seg, ok := cfg.SegmentForPrize(1)
	if !ok || seg.ID != 2 {
		t.Fatalf("expected segment 2, got (%+v, %v)", seg, ok)
	}
	if _, ok := cfg.SegmentForPrize(7); ok {
		t.Fatal("expected no segment for an unbound prize index")
	}
}

func TestSlotConfigPatternsForPrize(t *testing.T) {
	cfg := SlotConfig{WinningPatterns: []SlotPattern{
		{Symbols: [3]string{"A", "A", "A"}, PrizeIndex: 0},
		{Symbols: [3]string{"B", "B", "B"}, PrizeIndex: 1},
		{Symbols: [3]string{"C", "C", "C"}, PrizeIndex: 0},
	}}

	got := cfg.PatternsForPrize(0)
	if len(got) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(got))
	}
	if got[0].Symbols[0] != "A" || got[1].Symbols[0] != "C" {
		t.Errorf("patterns out of configuration order: %v", got)
	}
	if got := cfg.PatternsForPrize(9); got != nil {
		t.Errorf("expected nil for unbound index, got %v", got)
	}
}
