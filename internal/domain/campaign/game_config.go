// internal/domain/campaign/game_config.go
package campaign

import (
	"encoding/json"
	"fmt"
)

// GameConfig is the decoded, type-specific configuration of a game. Exactly
// one variant exists per game type; the raw JSON blob stored alongside the
// game row is decoded once at snapshot-load time.
type GameConfig interface {
	gameConfig()
}

// WheelSegment is one slice of a wheel game. PrizeIndex is nil for purely
// decorative segments ("better luck next time").
type WheelSegment struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Color      string `json:"color,omitempty"`
	PrizeIndex *int   `json:"prize_index,omitempty"`
}

type WheelConfig struct {
	Segments []WheelSegment `json:"segments"`
}

func (WheelConfig) gameConfig() {}

// SegmentForPrize returns the first segment bound to the given prize index.
func (c WheelConfig) SegmentForPrize(prizeIndex int) (WheelSegment, bool) {
	for _, seg := range c.Segments {
		if seg.PrizeIndex != nil && *seg.PrizeIndex == prizeIndex {
			return seg, true
		}
	}
	return WheelSegment{}, false
}

// SlotPattern is a winning symbol triple bound to a prize index.
type SlotPattern struct {
	Symbols    [3]string `json:"symbols"`
	PrizeIndex int       `json:"prize_index"`
}

type SlotConfig struct {
	WinningPatterns []SlotPattern `json:"winning_patterns"`
}

func (SlotConfig) gameConfig() {}

// PatternsForPrize returns every configured pattern bound to the given prize
// index, in configuration order.
func (c SlotConfig) PatternsForPrize(prizeIndex int) []SlotPattern {
	var out []SlotPattern
	for _, p := range c.WinningPatterns {
		if p.PrizeIndex == prizeIndex {
			out = append(out, p)
		}
	}
	return out
}

// DistinctSymbols returns every symbol used by the winning patterns, first
// occurrence order, for rendering the reels.
func (c SlotConfig) DistinctSymbols() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.WinningPatterns {
		for _, sym := range p.Symbols {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	return out
}

// DecodeGameConfig parses the stored config blob according to the game type.
func DecodeGameConfig(gameType GameType, raw []byte) (GameConfig, error) {
	switch gameType {
	case GameTypeWheel, GameTypeWheelMini:
		var cfg WheelConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode wheel config: %w", err)
		}
		return cfg, nil
	case GameTypeSlot:
		var cfg SlotConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode slot config: %w", err)
		}
		return cfg, nil
	case GameTypeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown game type %q", gameType)
	}
}
