// internal/domain/campaign/dto.go
package campaign

// PublicSnapshot is the play-page view of a campaign. Stock counts and win
// probabilities are deliberately absent: the client only needs what it must
// render.
type PublicSnapshot struct {
	CampaignID int64             `json:"campaign_id"`
	Name       string            `json:"name"`
	GameType   GameType          `json:"game_type,omitempty"`
	Wheel      *WheelConfig      `json:"wheel,omitempty"`
	Slot       *PublicSlotConfig `json:"slot,omitempty"`
	Conditions []PublicCondition `json:"conditions"`
	Prizes     []PublicPrize     `json:"prizes"`
}

// PublicSlotConfig is the slot game stripped to what the reels need: the
// symbol set, without the pattern-to-prize bindings.
type PublicSlotConfig struct {
	Symbols []string `json:"symbols"`
}

type PublicCondition struct {
	ID           int64         `json:"id"`
	Type         ConditionType `json:"type"`
	DisplayOrder int           `json:"display_order"`
	EnablesGame  bool          `json:"enables_game"`
	IsRequired   bool          `json:"is_required"`
	Label        string        `json:"label"`
	TargetURL    string        `json:"target_url,omitempty"`
}

type PublicPrize struct {
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Position int    `json:"position"`
}

// Public projects the snapshot into its play-page shape.
func (s *Snapshot) Public() PublicSnapshot {
	out := PublicSnapshot{
		CampaignID: s.Campaign.ID,
		Name:       s.Campaign.Name,
		Conditions: make([]PublicCondition, 0, len(s.Conditions)),
		Prizes:     make([]PublicPrize, 0, len(s.Prizes)),
	}

	if s.Game != nil {
		out.GameType = s.Game.Type
		switch cfg := s.Game.Config.(type) {
		case WheelConfig:
			out.Wheel = &cfg
		case SlotConfig:
			out.Slot = &PublicSlotConfig{Symbols: cfg.DistinctSymbols()}
		}
	}

	for _, c := range s.Conditions {
		out.Conditions = append(out.Conditions, PublicCondition{
			ID:           c.ID,
			Type:         c.Type,
			DisplayOrder: c.DisplayOrder,
			EnablesGame:  c.EnablesGame,
			IsRequired:   c.IsRequired,
			Label:        c.Label,
			TargetURL:    c.TargetURL,
		})
	}

	for _, p := range s.Prizes {
		pub := PublicPrize{Name: p.Name, Position: p.Position}
		if p.Color.Valid {
			pub.Color = p.Color.String
		}
		out.Prizes = append(out.Prizes, pub)
	}

	return out
}
