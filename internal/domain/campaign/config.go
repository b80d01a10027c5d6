// internal/domain/campaign/config.go
package campaign

import "encoding/json"

// Config is the cacheable configuration half of a snapshot: everything that
// only changes when a store owner edits the campaign. Prize stock is volatile
// and is always read fresh, so it is not part of this shape.
type Config struct {
	Campaign   Campaign        `json:"campaign"`
	GameID     int64           `json:"game_id,omitempty"`
	GameType   GameType        `json:"game_type,omitempty"`
	GameConfig json.RawMessage `json:"game_config,omitempty"`
	Conditions []Condition     `json:"conditions"`
}

// Game materializes the config's game portion, decoding the raw blob.
// Returns nil when the campaign has no configured game.
func (c *Config) Game() (*Game, error) {
	if c.GameType == GameTypeNone {
		return nil, nil
	}
	decoded, err := DecodeGameConfig(c.GameType, c.GameConfig)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:         c.GameID,
		CampaignID: c.Campaign.ID,
		Type:       c.GameType,
		Config:     decoded,
	}, nil
}
