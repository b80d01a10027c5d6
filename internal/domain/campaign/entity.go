// internal/domain/campaign/entity.go
package campaign

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type ConditionType string

const (
	ConditionTypeGoogleReview     ConditionType = "GOOGLE_REVIEW"
	ConditionTypeTripadvisor      ConditionType = "TRIPADVISOR_REVIEW"
	ConditionTypeSocialFollow     ConditionType = "SOCIAL_FOLLOW"
	ConditionTypeInstagramFollow  ConditionType = "INSTAGRAM_FOLLOW"
	ConditionTypeNewsletterSignup ConditionType = "NEWSLETTER_SIGNUP"
)

type GameType string

const (
	GameTypeWheel     GameType = "WHEEL"
	GameTypeWheelMini GameType = "WHEEL_MINI"
	GameTypeSlot      GameType = "SLOT_MACHINE"
	GameTypeNone      GameType = "" // campaign has no configured game
)

type Campaign struct {
	ID                   int64         `json:"id" db:"id"`
	StoreID              int64         `json:"store_id" db:"store_id"`
	Name                 string        `json:"name" db:"name"`
	Active               bool          `json:"active" db:"active"`
	MaxParticipants      sql.NullInt32 `json:"max_participants,omitempty" db:"max_participants"`
	MinDaysBetweenPlays  sql.NullInt32 `json:"min_days_between_plays,omitempty" db:"min_days_between_plays"`
	PrizeClaimExpiryDays int           `json:"prize_claim_expiry_days" db:"prize_claim_expiry_days"`
	CreatedAt            time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at" db:"updated_at"`
}

type Condition struct {
	ID           int64         `json:"id" db:"id"`
	CampaignID   int64         `json:"campaign_id" db:"campaign_id"`
	Type         ConditionType `json:"type" db:"condition_type"`
	DisplayOrder int           `json:"display_order" db:"display_order"`
	EnablesGame  bool          `json:"enables_game" db:"enables_game"`
	IsRequired   bool          `json:"is_required" db:"is_required"`
	Label        string        `json:"label" db:"label"`
	TargetURL    string        `json:"target_url,omitempty" db:"target_url"`
}

type Game struct {
	ID         int64      `json:"id" db:"id"`
	CampaignID int64      `json:"campaign_id" db:"campaign_id"`
	Type       GameType   `json:"type" db:"game_type"`
	Config     GameConfig `json:"config"`
}

type Prize struct {
	ID          int64           `json:"id" db:"id"`
	CampaignID  int64           `json:"campaign_id" db:"campaign_id"`
	Name        string          `json:"name" db:"name"`
	Description sql.NullString  `json:"description,omitempty" db:"description"`
	Color       sql.NullString  `json:"color,omitempty" db:"color"`
	Value       decimal.Decimal `json:"value" db:"value"`
	Probability float64         `json:"probability" db:"probability"`
	Remaining   int             `json:"remaining" db:"remaining"`

	// Position is the prize's index within the campaign's configured prize
	// list. Wheel segments and slot patterns are bound to this index, so it
	// stays stable even when out-of-stock prizes are filtered from the
	// snapshot.
	Position int `json:"position" db:"position"`
}

// InStock reports whether the prize can still be won.
func (p Prize) InStock() bool {
	return p.Remaining > 0
}

// Snapshot is the read model the draw layer works against: the campaign,
// its game (nil when unconfigured), conditions ordered by display order and
// only the prizes that are still in stock.
type Snapshot struct {
	Campaign   Campaign
	Game       *Game
	Conditions []Condition
	Prizes     []Prize
}

// PrizeIndex returns the configured position of a prize, matching how wheel
// segments and slot patterns are bound to prizes.
func (s *Snapshot) PrizeIndex(prizeID int64) (int, bool) {
	for _, p := range s.Prizes {
		if p.ID == prizeID {
			return p.Position, true
		}
	}
	return -1, false
}

// PrizeByID looks a prize up in the snapshot.
func (s *Snapshot) PrizeByID(prizeID int64) (*Prize, bool) {
	for i := range s.Prizes {
		if s.Prizes[i].ID == prizeID {
			return &s.Prizes[i], true
		}
	}
	return nil, false
}

// GameEnablingConditions returns the conditions that grant a play when
// completed, preserving display order.
func (s *Snapshot) GameEnablingConditions() []Condition {
	out := make([]Condition, 0, len(s.Conditions))
	for _, c := range s.Conditions {
		if c.EnablesGame {
			out = append(out, c)
		}
	}
	return out
}
