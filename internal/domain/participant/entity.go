// internal/domain/participant/entity.go
package participant

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"reviewspin-service/internal/domain/campaign"
)

// Participant is one (email, campaign) pair. Condition id sets are stored as
// integer arrays; set semantics are enforced by the repository upserts.
type Participant struct {
	ID         int64          `json:"id" db:"id"`
	CampaignID int64          `json:"campaign_id" db:"campaign_id"`
	Email      string         `json:"email" db:"email"`
	Name       sql.NullString `json:"name,omitempty" db:"name"`

	HasPlayed bool         `json:"has_played" db:"has_played"`
	PlayCount int          `json:"play_count" db:"play_count"`
	PlayedAt  sql.NullTime `json:"played_at,omitempty" db:"played_at"`

	CompletedConditions pq.Int64Array `json:"completed_conditions" db:"completed_conditions"`
	PlayedConditions    pq.Int64Array `json:"played_conditions" db:"played_conditions"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasCompleted reports whether the given condition id is in the completed set.
func (p *Participant) HasCompleted(conditionID int64) bool {
	return containsID(p.CompletedConditions, conditionID)
}

// HasPlayedCondition reports whether the condition was already consumed for a play.
func (p *Participant) HasPlayedCondition(conditionID int64) bool {
	return containsID(p.PlayedConditions, conditionID)
}

func containsID(ids pq.Int64Array, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// StorePlayedGame is the per-store, per-email, per-condition-type dedup row.
// Unique on (email, store_id, condition_type); it records the most recent
// campaign that consumed a play for that tuple.
type StorePlayedGame struct {
	ID            int64                  `json:"id" db:"id"`
	Email         string                 `json:"email" db:"email"`
	StoreID       int64                  `json:"store_id" db:"store_id"`
	ConditionType campaign.ConditionType `json:"condition_type" db:"condition_type"`
	CampaignID    int64                  `json:"campaign_id" db:"campaign_id"`
	PlayedAt      time.Time              `json:"played_at" db:"played_at"`
}
