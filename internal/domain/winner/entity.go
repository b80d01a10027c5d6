// internal/domain/winner/entity.go
package winner

import (
	"database/sql"
	"time"
)

type ClaimStatus string

const (
	ClaimStatusPending ClaimStatus = "PENDING"
	ClaimStatusClaimed ClaimStatus = "CLAIMED"
	ClaimStatusExpired ClaimStatus = "EXPIRED"
	ClaimStatusRevoked ClaimStatus = "REVOKED"
)

// Winner records a won prize and the claim a customer presents in store.
// Created only by the draw executor; status transitions (redemption) are
// owned by the dashboard side.
type Winner struct {
	ID         int64          `json:"id" db:"id"`
	Reference  string         `json:"reference" db:"reference"` // ulid
	CampaignID int64          `json:"campaign_id" db:"campaign_id"`
	PrizeID    int64          `json:"prize_id" db:"prize_id"`
	DrawID     string         `json:"draw_id" db:"draw_id"`
	Email      string         `json:"email" db:"email"`
	Name       sql.NullString `json:"name,omitempty" db:"name"`
	ClaimCode  string         `json:"claim_code" db:"claim_code"`
	Status     ClaimStatus    `json:"status" db:"status"`
	ExpiresAt  time.Time      `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}
