// internal/domain/draw/entity.go
package draw

import (
	"fmt"
	"time"

	"reviewspin-service/internal/domain/campaign"
)

// IneligibleReason enumerates why a participant may not play right now.
type IneligibleReason string

const (
	ReasonCooldownNotElapsed             IneligibleReason = "COOLDOWN_NOT_ELAPSED"
	ReasonCampaignFull                   IneligibleReason = "CAMPAIGN_FULL"
	ReasonNoConditionCompleted           IneligibleReason = "NO_CONDITION_COMPLETED"
	ReasonAllPlayableConditionsExhausted IneligibleReason = "ALL_PLAYABLE_CONDITIONS_EXHAUSTED"
	ReasonAlreadyPlayed                  IneligibleReason = "ALREADY_PLAYED"
)

// IneligibleError is the terminal "cannot play" outcome of an eligibility
// evaluation. DaysRemaining is set only for ReasonCooldownNotElapsed.
type IneligibleError struct {
	Reason        IneligibleReason
	DaysRemaining int
}

func (e *IneligibleError) Error() string {
	if e.Reason == ReasonCooldownNotElapsed {
		return fmt.Sprintf("not eligible: %s (%d day(s) remaining)", e.Reason, e.DaysRemaining)
	}
	return fmt.Sprintf("not eligible: %s", e.Reason)
}

// Message returns a human-readable explanation for the play page.
func (e *IneligibleError) Message() string {
	switch e.Reason {
	case ReasonCooldownNotElapsed:
		return fmt.Sprintf("You can play again in %d day(s)", e.DaysRemaining)
	case ReasonCampaignFull:
		return "This campaign has reached its maximum number of participants"
	case ReasonNoConditionCompleted:
		return "Complete at least one condition to unlock the game"
	case ReasonAllPlayableConditionsExhausted:
		return "You have already used all your plays for this campaign"
	case ReasonAlreadyPlayed:
		return "You have already played this campaign"
	default:
		return "You are not eligible to play right now"
	}
}

// Eligibility is the positive result of an evaluation: the participant may
// play, consuming the named unlocking condition. Both fields are zero for
// condition-less campaigns.
type Eligibility struct {
	UnlockingConditionID   int64                  `json:"unlocking_condition_id,omitempty"`
	UnlockingConditionType campaign.ConditionType `json:"unlocking_condition_type,omitempty"`
}

// HasUnlockingCondition reports whether a condition is consumed by the play.
func (e Eligibility) HasUnlockingCondition() bool {
	return e.UnlockingConditionID != 0
}

// Outcome is the game-specific visual result of a draw. All fields empty
// means "no forced stop": the client renders a generic no-win animation.
type Outcome struct {
	SegmentID    *int64     `json:"segment_id,omitempty"`
	SymbolTriple *[3]string `json:"symbol_triple,omitempty"`
}

// Empty reports whether no visual binding was produced.
func (o Outcome) Empty() bool {
	return o.SegmentID == nil && o.SymbolTriple == nil
}

// Result is the outcome of one executed draw. Prize and claim fields are nil
// on a no-win play.
type Result struct {
	DrawID     string `json:"draw_id"`
	CampaignID int64  `json:"campaign_id"`
	Email      string `json:"email"`

	Won              bool       `json:"won"`
	PrizeID          *int64     `json:"prize_id,omitempty"`
	PrizeName        *string    `json:"prize_name,omitempty"`
	PrizeDescription *string    `json:"prize_description,omitempty"`
	PrizeValue       *string    `json:"prize_value,omitempty"`
	PrizeColor       *string    `json:"prize_color,omitempty"`
	ClaimCode        *string    `json:"claim_code,omitempty"`
	ClaimExpiresAt   *time.Time `json:"claim_expires_at,omitempty"`

	Outcome  Outcome   `json:"outcome"`
	PlayedAt time.Time `json:"played_at"`
}
