// internal/service/draw/eligibility.go
package draw

import (
	"context"
	"errors"
	"sort"
	"time"

	"reviewspin-service/internal/domain/campaign"
	"reviewspin-service/internal/domain/draw"
	"reviewspin-service/internal/domain/participant"
	xerrors "reviewspin-service/internal/pkg/errors"
)

// Evaluator decides whether a participant may play right now and which
// unlocking condition the play consumes. It is a pure decision function over
// loaded state; the only I/O is the reads against the participant and
// store-dedup collaborators.
type Evaluator struct {
	participants ParticipantStore
	storePlays   StorePlayedGameStore
	now          func() time.Time
}

func NewEvaluator(participants ParticipantStore, storePlays StorePlayedGameStore, now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{
		participants: participants,
		storePlays:   storePlays,
		now:          now,
	}
}

// Evaluate runs the decision sequence; the first failing check wins:
// cooldown, capacity, condition gating, then the no-conditions fallback.
// An ineligible participant gets a *draw.IneligibleError carrying the
// specific reason.
func (e *Evaluator) Evaluate(ctx context.Context, snap *campaign.Snapshot, email string) (*draw.Eligibility, error) {
	row, err := e.participants.FindByEmailAndCampaign(ctx, email, snap.Campaign.ID)
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}
	if errors.Is(err, xerrors.ErrNotFound) {
		row = nil
	}

	// 1. Cooldown
	if row != nil && row.PlayedAt.Valid && snap.Campaign.MinDaysBetweenPlays.Valid {
		cooldown := int(snap.Campaign.MinDaysBetweenPlays.Int32)
		elapsed := int(e.now().Sub(row.PlayedAt.Time).Hours() / 24)
		if elapsed < cooldown {
			return nil, &draw.IneligibleError{
				Reason:        draw.ReasonCooldownNotElapsed,
				DaysRemaining: cooldown - elapsed,
			}
		}
	}

	// 2. Capacity. Participants who already played are inside the cap and
	// keep the replays they earned; everyone else is gated on the number of
	// distinct customers who have played.
	if (row == nil || !row.HasPlayed) && snap.Campaign.MaxParticipants.Valid {
		count, err := e.participants.CountPlayed(ctx, snap.Campaign.ID)
		if err != nil {
			return nil, err
		}
		if count >= int64(snap.Campaign.MaxParticipants.Int32) {
			return nil, &draw.IneligibleError{Reason: draw.ReasonCampaignFull}
		}
	}

	// 3. Condition gating
	if len(snap.Conditions) > 0 {
		if row == nil {
			return nil, &draw.IneligibleError{Reason: draw.ReasonNoConditionCompleted}
		}
		return e.pickUnlockingCondition(ctx, snap, row)
	}

	// 4. No-conditions fallback: a single play, ever.
	if row != nil && row.HasPlayed {
		return nil, &draw.IneligibleError{Reason: draw.ReasonAlreadyPlayed}
	}
	return &draw.Eligibility{}, nil
}

// pickUnlockingCondition computes the playable set: completed game-enabling
// conditions, minus those already consumed for a play, minus those whose
// type already has a store-level dedup record for this customer. The winner
// is the lowest display order, ties broken by condition id.
func (e *Evaluator) pickUnlockingCondition(ctx context.Context, snap *campaign.Snapshot, row *participant.Participant) (*draw.Eligibility, error) {
	playedTypes, err := e.storePlays.PlayedConditionTypes(ctx, row.Email, snap.Campaign.StoreID)
	if err != nil {
		return nil, err
	}
	typeUsed := make(map[campaign.ConditionType]bool, len(playedTypes))
	for _, t := range playedTypes {
		typeUsed[t] = true
	}

	playable := make([]campaign.Condition, 0, len(snap.Conditions))
	for _, c := range snap.Conditions {
		if !c.EnablesGame || !row.HasCompleted(c.ID) {
			continue
		}
		if row.HasPlayedCondition(c.ID) {
			continue
		}
		if typeUsed[c.Type] {
			continue
		}
		playable = append(playable, c)
	}

	if len(playable) == 0 {
		return nil, &draw.IneligibleError{Reason: draw.ReasonAllPlayableConditionsExhausted}
	}

	sort.SliceStable(playable, func(i, j int) bool {
		if playable[i].DisplayOrder != playable[j].DisplayOrder {
			return playable[i].DisplayOrder < playable[j].DisplayOrder
		}
		return playable[i].ID < playable[j].ID
	})

	chosen := playable[0]
	return &draw.Eligibility{
		UnlockingConditionID:   chosen.ID,
		UnlockingConditionType: chosen.Type,
	}, nil
}
