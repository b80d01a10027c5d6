// internal/service/draw/executor.go
package draw

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"reviewspin-service/internal/domain/campaign"
	"reviewspin-service/internal/domain/draw"
	"reviewspin-service/internal/domain/winner"
	"reviewspin-service/internal/pkg/claimcode"
	xerrors "reviewspin-service/internal/pkg/errors"
)

// claimCodeRetries bounds regeneration attempts on a claim code collision.
const claimCodeRetries = 5

// Executor runs one draw end to end: re-validate eligibility, select a
// prize, persist participant and dedup state, commit the win atomically and
// emit the result. It is the only effectful component of the engine.
type Executor struct {
	evaluator    *Evaluator
	selector     *PrizeSelector
	mapper       *OutcomeMapper
	participants ParticipantStore
	storePlays   StorePlayedGameStore
	committer    WinCommitter
	publisher    WinPublisher
	logger       *zap.Logger
	now          func() time.Time
}

func NewExecutor(
	evaluator *Evaluator,
	selector *PrizeSelector,
	mapper *OutcomeMapper,
	participants ParticipantStore,
	storePlays StorePlayedGameStore,
	committer WinCommitter,
	publisher WinPublisher,
	logger *zap.Logger,
	now func() time.Time,
) *Executor {
	if now == nil {
		now = time.Now
	}
	return &Executor{
		evaluator:    evaluator,
		selector:     selector,
		mapper:       mapper,
		participants: participants,
		storePlays:   storePlays,
		committer:    committer,
		publisher:    publisher,
		logger:       logger,
		now:          now,
	}
}

// Execute performs the draw for an eligible participant. Eligibility is
// re-evaluated here regardless of any earlier probe, so a snapshot that went
// stale between check and play cannot authorize a free ride.
func (e *Executor) Execute(ctx context.Context, snap *campaign.Snapshot, email, name string) (*draw.Result, error) {
	elig, err := e.evaluator.Evaluate(ctx, snap, email)
	if err != nil {
		return nil, err
	}

	drawID := uuid.NewString()
	playedAt := e.now()
	wonPrizeID, won := e.selector.Select(snap.Prizes)

	// Participant and store-dedup bookkeeping commit no later than the prize
	// decrement: the play is consumed even if the draw later degrades to a
	// no-win.
	var unlockingID *int64
	if elig.HasUnlockingCondition() {
		unlockingID = &elig.UnlockingConditionID
	}
	if _, err := e.participants.RecordPlay(ctx, snap.Campaign.ID, email, name, playedAt, unlockingID); err != nil {
		return nil, fmt.Errorf("failed to record play: %w", err)
	}

	if elig.HasUnlockingCondition() {
		err := e.storePlays.Upsert(ctx, email, snap.Campaign.StoreID, elig.UnlockingConditionType, snap.Campaign.ID, playedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to record store play dedup: %w", err)
		}
	}

	var wonPrize *campaign.Prize
	var claim *winner.Winner
	if won {
		prize, ok := snap.PrizeByID(wonPrizeID)
		if !ok {
			return nil, fmt.Errorf("selected prize %d missing from snapshot", wonPrizeID)
		}

		claim, err = e.commitWin(ctx, snap, prize, drawID, email, name, playedAt)
		if errors.Is(err, xerrors.ErrPrizeExhausted) {
			// Lost the race for the last unit: the draw degrades to a
			// no-prize outcome, the consumed play stands.
			e.logger.Info("prize exhausted during draw, degrading to no-win",
				zap.Int64("campaign_id", snap.Campaign.ID),
				zap.Int64("prize_id", prize.ID),
				zap.String("draw_id", drawID),
			)
			won = false
			claim = nil
		} else if err != nil {
			return nil, err
		} else {
			wonPrize = prize
		}
	}

	result := e.buildResult(snap, drawID, email, wonPrize, claim, playedAt)

	if wonPrize != nil && e.publisher != nil {
		e.publisher.PublishWin(WinEvent{
			StoreID:     snap.Campaign.StoreID,
			CampaignID:  snap.Campaign.ID,
			PrizeName:   wonPrize.Name,
			MaskedEmail: maskEmail(email),
			WonAt:       playedAt,
		})
	}

	e.logger.Info("draw executed",
		zap.String("draw_id", drawID),
		zap.Int64("campaign_id", snap.Campaign.ID),
		zap.Bool("won", result.Won),
	)

	return result, nil
}

func (e *Executor) commitWin(ctx context.Context, snap *campaign.Snapshot, prize *campaign.Prize, drawID, email, name string, playedAt time.Time) (*winner.Winner, error) {
	expiresAt := playedAt.AddDate(0, 0, snap.Campaign.PrizeClaimExpiryDays)

	for attempt := 0; attempt < claimCodeRetries; attempt++ {
		code, err := claimcode.New()
		if err != nil {
			return nil, err
		}

		w := &winner.Winner{
			Reference:  ulid.Make().String(),
			CampaignID: snap.Campaign.ID,
			PrizeID:    prize.ID,
			DrawID:     drawID,
			Email:      email,
			ClaimCode:  code,
			Status:     winner.ClaimStatusPending,
			ExpiresAt:  expiresAt,
		}
		if name != "" {
			w.Name.String = name
			w.Name.Valid = true
		}

		err = e.committer.CommitWin(ctx, w)
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return w, nil
	}

	return nil, fmt.Errorf("failed to generate a unique claim code after %d attempts", claimCodeRetries)
}

func (e *Executor) buildResult(snap *campaign.Snapshot, drawID, email string, prize *campaign.Prize, claim *winner.Winner, playedAt time.Time) *draw.Result {
	result := &draw.Result{
		DrawID:     drawID,
		CampaignID: snap.Campaign.ID,
		Email:      email,
		PlayedAt:   playedAt,
	}

	if prize == nil || claim == nil {
		result.Outcome = e.mapper.MapOutcome(snap, 0, false)
		return result
	}

	result.Won = true
	result.PrizeID = &prize.ID
	result.PrizeName = &prize.Name
	if prize.Description.Valid {
		result.PrizeDescription = &prize.Description.String
	}
	if prize.Color.Valid {
		result.PrizeColor = &prize.Color.String
	}
	value := prize.Value.StringFixed(2)
	result.PrizeValue = &value
	result.ClaimCode = &claim.ClaimCode
	result.ClaimExpiresAt = &claim.ExpiresAt
	result.Outcome = e.mapper.MapOutcome(snap, prize.ID, true)

	return result
}

// maskEmail hides most of the local part: "customer@host.com" becomes
// "cu*****@host.com".
func maskEmail(email string) string {
	at := -1
	for i, r := range email {
		if r == '@' {
			at = i
			break
		}
	}
	if at < 0 {
		return "*****"
	}
	if at <= 2 {
		return "*****" + email[at:]
	}
	return email[:2] + "*****" + email[at:]
}
