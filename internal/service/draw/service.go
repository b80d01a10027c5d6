// internal/service/draw/service.go
package draw

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"reviewspin-service/internal/domain/campaign"
	"reviewspin-service/internal/domain/draw"
	"reviewspin-service/internal/domain/participant"
	"reviewspin-service/internal/domain/winner"
	xerrors "reviewspin-service/internal/pkg/errors"
)

// Service is the engine's entry point for the request-handling layer. The
// outer layer owns authentication, parsing and serialization; this service
// owns everything between "may this customer play" and "the win is durable".
type Service struct {
	loader       *SnapshotLoader
	evaluator    *Evaluator
	executor     *Executor
	participants ParticipantStore
	winners      WinnerStore
	logger       *zap.Logger
}

func NewService(
	loader *SnapshotLoader,
	evaluator *Evaluator,
	executor *Executor,
	participants ParticipantStore,
	winners WinnerStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		loader:       loader,
		evaluator:    evaluator,
		executor:     executor,
		participants: participants,
		winners:      winners,
		logger:       logger,
	}
}

// Snapshot loads the campaign snapshot for the play page.
func (s *Service) Snapshot(ctx context.Context, campaignID int64) (*campaign.Snapshot, error) {
	return s.loader.Load(ctx, campaignID)
}

// CheckEligibility is the pre-play probe: it decides if a play would be
// allowed right now without consuming anything.
func (s *Service) CheckEligibility(ctx context.Context, campaignID int64, email string) (*draw.EligibilityResponse, error) {
	snap, err := s.loader.Load(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	elig, err := s.evaluator.Evaluate(ctx, snap, email)
	var inel *draw.IneligibleError
	if errors.As(err, &inel) {
		return &draw.EligibilityResponse{
			CanPlay:       false,
			Reason:        inel.Reason,
			Message:       inel.Message(),
			DaysRemaining: inel.DaysRemaining,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &draw.EligibilityResponse{CanPlay: true, Eligibility: elig}, nil
}

// Play executes one draw: load, re-validate, select, persist, respond.
func (s *Service) Play(ctx context.Context, campaignID int64, email, name string) (*draw.Result, error) {
	snap, err := s.loader.Load(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return s.executor.Execute(ctx, snap, email, name)
}

// CompleteCondition records that a customer finished one of the campaign's
// conditions, creating the participation row on first completion. This is
// the narrow entry point the review-ingestion side calls back into.
func (s *Service) CompleteCondition(ctx context.Context, campaignID, conditionID int64, email, name string) (*participant.Participant, error) {
	snap, err := s.loader.Load(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, c := range snap.Conditions {
		if c.ID == conditionID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("condition %d does not belong to campaign %d: %w", conditionID, campaignID, xerrors.ErrNotFound)
	}

	row, err := s.participants.AddCompletedCondition(ctx, campaignID, email, name, conditionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("condition completed",
		zap.Int64("campaign_id", campaignID),
		zap.Int64("condition_id", conditionID),
	)

	return row, nil
}

// ListWinners returns a campaign's recent winners for the dashboard side.
func (s *Service) ListWinners(ctx context.Context, campaignID int64, limit int) ([]winner.Winner, error) {
	return s.winners.ListByCampaign(ctx, campaignID, limit)
}
