// internal/service/draw/snapshot.go
package draw

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"reviewspin-service/internal/domain/campaign"
	xerrors "reviewspin-service/internal/pkg/errors"
)

// SnapshotLoader assembles the read model for a draw: campaign, decoded game
// config, ordered conditions and in-stock prizes. Campaign configuration is
// served through an optional read-through cache; prize stock is always read
// fresh because stock drives eligibility.
type SnapshotLoader struct {
	campaigns CampaignStore
	cache     ConfigCache
	logger    *zap.Logger
}

func NewSnapshotLoader(campaigns CampaignStore, cache ConfigCache, logger *zap.Logger) *SnapshotLoader {
	return &SnapshotLoader{
		campaigns: campaigns,
		cache:     cache,
		logger:    logger,
	}
}

// Load returns the snapshot for a campaign. Fails with xerrors.ErrNotFound
// when the campaign does not exist, xerrors.ErrCampaignInactive when it is
// switched off, and xerrors.ErrCampaignNotConfigured when it has neither
// conditions nor prizes to draw from. Pure read, no side effects.
func (l *SnapshotLoader) Load(ctx context.Context, campaignID int64) (*campaign.Snapshot, error) {
	cfg, err := l.loadConfig(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if !cfg.Campaign.Active {
		return nil, xerrors.ErrCampaignInactive
	}

	game, err := cfg.Game()
	if err != nil {
		return nil, fmt.Errorf("failed to decode game config for campaign %d: %w", campaignID, err)
	}

	prizes, err := l.campaigns.GetInStockPrizes(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if len(cfg.Conditions) == 0 && len(prizes) == 0 {
		return nil, xerrors.ErrCampaignNotConfigured
	}

	return &campaign.Snapshot{
		Campaign:   cfg.Campaign,
		Game:       game,
		Conditions: cfg.Conditions,
		Prizes:     prizes,
	}, nil
}

func (l *SnapshotLoader) loadConfig(ctx context.Context, campaignID int64) (*campaign.Config, error) {
	if l.cache != nil {
		cfg, err := l.cache.Get(ctx, campaignID)
		if err != nil {
			// Cache trouble never fails a draw; the database is the source
			// of truth.
			l.logger.Warn("campaign config cache read failed", zap.Int64("campaign_id", campaignID), zap.Error(err))
		}
		if cfg != nil {
			return cfg, nil
		}
	}

	cfg, err := l.campaigns.GetConfig(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, cfg); err != nil {
			l.logger.Warn("campaign config cache write failed", zap.Int64("campaign_id", campaignID), zap.Error(err))
		}
	}

	return cfg, nil
}
