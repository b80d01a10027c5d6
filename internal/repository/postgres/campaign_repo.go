// internal/repository/postgres/campaign_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reviewspin-service/internal/domain/campaign"
	xerrors "reviewspin-service/internal/pkg/errors"
)

type CampaignRepository struct {
	db *pgxpool.Pool
}

func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// GetConfig retrieves a campaign together with its game definition and its
// conditions ordered by display order. Prize stock is volatile and is read
// separately via GetInStockPrizes.
func (r *CampaignRepository) GetConfig(ctx context.Context, campaignID int64) (*campaign.Config, error) {
	query := `
		SELECT c.id, c.store_id, c.name, c.active,
		       c.max_participants, c.min_days_between_plays, c.prize_claim_expiry_days,
		       c.created_at, c.updated_at,
		       COALESCE(g.id, 0), COALESCE(g.game_type, ''), COALESCE(g.config, '{}'::jsonb)
		FROM campaigns c
		LEFT JOIN games g ON g.campaign_id = c.id
		WHERE c.id = $1
	`

	var cfg campaign.Config
	err := r.db.QueryRow(ctx, query, campaignID).Scan(
		&cfg.Campaign.ID, &cfg.Campaign.StoreID, &cfg.Campaign.Name, &cfg.Campaign.Active,
		&cfg.Campaign.MaxParticipants, &cfg.Campaign.MinDaysBetweenPlays, &cfg.Campaign.PrizeClaimExpiryDays,
		&cfg.Campaign.CreatedAt, &cfg.Campaign.UpdatedAt,
		&cfg.GameID, &cfg.GameType, &cfg.GameConfig,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	conditions, err := r.getConditions(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	cfg.Conditions = conditions

	return &cfg, nil
}

func (r *CampaignRepository) getConditions(ctx context.Context, campaignID int64) ([]campaign.Condition, error) {
	query := `
		SELECT id, campaign_id, condition_type, display_order, enables_game, is_required, label, target_url
		FROM conditions
		WHERE campaign_id = $1
		ORDER BY display_order ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conditions: %w", err)
	}
	defer rows.Close()

	conditions := []campaign.Condition{}
	for rows.Next() {
		var c campaign.Condition
		if err := rows.Scan(
			&c.ID, &c.CampaignID, &c.Type, &c.DisplayOrder,
			&c.EnablesGame, &c.IsRequired, &c.Label, &c.TargetURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan condition: %w", err)
		}
		conditions = append(conditions, c)
	}

	return conditions, rows.Err()
}

// GetInStockPrizes returns the campaign's prizes with remaining > 0, in
// configured position order. Out-of-stock prizes are invisible to the draw
// layer by construction.
func (r *CampaignRepository) GetInStockPrizes(ctx context.Context, campaignID int64) ([]campaign.Prize, error) {
	query := `
		SELECT id, campaign_id, name, description, color, value, probability, remaining, position
		FROM prizes
		WHERE campaign_id = $1 AND remaining > 0
		ORDER BY position ASC
	`

	rows, err := r.db.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	defer rows.Close()

	prizes := []campaign.Prize{}
	for rows.Next() {
		var p campaign.Prize
		if err := rows.Scan(
			&p.ID, &p.CampaignID, &p.Name, &p.Description, &p.Color,
			&p.Value, &p.Probability, &p.Remaining, &p.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prize: %w", err)
		}
		prizes = append(prizes, p)
	}

	return prizes, rows.Err()
}
