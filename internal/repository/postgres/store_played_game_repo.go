// internal/repository/postgres/store_played_game_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"reviewspin-service/internal/domain/campaign"
	"reviewspin-service/internal/domain/participant"
)

type StorePlayedGameRepository struct {
	db *pgxpool.Pool
}

func NewStorePlayedGameRepository(db *pgxpool.Pool) *StorePlayedGameRepository {
	return &StorePlayedGameRepository{db: db}
}

// Upsert records that a customer consumed a play for a (store, condition
// type) pair. A single ON CONFLICT statement keyed on the unique triple, not
// a read-then-write, so concurrent plays from the same customer cannot lose
// updates.
func (r *StorePlayedGameRepository) Upsert(ctx context.Context, email string, storeID int64, conditionType campaign.ConditionType, campaignID int64, playedAt time.Time) error {
	query := `
		INSERT INTO store_played_games (email, store_id, condition_type, campaign_id, played_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email, store_id, condition_type) DO UPDATE SET
			campaign_id = EXCLUDED.campaign_id,
			played_at = EXCLUDED.played_at
	`

	if _, err := r.db.Exec(ctx, query, email, storeID, conditionType, campaignID, playedAt); err != nil {
		return fmt.Errorf("failed to upsert store played game: %w", err)
	}
	return nil
}

// PlayedConditionTypes returns the condition types for which the customer has
// already consumed a play at this store, across all of the store's campaigns.
func (r *StorePlayedGameRepository) PlayedConditionTypes(ctx context.Context, email string, storeID int64) ([]campaign.ConditionType, error) {
	query := `SELECT condition_type FROM store_played_games WHERE email = $1 AND store_id = $2`

	rows, err := r.db.Query(ctx, query, email, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list played condition types: %w", err)
	}
	defer rows.Close()

	types := []campaign.ConditionType{}
	for rows.Next() {
		var t campaign.ConditionType
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan condition type: %w", err)
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

// Find retrieves the dedup row for one (email, store, condition type) tuple.
func (r *StorePlayedGameRepository) Find(ctx context.Context, email string, storeID int64, conditionType campaign.ConditionType) (*participant.StorePlayedGame, error) {
	query := `
		SELECT id, email, store_id, condition_type, campaign_id, played_at
		FROM store_played_games
		WHERE email = $1 AND store_id = $2 AND condition_type = $3
	`

	var g participant.StorePlayedGame
	err := r.db.QueryRow(ctx, query, email, storeID, conditionType).Scan(
		&g.ID, &g.Email, &g.StoreID, &g.ConditionType, &g.CampaignID, &g.PlayedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find store played game: %w", err)
	}

	return &g, nil
}
