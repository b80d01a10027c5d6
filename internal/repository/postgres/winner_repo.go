// internal/repository/postgres/winner_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	xerrors "reviewspin-service/internal/pkg/errors"

	"reviewspin-service/internal/domain/winner"
)

type WinnerRepository struct {
	db *pgxpool.Pool
}

func NewWinnerRepository(db *pgxpool.Pool) *WinnerRepository {
	return &WinnerRepository{db: db}
}

// CreateTx inserts a winner/claim record inside the given transaction. The
// caller pairs this with the prize stock decrement so the two commit or roll
// back together. A claim code collision surfaces as ErrDuplicateEntry.
func (r *WinnerRepository) CreateTx(ctx context.Context, tx pgx.Tx, w *winner.Winner) error {
	query := `
		INSERT INTO winners (reference, campaign_id, prize_id, draw_id, email, name, claim_code, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := tx.QueryRow(
		ctx, query,
		w.Reference, w.CampaignID, w.PrizeID, w.DrawID,
		w.Email, w.Name, w.ClaimCode, w.Status, w.ExpiresAt,
	).Scan(&w.ID, &w.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return xerrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to create winner: %w", err)
	}

	return nil
}

// FindByClaimCode retrieves a winner by its claim code.
func (r *WinnerRepository) FindByClaimCode(ctx context.Context, claimCode string) (*winner.Winner, error) {
	query := `
		SELECT id, reference, campaign_id, prize_id, draw_id, email, name, claim_code, status, expires_at, created_at
		FROM winners
		WHERE claim_code = $1
	`

	var w winner.Winner
	err := r.db.QueryRow(ctx, query, claimCode).Scan(
		&w.ID, &w.Reference, &w.CampaignID, &w.PrizeID, &w.DrawID,
		&w.Email, &w.Name, &w.ClaimCode, &w.Status, &w.ExpiresAt, &w.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find winner: %w", err)
	}

	return &w, nil
}

// ListByCampaign returns a campaign's winners, most recent first.
func (r *WinnerRepository) ListByCampaign(ctx context.Context, campaignID int64, limit int) ([]winner.Winner, error) {
	if limit < 1 {
		limit = 50
	}

	query := `
		SELECT id, reference, campaign_id, prize_id, draw_id, email, name, claim_code, status, expires_at, created_at
		FROM winners
		WHERE campaign_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}
	defer rows.Close()

	winners := []winner.Winner{}
	for rows.Next() {
		var w winner.Winner
		if err := rows.Scan(
			&w.ID, &w.Reference, &w.CampaignID, &w.PrizeID, &w.DrawID,
			&w.Email, &w.Name, &w.ClaimCode, &w.Status, &w.ExpiresAt, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		winners = append(winners, w)
	}

	return winners, rows.Err()
}
