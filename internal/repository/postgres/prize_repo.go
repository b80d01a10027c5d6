// internal/repository/postgres/prize_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PrizeRepository struct {
	db *pgxpool.Pool
}

func NewPrizeRepository(db *pgxpool.Pool) *PrizeRepository {
	return &PrizeRepository{db: db}
}

// ConditionalDecrementTx atomically consumes one unit of a prize's stock
// inside the given transaction. Returns false when the prize was already
// exhausted: the guard makes two concurrent draws racing for the last unit
// resolve with exactly one winner, without locks.
func (r *PrizeRepository) ConditionalDecrementTx(ctx context.Context, tx pgx.Tx, prizeID int64) (bool, error) {
	query := `UPDATE prizes SET remaining = remaining - 1 WHERE id = $1 AND remaining > 0`

	result, err := tx.Exec(ctx, query, prizeID)
	if err != nil {
		return false, fmt.Errorf("failed to decrement prize stock: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
