// internal/repository/postgres/draw_repo.go
package postgres

import (
	"context"
	"fmt"

	"reviewspin-service/internal/domain/winner"
	xerrors "reviewspin-service/internal/pkg/errors"
)

// DrawRepository owns the one transaction boundary that matters: a winner
// row must never exist without its prize stock decrement, nor vice versa.
type DrawRepository struct {
	db      *DB
	winners *WinnerRepository
	prizes  *PrizeRepository
}

func NewDrawRepository(db *DB, winners *WinnerRepository, prizes *PrizeRepository) *DrawRepository {
	return &DrawRepository{db: db, winners: winners, prizes: prizes}
}

// CommitWin decrements the prize's stock and creates the winner row in one
// transaction. When the conditional decrement affects no rows the prize is
// exhausted: the transaction rolls back and ErrPrizeExhausted tells the
// caller to downgrade the draw to a no-prize outcome. A claim code collision
// rolls back with ErrDuplicateEntry so the caller can retry with a new code.
func (r *DrawRepository) CommitWin(ctx context.Context, w *winner.Winner) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	decremented, err := r.prizes.ConditionalDecrementTx(ctx, tx, w.PrizeID)
	if err != nil {
		return err
	}
	if !decremented {
		return xerrors.ErrPrizeExhausted
	}

	if err := r.winners.CreateTx(ctx, tx, w); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit win: %w", err)
	}
	return nil
}
