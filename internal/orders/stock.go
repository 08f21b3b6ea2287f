package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/steffenjoachim/my-shop/internal/apperr"
)

// Execer is the slice of pgx.Tx (and *pgxpool.Pool) the ledger needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StockLedger is the only writer of variation stock. Reserve uses a
// conditional update so two concurrent placements against the same
// variation can never both succeed when only one fits: the losing
// request sees zero affected rows instead of a stale read.
type StockLedger struct{}

// Reserve decrements a variation's stock by qty within the caller's
// transaction. There is no hold state; the reservation is final once
// that transaction commits, and gone if it rolls back.
func (StockLedger) Reserve(ctx context.Context, db Execer, variationID int64, qty int) error {
	if qty <= 0 {
		return apperr.Validationf("quantity must be positive, got %d", qty)
	}
	ct, err := db.Exec(ctx, `
		UPDATE product_variations
		SET stock = stock - $2
		WHERE id = $1 AND stock >= $2
	`, variationID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.ErrInsufficientStock
	}
	return nil
}

// Release is the compensating operation for cancellations.
func (StockLedger) Release(ctx context.Context, db Execer, variationID int64, qty int) error {
	if qty <= 0 {
		return apperr.Validationf("quantity must be positive, got %d", qty)
	}
	ct, err := db.Exec(ctx, `
		UPDATE product_variations
		SET stock = stock + $2
		WHERE id = $1
	`, variationID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("release stock: variation %d: %w", variationID, apperr.ErrNotFound)
	}
	return nil
}
