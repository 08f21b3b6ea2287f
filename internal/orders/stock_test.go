package orders

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steffenjoachim/my-shop/internal/apperr"
)

type fakeExecer struct {
	tag  pgconn.CommandTag
	err  error
	sql  string
	args []any
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = sql
	f.args = args
	return f.tag, f.err
}

func TestStockLedger_ReserveOK(t *testing.T) {
	db := &fakeExecer{tag: pgconn.NewCommandTag("UPDATE 1")}
	err := StockLedger{}.Reserve(context.Background(), db, 42, 3)
	require.NoError(t, err)

	// The decrement must be conditional on remaining stock, otherwise
	// two concurrent placements could both read-then-write.
	assert.Contains(t, db.sql, "stock >= $2")
	assert.Equal(t, []any{int64(42), 3}, db.args)
}

func TestStockLedger_ReserveInsufficient(t *testing.T) {
	// Zero affected rows: either sold out or a concurrent placement
	// got there first.
	db := &fakeExecer{tag: pgconn.NewCommandTag("UPDATE 0")}
	err := StockLedger{}.Reserve(context.Background(), db, 42, 99)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
}

func TestStockLedger_ReserveRejectsNonPositiveQty(t *testing.T) {
	db := &fakeExecer{tag: pgconn.NewCommandTag("UPDATE 1")}
	var ve *apperr.ValidationError

	err := StockLedger{}.Reserve(context.Background(), db, 42, 0)
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, db.sql, "no SQL may run for an invalid quantity")

	err = StockLedger{}.Reserve(context.Background(), db, 42, -2)
	require.ErrorAs(t, err, &ve)
}

func TestStockLedger_ReleaseOK(t *testing.T) {
	db := &fakeExecer{tag: pgconn.NewCommandTag("UPDATE 1")}
	err := StockLedger{}.Release(context.Background(), db, 42, 3)
	require.NoError(t, err)
	assert.Contains(t, db.sql, "stock + $2")
}

func TestStockLedger_ReleaseMissingVariation(t *testing.T) {
	db := &fakeExecer{tag: pgconn.NewCommandTag("UPDATE 0")}
	err := StockLedger{}.Release(context.Background(), db, 42, 3)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
