package returns

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/domain/returns"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const returnColumns = `
	r.id, r.order_id, r.item_id, r.user_id,
	r.reason, r.other_reason, r.comments, r.status,
	r.rejection_reason, r.rejection_comment, r.rejection_date,
	r.refund_name, r.refund_amount, r.refund_iban,
	u.email, COALESCE(u.name, u.email), oi.product_title,
	r.created_at, r.updated_at
`

const returnJoins = `
	FROM order_returns r
	JOIN users u ON u.id = r.user_id
	JOIN order_items oi ON oi.id = r.item_id
`

func scanReturn(row pgx.Row) (returns.Request, error) {
	var req returns.Request
	err := row.Scan(
		&req.ID, &req.OrderID, &req.ItemID, &req.UserID,
		&req.Reason, &req.OtherReason, &req.Comments, &req.Status,
		&req.RejectionReason, &req.RejectionComment, &req.RejectionDate,
		&req.RefundName, &req.RefundAmount, &req.RefundIBAN,
		&req.UserEmail, &req.UserName, &req.ProductTitle,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

func (r *Repo) Create(ctx context.Context, req returns.Request) (returns.Request, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO order_returns (order_id, item_id, user_id, reason, other_reason, comments, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, req.OrderID, req.ItemID, req.UserID, req.Reason, req.OtherReason, req.Comments, returns.StatusPending).Scan(&id)
	if err != nil {
		return returns.Request{}, err
	}
	return r.ByID(ctx, id)
}

func (r *Repo) ByID(ctx context.Context, id int64) (returns.Request, error) {
	req, err := scanReturn(r.db.QueryRow(ctx, `SELECT `+returnColumns+returnJoins+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return returns.Request{}, apperr.ErrNotFound
	}
	return req, err
}

func (r *Repo) ListForUser(ctx context.Context, userID int64) ([]returns.Request, error) {
	return r.list(ctx, `WHERE r.user_id = $1`, userID)
}

// ListAll includes closed returns (rejected, refunded) so the shipping
// UI can show them in its closed tab.
func (r *Repo) ListAll(ctx context.Context) ([]returns.Request, error) {
	return r.list(ctx, ``)
}

func (r *Repo) list(ctx context.Context, where string, args ...any) ([]returns.Request, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+returnColumns+returnJoins+where+`
		ORDER BY r.created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []returns.Request
	for rows.Next() {
		req, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// SaveTransition persists a status change plus whatever transition
// fields the workflow filled in.
func (r *Repo) SaveTransition(ctx context.Context, req returns.Request) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE order_returns
		SET status = $2,
		    rejection_reason = $3, rejection_comment = $4, rejection_date = $5,
		    refund_name = $6, refund_amount = $7, refund_iban = $8,
		    updated_at = now()
		WHERE id = $1
	`, req.ID, req.Status,
		req.RejectionReason, req.RejectionComment, req.RejectionDate,
		req.RefundName, req.RefundAmount, req.RefundIBAN)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
