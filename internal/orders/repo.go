package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/domain/order"
)

type Repo struct {
	db    *pgxpool.Pool
	stock StockLedger
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const orderColumns = `
	o.id, o.number, o.user_id, COALESCE(u.name, u.email),
	o.name, o.street, o.zip, o.city,
	o.payment_method, o.shipping_carrier, o.tracking_number,
	o.status, o.paid, o.total, o.created_at
`

func scanOrder(row pgx.Row) (order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.Number, &o.UserID, &o.User,
		&o.Address.Name, &o.Address.Street, &o.Address.Zip, &o.Address.City,
		&o.PaymentMethod, &o.ShippingCarrier, &o.TrackingNumber,
		&o.Status, &o.Paid, &o.Total, &o.CreatedAt,
	)
	return o, err
}

func (r *Repo) Get(ctx context.Context, id int64) (order.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, apperr.ErrNotFound
	}
	if err != nil {
		return order.Order{}, err
	}
	if o.Items, err = r.loadItems(ctx, o.ID); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

func (r *Repo) ListForUser(ctx context.Context, userID int64) ([]order.Order, error) {
	return r.list(ctx, `WHERE o.user_id = $1`, userID)
}

// ListByStatuses feeds the shipping UI; an empty filter lists all.
func (r *Repo) ListByStatuses(ctx context.Context, statuses []order.Status) ([]order.Order, error) {
	if len(statuses) == 0 {
		return r.list(ctx, "")
	}
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	return r.list(ctx, `WHERE o.status = ANY($1)`, strs)
}

func (r *Repo) list(ctx context.Context, where string, args ...any) ([]order.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN users u ON u.id = o.user_id
		`+where+`
		ORDER BY o.created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Items, err = r.loadItems(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repo) loadItems(ctx context.Context, orderID int64) ([]order.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, variation_id, product_title, COALESCE(product_image,''), price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariationID,
			&it.ProductTitle, &it.ProductImage, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Cancel sets a pending order to cancelled and gives reserved stock
// back. Any other current status is rejected.
func (r *Repo) Cancel(ctx context.Context, orderID, userID int64, staff bool) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ownerID int64
	var status order.Status
	err = tx.QueryRow(ctx, `
		SELECT user_id, status FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&ownerID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return err
	}
	if !staff && ownerID != userID {
		return apperr.ErrPermission
	}
	if !status.CanTransitionTo(order.StatusCancelled) {
		return apperr.Validationf("only pending orders can be cancelled, order is %s", status)
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, order.StatusCancelled); err != nil {
		return err
	}

	rows, err := tx.Query(ctx, `
		SELECT variation_id, quantity
		FROM order_items
		WHERE order_id = $1 AND variation_id IS NOT NULL
	`, orderID)
	if err != nil {
		return err
	}
	type release struct {
		variationID int64
		qty         int
	}
	var releases []release
	for rows.Next() {
		var rel release
		if err := rows.Scan(&rel.variationID, &rel.qty); err != nil {
			rows.Close()
			return err
		}
		releases = append(releases, rel)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, rel := range releases {
		if err := r.stock.Release(ctx, tx, rel.variationID, rel.qty); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

type StatusUpdate struct {
	Status order.Status
	// Carrier and tracking may be supplied together with the
	// transition; ready_to_ship and shipped require both to be present
	// by then.
	Carrier  *order.Carrier
	Tracking *string
}

func (r *Repo) UpdateStatus(ctx context.Context, orderID int64, in StatusUpdate) (order.Order, error) {
	if !in.Status.Valid() {
		return order.Order{}, apperr.Validationf("invalid status %q", in.Status)
	}
	if in.Carrier != nil && !in.Carrier.Valid() {
		return order.Order{}, apperr.Validationf("invalid shipping carrier %q", *in.Carrier)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current order.Status
	var carrier *order.Carrier
	var tracking *string
	err = tx.QueryRow(ctx, `
		SELECT status, shipping_carrier, tracking_number FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&current, &carrier, &tracking)
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, apperr.ErrNotFound
	}
	if err != nil {
		return order.Order{}, err
	}

	if !current.CanTransitionTo(in.Status) {
		return order.Order{}, fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, current, in.Status)
	}

	if in.Carrier != nil {
		carrier = in.Carrier
	}
	if in.Tracking != nil && *in.Tracking != "" {
		tracking = in.Tracking
	}
	if in.Status.RequiresShippingInfo() {
		if carrier == nil || tracking == nil || *tracking == "" {
			return order.Order{}, apperr.Validationf("status %s requires shipping carrier and tracking number", in.Status)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE orders
		SET status = $2, shipping_carrier = $3, tracking_number = $4
		WHERE id = $1
	`, orderID, in.Status, carrier, tracking)
	if err != nil {
		return order.Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}
	return r.Get(ctx, orderID)
}

// SetShipping records carrier and tracking number ahead of the
// ready_to_ship transition.
func (r *Repo) SetShipping(ctx context.Context, orderID int64, carrier order.Carrier, tracking string) (order.Order, error) {
	if !carrier.Valid() {
		return order.Order{}, apperr.Validationf("invalid shipping carrier %q", carrier)
	}
	if tracking == "" {
		return order.Order{}, apperr.Validation("tracking number is required")
	}
	ct, err := r.db.Exec(ctx, `
		UPDATE orders SET shipping_carrier = $2, tracking_number = $3 WHERE id = $1
	`, orderID, carrier, tracking)
	if err != nil {
		return order.Order{}, err
	}
	if ct.RowsAffected() == 0 {
		return order.Order{}, apperr.ErrNotFound
	}
	return r.Get(ctx, orderID)
}

// MarkPaid records an explicit payment confirmation. The paid flag is
// never derived from the chosen payment method.
func (r *Repo) MarkPaid(ctx context.Context, orderID int64) (order.Order, error) {
	ct, err := r.db.Exec(ctx, `UPDATE orders SET paid = true WHERE id = $1`, orderID)
	if err != nil {
		return order.Order{}, err
	}
	if ct.RowsAffected() == 0 {
		return order.Order{}, apperr.ErrNotFound
	}
	return r.Get(ctx, orderID)
}
