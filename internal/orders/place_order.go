package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/domain/order"
	"github.com/steffenjoachim/my-shop/internal/products"
)

// LineItem is one requested cart line: a product, how many, and which
// attribute combination (empty for products without variations).
type LineItem struct {
	ProductID          int64             `json:"product" binding:"required"`
	Quantity           int               `json:"quantity" binding:"required"`
	SelectedAttributes map[string]string `json:"selected_attributes"`
}

type PlaceOrderInput struct {
	UserID        int64
	Items         []LineItem
	Address       order.Address
	PaymentMethod order.PaymentMethod
}

func validatePlaceOrder(in PlaceOrderInput) *apperr.ValidationError {
	ve := &apperr.ValidationError{}
	if len(in.Items) == 0 {
		ve.Msg = "cartItems is required"
	}
	for _, f := range in.Address.MissingFields() {
		ve.WithField("address."+f, "required")
	}
	if !in.PaymentMethod.Valid() {
		ve.WithField("paymentMethod", "must be one of paypal, creditcard, invoice")
	}
	for i, it := range in.Items {
		if it.ProductID == 0 {
			ve.AddItem(i, it.ProductID, "product id missing")
		}
		if it.Quantity <= 0 {
			ve.AddItem(i, it.ProductID, "quantity must be positive")
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

type productSnapshot struct {
	Title     string
	MainImage string
	Price     decimal.Decimal
}

// PlaceOrder turns a cart into a persisted order, all-or-nothing.
//
// Inside one transaction it creates the order row, then walks the cart
// in array order: load the product, resolve the variation when the
// product has any, reserve stock through the ledger, and snapshot
// title/image/price into the order item. If any line fails, the whole
// transaction rolls back (including stock already reserved in it) and
// the aggregated per-item errors are returned; no partial order is ever
// observable. The paid flag always starts false — payment confirmation
// is a separate event, never inferred from the payment method.
func (r *Repo) PlaceOrder(ctx context.Context, in PlaceOrderInput) (order.Order, error) {
	if ve := validatePlaceOrder(in); ve != nil {
		return order.Order{}, ve
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o := order.Order{
		Number:        uuid.New(),
		UserID:        in.UserID,
		Address:       in.Address,
		PaymentMethod: in.PaymentMethod,
		Status:        order.StatusPending,
		Paid:          false,
		Total:         decimal.Zero,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (number, user_id, name, street, zip, city, payment_method, status, paid, total)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,false,0)
		RETURNING id, created_at
	`, o.Number, o.UserID, o.Address.Name, o.Address.Street, o.Address.Zip, o.Address.City,
		o.PaymentMethod, o.Status).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return order.Order{}, err
	}

	itemErrs := &apperr.ValidationError{}
	total := decimal.Zero

	for i, it := range in.Items {
		snap, err := loadProductSnapshot(ctx, tx, it.ProductID)
		if errors.Is(err, pgx.ErrNoRows) {
			itemErrs.AddItem(i, it.ProductID, "product not found")
			continue
		}
		if err != nil {
			return order.Order{}, err
		}

		variations, err := products.LoadVariations(ctx, tx, it.ProductID)
		if err != nil {
			return order.Order{}, err
		}

		var variationID *int64
		var variationAttrs map[string]string
		if len(variations) > 0 {
			v, err := products.ResolveVariation(variations, it.SelectedAttributes)
			if err != nil {
				itemErrs.AddItem(i, it.ProductID, "no matching variation for the selected attributes")
				continue
			}
			if err := r.stock.Reserve(ctx, tx, v.ID, it.Quantity); err != nil {
				if errors.Is(err, apperr.ErrInsufficientStock) {
					itemErrs.AddItem(i, it.ProductID, "insufficient stock")
					continue
				}
				return order.Order{}, err
			}
			variationID = &v.ID
			variationAttrs = v.AttributeSet()
		}

		item := order.Item{
			OrderID:             o.ID,
			ProductID:           it.ProductID,
			VariationID:         variationID,
			VariationAttributes: variationAttrs,
			ProductTitle:        snap.Title,
			ProductImage:        snap.MainImage,
			Price:               snap.Price,
			Quantity:            it.Quantity,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, variation_id, product_title, product_image, price, quantity)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`, item.OrderID, item.ProductID, item.VariationID, item.ProductTitle, item.ProductImage,
			item.Price, item.Quantity).Scan(&item.ID)
		if err != nil {
			return order.Order{}, err
		}

		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		o.Items = append(o.Items, item)
	}

	if itemErrs.HasErrors() {
		return order.Order{}, itemErrs
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET total = $2 WHERE id = $1`, o.ID, total); err != nil {
		return order.Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	o.Total = total
	return o, nil
}

func loadProductSnapshot(ctx context.Context, q products.Querier, productID int64) (productSnapshot, error) {
	var snap productSnapshot
	err := q.QueryRow(ctx, `
		SELECT title, COALESCE(main_image,''), price
		FROM products
		WHERE id = $1
	`, productID).Scan(&snap.Title, &snap.MainImage, &snap.Price)
	return snap, err
}
