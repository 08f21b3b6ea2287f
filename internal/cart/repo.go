package cart

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steffenjoachim/my-shop/internal/domain/cart"
	"github.com/steffenjoachim/my-shop/internal/domain/catalog"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) getOrCreateCartID(ctx context.Context, userID int64) (int64, error) {
	var cartID int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id
	`, userID).Scan(&cartID)
	return cartID, err
}

// attrsJSON serializes a selection for the cart-line key. The map is
// normalized first so "Color"/" color " collapse to one line, and JSON
// marshalling sorts map keys, so equal selections always produce equal
// jsonb values.
func attrsJSON(selected map[string]string) ([]byte, error) {
	if selected == nil {
		selected = map[string]string{}
	}
	return json.Marshal(catalog.NormalizeSelection(selected))
}

func (r *Repo) AddItem(ctx context.Context, userID, productID int64, selected map[string]string, qty int) error {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return err
	}
	attrs, err := attrsJSON(selected)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, attributes, qty)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (cart_id, product_id, attributes)
		DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty
	`, cartID, productID, attrs, qty)
	return err
}

func (r *Repo) UpdateQty(ctx context.Context, userID, productID int64, selected map[string]string, qty int) error {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return err
	}
	attrs, err := attrsJSON(selected)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		UPDATE cart_items
		SET qty = $4
		WHERE cart_id = $1 AND product_id = $2 AND attributes = $3
	`, cartID, productID, attrs, qty)
	return err
}

func (r *Repo) RemoveItem(ctx context.Context, userID, productID int64, selected map[string]string) error {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return err
	}
	attrs, err := attrsJSON(selected)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2 AND attributes = $3
	`, cartID, productID, attrs)
	return err
}

func (r *Repo) Clear(ctx context.Context, userID int64) error {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

func (r *Repo) GetCart(ctx context.Context, userID int64) (cart.Cart, error) {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return cart.Cart{}, err
	}

	out := cart.Cart{ID: cartID, UserID: userID}

	rows, err := r.db.Query(ctx, `
		SELECT
		  ci.id, ci.product_id, ci.attributes, ci.qty,
		  p.title, COALESCE(p.main_image,''), p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at DESC
	`, cartID)
	if err != nil {
		return cart.Cart{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it cart.Item
		var attrs []byte
		if err := rows.Scan(
			&it.ID, &it.ProductID, &attrs, &it.Qty,
			&it.ProductTitle, &it.ProductImage, &it.Price,
		); err != nil {
			return cart.Cart{}, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &it.SelectedAttributes); err != nil {
				return cart.Cart{}, err
			}
		}
		if len(it.SelectedAttributes) == 0 {
			it.SelectedAttributes = nil
		}
		out.Items = append(out.Items, it)
	}
	return out, rows.Err()
}
