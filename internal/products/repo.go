package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/domain/catalog"
	"github.com/steffenjoachim/my-shop/internal/domain/review"
	"github.com/steffenjoachim/my-shop/internal/util"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so variation
// loading can run inside the order-placement transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type CreateVariationInput struct {
	Attributes map[string]string
	Stock      int
}

type CreateProductInput struct {
	CategoryID     *int64
	Title          string
	Description    string
	Price          decimal.Decimal
	MainImage      string
	DeliveryTimeID *int64
	Images         []string
	Variations     []CreateVariationInput
}

func (r *Repo) CreateProduct(ctx context.Context, in CreateProductInput) (catalog.Product, error) {
	if in.Price.IsNegative() {
		return catalog.Product{}, apperr.Validation("price must not be negative").WithField("price", "must not be negative")
	}
	if err := checkDuplicateCombinations(in.Variations); err != nil {
		return catalog.Product{}, err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return catalog.Product{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var productID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO products (category_id, title, slug, description, price, main_image, delivery_time_id, rating_avg, rating_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,0,0)
		RETURNING id
	`, in.CategoryID, in.Title, util.Slugify(in.Title), in.Description, in.Price, in.MainImage, in.DeliveryTimeID).Scan(&productID)
	if err != nil {
		return catalog.Product{}, err
	}

	for i, img := range in.Images {
		_, err := tx.Exec(ctx, `
			INSERT INTO product_images (product_id, image, is_primary)
			VALUES ($1,$2,$3)
		`, productID, img, i == 0)
		if err != nil {
			return catalog.Product{}, fmt.Errorf("image insert failed: %w", err)
		}
	}

	for _, v := range in.Variations {
		if _, err := r.insertVariation(ctx, tx, productID, v); err != nil {
			return catalog.Product{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return catalog.Product{}, err
	}
	return r.GetProduct(ctx, productID)
}

// AddVariation appends a variation to an existing product. The new
// attribute combination must differ from every sibling's; duplicates are
// rejected at write time so resolution stays unambiguous at read time.
func (r *Repo) AddVariation(ctx context.Context, productID int64, in CreateVariationInput) (catalog.Variation, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return catalog.Variation{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serialize concurrent variation writes for the same product.
	var exists bool
	err = tx.QueryRow(ctx, `SELECT true FROM products WHERE id=$1 FOR UPDATE`, productID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Variation{}, apperr.ErrNotFound
	}
	if err != nil {
		return catalog.Variation{}, err
	}

	existing, err := LoadVariations(ctx, tx, productID)
	if err != nil {
		return catalog.Variation{}, err
	}
	want := catalog.NormalizeSelection(in.Attributes)
	for _, v := range existing {
		if attrSetsEqual(v.AttributeSet(), want) {
			return catalog.Variation{}, apperr.Validation("a variation with this attribute combination already exists")
		}
	}

	id, err := r.insertVariation(ctx, tx, productID, in)
	if err != nil {
		return catalog.Variation{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return catalog.Variation{}, err
	}

	vars, err := LoadVariations(ctx, r.db, productID)
	if err != nil {
		return catalog.Variation{}, err
	}
	for _, v := range vars {
		if v.ID == id {
			return v, nil
		}
	}
	return catalog.Variation{}, apperr.ErrNotFound
}

func (r *Repo) insertVariation(ctx context.Context, tx pgx.Tx, productID int64, in CreateVariationInput) (int64, error) {
	if len(in.Attributes) == 0 {
		return 0, apperr.Validation("a variation needs at least one attribute")
	}
	if in.Stock < 0 {
		return 0, apperr.Validation("stock must not be negative")
	}

	var variationID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO product_variations (product_id, stock)
		VALUES ($1,$2)
		RETURNING id
	`, productID, in.Stock).Scan(&variationID)
	if err != nil {
		return 0, err
	}

	for typeName, value := range in.Attributes {
		valueID, err := r.getOrCreateAttributeValue(ctx, tx, typeName, value)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO variation_attributes (variation_id, attribute_value_id)
			VALUES ($1,$2)
		`, variationID, valueID)
		if err != nil {
			return 0, fmt.Errorf("variation attribute insert failed: %w", err)
		}
	}
	return variationID, nil
}

// Attribute axes and values are created on first use, so the admin form
// can type a new axis ("Material") and have it show up next time.
func (r *Repo) getOrCreateAttributeValue(ctx context.Context, tx pgx.Tx, typeName, value string) (int64, error) {
	var typeID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO attribute_types (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, typeName).Scan(&typeID)
	if err != nil {
		return 0, err
	}

	var valueID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO attribute_values (attribute_type_id, value)
		VALUES ($1,$2)
		ON CONFLICT (attribute_type_id, value) DO UPDATE SET value = EXCLUDED.value
		RETURNING id
	`, typeID, value).Scan(&valueID)
	return valueID, err
}

func (r *Repo) ListPublic(ctx context.Context, categorySlug *string) ([]catalog.Product, error) {
	q := `
		SELECT
		  p.id, p.category_id, COALESCE(c.name,''), p.title, p.slug, COALESCE(p.description,''),
		  p.price, COALESCE(p.main_image,''), p.rating_avg, p.rating_count, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	`
	args := []any{}
	if categorySlug != nil && *categorySlug != "" {
		q += " WHERE c.slug = $1 "
		args = append(args, *categorySlug)
	}
	q += " ORDER BY p.created_at DESC "

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Category, &p.Title, &p.Slug, &p.Description,
			&p.Price, &p.MainImage, &p.RatingAvg, &p.RatingCount, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetProduct(ctx context.Context, id int64) (catalog.Product, error) {
	var p catalog.Product
	var dt catalog.DeliveryTime
	var dtID *int64
	err := r.db.QueryRow(ctx, `
		SELECT
		  p.id, p.category_id, COALESCE(c.name,''), p.title, p.slug, COALESCE(p.description,''),
		  p.price, COALESCE(p.main_image,''), p.rating_avg, p.rating_count, p.created_at, p.updated_at,
		  p.delivery_time_id,
		  COALESCE(d.name,''), COALESCE(d.min_days,0), COALESCE(d.max_days,0), COALESCE(d.is_default,false)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN delivery_times d ON d.id = p.delivery_time_id
		WHERE p.id = $1
	`, id).Scan(
		&p.ID, &p.CategoryID, &p.Category, &p.Title, &p.Slug, &p.Description,
		&p.Price, &p.MainImage, &p.RatingAvg, &p.RatingCount, &p.CreatedAt, &p.UpdatedAt,
		&dtID, &dt.Name, &dt.MinDays, &dt.MaxDays, &dt.IsDefault,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Product{}, apperr.ErrNotFound
	}
	if err != nil {
		return catalog.Product{}, err
	}
	if dtID != nil {
		dt.ID = *dtID
		p.DeliveryTimeID = dtID
		p.DeliveryTime = &dt
	}

	if p.Images, err = r.loadImages(ctx, id); err != nil {
		return catalog.Product{}, err
	}
	if p.Variations, err = LoadVariations(ctx, r.db, id); err != nil {
		return catalog.Product{}, err
	}
	if p.RecentReviews, err = r.loadRecentReviews(ctx, id); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (r *Repo) loadImages(ctx context.Context, productID int64) ([]catalog.ProductImage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, image, is_primary
		FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, id ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.ProductImage
	for rows.Next() {
		var img catalog.ProductImage
		if err := rows.Scan(&img.ID, &img.Image, &img.IsPrimary); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *Repo) loadRecentReviews(ctx context.Context, productID int64) ([]review.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rv.id, rv.product_id, rv.user_id, COALESCE(u.name, u.email), rv.rating, rv.title, rv.body, rv.approved, rv.created_at, rv.updated_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.product_id = $1 AND rv.approved = true
		ORDER BY rv.created_at DESC
		LIMIT 3
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []review.Review
	for rows.Next() {
		var rv review.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.User, &rv.Rating, &rv.Title, &rv.Body, &rv.Approved, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// LoadVariations loads a product's variations with their full attribute
// sets. It accepts any Querier so the order assembler can call it on the
// transaction it already holds.
func LoadVariations(ctx context.Context, q Querier, productID int64) ([]catalog.Variation, error) {
	rows, err := q.Query(ctx, `
		SELECT v.id, v.product_id, v.stock, av.id, at.name, av.value
		FROM product_variations v
		JOIN variation_attributes va ON va.variation_id = v.id
		JOIN attribute_values av ON av.id = va.attribute_value_id
		JOIN attribute_types at ON at.id = av.attribute_type_id
		WHERE v.product_id = $1
		ORDER BY v.id ASC, at.name ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Variation
	for rows.Next() {
		var (
			variationID, productID int64
			stock                  int
			attr                   catalog.AttributeValue
		)
		if err := rows.Scan(&variationID, &productID, &stock, &attr.ID, &attr.AttributeType, &attr.Value); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ID != variationID {
			out = append(out, catalog.Variation{ID: variationID, ProductID: productID, Stock: stock})
		}
		last := &out[len(out)-1]
		last.Attributes = append(last.Attributes, attr)
	}
	return out, rows.Err()
}

func checkDuplicateCombinations(variations []CreateVariationInput) error {
	seen := make([]map[string]string, 0, len(variations))
	for _, v := range variations {
		norm := catalog.NormalizeSelection(v.Attributes)
		for _, prev := range seen {
			if attrSetsEqual(prev, norm) {
				return apperr.Validation("duplicate attribute combination across variations")
			}
		}
		seen = append(seen, norm)
	}
	return nil
}
