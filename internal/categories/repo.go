package categories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steffenjoachim/my-shop/internal/domain/catalog"
	"github.com/steffenjoachim/my-shop/internal/util"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context) ([]catalog.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, COALESCE(display_name,''), slug, sort_order, created_at, updated_at
		FROM categories
		ORDER BY sort_order ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayName, &c.Slug, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, name, displayName string, sortOrder int) (catalog.Category, error) {
	slug := util.Slugify(name)

	var c catalog.Category
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (name, display_name, slug, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, COALESCE(display_name,''), slug, sort_order, created_at, updated_at
	`, name, displayName, slug, sortOrder).Scan(
		&c.ID, &c.Name, &c.DisplayName, &c.Slug, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *Repo) Update(ctx context.Context, id int64, name, displayName *string, sortOrder *int) (catalog.Category, error) {
	// Keep slug synced with name if name updated (simple approach)
	var c catalog.Category
	err := r.db.QueryRow(ctx, `
		UPDATE categories
		SET
		  name = COALESCE($2, name),
		  display_name = COALESCE($3, display_name),
		  sort_order = COALESCE($4, sort_order),
		  slug = CASE WHEN $2 IS NULL THEN slug ELSE $5 END,
		  updated_at = now()
		WHERE id = $1
		RETURNING id, name, COALESCE(display_name,''), slug, sort_order, created_at, updated_at
	`, id, name, displayName, sortOrder, func() any {
		if name == nil {
			return nil
		}
		s := util.Slugify(*name)
		return s
	}()).Scan(&c.ID, &c.Name, &c.DisplayName, &c.Slug, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *Repo) ListDeliveryTimes(ctx context.Context) ([]catalog.DeliveryTime, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, min_days, max_days, is_default
		FROM delivery_times
		ORDER BY min_days ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.DeliveryTime
	for rows.Next() {
		var d catalog.DeliveryTime
		if err := rows.Scan(&d.ID, &d.Name, &d.MinDays, &d.MaxDays, &d.IsDefault); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
