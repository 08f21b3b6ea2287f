package reviews

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/domain/review"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type CreateInput struct {
	ProductID int64
	UserID    int64
	Rating    int
	Title     string
	Body      string
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (review.Review, error) {
	if !review.ValidRating(in.Rating) {
		return review.Review{}, apperr.Validation("rating must be between 1 and 5").WithField("rating", "must be between 1 and 5")
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO reviews (product_id, user_id, rating, title, body, approved)
		VALUES ($1,$2,$3,$4,$5,true)
		RETURNING id
	`, in.ProductID, in.UserID, in.Rating, in.Title, in.Body).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return review.Review{}, apperr.Validation("you have already reviewed this product")
		}
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return review.Review{}, apperr.ErrNotFound
		}
		return review.Review{}, err
	}

	r.recomputeRating(ctx, in.ProductID)
	return r.byID(ctx, id)
}

func (r *Repo) Update(ctx context.Context, id, userID int64, rating int, title, body string) (review.Review, error) {
	if !review.ValidRating(rating) {
		return review.Review{}, apperr.Validation("rating must be between 1 and 5").WithField("rating", "must be between 1 and 5")
	}

	var productID int64
	err := r.db.QueryRow(ctx, `
		UPDATE reviews
		SET rating = $3, title = $4, body = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING product_id
	`, id, userID, rating, title, body).Scan(&productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return review.Review{}, apperr.ErrNotFound
	}
	if err != nil {
		return review.Review{}, err
	}

	r.recomputeRating(ctx, productID)
	return r.byID(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id, userID int64, staff bool) error {
	q := `DELETE FROM reviews WHERE id = $1 AND user_id = $2 RETURNING product_id`
	args := []any{id, userID}
	if staff {
		q = `DELETE FROM reviews WHERE id = $1 RETURNING product_id`
		args = []any{id}
	}

	var productID int64
	err := r.db.QueryRow(ctx, q, args...).Scan(&productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return err
	}

	r.recomputeRating(ctx, productID)
	return nil
}

// SetApproved is the moderation switch; flipping it changes which
// reviews count towards the product rating.
func (r *Repo) SetApproved(ctx context.Context, id int64, approved bool) (review.Review, error) {
	var productID int64
	err := r.db.QueryRow(ctx, `
		UPDATE reviews SET approved = $2, updated_at = now()
		WHERE id = $1
		RETURNING product_id
	`, id, approved).Scan(&productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return review.Review{}, apperr.ErrNotFound
	}
	if err != nil {
		return review.Review{}, err
	}

	r.recomputeRating(ctx, productID)
	return r.byID(ctx, id)
}

func (r *Repo) ListForProduct(ctx context.Context, productID int64, approvedOnly bool) ([]review.Review, error) {
	q := `
		SELECT rv.id, rv.product_id, rv.user_id, COALESCE(u.name, u.email), rv.rating, rv.title, rv.body, rv.approved, rv.created_at, rv.updated_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.product_id = $1
	`
	if approvedOnly {
		q += ` AND rv.approved = true`
	}
	q += ` ORDER BY rv.created_at DESC`

	rows, err := r.db.Query(ctx, q, productID)
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

func (r *Repo) byID(ctx context.Context, id int64) (review.Review, error) {
	var rv review.Review
	err := r.db.QueryRow(ctx, `
		SELECT rv.id, rv.product_id, rv.user_id, COALESCE(u.name, u.email), rv.rating, rv.title, rv.body, rv.approved, rv.created_at, rv.updated_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.id = $1
	`, id).Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.User, &rv.Rating, &rv.Title, &rv.Body, &rv.Approved, &rv.CreatedAt, &rv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return review.Review{}, apperr.ErrNotFound
	}
	return rv, err
}

// recomputeRating refreshes the product's cached rating aggregate. It is
// a best-effort side effect of the review write that triggered it: a
// failure here is logged and never surfaced to the caller. The update is
// skipped when neither value changed.
func (r *Repo) recomputeRating(ctx context.Context, productID int64) {
	all, err := r.ListForProduct(ctx, productID, false)
	if err != nil {
		log.Printf("product %d: rating recompute failed: %v", productID, err)
		return
	}
	avg, count := Aggregate(all)

	_, err = r.db.Exec(ctx, `
		UPDATE products
		SET rating_avg = $2, rating_count = $3
		WHERE id = $1 AND (rating_avg <> $2 OR rating_count <> $3)
	`, productID, avg, count)
	if err != nil {
		log.Printf("product %d: rating recompute failed: %v", productID, err)
	}
}
