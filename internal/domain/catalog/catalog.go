package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/steffenjoachim/my-shop/internal/domain/review"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name,omitempty"`
	Slug        string    `json:"slug"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DeliveryTime struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	MinDays   int    `json:"min_days"`
	MaxDays   int    `json:"max_days"`
	IsDefault bool   `json:"is_default"`
}

type AttributeType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AttributeValue struct {
	ID            int64  `json:"id"`
	AttributeType string `json:"attribute_type"`
	Value         string `json:"value"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	Image     string `json:"image"`
	IsPrimary bool   `json:"is_primary"`
}

// Variation is one concrete, stock-bearing attribute combination of a
// product (e.g. Color=Red, Size=M). Stock is mutated only through the
// order stock ledger.
type Variation struct {
	ID         int64            `json:"id"`
	ProductID  int64            `json:"product_id"`
	Stock      int              `json:"stock"`
	Attributes []AttributeValue `json:"attributes"`
}

// AttributeSet returns the variation's attributes as a normalized
// type→value map (trimmed, lower-cased on both sides).
func (v Variation) AttributeSet() map[string]string {
	m := make(map[string]string, len(v.Attributes))
	for _, a := range v.Attributes {
		m[NormalizeAttr(a.AttributeType)] = NormalizeAttr(a.Value)
	}
	return m
}

// NormalizeAttr trims and lower-cases an attribute type name or value.
func NormalizeAttr(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSelection normalizes a requested attribute selection the same
// way variation attribute sets are normalized, so the two compare cleanly.
func NormalizeSelection(sel map[string]string) map[string]string {
	out := make(map[string]string, len(sel))
	for k, v := range sel {
		out[NormalizeAttr(k)] = NormalizeAttr(v)
	}
	return out
}

type Product struct {
	ID             int64           `json:"id"`
	CategoryID     *int64          `json:"category_id,omitempty"`
	Category       string          `json:"category,omitempty"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	MainImage      string          `json:"main_image,omitempty"`
	DeliveryTimeID *int64          `json:"-"`
	DeliveryTime   *DeliveryTime   `json:"delivery_time,omitempty"`
	RatingAvg      decimal.Decimal `json:"rating_avg"`
	RatingCount    int             `json:"rating_count"`
	Images         []ProductImage  `json:"images,omitempty"`
	Variations     []Variation     `json:"variations,omitempty"`
	RecentReviews  []review.Review `json:"recent_reviews,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
