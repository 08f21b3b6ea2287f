package cart

import "github.com/shopspring/decimal"

type Cart struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Items  []Item `json:"items"`
}

// Item is one cart line, keyed by product plus the chosen attribute
// combination. The selection is stored as a typed, normalized map —
// never a string-encoded key that needs re-parsing.
type Item struct {
	ID                 int64             `json:"id"`
	ProductID          int64             `json:"product"`
	ProductTitle       string            `json:"product_title"`
	ProductImage       string            `json:"product_image,omitempty"`
	Price              decimal.Decimal   `json:"price"`
	Qty                int               `json:"quantity"`
	SelectedAttributes map[string]string `json:"selected_attributes,omitempty"`
}
