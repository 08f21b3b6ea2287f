package reviews

import (
	"github.com/shopspring/decimal"

	"github.com/steffenjoachim/my-shop/internal/domain/review"
)

// Aggregate computes a product's cached rating from its reviews. Only
// approved reviews count; the average is rounded to two decimal places.
// With no approved reviews the aggregate is (0.00, 0).
func Aggregate(reviews []review.Review) (avg decimal.Decimal, count int) {
	sum := 0
	for _, rv := range reviews {
		if !rv.Approved {
			continue
		}
		sum += rv.Rating
		count++
	}
	if count == 0 {
		return decimal.Zero, 0
	}
	avg = decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(count))).
		Round(2)
	return avg, count
}
