package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steffenjoachim/my-shop/internal/domain/review"
)

func approved(rating int) review.Review {
	return review.Review{Rating: rating, Approved: true}
}

func TestAggregate_Empty(t *testing.T) {
	avg, count := Aggregate(nil)
	assert.True(t, avg.IsZero())
	assert.Equal(t, 0, count)
}

func TestAggregate_RoundsToTwoPlaces(t *testing.T) {
	avg, count := Aggregate([]review.Review{approved(5), approved(4), approved(4)})
	assert.Equal(t, "4.33", avg.StringFixed(2))
	assert.Equal(t, 3, count)
}

func TestAggregate_SingleReview(t *testing.T) {
	avg, count := Aggregate([]review.Review{approved(3)})
	assert.Equal(t, "3.00", avg.StringFixed(2))
	assert.Equal(t, 1, count)
}

func TestAggregate_IgnoresUnapproved(t *testing.T) {
	avg, count := Aggregate([]review.Review{
		approved(5),
		{Rating: 1, Approved: false},
		{Rating: 1, Approved: false},
	})
	assert.Equal(t, "5.00", avg.StringFixed(2))
	assert.Equal(t, 1, count)
}

func TestAggregate_OnlyUnapproved(t *testing.T) {
	avg, count := Aggregate([]review.Review{
		{Rating: 5, Approved: false},
	})
	assert.True(t, avg.IsZero())
	assert.Equal(t, 0, count)
}
