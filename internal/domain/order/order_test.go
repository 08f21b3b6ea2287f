package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusReadyToShip, true},
		{StatusPending, StatusCancelled, true},
		{StatusReadyToShip, StatusShipped, true},

		{StatusPending, StatusShipped, false},
		{StatusReadyToShip, StatusCancelled, false},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusReadyToShip, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRequiresShippingInfo(t *testing.T) {
	assert.True(t, StatusReadyToShip.RequiresShippingInfo())
	assert.True(t, StatusShipped.RequiresShippingInfo())
	assert.False(t, StatusPending.RequiresShippingInfo())
	assert.False(t, StatusCancelled.RequiresShippingInfo())
}

func TestCarrierValid(t *testing.T) {
	for _, c := range []Carrier{CarrierDHL, CarrierHermes, CarrierUPS, CarrierPost} {
		assert.True(t, c.Valid())
	}
	assert.False(t, Carrier("fedex").Valid())
	assert.False(t, Carrier("").Valid())
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentPaypal, PaymentCreditCard, PaymentInvoice} {
		assert.True(t, m.Valid())
	}
	assert.False(t, PaymentMethod("cash").Valid())
}

func TestAddressMissingFields(t *testing.T) {
	full := Address{Name: "Max", Street: "Musterweg 1", Zip: "12345", City: "Berlin"}
	assert.Empty(t, full.MissingFields())

	partial := Address{Name: "Max", City: "Berlin"}
	assert.Equal(t, []string{"street", "zip"}, partial.MissingFields())

	assert.Equal(t, []string{"name", "street", "zip", "city"}, Address{}.MissingFields())
}
