package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steffenjoachim/my-shop/internal/domain/order"
)

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		UserID: 7,
		Items: []LineItem{
			{ProductID: 1, Quantity: 2, SelectedAttributes: map[string]string{"Color": "Red", "Size": "M"}},
		},
		Address:       order.Address{Name: "Max", Street: "Musterweg 1", Zip: "12345", City: "Berlin"},
		PaymentMethod: order.PaymentPaypal,
	}
}

func TestValidatePlaceOrder_OK(t *testing.T) {
	assert.Nil(t, validatePlaceOrder(validInput()))
}

func TestValidatePlaceOrder_EmptyCart(t *testing.T) {
	in := validInput()
	in.Items = nil
	ve := validatePlaceOrder(in)
	require.NotNil(t, ve)
	assert.Equal(t, "cartItems is required", ve.Msg)
}

func TestValidatePlaceOrder_MissingAddressFields(t *testing.T) {
	in := validInput()
	in.Address = order.Address{Name: "Max"}
	ve := validatePlaceOrder(in)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields, "address.street")
	assert.Contains(t, ve.Fields, "address.zip")
	assert.Contains(t, ve.Fields, "address.city")
	assert.NotContains(t, ve.Fields, "address.name")
}

func TestValidatePlaceOrder_InvalidPaymentMethod(t *testing.T) {
	in := validInput()
	in.PaymentMethod = "cash"
	ve := validatePlaceOrder(in)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields, "paymentMethod")
}

func TestValidatePlaceOrder_BadQuantities(t *testing.T) {
	in := validInput()
	in.Items = append(in.Items,
		LineItem{ProductID: 2, Quantity: 0},
		LineItem{ProductID: 3, Quantity: -1},
		LineItem{Quantity: 1},
	)
	ve := validatePlaceOrder(in)
	require.NotNil(t, ve)
	require.Len(t, ve.Items, 3)
	assert.Equal(t, 1, ve.Items[0].Index)
	assert.Equal(t, 2, ve.Items[1].Index)
	assert.Equal(t, "product id missing", ve.Items[2].Message)
}
