package returns

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/domain/order"
	"github.com/steffenjoachim/my-shop/internal/domain/returns"
)

func shippedOrder() order.Order {
	return order.Order{
		ID:     1,
		UserID: 7,
		Status: order.StatusShipped,
		Items: []order.Item{
			{ID: 100, ProductID: 1, ProductTitle: "Shirt"},
			{ID: 101, ProductID: 2, ProductTitle: "Hose"},
		},
	}
}

func TestValidateRequest_OK(t *testing.T) {
	err := validateRequest(shippedOrder(), 7, false, RequestInput{ItemID: 100, Reason: returns.ReasonDefective})
	assert.NoError(t, err)
}

func TestValidateRequest_OtherUserDenied(t *testing.T) {
	err := validateRequest(shippedOrder(), 8, false, RequestInput{ItemID: 100, Reason: returns.ReasonDefective})
	assert.ErrorIs(t, err, apperr.ErrPermission)

	// Staff may act on behalf of the customer.
	err = validateRequest(shippedOrder(), 8, true, RequestInput{ItemID: 100, Reason: returns.ReasonDefective})
	assert.NoError(t, err)
}

func TestValidateRequest_OnlyShippedOrders(t *testing.T) {
	for _, status := range []order.Status{order.StatusPending, order.StatusReadyToShip, order.StatusCancelled} {
		o := shippedOrder()
		o.Status = status
		err := validateRequest(o, 7, false, RequestInput{ItemID: 100, Reason: returns.ReasonDefective})
		var ve *apperr.ValidationError
		assert.ErrorAs(t, err, &ve, "status %s", status)
	}
}

func TestValidateRequest_ForeignItem(t *testing.T) {
	err := validateRequest(shippedOrder(), 7, false, RequestInput{ItemID: 999, Reason: returns.ReasonDefective})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateRequest_OtherReasonNeedsText(t *testing.T) {
	err := validateRequest(shippedOrder(), 7, false, RequestInput{ItemID: 100, Reason: returns.ReasonOther, OtherReason: "  "})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "other_reason")

	err = validateRequest(shippedOrder(), 7, false, RequestInput{ItemID: 100, Reason: returns.ReasonOther, OtherReason: "Farbe gefällt nicht"})
	assert.NoError(t, err)
}

func TestValidateTransition_HappyPath(t *testing.T) {
	assert.NoError(t, validateTransition(returns.StatusPending, TransitionInput{Status: returns.StatusApproved}))
	assert.NoError(t, validateTransition(returns.StatusApproved, TransitionInput{Status: returns.StatusReceived}))

	amount := decimal.RequireFromString("19.99")
	assert.NoError(t, validateTransition(returns.StatusReceived, TransitionInput{
		Status:       returns.StatusRefunded,
		RefundName:   "Max Mustermann",
		RefundAmount: &amount,
		RefundIBAN:   "DE02120300000000202051",
	}))
}

func TestValidateTransition_NoSkipping(t *testing.T) {
	err := validateTransition(returns.StatusPending, TransitionInput{Status: returns.StatusReceived})
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	err = validateTransition(returns.StatusPending, TransitionInput{Status: returns.StatusRefunded})
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestValidateTransition_RejectedIsTerminal(t *testing.T) {
	for _, next := range []returns.Status{returns.StatusApproved, returns.StatusReceived, returns.StatusRefunded} {
		err := validateTransition(returns.StatusRejected, TransitionInput{Status: next})
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "rejected -> %s", next)
	}
}

func TestValidateTransition_RejectionNeedsReason(t *testing.T) {
	err := validateTransition(returns.StatusPending, TransitionInput{Status: returns.StatusRejected})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "rejection_reason")

	reason := returns.RejectionExpired
	assert.NoError(t, validateTransition(returns.StatusPending, TransitionInput{
		Status:          returns.StatusRejected,
		RejectionReason: &reason,
	}))
}

func TestValidateTransition_RejectionOtherNeedsComment(t *testing.T) {
	reason := returns.RejectionOther
	err := validateTransition(returns.StatusPending, TransitionInput{
		Status:          returns.StatusRejected,
		RejectionReason: &reason,
	})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "rejection_comment")

	assert.NoError(t, validateTransition(returns.StatusPending, TransitionInput{
		Status:           returns.StatusRejected,
		RejectionReason:  &reason,
		RejectionComment: "Artikel stark beschädigt zurückgesendet",
	}))
}

func TestValidateTransition_RefundNeedsAllFields(t *testing.T) {
	amount := decimal.RequireFromString("19.99")
	zero := decimal.Zero
	cases := []TransitionInput{
		{Status: returns.StatusRefunded, RefundAmount: &amount, RefundIBAN: "DE..."},
		{Status: returns.StatusRefunded, RefundName: "Max", RefundIBAN: "DE..."},
		{Status: returns.StatusRefunded, RefundName: "Max", RefundAmount: &zero, RefundIBAN: "DE..."},
		{Status: returns.StatusRefunded, RefundName: "Max", RefundAmount: &amount},
	}
	for i, in := range cases {
		err := validateTransition(returns.StatusReceived, in)
		var ve *apperr.ValidationError
		assert.ErrorAs(t, err, &ve, "case %d", i)
	}
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	err := validateTransition(returns.StatusPending, TransitionInput{Status: "verschollen"})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
}
