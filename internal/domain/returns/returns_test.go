package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusReceived, true},
		{StatusReceived, StatusRefunded, true},

		// States can never be skipped.
		{StatusPending, StatusReceived, false},
		{StatusPending, StatusRefunded, false},
		{StatusApproved, StatusRefunded, false},

		// rejected is terminal.
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusReceived, false},
		{StatusRejected, StatusRefunded, false},

		// refunded is terminal.
		{StatusRefunded, StatusPending, false},

		// no going back.
		{StatusApproved, StatusPending, false},
		{StatusReceived, StatusApproved, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestReasonValid(t *testing.T) {
	for _, r := range []Reason{ReasonDefective, ReasonWrongItem, ReasonWrongSize, ReasonUnwanted, ReasonOther} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Reason("kaputt").Valid())
	assert.False(t, Reason("").Valid())
}

func TestRejectionReasonValid(t *testing.T) {
	for _, r := range []RejectionReason{RejectionExpired, RejectionNotReturnable, RejectionOther} {
		assert.True(t, r.Valid())
	}
	assert.False(t, RejectionReason("weil").Valid())
}
