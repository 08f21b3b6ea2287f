package returns

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reason values match the customer-facing return form.
type Reason string

const (
	ReasonDefective Reason = "defekt"
	ReasonWrongItem Reason = "falscher_artikel"
	ReasonWrongSize Reason = "falsche_groesse"
	ReasonUnwanted  Reason = "nicht_gewuenscht"
	ReasonOther     Reason = "sonstiges"
)

func (r Reason) Valid() bool {
	switch r {
	case ReasonDefective, ReasonWrongItem, ReasonWrongSize, ReasonUnwanted, ReasonOther:
		return true
	}
	return false
}

type RejectionReason string

const (
	RejectionExpired       RejectionReason = "zeitraum_abgelaufen"
	RejectionNotReturnable RejectionReason = "produkt_nicht_rueckgabe"
	RejectionOther         RejectionReason = "sonstiges"
)

func (r RejectionReason) Valid() bool {
	switch r {
	case RejectionExpired, RejectionNotReturnable, RejectionOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReceived Status = "received"
	StatusRefunded Status = "refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusReceived, StatusRefunded:
		return true
	}
	return false
}

// transitions encodes the return lifecycle. rejected and refunded are
// terminal; states can never be skipped.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusReceived},
	StatusReceived: {StatusRefunded},
	StatusRejected: {},
	StatusRefunded: {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Request is a customer-initiated, staff-adjudicated return of one order
// line item.
type Request struct {
	ID      int64 `json:"id"`
	OrderID int64 `json:"order"`
	ItemID  int64 `json:"item"`
	UserID  int64 `json:"-"`

	Reason      Reason  `json:"reason"`
	OtherReason *string `json:"other_reason,omitempty"`
	Comments    *string `json:"comments,omitempty"`

	Status Status `json:"status"`

	RejectionReason  *RejectionReason `json:"rejection_reason,omitempty"`
	RejectionComment *string          `json:"rejection_comment,omitempty"`
	RejectionDate    *time.Time       `json:"rejection_date,omitempty"`

	RefundName   *string          `json:"refund_name,omitempty"`
	RefundAmount *decimal.Decimal `json:"refund_amount,omitempty"`
	RefundIBAN   *string          `json:"refund_iban,omitempty"`

	// Denormalized for notifications and the shipping UI.
	UserEmail    string `json:"-"`
	UserName     string `json:"user,omitempty"`
	ProductTitle string `json:"product_title,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
