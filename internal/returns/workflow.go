package returns

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/domain/order"
	"github.com/steffenjoachim/my-shop/internal/domain/returns"
	"github.com/steffenjoachim/my-shop/internal/mail"
	"github.com/steffenjoachim/my-shop/internal/orders"
)

// Workflow drives the return lifecycle: customers open a return for one
// line item of a shipped order, staff move it through
// pending → approved → received → refunded (or pending → rejected).
type Workflow struct {
	repo     *Repo
	orders   *orders.Repo
	notifier *mail.Notifier
}

func NewWorkflow(repo *Repo, orderRepo *orders.Repo, notifier *mail.Notifier) *Workflow {
	return &Workflow{repo: repo, orders: orderRepo, notifier: notifier}
}

type RequestInput struct {
	ItemID      int64
	Reason      returns.Reason
	OtherReason string
	Comments    string
}

func validateRequest(o order.Order, userID int64, staff bool, in RequestInput) error {
	if !staff && o.UserID != userID {
		return apperr.ErrPermission
	}
	if o.Status != order.StatusShipped {
		return apperr.Validation("returns can only be requested for shipped orders")
	}
	found := false
	for _, it := range o.Items {
		if it.ID == in.ItemID {
			found = true
			break
		}
	}
	if !found {
		return apperr.Validation("item does not belong to this order")
	}
	if !in.Reason.Valid() {
		return apperr.Validationf("invalid reason %q", in.Reason)
	}
	if in.Reason == returns.ReasonOther && strings.TrimSpace(in.OtherReason) == "" {
		return apperr.Validation("other_reason is required when reason is sonstiges").
			WithField("other_reason", "required")
	}
	return nil
}

func (w *Workflow) Request(ctx context.Context, userID int64, staff bool, orderID int64, in RequestInput) (returns.Request, error) {
	o, err := w.orders.Get(ctx, orderID)
	if err != nil {
		return returns.Request{}, err
	}
	if err := validateRequest(o, userID, staff, in); err != nil {
		return returns.Request{}, err
	}

	req := returns.Request{
		OrderID: orderID,
		ItemID:  in.ItemID,
		UserID:  o.UserID,
		Reason:  in.Reason,
		Status:  returns.StatusPending,
	}
	if in.Reason == returns.ReasonOther {
		other := strings.TrimSpace(in.OtherReason)
		req.OtherReason = &other
	}
	if comments := strings.TrimSpace(in.Comments); comments != "" {
		req.Comments = &comments
	}
	return w.repo.Create(ctx, req)
}

type TransitionInput struct {
	Status returns.Status

	// rejected only
	RejectionReason  *returns.RejectionReason
	RejectionComment string

	// refunded only
	RefundName   string
	RefundAmount *decimal.Decimal
	RefundIBAN   string
}

func validateTransition(current returns.Status, in TransitionInput) error {
	if !in.Status.Valid() {
		return apperr.Validationf("invalid status %q", in.Status)
	}
	if !current.CanTransitionTo(in.Status) {
		return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, current, in.Status)
	}

	switch in.Status {
	case returns.StatusRejected:
		if in.RejectionReason == nil {
			return apperr.Validation("rejection_reason is required").
				WithField("rejection_reason", "required")
		}
		if !in.RejectionReason.Valid() {
			return apperr.Validationf("invalid rejection reason %q", *in.RejectionReason)
		}
		if *in.RejectionReason == returns.RejectionOther && strings.TrimSpace(in.RejectionComment) == "" {
			return apperr.Validation("rejection_comment is required when the rejection reason is sonstiges").
				WithField("rejection_comment", "required")
		}
	case returns.StatusRefunded:
		if strings.TrimSpace(in.RefundName) == "" {
			return apperr.Validation("refund_name is required").WithField("refund_name", "required")
		}
		if in.RefundAmount == nil || !in.RefundAmount.IsPositive() {
			return apperr.Validation("refund_amount must be positive").WithField("refund_amount", "must be positive")
		}
		if strings.TrimSpace(in.RefundIBAN) == "" {
			return apperr.Validation("refund_iban is required").WithField("refund_iban", "required")
		}
	}
	return nil
}

// Transition moves a return to its next state. States can never be
// skipped. The customer notification is best effort: a failed mail is
// logged and the transition still succeeds.
func (w *Workflow) Transition(ctx context.Context, id int64, in TransitionInput) (returns.Request, error) {
	req, err := w.repo.ByID(ctx, id)
	if err != nil {
		return returns.Request{}, err
	}
	if err := validateTransition(req.Status, in); err != nil {
		return returns.Request{}, err
	}

	switch in.Status {
	case returns.StatusRejected:
		now := time.Now()
		req.RejectionReason = in.RejectionReason
		req.RejectionDate = &now
		if comment := strings.TrimSpace(in.RejectionComment); comment != "" {
			req.RejectionComment = &comment
		}
	case returns.StatusRefunded:
		name := strings.TrimSpace(in.RefundName)
		iban := strings.TrimSpace(in.RefundIBAN)
		req.RefundName = &name
		req.RefundAmount = in.RefundAmount
		req.RefundIBAN = &iban
	}
	req.Status = in.Status

	if err := w.repo.SaveTransition(ctx, req); err != nil {
		return returns.Request{}, err
	}

	w.notify(req)
	return req, nil
}

func (w *Workflow) notify(req returns.Request) {
	var err error
	switch req.Status {
	case returns.StatusApproved:
		err = w.notifier.ReturnApproved(req)
	case returns.StatusRejected:
		err = w.notifier.ReturnRejected(req)
	case returns.StatusReceived:
		err = w.notifier.ReturnReceived(req)
	case returns.StatusRefunded:
		err = w.notifier.ReturnRefunded(req)
	}
	if err != nil {
		log.Printf("return %d: %s notification failed: %v", req.ID, req.Status, err)
	}
}
