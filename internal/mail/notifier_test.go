package mail

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steffenjoachim/my-shop/internal/domain/returns"
)

type fakeMailer struct {
	to, subject, body string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return nil
}

func sampleRequest() returns.Request {
	return returns.Request{
		ID:           12,
		OrderID:      34,
		UserEmail:    "max@example.com",
		UserName:     "Max",
		ProductTitle: "Wollpullover",
	}
}

func TestReturnApprovedMail(t *testing.T) {
	m := &fakeMailer{}
	n := NewNotifier(m, "Mein Shop, Retourenlager, Lagerstr. 1, 12345 Berlin")

	require.NoError(t, n.ReturnApproved(sampleRequest()))

	assert.Equal(t, "max@example.com", m.to)
	assert.Contains(t, m.subject, "genehmigt")
	assert.Contains(t, m.subject, "#34")
	assert.Contains(t, m.body, "Max")
	assert.Contains(t, m.body, "Wollpullover")
	assert.Contains(t, m.body, "Lagerstr. 1")
	assert.Contains(t, m.body, "RETOUR-NR: 12")
}

func TestReturnRejectedMail(t *testing.T) {
	m := &fakeMailer{}
	n := NewNotifier(m, "")

	req := sampleRequest()
	reason := returns.RejectionExpired
	req.RejectionReason = &reason

	require.NoError(t, n.ReturnRejected(req))
	assert.Contains(t, m.subject, "abgelehnt")
	assert.Contains(t, m.body, "Rückgabezeitraum abgelaufen")
	assert.NotContains(t, m.body, "Erläuterung")
}

func TestReturnRejectedMailWithComment(t *testing.T) {
	m := &fakeMailer{}
	n := NewNotifier(m, "")

	req := sampleRequest()
	reason := returns.RejectionOther
	comment := "Artikel wurde bereits getragen"
	req.RejectionReason = &reason
	req.RejectionComment = &comment

	require.NoError(t, n.ReturnRejected(req))
	assert.Contains(t, m.body, "Sonstiges")
	assert.Contains(t, m.body, "Artikel wurde bereits getragen")
}

func TestReturnReceivedMail(t *testing.T) {
	m := &fakeMailer{}
	n := NewNotifier(m, "")

	require.NoError(t, n.ReturnReceived(sampleRequest()))
	assert.Contains(t, m.subject, "eingetroffen")
	assert.Contains(t, m.body, "Retour #12")
}

func TestReturnRefundedMail(t *testing.T) {
	m := &fakeMailer{}
	n := NewNotifier(m, "")

	req := sampleRequest()
	amount := decimal.RequireFromString("49.9")
	req.RefundAmount = &amount

	require.NoError(t, n.ReturnRefunded(req))
	assert.Contains(t, m.subject, "Erstattung")
	assert.Contains(t, m.body, "49.90 EUR")
}

func TestDisplayNameFallsBack(t *testing.T) {
	m := &fakeMailer{}
	n := NewNotifier(m, "")

	req := sampleRequest()
	req.UserName = ""
	require.NoError(t, n.ReturnReceived(req))
	assert.Contains(t, m.body, "Kunde/in")
}
