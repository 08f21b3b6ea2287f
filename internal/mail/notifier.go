package mail

import (
	"fmt"

	"github.com/steffenjoachim/my-shop/internal/domain/returns"
)

// Notifier sends the return-lifecycle mails. Callers treat every send as
// fire-and-forget: a failed mail never blocks the state transition.
type Notifier struct {
	mailer        Mailer
	returnAddress string
}

func NewNotifier(mailer Mailer, returnAddress string) *Notifier {
	return &Notifier{mailer: mailer, returnAddress: returnAddress}
}

func (n *Notifier) ReturnApproved(req returns.Request) error {
	subject := fmt.Sprintf("Retour-Anfrage genehmigt - Bestellung #%d", req.OrderID)
	body := fmt.Sprintf(`Guten Tag %s,

Ihre Retour-Anfrage wurde genehmigt.

Retour-Nr.:  #%d
Bestell-Nr.: #%d
Produkt:     %s

Bitte senden Sie den Artikel an folgende Adresse zurück:

%s

Legen Sie diesen Retour-Schein der Sendung bei:
RETOUR-NR: %d
BESTELL-NR: %d

Mit freundlichen Grüßen
Ihr Shop-Team
`, displayName(req), req.ID, req.OrderID, req.ProductTitle, n.returnAddress, req.ID, req.OrderID)
	return n.mailer.Send(req.UserEmail, subject, body)
}

func (n *Notifier) ReturnRejected(req returns.Request) error {
	subject := fmt.Sprintf("Retour-Anfrage abgelehnt - Bestellung #%d", req.OrderID)
	reason := ""
	if req.RejectionReason != nil {
		reason = rejectionReasonText(*req.RejectionReason)
	}
	body := fmt.Sprintf(`Guten Tag %s,

Ihre Retour-Anfrage für "%s" (Bestellung #%d) wurde leider abgelehnt.

Grund: %s
`, displayName(req), req.ProductTitle, req.OrderID, reason)
	if req.RejectionComment != nil && *req.RejectionComment != "" {
		body += fmt.Sprintf("\nErläuterung: %s\n", *req.RejectionComment)
	}
	body += "\nMit freundlichen Grüßen\nIhr Shop-Team\n"
	return n.mailer.Send(req.UserEmail, subject, body)
}

func (n *Notifier) ReturnReceived(req returns.Request) error {
	subject := fmt.Sprintf("Retour eingetroffen - Bestellung #%d", req.OrderID)
	body := fmt.Sprintf(`Guten Tag %s,

Ihre Rücksendung für "%s" (Bestellung #%d, Retour #%d) ist bei uns
eingetroffen und wird nun geprüft. Sie erhalten eine weitere
Benachrichtigung, sobald die Erstattung veranlasst wurde.

Mit freundlichen Grüßen
Ihr Shop-Team
`, displayName(req), req.ProductTitle, req.OrderID, req.ID)
	return n.mailer.Send(req.UserEmail, subject, body)
}

func (n *Notifier) ReturnRefunded(req returns.Request) error {
	subject := fmt.Sprintf("Erstattung veranlasst - Bestellung #%d", req.OrderID)
	amount := ""
	if req.RefundAmount != nil {
		amount = req.RefundAmount.StringFixed(2) + " EUR"
	}
	body := fmt.Sprintf(`Guten Tag %s,

für Ihre Retour #%d (Bestellung #%d, "%s") wurde die Erstattung
veranlasst.

Betrag: %s

Je nach Bank kann die Gutschrift einige Werktage dauern.

Mit freundlichen Grüßen
Ihr Shop-Team
`, displayName(req), req.ID, req.OrderID, req.ProductTitle, amount)
	return n.mailer.Send(req.UserEmail, subject, body)
}

func displayName(req returns.Request) string {
	if req.UserName != "" {
		return req.UserName
	}
	return "Kunde/in"
}

func rejectionReasonText(r returns.RejectionReason) string {
	switch r {
	case returns.RejectionExpired:
		return "Rückgabezeitraum abgelaufen"
	case returns.RejectionNotReturnable:
		return "Produkt kann nicht zurückgegeben werden"
	default:
		return "Sonstiges"
	}
}
