package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusReadyToShip Status = "ready_to_ship"
	StatusShipped     Status = "shipped"
	StatusCancelled   Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReadyToShip, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

// transitions is the full order state machine. paid is an orthogonal
// flag and never part of the status.
var transitions = map[Status][]Status{
	StatusPending:     {StatusReadyToShip, StatusCancelled},
	StatusReadyToShip: {StatusShipped},
	StatusShipped:     {},
	StatusCancelled:   {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// RequiresShippingInfo reports whether a status needs carrier and
// tracking number set before (or together with) the transition.
func (s Status) RequiresShippingInfo() bool {
	return s == StatusReadyToShip || s == StatusShipped
}

type Carrier string

const (
	CarrierDHL    Carrier = "dhl"
	CarrierHermes Carrier = "hermes"
	CarrierUPS    Carrier = "ups"
	CarrierPost   Carrier = "post"
)

func (c Carrier) Valid() bool {
	switch c {
	case CarrierDHL, CarrierHermes, CarrierUPS, CarrierPost:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentPaypal     PaymentMethod = "paypal"
	PaymentCreditCard PaymentMethod = "creditcard"
	PaymentInvoice    PaymentMethod = "invoice"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentPaypal, PaymentCreditCard, PaymentInvoice:
		return true
	}
	return false
}

type Address struct {
	Name   string `json:"name"`
	Street string `json:"street"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

// MissingFields lists the empty address fields, in a stable order.
func (a Address) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, val string
	}{
		{"name", a.Name},
		{"street", a.Street},
		{"zip", a.Zip},
		{"city", a.City},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type Order struct {
	ID              int64           `json:"id"`
	Number          uuid.UUID       `json:"number"`
	UserID          int64           `json:"-"`
	User            string          `json:"user,omitempty"`
	Address         Address         `json:"address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	ShippingCarrier *Carrier        `json:"shipping_carrier,omitempty"`
	TrackingNumber  *string         `json:"tracking_number,omitempty"`
	Status          Status          `json:"status"`
	Paid            bool            `json:"paid"`
	Total           decimal.Decimal `json:"total"`
	Items           []Item          `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Item is an order line. ProductTitle, ProductImage and Price are
// snapshots taken at order-creation time and never updated afterwards,
// even when the source product changes.
type Item struct {
	ID                  int64             `json:"id"`
	OrderID             int64             `json:"-"`
	ProductID           int64             `json:"product"`
	VariationID         *int64            `json:"variation,omitempty"`
	VariationAttributes map[string]string `json:"variation_attributes,omitempty"`
	ProductTitle        string            `json:"product_title"`
	ProductImage        string            `json:"product_image,omitempty"`
	Price               decimal.Decimal   `json:"price"`
	Quantity            int               `json:"quantity"`
}
