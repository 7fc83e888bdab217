package domain

import "strings"

// PlacedOrder is the order record returned by the backend on creation or
// verification. It is immutable once received; its lifecycle beyond this
// checkout session belongs to the backend.
type PlacedOrder struct {
	ID          string `json:"id"`
	TotalAmount int64  `json:"total_amount"`
	Status      string `json:"status,omitempty"`
	VendorID    string `json:"vendor_id,omitempty"`
}

// DisplayID returns the short order reference shown to the user: the last
// eight characters of the order id, uppercased.
func (o *PlacedOrder) DisplayID() string {
	id := o.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// GatewayOrder holds the parameters obtained from the backend for opening the
// external payment widget. Amount is in minor currency units.
type GatewayOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}
