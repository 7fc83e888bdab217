package domain

// Vendor is a fulfillment partner able to deliver the order. The list is
// fetched from the backend once per checkout session and is immutable after.
type Vendor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Area        string `json:"area,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
}
