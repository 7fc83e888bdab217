package domain

// CartLine is a single cart entry handed to the checkout flow. The cart itself
// is owned by the caller; checkout treats lines as read-only input.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Summary is the derived order summary shown alongside the checkout steps.
// Delivery is currently always waived, so Total equals Subtotal.
type Summary struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
}

// Summarize computes the order summary from cart lines. It is a pure
// projection: same lines in, same summary out, no state of its own.
func Summarize(lines []CartLine) Summary {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
	}
	return Summary{
		Subtotal:    subtotal,
		DeliveryFee: 0,
		Total:       subtotal,
	}
}
