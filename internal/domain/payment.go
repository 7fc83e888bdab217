package domain

// Payment method constants. Sensitive payment entry for card and UPI is
// delegated entirely to the external gateway widget; nothing beyond the chosen
// method is held here.
const (
	PaymentCard           = "card"
	PaymentUPI            = "upi"
	PaymentCashOnDelivery = "cod"
)

// IsValidPaymentMethod checks whether the given method is supported.
func IsValidPaymentMethod(method string) bool {
	return method == PaymentCard || method == PaymentUPI || method == PaymentCashOnDelivery
}

// RequiresGateway reports whether the method completes through the external
// payment widget. Cash on delivery finalizes directly on order creation.
func RequiresGateway(method string) bool {
	return method == PaymentCard || method == PaymentUPI
}
