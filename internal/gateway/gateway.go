package gateway

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/karantec/minutos-storefront/pkg/errors"
)

// Outcome kinds reported by the payment widget. Exactly one is consumed per
// payment attempt.
const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "failed"
	OutcomeDismissed = "dismissed"
)

// Prefill is the contact info handed to the widget so the user does not have
// to retype it.
type Prefill struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// CheckoutParams are the opening parameters for the external payment widget.
// Amount is in minor currency units.
type CheckoutParams struct {
	Key      string  `json:"key"`
	Amount   int64   `json:"amount"`
	Currency string  `json:"currency"`
	OrderID  string  `json:"order_id"`
	Prefill  Prefill `json:"prefill"`
}

// SuccessIDs are the three identifiers the gateway returns on a successful
// checkout. They are the only payment data this service ever sees; raw card
// or UPI credentials never leave the widget.
type SuccessIDs struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Signature string `json:"signature"`
}

// Outcome is the single callback the widget delivers: success with the three
// gateway identifiers, failure with a reason, or a dismissal of the modal.
type Outcome struct {
	Kind    string      `json:"kind"`
	Success *SuccessIDs `json:"success,omitempty"`
	Reason  string      `json:"reason,omitempty"`
}

// ParseOutcome decodes and validates a widget callback payload. A success
// outcome missing any of its three identifiers is rejected outright.
func ParseOutcome(raw []byte) (Outcome, error) {
	var o Outcome
	if err := json.Unmarshal(raw, &o); err != nil {
		return Outcome{}, apperrors.InvalidInput(fmt.Sprintf("malformed gateway callback: %v", err))
	}
	if err := o.Validate(); err != nil {
		return Outcome{}, err
	}
	return o, nil
}

// Validate checks the outcome's internal consistency.
func (o Outcome) Validate() error {
	switch o.Kind {
	case OutcomeSuccess:
		if o.Success == nil {
			return apperrors.InvalidInput("success outcome requires gateway identifiers")
		}
		if o.Success.PaymentID == "" || o.Success.OrderID == "" || o.Success.Signature == "" {
			return apperrors.InvalidInput("success outcome requires payment_id, order_id and signature")
		}
	case OutcomeFailed, OutcomeDismissed:
		// reason is optional
	default:
		return apperrors.InvalidInput(fmt.Sprintf("unknown gateway outcome kind %q", o.Kind))
	}
	return nil
}
