package domain

import (
	"time"
)

// Checkout step constants. Steps advance linearly; submitting, awaiting
// payment and verifying are transient steps during which no user-triggered
// mutation may start.
const (
	StepVendorSelection  = "vendor_selection"
	StepAddressSelection = "address_selection"
	StepPaymentSelection = "payment_selection"
	StepSubmitting       = "submitting"
	StepAwaitingPayment  = "awaiting_payment"
	StepVerifying        = "verifying"
	StepCompleted        = "completed"
)

// Step error codes. A step error is an overlay on the current step: the user
// stays where they are, sees the message, and may retry.
const (
	ErrCodeValidation            = "VALIDATION"
	ErrCodeNetwork               = "NETWORK"
	ErrCodeOrderRejected         = "ORDER_REJECTED"
	ErrCodeGatewayFailed         = "GATEWAY_FAILED"
	ErrCodePaymentCancelled      = "PAYMENT_CANCELLED"
	ErrCodeVerificationAmbiguous = "VERIFICATION_AMBIGUOUS"
)

// StepError is a user-visible error pinned to the step where it occurred.
type StepError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Contact is the prefill information handed to the payment widget.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CheckoutSession is the aggregate root of a checkout flow. It is created
// fresh when checkout begins, mutated only by orchestrator transitions, and
// discarded when the user leaves the flow or an order is placed.
//
// The session owns its draft address and payment choice. The vendor and saved
// address selections are references into the loaded lists, never copied
// authoritatively.
type CheckoutSession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Step      string     `json:"step"`
	StepError *StepError `json:"step_error,omitempty"`

	CartLines []CartLine `json:"cart_lines"`
	Summary   Summary    `json:"summary"`
	Contact   Contact    `json:"contact"`

	Vendors       []Vendor `json:"vendors,omitempty"`
	VendorsLoaded bool     `json:"vendors_loaded"`
	VendorID      string   `json:"vendor_id,omitempty"`

	Addresses         []Address `json:"addresses,omitempty"`
	AddressesLoaded   bool      `json:"addresses_loaded"`
	AddressMode       string    `json:"address_mode,omitempty"`
	SelectedAddressID string    `json:"selected_address_id,omitempty"`
	DraftAddress      Address   `json:"draft_address"`
	SaveDraft         bool      `json:"save_draft"`

	PaymentMethod string `json:"payment_method,omitempty"`

	Order        *PlacedOrder  `json:"order,omitempty"`
	GatewayOrder *GatewayOrder `json:"gateway_order,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FindVendor looks up a vendor by id in the last loaded list.
func (s *CheckoutSession) FindVendor(id string) (*Vendor, bool) {
	for i := range s.Vendors {
		if s.Vendors[i].ID == id {
			return &s.Vendors[i], true
		}
	}
	return nil, false
}

// FindAddress looks up a saved address by id in the last loaded list.
func (s *CheckoutSession) FindAddress(id string) (*Address, bool) {
	for i := range s.Addresses {
		if s.Addresses[i].ID == id {
			return &s.Addresses[i], true
		}
	}
	return nil, false
}

// ActiveAddress returns the address that would ship this order: the selected
// saved address, or the draft when the session is in new-address mode. The
// second return value is false when no usable address is active.
func (s *CheckoutSession) ActiveAddress() (*Address, bool) {
	switch s.AddressMode {
	case AddressModeSaved:
		if addr, ok := s.FindAddress(s.SelectedAddressID); ok {
			return addr, true
		}
	case AddressModeNew:
		if s.DraftAddress.Complete() {
			return &s.DraftAddress, true
		}
	}
	return nil, false
}

// DefaultAddressSelection applies the post-load selection rule: the entry
// flagged as default wins, otherwise the first entry; an empty list switches
// the session to new-address mode.
func (s *CheckoutSession) DefaultAddressSelection() {
	if len(s.Addresses) == 0 {
		s.AddressMode = AddressModeNew
		s.SelectedAddressID = ""
		return
	}
	s.AddressMode = AddressModeSaved
	s.SelectedAddressID = s.Addresses[0].ID
	for i := range s.Addresses {
		if s.Addresses[i].IsDefault {
			s.SelectedAddressID = s.Addresses[i].ID
			return
		}
	}
}

// Locked reports whether a step-mutating network operation is outstanding.
// While locked, place-order and other transitions must be rejected so a
// repeated click can never create a second order.
func (s *CheckoutSession) Locked() bool {
	return s.Step == StepSubmitting || s.Step == StepAwaitingPayment || s.Step == StepVerifying
}

// Terminal reports whether the session accepts no further transitions:
// either the order completed, or verification came back ambiguous after a
// gateway-reported success (handled manually, never retried).
func (s *CheckoutSession) Terminal() bool {
	if s.Step == StepCompleted {
		return true
	}
	return s.StepError != nil && s.StepError.Code == ErrCodeVerificationAmbiguous
}

// IsExpired checks whether the session has passed its expiry time.
func (s *CheckoutSession) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

// Fail pins a step error to the current step without leaving it.
func (s *CheckoutSession) Fail(code, message string) {
	s.StepError = &StepError{Code: code, Message: message}
}

// ClearError removes any step error before attempting a transition.
func (s *CheckoutSession) ClearError() {
	s.StepError = nil
}
