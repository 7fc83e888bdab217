package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		lines    []CartLine
		expected Summary
	}{
		{
			name:     "empty cart",
			lines:    nil,
			expected: Summary{Subtotal: 0, DeliveryFee: 0, Total: 0},
		},
		{
			name: "single line",
			lines: []CartLine{
				{ProductID: "p1", Quantity: 2, UnitPrice: 100},
			},
			expected: Summary{Subtotal: 200, DeliveryFee: 0, Total: 200},
		},
		{
			name: "multiple lines",
			lines: []CartLine{
				{ProductID: "p1", Quantity: 2, UnitPrice: 100},
				{ProductID: "p2", Quantity: 1, UnitPrice: 4550},
				{ProductID: "p3", Quantity: 3, UnitPrice: 10},
			},
			expected: Summary{Subtotal: 4780, DeliveryFee: 0, Total: 4780},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.lines)
			assert.Equal(t, tt.expected, got)
			// Pure projection: a second call over the same lines is identical.
			assert.Equal(t, got, Summarize(tt.lines))
			assert.Equal(t, got.Subtotal, got.Total)
		})
	}
}

func TestAddress_Complete(t *testing.T) {
	full := Address{Street: "12 MG Road", City: "Bengaluru", Pincode: "560001", Phone: "9876543210"}
	assert.True(t, full.Complete())

	tests := []struct {
		name string
		mut  func(a *Address)
	}{
		{"missing street", func(a *Address) { a.Street = "" }},
		{"missing city", func(a *Address) { a.City = "" }},
		{"missing pincode", func(a *Address) { a.Pincode = "" }},
		{"missing phone", func(a *Address) { a.Phone = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := full
			tt.mut(&a)
			assert.False(t, a.Complete())
		})
	}

	// State and label stay optional.
	assert.True(t, full.Complete())
	assert.True(t, full.IsDraft())
}

func TestPlacedOrder_DisplayID(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"64fa1c2b9d0e8f77abc123", "77ABC123"},
		{"abc123", "ABC123"},
		{"", ""},
	}
	for _, tt := range tests {
		order := &PlacedOrder{ID: tt.id}
		assert.Equal(t, tt.expected, order.DisplayID())
	}
}

func TestCheckoutSession_DefaultAddressSelection(t *testing.T) {
	t.Run("empty list switches to new mode", func(t *testing.T) {
		s := &CheckoutSession{AddressMode: AddressModeSaved, SelectedAddressID: "gone"}
		s.DefaultAddressSelection()
		assert.Equal(t, AddressModeNew, s.AddressMode)
		assert.Empty(t, s.SelectedAddressID)
	})

	t.Run("default flag wins", func(t *testing.T) {
		s := &CheckoutSession{Addresses: []Address{
			{ID: "a1"},
			{ID: "a2", IsDefault: true},
			{ID: "a3"},
		}}
		s.DefaultAddressSelection()
		assert.Equal(t, AddressModeSaved, s.AddressMode)
		assert.Equal(t, "a2", s.SelectedAddressID)
	})

	t.Run("falls back to first entry", func(t *testing.T) {
		s := &CheckoutSession{Addresses: []Address{{ID: "a1"}, {ID: "a2"}}}
		s.DefaultAddressSelection()
		assert.Equal(t, "a1", s.SelectedAddressID)
	})
}

func TestCheckoutSession_ActiveAddress(t *testing.T) {
	saved := Address{ID: "a1", Street: "1 Park St", City: "Kolkata", Pincode: "700016", Phone: "9000000001"}

	t.Run("saved mode returns the selected address", func(t *testing.T) {
		s := &CheckoutSession{
			Addresses:         []Address{saved},
			AddressMode:       AddressModeSaved,
			SelectedAddressID: "a1",
		}
		addr, ok := s.ActiveAddress()
		require.True(t, ok)
		assert.Equal(t, "a1", addr.ID)
	})

	t.Run("saved mode with dangling selection", func(t *testing.T) {
		s := &CheckoutSession{AddressMode: AddressModeSaved, SelectedAddressID: "missing"}
		_, ok := s.ActiveAddress()
		assert.False(t, ok)
	})

	t.Run("new mode requires a complete draft", func(t *testing.T) {
		s := &CheckoutSession{AddressMode: AddressModeNew}
		_, ok := s.ActiveAddress()
		assert.False(t, ok)

		s.DraftAddress = Address{Street: "5 Residency Rd", City: "Bengaluru", Pincode: "560025", Phone: "9000000002"}
		addr, ok := s.ActiveAddress()
		require.True(t, ok)
		assert.True(t, addr.IsDraft())
	})
}

func TestCheckoutSession_LockedAndTerminal(t *testing.T) {
	for _, step := range []string{StepSubmitting, StepAwaitingPayment, StepVerifying} {
		s := &CheckoutSession{Step: step}
		assert.True(t, s.Locked(), step)
		assert.False(t, s.Terminal(), step)
	}
	for _, step := range []string{StepVendorSelection, StepAddressSelection, StepPaymentSelection, StepCompleted} {
		s := &CheckoutSession{Step: step}
		assert.False(t, s.Locked(), step)
	}

	done := &CheckoutSession{Step: StepCompleted}
	assert.True(t, done.Terminal())

	ambiguous := &CheckoutSession{Step: StepVerifying}
	ambiguous.Fail(ErrCodeVerificationAmbiguous, "payment completed but verification failed")
	assert.True(t, ambiguous.Terminal())

	retryable := &CheckoutSession{Step: StepPaymentSelection}
	retryable.Fail(ErrCodeOrderRejected, "out of stock")
	assert.False(t, retryable.Terminal())
	retryable.ClearError()
	assert.Nil(t, retryable.StepError)
}

func TestCheckoutSession_IsExpired(t *testing.T) {
	live := &CheckoutSession{ExpiresAt: time.Now().UTC().Add(10 * time.Minute)}
	assert.False(t, live.IsExpired())

	stale := &CheckoutSession{ExpiresAt: time.Now().UTC().Add(-time.Minute)}
	assert.True(t, stale.IsExpired())
}

func TestPaymentMethodHelpers(t *testing.T) {
	assert.True(t, IsValidPaymentMethod(PaymentCard))
	assert.True(t, IsValidPaymentMethod(PaymentUPI))
	assert.True(t, IsValidPaymentMethod(PaymentCashOnDelivery))
	assert.False(t, IsValidPaymentMethod("netbanking"))

	assert.True(t, RequiresGateway(PaymentCard))
	assert.True(t, RequiresGateway(PaymentUPI))
	assert.False(t, RequiresGateway(PaymentCashOnDelivery))
}
