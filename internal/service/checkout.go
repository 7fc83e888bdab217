package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/karantec/minutos-storefront/internal/backend"
	"github.com/karantec/minutos-storefront/internal/domain"
	"github.com/karantec/minutos-storefront/internal/gateway"
	"github.com/karantec/minutos-storefront/internal/repository"
	apperrors "github.com/karantec/minutos-storefront/pkg/errors"
)

// BackendAPI is the slice of the backend client the orchestrator depends on.
type BackendAPI interface {
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	ListAddresses(ctx context.Context) ([]domain.Address, error)
	CreateAddress(ctx context.Context, address domain.Address) (domain.Address, error)
	DeleteAddress(ctx context.Context, addressID string) error
	CreateOrder(ctx context.Context, input backend.CreateOrderInput) (*domain.PlacedOrder, error)
	CreatePaymentOrder(ctx context.Context, orderID string) (*domain.GatewayOrder, error)
	VerifyPayment(ctx context.Context, input backend.VerifyPaymentInput) (*domain.PlacedOrder, error)
}

// EventPublisher publishes checkout lifecycle events. Failures are logged and
// never block the flow.
type EventPublisher interface {
	PublishCheckoutStarted(ctx context.Context, session *domain.CheckoutSession) error
	PublishCheckoutCompleted(ctx context.Context, session *domain.CheckoutSession) error
	PublishCheckoutFailed(ctx context.Context, session *domain.CheckoutSession, reason string) error
}

// CheckoutService drives the checkout state machine. Every operation loads the
// session, applies one transition, and persists the result. Backend failures
// on editable steps never abort the flow: they pin a step error to the current
// step and leave the user free to retry.
type CheckoutService struct {
	repo       repository.SessionRepository
	backend    BackendAPI
	producer   EventPublisher
	logger     *slog.Logger
	sessionTTL time.Duration
}

// NewCheckoutService creates the checkout orchestrator.
func NewCheckoutService(
	repo repository.SessionRepository,
	api BackendAPI,
	producer EventPublisher,
	logger *slog.Logger,
	sessionTTL time.Duration,
) *CheckoutService {
	return &CheckoutService{
		repo:       repo,
		backend:    api,
		producer:   producer,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

// StartInput holds the parameters for beginning a checkout.
type StartInput struct {
	Lines   []domain.CartLine `json:"lines" validate:"required,min=1,dive"`
	Contact domain.Contact    `json:"contact"`
}

// Start creates a checkout session at vendor selection and performs the
// initial vendor load. A failed load leaves a retryable step error rather
// than failing the whole start.
func (s *CheckoutService) Start(ctx context.Context, userID string, input *StartInput) (*domain.CheckoutSession, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to check out")
	}
	if input == nil || len(input.Lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}
	for i, line := range input.Lines {
		if line.ProductID == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("line %d: product is required", i))
		}
		if line.Quantity <= 0 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("line %d: quantity must be greater than 0", i))
		}
		if line.UnitPrice < 0 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("line %d: price cannot be negative", i))
		}
	}

	now := time.Now().UTC()
	session := &domain.CheckoutSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Step:      domain.StepVendorSelection,
		CartLines: input.Lines,
		Summary:   domain.Summarize(input.Lines),
		Contact:   input.Contact,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	s.loadVendorsInto(ctx, session)

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	checkoutsStarted.Inc()
	s.publishStarted(ctx, session)

	s.logger.InfoContext(ctx, "checkout session started",
		slog.String("session_id", session.ID),
		slog.String("user_id", userID),
		slog.Int64("total", session.Summary.Total),
	)

	return session, nil
}

// Get retrieves a session, enforcing ownership.
func (s *CheckoutService) Get(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	return s.loadOwned(ctx, userID, sessionID)
}

// LoadVendors re-fetches the vendor list. This is the user's explicit retry
// after a failed load; there is no automatic one.
func (s *CheckoutService) LoadVendors(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepVendorSelection {
		return nil, apperrors.InvalidInput("vendors can only be reloaded during vendor selection")
	}

	session.ClearError()
	s.loadVendorsInto(ctx, session)
	return s.save(ctx, session)
}

// SelectVendor records the vendor choice. The vendor must be present in the
// last loaded list.
func (s *CheckoutService) SelectVendor(ctx context.Context, userID, sessionID, vendorID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepVendorSelection {
		return nil, apperrors.InvalidInput("vendor can only be chosen during vendor selection")
	}
	if _, ok := session.FindVendor(vendorID); !ok {
		return nil, apperrors.InvalidInput("unknown vendor")
	}

	session.VendorID = vendorID
	session.ClearError()
	return s.save(ctx, session)
}

// Advance moves the session to the next editable step. Guard violations stay
// on the current step with a validation message.
func (s *CheckoutService) Advance(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case domain.StepVendorSelection:
		if session.VendorID == "" {
			session.Fail(domain.ErrCodeValidation, "select a vendor to continue")
			return s.save(ctx, session)
		}
		session.ClearError()
		session.Step = domain.StepAddressSelection
		if !session.AddressesLoaded {
			s.loadAddressesInto(ctx, session)
		}
		return s.save(ctx, session)

	case domain.StepAddressSelection:
		if _, ok := session.ActiveAddress(); !ok {
			session.Fail(domain.ErrCodeValidation, "complete a delivery address to continue")
			return s.save(ctx, session)
		}
		session.ClearError()
		session.Step = domain.StepPaymentSelection
		return s.save(ctx, session)

	case domain.StepPaymentSelection:
		return nil, apperrors.InvalidInput("use place order to submit")

	default:
		if session.Locked() {
			return nil, apperrors.Conflict("checkout is being processed")
		}
		return nil, apperrors.InvalidInput("checkout cannot advance from this step")
	}
}

// LoadAddresses re-fetches the saved address list (explicit user retry).
// A current selection that survives the reload is kept.
func (s *CheckoutService) LoadAddresses(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepAddressSelection {
		return nil, apperrors.InvalidInput("addresses can only be reloaded during address selection")
	}

	session.ClearError()
	previous := session.SelectedAddressID
	s.loadAddressesInto(ctx, session)
	if previous != "" && session.AddressMode == domain.AddressModeSaved {
		if _, ok := session.FindAddress(previous); ok {
			session.SelectedAddressID = previous
		}
	}
	return s.save(ctx, session)
}

// SelectSavedAddress picks one of the loaded saved addresses.
func (s *CheckoutService) SelectSavedAddress(ctx context.Context, userID, sessionID, addressID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepAddressSelection {
		return nil, apperrors.InvalidInput("address can only be chosen during address selection")
	}
	if _, ok := session.FindAddress(addressID); !ok {
		return nil, apperrors.InvalidInput("unknown address")
	}

	session.AddressMode = domain.AddressModeSaved
	session.SelectedAddressID = addressID
	session.ClearError()
	return s.save(ctx, session)
}

// UseNewAddress switches the session to new-address mode.
func (s *CheckoutService) UseNewAddress(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepAddressSelection {
		return nil, apperrors.InvalidInput("address mode can only change during address selection")
	}

	session.AddressMode = domain.AddressModeNew
	session.SelectedAddressID = ""
	session.ClearError()
	return s.save(ctx, session)
}

// SetDraftAddress stores the in-session address draft. saveForLater marks it
// for persistence to the user's profile at order time; that save is best
// effort and never blocks the order.
func (s *CheckoutService) SetDraftAddress(ctx context.Context, userID, sessionID string, draft domain.Address, saveForLater bool) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepAddressSelection {
		return nil, apperrors.InvalidInput("address can only be edited during address selection")
	}
	if draft.Label != "" && !domain.IsValidLabel(draft.Label) {
		return nil, apperrors.InvalidInput("label must be one of home, work or other")
	}

	draft.ID = ""
	draft.IsDefault = false
	session.DraftAddress = draft
	session.SaveDraft = saveForLater
	session.AddressMode = domain.AddressModeNew
	session.SelectedAddressID = ""
	session.ClearError()
	return s.save(ctx, session)
}

// DeleteAddress removes a saved address via the backend. If the deleted
// address was selected, selection falls back to the next saved address, or to
// new-address mode when none remain.
func (s *CheckoutService) DeleteAddress(ctx context.Context, userID, sessionID, addressID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepAddressSelection {
		return nil, apperrors.InvalidInput("addresses can only be managed during address selection")
	}
	if _, ok := session.FindAddress(addressID); !ok {
		return nil, apperrors.InvalidInput("unknown address")
	}

	if err := s.backend.DeleteAddress(ctx, addressID); err != nil {
		session.Fail(domain.ErrCodeNetwork, apperrors.Message(err, "could not delete the address, please retry"))
		return s.save(ctx, session)
	}

	remaining := session.Addresses[:0]
	for _, addr := range session.Addresses {
		if addr.ID != addressID {
			remaining = append(remaining, addr)
		}
	}
	session.Addresses = remaining

	if session.SelectedAddressID == addressID {
		if len(session.Addresses) > 0 {
			session.AddressMode = domain.AddressModeSaved
			session.SelectedAddressID = session.Addresses[0].ID
		} else {
			session.AddressMode = domain.AddressModeNew
			session.SelectedAddressID = ""
		}
	}
	session.ClearError()
	return s.save(ctx, session)
}

// SelectPaymentMethod records the payment method choice.
func (s *CheckoutService) SelectPaymentMethod(ctx context.Context, userID, sessionID, method string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepPaymentSelection {
		return nil, apperrors.InvalidInput("payment method can only be chosen during payment selection")
	}
	if !domain.IsValidPaymentMethod(method) {
		return nil, apperrors.InvalidInput("payment method must be one of card, upi or cod")
	}

	session.PaymentMethod = method
	session.ClearError()
	return s.save(ctx, session)
}

// PlaceOrder submits the order. Re-entry while a submission is in flight is a
// conflict no-op: no second order create is ever issued. Cash on delivery
// completes immediately; card and UPI park the session awaiting the payment
// widget after exactly one create-payment-order call.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return nil, apperrors.Conflict("checkout is already finished")
	}
	if session.Locked() {
		return nil, apperrors.Conflict("order placement is already in progress")
	}
	if session.Step != domain.StepPaymentSelection {
		return nil, apperrors.InvalidInput("complete the earlier steps before placing the order")
	}
	if session.PaymentMethod == "" {
		session.Fail(domain.ErrCodeValidation, "choose a payment method to place the order")
		return s.save(ctx, session)
	}
	address, ok := session.ActiveAddress()
	if !ok {
		session.Fail(domain.ErrCodeValidation, "complete a delivery address to place the order")
		return s.save(ctx, session)
	}
	if session.VendorID == "" {
		session.Fail(domain.ErrCodeValidation, "select a vendor to place the order")
		return s.save(ctx, session)
	}

	// Lock the session before any network call so a repeated click hits the
	// Locked guard instead of issuing a second order create.
	session.ClearError()
	session.Step = domain.StepSubmitting
	if _, err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.saveDraftIfRequested(ctx, session)

	input := backend.CreateOrderInput{
		VendorID:        session.VendorID,
		Items:           session.CartLines,
		ShippingAddress: *address,
		PaymentMethod:   session.PaymentMethod,
	}
	if session.AddressMode == domain.AddressModeSaved {
		input.SavedAddressID = session.SelectedAddressID
	}

	order, err := s.backend.CreateOrder(ctx, input)
	if err != nil {
		session.Step = domain.StepPaymentSelection
		if errors.Is(err, apperrors.ErrRejected) {
			ordersRejected.Inc()
			session.Fail(domain.ErrCodeOrderRejected, apperrors.Message(err, "order could not be placed"))
		} else {
			session.Fail(domain.ErrCodeNetwork, apperrors.Message(err, "could not reach the store, please retry"))
		}
		s.publishFailed(ctx, session, "order creation failed")
		return s.save(ctx, session)
	}

	session.Order = order

	if !domain.RequiresGateway(session.PaymentMethod) {
		session.Step = domain.StepCompleted
		if _, err := s.save(ctx, session); err != nil {
			return nil, err
		}
		checkoutsCompleted.WithLabelValues(session.PaymentMethod).Inc()
		s.publishCompleted(ctx, session)
		s.logger.InfoContext(ctx, "checkout completed",
			slog.String("session_id", session.ID),
			slog.String("order_id", order.ID),
			slog.String("payment_method", session.PaymentMethod),
		)
		return session, nil
	}

	// Exactly one create-payment-order call per attempt, before the widget
	// opens. Its failure returns the user to payment selection; the created
	// order stays with the backend.
	gatewayOrder, err := s.backend.CreatePaymentOrder(ctx, order.ID)
	if err != nil {
		session.Step = domain.StepPaymentSelection
		session.Fail(domain.ErrCodeNetwork, apperrors.Message(err, "order placed but payment could not be initiated, please retry"))
		s.publishFailed(ctx, session, "payment order creation failed")
		return s.save(ctx, session)
	}

	session.GatewayOrder = gatewayOrder
	session.Step = domain.StepAwaitingPayment
	return s.save(ctx, session)
}

// WidgetParams returns the opening parameters for the payment widget. Only
// valid while the session awaits payment.
func (s *CheckoutService) WidgetParams(session *domain.CheckoutSession) (*gateway.CheckoutParams, error) {
	if session.Step != domain.StepAwaitingPayment || session.GatewayOrder == nil {
		return nil, apperrors.InvalidInput("no payment is awaiting for this checkout")
	}
	return &gateway.CheckoutParams{
		Key:      session.GatewayOrder.Key,
		Amount:   session.GatewayOrder.Amount,
		Currency: session.GatewayOrder.Currency,
		OrderID:  session.GatewayOrder.OrderID,
		Prefill: gateway.Prefill{
			Name:    session.Contact.Name,
			Email:   session.Contact.Email,
			Contact: session.Contact.Phone,
		},
	}, nil
}

// HandleGatewayOutcome consumes the single widget callback and is the sole
// exit from the awaiting-payment step. A gateway-reported success is verified
// server side; an unverifiable one is terminal and never retried here, since
// the charge may already have gone through.
func (s *CheckoutService) HandleGatewayOutcome(ctx context.Context, userID, sessionID string, outcome gateway.Outcome) (*domain.CheckoutSession, error) {
	if err := outcome.Validate(); err != nil {
		return nil, err
	}

	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepAwaitingPayment {
		return nil, apperrors.Conflict("no payment is awaiting for this checkout")
	}

	gatewayOutcomes.WithLabelValues(outcome.Kind).Inc()

	switch outcome.Kind {
	case gateway.OutcomeSuccess:
		return s.verifyPayment(ctx, session, outcome.Success)

	case gateway.OutcomeFailed:
		reason := outcome.Reason
		if reason == "" {
			reason = "payment failed"
		}
		session.Step = domain.StepPaymentSelection
		session.GatewayOrder = nil
		session.Fail(domain.ErrCodeGatewayFailed, reason)
		s.publishFailed(ctx, session, "gateway reported failure")
		return s.save(ctx, session)

	case gateway.OutcomeDismissed:
		session.Step = domain.StepPaymentSelection
		session.GatewayOrder = nil
		session.Fail(domain.ErrCodePaymentCancelled, "payment was cancelled; you can retry from order history")
		s.publishFailed(ctx, session, "payment dismissed")
		return s.save(ctx, session)
	}

	return nil, apperrors.InvalidInput("unknown gateway outcome")
}

func (s *CheckoutService) verifyPayment(ctx context.Context, session *domain.CheckoutSession, ids *gateway.SuccessIDs) (*domain.CheckoutSession, error) {
	session.Step = domain.StepVerifying
	if _, err := s.save(ctx, session); err != nil {
		return nil, err
	}

	order, err := s.backend.VerifyPayment(ctx, backend.VerifyPaymentInput{
		GatewayOrderID:   ids.OrderID,
		GatewayPaymentID: ids.PaymentID,
		Signature:        ids.Signature,
		OrderID:          session.Order.ID,
	})
	if err != nil {
		// Any failure here is ambiguous: the gateway says the user paid, so
		// retrying the verification automatically risks double-processing.
		// Surfaced as a manual support case, terminal for this session.
		verificationFailures.Inc()
		session.Fail(domain.ErrCodeVerificationAmbiguous,
			"payment completed but could not be verified; contact support quoting order "+session.Order.DisplayID())
		s.publishFailed(ctx, session, "payment verification failed")
		s.logger.ErrorContext(ctx, "payment verification failed",
			slog.String("session_id", session.ID),
			slog.String("order_id", session.Order.ID),
			slog.String("error", err.Error()),
		)
		return s.save(ctx, session)
	}

	if order != nil {
		session.Order = order
	}
	session.Step = domain.StepCompleted
	if _, err := s.save(ctx, session); err != nil {
		return nil, err
	}
	checkoutsCompleted.WithLabelValues(session.PaymentMethod).Inc()
	s.publishCompleted(ctx, session)
	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("session_id", session.ID),
		slog.String("order_id", session.Order.ID),
		slog.String("payment_method", session.PaymentMethod),
	)
	return session, nil
}

// Abandon discards the session. A submission in flight cannot be abandoned.
func (s *CheckoutService) Abandon(ctx context.Context, userID, sessionID string) error {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.Locked() {
		return apperrors.Conflict("checkout is being processed and cannot be abandoned")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete checkout session: %w", err)
	}

	if session.Step != domain.StepCompleted {
		s.publishFailed(ctx, session, "abandoned by user")
	}

	s.logger.InfoContext(ctx, "checkout session abandoned",
		slog.String("session_id", sessionID),
		slog.String("user_id", userID),
	)
	return nil
}

// loadVendorsInto fetches vendors into the session, pinning a retryable step
// error on failure.
func (s *CheckoutService) loadVendorsInto(ctx context.Context, session *domain.CheckoutSession) {
	vendors, err := s.backend.ListVendors(ctx)
	if err != nil {
		session.Fail(domain.ErrCodeNetwork, apperrors.Message(err, "could not load vendors, please retry"))
		s.logger.WarnContext(ctx, "vendor load failed",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	session.Vendors = vendors
	session.VendorsLoaded = true
}

// loadAddressesInto fetches saved addresses into the session. Both an empty
// list and a failed load leave the session in new-address mode; the failure
// additionally pins a retryable step error.
func (s *CheckoutService) loadAddressesInto(ctx context.Context, session *domain.CheckoutSession) {
	addresses, err := s.backend.ListAddresses(ctx)
	if err != nil {
		session.AddressMode = domain.AddressModeNew
		session.SelectedAddressID = ""
		session.Fail(domain.ErrCodeNetwork, apperrors.Message(err, "could not load saved addresses, please retry"))
		s.logger.WarnContext(ctx, "address load failed",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	session.Addresses = addresses
	session.AddressesLoaded = true
	session.DefaultAddressSelection()
}

// saveDraftIfRequested persists the draft address to the user's profile when
// asked to. Failure is logged and swallowed: it never blocks or surfaces
// during order placement.
func (s *CheckoutService) saveDraftIfRequested(ctx context.Context, session *domain.CheckoutSession) {
	if session.AddressMode != domain.AddressModeNew || !session.SaveDraft || !session.DraftAddress.Complete() {
		return
	}
	saved, err := s.backend.CreateAddress(ctx, session.DraftAddress)
	if err != nil {
		s.logger.WarnContext(ctx, "draft address save failed",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	session.Addresses = append(session.Addresses, saved)
	session.SaveDraft = false
}

func (s *CheckoutService) loadOwned(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to check out")
	}
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		// Do not leak the session's existence to another user.
		return nil, apperrors.NotFound("checkout session", sessionID)
	}
	if session.IsExpired() {
		return nil, apperrors.Gone("checkout session has expired")
	}
	return session, nil
}

func (s *CheckoutService) save(ctx context.Context, session *domain.CheckoutSession) (*domain.CheckoutSession, error) {
	session.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update checkout session: %w", err)
	}
	return session, nil
}

func (s *CheckoutService) publishStarted(ctx context.Context, session *domain.CheckoutSession) {
	if err := s.producer.PublishCheckoutStarted(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.started event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CheckoutService) publishCompleted(ctx context.Context, session *domain.CheckoutSession) {
	if err := s.producer.PublishCheckoutCompleted(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.completed event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CheckoutService) publishFailed(ctx context.Context, session *domain.CheckoutSession, reason string) {
	if err := s.producer.PublishCheckoutFailed(ctx, session, reason); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.failed event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}
}
