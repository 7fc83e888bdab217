package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karantec/minutos-storefront/internal/domain"
	"github.com/karantec/minutos-storefront/internal/gateway"
	"github.com/karantec/minutos-storefront/internal/service"
	"github.com/karantec/minutos-storefront/pkg/auth"
	"github.com/karantec/minutos-storefront/pkg/httputil"
	"github.com/karantec/minutos-storefront/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// StartCheckoutRequest is the JSON request body for starting a checkout.
type StartCheckoutRequest struct {
	Lines   []CartLineRequest `json:"lines" validate:"required,min=1,dive"`
	Contact ContactRequest    `json:"contact"`
}

// CartLineRequest is one cart line in the start request.
type CartLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
}

// ContactRequest is the widget prefill contact info.
type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// SelectVendorRequest is the JSON request body for choosing a vendor.
type SelectVendorRequest struct {
	VendorID string `json:"vendor_id" validate:"required"`
}

// SetAddressRequest selects a saved address or switches to a new-address
// draft. mode=saved requires address_id; mode=new takes an optional draft.
type SetAddressRequest struct {
	Mode         string               `json:"mode" validate:"required,oneof=saved new"`
	AddressID    string               `json:"address_id"`
	Draft        *DraftAddressRequest `json:"draft"`
	SaveForLater bool                 `json:"save_for_later"`
}

// DraftAddressRequest is the in-session address draft.
type DraftAddressRequest struct {
	Label   string `json:"label" validate:"omitempty,oneof=home work other"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

// SetPaymentMethodRequest is the JSON request body for choosing how to pay.
type SetPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card upi cod"`
}

// CheckoutResponse is the session as returned to the storefront UI, with the
// widget opening parameters attached while a payment is awaited.
type CheckoutResponse struct {
	*domain.CheckoutSession
	WidgetParams *gateway.CheckoutParams `json:"widget_params,omitempty"`
	OrderRef     string                  `json:"order_ref,omitempty"`
}

func (h *CheckoutHandler) respond(w http.ResponseWriter, status int, session *domain.CheckoutSession) {
	resp := CheckoutResponse{CheckoutSession: session}
	if session.Step == domain.StepAwaitingPayment {
		if params, err := h.service.WidgetParams(session); err == nil {
			resp.WidgetParams = params
		}
	}
	if session.Order != nil {
		resp.OrderRef = session.Order.DisplayID()
	}
	httputil.WriteJSON(w, status, httputil.Response{Data: resp})
}

// --- Handlers ---

// StartCheckout handles POST /api/v1/checkout
// @Summary Start a checkout session
// @Description Creates a checkout session from the cart and loads vendors.
// @Tags checkout
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/checkout [post]
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var req StartCheckoutRequest
	if !h.decode(w, r, &req) {
		return
	}

	lines := make([]domain.CartLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.CartLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	session, err := h.service.Start(r.Context(), userID(r), &service.StartInput{
		Lines: lines,
		Contact: domain.Contact{
			Name:  req.Contact.Name,
			Email: req.Contact.Email,
			Phone: req.Contact.Phone,
		},
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusCreated, session)
}

// GetCheckout handles GET /api/v1/checkout/{id}
// @Summary Get a checkout session
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/checkout/{id} [get]
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Get(r.Context(), userID(r), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// ReloadVendors handles POST /api/v1/checkout/{id}/vendors
// @Summary Reload the vendor list
// @Description Explicit retry after a failed vendor load.
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/checkout/{id}/vendors [post]
func (h *CheckoutHandler) ReloadVendors(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.LoadVendors(r.Context(), userID(r), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// SelectVendor handles PUT /api/v1/checkout/{id}/vendor
// @Summary Choose the fulfillment vendor
// @Tags checkout
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/checkout/{id}/vendor [put]
func (h *CheckoutHandler) SelectVendor(w http.ResponseWriter, r *http.Request) {
	var req SelectVendorRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.SelectVendor(r.Context(), userID(r), sessionID(r), req.VendorID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// Advance handles POST /api/v1/checkout/{id}/advance
// @Summary Advance to the next checkout step
// @Description Guard violations keep the step and surface a validation message on the session.
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/checkout/{id}/advance [post]
func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Advance(r.Context(), userID(r), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// ReloadAddresses handles POST /api/v1/checkout/{id}/addresses
// @Summary Reload the saved address list
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/checkout/{id}/addresses [post]
func (h *CheckoutHandler) ReloadAddresses(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.LoadAddresses(r.Context(), userID(r), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// SetAddress handles PUT /api/v1/checkout/{id}/address
// @Summary Select a saved address or edit the new-address draft
// @Tags checkout
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/checkout/{id}/address [put]
func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	var req SetAddressRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	uid, sid := userID(r), sessionID(r)

	var (
		session *domain.CheckoutSession
		err     error
	)
	switch {
	case req.Mode == domain.AddressModeSaved:
		if req.AddressID == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "address_id is required for saved mode"},
			})
			return
		}
		session, err = h.service.SelectSavedAddress(ctx, uid, sid, req.AddressID)
	case req.Draft != nil:
		session, err = h.service.SetDraftAddress(ctx, uid, sid, domain.Address{
			Label:   req.Draft.Label,
			Street:  req.Draft.Street,
			City:    req.Draft.City,
			State:   req.Draft.State,
			Pincode: req.Draft.Pincode,
			Phone:   req.Draft.Phone,
		}, req.SaveForLater)
	default:
		session, err = h.service.UseNewAddress(ctx, uid, sid)
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// DeleteAddress handles DELETE /api/v1/checkout/{id}/addresses/{addressID}
// @Summary Delete a saved address
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/checkout/{id}/addresses/{addressID} [delete]
func (h *CheckoutHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID := chi.URLParam(r, "addressID")
	if addressID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "address id is required"},
		})
		return
	}

	session, err := h.service.DeleteAddress(r.Context(), userID(r), sessionID(r), addressID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// SetPaymentMethod handles PUT /api/v1/checkout/{id}/payment
// @Summary Choose the payment method
// @Tags checkout
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/checkout/{id}/payment [put]
func (h *CheckoutHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req SetPaymentMethodRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.service.SelectPaymentMethod(r.Context(), userID(r), sessionID(r), req.PaymentMethod)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// PlaceOrder handles POST /api/v1/checkout/{id}/place
// @Summary Submit the order
// @Description Cash on delivery completes immediately; card and UPI return widget parameters and await the gateway callback. Re-entry while a submission is in flight is a 409.
// @Tags checkout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/checkout/{id}/place [post]
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.PlaceOrder(r.Context(), userID(r), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// PaymentCallback handles POST /api/v1/checkout/{id}/payment/callback
// @Summary Consume the payment widget outcome
// @Description Accepts exactly one of success, failed or dismissed per payment attempt.
// @Tags checkout
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/checkout/{id}/payment/callback [post]
func (h *CheckoutHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "could not read request body"},
		})
		return
	}

	outcome, err := gateway.ParseOutcome(raw)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	session, err := h.service.HandleGatewayOutcome(r.Context(), userID(r), sessionID(r), outcome)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.respond(w, http.StatusOK, session)
}

// AbandonCheckout handles DELETE /api/v1/checkout/{id}
// @Summary Abandon the checkout session
// @Tags checkout
// @Success 204
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/checkout/{id} [delete]
func (h *CheckoutHandler) AbandonCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Abandon(r.Context(), userID(r), sessionID(r)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

// decode reads and validates a JSON request body, writing the error response
// itself when the body is unusable.
func (h *CheckoutHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return false
	}
	if err := validator.Validate(dst); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}
	return true
}

func userID(r *http.Request) string {
	id, _ := auth.FromContext(r.Context())
	return id.UserID
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
