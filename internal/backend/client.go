package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/karantec/minutos-storefront/internal/domain"
	"github.com/karantec/minutos-storefront/pkg/auth"
	apperrors "github.com/karantec/minutos-storefront/pkg/errors"
	"github.com/karantec/minutos-storefront/pkg/httpclient"
)

// ErrVerificationFailed is returned by VerifyPayment when the backend reaches
// the gateway but does not confirm the payment. The charge may still have
// succeeded, so callers must not retry automatically.
var ErrVerificationFailed = errors.New("payment verification failed")

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.BreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client is a typed client for the remote storefront backend. Every call is
// one-shot; retries happen only when the user explicitly re-enters a step.
type Client struct {
	http    HTTPDoer
	baseURL string
	logger  *slog.Logger
}

// New creates a backend client rooted at baseURL.
func New(doer HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Mongo-style wire shapes used by the backend.
type vendorDTO struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Area  string `json:"area"`
	City  string `json:"city"`
	State string `json:"state"`
}

func (v vendorDTO) toDomain() domain.Vendor {
	return domain.Vendor{
		ID:          v.ID,
		DisplayName: v.Name,
		Area:        v.Area,
		City:        v.City,
		State:       v.State,
	}
}

type addressDTO struct {
	ID        string `json:"_id,omitempty"`
	Label     string `json:"label,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Pincode   string `json:"pincode"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

func (a addressDTO) toDomain() domain.Address {
	return domain.Address{
		ID:        a.ID,
		Label:     a.Label,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Pincode:   a.Pincode,
		Phone:     a.Phone,
		IsDefault: a.IsDefault,
	}
}

func addressToDTO(a domain.Address) addressDTO {
	return addressDTO{
		Label:   a.Label,
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Pincode: a.Pincode,
		Phone:   a.Phone,
	}
}

type orderDTO struct {
	ID          string `json:"_id"`
	TotalAmount int64  `json:"totalAmount"`
	Status      string `json:"status"`
	Vendor      string `json:"vendor"`
}

func (o orderDTO) toDomain() *domain.PlacedOrder {
	return &domain.PlacedOrder{
		ID:          o.ID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		VendorID:    o.Vendor,
	}
}

// ListVendors fetches the available fulfillment vendors. The backend returns
// either {"vendors": [...]} or a bare array; both are accepted.
func (c *Client) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	resp, err := c.do(ctx, http.MethodGet, "/vendor", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "vendor")
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read vendor response: %w", err)
	}

	var wrapped struct {
		Vendors []vendorDTO `json:"vendors"`
	}
	var dtos []vendorDTO
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Vendors != nil {
		dtos = wrapped.Vendors
	} else if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("decode vendor response: %w", err)
	}

	vendors := make([]domain.Vendor, len(dtos))
	for i, d := range dtos {
		vendors[i] = d.toDomain()
	}
	return vendors, nil
}

// ListAddresses fetches the user's saved addresses.
func (c *Client) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/addresses", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "addresses")
	}

	var body struct {
		Addresses []addressDTO `json:"addresses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode addresses response: %w", err)
	}

	addresses := make([]domain.Address, len(body.Addresses))
	for i, d := range body.Addresses {
		addresses[i] = d.toDomain()
	}
	return addresses, nil
}

// CreateAddress saves a new address to the user's profile and returns it with
// its backend-assigned id.
func (c *Client) CreateAddress(ctx context.Context, address domain.Address) (domain.Address, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/addresses", addressToDTO(address))
	if err != nil {
		return domain.Address{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.Address{}, httpclient.ParseResponseError(resp, "addresses")
	}

	var body struct {
		Address addressDTO `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Address{}, fmt.Errorf("decode create address response: %w", err)
	}
	return body.Address.toDomain(), nil
}

// DeleteAddress removes a saved address from the user's profile.
func (c *Client) DeleteAddress(ctx context.Context, addressID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/auth/addresses/"+addressID, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpclient.ParseResponseError(resp, "addresses")
	}
	return nil
}

// CreateOrderInput is the payload for placing an order.
type CreateOrderInput struct {
	VendorID        string
	Items           []domain.CartLine
	ShippingAddress domain.Address
	PaymentMethod   string
	SavedAddressID  string
}

// CreateOrder places the order. A 2xx response with success=false is an
// order rejection; the server's message is surfaced when present.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.PlacedOrder, error) {
	type orderItem struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	}
	req := struct {
		VendorID        string      `json:"vendorId"`
		Items           []orderItem `json:"items"`
		ShippingAddress addressDTO  `json:"shippingAddress"`
		PaymentMethod   string      `json:"paymentMethod"`
		SavedAddressID  string      `json:"savedAddressId,omitempty"`
	}{
		VendorID:        input.VendorID,
		Items:           make([]orderItem, len(input.Items)),
		ShippingAddress: addressToDTO(input.ShippingAddress),
		PaymentMethod:   input.PaymentMethod,
		SavedAddressID:  input.SavedAddressID,
	}
	for i, line := range input.Items {
		req.Items[i] = orderItem{Product: line.ProductID, Quantity: line.Quantity}
	}

	resp, err := c.do(ctx, http.MethodPost, "/order/create", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "order")
	}

	var body struct {
		Success bool      `json:"success"`
		Order   *orderDTO `json:"order"`
		Message string    `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	if !body.Success || body.Order == nil {
		message := body.Message
		if message == "" {
			message = "order could not be placed"
		}
		return nil, apperrors.Rejected("ORDER_REJECTED", message)
	}
	return body.Order.toDomain(), nil
}

// CreatePaymentOrder registers the order with the payment gateway and returns
// the parameters needed to open the payment widget.
func (c *Client) CreatePaymentOrder(ctx context.Context, orderID string) (*domain.GatewayOrder, error) {
	req := struct {
		OrderID string `json:"orderId"`
	}{OrderID: orderID}

	resp, err := c.do(ctx, http.MethodPost, "/payment/create-order", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "payment")
	}

	var body struct {
		RazorpayOrderID string `json:"razorpayOrderId"`
		Amount          int64  `json:"amount"`
		Currency        string `json:"currency"`
		Key             string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode payment order response: %w", err)
	}
	if body.RazorpayOrderID == "" {
		return nil, fmt.Errorf("payment order response missing gateway order id")
	}

	return &domain.GatewayOrder{
		OrderID:  body.RazorpayOrderID,
		Amount:   body.Amount,
		Currency: body.Currency,
		Key:      body.Key,
	}, nil
}

// VerifyPaymentInput carries the gateway identifiers returned on a successful
// widget checkout plus the internal order id they belong to.
type VerifyPaymentInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	OrderID          string
}

// VerifyPayment asks the backend to confirm the gateway signature. A reachable
// backend answering success=false yields ErrVerificationFailed.
func (c *Client) VerifyPayment(ctx context.Context, input VerifyPaymentInput) (*domain.PlacedOrder, error) {
	req := struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
		OrderID           string `json:"orderId"`
	}{
		RazorpayOrderID:   input.GatewayOrderID,
		RazorpayPaymentID: input.GatewayPaymentID,
		RazorpaySignature: input.Signature,
		OrderID:           input.OrderID,
	}

	resp, err := c.do(ctx, http.MethodPost, "/payment/verify", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "payment")
	}

	var body struct {
		Success bool      `json:"success"`
		Order   *orderDTO `json:"order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}
	if !body.Success {
		return nil, ErrVerificationFailed
	}

	var order *domain.PlacedOrder
	if body.Order != nil {
		order = body.Order.toDomain()
	}
	return order, nil
}

// do builds and executes one request, forwarding the caller's bearer token.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := auth.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			return nil, apperrors.Unavailable("backend is temporarily unavailable, please retry shortly")
		}
		c.logger.ErrorContext(ctx, "backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Unavailable("could not reach the backend: " + err.Error())
	}
	return resp, nil
}
