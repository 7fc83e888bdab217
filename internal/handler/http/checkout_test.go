package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karantec/minutos-storefront/internal/backend"
	"github.com/karantec/minutos-storefront/internal/domain"
	redisrepo "github.com/karantec/minutos-storefront/internal/repository/redis"
	"github.com/karantec/minutos-storefront/internal/service"
	"github.com/karantec/minutos-storefront/pkg/health"
	"github.com/karantec/minutos-storefront/pkg/httpclient"
	"github.com/karantec/minutos-storefront/pkg/logger"
)

// nopProducer satisfies the orchestrator's publisher without a broker.
type nopProducer struct{}

func (nopProducer) PublishCheckoutStarted(context.Context, *domain.CheckoutSession) error { return nil }
func (nopProducer) PublishCheckoutCompleted(context.Context, *domain.CheckoutSession) error {
	return nil
}
func (nopProducer) PublishCheckoutFailed(context.Context, *domain.CheckoutSession, string) error {
	return nil
}

// fakeBackend serves the remote storefront API surface the flow touches.
func fakeBackend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/vendor":
			_, _ = w.Write([]byte(`{"vendors":[{"_id":"v1","name":"Fresh Mart"}]}`))
		case r.Method == http.MethodGet && r.URL.Path == "/auth/addresses":
			_, _ = w.Write([]byte(`{"addresses":[{"_id":"a1","street":"12 MG Road","city":"Pune","pincode":"411001","phone":"9999999999","isDefault":true}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/order/create":
			_, _ = w.Write([]byte(`{"success":true,"order":{"_id":"abc123","totalAmount":200,"status":"placed","vendor":"v1"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/payment/create-order":
			_, _ = w.Write([]byte(`{"razorpayOrderId":"r1","amount":20000,"currency":"INR","key":"k1"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/payment/verify":
			_, _ = w.Write([]byte(`{"success":true,"order":{"_id":"abc123","totalAmount":200,"status":"paid","vendor":"v1"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	backendSrv := httptest.NewServer(fakeBackend())
	t.Cleanup(backendSrv.Close)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logger.New("test", "error")
	api := backend.New(httpclient.New(httpclient.DefaultConfig()), backendSrv.URL, log)
	repo := redisrepo.NewSessionRepository(client, 30*time.Minute)
	svc := service.NewCheckoutService(repo, api, nopProducer{}, log, 30*time.Minute)

	return NewRouter(svc, health.NewHandler(), log)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer tok-1")
	req.Header.Set("X-User-ID", "user-1")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

type sessionView struct {
	ID           string `json:"id"`
	Step         string `json:"step"`
	StepError    *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"step_error"`
	AddressMode  string `json:"address_mode"`
	OrderRef     string `json:"order_ref"`
	WidgetParams *struct {
		Key      string `json:"key"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		OrderID  string `json:"order_id"`
	} `json:"widget_params"`
}

func decodeSession(t *testing.T, env envelope) sessionView {
	t.Helper()
	var v sessionView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestRouter_RequiresIdentity(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckoutFlow_CashOnDelivery(t *testing.T) {
	router := newTestRouter(t)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout",
		`{"lines":[{"product_id":"p1","name":"Milk","quantity":2,"unit_price":100}],"contact":{"name":"Asha","phone":"9999999999"}}`)
	require.Equal(t, http.StatusCreated, code)
	session := decodeSession(t, env)
	require.Equal(t, domain.StepVendorSelection, session.Step)
	base := "/api/v1/checkout/" + session.ID

	code, env = doJSON(t, router, http.MethodPut, base+"/vendor", `{"vendor_id":"v1"}`)
	require.Equal(t, http.StatusOK, code)

	code, env = doJSON(t, router, http.MethodPost, base+"/advance", "")
	require.Equal(t, http.StatusOK, code)
	session = decodeSession(t, env)
	require.Equal(t, domain.StepAddressSelection, session.Step)
	assert.Equal(t, domain.AddressModeSaved, session.AddressMode)

	code, env = doJSON(t, router, http.MethodPost, base+"/advance", "")
	require.Equal(t, http.StatusOK, code)
	session = decodeSession(t, env)
	require.Equal(t, domain.StepPaymentSelection, session.Step)

	code, env = doJSON(t, router, http.MethodPut, base+"/payment", `{"payment_method":"cod"}`)
	require.Equal(t, http.StatusOK, code)

	code, env = doJSON(t, router, http.MethodPost, base+"/place", "")
	require.Equal(t, http.StatusOK, code)
	session = decodeSession(t, env)
	assert.Equal(t, domain.StepCompleted, session.Step)
	assert.Equal(t, "ABC123", session.OrderRef)
	assert.Nil(t, session.WidgetParams)
}

func TestCheckoutFlow_CardWithGatewayCallback(t *testing.T) {
	router := newTestRouter(t)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout",
		`{"lines":[{"product_id":"p1","quantity":2,"unit_price":100}],"contact":{"name":"Asha"}}`)
	require.Equal(t, http.StatusCreated, code)
	session := decodeSession(t, env)
	base := "/api/v1/checkout/" + session.ID

	doJSON(t, router, http.MethodPut, base+"/vendor", `{"vendor_id":"v1"}`)
	doJSON(t, router, http.MethodPost, base+"/advance", "")
	doJSON(t, router, http.MethodPost, base+"/advance", "")
	doJSON(t, router, http.MethodPut, base+"/payment", `{"payment_method":"card"}`)

	code, env = doJSON(t, router, http.MethodPost, base+"/place", "")
	require.Equal(t, http.StatusOK, code)
	session = decodeSession(t, env)
	require.Equal(t, domain.StepAwaitingPayment, session.Step)
	require.NotNil(t, session.WidgetParams)
	assert.Equal(t, "r1", session.WidgetParams.OrderID)
	assert.Equal(t, int64(20000), session.WidgetParams.Amount)

	// A second place while awaiting payment is rejected, not re-submitted.
	code, env = doJSON(t, router, http.MethodPost, base+"/place", "")
	require.Equal(t, http.StatusConflict, code)

	code, env = doJSON(t, router, http.MethodPost, base+"/payment/callback",
		`{"kind":"success","success":{"payment_id":"pay1","order_id":"r1","signature":"sig1"}}`)
	require.Equal(t, http.StatusOK, code)
	session = decodeSession(t, env)
	assert.Equal(t, domain.StepCompleted, session.Step)
	assert.Equal(t, "ABC123", session.OrderRef)
}

func TestPaymentCallback_Dismissal(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout",
		`{"lines":[{"product_id":"p1","quantity":1,"unit_price":50}]}`)
	session := decodeSession(t, env)
	base := "/api/v1/checkout/" + session.ID

	doJSON(t, router, http.MethodPut, base+"/vendor", `{"vendor_id":"v1"}`)
	doJSON(t, router, http.MethodPost, base+"/advance", "")
	doJSON(t, router, http.MethodPost, base+"/advance", "")
	doJSON(t, router, http.MethodPut, base+"/payment", `{"payment_method":"upi"}`)
	doJSON(t, router, http.MethodPost, base+"/place", "")

	code, env := doJSON(t, router, http.MethodPost, base+"/payment/callback", `{"kind":"dismissed"}`)
	require.Equal(t, http.StatusOK, code)
	session = decodeSession(t, env)
	assert.Equal(t, domain.StepPaymentSelection, session.Step)
	require.NotNil(t, session.StepError)
	assert.Equal(t, domain.ErrCodePaymentCancelled, session.StepError.Code)
}

func TestPaymentCallback_MalformedOutcome(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout",
		`{"lines":[{"product_id":"p1","quantity":1,"unit_price":50}]}`)
	session := decodeSession(t, env)

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/checkout/"+session.ID+"/payment/callback",
		`{"kind":"success"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStartCheckout_ValidationError(t *testing.T) {
	router := newTestRouter(t)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout", `{"lines":[]}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestSetAddress_SavedModeRequiresID(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout",
		`{"lines":[{"product_id":"p1","quantity":1,"unit_price":50}]}`)
	session := decodeSession(t, env)

	code, env := doJSON(t, router, http.MethodPut, "/api/v1/checkout/"+session.ID+"/address",
		`{"mode":"saved"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
}

func TestAbandonCheckout(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout",
		`{"lines":[{"product_id":"p1","quantity":1,"unit_price":50}]}`)
	session := decodeSession(t, env)
	base := "/api/v1/checkout/" + session.ID

	code, _ := doJSON(t, router, http.MethodDelete, base, "")
	require.Equal(t, http.StatusNoContent, code)

	code, _ = doJSON(t, router, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetCheckout_OtherUserCannotSee(t *testing.T) {
	router := newTestRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/v1/checkout",
		`{"lines":[{"product_id":"p1","quantity":1,"unit_price":50}]}`)
	session := decodeSession(t, env)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkout/"+session.ID, nil)
	req.Header.Set("Authorization", "Bearer tok-2")
	req.Header.Set("X-User-ID", "user-2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
