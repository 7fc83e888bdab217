package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Checker probes one dependency.
type Checker func(ctx context.Context) error

// Status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Report is the JSON body returned by the health endpoints.
type Report struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check is the outcome of a single probe.
type Check struct {
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
	Critical bool   `json:"critical"`
}

type probe struct {
	check    Checker
	critical bool
}

// Handler serves liveness and readiness endpoints over registered probes.
type Handler struct {
	mu     sync.RWMutex
	probes map[string]probe
}

// NewHandler creates an empty health handler.
func NewHandler() *Handler {
	return &Handler{probes: make(map[string]probe)}
}

// RegisterCritical adds a probe whose failure makes the service not ready.
func (h *Handler) RegisterCritical(name string, c Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes[name] = probe{check: c, critical: true}
}

// RegisterNonCritical adds a probe that is reported but does not flip
// readiness. Used for dependencies the service can degrade without.
func (h *Handler) RegisterNonCritical(name string, c Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes[name] = probe{check: c, critical: false}
}

// Liveness always reports up while the process runs.
func (h *Handler) Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeReport(w, http.StatusOK, Report{Status: StatusUp, Timestamp: time.Now().UTC()})
	}
}

// Readiness runs every probe with a shared deadline; a failing critical probe
// yields 503.
func (h *Handler) Readiness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		h.mu.RLock()
		probes := make(map[string]probe, len(h.probes))
		for name, p := range h.probes {
			probes[name] = p
		}
		h.mu.RUnlock()

		checks := make(map[string]Check, len(probes))
		overall := StatusUp
		for name, p := range probes {
			if err := p.check(ctx); err != nil {
				checks[name] = Check{Status: StatusDown, Error: err.Error(), Critical: p.critical}
				if p.critical {
					overall = StatusDown
				}
				continue
			}
			checks[name] = Check{Status: StatusUp, Critical: p.critical}
		}

		status := http.StatusOK
		if overall == StatusDown {
			status = http.StatusServiceUnavailable
		}
		writeReport(w, status, Report{Status: overall, Timestamp: time.Now().UTC(), Checks: checks})
	}
}

func writeReport(w http.ResponseWriter, status int, report Report) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(report)
}
