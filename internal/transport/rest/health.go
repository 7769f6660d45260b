package rest

import (
	"context"
	"net/http"
	"time"
)

// storagePinger is the snapshot slot the sheet is persisted to.
type storagePinger interface {
	Ping(ctx context.Context) error
}

const pingTimeout = 3 * time.Second

const (
	statusOK   = "ok"
	statusDown = "down"
)

// HealthHandler serves the liveness, readiness and health probes.
type HealthHandler struct {
	storage   storagePinger
	component string
	version   string
}

// NewHealthHandler creates a HealthHandler. driver names the storage
// component in /health output.
func NewHealthHandler(storage storagePinger, driver, version string) *HealthHandler {
	component := "storage"
	if driver != "" {
		component += ":" + driver
	}
	return &HealthHandler{storage: storage, component: component, version: version}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live always answers 200; the process is up if it can respond.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready answers 503 while the storage slot cannot be pinged.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	comp := h.probe(r.Context())
	writeJSON(w, httpStatus(comp.Status), HealthResponse{Status: comp.Status, Timestamp: time.Now()})
}

// Health reports the storage component with its ping latency and the build
// version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	comp := h.probe(r.Context())
	writeJSON(w, httpStatus(comp.Status), HealthResponse{
		Status:     comp.Status,
		Version:    h.version,
		Components: map[string]CompStatus{h.component: comp},
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) probe(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.storage.Ping(ctx); err != nil {
		return CompStatus{Status: statusDown, Error: err.Error()}
	}
	return CompStatus{Status: statusOK, Latency: time.Since(start).String()}
}

func httpStatus(s string) int {
	if s == statusOK {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
