package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/satindergrewal/maitreya/internal/audio"
	"github.com/satindergrewal/maitreya/internal/host"
)

const (
	defaultFrequency  = 440.0
	defaultDurationMs = 1000

	// MaxSineSamples bounds one /api/sine response: ten seconds at 48 kHz.
	MaxSineSamples = 480_000
	// MaxProcessBodyBytes bounds the /api/process request body.
	MaxProcessBodyBytes = 1 << 20
)

// Handlers serves the engine API over a Host.
type Handlers struct {
	host   *host.Host
	logger *zap.Logger
}

// NewHandlers creates handlers for h.
func NewHandlers(h *host.Host, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{host: h, logger: logger}
}

type processRequest struct {
	Samples []float32 `json:"samples"`
}

type processResponse struct {
	Samples []float32 `json:"samples"`
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// Status handles GET /api/status.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.host.Status())
}

// Start handles POST /api/start. A start failure is reported as its plain
// text message with status 500.
func (h *Handlers) Start(w http.ResponseWriter, r *http.Request) {
	if err := h.host.Start(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "running": h.host.Running()})
}

// Stop handles POST /api/stop.
func (h *Handlers) Stop(w http.ResponseWriter, r *http.Request) {
	h.host.Stop()
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "running": h.host.Running()})
}

// Sine handles GET /api/sine?frequency=<hz>&duration_ms=<ms>. The body is
// the host's JSON array text, "[]" when the samples cannot be encoded.
// Durations that would render more than MaxSineSamples are rejected.
func (h *Handlers) Sine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	frequency := float32(defaultFrequency)
	if v := q.Get("frequency"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid frequency"})
			return
		}
		frequency = float32(f)
	}

	durationMs := uint32(defaultDurationMs)
	if v := q.Get("duration_ms"); v != "" {
		d, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid duration_ms"})
			return
		}
		durationMs = uint32(d)
	}

	rate := h.host.Status().SampleRate
	if n := (audio.Config{SampleRate: rate}).SampleCount(durationMs); n > MaxSineSamples {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":       "duration_ms too long",
			"max_samples": MaxSineSamples,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(h.host.Synthesize(frequency, durationMs)))
}

// Process handles POST /api/process with body {"samples":[...]}. The router
// limits the body to MaxProcessBodyBytes; past that the reply is 413.
func (h *Handlers) Process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request"})
		return
	}

	out := h.host.Process(req.Samples)

	// Gain can push huge inputs past float32 range; those have no JSON form.
	body, err := json.Marshal(processResponse{Samples: out})
	if err != nil {
		h.logger.Warn("encoding processed buffer failed", zap.Int("samples", len(out)), zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "result not representable"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
