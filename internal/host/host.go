package host

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/satindergrewal/maitreya/internal/audio"
	"github.com/satindergrewal/maitreya/internal/metrics"
)

// emptyArray is returned by Synthesize when the samples cannot be encoded.
const emptyArray = "[]"

// MaxCacheEntries caps how many synthesis results a host keeps at once.
// Results past the cap are returned but not stored.
const MaxCacheEntries = 256

// Engine is the capability the host exposes to the outside. *audio.Engine
// satisfies it.
type Engine interface {
	Start() error
	Stop()
	IsRunning() bool
	Config() audio.Config
	GenerateSineWave(frequency float32, durationMs uint32) []float32
	ProcessAudioBuffer(input []float32) []float32
}

// Message is an error reduced to plain text so it can cross the host
// boundary unchanged.
type Message string

func (m Message) Error() string { return string(m) }

// Status is a snapshot of the hosted engine.
type Status struct {
	ID         string `json:"id"`
	Running    bool   `json:"running"`
	SampleRate uint32 `json:"sample_rate"`
	BufferSize int    `json:"buffer_size"`
	Channels   uint16 `json:"channels"`
	LatencyMs  uint32 `json:"latency_ms"`
}

// Option configures a Host.
type Option func(*Host)

// WithCache keeps up to MaxCacheEntries encoded synthesis results for ttl.
// A ttl of zero or less disables caching.
func WithCache(ttl time.Duration) Option {
	return func(h *Host) {
		if ttl > 0 {
			h.cache = cache.New(ttl, 2*ttl)
		}
	}
}

// Host adapts an Engine to text-in, text-out callers such as the HTTP API
// and the CLI. It keeps serialization and metrics out of the engine.
type Host struct {
	id     string
	engine Engine
	logger *zap.Logger
	cache  *cache.Cache // nil when disabled
}

// New hosts an engine built from audio.DefaultConfig.
func New(logger *zap.Logger, opts ...Option) *Host {
	return NewWithConfig(audio.DefaultConfig(), logger, opts...)
}

// NewWithConfig hosts an engine built from cfg.
func NewWithConfig(cfg audio.Config, logger *zap.Logger, opts ...Option) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewWithEngine(audio.NewEngine(cfg, logger.Named("engine")), logger, opts...)
}

// NewWithEngine hosts an existing engine.
func NewWithEngine(engine Engine, logger *zap.Logger, opts ...Option) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Host{
		id:     uuid.New().String(),
		engine: engine,
	}
	h.logger = logger.With(zap.String("host", h.id))
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ID identifies this host instance.
func (h *Host) ID() string {
	return h.id
}

// Start starts the engine. Any failure is returned as a Message.
func (h *Host) Start() error {
	metrics.EngineStartsTotal.Inc()
	err := h.engine.Start()
	// A failed start can still leave the flag set; the gauge follows the flag.
	h.syncRunningGauge()
	if err != nil {
		metrics.EngineStartFailuresTotal.Inc()
		h.logger.Error("engine start failed", zap.Error(err))
		return Message(err.Error())
	}
	return nil
}

// Stop stops the engine.
func (h *Host) Stop() {
	h.engine.Stop()
	h.syncRunningGauge()
}

func (h *Host) syncRunningGauge() {
	if h.engine.IsRunning() {
		metrics.EngineRunning.Set(1)
	} else {
		metrics.EngineRunning.Set(0)
	}
}

// Running reports the engine's running flag.
func (h *Host) Running() bool {
	return h.engine.IsRunning()
}

// Status reports the engine's identity, lifecycle state and configuration.
func (h *Host) Status() Status {
	cfg := h.engine.Config()
	return Status{
		ID:         h.id,
		Running:    h.engine.IsRunning(),
		SampleRate: cfg.SampleRate,
		BufferSize: cfg.BufferSize,
		Channels:   cfg.Channels,
		LatencyMs:  cfg.LatencyMs,
	}
}

// Synthesize renders a sine tone and returns it as a JSON array of numbers
// in sample order. If the samples cannot be encoded the result is "[]".
func (h *Host) Synthesize(frequency float32, durationMs uint32) string {
	key := cacheKey(frequency, durationMs)
	if h.cache != nil {
		if v, ok := h.cache.Get(key); ok {
			metrics.SynthesisCacheHitsTotal.Inc()
			return v.(string)
		}
	}

	samples := h.engine.GenerateSineWave(frequency, durationMs)
	metrics.SamplesSynthesizedTotal.Add(float64(len(samples)))

	out, err := encodeSamples(samples)
	if err != nil {
		metrics.SynthesisFallbacksTotal.Inc()
		h.logger.Warn("encoding sine wave failed, returning empty array",
			zap.Float32("frequency", frequency),
			zap.Uint32("duration_ms", durationMs),
			zap.Error(err),
		)
		return emptyArray
	}

	if h.cache != nil && h.cache.ItemCount() < MaxCacheEntries {
		h.cache.SetDefault(key, out)
	}
	return out
}

// Process passes input through the engine's gain and quantization stage.
func (h *Host) Process(input []float32) []float32 {
	out := h.engine.ProcessAudioBuffer(input)
	metrics.BuffersProcessedTotal.Inc()
	metrics.SamplesProcessedTotal.Add(float64(len(input)))
	return out
}

// encodeSamples writes samples as a JSON array. Non-finite samples have no
// JSON representation and make it fail.
func encodeSamples(samples []float32) (string, error) {
	if samples == nil {
		samples = []float32{}
	}
	b, err := json.Marshal(samples)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// cacheKey uses the frequency's bit pattern so -0 and 0, and distinct NaNs,
// do not collide.
func cacheKey(frequency float32, durationMs uint32) string {
	return fmt.Sprintf("%08x:%d", math.Float32bits(frequency), durationMs)
}
