package audio

import (
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrInitialization wraps any failure of the pipeline initialization step
// performed by Start.
var ErrInitialization = errors.New("audio pipeline initialization failed")

// Engine owns an immutable Config and a running flag.
//
// A single *Engine may be shared between goroutines. Start and Stop publish
// the flag atomically; synthesis and processing read only the Config and
// their own arguments and take no locks.
type Engine struct {
	cfg     Config
	running atomic.Bool
	logger  *zap.Logger
}

// NewEngine creates a stopped engine. A nil logger discards diagnostics.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:    cfg,
		logger: logger,
	}
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// IsRunning reports whether Start has been called more recently than Stop.
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// Start marks the engine running and initializes the processing pipeline.
// Calling Start on a running engine is allowed and repeats initialization.
//
// The flag is set before initialization, so it stays set if initialization
// fails.
func (e *Engine) Start() error {
	e.logger.Info("engine starting",
		zap.String("component", Component),
		zap.String("tagline", Tagline),
	)

	e.running.Store(true)

	if err := e.initializePipeline(); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	return nil
}

// Stop marks the engine stopped. It is safe to call at any time.
func (e *Engine) Stop() {
	e.running.Store(false)
	e.logger.Info("engine stopped")
}

// GenerateSineWave renders durationMs of a sine tone at frequency Hz using
// the engine's sample rate. See SineWave.
func (e *Engine) GenerateSineWave(frequency float32, durationMs uint32) []float32 {
	return SineWave(e.cfg, frequency, durationMs)
}

// ProcessAudioBuffer applies the fixed gain and quantization to input.
// See Quantize.
func (e *Engine) ProcessAudioBuffer(input []float32) []float32 {
	return Quantize(input)
}

// initializePipeline reports the effective configuration. It has no failure
// mode yet; config validation belongs here once there is any.
func (e *Engine) initializePipeline() error {
	e.logger.Info("initializing audio pipeline",
		zap.Uint32("sample_rate_hz", e.cfg.SampleRate),
		zap.Int("buffer_size", e.cfg.BufferSize),
		zap.Uint16("channels", e.cfg.Channels),
		zap.Uint32("target_latency_ms", e.cfg.LatencyMs),
	)
	return nil
}
