package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	EngineRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "maitreya_engine_running",
		Help: "1 while the engine is started, 0 otherwise",
	})
)

// Counters
var (
	EngineStartsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maitreya_engine_starts_total",
		Help: "Total engine start calls",
	})
	EngineStartFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maitreya_engine_start_failures_total",
		Help: "Engine start calls that returned an error",
	})
	SamplesSynthesizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maitreya_samples_synthesized_total",
		Help: "Total sine samples rendered",
	})
	SynthesisFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maitreya_synthesis_fallbacks_total",
		Help: "Synthesis results that could not be encoded and were replaced by an empty array",
	})
	SynthesisCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maitreya_synthesis_cache_hits_total",
		Help: "Synthesis requests served from the cache",
	})
	BuffersProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maitreya_buffers_processed_total",
		Help: "Total buffers passed through gain and quantization",
	})
	SamplesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maitreya_samples_processed_total",
		Help: "Total samples passed through gain and quantization",
	})
)

// Histograms
var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maitreya_http_request_duration_seconds",
		Help:    "HTTP request duration by route pattern and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)
