package audio

const (
	DefaultSampleRate = 44100
	DefaultBufferSize = 1024 // samples per processing block
	DefaultChannels   = 2
	DefaultLatencyMs  = 10

	Gain          = 0.8       // fixed attenuation for synthesis and processing
	QuantizeScale = 1_000_000 // processing rounds to the nearest 1/QuantizeScale
)

// Identity logged when the pipeline initializes.
const (
	Component = "MAITREYA DAW"
	Tagline   = "b122m faeb gentle revolution"
)

// Config describes the audio format an Engine works with.
//
// BufferSize, Channels and LatencyMs are informational. Synthesis and
// processing operate on a single flat sample sequence and never consult
// them. Nothing is validated: a zero SampleRate is accepted and yields
// empty or non-finite output.
type Config struct {
	SampleRate uint32 // samples per second
	BufferSize int    // samples per processing block
	Channels   uint16
	LatencyMs  uint32 // target latency, not enforced
}

// DefaultConfig returns 44.1kHz stereo with 1024-sample blocks and 10ms latency.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		BufferSize: DefaultBufferSize,
		Channels:   DefaultChannels,
		LatencyMs:  DefaultLatencyMs,
	}
}

// SampleCount returns how many samples durationMs spans at the configured
// rate, truncating. The product is formed in 64 bits so it cannot wrap.
func (c Config) SampleCount(durationMs uint32) int {
	return int(uint64(c.SampleRate) * uint64(durationMs) / 1000)
}
