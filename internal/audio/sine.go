package audio

import "math"

// SineWave renders durationMs of a sine tone at frequency Hz, attenuated by
// Gain. The result holds exactly cfg.SampleCount(durationMs) samples and is
// freshly allocated on every call, so identical arguments always produce
// identical output.
//
// A zero frequency yields silence. A zero sample rate yields no samples.
func SineWave(cfg Config, frequency float32, durationMs uint32) []float32 {
	n := cfg.SampleCount(durationMs)
	omega := 2 * math.Pi * frequency / float32(cfg.SampleRate)

	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(omega*float32(i)))) * Gain
	}
	return samples
}
