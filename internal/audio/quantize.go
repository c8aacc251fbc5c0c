package audio

import "math"

// Quantize attenuates every sample by Gain and rounds it to the nearest
// millionth, half away from zero. Order and length are preserved; a nil or
// empty input returns an empty, non-nil slice.
//
// Applying Quantize to its own output is not a no-op: the rounding is
// stable but the gain is applied again on every pass.
func Quantize(input []float32) []float32 {
	out := make([]float32, len(input))
	for i, s := range input {
		attenuated := s * Gain
		out[i] = float32(math.Round(float64(attenuated*QuantizeScale))) / QuantizeScale
	}
	return out
}
