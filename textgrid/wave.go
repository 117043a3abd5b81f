package textgrid

import "github.com/chewxy/math32"

// Wave fills dst with factors following a sine wave of freq periods over
// len(dst) cells, mapped to [0,1] around 0.5. Use as gridDistortion factors.
func Wave(dst []float32, freq, phase float32) []float32 {
	n := float32(len(dst))
	for i := range dst {
		dst[i] = 0.5 + 0.5*math32.Sin(2*math32.Pi*freq*float32(i)/n+phase)
	}
	return dst
}
