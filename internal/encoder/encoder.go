// Package encoder writes a synthesized frame sequence out as the three
// sticker formats: looping GIF, animated WebP and silent WebM/VP9. Encoders
// are independent; each owns its destination file, reads frames without
// mutating them, and reports failure instead of panicking so the exporter can
// degrade per format.
package encoder

import (
	"context"
	"image"
	"math"
)

// FrameEncoder writes one animation loop to dest.
type FrameEncoder interface {
	Encode(ctx context.Context, frames []*image.NRGBA, fps int, dest string) error
}

// FrameDelayMS is the per-frame duration in integer milliseconds.
func FrameDelayMS(fps int) int {
	return int(math.Round(1000 / float64(fps)))
}

// frameDelayCS is the per-frame duration in hundredths of a second, the GIF
// delay unit.
func frameDelayCS(fps int) int {
	return int(math.Round(float64(FrameDelayMS(fps)) / 10))
}
