package animator

import (
	"math"

	"github.com/chattystickers/stickergen/internal/preset"
)

// Motion is the transform state of one frame within a loop cycle.
type Motion struct {
	OffsetY   int     // vertical bounce offset, pixels
	Rotation  float64 // degrees, signed
	Scale     float64 // 1.0 = no pulse
	Intensity float64 // speech emphasis signal, 0..1
}

// MotionAt computes the closed-form motion state for frame idx of total.
// Phase is a pure function of the frame index, never wall-clock time, so
// frame 0 and frame total are phase-identical and the loop tiles seamlessly.
func MotionAt(idx, total int, p preset.Profile) Motion {
	t := float64(idx) / float64(total)
	theta := 2 * math.Pi * t

	return Motion{
		OffsetY:   int(p.BounceAmplitude * math.Sin(2*theta)), // two bounce cycles per loop
		Rotation:  p.RotationMax * math.Sin(theta),            // one oscillation per loop
		Scale:     1 + p.ScalePulse*math.Sin(2*theta),         // breathing, two cycles per loop
		Intensity: math.Max(0, math.Sin(3*theta)),
	}
}
