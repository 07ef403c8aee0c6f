package animator

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/kovidgoyal/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/chattystickers/stickergen/internal/preset"
	"github.com/chattystickers/stickergen/internal/system"
)

const (
	// CanvasSize is the square output frame dimension.
	CanvasSize = 512
	// workingSize is the resolution the base image is normalized to before
	// per-frame transforms.
	workingSize = 420
	// minDuration floors the target duration so very short audio never
	// produces a degenerate animation.
	minDuration = 1.5
)

// Animation is one full loop cycle of composited frames. Frames are owned by
// the Animation and read-only for encoders.
type Animation struct {
	Frames   []*image.NRGBA
	FPS      int
	Duration float64 // seconds, == len(Frames)/FPS
	Style    preset.Style
}

// Synthesize renders a loop animation for the given style, resampled so the
// loop covers at least targetDuration seconds while keeping the preset's
// minimum frame count. It only fails on a missing base image; any style
// label is accepted (unknown labels use the default profile).
func Synthesize(base image.Image, table *preset.Table, styleLabel string, targetDuration float64) (*Animation, error) {
	if base == nil {
		return nil, fmt.Errorf("no base image")
	}

	style, prof := table.Lookup(styleLabel)

	duration := math.Max(targetDuration, minDuration)
	framesNeeded := int(duration * float64(prof.FPS))
	total := framesNeeded
	if total < prof.Frames {
		total = prof.Frames
	}

	system.WarnIfLowMemory(uint64(total) * CanvasSize * CanvasSize * 4)
	fmt.Printf("[*] Animating: style=%s | %d frames @ %d FPS\n", style, total, prof.FPS)

	normalized := Normalize(base)

	frames := make([]*image.NRGBA, 0, total)
	for i := 0; i < total; i++ {
		frames = append(frames, renderFrame(normalized, i, total, prof))
	}

	return &Animation{
		Frames:   frames,
		FPS:      prof.FPS,
		Duration: float64(total) / float64(prof.FPS),
		Style:    style,
	}, nil
}

// Normalize resamples the base image to the fixed working resolution,
// preserving alpha.
func Normalize(src image.Image) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, workingSize, workingSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// LoadImage decodes a still image from disk. A failure here is an input
// precondition error for the caller; nothing downstream retries it.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load base image %s: %w", path, err)
	}
	return img, nil
}

func renderFrame(base *image.NRGBA, idx, total int, p preset.Profile) *image.NRGBA {
	m := MotionAt(idx, total, p)

	w := base.Bounds().Dx()
	h := base.Bounds().Dy()
	sprite := imaging.Resize(base, int(float64(w)*m.Scale), int(float64(h)*m.Scale), imaging.Lanczos)

	if p.MouthEmphasis > 0 && m.Intensity > 0 {
		sprite = stretchMouth(sprite, m.Intensity*p.MouthEmphasis)
	}

	// Rotate with expanded bounds: the rotated sprite keeps its own extent,
	// corners are never clipped against the pre-rotation box.
	rotated := imaging.Rotate(sprite, m.Rotation, color.NRGBA{})

	canvas := image.NewNRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	pos := image.Pt(
		(CanvasSize-rotated.Bounds().Dx())/2,
		(CanvasSize-rotated.Bounds().Dy())/2+m.OffsetY,
	)
	return imaging.Overlay(canvas, rotated, pos, 1.0)
}

// stretchMouth scales the bottom half of the sprite vertically by the given
// factor, then resamples back to the original size. Emulates mouth movement
// for profiles with MouthEmphasis set.
func stretchMouth(img *image.NRGBA, factor float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	half := h / 2

	top := imaging.Crop(img, image.Rect(0, 0, w, half))
	bottom := imaging.Crop(img, image.Rect(0, half, w, h))

	newH := int(float64(h-half) * (1 + factor))
	bottomScaled := imaging.Resize(bottom, w, newH, imaging.Lanczos)

	out := imaging.New(w, half+newH, color.NRGBA{})
	out = imaging.Paste(out, top, image.Pt(0, 0))
	out = imaging.Paste(out, bottomScaled, image.Pt(0, half))

	return imaging.Resize(out, w, h, imaging.Lanczos)
}
