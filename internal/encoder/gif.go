package encoder

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/chattystickers/stickergen/internal/system"
)

// GIFEncoder writes an infinitely looping GIF. The legacy format has no
// reliable alpha channel, so frames are flattened against an opaque matte
// before palettization.
type GIFEncoder struct {
	Matte color.Color // defaults to white
}

func (e *GIFEncoder) Encode(ctx context.Context, frames []*image.NRGBA, fps int, dest string) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames")
	}

	matte := e.Matte
	if matte == nil {
		matte = color.White
	}

	out := &gif.GIF{LoopCount: 0} // 0 = loop forever
	delay := frameDelayCS(fps)

	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}

		b := frame.Bounds()
		flat := system.GetImage(b)
		draw.Draw(flat, b, image.NewUniform(matte), image.Point{}, draw.Src)
		draw.Draw(flat, b, frame, b.Min, draw.Over)

		paletted := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, b, flat, b.Min)
		system.PutImage(flat)

		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
		out.Disposal = append(out.Disposal, gif.DisposalBackground)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gif.EncodeAll(f, out); err != nil {
		return fmt.Errorf("gif encode: %w", err)
	}
	return nil
}
