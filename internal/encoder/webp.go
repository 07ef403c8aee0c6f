package encoder

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/kixorz/webp"
)

// WebPEncoder writes an animated lossy WebP with alpha kept, the native
// sticker format for WhatsApp/Telegram.
type WebPEncoder struct{}

func (e *WebPEncoder) Encode(ctx context.Context, frames []*image.NRGBA, fps int, dest string) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	delay := FrameDelayMS(fps)
	wf := make([]webp.Frame, 0, len(frames))
	for _, frame := range frames {
		wf = append(wf, webp.Frame{
			Image:       frame,
			Duration:    delay,
			DisposeMode: webp.DisposeModeBackground,
			BlendMode:   webp.BlendModeNoBlend,
		})
	}

	params := webp.AnimationParams{
		BackgroundColor: 0x00000000, // transparent
		LoopCount:       0,          // infinite
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := webp.EncodeAnimation(f, wf, params); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}
