package encoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"

	"github.com/chattystickers/stickergen/internal/system"
)

const defaultCRF = 32

// VP9Encoder pipes raw RGBA frames into an ffmpeg subprocess and writes a
// silent WebM. Candidates are ffmpeg binaries tried in order (PATH copy,
// then bundled). Frames are flattened opaque; VP9 output here carries no
// alpha.
type VP9Encoder struct {
	Candidates []string
	CRF        int // 0 = defaultCRF
}

func (e *VP9Encoder) Encode(ctx context.Context, frames []*image.NRGBA, fps int, dest string) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames")
	}
	if len(e.Candidates) == 0 {
		return fmt.Errorf("ffmpeg not found on PATH and no bundled copy available")
	}

	var lastErr error
	for _, bin := range e.Candidates {
		if err := e.encodeWith(ctx, bin, frames, fps, dest); err != nil {
			lastErr = err
			os.Remove(dest)
			continue
		}
		return nil
	}
	return lastErr
}

func (e *VP9Encoder) encodeWith(ctx context.Context, bin string, frames []*image.NRGBA, fps int, dest string) error {
	crf := e.CRF
	if crf <= 0 {
		crf = defaultCRF
	}

	b := frames[0].Bounds()
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-c:v", "libvpx-vp9",
		"-crf", fmt.Sprintf("%d", crf),
		"-b:v", "0",
		"-pix_fmt", "yuv420p",
		dest,
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start: %w", err)
	}

	writeErr := e.writeFrames(stdin, frames)
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %v\n%s", err, tail(out.Bytes(), 300))
	}
	if writeErr != nil {
		return fmt.Errorf("write raw frames: %w", writeErr)
	}

	// An exited-clean ffmpeg can still leave an empty container behind.
	st, err := os.Stat(dest)
	if err != nil || st.Size() == 0 {
		return fmt.Errorf("ffmpeg produced no output at %s", dest)
	}
	return nil
}

// writeFrames flattens each frame against white and streams the raw pixels.
// With alpha forced to 255 the premultiplied buffer is byte-identical to
// straight RGBA, which is what ffmpeg's rawvideo demuxer expects.
func (e *VP9Encoder) writeFrames(w io.Writer, frames []*image.NRGBA) error {
	b := frames[0].Bounds()
	flat := system.GetImage(b)
	defer system.PutImage(flat)

	for _, frame := range frames {
		draw.Draw(flat, b, image.White, image.Point{}, draw.Src)
		draw.Draw(flat, b, frame, b.Min, draw.Over)
		if _, err := w.Write(flat.Pix); err != nil {
			return err
		}
	}
	return nil
}

func tail(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}
