package exporter

import (
	"context"
	"log"
	"os"
	"os/exec"
	"time"
)

const (
	// MinAudioBytes is the smallest audio file considered usable. Anything
	// below it (empty TTS output, truncated downloads) skips the merge and
	// the silent video ships as-is.
	MinAudioBytes = 1000

	// DefaultMuxTimeout bounds one ffmpeg mux invocation.
	DefaultMuxTimeout = 90 * time.Second

	audioBitrate = "64k"
)

// Muxer merges a silent video with an audio track into dest. It reports
// success as a boolean; the exporter degrades to the silent video on false.
type Muxer interface {
	Mux(ctx context.Context, videoPath, audioPath, dest string) bool
}

// FFmpegMuxer copies the video stream verbatim and re-encodes the audio to
// Opus. The audio input loops indefinitely while -shortest truncates at the
// video boundary, so the muxed duration always equals the video duration:
// short speech is looped to cover the animation, long speech is cut.
type FFmpegMuxer struct {
	Candidates []string // ffmpeg binaries in preference order
	Timeout    time.Duration
}

func (m *FFmpegMuxer) Mux(ctx context.Context, videoPath, audioPath, dest string) bool {
	if len(m.Candidates) == 0 {
		log.Printf("[!] ffmpeg not found on PATH and no bundled copy available")
		return false
	}

	for _, bin := range m.Candidates {
		if m.muxWith(ctx, bin, videoPath, audioPath, dest) {
			return true
		}
		// Partial output from a failed or timed-out run is discarded.
		os.Remove(dest)
	}
	return false
}

func (m *FFmpegMuxer) muxWith(ctx context.Context, bin, videoPath, audioPath, dest string) bool {
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = DefaultMuxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, muxArgs(videoPath, audioPath, dest)...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("[!] Audio merge failed (%s): %v\n%s", bin, err, tail(out, 300))
		return false
	}

	st, err := os.Stat(dest)
	return err == nil && st.Size() > 0
}

// muxArgs builds the ffmpeg invocation. Ordering matters: -stream_loop is an
// input option and must sit directly before the audio -i to loop that stream
// (and only that stream), while -shortest truncates the output at the video
// boundary. Together they pin the muxed duration to the video duration.
func muxArgs(videoPath, audioPath, dest string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-stream_loop", "-1", // loop audio until the video ends
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "libopus",
		"-b:a", audioBitrate,
		"-shortest",
		dest,
	}
}

// UsableAudio reports whether the audio file exists and clears the minimum
// size threshold.
func UsableAudio(path string) bool {
	if path == "" {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && st.Size() > MinAudioBytes
}

func tail(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}
