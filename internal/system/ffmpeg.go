package system

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FFmpegCandidates returns ffmpeg binaries to try, in preference order:
// whatever is on PATH first, then the bundled copy if one exists at the given
// path. The list may be empty when neither is available.
func FFmpegCandidates(bundled string) []string {
	return toolCandidates("ffmpeg", bundled)
}

// FFprobeCandidates mirrors FFmpegCandidates for ffprobe. The bundled probe
// is expected to sit next to the bundled ffmpeg.
func FFprobeCandidates(bundledFFmpeg string) []string {
	bundled := ""
	if bundledFFmpeg != "" {
		bundled = filepath.Join(filepath.Dir(bundledFFmpeg), "ffprobe")
	}
	return toolCandidates("ffprobe", bundled)
}

func toolCandidates(name, bundled string) []string {
	var candidates []string
	if p, err := exec.LookPath(name); err == nil {
		candidates = append(candidates, p)
	}
	if bundled != "" {
		if st, err := os.Stat(bundled); err == nil && !st.IsDir() {
			candidates = append(candidates, bundled)
		}
	}
	return candidates
}

// GetAudioDuration probes an audio file's duration in seconds with ffprobe.
func GetAudioDuration(path, bundledFFmpeg string) (float64, error) {
	candidates := FFprobeCandidates(bundledFFmpeg)
	if len(candidates) == 0 {
		return 0, fmt.Errorf("ffprobe not found on PATH and no bundled copy available")
	}

	var lastErr error
	for _, bin := range candidates {
		cmd := exec.Command(bin, "-v", "error",
			"-show_entries", "format=duration",
			"-of", "default=noprint_wrappers=1:nokey=1", path)
		out, err := cmd.CombinedOutput()
		if err != nil {
			lastErr = fmt.Errorf("%s: %v", bin, err)
			continue
		}

		var duration float64
		if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration); err != nil {
			lastErr = fmt.Errorf("%s: unparseable duration %q", bin, strings.TrimSpace(string(out)))
			continue
		}
		return duration, nil
	}
	return 0, lastErr
}
