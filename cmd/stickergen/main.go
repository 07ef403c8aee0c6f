package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chattystickers/stickergen/internal/animator"
	"github.com/chattystickers/stickergen/internal/config"
	"github.com/chattystickers/stickergen/internal/exporter"
	"github.com/chattystickers/stickergen/internal/preset"
	"github.com/chattystickers/stickergen/internal/system"
)

func main() {
	system.InitResourceLimits()

	dirs := []string{"input/image", "input/audio", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	imagePtr := flag.String("image", "", "Path to the base still image (default: newest file in input/image/)")
	audioPtr := flag.String("audio", "", "Path to the voice audio file (default: newest file in input/audio/, empty = silent sticker)")
	stylePtr := flag.String("style", "happy", "Animation style: happy, dancing, singing, sad, greeting, surprised, cool")
	durationPtr := flag.Float64("duration", 0, "Target animation duration in seconds (0 = probe the audio file)")
	outputPtr := flag.String("output", "output", "Output directory root; deliverables land in <output>/<session>/")
	sessionPtr := flag.String("session", "", "Session identifier used in output filenames (default: random)")
	presetsPtr := flag.String("presets", "", "Optional YAML file with motion preset overrides")
	ffmpegPtr := flag.String("ffmpeg", os.Getenv("STICKERGEN_FFMPEG"), "Bundled ffmpeg binary used when PATH has none")
	qualityPtr := flag.Int("quality", 0, "VP9 quality (CRF, 0 = default)")
	timeoutPtr := flag.Duration("mux-timeout", exporter.DefaultMuxTimeout, "Upper bound for one audio merge attempt")

	flag.Parse()

	imagePath := *imagePtr
	if imagePath == "" {
		latest, err := system.FindLatestImage("input/image")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a PNG into input/image/ or pass -image", err)
		}
		imagePath = latest
		fmt.Printf("[*] Using image: %s\n", imagePath)
	}

	audioPath := *audioPtr
	if audioPath == "" {
		if latest, err := system.FindLatestAudio("input/audio"); err == nil {
			audioPath = latest
			fmt.Printf("[*] Using audio: %s\n", audioPath)
		}
	}

	targetDuration := *durationPtr
	if targetDuration <= 0 && audioPath != "" {
		dur, err := system.GetAudioDuration(audioPath, *ffmpegPtr)
		var warning string
		targetDuration, warning = effectiveDuration(*durationPtr, dur, err)
		if warning != "" {
			log.Printf("[!] %s", warning)
		} else {
			fmt.Printf("[*] Animation duration set from audio: %.2fs\n", targetDuration)
		}
	}

	sessionID := *sessionPtr
	if sessionID == "" {
		sessionID = newSessionID()
	}

	cfg := &config.Config{
		ImagePath:      imagePath,
		AudioPath:      audioPath,
		Style:          *stylePtr,
		SessionID:      sessionID,
		OutputDir:      filepath.Join(*outputPtr, sessionID),
		TargetDuration: targetDuration,
		PresetFile:     *presetsPtr,
		BundledFFmpeg:  *ffmpegPtr,
		Quality:        *qualityPtr,
		MuxTimeout:     *timeoutPtr,
	}

	table := preset.Default()
	if cfg.PresetFile != "" {
		var err error
		table, err = preset.Load(cfg.PresetFile)
		if err != nil {
			log.Fatalf("[-] Preset file error: %v", err)
		}
		fmt.Printf("[*] Using preset overrides: %s\n", cfg.PresetFile)
	}

	img, err := animator.LoadImage(cfg.ImagePath)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	start := time.Now()
	anim, err := animator.Synthesize(img, table, cfg.Style, cfg.TargetDuration)
	if err != nil {
		log.Fatalf("[-] Animation failed: %v", err)
	}

	exp := exporter.New(cfg)
	manifest := exp.ExportAll(context.Background(), anim, cfg.AudioPath, cfg.SessionID, cfg.OutputDir)
	if manifest.Empty() {
		log.Fatalf("[-] Export failed: %s", manifest.Reason)
	}

	fmt.Printf("[+++] Done in %.2fs\n", time.Since(start).Seconds())
	printDeliverable("video", manifest.VideoPath, manifest.HasAudio)
	printDeliverable("gif", manifest.GIFPath, false)
	printDeliverable("webp", manifest.WebPPath, false)
}

func printDeliverable(kind, path string, hasAudio bool) {
	switch {
	case path == "":
		fmt.Printf("[!]   %-5s -> (not produced)\n", kind)
	case hasAudio:
		fmt.Printf("[*]   %-5s -> %s (with audio)\n", kind, path)
	default:
		fmt.Printf("[*]   %-5s -> %s\n", kind, path)
	}
}

// effectiveDuration picks the animation duration from the explicit flag or
// the probed audio length. When neither is known the animation falls back to
// the minimum length while -shortest still cuts the mux at the video
// boundary, so the warning spells out that trailing speech will be lost.
func effectiveDuration(flagDuration, probedDuration float64, probeErr error) (float64, string) {
	if flagDuration > 0 {
		return flagDuration, ""
	}
	if probeErr != nil {
		return 0, fmt.Sprintf("Could not probe audio duration (%v) — animation falls back to the minimum length and speech beyond it will be cut; pass -duration to avoid this", probeErr)
	}
	return probedDuration, ""
}

func newSessionID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(b[:])
}
