// Package exporter sequences the encoders into the full deliverable set:
// WebM with audio (degrading to silent), looping GIF and animated WebP.
package exporter

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chattystickers/stickergen/internal/animator"
	"github.com/chattystickers/stickergen/internal/config"
	"github.com/chattystickers/stickergen/internal/encoder"
	"github.com/chattystickers/stickergen/internal/system"
)

type Exporter struct {
	Video encoder.FrameEncoder // silent WebM, the only fatal stage
	Loop  encoder.FrameEncoder // GIF
	Still encoder.FrameEncoder // animated WebP
	Muxer Muxer
}

// New builds an exporter with the default encoder set, resolving ffmpeg
// through PATH with the configured bundled binary as fallback.
func New(cfg *config.Config) *Exporter {
	candidates := system.FFmpegCandidates(cfg.BundledFFmpeg)
	timeout := cfg.MuxTimeout
	if timeout <= 0 {
		timeout = DefaultMuxTimeout
	}
	return &Exporter{
		Video: &encoder.VP9Encoder{Candidates: candidates, CRF: cfg.Quality},
		Loop:  &encoder.GIFEncoder{},
		Still: &encoder.WebPEncoder{},
		Muxer: &FFmpegMuxer{Candidates: candidates, Timeout: timeout},
	}
}

// ExportAll produces every deliverable for one animation. Per-format failures
// are logged and reflected as absent manifest paths; only a silent-video
// encode failure aborts the run (everything downstream needs that file),
// returning an empty manifest with a diagnostic reason. Errors never
// propagate past this boundary.
func (e *Exporter) ExportAll(ctx context.Context, anim *animator.Animation, audioPath, sessionID, outDir string) Manifest {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return Manifest{Reason: fmt.Sprintf("output dir: %v", err)}
	}

	silentPath := filepath.Join(outDir, sessionID+"_silent_tmp.webm")
	videoDest := filepath.Join(outDir, sessionID+"_sticker.webm")
	gifDest := filepath.Join(outDir, sessionID+"_sticker.gif")
	webpDest := filepath.Join(outDir, sessionID+"_sticker.webp")

	fmt.Printf("[*] Encoding silent video (%d frames @ %d FPS)...\n", len(anim.Frames), anim.FPS)
	start := time.Now()
	if err := e.Video.Encode(ctx, anim.Frames, anim.FPS, silentPath); err != nil {
		log.Printf("[!] Silent video encode failed: %v", err)
		return Manifest{Reason: fmt.Sprintf("silent video encode failed: %v", err)}
	}
	fmt.Printf("[*] Silent video ready in %.2fs\n", time.Since(start).Seconds())

	var m Manifest
	switch {
	case !UsableAudio(audioPath):
		log.Printf("[!] Audio missing or below %d bytes — shipping silent video", MinAudioBytes)
	case e.Muxer.Mux(ctx, silentPath, audioPath, videoDest):
		m.HasAudio = true
		m.VideoPath = videoDest
		os.Remove(silentPath) // intermediate cleaned up only on success
		fmt.Printf("[*] Audio merged -> %s\n", videoDest)
	default:
		log.Printf("[!] Audio merge failed — falling back to silent video")
	}

	if !m.HasAudio {
		if err := os.Rename(silentPath, videoDest); err != nil {
			log.Printf("[!] Could not move silent video into place: %v", err)
		} else {
			m.VideoPath = videoDest
		}
	}

	// GIF and WebP are independent of each other and of the primary video;
	// they share read access to the frame slice and own separate files.
	var g errgroup.Group
	g.Go(func() error {
		if err := e.Loop.Encode(ctx, anim.Frames, anim.FPS, gifDest); err != nil {
			log.Printf("[!] GIF encode failed: %v", err)
			return nil
		}
		m.GIFPath = gifDest
		return nil
	})
	g.Go(func() error {
		if err := e.Still.Encode(ctx, anim.Frames, anim.FPS, webpDest); err != nil {
			log.Printf("[!] WebP encode failed: %v", err)
			return nil
		}
		m.WebPPath = webpDest
		return nil
	})
	g.Wait()

	return m
}
