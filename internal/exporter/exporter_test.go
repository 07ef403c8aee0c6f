package exporter

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chattystickers/stickergen/internal/animator"
	"github.com/chattystickers/stickergen/internal/preset"
)

// fakeEncoder writes a marker file, or fails when broken.
type fakeEncoder struct {
	broken bool
	calls  int
}

func (f *fakeEncoder) Encode(ctx context.Context, frames []*image.NRGBA, fps int, dest string) error {
	f.calls++
	if f.broken {
		return fmt.Errorf("forced failure")
	}
	return os.WriteFile(dest, []byte("fake"), 0644)
}

type fakeMuxer struct {
	ok    bool
	calls int
}

func (f *fakeMuxer) Mux(ctx context.Context, videoPath, audioPath, dest string) bool {
	f.calls++
	if !f.ok {
		return false
	}
	return os.WriteFile(dest, []byte("muxed"), 0644) == nil
}

func testAnimation() *animator.Animation {
	frames := []*image.NRGBA{
		image.NewNRGBA(image.Rect(0, 0, 8, 8)),
		image.NewNRGBA(image.Rect(0, 0, 8, 8)),
	}
	return &animator.Animation{Frames: frames, FPS: 12, Duration: 2.0 / 12.0, Style: preset.StyleHappy}
}

func writeAudio(t *testing.T, dir string, size int) string {
	t.Helper()
	path := filepath.Join(dir, "voice.mp3")
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExportAllSuccess(t *testing.T) {
	dir := t.TempDir()
	audio := writeAudio(t, dir, 4096)
	mux := &fakeMuxer{ok: true}
	e := &Exporter{
		Video: &fakeEncoder{},
		Loop:  &fakeEncoder{},
		Still: &fakeEncoder{},
		Muxer: mux,
	}

	m := e.ExportAll(context.Background(), testAnimation(), audio, "sess1", dir)

	if !m.HasAudio {
		t.Error("expected HasAudio=true")
	}
	if m.VideoPath == "" || m.GIFPath == "" || m.WebPPath == "" {
		t.Errorf("expected all paths populated: %+v", m)
	}
	if !strings.HasSuffix(m.VideoPath, "sess1_sticker.webm") {
		t.Errorf("unexpected video path %s", m.VideoPath)
	}
	// Silent intermediate cleaned up on the success path.
	if _, err := os.Stat(filepath.Join(dir, "sess1_silent_tmp.webm")); !os.IsNotExist(err) {
		t.Error("silent tmp file should have been removed after a successful merge")
	}
}

func TestExportAllBrokenVideoIsFatal(t *testing.T) {
	dir := t.TempDir()
	mux := &fakeMuxer{ok: true}
	gifEnc := &fakeEncoder{}
	webpEnc := &fakeEncoder{}
	e := &Exporter{
		Video: &fakeEncoder{broken: true},
		Loop:  gifEnc,
		Still: webpEnc,
		Muxer: mux,
	}

	m := e.ExportAll(context.Background(), testAnimation(), writeAudio(t, dir, 4096), "sess2", dir)

	if !m.Empty() {
		t.Errorf("expected empty manifest, got %+v", m)
	}
	if m.Reason == "" {
		t.Error("expected a diagnostic reason")
	}
	if gifEnc.calls != 0 || webpEnc.calls != 0 || mux.calls != 0 {
		t.Error("nothing downstream should run after a fatal video failure")
	}
}

func TestExportAllBrokenStillDoesNotBlockOthers(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{
		Video: &fakeEncoder{},
		Loop:  &fakeEncoder{},
		Still: &fakeEncoder{broken: true},
		Muxer: &fakeMuxer{ok: true},
	}

	m := e.ExportAll(context.Background(), testAnimation(), writeAudio(t, dir, 4096), "sess3", dir)

	if m.WebPPath != "" {
		t.Error("broken webp encoder must leave its path absent")
	}
	if m.VideoPath == "" || m.GIFPath == "" {
		t.Errorf("other formats must survive: %+v", m)
	}
}

func TestExportAllTinyAudioSkipsMux(t *testing.T) {
	dir := t.TempDir()
	mux := &fakeMuxer{ok: true}
	e := &Exporter{
		Video: &fakeEncoder{},
		Loop:  &fakeEncoder{},
		Still: &fakeEncoder{},
		Muxer: mux,
	}

	// 500 bytes is below the 1000-byte threshold.
	m := e.ExportAll(context.Background(), testAnimation(), writeAudio(t, dir, 500), "sess4", dir)

	if mux.calls != 0 {
		t.Errorf("muxer invoked %d times for sub-threshold audio", mux.calls)
	}
	if m.HasAudio {
		t.Error("expected HasAudio=false")
	}
	if m.VideoPath == "" {
		t.Error("silent fallback video must still be delivered")
	}
	// The silent intermediate was renamed into the destination.
	if _, err := os.Stat(m.VideoPath); err != nil {
		t.Errorf("fallback video missing: %v", err)
	}
}

func TestExportAllMuxFailureFallsBackToSilent(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{
		Video: &fakeEncoder{},
		Loop:  &fakeEncoder{},
		Still: &fakeEncoder{},
		Muxer: &fakeMuxer{ok: false},
	}

	m := e.ExportAll(context.Background(), testAnimation(), writeAudio(t, dir, 4096), "sess5", dir)

	if m.HasAudio {
		t.Error("expected HasAudio=false after mux failure")
	}
	if m.VideoPath == "" {
		t.Error("silent fallback video must still be delivered")
	}
	data, err := os.ReadFile(m.VideoPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fake" {
		t.Errorf("fallback deliverable should be the silent encode, got %q", data)
	}
}

func TestUsableAudio(t *testing.T) {
	dir := t.TempDir()

	if UsableAudio("") {
		t.Error("empty path must not be usable")
	}
	if UsableAudio(filepath.Join(dir, "missing.mp3")) {
		t.Error("missing file must not be usable")
	}
	if UsableAudio(writeAudio(t, dir, 500)) {
		t.Error("500-byte file is below threshold")
	}
	big := filepath.Join(dir, "big.mp3")
	os.WriteFile(big, make([]byte, 2000), 0644)
	if !UsableAudio(big) {
		t.Error("2000-byte file should be usable")
	}
}
