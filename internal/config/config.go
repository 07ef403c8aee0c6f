package config

import "time"

type Config struct {
	ImagePath      string
	AudioPath      string
	Style          string
	SessionID      string
	OutputDir      string
	TargetDuration float64 // seconds; 0 = probe the audio file
	PresetFile     string  // optional YAML preset overrides
	BundledFFmpeg  string  // fallback ffmpeg binary when PATH has none
	Quality        int     // VP9 CRF; 0 = default
	MuxTimeout     time.Duration
}
