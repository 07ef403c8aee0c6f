package preset

import "strings"

// Style is one of the known emotion/animation styles.
type Style string

const (
	StyleHappy     Style = "happy"
	StyleDancing   Style = "dancing"
	StyleSinging   Style = "singing"
	StyleSad       Style = "sad"
	StyleGreeting  Style = "greeting"
	StyleSurprised Style = "surprised"
	StyleCool      Style = "cool"
)

// DefaultStyle is used for any label outside the known set.
const DefaultStyle = StyleHappy

// Profile is the fixed motion parameter set for one style.
type Profile struct {
	BounceAmplitude float64 `yaml:"bounce_amplitude"` // vertical bounce, pixels
	BounceSpeed     float64 `yaml:"bounce_speed"`
	RotationMax     float64 `yaml:"rotation_max"` // degrees, signed oscillation bound
	ScalePulse      float64 `yaml:"scale_pulse"`  // breathing magnitude, fraction of 1.0
	MouthEmphasis   float64 `yaml:"mouth_emphasis"`
	Frames          int     `yaml:"frames"` // minimum frames per loop
	FPS             int     `yaml:"fps"`
}

// Valid reports whether the profile satisfies the motion-profile invariants:
// all numeric fields non-negative, FPS positive, ScalePulse below 1 (a pulse
// of 1 would drive the frame scale to zero mid-loop) and RotationMax within
// one full turn.
func (p Profile) Valid() bool {
	return p.BounceAmplitude >= 0 && p.BounceSpeed >= 0 &&
		p.RotationMax >= 0 && p.RotationMax <= 360 &&
		p.ScalePulse >= 0 && p.ScalePulse < 1 &&
		p.MouthEmphasis >= 0 && p.Frames >= 0 && p.FPS > 0
}

// Table maps styles to immutable motion profiles. Lookup is total: unknown
// labels resolve to DefaultStyle, so it never fails.
type Table struct {
	profiles map[Style]Profile
}

// Default returns the built-in preset table.
func Default() *Table {
	return &Table{profiles: map[Style]Profile{
		StyleHappy:     {BounceAmplitude: 15, BounceSpeed: 0.25, RotationMax: 5, ScalePulse: 0.06, Frames: 24, FPS: 12},
		StyleDancing:   {BounceAmplitude: 25, BounceSpeed: 0.3, RotationMax: 15, ScalePulse: 0.08, Frames: 30, FPS: 15},
		StyleSinging:   {BounceAmplitude: 10, BounceSpeed: 0.15, RotationMax: 3, ScalePulse: 0.12, MouthEmphasis: 0.05, Frames: 24, FPS: 12},
		StyleSad:       {BounceAmplitude: 5, BounceSpeed: 0.12, RotationMax: 2, ScalePulse: 0.02, Frames: 20, FPS: 8},
		StyleGreeting:  {BounceAmplitude: 18, BounceSpeed: 0.28, RotationMax: 10, ScalePulse: 0.05, Frames: 24, FPS: 12},
		StyleSurprised: {BounceAmplitude: 30, BounceSpeed: 0.35, RotationMax: 3, ScalePulse: 0.18, Frames: 20, FPS: 12},
		StyleCool:      {BounceAmplitude: 8, BounceSpeed: 0.18, RotationMax: 5, ScalePulse: 0.04, Frames: 20, FPS: 10},
	}}
}

// Lookup resolves a style label, case-insensitively. Labels outside the known
// set return the DefaultStyle profile.
func (t *Table) Lookup(label string) (Style, Profile) {
	s := Style(strings.ToLower(strings.TrimSpace(label)))
	if p, ok := t.profiles[s]; ok {
		return s, p
	}
	return DefaultStyle, t.profiles[DefaultStyle]
}

// Styles returns the known style labels.
func (t *Table) Styles() []Style {
	styles := make([]Style, 0, len(t.profiles))
	for s := range t.profiles {
		styles = append(styles, s)
	}
	return styles
}
