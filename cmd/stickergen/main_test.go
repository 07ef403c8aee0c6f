package main

import (
	"fmt"
	"strings"
	"testing"
)

func TestEffectiveDuration(t *testing.T) {
	probeErr := fmt.Errorf("ffprobe not found")

	tests := []struct {
		name     string
		flag     float64
		probed   float64
		err      error
		want     float64
		wantWarn bool
	}{
		{"explicit flag wins", 4.5, 9.9, nil, 4.5, false},
		{"flag wins even when probe failed", 4.5, 0, probeErr, 4.5, false},
		{"probed audio length used", 0, 3.2, nil, 3.2, false},
		{"failed probe warns about truncation", 0, 0, probeErr, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warning := effectiveDuration(tt.flag, tt.probed, tt.err)
			if got != tt.want {
				t.Errorf("duration = %v, want %v", got, tt.want)
			}
			if tt.wantWarn {
				if warning == "" {
					t.Fatal("expected a warning")
				}
				// The warning must name the consequence, not just the probe error.
				if !strings.Contains(warning, "cut") {
					t.Errorf("warning should mention speech being cut: %q", warning)
				}
			} else if warning != "" {
				t.Errorf("unexpected warning %q", warning)
			}
		})
	}
}
