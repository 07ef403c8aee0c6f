package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a preset override file and overlays it on the built-in table.
// Styles present in the file replace the built-in profile; styles absent from
// the file keep their defaults. Invalid profiles are rejected.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	overrides := map[Style]Profile{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse preset file %s: %w", path, err)
	}

	t := Default()
	for style, p := range overrides {
		if !p.Valid() {
			return nil, fmt.Errorf("preset %q in %s violates motion invariants (negative fields, fps <= 0, scale_pulse >= 1 or rotation_max > 360)", style, path)
		}
		t.profiles[style] = p
	}
	return t, nil
}

// Write dumps the table to a YAML file, usable as a starting point for
// overrides.
func (t *Table) Write(path string) error {
	data, err := yaml.Marshal(t.profiles)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
