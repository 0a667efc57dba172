package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadManifest decodes a YAML or JSON authoring file into out. YAML is a
// superset of JSON so one decoder serves both.
func loadManifest(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return nil
}
