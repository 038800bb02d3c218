// file: internal/export/dump.go
// version: 1.0.0
// guid: 67788990-0d1e-2f30-4152-63748596a7b8

package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jdfalk/itl-exporter/internal/itl"
)

// WriteJSON dumps the whole decoded library as indented JSON.
func WriteJSON(w io.Writer, lib *itl.Library) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lib); err != nil {
		return fmt.Errorf("encoding library JSON: %w", err)
	}
	return nil
}

// WriteYAML dumps the whole decoded library as YAML.
func WriteYAML(w io.Writer, lib *itl.Library) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(lib); err != nil {
		return fmt.Errorf("encoding library YAML: %w", err)
	}
	return nil
}
