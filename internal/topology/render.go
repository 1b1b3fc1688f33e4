package topology

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Render writes the topology as YAML, instance groups unexpanded.
func Render(w io.Writer, t *Topology) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding topology: %w", err)
	}
	return enc.Close()
}
