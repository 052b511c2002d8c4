// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"encoding/json"
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"corekit/internal/resolve"
)

// ExportFormats lists the supported manifest serialization formats.
func ExportFormats() []string {
	return []string{"json", "yaml", "toml"}
}

// Export serializes a manifest to the given format. Unknown formats
// return an error naming the supported set.
func Export(m *resolve.Manifest, format string, w io.Writer) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(m)
	case "toml":
		return toml.NewEncoder(w).Encode(m)
	default:
		return fmt.Errorf("unsupported format %q (supported: json, yaml, toml)", format)
	}
}
