// SPDX-License-Identifier: MPL-2.0

package corefile

import (
	_ "embed"
	"fmt"
	"os"

	"corekit/pkg/cueutil"
)

//go:embed corefile_schema.cue
var corefileSchema string

// Parse reads and parses a corefile from the given path.
func Parse(path string) (*Corefile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corefile at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses corefile content from bytes. The document is unified with
// the embedded CUE schema, decoded, and then structurally validated (local
// fileset references, inheritance bases, duplicate paths within a fileset).
func ParseBytes(data []byte, path string) (*Corefile, error) {
	cf, err := cueutil.Load[Corefile](corefileSchema, data, "#Corefile", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	cf.FilePath = path

	if err := cf.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cf, nil
}
