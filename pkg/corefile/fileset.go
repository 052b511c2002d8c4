// SPDX-License-Identifier: MPL-2.0

package corefile

type (
	// File is one source file entry inside a fileset. Path is relative to the
	// directory containing the corefile and uses forward slashes.
	File struct {
		Path string `json:"path"`
		// FileType overrides the fileset's default type for this file.
		FileType string `json:"file_type,omitempty"`
		// IsIncludeFile marks headers that are picked up via include
		// directories rather than compiled directly (e.g. .svh files).
		IsIncludeFile bool `json:"is_include_file,omitempty"`
	}

	// FilesetRef is a guarded reference to a fileset. Unqualified names refer
	// to filesets of the same core; "othercore:name" reaches into a core the
	// current target depends on.
	FilesetRef struct {
		Name string     `json:"name"`
		Cond *Condition `json:"cond,omitempty"`
	}

	// Fileset is a named, ordered group of typed files. A fileset may also be
	// a bundle: its Filesets references expand in place, before its own
	// files, each behind its own guard.
	Fileset struct {
		// FileType is the default type tag for files that do not declare one.
		FileType string `json:"file_type,omitempty"`
		// Filesets are nested references, expanded in declaration order.
		Filesets []FilesetRef `json:"filesets,omitempty"`
		// Files are the literal entries, in declaration order.
		Files []File `json:"files,omitempty"`
	}
)

// Type returns the effective type tag for f, falling back to the fileset
// default when the file does not declare its own.
func (f File) Type(fallback string) string {
	if f.FileType != "" {
		return f.FileType
	}
	return fallback
}
