// SPDX-License-Identifier: MPL-2.0

// Package discovery handles finding and loading corefiles from the
// workspace and the configured search paths, and populating the core
// registry from them. Discovery is the single-writer load phase; the
// registry it returns is frozen and safe for concurrent resolutions.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"corekit/internal/config"
	"corekit/internal/registry"
	"corekit/pkg/corefile"

	"github.com/charmbracelet/log"
)

// Source indicates where a corefile was found.
type Source int

const (
	// SourceCurrentDir is the working directory tree (highest precedence).
	SourceCurrentDir Source = iota
	// SourceConfigPath is a directory from the config's search_paths.
	SourceConfigPath
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceCurrentDir:
		return "current directory"
	case SourceConfigPath:
		return "configured search path"
	default:
		return "unknown"
	}
}

type (
	// DiscoveredFile is one corefile candidate with its parse outcome.
	DiscoveredFile struct {
		// Path is the path to the corefile.
		Path string
		// Source indicates where the file was found.
		Source Source
		// Corefile is the parsed content; nil when Error is set.
		Corefile *corefile.Corefile
		// Error holds the parse or registration failure, if any.
		Error error
	}

	// Result is the outcome of a full discovery pass.
	Result struct {
		// Registry holds every successfully loaded core, frozen.
		Registry *registry.Registry
		// Files lists every candidate in scan order, including failed ones.
		Files []*DiscoveredFile
	}

	// Discovery finds corefiles.
	Discovery struct {
		cfg *config.Config
		log *log.Logger
	}
)

// Diagnostics returns the files that failed to parse or register.
func (r *Result) Diagnostics() []*DiscoveredFile {
	var out []*DiscoveredFile
	for _, f := range r.Files {
		if f.Error != nil {
			out = append(out, f)
		}
	}
	return out
}

// New creates a Discovery instance over the given configuration.
func New(cfg *config.Config) *Discovery {
	return &Discovery{
		cfg: cfg,
		log: log.Default().WithPrefix("discovery"),
	}
}

// DiscoverAll scans the current directory and every configured search path
// for *.core.cue files, parses them, and registers the cores. Parse errors
// and name collisions are recorded per file, not fatal: callers decide
// whether diagnostics abort the run (validate) or merely warn (resolve).
//
// Scan order is deterministic: the current directory first, then search
// paths in config order, files in lexical walk order within each root. With
// collisions the first registration wins.
func (d *Discovery) DiscoverAll() (*Result, error) {
	reg := registry.New()
	result := &Result{}

	roots := []struct {
		dir    string
		source Source
	}{{".", SourceCurrentDir}}
	for _, p := range d.cfg.SearchPaths {
		roots = append(roots, struct {
			dir    string
			source Source
		}{p, SourceConfigPath})
	}

	for _, root := range roots {
		files, err := findCorefiles(root.dir)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root.dir, err)
		}
		for _, path := range files {
			df := &DiscoveredFile{Path: path, Source: root.source}
			result.Files = append(result.Files, df)

			cf, err := corefile.Parse(path)
			if err != nil {
				d.log.Debug("corefile failed to parse", "path", path, "err", err)
				df.Error = err
				continue
			}
			if err := reg.Register(cf); err != nil {
				d.log.Debug("core rejected", "path", path, "err", err)
				df.Error = err
				continue
			}
			d.log.Debug("core registered", "core", cf.DisplayID(), "path", path)
			df.Corefile = cf
		}
	}

	result.Registry = reg.Freeze()
	return result, nil
}

// findCorefiles walks one root and returns every *.core.cue path in lexical
// order. Dot-directories (VCS metadata, build dirs like .corekit) are
// skipped. A missing root yields no files rather than an error so stale
// search paths do not break every invocation.
func findCorefiles(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if name := entry.Name(); strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(entry.Name(), corefile.Suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
