// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"corekit/internal/resolve"
)

// simPrefixes maps a simulator name to the argument prefixes it expects
// for parameter overrides. The {toplevel} placeholder is replaced with
// the manifest's toplevel module.
var simPrefixes = map[string]string{
	"verilator": "-G",
	"modelsim":  "-G",
	"questa":    "-G",
	"xcelium":   "-defparam {toplevel}.",
}

// DefaultSimulator is used when neither the tool options nor the
// selected tool identify a known simulator.
const DefaultSimulator = "verilator"

// Flist writes the manifest as a flat argument file (<core>.f) that
// simulators accept via -f. Defines and parameters come first, then
// include directories, then the source files as absolute paths.
type Flist struct{}

func (f *Flist) Name() string { return "flist" }

func (f *Flist) Run(_ context.Context, req Request) error {
	lines, err := FileListLines(req.Manifest)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(req.WorkRoot, 0o755); err != nil {
		return fmt.Errorf("creating work root: %w", err)
	}
	outPath := filepath.Join(req.WorkRoot, req.Manifest.Core+".f")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing file list: %w", err)
	}
	log.Default().WithPrefix("flist").Info("wrote file list",
		"path", outPath, "files", len(req.Manifest.Entries))
	if req.Stdout != nil {
		fmt.Fprintln(req.Stdout, outPath)
	}
	return nil
}

// FileListLines renders the manifest into flist lines without touching
// the filesystem. Paths are absolutized against each entry's owning
// directory so the file list works from any invocation directory.
func FileListLines(m *resolve.Manifest) ([]string, error) {
	sim := simulatorFor(m)
	paramPrefix, ok := simPrefixes[sim]
	if !ok {
		return nil, fmt.Errorf("unsupported simulator %q (supported: %s)",
			sim, strings.Join(simulatorNames(), ", "))
	}
	paramPrefix = strings.ReplaceAll(paramPrefix, "{toplevel}", m.Toplevel)

	var lines []string
	for _, k := range sortedKeys(m.Defines) {
		lines = append(lines, "+define+"+k+"="+m.Defines[k])
	}
	for _, k := range sortedKeys(m.Params) {
		lines = append(lines, paramPrefix+k+"="+m.Params[k])
	}

	// The RTL and C++ include-dir lists are independent: a directory
	// contributing both .svh and .h headers appears under both prefixes.
	var (
		rtlIncdirs []string
		cppIncdirs []string
		vltFiles   []string
		rtlFiles   []string
		cppFiles   []string
		rtlSeen    = map[string]bool{}
		cppSeen    = map[string]bool{}
	)
	for _, e := range m.Entries {
		abs, err := absEntryPath(e)
		if err != nil {
			return nil, err
		}
		switch {
		case isRTLType(e.Type):
			if e.IsIncludeFile {
				addDir(&rtlIncdirs, rtlSeen, filepath.Dir(abs))
			} else {
				rtlFiles = append(rtlFiles, abs)
			}
		case e.Type == "vlt":
			vltFiles = append(vltFiles, abs)
		case strings.HasPrefix(e.Type, "cppSource"):
			if e.IsIncludeFile {
				addDir(&cppIncdirs, cppSeen, filepath.Dir(abs))
			} else {
				cppFiles = append(cppFiles, abs)
			}
		default:
			log.Default().WithPrefix("flist").Debug("skipping file",
				"path", e.Path, "type", e.Type)
		}
	}
	for _, d := range rtlIncdirs {
		lines = append(lines, "+incdir+"+d)
	}
	for _, d := range cppIncdirs {
		lines = append(lines, "-I"+d)
	}
	lines = append(lines, vltFiles...)
	lines = append(lines, rtlFiles...)
	// C++ sources come last so simulators read the HDL set first; flows
	// that cannot consume them exclude cppSource via accepted types.
	lines = append(lines, cppFiles...)
	return lines, nil
}

func simulatorFor(m *resolve.Manifest) string {
	if s, ok := m.ToolOptions["simulator"]; ok && s != "" {
		return s
	}
	if _, ok := simPrefixes[m.Tool]; ok {
		return m.Tool
	}
	return DefaultSimulator
}

func isRTLType(t string) bool {
	return strings.HasPrefix(t, "verilogSource") ||
		strings.HasPrefix(t, "systemVerilogSource") ||
		strings.HasPrefix(t, "vhdlSource")
}

func absEntryPath(e resolve.Entry) (string, error) {
	abs, err := filepath.Abs(filepath.Join(e.Dir, e.Path))
	if err != nil {
		return "", fmt.Errorf("resolving path for %s: %w", e.Path, err)
	}
	return abs, nil
}

func addDir(dst *[]string, seen map[string]bool, dir string) {
	if seen[dir] {
		return
	}
	seen[dir] = true
	*dst = append(*dst, dir)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func simulatorNames() []string {
	return sortedKeys(simPrefixes)
}
