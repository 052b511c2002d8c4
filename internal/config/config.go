// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"corekit/internal/issue"
	"corekit/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "corekit"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

var (
	// configFileOverride is set by the CLI --config flag.
	configFileOverride string
	// configDirOverride lets tests redirect the config directory.
	configDirOverride string
)

// SetConfigFilePathOverride makes Load read exactly this file.
func SetConfigFilePathOverride(path string) {
	configFileOverride = path
}

// SetConfigDirOverride redirects the config directory; tests use this to
// avoid touching the real home directory. Empty restores the default.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// ConfigDir returns the corekit configuration directory using
// platform-specific conventions: %APPDATA% on Windows, ~/Library/Application
// Support on macOS, $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, "Library", "Application Support")
	default:
		dir = os.Getenv("XDG_CONFIG_HOME")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			dir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(dir, AppName), nil
}

// Load resolves the effective configuration: built-in defaults, overlaid
// with the config file (the --config override, else config.cue in the
// config directory, else config.cue in the current directory). A missing
// file is not an error; a present but invalid one is.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("search_paths", defaults.SearchPaths)
	v.SetDefault("build_root", defaults.BuildRoot)
	v.SetDefault("default_tool", defaults.DefaultTool)
	v.SetDefault("default_flow", defaults.DefaultFlow)
	v.SetDefault("verbose", defaults.Verbose)

	if configFileOverride != "" {
		if !fileExists(configFileOverride) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFileOverride).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'corekit config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", configFileOverride)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, configFileOverride); err != nil {
			return nil, wrapConfigError(configFileOverride, err)
		}
	} else {
		cfgDir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		localPath := ConfigFileName + "." + ConfigFileExt

		switch {
		case fileExists(cuePath):
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, wrapConfigError(cuePath, err)
			}
		case fileExists(localPath):
			if err := loadCUEIntoViper(v, localPath); err != nil {
				return nil, wrapConfigError(localPath, err)
			}
		}
		// No config file found: defaults apply, not an error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Viper cannot express "user flows extend the built-in set"; merge here
	// so a config that only tweaks one flow keeps the other defaults.
	merged := DefaultConfig().Flows
	for name, flow := range cfg.Flows {
		merged[name] = flow
	}
	cfg.Flows = merged

	return &cfg, nil
}

// loadCUEIntoViper validates a CUE config file against the schema and merges
// the decoded map over viper's defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.Load[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path), cueutil.WithConcrete(false))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func wrapConfigError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the values match the expected schema").
		WithSuggestion("See 'corekit config --help' for configuration options").
		Wrap(err).
		BuildError()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
