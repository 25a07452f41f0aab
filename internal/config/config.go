// ABOUTME: Settings loading with global + project config merge, CLI overrides, and defaults
// ABOUTME: YAML-based configuration via gopkg.in/yaml.v3 (plain JSON files parse as well)

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/gridwalk/internal/grid"
)

// Defaults applied after all layers are merged.
const (
	DefaultRows        = 8
	DefaultPlaceholder = "Type your command here"
	DefaultLogLevel    = "info"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Settings holds the merged configuration. Zero values mean "not set" in
// every layer except the final resolved one.
type Settings struct {
	Rows        int    `yaml:"rows,omitempty"`
	Cols        int    `yaml:"cols,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
	LogFile     string `yaml:"log_file,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

// Load reads and merges global and project-local settings.
// Project settings override global settings. Missing files are skipped.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return merge(global, project), nil
}

// LoadAll resolves the effective settings. When explicitPath is set it is
// the only file read (and must exist); otherwise global and project files
// are merged. overrides (typically CLI flags) win over every file. The
// result has env vars expanded, defaults applied, and is validated.
func LoadAll(projectRoot, explicitPath string, overrides *Settings) (*Settings, error) {
	var (
		s   *Settings
		err error
	)
	if explicitPath != "" {
		s, err = loadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", explicitPath, err)
		}
	} else {
		s, err = Load(projectRoot)
		if err != nil {
			return nil, err
		}
	}

	s = merge(s, overrides)
	ResolveEnvVars(s)
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings alongside
// the error if the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays non-zero override values onto base.
func merge(base, override *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if override == nil {
		result := *base
		return &result
	}

	result := *base

	if override.Rows != 0 {
		result.Rows = override.Rows
	}
	if override.Cols != 0 {
		result.Cols = override.Cols
	}
	if override.Placeholder != "" {
		result.Placeholder = override.Placeholder
	}
	if override.LogFile != "" {
		result.LogFile = override.LogFile
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	return &result
}

// applyDefaults fills unset fields. Columns default to twice the rows so
// the grid looks square in most terminal fonts.
func (s *Settings) applyDefaults() {
	if s.Rows == 0 {
		s.Rows = DefaultRows
	}
	if s.Cols == 0 {
		s.Cols = 2 * s.Rows
	}
	if s.Placeholder == "" {
		s.Placeholder = DefaultPlaceholder
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
}

// Validate checks a resolved Settings.
func (s *Settings) Validate() error {
	if _, err := s.Dimensions(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if !validLogLevels[strings.ToLower(s.LogLevel)] {
		return fmt.Errorf("%w: unknown log_level %q (want debug, info, warn or error)", ErrInvalidSettings, s.LogLevel)
	}
	return nil
}

// Dimensions returns the grid dimensions described by s.
func (s *Settings) Dimensions() (grid.Dimensions, error) {
	return grid.NewDimensions(s.Cols, s.Rows)
}
