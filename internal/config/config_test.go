// ABOUTME: Tests for settings loading, merging, defaults, env expansion, and validation
// ABOUTME: Uses temp directories and a temp HOME for isolated file-based tests

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mauromedda/gridwalk/internal/grid"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{Rows: 10, Placeholder: "global hint"}
	project := &Settings{Rows: 4}

	result := merge(global, project)

	if result.Rows != 4 {
		t.Errorf("Rows = %d, want 4", result.Rows)
	}
	if result.Placeholder != "global hint" {
		t.Errorf("Placeholder = %q, want %q", result.Placeholder, "global hint")
	}
	if global.Rows != 10 {
		t.Error("merge must not modify its inputs")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	if result := merge(nil, nil); result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile("/nonexistent/path/config.yaml")
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if s == nil {
		t.Fatal("expected zero Settings alongside the error")
	}
}

func TestLoadFile_YAMLAndJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	jsonPath := filepath.Join(dir, "config.json")
	writeFile(t, yamlPath, "rows: 5\ncols: 9\nplaceholder: say something\n")
	writeFile(t, jsonPath, `{"rows": 6, "log_level": "debug"}`)

	y, err := loadFile(yamlPath)
	if err != nil {
		t.Fatalf("loadFile(yaml) unexpected error: %v", err)
	}
	if y.Rows != 5 || y.Cols != 9 || y.Placeholder != "say something" {
		t.Errorf("yaml settings = %+v", y)
	}

	j, err := loadFile(jsonPath)
	if err != nil {
		t.Fatalf("loadFile(json) unexpected error: %v", err)
	}
	if j.Rows != 6 || j.LogLevel != "debug" {
		t.Errorf("json settings = %+v", j)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "rows: [not, a, number\n")

	if _, err := loadFile(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	project := t.TempDir()

	writeFile(t, filepath.Join(home, ".gridwalk", "config.yaml"), "rows: 12\nplaceholder: from global\n")
	writeFile(t, filepath.Join(project, ".gridwalk", "config.yaml"), "rows: 3\n")

	s, err := Load(project)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if s.Rows != 3 {
		t.Errorf("Rows = %d, want 3", s.Rows)
	}
	if s.Placeholder != "from global" {
		t.Errorf("Placeholder = %q, want %q", s.Placeholder, "from global")
	}
}

func TestLoadAll_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := LoadAll(t.TempDir(), "", nil)
	if err != nil {
		t.Fatalf("LoadAll() unexpected error: %v", err)
	}
	if s.Rows != DefaultRows || s.Cols != 2*DefaultRows {
		t.Errorf("dimensions = %dx%d, want %dx%d", s.Cols, s.Rows, 2*DefaultRows, DefaultRows)
	}
	if s.Placeholder != DefaultPlaceholder {
		t.Errorf("Placeholder = %q, want %q", s.Placeholder, DefaultPlaceholder)
	}
	if s.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", s.LogLevel, DefaultLogLevel)
	}

	d, err := s.Dimensions()
	if err != nil {
		t.Fatalf("Dimensions() unexpected error: %v", err)
	}
	if d != (grid.Dimensions{Cols: 16, Rows: 8}) {
		t.Errorf("Dimensions() = %+v, want 16x8", d)
	}
}

func TestLoadAll_OverridesWin(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".gridwalk", "config.yaml"), "rows: 12\ncols: 30\n")

	s, err := LoadAll(t.TempDir(), "", &Settings{Rows: 4})
	if err != nil {
		t.Fatalf("LoadAll() unexpected error: %v", err)
	}
	if s.Rows != 4 || s.Cols != 30 {
		t.Errorf("dimensions = %dx%d, want 30x4", s.Cols, s.Rows)
	}
}

func TestLoadAll_ColsDefaultToTwiceRows(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := LoadAll(t.TempDir(), "", &Settings{Rows: 5})
	if err != nil {
		t.Fatalf("LoadAll() unexpected error: %v", err)
	}
	if s.Cols != 10 {
		t.Errorf("Cols = %d, want 10", s.Cols)
	}
}

func TestLoadAll_ExplicitPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".gridwalk", "config.yaml"), "rows: 12\n")

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "rows: 2\ncols: 2\n")

	s, err := LoadAll(t.TempDir(), explicit, nil)
	if err != nil {
		t.Fatalf("LoadAll() unexpected error: %v", err)
	}
	if s.Rows != 2 || s.Cols != 2 {
		t.Errorf("dimensions = %dx%d, want 2x2 from the explicit file only", s.Cols, s.Rows)
	}

	if _, err := LoadAll(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestLoadAll_EnvExpansion(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GRIDWALK_TEST_LOG_DIR", "/tmp/gw")
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".gridwalk", "config.yaml"), "log_file: ${GRIDWALK_TEST_LOG_DIR}/session.log\n")

	s, err := LoadAll(project, "", nil)
	if err != nil {
		t.Fatalf("LoadAll() unexpected error: %v", err)
	}
	if s.LogFile != "/tmp/gw/session.log" {
		t.Errorf("LogFile = %q, want %q", s.LogFile, "/tmp/gw/session.log")
	}
}

func TestLoadAll_Invalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name      string
		overrides *Settings
	}{
		{name: "negative rows", overrides: &Settings{Rows: -1}},
		{name: "negative cols", overrides: &Settings{Cols: -5}},
		{name: "unknown log level", overrides: &Settings{LogLevel: "chatty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAll(t.TempDir(), "", tt.overrides)
			if !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("LoadAll() error = %v, want %v", err, ErrInvalidSettings)
			}
		})
	}
}

func TestValidate_DimensionErrorIsWrapped(t *testing.T) {
	t.Parallel()

	s := &Settings{Rows: 0, Cols: 4, LogLevel: "info"}
	err := s.Validate()
	if !errors.Is(err, ErrInvalidSettings) || !errors.Is(err, grid.ErrInvalidDimensions) {
		t.Errorf("Validate() error = %v, want both sentinels", err)
	}
}
