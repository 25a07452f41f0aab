// ABOUTME: Standard filesystem paths for gridwalk configuration
// ABOUTME: Resolves ~/.gridwalk/ for global and .gridwalk/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".gridwalk"
	projectDirName = ".gridwalk"

	settingsFileName    = "config.yaml"
	keybindingsFileName = "keybindings.yaml"
)

// GlobalDir returns the user-global config directory (~/.gridwalk/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.gridwalk/ in projectRoot).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global settings file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), settingsFileName)
}

// ProjectConfigFile returns the path to the project-local settings file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), settingsFileName)
}

// GlobalKeybindingsFile returns the path to the global keybindings file.
func GlobalKeybindingsFile() string {
	return filepath.Join(GlobalDir(), keybindingsFileName)
}

// LocalKeybindingsFile returns the path to the project-local keybindings file.
func LocalKeybindingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), keybindingsFileName)
}
