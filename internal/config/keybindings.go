// ABOUTME: Key binding actions, defaults, and the YAML keybindings file format
// ABOUTME: Files map action names to key lists; unknown action names are collected, not fatal

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeyAction represents an action that can be bound to keys.
type KeyAction string

const (
	ActionMoveUp     KeyAction = "moveUp"
	ActionMoveDown   KeyAction = "moveDown"
	ActionMoveLeft   KeyAction = "moveLeft"
	ActionMoveRight  KeyAction = "moveRight"
	ActionIdle       KeyAction = "idle"
	ActionWrite      KeyAction = "write"
	ActionQuit       KeyAction = "quit"
	ActionForceQuit  KeyAction = "forceQuit"
	ActionToggleMode KeyAction = "toggleMode"
	ActionSubmit     KeyAction = "submit"
	ActionDeleteBack KeyAction = "deleteBack"
)

// AllActions lists every action in display order.
var AllActions = []KeyAction{
	ActionMoveLeft, ActionMoveDown, ActionMoveUp, ActionMoveRight,
	ActionIdle, ActionWrite, ActionQuit, ActionForceQuit,
	ActionToggleMode, ActionSubmit, ActionDeleteBack,
}

// ActionNames returns the names of AllActions.
func ActionNames() []string {
	names := make([]string, len(AllActions))
	for i, a := range AllActions {
		names[i] = string(a)
	}
	return names
}

// Keybindings maps actions to the key names that trigger them.
type Keybindings struct {
	Bindings map[KeyAction][]string
	// Unknown holds action names found in a file that match no action.
	Unknown []string
}

// RawKeybindings is the on-disk shape.
type RawKeybindings map[string][]string

// NewKeybindings creates a new Keybindings with default bindings.
func NewKeybindings() *Keybindings {
	kb := &Keybindings{
		Bindings: make(map[KeyAction][]string, len(AllActions)),
	}
	kb.setDefaultBindings()
	return kb
}

func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[ActionMoveLeft] = []string{"h", "left"}
	kb.Bindings[ActionMoveDown] = []string{"j", "down"}
	kb.Bindings[ActionMoveUp] = []string{"k", "up"}
	kb.Bindings[ActionMoveRight] = []string{"l", "right"}
	kb.Bindings[ActionIdle] = []string{"i"}
	kb.Bindings[ActionWrite] = []string{"w"}
	kb.Bindings[ActionQuit] = []string{"q"}
	kb.Bindings[ActionForceQuit] = []string{"ctrl+q"}
	kb.Bindings[ActionToggleMode] = []string{"escape"}
	kb.Bindings[ActionSubmit] = []string{"enter"}
	kb.Bindings[ActionDeleteBack] = []string{"backspace"}
}

// LoadKeybindings loads the bindings a file declares. Actions the file does
// not mention are absent, so callers can layer the result over defaults.
func LoadKeybindings(path string) (*Keybindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw RawKeybindings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	known := NewKeybindings()
	kb := &Keybindings{Bindings: make(map[KeyAction][]string, len(raw))}
	for actionName, keys := range raw {
		action := KeyAction(actionName)
		if _, ok := known.Bindings[action]; !ok {
			kb.Unknown = append(kb.Unknown, actionName)
			continue
		}
		kb.Bindings[action] = keys
	}

	return kb, nil
}

// GetBindings returns the bindings for an action.
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}

// ExportTemplate renders the current bindings in the keybindings file format.
func (kb *Keybindings) ExportTemplate() (string, error) {
	raw := make(RawKeybindings, len(kb.Bindings))
	for action, keys := range kb.Bindings {
		raw[string(action)] = keys
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("encoding keybindings: %w", err)
	}
	return string(data), nil
}
