// ABOUTME: Keybindings manager with O(1) key-to-action lookup
// ABOUTME: Merges global and local files over defaults, warns on bad entries, renders markdown help

package keybindings

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mauromedda/gridwalk/internal/config"
	"github.com/mauromedda/gridwalk/internal/log"
	"github.com/mauromedda/gridwalk/pkg/tui/fuzzy"
	"github.com/mauromedda/gridwalk/pkg/tui/key"
)

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []config.KeyAction
}

// Manager provides O(1) key-to-action lookup from merged keybindings.
type Manager struct {
	bindings *config.Keybindings
	lookup   map[string]config.KeyAction // "ctrl+q" → ActionForceQuit
}

// New creates a Manager from global and local keybinding files.
// Local bindings override global ones per action. Missing files are ignored;
// unreadable or malformed files are logged and skipped.
func New(globalPath, localPath string) *Manager {
	m := &Manager{}
	m.Reload(globalPath, localPath)
	return m
}

// NewFromBindings creates a Manager from an existing Keybindings instance.
func NewFromBindings(kb *config.Keybindings) *Manager {
	m := &Manager{bindings: kb}
	m.buildLookup()
	return m
}

// ActionForKey returns the action bound to the given key, or "" if unbound.
func (m *Manager) ActionForKey(k key.Key) config.KeyAction {
	return m.lookup[keyToString(k)]
}

// Bindings returns the merged bindings.
func (m *Manager) Bindings() *config.Keybindings {
	return m.bindings
}

// Conflicts detects keys bound to multiple actions, sorted by key.
func (m *Manager) Conflicts() []ConflictInfo {
	keyActions := make(map[string][]config.KeyAction)
	for _, action := range config.AllActions {
		for _, k := range m.bindings.GetBindings(action) {
			name := normalizeKeyName(k)
			keyActions[name] = append(keyActions[name], action)
		}
	}

	var conflicts []ConflictInfo
	for k, actions := range keyActions {
		if len(actions) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	slices.SortFunc(conflicts, func(a, b ConflictInfo) int {
		return strings.Compare(a.Key, b.Key)
	})
	return conflicts
}

// Reload re-reads keybinding files and rebuilds the lookup table.
func (m *Manager) Reload(globalPath, localPath string) {
	kb := config.NewKeybindings()

	for _, path := range []string{globalPath, localPath} {
		if path == "" {
			continue
		}
		overrides, err := config.LoadKeybindings(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn("ignoring keybindings file: %v", err)
			}
			continue
		}
		warnUnknown(path, overrides.Unknown)
		mergeBindings(kb, overrides)
	}

	m.bindings = kb
	m.buildLookup()

	for _, c := range m.Conflicts() {
		log.Warn("key %q is bound to several actions %v; using %s", c.Key, c.Actions, m.lookup[c.Key])
	}
}

var actionDescriptions = map[config.KeyAction]string{
	config.ActionMoveLeft:   "Move the cursor one column left",
	config.ActionMoveDown:   "Move the cursor one row down",
	config.ActionMoveUp:     "Move the cursor one row up",
	config.ActionMoveRight:  "Move the cursor one column right",
	config.ActionIdle:       "Redraw the grid",
	config.ActionWrite:      "Acknowledge a save (no file is written)",
	config.ActionQuit:       "Quit",
	config.ActionForceQuit:  "Quit from any mode",
	config.ActionToggleMode: "Switch between key and command mode",
	config.ActionSubmit:     "Echo the command and clear it",
	config.ActionDeleteBack: "Delete the last character",
}

// FormatAll returns a markdown reference of all keybindings, grouped by the
// mode they apply in, followed by a template for the keybindings file.
func (m *Manager) FormatAll() string {
	var b strings.Builder
	b.WriteString("# Key bindings\n\n")

	categories := []struct {
		name    string
		actions []config.KeyAction
	}{
		{"Key mode", []config.KeyAction{
			config.ActionMoveLeft, config.ActionMoveDown,
			config.ActionMoveUp, config.ActionMoveRight,
			config.ActionIdle, config.ActionWrite, config.ActionQuit,
			config.ActionToggleMode,
		}},
		{"Command mode", []config.KeyAction{
			config.ActionSubmit, config.ActionDeleteBack, config.ActionToggleMode,
		}},
		{"Any mode", []config.KeyAction{
			config.ActionForceQuit,
		}},
	}

	for _, cat := range categories {
		fmt.Fprintf(&b, "## %s\n\n", cat.name)
		b.WriteString("| Keys | Action | Description |\n|------|--------|-------------|\n")
		for _, action := range cat.actions {
			keys := m.bindings.GetBindings(action)
			if len(keys) == 0 {
				continue
			}
			quoted := make([]string, len(keys))
			for i, k := range keys {
				quoted[i] = "`" + strings.ReplaceAll(k, "|", `\|`) + "`"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", strings.Join(quoted, ", "), action, actionDescriptions[action])
		}
		b.WriteString("\n")
	}
	b.WriteString("In command mode any other printable key is typed into the buffer.\n\n")

	if tmpl, err := m.bindings.ExportTemplate(); err == nil {
		fmt.Fprintf(&b, "## Customising\n\nPut overrides in `%s` or `.gridwalk/keybindings.yaml`:\n\n```yaml\n%s```\n",
			config.GlobalKeybindingsFile(), tmpl)
	}

	return b.String()
}

// buildLookup indexes keys in AllActions order; the first action to claim a
// key keeps it.
func (m *Manager) buildLookup() {
	m.lookup = make(map[string]config.KeyAction, len(m.bindings.Bindings)*2)
	for _, action := range config.AllActions {
		for _, k := range m.bindings.GetBindings(action) {
			name := normalizeKeyName(k)
			if name == "" {
				continue
			}
			if _, taken := m.lookup[name]; !taken {
				m.lookup[name] = action
			}
		}
	}
}

// mergeBindings overrides base bindings with overrides where present.
func mergeBindings(base, overrides *config.Keybindings) {
	maps.Copy(base.Bindings, overrides.Bindings)
}

func warnUnknown(path string, names []string) {
	for _, name := range names {
		if guess, ok := fuzzy.Closest(name, config.ActionNames()); ok {
			log.Warn("%s: unknown action %q (did you mean %q?)", path, name, guess)
			continue
		}
		log.Warn("%s: unknown action %q", path, name)
	}
}

var keyAliases = map[string]string{
	"esc":      "escape",
	"return":   "enter",
	"bs":       "backspace",
	"del":      "delete",
	"ins":      "insert",
	"pageup":   "pgup",
	"pagedown": "pgdown",
	"control":  "ctrl",
	"meta":     "alt",
	"option":   "alt",
}

// normalizeKeyName canonicalizes a config key name: modifiers and named keys
// are lowercased and de-aliased, single runes keep their case unless Ctrl is
// held (terminals report Ctrl+letter in lowercase).
func normalizeKeyName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= 1 {
		return name
	}

	parts := strings.Split(name, "+")
	ctrl := false
	for i, p := range parts {
		last := i == len(parts)-1
		if last && utf8.RuneCountInString(p) == 1 {
			if ctrl {
				parts[i] = strings.ToLower(p)
			}
			continue
		}
		p = strings.ToLower(p)
		if alias, ok := keyAliases[p]; ok {
			p = alias
		}
		if p == "ctrl" {
			ctrl = true
		}
		parts[i] = p
	}
	return strings.Join(parts, "+")
}

// keyToString converts a key.Key to the string format used in keybinding configs.
func keyToString(k key.Key) string {
	var parts []string

	if k.Ctrl {
		parts = append(parts, "ctrl")
	}
	if k.Alt {
		parts = append(parts, "alt")
	}
	if k.Shift {
		parts = append(parts, "shift")
	}

	switch k.Type {
	case key.KeyRune:
		parts = append(parts, string(k.Rune))
	case key.KeyEnter:
		parts = append(parts, "enter")
	case key.KeyTab:
		parts = append(parts, "tab")
	case key.KeyBackTab:
		return "shift+tab"
	case key.KeyBackspace:
		parts = append(parts, "backspace")
	case key.KeyDelete:
		parts = append(parts, "delete")
	case key.KeyUp:
		parts = append(parts, "up")
	case key.KeyDown:
		parts = append(parts, "down")
	case key.KeyLeft:
		parts = append(parts, "left")
	case key.KeyRight:
		parts = append(parts, "right")
	case key.KeyHome:
		parts = append(parts, "home")
	case key.KeyEnd:
		parts = append(parts, "end")
	case key.KeyPageUp:
		parts = append(parts, "pgup")
	case key.KeyPageDown:
		parts = append(parts, "pgdown")
	case key.KeyEscape:
		parts = append(parts, "escape")
	case key.KeyInsert:
		parts = append(parts, "insert")
	default:
		n := k.Type.FunctionNumber()
		if n == 0 {
			return ""
		}
		parts = append(parts, fmt.Sprintf("f%d", n))
	}

	return strings.Join(parts, "+")
}
