// ABOUTME: Defines the Key type and ParseKey for terminal keyboard input parsing.
// ABOUTME: Handles printable runes, NUL, Ctrl+letter bytes, Alt+letter and CSI/SS3 escape sequences.

package key

import (
	"fmt"
	"unicode/utf8"
)

// Key represents a parsed keyboard input event.
type Key struct {
	Type  KeyType
	Rune  rune // Printable character, or the letter for Ctrl combos
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the kinds of key events the program can receive.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character (or Ctrl+letter when Ctrl is set)
	KeyNull                     // NUL byte; carries no input
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace / DEL (0x7F) / BS (0x08)
	KeyDelete                   // Delete key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyInsert                   // Insert
	KeyF1                       // Function keys F1..F12 are consecutive
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyUnknown // Unrecognized input
)

// FunctionNumber returns n for KeyFn and 0 for every other type.
func (t KeyType) FunctionNumber() int {
	if t >= KeyF1 && t <= KeyF12 {
		return int(t-KeyF1) + 1
	}
	return 0
}

// Ctrl returns the Key produced by holding Ctrl and pressing letter r.
func Ctrl(r rune) Key {
	return Key{Type: KeyRune, Rune: r, Ctrl: true}
}

// Rune returns the Key for an unmodified printable rune.
func Rune(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// IsPrintable reports whether k is a plain character that text input
// should accept verbatim.
func (k Key) IsPrintable() bool {
	return k.Type == KeyRune && !k.Ctrl && !k.Alt
}

// ParseKey parses raw terminal input data into a Key.
// It handles single runes, control characters, and escape sequences.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	// Single-byte fast path
	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	// Escape sequence path
	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	// Multi-byte UTF-8 rune
	r, _ := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

// parseSingleByte handles a single-byte input (ASCII or control character).
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x00:
		return Key{Type: KeyNull}
	case b == 0x0d:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f, b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	case b >= 0x01 && b <= 0x1a:
		// Ctrl+A..Ctrl+Z arrive as 0x01..0x1A.
		return Ctrl(rune('a' + b - 1))
	}
	return Key{Type: KeyUnknown}
}

// parseEscapeSequence decodes ESC-prefixed data holding exactly one key.
func parseEscapeSequence(data string) Key {
	switch {
	case len(data) == 1:
		return Key{Type: KeyEscape}
	case len(data) >= 3 && data[1] == '[':
		return parseCSI(data)
	case len(data) == 3 && data[1] == 'O':
		return parseSS3(data)
	case len(data) == 2 && data[1] >= 0x20 && data[1] <= 0x7e:
		// Alt+key arrives as ESC followed by the key.
		return Key{Type: KeyRune, Rune: rune(data[1]), Alt: true}
	}
	return Key{Type: KeyUnknown}
}

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyNull:      "Null",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyInsert:    "Insert",
	KeyUnknown:   "Unknown",
}

// String returns a human-readable representation of the Key for debug display.
func (k Key) String() string {
	if k.Type == KeyRune {
		return formatRuneKey(k)
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	if n := k.Type.FunctionNumber(); n > 0 {
		return fmt.Sprintf("F%d", n)
	}
	return "Unknown"
}

// formatRuneKey builds a display string for rune keys with modifiers.
func formatRuneKey(k Key) string {
	s := string(k.Rune)
	if k.Alt {
		s = fmt.Sprintf("Alt+%s", s)
	}
	if k.Ctrl {
		s = fmt.Sprintf("Ctrl+%s", s)
	}
	return s
}
