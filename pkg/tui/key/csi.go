// ABOUTME: Decodes complete CSI and SS3 escape sequences into Key values, xterm modifiers included.
// ABOUTME: Covers arrows, navigation keys, F1-F12 and CSI-u; any other sequence decodes to KeyUnknown.

package key

import (
	"strconv"
	"strings"
	"unicode"
)

// Modifier bits, sent on the wire as 1 + mask in the second parameter.
const (
	modShift = 1 << iota
	modAlt
	modCtrl
)

// finalKeys maps the final byte of a CSI or SS3 sequence to its key.
var finalKeys = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// tildeKeys maps the first parameter of CSI <n> ~ to its key. 7 and 8 are
// the rxvt spellings of Home and End.
var tildeKeys = map[int]KeyType{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// parseCSI decodes ESC [ <params> <final>. The forms understood are
//   - CSI [1;<mods>] <letter>   arrows, Home, End, F1-F4
//   - CSI <n>[;<mods>] ~        Insert, Delete, paging, F1-F12
//   - CSI <cp>[;<mods>] u       fixterms / kitty codepoints
//   - CSI Z                     Shift+Tab
func parseCSI(data string) Key {
	body, final := data[2:len(data)-1], data[len(data)-1]
	first, modStr, _ := strings.Cut(body, ";")

	mods, ok := parseModifiers(modStr)
	if !ok {
		return Key{Type: KeyUnknown}
	}

	var k Key
	switch final {
	case 'Z':
		if body != "" {
			return Key{Type: KeyUnknown}
		}
		return Key{Type: KeyBackTab, Shift: true}
	case '~':
		n, err := strconv.Atoi(first)
		kt, known := tildeKeys[n]
		if err != nil || !known {
			return Key{Type: KeyUnknown}
		}
		k = Key{Type: kt}
	case 'u':
		cp, _, _ := strings.Cut(first, ":")
		n, err := strconv.Atoi(cp)
		if err != nil || n <= 0 || n > unicode.MaxRune {
			return Key{Type: KeyUnknown}
		}
		return codepointKey(rune(n), mods)
	default:
		kt, known := finalKeys[final]
		if !known || (body != "" && first != "1") || (first == "1" && modStr == "") {
			return Key{Type: KeyUnknown}
		}
		k = Key{Type: kt}
	}

	applyModifiers(&k, mods)
	return k
}

// parseSS3 decodes ESC O <final>, sent for arrows in application cursor
// mode and for F1-F4.
func parseSS3(data string) Key {
	if kt, ok := finalKeys[data[2]]; ok {
		return Key{Type: kt}
	}
	return Key{Type: KeyUnknown}
}

// parseModifiers decodes "<mods>[:<event>]". Key releases (event 3) are
// reported as not ok so they never reach the caller as presses.
func parseModifiers(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	modStr, eventStr, _ := strings.Cut(s, ":")
	v, err := strconv.Atoi(modStr)
	if err != nil || v < 1 {
		return 0, false
	}
	if eventStr == "3" {
		return 0, false
	}
	return v - 1, true
}

func codepointKey(cp rune, mods int) Key {
	var k Key
	switch cp {
	case 13:
		k = Key{Type: KeyEnter}
	case 9:
		k = Key{Type: KeyTab}
		if mods&modShift != 0 {
			return Key{Type: KeyBackTab, Shift: true}
		}
	case 127:
		k = Key{Type: KeyBackspace}
	case 27:
		k = Key{Type: KeyEscape}
	default:
		if mods == modShift {
			return Rune(unicode.ToUpper(cp))
		}
		k = Rune(cp)
	}
	applyModifiers(&k, mods)
	return k
}

func applyModifiers(k *Key, mods int) {
	k.Shift = k.Shift || mods&modShift != 0
	k.Alt = k.Alt || mods&modAlt != 0
	k.Ctrl = k.Ctrl || mods&modCtrl != 0
}
