package rod

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod/lib/input"
)

// keyAliases normalizes the names the oracle tends to produce onto canonical
// key names.
var keyAliases = map[string]string{
	"enter":      "Enter",
	"return":     "Enter",
	"tab":        "Tab",
	"escape":     "Escape",
	"esc":        "Escape",
	"space":      "Space",
	"backspace":  "Backspace",
	"delete":     "Delete",
	"arrowup":    "ArrowUp",
	"arrowdown":  "ArrowDown",
	"arrowleft":  "ArrowLeft",
	"arrowright": "ArrowRight",
	"pageup":     "PageUp",
	"pagedown":   "PageDown",
	"home":       "Home",
	"end":        "End",
	"ctrl":       "Control",
	"control":    "Control",
	"alt":        "Alt",
	"shift":      "Shift",
	"meta":       "Meta",
	"cmd":        "Meta",
}

var namedKeys = map[string]input.Key{
	"Enter":      input.Enter,
	"Tab":        input.Tab,
	"Escape":     input.Escape,
	"Space":      input.Space,
	"Backspace":  input.Backspace,
	"Delete":     input.Delete,
	"ArrowUp":    input.ArrowUp,
	"ArrowDown":  input.ArrowDown,
	"ArrowLeft":  input.ArrowLeft,
	"ArrowRight": input.ArrowRight,
	"PageUp":     input.PageUp,
	"PageDown":   input.PageDown,
	"Home":       input.Home,
	"End":        input.End,
}

var modifierKeys = map[string]input.Key{
	"Control": input.ControlLeft,
	"Alt":     input.AltLeft,
	"Shift":   input.ShiftLeft,
	"Meta":    input.MetaLeft,
}

func normalizeKeyName(name string) string {
	if canonical, ok := keyAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical
	}
	return strings.TrimSpace(name)
}

// parseKeyChord splits "Control+A" style chords into held modifiers plus the
// main key. A plain "Enter" comes back with no modifiers.
func parseKeyChord(chord string) ([]input.Key, input.Key, error) {
	parts := strings.Split(chord, "+")

	mods := make([]input.Key, 0, len(parts)-1)
	for _, part := range parts[:len(parts)-1] {
		name := normalizeKeyName(part)
		mod, ok := modifierKeys[name]
		if !ok {
			return nil, 0, fmt.Errorf("unknown modifier %q in %q", part, chord)
		}
		mods = append(mods, mod)
	}

	main := normalizeKeyName(parts[len(parts)-1])
	if key, ok := namedKeys[main]; ok {
		return mods, key, nil
	}
	if mod, ok := modifierKeys[main]; ok {
		// A bare modifier, e.g. send_keys("Shift").
		return mods, mod, nil
	}
	if len(main) == 1 {
		return mods, input.Key(main[0]), nil
	}
	return nil, 0, fmt.Errorf("unknown key %q", chord)
}
