package core

import (
	"fmt"
	"strings"
)

// Bindings are the keys the shell intercepts before the UI layer sees them.
type Bindings struct {
	// Exit terminates the loop. KeyUnknown disables the hard-exit key.
	Exit       Key
	Fullscreen Key
	// Back keys are forwarded to the active view. A key that is also the
	// exit key never reaches the back handler.
	Back []Key
}

func DefaultBindings() Bindings {
	return Bindings{
		Exit:       KeyEscape,
		Fullscreen: KeyF11,
		Back:       []Key{KeyBack, KeyEscape},
	}
}

func (b Bindings) isExit(k Key) bool { return b.Exit != KeyUnknown && k == b.Exit }

func (b Bindings) isBack(k Key) bool {
	for _, bk := range b.Back {
		if bk == k {
			return true
		}
	}
	return false
}

var keyNames = map[string]Key{
	"escape": KeyEscape,
	"enter":  KeyEnter,
	"tab":    KeyTab,
	"space":  KeySpace,
	"back":   KeyBack,
	"f1":     KeyF1,
	"f2":     KeyF2,
	"f3":     KeyF3,
	"f4":     KeyF4,
	"f5":     KeyF5,
	"f6":     KeyF6,
	"f7":     KeyF7,
	"f8":     KeyF8,
	"f9":     KeyF9,
	"f10":    KeyF10,
	"f11":    KeyF11,
	"f12":    KeyF12,
}

// ParseKey maps a config key name to a Key. "none" and "" map to KeyUnknown.
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return KeyUnknown, nil
	}
	if k, ok := keyNames[n]; ok {
		return k, nil
	}
	return KeyUnknown, fmt.Errorf("unknown key name %q", name)
}
