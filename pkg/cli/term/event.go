package term

import (
	"calc.elv.sh/pkg/ui"
)

// Event represents an event that can be read from the terminal.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent ui.Key

// K constructs a new KeyEvent.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(r, mods...))
}

// PasteSetting indicates the start or finish of pasted text.
type PasteSetting bool

// NonfatalErrorEvent represents an error that can be gradually recovered. It
// is used by the reader to report malformed escape sequences without stopping.
type NonfatalErrorEvent struct{ Err error }

func (KeyEvent) isEvent()           {}
func (PasteSetting) isEvent()       {}
func (NonfatalErrorEvent) isEvent() {}
