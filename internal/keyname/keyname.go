// Package keyname maps tcell key events to the fixed key-name
// vocabulary the interpreter's scripts bind against: printable bytes
// map to themselves, punctuation and named keys get fixed labels,
// function keys get "F1".."F12"/"S-F1".."S-F12", control-modified
// letters get "C-x", and anything else maps to "Unknown".
//
// The mapping is written against tcell's own Key constants rather
// than a hand-rolled escape-sequence parser, since tcell
// already solves terminfo/escape-sequence variance across terminals.
package keyname

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Timeout is returned by get_input when no key arrives within the
// requested interval.
const Timeout = "Timeout"

// Unknown is returned for any event this vocabulary has no name for.
const Unknown = "Unknown"

var namedKeys = map[tcell.Key]string{
	tcell.KeyBackspace:  "Back Space",
	tcell.KeyBackspace2: "Back Space",
	tcell.KeyTab:        "Tab",
	tcell.KeyEnter:      "Return",
	tcell.KeyEscape:     "Escape",
	tcell.KeyDelete:     "Del",
	tcell.KeyInsert:     "Ins",
	tcell.KeyUp:         "Up Arrow",
	tcell.KeyDown:       "Down Arrow",
	tcell.KeyLeft:       "Left Arrow",
	tcell.KeyRight:      "Right Arrow",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "Pg Up",
	tcell.KeyPgDn:       "Pg Dn",
}

var functionKeys = map[tcell.Key]int{
	tcell.KeyF1: 1, tcell.KeyF2: 2, tcell.KeyF3: 3, tcell.KeyF4: 4,
	tcell.KeyF5: 5, tcell.KeyF6: 6, tcell.KeyF7: 7, tcell.KeyF8: 8,
	tcell.KeyF9: 9, tcell.KeyF10: 10, tcell.KeyF11: 11, tcell.KeyF12: 12,
}

// FromEvent returns the fixed key name for a tcell key event.
func FromEvent(ev *tcell.EventKey) string {
	if n, ok := functionKeys[ev.Key()]; ok {
		if ev.Modifiers()&tcell.ModShift != 0 {
			return fmt.Sprintf("S-F%d", n)
		}
		return fmt.Sprintf("F%d", n)
	}
	if name, ok := namedKeys[ev.Key()]; ok {
		return name
	}

	if ev.Key() == tcell.KeyCtrlSpace || ev.Key() == tcell.KeyNUL {
		return "C-@"
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		letter := byte(ev.Key()) + 'a' - 1
		return fmt.Sprintf("C-%c", letter)
	}

	if ev.Key() == tcell.KeyRune {
		return FromRune(ev.Rune())
	}

	return Unknown
}

// FromRune maps a printable rune to its key name: printable bytes map
// to themselves, three punctuation runes get fixed aliases because
// they are also MINT syntax characters.
func FromRune(r rune) string {
	switch r {
	case ',':
		return "Comma"
	case '(':
		return "LPar"
	case ')':
		return "RPar"
	}
	if r >= 0x20 && r < 0x7f {
		return string(r)
	}
	return Unknown
}
