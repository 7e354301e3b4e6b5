// Package termwin implements the terminal window surface the
// interpreter's buffer/window primitives drive: redisplay, raw
// keyboard input with a fixed key-name vocabulary, bells, and the
// mode/message line announcements. A concrete Window is threaded
// explicitly through the primitive families rather than reached
// through a global, matching the call for threading shared state
// instead of hiding it behind a thread-local.
package termwin

import "github.com/msandiford/freemint/internal/embuf"

// Window is the terminal surface the buffer/window primitive families
// drive.
type Window interface {
	Columns() int
	Lines() int

	Redisplay(buf *embuf.EmacsBuffer, force bool)
	Overwrite(s []byte)
	GotoXY(x, y int)

	KeyWaiting() bool
	GetInput(millis int) string

	Announce(left, right []byte)
	AnnounceWin(left, right []byte)

	AudibleBell(freq, millis int)
	VisualBell(millis int)

	GetForeColour() int
	SetForeColour(c int)
	GetBackColour() int
	SetBackColour(c int)
	GetCtrlForeColour() int
	SetCtrlForeColour(c int)

	GetWhitespaceDisplay() bool
	SetWhitespaceDisplay(v bool)
	GetWhitespaceColour() int
	SetWhitespaceColour(c int)

	GetTopScrollPercent() int
	SetTopScrollPercent(p int)
	GetBotScrollPercent() int
	SetBotScrollPercent(p int)
}

// reservedRows is the number of bottom rows (mode line, message line)
// excluded from the editing area returned by Lines().
const reservedRows = 2
