package termwin

import "github.com/msandiford/freemint/internal/embuf"

// DebugWindow is a headless Window used by tests, by cmd/mintrepl, and
// by cmd/freemint when no terminal display is available: it records the calls made to it instead of painting
// a real terminal, and serves a scripted queue of key names to
// GetInput.
type DebugWindow struct {
	columns, lines int

	Announcements    [][2]string
	WinAnnouncements [][2]string
	Overwrites       []string
	Bells            []string
	RedisplayCount   int

	fg, bg, ctrlFg, wsColour int
	wsDisplay                bool
	topScroll, botScroll     int

	Keys []string
}

// NewDebugWindow returns a DebugWindow with the given editing area
// size (excluding the two reserved rows) and a queue of key names to
// return from GetInput, in order.
func NewDebugWindow(columns, lines int, keys []string) *DebugWindow {
	return &DebugWindow{
		columns:   columns,
		lines:     lines,
		fg:        7,
		bg:        0,
		ctrlFg:    4,
		wsColour:  8,
		topScroll: 20,
		botScroll: 80,
		Keys:      keys,
	}
}

func (w *DebugWindow) Columns() int { return w.columns }
func (w *DebugWindow) Lines() int   { return w.lines }

func (w *DebugWindow) Redisplay(buf *embuf.EmacsBuffer, force bool) {
	buf.ForcePointInWindow(w.lines, w.topScroll, w.botScroll)
	w.RedisplayCount++
}

func (w *DebugWindow) Overwrite(s []byte) {
	w.Overwrites = append(w.Overwrites, string(s))
}

func (w *DebugWindow) GotoXY(x, y int) {}

func (w *DebugWindow) KeyWaiting() bool { return len(w.Keys) > 0 }

func (w *DebugWindow) GetInput(millis int) string {
	if len(w.Keys) == 0 {
		return "Timeout"
	}
	k := w.Keys[0]
	w.Keys = w.Keys[1:]
	return k
}

func (w *DebugWindow) Announce(left, right []byte) {
	w.Announcements = append(w.Announcements, [2]string{string(left), string(right)})
}

func (w *DebugWindow) AnnounceWin(left, right []byte) {
	w.WinAnnouncements = append(w.WinAnnouncements, [2]string{string(left), string(right)})
}

func (w *DebugWindow) AudibleBell(freq, millis int) {
	w.Bells = append(w.Bells, "audible")
}

func (w *DebugWindow) VisualBell(millis int) {
	w.Bells = append(w.Bells, "visual")
}

func (w *DebugWindow) GetForeColour() int      { return w.fg }
func (w *DebugWindow) SetForeColour(c int)     { w.fg = c }
func (w *DebugWindow) GetBackColour() int      { return w.bg }
func (w *DebugWindow) SetBackColour(c int)     { w.bg = c }
func (w *DebugWindow) GetCtrlForeColour() int  { return w.ctrlFg }
func (w *DebugWindow) SetCtrlForeColour(c int) { w.ctrlFg = c }

func (w *DebugWindow) GetWhitespaceDisplay() bool  { return w.wsDisplay }
func (w *DebugWindow) SetWhitespaceDisplay(v bool) { w.wsDisplay = v }
func (w *DebugWindow) GetWhitespaceColour() int    { return w.wsColour }
func (w *DebugWindow) SetWhitespaceColour(c int)   { w.wsColour = c }

func (w *DebugWindow) GetTopScrollPercent() int  { return w.topScroll }
func (w *DebugWindow) SetTopScrollPercent(p int) { w.topScroll = p }
func (w *DebugWindow) GetBotScrollPercent() int  { return w.botScroll }
func (w *DebugWindow) SetBotScrollPercent(p int) { w.botScroll = p }

var _ Window = (*DebugWindow)(nil)
