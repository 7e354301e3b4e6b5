package termwin

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"

	"github.com/msandiford/freemint/internal/embuf"
	"github.com/msandiford/freemint/internal/keyname"
)

// bracketedPasteEnter/Exit are the raw escape sequences toggled around
// tcell's own session (which already owns alt-screen enter/exit) so a
// paste arrives as a single bracketed block instead of as simulated
// keystrokes.
const (
	bracketedPasteEnter = "\x1b[?2004h"
	bracketedPasteExit  = "\x1b[?2004l"
)

// TcellWindow is the production Window backend, driving a real
// terminal through tcell.
type TcellWindow struct {
	screen tcell.Screen
	events chan tcell.Event

	cursorX, cursorY int

	fg, bg, ctrlFg, wsColour int
	wsDisplay                bool
	topScroll, botScroll     int

	fd          int
	origTermios *unix.Termios
	winch       chan os.Signal
	winchDone   chan struct{}
}

// NewTcellWindow initializes and returns a TcellWindow over a fresh
// tcell screen. The caller must call Close when done.
func NewTcellWindow() (*TcellWindow, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	w := &TcellWindow{
		screen:    screen,
		events:    make(chan tcell.Event, 64),
		fg:        7,
		bg:        0,
		ctrlFg:    4,
		wsDisplay: false,
		wsColour:  8,
		topScroll: 20,
		botScroll: 80,
		fd:        int(os.Stdin.Fd()),
	}
	w.enableBracketedPaste()
	w.watchResize()
	go w.pump()
	return w, nil
}

func (w *TcellWindow) pump() {
	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return
		}
		w.events <- ev
	}
}

// watchResize layers an explicit SIGWINCH watch on top of tcell's own
// resize handling: on receipt it re-reads the kernel's idea of the
// terminal size via TIOCGWINSZ and posts a resize event, so Redisplay
// picks up the new dimensions even if tcell's internal poller is busy
// servicing a blocking read.
func (w *TcellWindow) watchResize() {
	w.winch = make(chan os.Signal, 1)
	w.winchDone = make(chan struct{})
	signal.Notify(w.winch, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-w.winch:
				if ws, err := unix.IoctlGetWinsize(w.fd, unix.TIOCGWINSZ); err == nil {
					w.screen.PostEventWait(tcell.NewEventResize(int(ws.Col), int(ws.Row)))
				}
			case <-w.winchDone:
				return
			}
		}
	}()
}

// enableBracketedPaste flips on bracketed-paste reporting and records
// the terminal's pre-existing termios so Close can restore it exactly,
// mirroring the raw-mode dance tcell itself performs internally.
func (w *TcellWindow) enableBracketedPaste() {
	termios, err := unix.IoctlGetTermios(w.fd, ioctlGetTermios)
	if err != nil {
		return
	}
	w.origTermios = termios
	os.Stdout.WriteString(bracketedPasteEnter)
}

// Close restores the terminal to its original state.
func (w *TcellWindow) Close() {
	close(w.winchDone)
	signal.Stop(w.winch)
	os.Stdout.WriteString(bracketedPasteExit)
	if w.origTermios != nil {
		unix.IoctlSetTermios(w.fd, ioctlSetTermios, w.origTermios)
	}
	w.screen.Fini()
}

func (w *TcellWindow) Columns() int {
	c, _ := w.screen.Size()
	return c
}

func (w *TcellWindow) Lines() int {
	_, l := w.screen.Size()
	l -= reservedRows
	if l < 0 {
		l = 0
	}
	return l
}

// Redisplay repaints the editing area per line: expand tabs to the tab
// stop in foreground (or whitespace colour past the last non-blank
// byte), render control bytes as ^X, and clear unused trailing columns.
// Each line is drawn from its first column; the buffer's left column
// (GetLeftColumn) does not shift the display.
func (w *TcellWindow) Redisplay(buf *embuf.EmacsBuffer, force bool) {
	cols := w.Columns()
	lines := w.Lines()
	buf.ForcePointInWindow(lines, w.topScroll, w.botScroll)

	fgStyle := tcell.StyleDefault.Foreground(toTcellColor(w.fg)).Background(toTcellColor(w.bg))
	ctrlStyle := tcell.StyleDefault.Foreground(toTcellColor(w.ctrlFg)).Background(toTcellColor(w.bg))
	wsStyle := tcell.StyleDefault.Foreground(toTcellColor(w.wsColour)).Background(toTcellColor(w.bg))

	pos := buf.Topline()
	lastNonBlankCol := -1
	for row := 0; row < lines; row++ {
		eol := buf.FindEol(pos)
		line := buf.Read(pos, eol)

		col := 0
		screenCol := 0
		lastNonBlankCol = lastNonBlankIndex(line)
		for i, ch := range line {
			width := buf.CharWidth(col, ch)
			style := fgStyle
			if w.wsDisplay && i > lastNonBlankCol {
				style = wsStyle
			}
			switch {
			case ch == '\t':
				for k := 0; k < width && screenCol < cols; k++ {
					w.screen.SetContent(w.leftAdjust(screenCol), row, ' ', nil, style)
					screenCol++
				}
			case ch < 0x20:
				w.screen.SetContent(w.leftAdjust(screenCol), row, '^', nil, ctrlStyle)
				screenCol++
				if screenCol < cols {
					w.screen.SetContent(w.leftAdjust(screenCol), row, rune(ch+0x40), nil, ctrlStyle)
					screenCol++
				}
			default:
				w.screen.SetContent(w.leftAdjust(screenCol), row, rune(ch), nil, style)
				screenCol += width
			}
			col += width
		}
		for screenCol < cols {
			w.screen.SetContent(w.leftAdjust(screenCol), row, ' ', nil, fgStyle)
			screenCol++
		}

		pos = eol
		if pos < buf.Size() {
			pos++
		}
	}

	w.screen.ShowCursor(w.cursorX, w.cursorY)
	w.screen.Show()
}

func lastNonBlankIndex(line []byte) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return -1
}

func (w *TcellWindow) leftAdjust(col int) int { return col }

// Overwrite writes s at the cursor, advancing it.
func (w *TcellWindow) Overwrite(s []byte) {
	style := tcell.StyleDefault.Foreground(toTcellColor(w.fg)).Background(toTcellColor(w.bg))
	cols := w.Columns()
	for _, ch := range s {
		if w.cursorX >= cols {
			w.cursorX = 0
			w.cursorY++
		}
		w.screen.SetContent(w.cursorX, w.cursorY, rune(ch), nil, style)
		w.cursorX += runewidth.RuneWidth(rune(ch))
	}
	w.screen.Show()
}

func (w *TcellWindow) GotoXY(x, y int) {
	w.cursorX, w.cursorY = x, y
	w.screen.ShowCursor(x, y)
}

func (w *TcellWindow) KeyWaiting() bool {
	return len(w.events) > 0
}

// GetInput blocks up to millis milliseconds for a key event, returning
// its fixed key name or "Timeout". With millis <= 0 it waits for a key
// without a time limit.
func (w *TcellWindow) GetInput(millis int) string {
	var timer <-chan time.Time
	if millis > 0 {
		t := time.NewTimer(time.Duration(millis) * time.Millisecond)
		defer t.Stop()
		timer = t.C
	}

	for {
		select {
		case ev := <-w.events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				return keyname.FromEvent(e)
			case *tcell.EventResize:
				w.screen.Sync()
			}
		case <-timer:
			return keyname.Timeout
		}
	}
}

func (w *TcellWindow) announceRow(row int, left, right []byte) {
	cols := w.Columns()
	style := tcell.StyleDefault.Foreground(toTcellColor(w.fg)).Background(toTcellColor(w.bg))
	for i := 0; i < cols; i++ {
		w.screen.SetContent(i, row, ' ', nil, style)
	}
	for i, ch := range left {
		if i >= cols {
			break
		}
		w.screen.SetContent(i, row, rune(ch), nil, style)
	}
	start := cols - len(right)
	for i, ch := range right {
		x := start + i
		if x < 0 || x >= cols {
			continue
		}
		w.screen.SetContent(x, row, rune(ch), nil, style)
	}
	w.screen.Show()
}

// Announce writes to the bottom message/prompt line.
func (w *TcellWindow) Announce(left, right []byte) {
	_, rows := w.screen.Size()
	w.announceRow(rows-1, left, right)
}

// AnnounceWin writes to the mode line above the message line.
func (w *TcellWindow) AnnounceWin(left, right []byte) {
	_, rows := w.screen.Size()
	w.announceRow(rows-2, left, right)
}

func (w *TcellWindow) AudibleBell(freq, millis int) {
	w.screen.Beep()
}

func (w *TcellWindow) VisualBell(millis int) {
	w.screen.Show()
	time.Sleep(time.Duration(millis) * time.Millisecond)
}

func (w *TcellWindow) GetForeColour() int       { return w.fg }
func (w *TcellWindow) SetForeColour(c int)      { w.fg = c }
func (w *TcellWindow) GetBackColour() int       { return w.bg }
func (w *TcellWindow) SetBackColour(c int)      { w.bg = c }
func (w *TcellWindow) GetCtrlForeColour() int   { return w.ctrlFg }
func (w *TcellWindow) SetCtrlForeColour(c int)  { w.ctrlFg = c }

func (w *TcellWindow) GetWhitespaceDisplay() bool  { return w.wsDisplay }
func (w *TcellWindow) SetWhitespaceDisplay(v bool) { w.wsDisplay = v }
func (w *TcellWindow) GetWhitespaceColour() int    { return w.wsColour }
func (w *TcellWindow) SetWhitespaceColour(c int)   { w.wsColour = c }

func (w *TcellWindow) GetTopScrollPercent() int  { return w.topScroll }
func (w *TcellWindow) SetTopScrollPercent(p int) { w.topScroll = p }
func (w *TcellWindow) GetBotScrollPercent() int  { return w.botScroll }
func (w *TcellWindow) SetBotScrollPercent(p int) { w.botScroll = p }

var _ Window = (*TcellWindow)(nil)
