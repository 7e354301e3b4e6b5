// Package win implements the window-bound primitive family (it, ow,
// an, xy, bl, rd) and the bc/bl/bs/cc/fc/rc/tl/ts/wc/ws window
// variables.
package win

import (
	"github.com/msandiford/freemint/internal/buffers"
	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/mintarg"
	"github.com/msandiford/freemint/internal/mintstr"
	"github.com/msandiford/freemint/internal/termwin"
)

// NewPrims returns the window primitive family, keyed by name, bound
// to win and the current-buffer registry (rd needs both).
func NewPrims(win termwin.Window, reg *buffers.Registry) map[string]interp.Prim {
	return map[string]interp.Prim{
		"it": itPrim{win},
		"ow": owPrim{win},
		"an": anPrim{win},
		"xy": xyPrim{win},
		"bl": blPrim{win},
		"rd": rdPrim{win, reg},
	}
}

// NewVars returns the window variable family, keyed by name.
func NewVars(win termwin.Window) map[string]interp.Var {
	return map[string]interp.Var{
		"bc": bcVar{win},
		"bl": blVar{win},
		"bs": bsVar{win},
		"cc": ccVar{win},
		"fc": fcVar{win},
		"rc": rcVar{win},
		"tl": tlVar{},
		"ts": tsVar{win},
		"wc": wcVar{win},
		"ws": wsVar{win},
	}
}

// itPrim implements #(it,X): waits up to X*10 milliseconds for a key,
// returning its name.
type itPrim struct{ win termwin.Window }

func (p itPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	millis := int(mintstr.GetIntValue(args.At(1).Value, 10)) * 10
	m.ReturnString(isActive, []byte(p.win.GetInput(millis)))
}

// owPrim implements #(ow,X1,...,Xn): overwrites each argument in turn
// at the cursor.
type owPrim struct{ win termwin.Window }

func (p owPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	all := args.Slice()
	for i := 1; i < len(all); i++ {
		if all[i].IsTerm() {
			continue
		}
		p.win.Overwrite(all[i].Value)
	}
	m.ReturnNull(isActive)
}

// anPrim implements #(an,X,Y,Z): announces X/Z on the message line, or
// the mode line if Y is non-empty.
type anPrim struct{ win termwin.Window }

func (p anPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	left := args.At(1).Value
	flag := args.At(2).Value
	right := args.At(3).Value
	if len(flag) == 0 {
		p.win.Announce(left, right)
	} else {
		p.win.AnnounceWin(left, right)
	}
	m.ReturnNull(isActive)
}

// xyPrim implements #(xy,X,Y): moves the cursor to (X,Y).
type xyPrim struct{ win termwin.Window }

func (p xyPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	x := int(mintstr.GetIntValue(args.At(1).Value, 10))
	y := int(mintstr.GetIntValue(args.At(2).Value, 10))
	p.win.GotoXY(x, y)
	m.ReturnNull(isActive)
}

// blPrim implements #(bl,X,Y): rings the bell — visual if X<0, else
// audible at frequency X, for Y eighteenths of a second.
type blPrim struct{ win termwin.Window }

func (p blPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	freq := mintstr.GetIntValue(args.At(1).Value, 10)
	millis := int(mintstr.GetIntValue(args.At(2).Value, 10)) * 56
	if freq < 0 {
		p.win.VisualBell(millis)
	} else {
		p.win.AudibleBell(int(freq), millis)
	}
	m.ReturnNull(isActive)
}

// rdPrim implements #(rd,X): repaints the current buffer, forcing a
// full repaint if X is non-empty.
type rdPrim struct {
	win termwin.Window
	reg *buffers.Registry
}

func (p rdPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	force := len(args.At(1).Value) > 0
	p.win.Redisplay(p.reg.Current(), force)
	m.ReturnNull(isActive)
}

type bcVar struct{ win termwin.Window }

func (v bcVar) GetVal(*interp.Interpreter) []byte { return mintstr.AppendNum(nil, int32(v.win.GetBackColour()), 10) }
func (v bcVar) SetVal(_ *interp.Interpreter, val []byte) {
	v.win.SetBackColour(int(mintstr.GetIntValue(val, 10)))
}

type fcVar struct{ win termwin.Window }

func (v fcVar) GetVal(*interp.Interpreter) []byte { return mintstr.AppendNum(nil, int32(v.win.GetForeColour()), 10) }
func (v fcVar) SetVal(_ *interp.Interpreter, val []byte) {
	v.win.SetForeColour(int(mintstr.GetIntValue(val, 10)))
}

type ccVar struct{ win termwin.Window }

func (v ccVar) GetVal(*interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, int32(v.win.GetCtrlForeColour()), 10)
}
func (v ccVar) SetVal(_ *interp.Interpreter, val []byte) {
	v.win.SetCtrlForeColour(int(mintstr.GetIntValue(val, 10)))
}

// rcVar is the read-only terminal column count.
type rcVar struct{ win termwin.Window }

func (v rcVar) GetVal(*interp.Interpreter) []byte { return mintstr.AppendNum(nil, int32(v.win.Columns()), 10) }
func (rcVar) SetVal(*interp.Interpreter, []byte) {}

// blVar is the read-only editing-area line count.
type blVar struct{ win termwin.Window }

func (v blVar) GetVal(*interp.Interpreter) []byte { return mintstr.AppendNum(nil, int32(v.win.Lines()), 10) }
func (blVar) SetVal(*interp.Interpreter, []byte) {}

// tlVar is a placeholder: the top-line variable has never had a
// working setter upstream either.
type tlVar struct{}

func (tlVar) GetVal(*interp.Interpreter) []byte { return []byte("0") }
func (tlVar) SetVal(*interp.Interpreter, []byte) {}

type bsVar struct{ win termwin.Window }

func (v bsVar) GetVal(*interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, int32(v.win.GetBotScrollPercent()), 10)
}
func (v bsVar) SetVal(_ *interp.Interpreter, val []byte) {
	v.win.SetBotScrollPercent(int(mintstr.GetIntValue(val, 10)))
}

type tsVar struct{ win termwin.Window }

func (v tsVar) GetVal(*interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, int32(v.win.GetTopScrollPercent()), 10)
}
func (v tsVar) SetVal(_ *interp.Interpreter, val []byte) {
	v.win.SetTopScrollPercent(int(mintstr.GetIntValue(val, 10)))
}

type wcVar struct{ win termwin.Window }

func (v wcVar) GetVal(*interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, int32(v.win.GetWhitespaceColour()), 10)
}
func (v wcVar) SetVal(_ *interp.Interpreter, val []byte) {
	v.win.SetWhitespaceColour(int(mintstr.GetIntValue(val, 10)))
}

type wsVar struct{ win termwin.Window }

func (v wsVar) GetVal(*interp.Interpreter) []byte {
	if v.win.GetWhitespaceDisplay() {
		return []byte("1")
	}
	return []byte("0")
}
func (v wsVar) SetVal(_ *interp.Interpreter, val []byte) {
	v.win.SetWhitespaceDisplay(mintstr.GetIntValue(val, 10) != 0)
}
