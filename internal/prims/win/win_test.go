package win_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/msandiford/freemint/internal/buffers"
	"github.com/msandiford/freemint/internal/gapbuf"
	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/prims/vars"
	"github.com/msandiford/freemint/internal/prims/win"
	"github.com/msandiford/freemint/internal/termwin"
)

type harness struct {
	m   *interp.Interpreter
	dbg *termwin.DebugWindow
}

func newHarness(script string, keys []string) *harness {
	reg := buffers.NewRegistry(func() gapbuf.Buffer { return gapbuf.WithDefaultSize() })
	dbg := termwin.NewDebugWindow(80, 24, keys)
	m := interp.New([]byte(script), dbg.KeyWaiting, zerolog.Nop())
	for name, p := range win.NewPrims(dbg, reg) {
		m.AddPrim(name, p)
	}
	for name, v := range win.NewVars(dbg) {
		m.AddVar(name, v)
	}
	for name, p := range vars.NewPrims() {
		m.AddPrim(name, p)
	}
	return &harness{m: m, dbg: dbg}
}

func (h *harness) run() { h.m.Scan() }

func TestOwOverwritesEachArgument(t *testing.T) {
	h := newHarness("#(ow,Hello, ,World)", nil)
	h.run()
	assert.Equal(t, []string{"Hello", " ", "World"}, h.dbg.Overwrites)
}

func TestAnAnnouncesMessageOrModeLine(t *testing.T) {
	h := newHarness("#(an,status,,)#(an,mode,1,extra)", nil)
	h.run()
	assert.Equal(t, [][2]string{{"status", ""}}, h.dbg.Announcements)
	assert.Equal(t, [][2]string{{"mode", "extra"}}, h.dbg.WinAnnouncements)
}

func TestXyMovesCursorWithoutError(t *testing.T) {
	h := newHarness("#(xy,5,10)", nil)
	assert.NotPanics(t, h.run)
}

func TestBlRingsAudibleOrVisualBell(t *testing.T) {
	h := newHarness("#(bl,440,5)#(bl,-1,5)", nil)
	h.run()
	assert.Equal(t, []string{"audible", "visual"}, h.dbg.Bells)
}

func TestItReturnsScriptedKeyName(t *testing.T) {
	h := newHarness("#(ow,#(it,5))", []string{"Control-A"})
	h.run()
	assert.Equal(t, []string{"Control-A"}, h.dbg.Overwrites)
}

func TestItTimesOutWithNoScriptedKey(t *testing.T) {
	h := newHarness("#(ow,#(it,5))", nil)
	h.run()
	assert.Equal(t, []string{"Timeout"}, h.dbg.Overwrites)
}

func TestRdForcesRedisplay(t *testing.T) {
	h := newHarness("#(rd,1)", nil)
	h.run()
	assert.Equal(t, 1, h.dbg.RedisplayCount)
}

func TestColourVarsRoundTrip(t *testing.T) {
	h := newHarness("#(sv,fc,3)#(sv,bc,1)#(ow,#(lv,fc)x#(lv,bc))", nil)
	h.run()
	assert.Equal(t, []string{"3x1"}, h.dbg.Overwrites)
}

func TestReadOnlyTerminalSizeVars(t *testing.T) {
	h := newHarness("#(ow,#(lv,rc)x#(lv,bl))", nil)
	h.run()
	assert.Equal(t, []string{"80x24"}, h.dbg.Overwrites)
}

func TestWhitespaceDisplayVarRoundTrip(t *testing.T) {
	h := newHarness("#(ow,#(lv,ws))#(sv,ws,1)#(ow,#(lv,ws))", nil)
	h.run()
	assert.Equal(t, []string{"0", "1"}, h.dbg.Overwrites)
}

func TestTlVarIsAPlaceholder(t *testing.T) {
	h := newHarness("#(sv,tl,5)#(ow,#(lv,tl))", nil)
	h.run()
	assert.Equal(t, []string{"0"}, h.dbg.Overwrites)
}
