// Command mintrepl is a headless line-at-a-time driver for the
// interpreter: useful for trying out a macro or a library file without
// a full screen session. Each line typed is fed to the interpreter as
// active text; anything the line writes with ow/an is echoed back.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/msandiford/freemint/internal/buffers"
	"github.com/msandiford/freemint/internal/gapbuf"
	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/lined"
	"github.com/msandiford/freemint/internal/prims/buf"
	"github.com/msandiford/freemint/internal/prims/frm"
	"github.com/msandiford/freemint/internal/prims/lib"
	"github.com/msandiford/freemint/internal/prims/math"
	"github.com/msandiford/freemint/internal/prims/str"
	"github.com/msandiford/freemint/internal/prims/sys"
	"github.com/msandiford/freemint/internal/prims/vars"
	"github.com/msandiford/freemint/internal/prims/win"
	"github.com/msandiford/freemint/internal/termwin"
)

var prompt = flag.String("prompt", "mint> ", "input prompt")

func main() {
	flag.Parse()

	reg := buffers.NewRegistry(func() gapbuf.Buffer { return gapbuf.WithDefaultSize() })
	dbg := termwin.NewDebugWindow(80, 24, nil)

	m := interp.New(nil, dbg.KeyWaiting, zerolog.Nop())
	for name, p := range math.New() {
		m.AddPrim(name, p)
	}
	for name, p := range str.New() {
		m.AddPrim(name, p)
	}
	for name, p := range vars.NewPrims() {
		m.AddPrim(name, p)
	}
	for name, v := range vars.NewVars() {
		m.AddVar(name, v)
	}
	for name, p := range frm.New() {
		m.AddPrim(name, p)
	}
	for name, p := range lib.New() {
		m.AddPrim(name, p)
	}
	for name, p := range sys.NewPrims(os.Args, os.Environ()) {
		m.AddPrim(name, p)
	}
	for name, v := range sys.NewVars() {
		m.AddVar(name, v)
	}
	for name, p := range buf.NewPrims(reg) {
		m.AddPrim(name, p)
	}
	for name, v := range buf.NewVars(reg) {
		m.AddVar(name, v)
	}
	for name, p := range win.NewPrims(dbg, reg) {
		m.AddPrim(name, p)
	}
	for name, v := range win.NewVars(dbg) {
		m.AddVar(name, v)
	}

	r := lined.NewReader()
	for {
		fmt.Print(*prompt)
		line, err := r.ReadString()
		if err != nil {
			fmt.Println()
			if err == lined.ErrEOF {
				os.Exit(0)
			}
			fmt.Fprintf(os.Stderr, "failed to read line: %v\n", err)
			os.Exit(1)
		}

		trimmed := line[:len(line)-1]
		if trimmed == "exit" {
			return
		}

		before := len(dbg.Overwrites)
		beforeAn := len(dbg.Announcements)
		beforeWinAn := len(dbg.WinAnnouncements)
		m.Feed([]byte(trimmed))
		m.Scan()
		for _, s := range dbg.Overwrites[before:] {
			fmt.Print(s)
		}
		for _, a := range dbg.Announcements[beforeAn:] {
			fmt.Print(a[0], a[1])
		}
		for _, a := range dbg.WinAnnouncements[beforeWinAn:] {
			fmt.Print(a[0], a[1])
		}
		fmt.Println()
	}
}
