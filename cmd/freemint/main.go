// Command freemint is the process entry point: it wires the gap-buffer
// backed buffer registry, the terminal window, and every primitive and
// variable family into an Interpreter, then runs it until it exits or
// panics.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

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

// bootScript is run once at startup: it prints the banner, locates the
// editor's .ED library along $EMACS or $PATH, loads it, and either
// hands off to its &setup form or walks the user through recovering
// from a missing install.
const bootScript = "" +
	"#(rd)#(ow,(\n" +
	"Freemint, a programmable text editor - Version )##(lv,vn)(\n" +
	"MINT-family macro interpreter core\n" +
	"This is free software, and you are welcome to redistribute it\n" +
	"under the conditions of the GNU General Public License.\n" +
	"Type F1 C-c to see the conditions.\n" +
	"))" +
	"#(ds,argBind,(SELF,arg1,arg2,arg3,arg4,arg5,arg6,arg7,arg8,arg9))" +
	"#(ds,huntPath,(#(huntPath-step,##(fm,env.PATH,;,(##(gn,env.PATH,1000))))" +
	"#(rs,env.PATH)))" +
	"#(mp,huntPath,#(argBind))" +
	"#(ds,huntPath-step,(#(==,arg1,,,(" +
	"\t#(==,#(ff,arg1/emacs.ed,;),,(" +
	"\t\t#(SELF,##(fm,env.PATH,;,(##(gn,env.PATH,1000))))" +
	"\t),(#(ds,env.EMACS,arg1/)))" +
	"))))" +
	"#(mp,huntPath-step,#(argBind))" +
	"#(ev)" +
	"#(n?,env.EMACS,(" +
	"\t#(mp,env.EMACS,,/)" +
	"\t#(ds,env.EMACS,##(env.EMACS,/))" +
	"\t#(gn,env.EMACS,#(--,#(nc,##(env.EMACS)),1))" +
	"\t#(==,##(go,env.EMACS)#(rs,env.EMACS),/,,(" +
	"\t\t#(ds,env.EMACS,##(env.EMACS)/)" +
	"\t))" +
	"))" +
	"#(n?,env.EMACS,,(" +
	"\t#(ds,guess,##(env.FULLPATH))" +
	"\t#(mp,guess,,emacs)" +
	"\t#(==,#(ff,##(guess,emacs.ed),;),,,(" +
	"\t\t#(ds,env.EMACS,##(guess))" +
	"\t))" +
	"))" +
	"#(n?,env.EMACS,,(#(huntPath)))" +
	"#(an,Loading #(env.EMACS)emacs.ed...)" +
	"#(==,#(ll,#(env.EMACS)emacs.ed),,(" +
	"\t#(an,Starting editor...)" +
	"\t#(##(app-name)&setup)" +
	"),(" +
	"\t#(an)" +
	"\t#(ow,(\n" +
	"Cannot find the editor's .ED library files))" +
	"\t#(==,#(rf,#(env.EMACS)boot.min),,(" +
	"\t\t#(ow,(, but found the .min sources.\n" +
	"Compiling the .ED files from the .MIN sources...\n" +
	"))" +
	"\t\t#(sp,[)#(rm,])#(dm,])" +
	"\t),(" +
	"\t\t#(ow,(\n" +
	"- Set the environment string EMACS to the subdirectory\n" +
	"containing the editor's .ED files. For example, EMACS=/emacs/\n" +
	"Press any key to exit...))" +
	"\t\t#(it,10000)#(ow,(\n))#(hl,1)" +
	"\t))" +
	"))"

func main() {
	debug := flag.Bool("debug", false, "enable structured debug logging to stderr")
	flag.Parse()

	log := zerolog.Nop()
	if *debug {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	reg := buffers.NewRegistry(func() gapbuf.Buffer {
		return gapbuf.WithDefaultSize()
	})

	interactive := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	var window termwin.Window
	var closeWindow func()
	if interactive {
		tw, err := termwin.NewTcellWindow()
		if err != nil {
			if path, perr := lined.PromptPath(fmt.Sprintf("Cannot start the terminal display (%v).\nEnter any text to continue in a headless session, or blank to exit: ", err)); perr != nil || path == "" {
				os.Exit(1)
			}
			window = termwin.NewDebugWindow(80, 24, nil)
		} else {
			window = tw
			closeWindow = tw.Close
		}
	} else {
		window = termwin.NewDebugWindow(80, 24, nil)
	}
	if closeWindow != nil {
		defer closeWindow()
	}

	m := interp.New([]byte(bootScript), window.KeyWaiting, log)

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
	for name, p := range win.NewPrims(window, reg) {
		m.AddPrim(name, p)
	}
	for name, v := range win.NewVars(window) {
		m.AddVar(name, v)
	}

	run(m, log)
}

// run drives the scan loop, recovering from a panic in any primitive
// the way the original interpreter's top-level catch_unwind did, so a
// bug in a user macro cannot take the whole session down silently.
func run(m *interp.Interpreter, log zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("interpreter loop terminated")
			fmt.Fprintf(os.Stderr, "freemint: exception: %v\n", r)
		}
	}()
	for {
		m.Scan()
	}
}
