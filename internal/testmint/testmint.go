// Package testmint is a test-only driver that wires every non-window
// primitive and variable family onto a fresh Interpreter and captures
// whatever "ow" writes, the way the teacher's own tests/test_mint.rs
// harness does for its Rust equivalent.
package testmint

import (
	"github.com/rs/zerolog"

	"github.com/msandiford/freemint/internal/buffers"
	"github.com/msandiford/freemint/internal/gapbuf"
	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/mintarg"
	"github.com/msandiford/freemint/internal/prims/buf"
	"github.com/msandiford/freemint/internal/prims/frm"
	"github.com/msandiford/freemint/internal/prims/lib"
	"github.com/msandiford/freemint/internal/prims/math"
	"github.com/msandiford/freemint/internal/prims/str"
	"github.com/msandiford/freemint/internal/prims/sys"
	"github.com/msandiford/freemint/internal/prims/vars"
)

// TestMint runs one script through a fully-wired Interpreter and
// reports what it wrote via ow.
type TestMint struct {
	Interp *interp.Interpreter
	Reg    *buffers.Registry
	output []byte
}

type owPrim struct{ t *TestMint }

func (p owPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	for _, a := range args.Slice()[1:] {
		if a.IsTerm() {
			continue
		}
		p.t.output = append(p.t.output, a.Value...)
	}
	m.ReturnNull(isActive)
}

// New returns a TestMint primed with script and no process
// args/environment.
func New(script string) *TestMint {
	return NewWithEnv(script, nil, nil)
}

// NewWithEnv is New but lets a test control what sys.NewPrims sees as
// argv/envp, for exercising the ev primitive.
func NewWithEnv(script string, argv, envp []string) *TestMint {
	t := &TestMint{
		Reg: buffers.NewRegistry(func() gapbuf.Buffer { return gapbuf.WithDefaultSize() }),
	}
	t.Interp = interp.New([]byte(script), func() bool { return false }, zerolog.Nop())
	t.Interp.AddPrim("ow", owPrim{t})

	for name, p := range math.New() {
		t.Interp.AddPrim(name, p)
	}
	for name, p := range str.New() {
		t.Interp.AddPrim(name, p)
	}
	for name, p := range vars.NewPrims() {
		t.Interp.AddPrim(name, p)
	}
	for name, v := range vars.NewVars() {
		t.Interp.AddVar(name, v)
	}
	for name, p := range frm.New() {
		t.Interp.AddPrim(name, p)
	}
	for name, p := range lib.New() {
		t.Interp.AddPrim(name, p)
	}
	for name, p := range sys.NewPrims(argv, envp) {
		t.Interp.AddPrim(name, p)
	}
	for name, v := range sys.NewVars() {
		t.Interp.AddVar(name, v)
	}
	for name, p := range buf.NewPrims(t.Reg) {
		t.Interp.AddPrim(name, p)
	}
	for name, v := range buf.NewVars(t.Reg) {
		t.Interp.AddVar(name, v)
	}
	return t
}

// Result scans the script to completion and returns everything ow
// captured.
func (t *TestMint) Result() string {
	t.Interp.Scan()
	return string(t.output)
}
