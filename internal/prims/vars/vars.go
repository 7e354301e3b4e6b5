// Package vars implements the variable-access primitive family (lv,
// sv) and the vn/as system variables.
package vars

import (
	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/mintarg"
	"github.com/msandiford/freemint/internal/mintstr"
)

const version = "2.0a"

// NewPrims returns the lv/sv primitives, keyed by name.
func NewPrims() map[string]interp.Prim {
	return map[string]interp.Prim{
		"lv": lvPrim{},
		"sv": svPrim{},
	}
}

// NewVars returns the vn/as variables, keyed by name.
func NewVars() map[string]interp.Var {
	return map[string]interp.Var{
		"vn": vnVar{},
		"as": asVar{},
	}
}

// lvPrim implements #(lv,X): the value of variable X.
type lvPrim struct{}

func (lvPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 2 {
		m.ReturnNull(isActive)
		return
	}
	m.ReturnString(isActive, m.GetVar(args.At(1).Value))
}

// svPrim implements #(sv,X,Y): sets variable X to Y (empty if Y is
// omitted). Called with no arguments it produces no result at all, not
// even null.
type svPrim struct{}

func (svPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 3 {
		return
	}
	m.SetVar(args.At(1).Value, args.At(2).Value)
	m.ReturnNull(isActive)
}

// vnVar is the read-only interpreter version string.
type vnVar struct{}

func (vnVar) GetVal(*interp.Interpreter) []byte     { return []byte(version) }
func (vnVar) SetVal(*interp.Interpreter, []byte) {}

// asVar is the idle auto-save character threshold.
type asVar struct{}

func (asVar) GetVal(m *interp.Interpreter) []byte {
	return mintstr.AppendNum(nil, m.GetIdleMax(), 10)
}

func (asVar) SetVal(m *interp.Interpreter, val []byte) {
	m.SetIdleMax(mintstr.GetIntValue(val, 10))
}
