// Package math implements the arithmetic and base-conversion primitive
// family: bc, ++, --, **, //, %%, ||, &&, ^^, g?.
package math

import (
	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/mintarg"
	"github.com/msandiford/freemint/internal/mintstr"
)

func getBase(ch byte, def int) int {
	switch upper(ch) {
	case 'A', 'C':
		return 0
	case 'B':
		return 2
	case 'O':
		return 8
	case 'D':
		return 10
	case 'H':
		return 16
	default:
		return def
	}
}

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}

// bcPrim implements #(bc,X,Y,Z): reads X in the base named by the first
// character of Y (or raw ASCII ordinal if that base char is 'A'/'C'),
// and formats it in the base named by the first character of Z (or
// returns a single raw byte if that base char is also 'A'/'C').
type bcPrim struct{}

// New returns the math primitive family, keyed by name, ready to
// register on an Interpreter.
func New() map[string]interp.Prim {
	return map[string]interp.Prim{
		"bc": bcPrim{},
		"++": binaryOpPrim{addOp{}},
		"--": binaryOpPrim{subOp{}},
		"**": binaryOpPrim{mulOp{}},
		"//": binaryOpPrim{divOp{}},
		"%%": binaryOpPrim{modOp{}},
		"||": binaryOpPrim{iorOp{}},
		"&&": binaryOpPrim{andOp{}},
		"^^": binaryOpPrim{xorOp{}},
		"g?": gtPrim{},
	}
}

func (bcPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	sch, ok := args.At(2).GetFirstChar()
	if !ok {
		sch = 'a'
	}
	sbase := getBase(sch, 0)

	var num int32
	var prefix []byte
	if sbase != 0 {
		prefix = mintstr.GetIntPrefix(args.At(1).Value, sbase)
		num = mintstr.GetIntValue(args.At(1).Value, sbase)
	} else if ch, ok := args.At(1).GetFirstChar(); ok {
		num = int32(ch)
	}

	dch, ok := args.At(3).GetFirstChar()
	if !ok {
		dch = 'd'
	}
	dbase := getBase(dch, 10)

	if dbase != 0 {
		m.ReturnIntegerWithPrefix(isActive, prefix, num, dbase)
		return
	}
	m.ReturnString(isActive, []byte{byte(num)})
}

type binaryOp interface {
	perform(a, b int32) int32
}

type addOp struct{}

func (addOp) perform(a, b int32) int32 { return a + b }

type subOp struct{}

func (subOp) perform(a, b int32) int32 { return a - b }

type mulOp struct{}

func (mulOp) perform(a, b int32) int32 { return a * b }

type divOp struct{}

func (divOp) perform(a, b int32) int32 {
	if b == 0 {
		return a
	}
	return a / b
}

type modOp struct{}

func (modOp) perform(a, b int32) int32 {
	if b == 0 {
		return a
	}
	return a % b
}

type iorOp struct{}

func (iorOp) perform(a, b int32) int32 { return a | b }

type andOp struct{}

func (andOp) perform(a, b int32) int32 { return a & b }

type xorOp struct{}

func (xorOp) perform(a, b int32) int32 { return a ^ b }

// binaryOpPrim implements #(op,X,Y): both operands parsed base 10, the
// leading non-numeric prefix of X preserved on the result.
type binaryOpPrim struct {
	op binaryOp
}

func (p binaryOpPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if args.Len() < 3 {
		m.ReturnNull(isActive)
		return
	}
	a1 := mintstr.GetIntValue(args.At(1).Value, 10)
	prefix := mintstr.GetIntPrefix(args.At(1).Value, 10)
	a2 := mintstr.GetIntValue(args.At(2).Value, 10)
	result := p.op.perform(a1, a2)
	m.ReturnIntegerWithPrefix(isActive, prefix, result, 10)
}

// gtPrim implements #(g?,X,Y,A,B): A if X>Y (base 10) else B.
type gtPrim struct{}

func (gtPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	a1 := mintstr.GetIntValue(args.At(1).Value, 10)
	a2 := mintstr.GetIntValue(args.At(2).Value, 10)
	if a1 > a2 {
		m.ReturnString(isActive, args.At(3).Value)
	} else {
		m.ReturnString(isActive, args.At(4).Value)
	}
}
