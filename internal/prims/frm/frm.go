// Package frm implements the form-manipulation primitive family: ds,
// gs, go, gn, rs, fm, n?, ls, es, mp, hk.
package frm

import (
	"bytes"

	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/mintarg"
	"github.com/msandiford/freemint/internal/mintstr"
)

// New returns the form primitive family, keyed by name.
func New() map[string]interp.Prim {
	return map[string]interp.Prim{
		"ds": dsPrim{},
		"gs": gsPrim{},
		"go": goPrim{},
		"gn": gnPrim{},
		"rs": rsPrim{},
		"fm": fmPrim{},
		"n?": nxPrim{},
		"ls": lsPrim{},
		"es": esPrim{},
		"mp": mpPrim{},
		"hk": hkPrim{},
	}
}

// dsPrim implements #(ds,X,Y): defines form X with value Y, discarding
// any previous value.
type dsPrim struct{}

func (dsPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	m.SetFormValue(args.At(1).Value, args.At(2).Value)
	m.ReturnNull(isActive)
}

// gsPrim implements #(gs,X,Y1,...,Yn): form X's remaining content with
// parameter markers substituted from Y1..Yn.
type gsPrim struct{}

func (gsPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	all := args.Slice()
	var newArgs *mintarg.List
	if len(all) > 2 {
		newArgs = mintarg.FromSlice(all[2:])
	} else {
		newArgs = mintarg.NewList()
	}

	var content []byte
	if f := m.GetForm(args.At(1).Value); f != nil {
		content = f.Get()
	}
	m.ReturnSegString(isActive, content, newArgs)
}

// goPrim implements #(go,X,Y): one character from form X; null if the
// form is missing, or Y in active mode if it is already exhausted.
type goPrim struct{}

func (goPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	m.ReturnNForm(isActive, args.At(1).Value, 1, args.At(2).Value)
}

// gnPrim implements #(gn,X,Y,Z): Y characters from form X; null if the
// form is missing, or Z in active mode if it is already exhausted.
type gnPrim struct{}

func (gnPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	count := mintstr.GetIntValue(args.At(2).Value, 10)
	m.ReturnNForm(isActive, args.At(1).Value, count, args.At(3).Value)
}

// rsPrim implements #(rs,X): resets form X's read cursor to 0.
type rsPrim struct{}

func (rsPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	m.SetFormPos(args.At(1).Value, 0)
	m.ReturnNull(isActive)
}

// fmPrim implements #(fm,X,Y,Z): the portion of form X before the
// first literal occurrence of Y at or after the cursor, advancing the
// cursor past the match. Z is returned (in active mode) if X is found
// but Y is empty or not present; null if X does not exist.
type fmPrim struct{}

func (fmPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	formName := args.At(1).Value
	search := args.At(2).Value
	notFound := args.At(3).Value

	f := m.GetForm(formName)
	if f == nil {
		m.ReturnNull(isActive)
		return
	}
	if len(search) == 0 {
		m.ReturnString(true, notFound)
		return
	}

	pos := int(f.GetPos())
	content := f.Content
	idx := bytes.Index(content[pos:], search)
	if idx < 0 {
		m.ReturnString(true, notFound)
		return
	}
	abs := pos + idx
	result := append([]byte(nil), content[pos:abs]...)
	m.SetFormPos(formName, uint32(abs+len(search)))
	m.ReturnString(isActive, result)
}

// nxPrim implements #(n?,X,A,B): A if form X exists, else B.
type nxPrim struct{}

func (nxPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if m.GetForm(args.At(1).Value) != nil {
		m.ReturnString(isActive, args.At(2).Value)
	} else {
		m.ReturnString(isActive, args.At(3).Value)
	}
}

// lsPrim implements #(ls,X,Y): all form names with prefix Y, sorted
// and joined by separator X.
type lsPrim struct{}

func (lsPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	m.ReturnFormList(isActive, args.At(1).Value, args.At(2).Value)
}

// esPrim implements #(es,X1,...,Xn): deletes each named form.
type esPrim struct{}

func (esPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	all := args.Slice()
	for i := 1; i < len(all); i++ {
		if all[i].IsTerm() {
			continue
		}
		m.DelForm(all[i].Value)
	}
	m.ReturnNull(isActive)
}

// mpPrim implements #(mp,X,Y1,...,Yn): rewrites form X in place,
// replacing every literal occurrence of Y1 with parameter marker
// 0x80, Y2 with 0x81, and so on.
type mpPrim struct{}

func (mpPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	formName := args.At(1).Value
	f := m.GetForm(formName)
	if f != nil {
		value := append([]byte(nil), f.Content...)

		all := args.Slice()
		marker := byte(0x80)
		for i := 2; i < len(all); i++ {
			if all[i].IsTerm() {
				marker++
				continue
			}
			search := all[i].Value
			if len(search) > 0 {
				value = replaceAllLiteral(value, search, marker)
			}
			marker++
		}
		m.SetFormValue(formName, value)
	}
	m.ReturnNull(isActive)
}

func replaceAllLiteral(value, search []byte, marker byte) []byte {
	out := make([]byte, 0, len(value))
	pos := 0
	for pos < len(value) {
		if pos+len(search) <= len(value) && bytes.Equal(value[pos:pos+len(search)], search) {
			out = append(out, marker)
			pos += len(search)
		} else {
			out = append(out, value[pos])
			pos++
		}
	}
	return out
}

// hkPrim implements #(hk,X1,...,Xn): finds the first of X1..Xn that
// names an existing form, and expands it with the remaining names as
// its parameters, as #(gs,...) would. Null if none exist.
type hkPrim struct{}

func (hkPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	all := args.Slice()
	if len(all) <= 1 {
		m.ReturnNull(isActive)
		return
	}
	for i := 1; i < len(all); i++ {
		if all[i].IsTerm() {
			continue
		}
		f := m.GetForm(all[i].Value)
		if f == nil {
			continue
		}
		content := append([]byte(nil), f.Content...)
		paramArgs := mintarg.FromSlice(all[i:])
		m.ReturnSegString(isActive, content, paramArgs)
		return
	}
	m.ReturnNull(isActive)
}
