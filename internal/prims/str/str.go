// Package str implements the string-comparison and manipulation
// primitive family: ==, !=, nc, a?, sa, si, nl.
package str

import (
	"bytes"
	"sort"

	"github.com/msandiford/freemint/internal/interp"
	"github.com/msandiford/freemint/internal/mintarg"
)

// New returns the string primitive family, keyed by name.
func New() map[string]interp.Prim {
	return map[string]interp.Prim{
		"==": eqPrim{},
		"!=": nePrim{},
		"nc": ncPrim{},
		"a?": aoPrim{},
		"sa": saPrim{},
		"si": siPrim{},
		"nl": nlPrim{},
	}
}

// eqPrim implements #(==,X,Y,A,B): A if X equals Y byte-for-byte, else B.
type eqPrim struct{}

func (eqPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if bytes.Equal(args.At(1).Value, args.At(2).Value) {
		m.ReturnString(isActive, args.At(3).Value)
	} else {
		m.ReturnString(isActive, args.At(4).Value)
	}
}

// nePrim implements #(!=,X,Y,A,B): the inverse of ==.
type nePrim struct{}

func (nePrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if !bytes.Equal(args.At(1).Value, args.At(2).Value) {
		m.ReturnString(isActive, args.At(3).Value)
	} else {
		m.ReturnString(isActive, args.At(4).Value)
	}
}

// ncPrim implements #(nc,X): the byte length of X, base 10.
type ncPrim struct{}

func (ncPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	m.ReturnInteger(isActive, int32(len(args.At(1).Value)), 10)
}

// aoPrim implements #(a?,X,Y,A,B): A if X<=Y lexicographically, else B.
type aoPrim struct{}

func (aoPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	if bytes.Compare(args.At(1).Value, args.At(2).Value) <= 0 {
		m.ReturnString(isActive, args.At(3).Value)
	} else {
		m.ReturnString(isActive, args.At(4).Value)
	}
}

// saPrim implements #(sa,X1,...,Xn): the arguments sorted
// lexicographically and joined with commas.
type saPrim struct{}

func (saPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	all := args.Slice()
	items := make([]string, 0, len(all))
	for i := 1; i < len(all); i++ {
		if all[i].IsTerm() {
			continue
		}
		items = append(items, string(all[i].Value))
	}
	sort.Strings(items)

	var out []byte
	for i, s := range items {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, s...)
	}
	m.ReturnString(isActive, out)
}

// siPrim implements #(si,X,Y): substitutes each byte ch of Y with
// form X's content at index ch, if X exists and that index is in
// range; otherwise ch passes through unchanged. If X does not exist at
// all, Y passes through unchanged.
type siPrim struct{}

func (siPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	orig := args.At(2).Value
	f := m.GetForm(args.At(1).Value)
	if f == nil {
		m.ReturnString(isActive, orig)
		return
	}
	content := f.Content

	out := make([]byte, len(orig))
	for i, ch := range orig {
		idx := int(ch)
		if idx < len(content) {
			out[i] = content[idx]
		} else {
			out[i] = ch
		}
	}
	m.ReturnString(isActive, out)
}

// nlPrim implements #(nl): a single newline byte.
type nlPrim struct{}

func (nlPrim) Execute(m *interp.Interpreter, isActive bool, args *mintarg.List) {
	m.ReturnString(isActive, []byte{'\n'})
}
