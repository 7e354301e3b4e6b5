// Package interp implements the MINT/TRAC-family interpreter: the
// active/neutral rescanning evaluator, parameter substitution, and the
// form/primitive/variable dispatch registries.
package interp

import (
	"github.com/rs/zerolog"

	"github.com/msandiford/freemint/internal/form"
	"github.com/msandiford/freemint/internal/mintarg"
	"github.com/msandiford/freemint/internal/mintstr"
)

// Default bootstrap strings: re-armed whenever the active string drains,
// selecting a key-aware vs. non-blocking idle script.
const (
	DefaultStringKey   = "#(d,#(g))"
	DefaultStringNoKey = "#(k)#(d,#(g))"
)

// Prim is a native operation callable by name from a script.
type Prim interface {
	Execute(interp *Interpreter, isActive bool, args *mintarg.List)
}

// Var is a native read/write binding distinct from a form, addressed
// through the lv/sv primitives.
type Var interface {
	GetVal(interp *Interpreter) []byte
	SetVal(interp *Interpreter, val []byte)
}

// KeyWaiting reports whether a key is available without blocking; the
// interpreter consults it only when rearming the active string.
type KeyWaiting func() bool

// Interpreter is the MINT/TRAC-family active/neutral rescanner together
// with its form, primitive and variable registries.
type Interpreter struct {
	active  []byte
	neutral neutralState

	forms *form.Store
	prims map[string]Prim
	vars  map[string]Var

	idleMax, idleCount int
	idleString         []byte

	defaultKey, defaultNoKey []byte

	keyWaiting KeyWaiting
	log        zerolog.Logger
}

// New returns an Interpreter primed with initialString as its first
// active string. keyWaiting is consulted whenever the active string
// drains to pick the with-key vs. no-key default rearm script.
func New(initialString []byte, keyWaiting KeyWaiting, log zerolog.Logger) *Interpreter {
	m := &Interpreter{
		forms:        form.NewStore(),
		prims:        make(map[string]Prim),
		vars:         make(map[string]Var),
		defaultKey:   []byte(DefaultStringKey),
		defaultNoKey: []byte(DefaultStringNoKey),
		keyWaiting:   keyWaiting,
		log:          log,
	}
	m.neutral.clear()
	m.active = append([]byte(nil), initialString...)
	return m
}

// AddPrim registers a primitive under name.
func (m *Interpreter) AddPrim(name string, p Prim) { m.prims[name] = p }

// AddVar registers a variable under name.
func (m *Interpreter) AddVar(name string, v Var) { m.vars[name] = v }

// GetPrim returns the primitive registered under name, if any — exposed
// so tests can invoke a primitive directly without going through Scan.
func (m *Interpreter) GetPrim(name []byte) (Prim, bool) {
	p, ok := m.prims[string(name)]
	return p, ok
}

// GetForm returns the named form, or nil.
func (m *Interpreter) GetForm(name []byte) *form.Form { return m.forms.Get(name) }

// SetFormValue overwrites or creates the named form.
func (m *Interpreter) SetFormValue(name, value []byte) { m.forms.SetValue(name, value) }

// SetFormPos sets the named form's read cursor.
func (m *Interpreter) SetFormPos(name []byte, n uint32) { m.forms.SetPos(name, n) }

// DelForm removes the named form.
func (m *Interpreter) DelForm(name []byte) { m.forms.Del(name) }

// GetVar returns the value of the named variable, or nil if unknown.
func (m *Interpreter) GetVar(name []byte) []byte {
	if v, ok := m.vars[string(name)]; ok {
		return v.GetVal(m)
	}
	m.log.Debug().Str("var", string(name)).Msg("get of unknown variable")
	return nil
}

// SetVar sets the value of the named variable, a no-op if unknown.
func (m *Interpreter) SetVar(name, val []byte) {
	if v, ok := m.vars[string(name)]; ok {
		v.SetVal(m, val)
		return
	}
	m.log.Debug().Str("var", string(name)).Msg("set of unknown variable")
}

// SetIdleMax sets the auto-save character threshold.
func (m *Interpreter) SetIdleMax(n int32) { m.idleMax = int(n) }

// GetIdleMax returns the auto-save character threshold.
func (m *Interpreter) GetIdleMax() int32 { return int32(m.idleMax) }

// SetIdleString arms the one-shot idle script run the next time the
// active string drains.
func (m *Interpreter) SetIdleString(s []byte) { m.idleString = append([]byte(nil), s...) }

// --- Result return routes ---

// ReturnNull produces no output.
func (m *Interpreter) ReturnNull(isActive bool) {
	m.log.Debug().Bool("active", isActive).Msg("return null")
}

// ReturnString returns s: pushed to the front of the active string for
// rescanning if isActive, else appended to the current neutral
// argument.
func (m *Interpreter) ReturnString(isActive bool, s []byte) {
	if isActive {
		m.pushFrontActive(s)
	} else {
		m.neutral.appendSlice(s)
	}
}

// ReturnInteger formats n in base and returns it as ReturnString would.
func (m *Interpreter) ReturnInteger(isActive bool, n int32, base int) {
	m.ReturnString(isActive, mintstr.AppendNum(nil, n, base))
}

// ReturnIntegerWithPrefix formats n in base appended to prefix, so
// arithmetic primitives preserve a non-numeric lead string.
func (m *Interpreter) ReturnIntegerWithPrefix(isActive bool, prefix []byte, n int32, base int) {
	out := append([]byte(nil), prefix...)
	out = mintstr.AppendNum(out, n, base)
	m.ReturnString(isActive, out)
}

// ReturnNForm implements the go/gn family: if the named form cannot be
// found, returns null; if found but already at end, returns notFound
// in active mode regardless of the call's own kind; otherwise returns
// the next n bytes of the form via ReturnString.
func (m *Interpreter) ReturnNForm(isActive bool, formName []byte, n int32, notFound []byte) {
	f := m.forms.Get(formName)
	if f == nil {
		m.ReturnNull(isActive)
		return
	}
	if f.AtEnd() {
		m.ReturnString(true, notFound)
		return
	}
	m.ReturnString(isActive, f.GetN(n))
}

// ReturnFormList implements ls: all form names with the given prefix,
// sorted, joined with sep.
func (m *Interpreter) ReturnFormList(isActive bool, sep, prefix []byte) {
	names := m.forms.List(prefix)
	var out []byte
	for i, name := range names {
		if i > 0 {
			out = append(out, sep...)
		}
		out = append(out, name...)
	}
	m.ReturnString(isActive, out)
}

// ReturnSegString implements parameter substitution: any byte >= 0x80
// in ss refers (as 0x80+i) to argument i's full value in args, clamped
// to the last argument index; other bytes are literal.
func (m *Interpreter) ReturnSegString(isActive bool, ss []byte, args *mintarg.List) {
	lastIndex := args.Len() - 1
	if lastIndex < 0 {
		lastIndex = 0
	}
	getArg := func(i int) []byte {
		if i > lastIndex {
			i = lastIndex
		}
		return args.At(i).Value
	}

	out := make([]byte, 0, len(ss))
	for _, ch := range ss {
		if ch >= 0x80 {
			out = append(out, getArg(int(ch-0x80))...)
		} else {
			out = append(out, ch)
		}
	}
	m.ReturnString(isActive, out)
}

// Feed prepends s to the active string ahead of whatever is already
// queued, for a driver that pushes in new top-level input between Scan
// calls (a REPL reading one line at a time, say) rather than supplying
// it all upfront to New.
func (m *Interpreter) Feed(s []byte) {
	m.pushFrontActive(s)
}

func (m *Interpreter) pushFrontActive(s []byte) {
	next := make([]byte, 0, len(s)+len(m.active))
	next = append(next, s...)
	next = append(next, m.active...)
	m.active = next
}

// --- Scan loop ---

// Scan processes one top-level pass of the active string: it dispatches
// every complete function call it finds, rearming from the idle/default
// script first if the active string is currently empty.
func (m *Interpreter) Scan() {
	if len(m.active) == 0 {
		m.neutral.clear()
		switch {
		case len(m.idleString) > 0:
			m.active = m.idleString
			m.idleString = nil
		case m.keyWaiting != nil && m.keyWaiting():
			m.active = append([]byte(nil), m.defaultKey...)
		default:
			m.active = append([]byte(nil), m.defaultNoKey...)
		}
	}

	pos := 0
	for pos < len(m.active) {
		ch := m.active[pos]
		switch ch {
		case '\t', '\r', '\n':
			pos++
		case '(':
			next, ok := m.copyToCloseParen(pos + 1)
			if !ok {
				return
			}
			pos = next
		case '#':
			switch {
			case pos+2 < len(m.active) && m.active[pos+1] == '#' && m.active[pos+2] == '(':
				m.neutral.markNeutralFunction()
				pos += 3
			case pos+1 < len(m.active) && m.active[pos+1] == '(':
				m.neutral.markActiveFunction()
				pos += 2
			default:
				m.neutral.append('#')
				pos++
			}
		case ',':
			m.neutral.markArgument()
			pos++
		case ')':
			m.active = m.active[pos+1:]
			m.executeFunction()
			pos = 0
		default:
			m.neutral.append(ch)
			pos++
		}
	}
	m.active = nil
}

// copyToCloseParen copies the literal content between a balanced pair
// of parens (start points just after the opening '(') into the neutral
// builder, returning the position right after the closing ')'. It
// returns ok=false if the parens never balance before the string ends.
func (m *Interpreter) copyToCloseParen(start int) (int, bool) {
	depth := 1
	i := start
	for i < len(m.active) {
		switch m.active[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				m.neutral.appendSlice(m.active[start:i])
				return i + 1, true
			}
		}
		i++
	}
	return start, false
}

// executeFunction pops the innermost call's arguments and dispatches:
// primitive, then form, then a dflta/dfltn fallback. A bare ')' with no
// preceding function marker is a silent no-op.
func (m *Interpreter) executeFunction() {
	m.neutral.markEndFunction()
	args := m.neutral.popArguments()

	head := args.At(0)
	if args.Len() == 0 || head.Type == mintarg.Null {
		return
	}

	isActive := head.Type == mintarg.Active
	name := head.Value

	if prim, ok := m.prims[string(name)]; ok {
		m.log.Debug().Str("prim", string(name)).Bool("active", isActive).Msg("dispatch")
		prim.Execute(m, isActive, args)
		return
	}
	if f := m.forms.Get(name); f != nil {
		m.ReturnSegString(isActive, f.Get(), args)
		return
	}

	defaultName := "dfltn"
	if isActive {
		defaultName = "dflta"
	}
	if f := m.forms.Get([]byte(defaultName)); f != nil {
		m.ReturnSegString(isActive, f.Get(), args)
	}
}
