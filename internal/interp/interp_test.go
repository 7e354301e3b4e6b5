package interp

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/msandiford/freemint/internal/mintarg"
)

func noKey() bool { return false }

// echoPrim implements "ow": it appends its first argument to an
// external log, mimicking the window-overwrite primitive without
// pulling in internal/termwin.
type echoPrim struct{ out *[]string }

func (p echoPrim) Execute(m *Interpreter, isActive bool, args *mintarg.List) {
	*p.out = append(*p.out, string(args.At(1).Value))
	m.ReturnNull(isActive)
}

type bcPrim struct{}

func (bcPrim) Execute(m *Interpreter, isActive bool, args *mintarg.List) {
	src := args.At(1).Value
	if len(src) == 0 {
		m.ReturnNull(isActive)
		return
	}
	m.ReturnInteger(isActive, int32(src[0]), 10)
}

func newTestInterp(initial string) (*Interpreter, *[]string) {
	var out []string
	m := New([]byte(initial), noKey, zerolog.Nop())
	m.AddPrim("ow", echoPrim{&out})
	m.AddPrim("bc", bcPrim{})
	return m, &out
}

func TestScanDispatchesOverwrite(t *testing.T) {
	m, out := newTestInterp("#(ow,#(bc,@,a,d))")
	m.Scan()
	assert.Equal(t, []string{"64"}, *out)
}

func TestNeutralCallPreservesPrefix(t *testing.T) {
	m := New(nil, noKey, zerolog.Nop())
	m.AddPrim("++", addPrim{})
	m.Feed([]byte("#(ow,##(++,(Prefix 12),3))"))
	var out []string
	m.AddPrim("ow", echoPrim{&out})
	m.Scan()
	assert.Equal(t, []string{"Prefix 15"}, out)
}

type addPrim struct{}

func (addPrim) Execute(m *Interpreter, isActive bool, args *mintarg.List) {
	prefix := args.At(1).Value
	// Split a trailing decimal number off the prefix, the way the real
	// math primitives do via mintstr.GetIntValue/GetIntPrefix.
	n := 0
	i := len(prefix)
	for i > 0 && prefix[i-1] >= '0' && prefix[i-1] <= '9' {
		i--
	}
	lead := prefix[:i]
	for _, c := range prefix[i:] {
		n = n*10 + int(c-'0')
	}
	var add int
	for _, c := range args.At(2).Value {
		add = add*10 + int(c-'0')
	}
	m.ReturnIntegerWithPrefix(isActive, lead, int32(n+add), 10)
}

func TestFormDefinitionAndLookup(t *testing.T) {
	m := New([]byte("#(ds,greet,(hello))"), noKey, zerolog.Nop())
	m.Scan()
	f := m.GetForm([]byte("greet"))
	if assert.NotNil(t, f) {
		assert.Equal(t, "hello", string(f.Get()))
	}
}

func TestFormCallSubstitutesParameters(t *testing.T) {
	// Marker 0x80 is the call head itself (args[0]); a form's own real
	// parameters start at 0x81 for arg1, matching return_seg_string's
	// convention of substituting against the full argument list
	// (name included) rather than a trimmed one.
	m := New(nil, noKey, zerolog.Nop())
	m.SetFormValue([]byte("add1"), []byte{0x81, ' ', 'p', 'l', 'u', 's', ' ', 0x82})
	var out []string
	m.AddPrim("ow", echoPrim{&out})
	m.Feed([]byte("#(ow,#(add1,1,2))"))
	m.Scan()
	assert.Equal(t, []string{"1 plus 2"}, out)
}

func TestBareCloseParenIsSilentNoOp(t *testing.T) {
	m := New([]byte(")"), noKey, zerolog.Nop())
	assert.NotPanics(t, func() { m.Scan() })
}

func TestNewInstallsNoKeyDefaultString(t *testing.T) {
	m := New(nil, noKey, zerolog.Nop())
	assert.Equal(t, []byte(DefaultStringNoKey), append([]byte(nil), m.defaultNoKey...))
}

func TestIdleMaxRoundTrip(t *testing.T) {
	m := New(nil, noKey, zerolog.Nop())
	m.SetIdleMax(42)
	assert.EqualValues(t, 42, m.GetIdleMax())
}
