// Package mintarg implements the interpreter's typed argument and
// argument-list types: the Null/Arg/Active/Neutral/End kinds and the
// End-sentinel indexing that lets primitives written for N arguments run
// safely when the caller supplied fewer.
package mintarg

// ArgType is the kind of a single argument in a dispatch call.
type ArgType byte

const (
	// Null marks a vacant call head (a bare ")" with no preceding
	// function marker).
	Null ArgType = 0x80
	// Plain marks an ordinary argument value (the "Arg" kind).
	Plain ArgType = 0x01
	// Active marks a function head invoked with "#(...)".
	Active ArgType = 0x82
	// Neutral marks a function head invoked with "##(...)".
	Neutral ArgType = 0x83
	// End marks the sentinel terminator appended after the last real
	// argument, and is also what out-of-range indexing returns.
	End ArgType = 0x04
)

// IsTerm reports whether the type has the high bit set: Null, Active,
// Neutral and End are "terminal" for the purposes of finding the next
// function-start marker while popping arguments.
func (t ArgType) IsTerm() bool {
	return byte(t)&0x80 != 0
}

// Arg is one entry in an argument list: a typed value.
type Arg struct {
	Type  ArgType
	Value []byte
}

// NewArg returns an empty argument of the given type.
func NewArg(t ArgType) Arg {
	return Arg{Type: t}
}

// Append appends a single byte to the argument's value.
func (a *Arg) Append(ch byte) {
	a.Value = append(a.Value, ch)
}

// AppendSlice appends a byte slice to the argument's value.
func (a *Arg) AppendSlice(s []byte) {
	a.Value = append(a.Value, s...)
}

// IsTerm reports whether this argument's type is terminal.
func (a *Arg) IsTerm() bool {
	return a.Type.IsTerm()
}

// IsEmpty reports whether the argument's value is empty.
func (a *Arg) IsEmpty() bool {
	return len(a.Value) == 0
}

// GetFirstChar returns the first byte of the value and true, or (0,
// false) if the value is empty.
func (a *Arg) GetFirstChar() (byte, bool) {
	if len(a.Value) == 0 {
		return 0, false
	}
	return a.Value[0], true
}

// end is the shared sentinel returned for any out-of-range index.
var end = Arg{Type: End}

// List is an ordered sequence of Args, addressed front-to-back, with
// push-to-front operations mirroring the interpreter's deque-based
// argument construction.
type List struct {
	args []Arg
}

// NewList returns an empty argument list.
func NewList() *List {
	return &List{}
}

// Len returns the number of entries in the list. A list built by the
// interpreter's dispatch holds the function head and the trailing End
// entry, so #(name,a,b) has length 4.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.args)
}

// IsEmpty reports whether the list has no arguments.
func (l *List) IsEmpty() bool {
	return l.Len() == 0
}

// PushFront prepends an argument to the list.
func (l *List) PushFront(a Arg) {
	l.args = append([]Arg{a}, l.args...)
}

// At returns the argument at index i, or the End sentinel if i is out
// of range. This is the mechanism that lets a primitive written for
// #(name,a,b,c,d) run safely when called as #(name,a,b).
func (l *List) At(i int) *Arg {
	if l == nil || i < 0 || i >= len(l.args) {
		return &end
	}
	return &l.args[i]
}

// Slice returns the underlying arguments (index 0 is the function
// head), including the trailing End entry when the list holds one.
func (l *List) Slice() []Arg {
	if l == nil {
		return nil
	}
	return l.args
}

// FromSlice builds a List directly from a slice of Args (used by
// primitives that build synthetic argument lists, e.g. hk's fallthrough
// to gs semantics).
func FromSlice(args []Arg) *List {
	return &List{args: append([]Arg(nil), args...)}
}
