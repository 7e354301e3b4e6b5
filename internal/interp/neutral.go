package interp

import "github.com/msandiford/freemint/internal/mintarg"

// neutralState is the argument-construction builder: a stack (front =
// most recently opened marker) of in-progress Args, plus a count of
// how many of the frontmost entries belong to the innermost
// not-yet-closed call.
type neutralState struct {
	args     []mintarg.Arg
	lastFunc int
}

// clear resets the builder to a single vacant Null head, as happens
// whenever the active string empties out between top-level statements.
func (n *neutralState) clear() {
	n.args = []mintarg.Arg{mintarg.NewArg(mintarg.Null)}
	n.lastFunc = 1
}

func (n *neutralState) pushFront(a mintarg.Arg) {
	n.args = append([]mintarg.Arg{a}, n.args...)
}

func (n *neutralState) front() *mintarg.Arg {
	if len(n.args) == 0 {
		n.clear()
	}
	return &n.args[0]
}

// append appends a single byte to the frontmost (currently accumulating)
// argument.
func (n *neutralState) append(ch byte) {
	n.front().Append(ch)
}

// appendSlice appends a byte slice to the frontmost argument.
func (n *neutralState) appendSlice(s []byte) {
	n.front().AppendSlice(s)
}

func (n *neutralState) incrementLastFunc() { n.lastFunc++ }
func (n *neutralState) saveFunc()          { n.lastFunc = 1 }

func (n *neutralState) markArgument() {
	n.pushFront(mintarg.NewArg(mintarg.Plain))
	n.incrementLastFunc()
}

func (n *neutralState) markActiveFunction() {
	n.pushFront(mintarg.NewArg(mintarg.Active))
	n.saveFunc()
}

func (n *neutralState) markNeutralFunction() {
	n.pushFront(mintarg.NewArg(mintarg.Neutral))
	n.saveFunc()
}

func (n *neutralState) markEndFunction() {
	n.pushFront(mintarg.NewArg(mintarg.End))
	n.incrementLastFunc()
}

// popArguments pops the innermost call's arguments off the front of
// the builder, restoring them to call order (head, arg1, ..., End),
// and recomputes lastFunc for whatever call remains open underneath.
func (n *neutralState) popArguments() *mintarg.List {
	count := n.lastFunc
	if count > len(n.args) {
		count = len(n.args)
	}
	popped := n.args[:count]
	n.args = n.args[count:]

	result := make([]mintarg.Arg, count)
	for i, a := range popped {
		result[count-1-i] = a
	}

	if len(n.args) == 0 {
		n.clear()
	} else {
		n.lastFunc = 1
		for i, a := range n.args {
			if a.IsTerm() {
				n.lastFunc = i + 1
				break
			}
		}
	}

	return mintarg.FromSlice(result)
}
