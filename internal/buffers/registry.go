// Package buffers implements the process-wide registry of numbered
// Emacs buffers, the "current buffer" selection, and the single
// compiled search pattern shared across all buffers.
package buffers

import (
	"regexp"

	"github.com/dlclark/regexp2"

	"github.com/msandiford/freemint/internal/embuf"
	"github.com/msandiford/freemint/internal/gapbuf"
)

// Factory creates a fresh Buffer for a newly allocated EmacsBuffer.
type Factory func() gapbuf.Buffer

// Registry owns all EmacsBuffer instances by number and the shared
// search regex. It is passed explicitly to primitives rather than
// reached through a package-level global, per the call for threading
// shared state through dispatch rather than hiding it behind a
// thread-local.
type Registry struct {
	factory Factory
	current *embuf.EmacsBuffer
	byNumber map[int]*embuf.EmacsBuffer
	nextBufno int
	search   *regexp2.Regexp
}

// NewRegistry returns a Registry with one initial buffer already
// selected as current.
func NewRegistry(factory Factory) *Registry {
	r := &Registry{
		factory:   factory,
		byNumber:  make(map[int]*embuf.EmacsBuffer),
		nextBufno: 1,
	}
	r.current = r.allocate()
	return r
}

func (r *Registry) allocate() *embuf.EmacsBuffer {
	bufno := r.nextBufno
	r.nextBufno++
	b := embuf.New(bufno, r.factory())
	r.byNumber[bufno] = b
	return b
}

// Current returns the currently selected buffer.
func (r *Registry) Current() *embuf.EmacsBuffer { return r.current }

// NewBuffer allocates a new buffer, selects it, and returns its number.
func (r *Registry) NewBuffer() int {
	r.current = r.allocate()
	return r.current.GetBufNumber()
}

// SelectBuffer makes the buffer numbered bufno current. Returns false
// if no such buffer exists.
func (r *Registry) SelectBuffer(bufno int) bool {
	b, ok := r.byNumber[bufno]
	if !ok {
		return false
	}
	r.current = b
	return true
}

// SetSearchString compiles a literal (non-regex) search pattern, case
// folded if fold is set. An empty pattern clears the search.
func (r *Registry) SetSearchString(s []byte, fold bool) bool {
	if len(s) == 0 {
		r.search = nil
		return true
	}
	opts := regexp2.None
	if fold {
		opts = regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(regexp.QuoteMeta(string(s)), opts)
	if err != nil {
		r.search = nil
		return false
	}
	r.search = re
	return true
}

// SetSearchRegex compiles exp as a regex pattern with multi-line
// anchoring, case folded if fold is set. An empty pattern clears the
// search.
func (r *Registry) SetSearchRegex(exp []byte, fold bool) bool {
	if len(exp) == 0 {
		r.search = nil
		return true
	}
	opts := regexp2.Multiline
	if fold {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(string(exp), opts)
	if err != nil {
		r.search = nil
		return false
	}
	r.search = re
	return true
}

// Search resolves ss/se against the current buffer's marks and runs
// the shared pattern over the resulting range, forward if ss<=se or
// backward otherwise. If ms/me are non-zero, a successful match's
// bounds are written back into those mark registers. If no search
// pattern is set, the search trivially succeeds and (when non-zero)
// both output marks are set to point.
func (r *Registry) Search(ss, se, ms, me byte) bool {
	buf := r.current

	if r.search == nil {
		if ms != 0 {
			buf.SetMark(ms, buf.Point())
		}
		if me != 0 {
			buf.SetMark(me, buf.Point())
		}
		return true
	}

	ssN := min(buf.GetMarkPosition(ss), buf.Size())
	seN := min(buf.GetMarkPosition(se), buf.Size())

	var start, end int
	var matchStart, matchEnd int
	var ok bool
	if ssN <= seN {
		start, end = ssN, seN
		matchStart, matchEnd, ok = buf.FindForward(r.search, start, end)
	} else {
		start, end = seN, ssN
		matchStart, matchEnd, ok = buf.FindBackward(r.search, start, end)
	}
	if !ok {
		return false
	}
	if ms != 0 {
		buf.SetMark(ms, matchStart)
	}
	if me != 0 {
		buf.SetMark(me, matchEnd)
	}
	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
