// Package gapbuf implements the editable text store: a Buffer interface
// satisfied by a gap-buffer implementation, with regexp2-backed forward
// and backward search across the buffer's internal gap.
package gapbuf

import "github.com/dlclark/regexp2"

// Buffer is the storage abstraction the Emacs buffer layer is built on.
// A gap buffer is the only implementation in this repository, but the
// interface exists so alternative storage strategies (e.g. a rope, or a
// plain slice for small scratch buffers) could be substituted.
type Buffer interface {
	Free() int
	Allocated() int
	Size() int
	Get(offset int) (byte, bool)
	Replace(offset, n int, replacement []byte) bool
	Erase(offset, n int) bool
	Insert(offset int, toInsert []byte) bool

	FindForward(re *regexp2.Regexp, start, end int) (int, int, bool)
	FindBackward(re *regexp2.Regexp, start, end int) (int, int, bool)
}
