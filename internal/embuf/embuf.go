// Package embuf implements the Emacs-style buffer abstraction layered
// atop a gapbuf.Buffer: point, symbolic and stored marks, line/column
// bookkeeping, translation, deletion, and gap-spanning regex search.
package embuf

import (
	"github.com/dlclark/regexp2"

	"github.com/msandiford/freemint/internal/gapbuf"
)

const (
	maxMarks     = 50
	maxPermMarks = 27
)

// EmacsBuffer is a named, editable text buffer with point and marks.
type EmacsBuffer struct {
	buf gapbuf.Buffer

	wp       bool
	modified bool
	bufno    int

	point, topline   int
	leftcol, tabWidth int

	marks                          [maxMarks]int
	tempMarkBase, tempMarkLast     int
	permMarkCount                  int
	markStack                      [maxMarks]int
	marksSP                        int

	pointLine, toplineLine int
	countNewlines          int
}

// New returns an EmacsBuffer over buf, numbered bufno, with the
// distinguished starting mark configuration (slot 0 is a permanent
// mark) and an 8-column tab width.
func New(bufno int, buf gapbuf.Buffer) *EmacsBuffer {
	return &EmacsBuffer{
		buf:            buf,
		bufno:          bufno,
		tabWidth:       8,
		tempMarkBase:   1,
		tempMarkLast:   1,
		permMarkCount:  1,
	}
}

func (b *EmacsBuffer) IsWriteProtected() bool   { return b.wp }
func (b *EmacsBuffer) SetWriteProtected(v bool) { b.wp = v }
func (b *EmacsBuffer) IsModified() bool         { return b.modified }
func (b *EmacsBuffer) SetModified(v bool)       { b.modified = v }
func (b *EmacsBuffer) GetBufNumber() int        { return b.bufno }
func (b *EmacsBuffer) Size() int                { return b.buf.Size() }
func (b *EmacsBuffer) Point() int               { return b.point }
func (b *EmacsBuffer) Topline() int             { return b.topline }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func countNewlinesIn(b *EmacsBuffer, lo, hi int) int {
	n := 0
	for off := lo; off < hi; off++ {
		if ch, ok := b.buf.Get(off); ok && ch == '\n' {
			n++
		}
	}
	return n
}

// InsertString inserts s at point. Fails if the buffer is write
// protected or the underlying Insert fails.
func (b *EmacsBuffer) InsertString(s []byte) bool {
	if b.wp {
		return false
	}
	if !b.buf.Insert(b.point, s) {
		return false
	}
	b.adjustMarksIns(b.point, len(s))
	nl := 0
	for _, ch := range s {
		if ch == '\n' {
			nl++
		}
	}
	b.point += len(s)
	b.pointLine += nl
	b.countNewlines += nl
	b.modified = true
	return true
}

// adjustMarksIns shifts every mark and the topline that sits strictly
// after at forward by delta bytes.
func (b *EmacsBuffer) adjustMarksIns(at, delta int) {
	for i := range b.marks {
		if b.marks[i] > at {
			b.marks[i] += delta
		}
	}
	if b.topline > at {
		b.topline += delta
	}
}

// adjustMarksDel shifts every mark and the topline that sits strictly
// after the deleted range back by its length, saturating at the start
// of the range.
func (b *EmacsBuffer) adjustMarksDel(lo, hi int) {
	delta := hi - lo
	for i := range b.marks {
		if b.marks[i] > lo {
			b.marks[i] -= delta
			if b.marks[i] < lo {
				b.marks[i] = lo
			}
		}
	}
	if b.topline > lo {
		b.topline -= delta
		if b.topline < lo {
			b.topline = lo
		}
	}
}

// --- Symbolic mark resolution ---

// isBlank reports whether ch is considered whitespace for -/+/{/ } mark
// resolution.
func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// GetMarkPosition resolves a symbolic or stored mark character relative
// to point.
func (b *EmacsBuffer) GetMarkPosition(ch byte) int {
	return b.GetMarkPositionFrom(ch, b.point)
}

// GetMarkPositionFrom resolves a symbolic or stored mark character
// relative to an explicit reference position. Unknown mark characters
// resolve to the reference position itself.
func (b *EmacsBuffer) GetMarkPositionFrom(ch byte, ref int) int {
	size := b.Size()
	switch {
	case ch == '.':
		return ref
	case ch == '[':
		return 0
	case ch == ']':
		return size
	case ch == '!':
		return b.topline
	case ch == '<':
		return clamp(ref-1, 0, size)
	case ch == '>':
		return clamp(ref+1, 0, size)
	case ch == '^':
		return b.FindBol(ref)
	case ch == '$':
		return b.FindEol(ref)
	case ch == '-':
		return b.FindPrevBlank(ref)
	case ch == '+':
		return b.FindNextBlank(ref)
	case ch == '{':
		return b.FindPrevNblank(ref)
	case ch == '}':
		return b.FindNextNblank(ref)
	case ch >= '0' && ch <= '9':
		idx := b.tempMarkBase + int(ch-'0')
		if idx < b.tempMarkLast && idx < maxMarks {
			return b.marks[idx]
		}
		return ref
	case ch >= '@' && ch <= 'Z':
		idx := int(ch - '@')
		if idx < b.permMarkCount {
			return b.marks[idx]
		}
		return ref
	default:
		return ref
	}
}

// SetMark stores value (clamped to the buffer's size) into the
// register addressed by a temporary ('0'..'9') or permanent ('@'..'Z')
// mark character. Symbolic marks are not storage locations and are
// silently ignored.
func (b *EmacsBuffer) SetMark(ch byte, value int) {
	value = clamp(value, 0, b.Size())
	switch {
	case ch >= '0' && ch <= '9':
		idx := b.tempMarkBase + int(ch-'0')
		if idx < b.tempMarkLast && idx < maxMarks {
			b.marks[idx] = value
		}
	case ch >= '@' && ch <= 'Z':
		idx := int(ch - '@')
		if idx < b.permMarkCount {
			b.marks[idx] = value
		}
	}
}

// SetMarkPosition is an alias for SetMark.
func (b *EmacsBuffer) SetMarkPosition(ch byte, value int) { b.SetMark(ch, value) }

// --- Mark stack ---

// PushTempMarks pushes n new temporary mark slots (n>0), pops the most
// recent push (n==0), or creates a permanent mark set of size |n|
// (n<0). Returns false on overflow.
func (b *EmacsBuffer) PushTempMarks(n int) bool {
	switch {
	case n > 0:
		if b.tempMarkLast+n > maxMarks {
			return false
		}
		if b.marksSP >= maxMarks {
			return false
		}
		b.markStack[b.marksSP] = b.tempMarkBase
		b.marksSP++
		b.tempMarkBase = b.tempMarkLast
		b.tempMarkLast = b.tempMarkBase + n
		for i := b.tempMarkBase; i < b.tempMarkLast; i++ {
			b.marks[i] = b.point
		}
		return true
	case n == 0:
		return b.popTempMarks()
	default:
		count := -n
		if count > maxPermMarks {
			return false
		}
		b.permMarkCount = count
		b.tempMarkBase = count
		b.tempMarkLast = count
		b.marksSP = 0
		return true
	}
}

func (b *EmacsBuffer) popTempMarks() bool {
	if b.marksSP == 0 {
		return false
	}
	b.marksSP--
	b.tempMarkLast = b.tempMarkBase
	b.tempMarkBase = b.markStack[b.marksSP]
	return true
}

// --- Deletion ---

// DeleteToMarks erases text between point and each mark character in
// marks, in order. Returns false if write protected.
func (b *EmacsBuffer) DeleteToMarks(marks []byte) bool {
	if b.wp {
		return false
	}
	for _, ch := range marks {
		if !b.deleteToMark(ch) {
			return false
		}
	}
	return true
}

func (b *EmacsBuffer) deleteToMark(ch byte) bool {
	m := b.GetMarkPosition(ch)
	lo, hi := m, b.point
	if lo > hi {
		lo, hi = hi, lo
	}
	nl := countNewlinesIn(b, lo, hi)
	if !b.buf.Erase(lo, hi-lo) {
		return false
	}
	b.adjustMarksDel(lo, hi)
	if m < b.point {
		b.pointLine -= nl
	}
	b.countNewlines -= nl
	b.point = lo
	b.modified = true
	return true
}

// ReadToMark returns the buffer content between point and the resolved
// mark, in forward order regardless of which came first.
func (b *EmacsBuffer) ReadToMark(ch byte) []byte {
	return b.ReadToMarkFrom(ch, b.point)
}

// ReadToMarkFrom returns the buffer content between ref and the mark
// resolved relative to ref.
func (b *EmacsBuffer) ReadToMarkFrom(ch byte, ref int) []byte {
	m := b.GetMarkPositionFrom(ch, ref)
	lo, hi := ref, m
	if lo > hi {
		lo, hi = hi, lo
	}
	return b.Read(lo, hi)
}

// Read returns the literal buffer content in [lo,hi).
func (b *EmacsBuffer) Read(lo, hi int) []byte {
	out := make([]byte, 0, hi-lo)
	for off := lo; off < hi; off++ {
		if ch, ok := b.buf.Get(off); ok {
			out = append(out, ch)
		}
	}
	return out
}

// CharsToMark returns the signed character distance from point
// to the resolved mark (positive if the mark is after point).
func (b *EmacsBuffer) CharsToMark(ch byte) int {
	return b.GetMarkPosition(ch) - b.point
}

// MarkBeforePoint reports whether the resolved mark lies before point.
func (b *EmacsBuffer) MarkBeforePoint(ch byte) bool {
	return b.GetMarkPosition(ch) < b.point
}

// Translate replaces, byte for byte, every occurrence of trstr's first
// half with the corresponding byte of its second half, across
// [min(mark,point), max(mark,point)).
func (b *EmacsBuffer) Translate(ch byte, trstr []byte) bool {
	if b.wp {
		return false
	}
	half := len(trstr) / 2
	from, to := trstr[:half], trstr[half:]

	m := b.GetMarkPosition(ch)
	lo, hi := m, b.point
	if lo > hi {
		lo, hi = hi, lo
	}
	changed := false
	for off := lo; off < hi; off++ {
		cur, ok := b.buf.Get(off)
		if !ok {
			continue
		}
		for i, f := range from {
			if f == cur && i < len(to) {
				if to[i] != cur {
					b.buf.Replace(off, 1, []byte{to[i]})
					changed = true
				}
				break
			}
		}
	}
	if changed {
		b.modified = true
	}
	return true
}

// --- Line / column tracking ---

// CharWidth returns the display width of ch at display column col.
func (b *EmacsBuffer) CharWidth(col int, ch byte) int {
	switch {
	case ch >= 32 && ch <= 126:
		return 1
	case ch == '\t':
		return b.tabWidth - (col % b.tabWidth)
	default:
		return 2
	}
}

// CountColumns sums CharWidth over [from,to).
func (b *EmacsBuffer) CountColumns(from, to int) int {
	col := 0
	for off := from; off < to; off++ {
		if ch, ok := b.buf.Get(off); ok {
			col += b.CharWidth(col, ch)
		}
	}
	return col
}

// GetColumn returns the display column of point within its line.
func (b *EmacsBuffer) GetColumn() int {
	return b.CountColumns(b.FindBol(b.point), b.point)
}

// SetColumn moves point to the first byte on its current line whose
// accumulated display column reaches or exceeds col.
func (b *EmacsBuffer) SetColumn(col int) {
	bol := b.FindBol(b.point)
	eol := b.FindEol(b.point)
	acc := 0
	pos := bol
	for pos < eol && acc < col {
		ch, ok := b.buf.Get(pos)
		if !ok {
			break
		}
		acc += b.CharWidth(acc, ch)
		pos++
	}
	b.point = pos
	b.pointLine = b.countNewlinesUpTo(pos)
}

func (b *EmacsBuffer) countNewlinesUpTo(pos int) int {
	return countNewlinesIn(b, 0, pos)
}

func (b *EmacsBuffer) GetLeftColumn() int     { return b.leftcol }
func (b *EmacsBuffer) SetLeftColumn(col int)  { b.leftcol = col }
func (b *EmacsBuffer) GetTabWidth() int       { return b.tabWidth }
func (b *EmacsBuffer) SetTabWidth(w int)      { b.tabWidth = w }
func (b *EmacsBuffer) GetPointLine() int      { return b.pointLine }
func (b *EmacsBuffer) CountNewlinesTotal() int { return b.countNewlines }

// SetPointLine moves point to the start of line l, counted from the
// start of the buffer.
func (b *EmacsBuffer) SetPointLine(l int) {
	b.point = b.FindBol(b.point)
	if l > b.pointLine {
		b.point = b.ForwardLines(b.point, l-b.pointLine)
	} else if l < b.pointLine {
		b.point = b.BackwardLines(b.point, b.pointLine-l)
	}
	b.pointLine = b.countNewlinesUpTo(b.point)
}

// FindBol scans backward from pos for the start of its line.
func (b *EmacsBuffer) FindBol(pos int) int {
	for pos > 0 {
		if ch, ok := b.buf.Get(pos - 1); ok && ch == '\n' {
			break
		}
		pos--
	}
	return pos
}

// FindEol scans forward from pos for the end of its line (the
// position of the '\n', or Size() if none).
func (b *EmacsBuffer) FindEol(pos int) int {
	size := b.Size()
	for pos < size {
		if ch, ok := b.buf.Get(pos); ok && ch == '\n' {
			break
		}
		pos++
	}
	return pos
}

// FindPrevBlank scans backward from pos for the nearest whitespace byte.
func (b *EmacsBuffer) FindPrevBlank(pos int) int {
	for pos > 0 {
		if ch, ok := b.buf.Get(pos - 1); ok && isBlank(ch) {
			return pos - 1
		}
		pos--
	}
	return 0
}

// FindNextBlank scans forward from pos for the nearest whitespace byte.
func (b *EmacsBuffer) FindNextBlank(pos int) int {
	size := b.Size()
	for pos < size {
		if ch, ok := b.buf.Get(pos); ok && isBlank(ch) {
			return pos
		}
		pos++
	}
	return size
}

// FindPrevNblank scans backward from pos for the nearest non-blank byte.
func (b *EmacsBuffer) FindPrevNblank(pos int) int {
	for pos > 0 {
		if ch, ok := b.buf.Get(pos - 1); ok && !isBlank(ch) {
			return pos - 1
		}
		pos--
	}
	return 0
}

// FindNextNblank scans forward from pos for the nearest non-blank byte.
func (b *EmacsBuffer) FindNextNblank(pos int) int {
	size := b.Size()
	for pos < size {
		if ch, ok := b.buf.Get(pos); ok && !isBlank(ch) {
			return pos
		}
		pos++
	}
	return size
}

// ForwardLines walks n lines forward from pos: each step moves to the
// end of the current line then one byte further, clamping at Size().
func (b *EmacsBuffer) ForwardLines(pos, n int) int {
	for i := 0; i < n; i++ {
		pos = b.FindEol(pos)
		pos = clamp(pos+1, 0, b.Size())
	}
	return pos
}

// BackwardLines walks n lines backward from pos: each step moves one
// byte back then to the start of that line.
func (b *EmacsBuffer) BackwardLines(pos, n int) int {
	for i := 0; i < n; i++ {
		pos = clamp(pos-1, 0, b.Size())
		pos = b.FindBol(pos)
	}
	return pos
}

// SetPointToMark moves point to the resolved position of a single
// mark character.
func (b *EmacsBuffer) SetPointToMark(ch byte) {
	b.point = b.GetMarkPosition(ch)
	b.pointLine = b.countNewlinesUpTo(b.point)
}

// SetPointToMarks iterates marks byte by byte, resolving each in turn
// against the point left by the previous resolution (Open Question:
// "sp" with a multi-character argument).
func (b *EmacsBuffer) SetPointToMarks(marks []byte) {
	for _, ch := range marks {
		b.SetPointToMark(ch)
	}
}

func (b *EmacsBuffer) GetPointRow() int {
	return b.pointLine - b.toplineLine
}

func (b *EmacsBuffer) SetPointRow(row int) {
	b.SetPointLine(b.toplineLine + row)
}

// ForcePointInWindow adjusts topline so that point_line stays within
// the visible window of li rows, honoring top/bottom scroll percent
// thresholds tp/bp.
func (b *EmacsBuffer) ForcePointInWindow(li, tp, bp int) {
	if li <= 0 {
		return
	}
	tl := li * tp / 100
	bl := li * bp / 100

	switch {
	case b.pointLine <= tl:
		b.topline = 0
		b.toplineLine = 0
	case b.pointLine >= b.countNewlines-bl:
		b.topline = b.BackwardLines(b.Size(), li-1)
		b.toplineLine = b.countNewlinesUpTo(b.topline)
	case b.pointLine < b.toplineLine+tl:
		deficit := b.toplineLine + tl - b.pointLine
		b.topline = b.BackwardLines(b.topline, deficit)
		b.toplineLine = b.countNewlinesUpTo(b.topline)
	case b.pointLine >= b.toplineLine+(li-bl):
		excess := b.pointLine - (b.toplineLine + (li - bl)) + 1
		b.topline = b.ForwardLines(b.topline, excess)
		b.toplineLine = b.countNewlinesUpTo(b.topline)
	}
}

// --- Search ---

// FindForward delegates to the underlying Buffer's gap-aware search.
func (b *EmacsBuffer) FindForward(re *regexp2.Regexp, start, end int) (int, int, bool) {
	return b.buf.FindForward(re, start, end)
}

// FindBackward delegates to the underlying Buffer's gap-aware search.
func (b *EmacsBuffer) FindBackward(re *regexp2.Regexp, start, end int) (int, int, bool) {
	return b.buf.FindBackward(re, start, end)
}
