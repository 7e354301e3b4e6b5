package gapbuf

import "github.com/dlclark/regexp2"

// BlockSize is the fixed growth increment: capacity always grows in
// whole BlockSize chunks when an insert would not otherwise fit.
const BlockSize = 65536

// GapBuffer stores user text with a movable gap so edits near one
// location are cheap. lo/hi bound the gap: [0,lo) and [hi,len(buffer))
// hold user data contiguously; [lo,hi) is unused.
type GapBuffer struct {
	lo, hi int
	buffer []byte
}

// New returns a GapBuffer with the given total capacity, entirely gap.
func New(size int) *GapBuffer {
	return &GapBuffer{lo: 0, hi: size, buffer: make([]byte, size)}
}

// WithDefaultSize returns a GapBuffer with one BlockSize of capacity.
func WithDefaultSize() *GapBuffer {
	return New(BlockSize)
}

func (g *GapBuffer) Free() int      { return g.hi - g.lo }
func (g *GapBuffer) Allocated() int { return len(g.buffer) }
func (g *GapBuffer) Size() int      { return g.Allocated() - g.Free() }

// moveGapTo relocates the gap so it begins at offset (an external,
// gap-absent coordinate). Returns false if offset exceeds the current
// size.
func (g *GapBuffer) moveGapTo(offset int) bool {
	if offset == g.lo {
		return true
	}
	if offset > g.Size() {
		return false
	}
	if offset < g.lo {
		moveSize := g.lo - offset
		copy(g.buffer[g.hi-moveSize:g.hi], g.buffer[offset:offset+moveSize])
		g.lo -= moveSize
		g.hi -= moveSize
	} else {
		moveSize := offset - g.lo
		copy(g.buffer[g.lo:g.lo+moveSize], g.buffer[g.hi:g.hi+moveSize])
		g.lo += moveSize
		g.hi += moveSize
	}
	return true
}

// expand grows capacity by whole BlockSize chunks until at least
// extraSpace additional gap bytes are available.
func (g *GapBuffer) expand(extraSpace int) {
	additionalBlocks := (extraSpace + BlockSize) / BlockSize
	newSize := g.Allocated() + additionalBlocks*BlockSize
	if newSize == g.Allocated() {
		return
	}
	g.moveGapTo(g.Size())
	grown := make([]byte, newSize)
	copy(grown, g.buffer)
	g.buffer = grown
	g.hi = newSize
}

// Get returns the byte at offset, or false if offset is out of range.
func (g *GapBuffer) Get(offset int) (byte, bool) {
	if offset >= g.Size() {
		return 0, false
	}
	actual := offset
	if offset >= g.lo {
		actual = offset + g.Free()
	}
	return g.buffer[actual], true
}

// Insert splices toInsert into the buffer at offset. Fails iff offset
// exceeds the current size.
func (g *GapBuffer) Insert(offset int, toInsert []byte) bool {
	insertSize := len(toInsert)
	if g.Free() < insertSize {
		g.expand(insertSize - g.Free())
	}
	if g.Free() < insertSize || !g.moveGapTo(offset) {
		return false
	}
	copy(g.buffer[g.lo:g.lo+insertSize], toInsert)
	g.lo += insertSize
	return true
}

// Erase removes n bytes starting at offset. Fails iff the range runs
// past the end of the buffer.
func (g *GapBuffer) Erase(offset, n int) bool {
	if g.Size() < offset || g.Size()-offset < n {
		return false
	}
	if !g.moveGapTo(offset + n) {
		return false
	}
	g.lo -= n
	return true
}

// Replace erases n bytes at offset then inserts replacement there. Not
// atomic: if Insert fails after a successful Erase, the buffer is left
// in the post-erase state.
func (g *GapBuffer) Replace(offset, n int, replacement []byte) bool {
	return g.Erase(offset, n) && g.Insert(offset, replacement)
}

// slice returns the [start,end) range as a contiguous byte slice,
// borrowing directly from the backing array when the range lies
// entirely on one side of the gap, and copying only when the range
// straddles it.
func (g *GapBuffer) slice(start, end int) []byte {
	if start >= end {
		return nil
	}
	if end <= g.lo {
		return g.buffer[start:end]
	}
	if start >= g.lo {
		free := g.Free()
		return g.buffer[start+free : end+free]
	}
	out := make([]byte, 0, end-start)
	for off := start; off < end; off++ {
		b, ok := g.Get(off)
		if !ok {
			break
		}
		out = append(out, b)
	}
	return out
}

// FindForward returns the earliest match of re in [start,end), or
// (0,0,false).
func (g *GapBuffer) FindForward(re *regexp2.Regexp, start, end int) (int, int, bool) {
	s := g.slice(start, end)
	m, err := re.FindStringMatch(string(s))
	if err != nil || m == nil {
		return 0, 0, false
	}
	return start + m.Index, start + m.Index + m.Length, true
}

// FindBackward returns the rightmost match of re in [start,end), or
// (0,0,false).
func (g *GapBuffer) FindBackward(re *regexp2.Regexp, start, end int) (int, int, bool) {
	s := g.slice(start, end)
	str := string(s)
	m, err := re.FindStringMatch(str)
	if err != nil || m == nil {
		return 0, 0, false
	}
	last := m
	for {
		next, err := re.FindNextMatch(last)
		if err != nil || next == nil {
			break
		}
		last = next
	}
	return start + last.Index, start + last.Index + last.Length, true
}
