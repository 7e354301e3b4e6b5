package gapbuf

import (
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
)

func TestBasicConstruction(t *testing.T) {
	g := WithDefaultSize()
	assert.Equal(t, BlockSize, g.Allocated())
	assert.Equal(t, BlockSize, g.Free())
	assert.Equal(t, 0, g.Size())
}

func TestBasicInsert(t *testing.T) {
	g := WithDefaultSize()
	assert.True(t, g.Insert(0, []byte("0123456789")))
	assert.Equal(t, BlockSize, g.Allocated())
	assert.Equal(t, BlockSize-10, g.Free())
	assert.Equal(t, 10, g.Size())
}

func content(g *GapBuffer) string {
	out := make([]byte, g.Size())
	for i := range out {
		out[i], _ = g.Get(i)
	}
	return string(out)
}

func TestBasicErase(t *testing.T) {
	g := WithDefaultSize()
	g.Insert(0, []byte("0123456789"))
	assert.True(t, g.Erase(0, 1))
	assert.Equal(t, BlockSize, g.Allocated())
	assert.Equal(t, BlockSize-9, g.Free())
	assert.Equal(t, 9, g.Size())
	assert.Equal(t, "123456789", content(g))
}

func TestEraseNonexistentReturnsFalse(t *testing.T) {
	g := WithDefaultSize()
	assert.False(t, g.Erase(0, 1))
}

func TestInsertAtEnd(t *testing.T) {
	g := WithDefaultSize()
	g.Insert(0, []byte("0123456789"))
	assert.True(t, g.Insert(10, []byte("ABCDEFGHIJ")))
	assert.Equal(t, "0123456789ABCDEFGHIJ", content(g))
}

func TestInsertAtBegin(t *testing.T) {
	g := WithDefaultSize()
	g.Insert(0, []byte("0123456789"))
	assert.True(t, g.Insert(0, []byte("ABCDEFGHIJ")))
	assert.Equal(t, "ABCDEFGHIJ0123456789", content(g))
}

func TestInsertInMiddle(t *testing.T) {
	g := WithDefaultSize()
	g.Insert(0, []byte("0123456789"))
	assert.True(t, g.Insert(5, []byte("ABCDEFGHIJ")))
	assert.Equal(t, "01234ABCDEFGHIJ56789", content(g))
}

func TestInsertOffEnd(t *testing.T) {
	g := New(10)
	g.Insert(0, []byte("0123456789"))
	assert.False(t, g.Insert(20, []byte("X")))
	assert.Equal(t, "0123456789", content(g))
}

func TestInsertResize(t *testing.T) {
	g := New(5)
	assert.True(t, g.Insert(0, []byte("0123456789")))
	assert.Equal(t, 65536+5, g.Allocated())
}

func TestReplaceBasic(t *testing.T) {
	g := WithDefaultSize()
	g.Insert(0, []byte("0123456789"))
	assert.True(t, g.Replace(0, 5, []byte("ABCDE")))
	assert.Equal(t, "ABCDE56789", content(g))
}

func TestReplaceShorter(t *testing.T) {
	g := WithDefaultSize()
	g.Insert(0, []byte("0123456789"))
	assert.True(t, g.Replace(0, 5, []byte("AB")))
	assert.Equal(t, "AB56789", content(g))
}

func TestReplaceLonger(t *testing.T) {
	g := WithDefaultSize()
	g.Insert(0, []byte("0123456789"))
	assert.True(t, g.Replace(0, 5, []byte("ABCDEFGH")))
	assert.Equal(t, "ABCDEFGH56789", content(g))
}

func TestReplaceOffEndFails(t *testing.T) {
	g := WithDefaultSize()
	assert.False(t, g.Replace(5, 5, []byte("X")))
}

func buildSearchBuffer() *GapBuffer {
	g := WithDefaultSize()
	g.Insert(0, []byte("01234567890123456789"))
	return g
}

func TestFindForwardBasic(t *testing.T) {
	g := buildSearchBuffer()
	re := regexp2.MustCompile("345", 0)
	s, e, ok := g.FindForward(re, 0, g.Size())
	assert.True(t, ok)
	assert.Equal(t, 3, s)
	assert.Equal(t, 6, e)
}

func TestFindBackwardBasic(t *testing.T) {
	g := buildSearchBuffer()
	re := regexp2.MustCompile("345", 0)
	s, e, ok := g.FindBackward(re, 0, g.Size())
	assert.True(t, ok)
	assert.Equal(t, 13, s)
	assert.Equal(t, 16, e)
}

func TestFindForwardNoMatch(t *testing.T) {
	g := buildSearchBuffer()
	re := regexp2.MustCompile("XYZ", 0)
	_, _, ok := g.FindForward(re, 0, g.Size())
	assert.False(t, ok)
}

func TestFindBackwardNoMatch(t *testing.T) {
	g := buildSearchBuffer()
	re := regexp2.MustCompile("XYZ", 0)
	_, _, ok := g.FindBackward(re, 0, g.Size())
	assert.False(t, ok)
}

func TestFindForwardPartialRange(t *testing.T) {
	g := buildSearchBuffer()
	re := regexp2.MustCompile("345", 0)
	s, e, ok := g.FindForward(re, 5, g.Size())
	assert.True(t, ok)
	assert.Equal(t, 13, s)
	assert.Equal(t, 16, e)
}

func TestFindBackwardPartialRange(t *testing.T) {
	g := buildSearchBuffer()
	re := regexp2.MustCompile("345", 0)
	s, e, ok := g.FindBackward(re, 0, 15)
	assert.True(t, ok)
	assert.Equal(t, 3, s)
	assert.Equal(t, 6, e)
}

func TestFindForwardEmptyRange(t *testing.T) {
	g := buildSearchBuffer()
	re := regexp2.MustCompile("345", 0)
	_, _, ok := g.FindForward(re, 5, 5)
	assert.False(t, ok)
}

func TestFindBackwardEmptyRange(t *testing.T) {
	g := buildSearchBuffer()
	re := regexp2.MustCompile("345", 0)
	_, _, ok := g.FindBackward(re, 5, 5)
	assert.False(t, ok)
}

func TestFindAcrossGap(t *testing.T) {
	g := WithDefaultSize()
	g.Insert(0, []byte("0123456789"))
	g.Insert(5, []byte("ABCDEFGHIJ"))
	re := regexp2.MustCompile("34AB", 0)

	s, e, ok := g.FindForward(re, 0, g.Size())
	assert.True(t, ok)
	assert.Equal(t, 3, s)
	assert.Equal(t, 7, e)

	s, e, ok = g.FindBackward(re, 0, g.Size())
	assert.True(t, ok)
	assert.Equal(t, 3, s)
	assert.Equal(t, 7, e)
}

func TestFindForwardBottomOnly(t *testing.T) {
	g := WithDefaultSize()
	g.Insert(0, []byte("0123456789"))
	g.Insert(0, []byte("A"))
	re := regexp2.MustCompile("89", 0)
	s, e, ok := g.FindForward(re, 1, g.Size())
	assert.True(t, ok)
	assert.Equal(t, 9, s)
	assert.Equal(t, 11, e)
}
