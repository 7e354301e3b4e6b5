package embuf_test

import (
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msandiford/freemint/internal/embuf"
	"github.com/msandiford/freemint/internal/gapbuf"
)

func newBuf() *embuf.EmacsBuffer {
	return embuf.New(1, gapbuf.WithDefaultSize())
}

func TestInsertStringAdvancesPointAndTracksLines(t *testing.T) {
	b := newBuf()
	assert.True(t, b.InsertString([]byte("ab\ncd")))
	assert.Equal(t, 5, b.Point())
	assert.Equal(t, 1, b.GetPointLine())
	assert.Equal(t, 1, b.CountNewlinesTotal())
}

func TestInsertStringFailsWhenWriteProtected(t *testing.T) {
	b := newBuf()
	b.SetWriteProtected(true)
	assert.False(t, b.InsertString([]byte("x")))
	assert.Equal(t, 0, b.Size())
}

func TestSymbolicMarksResolveRelativeToPoint(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("hello world"))
	assert.Equal(t, 0, b.GetMarkPosition('['))
	assert.Equal(t, b.Size(), b.GetMarkPosition(']'))
	assert.Equal(t, b.Point()-1, b.GetMarkPosition('<'))
	assert.Equal(t, b.Point(), b.GetMarkPosition('>')) // clamped at end
}

func TestPermanentMarkStorageRoundTrip(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("hello"))
	b.SetMark('@', 2)
	assert.Equal(t, 2, b.GetMarkPosition('@'))
}

func TestUnallocatedMarkIsIgnored(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("hello"))
	b.SetMark('B', 2) // 'B' needs pm to raise permMarkCount above 2 first
	assert.Equal(t, b.Point(), b.GetMarkPosition('B'))
}

func TestPushAndPopTempMarks(t *testing.T) {
	b := newBuf()
	assert.True(t, b.PushTempMarks(3))
	assert.True(t, b.PushTempMarks(0))
	assert.False(t, b.PushTempMarks(0)) // nothing left to pop
}

func TestPushTempMarksOverflowFails(t *testing.T) {
	b := newBuf()
	assert.False(t, b.PushTempMarks(100))
}

func TestDeleteToMarksErasesRange(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("hello world"))
	b.SetMark('@', 0)
	assert.True(t, b.DeleteToMarks([]byte{'@'}))
	assert.Equal(t, 0, b.Size())
	assert.Equal(t, 0, b.Point())
}

func TestDeleteToMarksFailsWhenWriteProtected(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("hello"))
	b.SetWriteProtected(true)
	assert.False(t, b.DeleteToMarks([]byte{'['}))
}

func TestReadToMarkIsOrderIndependent(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("hello world"))
	b.SetMark('@', 0)
	assert.Equal(t, "hello world", string(b.ReadToMark('@')))
}

func TestCharsToMarkIsSigned(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("hello"))
	assert.Equal(t, -5, b.CharsToMark('['))
	assert.Equal(t, 0, b.CharsToMark(']'))
}

func TestMarkBeforePoint(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("hello"))
	assert.True(t, b.MarkBeforePoint('['))
	assert.False(t, b.MarkBeforePoint(']'))
}

func TestTranslateMapsBytesInRange(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("abc"))
	assert.True(t, b.Translate('[', []byte("abcXYZ")))
	assert.Equal(t, "XYZ", string(b.ReadToMark('[')))
}

func TestFindBolAndFindEol(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("line1\nline2\nline3"))
	mid := 8 // inside "line2"
	assert.Equal(t, 6, b.FindBol(mid))
	assert.Equal(t, 11, b.FindEol(mid))
}

func TestForwardAndBackwardLines(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("line1\nline2\nline3"))
	start := b.ForwardLines(0, 1)
	assert.Equal(t, 6, start)
	back := b.BackwardLines(start, 1)
	assert.Equal(t, 0, back)
}

func TestSetPointLineMovesToLineStart(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("line1\nline2\nline3"))
	b.SetPointToMark('[') // reset point/pointLine to the buffer start first
	b.SetPointLine(2)
	assert.Equal(t, 2, b.GetPointLine())
	assert.Equal(t, 12, b.Point())
}

func TestGetAndSetColumn(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("line1"))
	b.SetColumn(3)
	assert.Equal(t, 3, b.GetColumn())
}

func TestForcePointInWindowScrollsTopline(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("a\nb\nc\nd\ne\nf\ng\nh\n"))
	b.ForcePointInWindow(5, 20, 80)
	assert.Greater(t, b.Topline(), 0)
}

func TestFindForwardAndBackward(t *testing.T) {
	b := newBuf()
	b.InsertString([]byte("hello world hello"))
	re, err := regexp2.Compile("hello", regexp2.None)
	require.NoError(t, err)

	start, end, ok := b.FindForward(re, 0, b.Size())
	assert.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	start, end, ok = b.FindBackward(re, 0, b.Size())
	assert.True(t, ok)
	assert.Equal(t, 12, start)
	assert.Equal(t, 17, end)
}
