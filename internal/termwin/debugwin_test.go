package termwin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msandiford/freemint/internal/buffers"
	"github.com/msandiford/freemint/internal/gapbuf"
	"github.com/msandiford/freemint/internal/termwin"
)

func TestGetInputDrainsScriptedKeysThenTimesOut(t *testing.T) {
	w := termwin.NewDebugWindow(80, 24, []string{"a", "b"})
	assert.True(t, w.KeyWaiting())
	assert.Equal(t, "a", w.GetInput(0))
	assert.Equal(t, "b", w.GetInput(0))
	assert.False(t, w.KeyWaiting())
	assert.Equal(t, "Timeout", w.GetInput(0))
}

func TestRedisplayForcesPointInWindowAndCounts(t *testing.T) {
	w := termwin.NewDebugWindow(80, 5, nil)
	reg := buffers.NewRegistry(func() gapbuf.Buffer { return gapbuf.WithDefaultSize() })
	buf := reg.Current()
	buf.InsertString([]byte("a\nb\nc\nd\ne\nf\ng\nh\n"))

	w.Redisplay(buf, false)
	assert.Equal(t, 1, w.RedisplayCount)
	assert.Greater(t, buf.Topline(), 0)

	w.Redisplay(buf, true)
	assert.Equal(t, 2, w.RedisplayCount)
}

func TestColourGettersAndSetters(t *testing.T) {
	w := termwin.NewDebugWindow(80, 24, nil)
	w.SetForeColour(3)
	w.SetBackColour(5)
	w.SetCtrlForeColour(6)
	assert.Equal(t, 3, w.GetForeColour())
	assert.Equal(t, 5, w.GetBackColour())
	assert.Equal(t, 6, w.GetCtrlForeColour())
}

func TestWhitespaceDisplayRoundTrip(t *testing.T) {
	w := termwin.NewDebugWindow(80, 24, nil)
	assert.False(t, w.GetWhitespaceDisplay())
	w.SetWhitespaceDisplay(true)
	assert.True(t, w.GetWhitespaceDisplay())
	w.SetWhitespaceColour(9)
	assert.Equal(t, 9, w.GetWhitespaceColour())
}

func TestScrollPercentRoundTrip(t *testing.T) {
	w := termwin.NewDebugWindow(80, 24, nil)
	assert.Equal(t, 20, w.GetTopScrollPercent())
	assert.Equal(t, 80, w.GetBotScrollPercent())
	w.SetTopScrollPercent(10)
	w.SetBotScrollPercent(90)
	assert.Equal(t, 10, w.GetTopScrollPercent())
	assert.Equal(t, 90, w.GetBotScrollPercent())
}

func TestOverwriteAndAnnounceRecordCalls(t *testing.T) {
	w := termwin.NewDebugWindow(80, 24, nil)
	w.Overwrite([]byte("hi"))
	w.Announce([]byte("left"), []byte("right"))
	w.AnnounceWin([]byte("l2"), []byte("r2"))
	w.AudibleBell(440, 10)
	w.VisualBell(10)

	assert.Equal(t, []string{"hi"}, w.Overwrites)
	assert.Equal(t, [][2]string{{"left", "right"}}, w.Announcements)
	assert.Equal(t, [][2]string{{"l2", "r2"}}, w.WinAnnouncements)
	assert.Equal(t, []string{"audible", "visual"}, w.Bells)
}
