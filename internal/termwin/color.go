package termwin

import "github.com/gdamore/tcell/v2"

// cgaColors is the 8-hue CGA/EGA palette selected by bits 0..2 of a
// color value; bit 3 selects the bright variant.
var cgaColors = [8]tcell.Color{
	tcell.ColorBlack,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorTeal,
	tcell.ColorMaroon,
	tcell.ColorPurple,
	tcell.ColorOlive,
	tcell.ColorSilver,
}

var cgaColorsBright = [8]tcell.Color{
	tcell.ColorGray,
	tcell.ColorBlue,
	tcell.ColorLime,
	tcell.ColorAqua,
	tcell.ColorRed,
	tcell.ColorFuchsia,
	tcell.ColorYellow,
	tcell.ColorWhite,
}

// toTcellColor maps a 0..15 color value to a tcell.Color per the CGA
// hue-in-bits-0-2, bright-in-bit-3 model.
func toTcellColor(c int) tcell.Color {
	c &= 0xf
	hue := c & 0x7
	if c&0x8 != 0 {
		return cgaColorsBright[hue]
	}
	return cgaColors[hue]
}
