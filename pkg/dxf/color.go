package dxf

import "math"

// DefaultColor is used for ByLayer/ByBlock and unknown color indices
const DefaultColor uint32 = 0xffffff

var standardColors = map[int]uint32{
	1:   0xff0000,
	2:   0xffff00,
	3:   0x00ff00,
	4:   0x00ffff,
	5:   0x0000ff,
	6:   0xff00ff,
	7:   0xffffff,
	8:   0x808080,
	9:   0xc0c0c0,
	250: 0x333333,
	251: 0x505050,
	252: 0x696969,
	253: 0x828282,
	254: 0xbebebe,
	255: 0xffffff,
}

// brightness per ACI shade (index % 10)
var aciValues = [10]float64{255, 255, 204, 204, 153, 153, 127, 127, 76, 76}

// ACIToRGB converts an AutoCAD Color Index to a packed RGB value.
//
// Indices 1-9 and 250-255 use the fixed palette. Indices 10-249 are laid out
// as 24 hues in 15° steps with ten shades each; odd shades are the pastel
// variants. The result approximates the AutoCAD palette.
func ACIToRGB(index int) uint32 {
	if index < 0 {
		index = -index
	}
	if c, ok := standardColors[index]; ok {
		return c
	}
	if index < 10 || index > 249 {
		return DefaultColor
	}

	hue := float64(index/10-1) * 15
	shade := index % 10
	value := aciValues[shade]
	saturation := 1.0
	if shade%2 == 1 {
		saturation = 0.5
	}
	return hsvToRGB(hue, saturation, value)
}

func hsvToRGB(hue, saturation, value float64) uint32 {
	c := value * saturation
	h := hue / 60
	x := c * (1 - math.Abs(math.Mod(h, 2)-1))
	var r, g, b float64
	switch {
	case h < 1:
		r, g, b = c, x, 0
	case h < 2:
		r, g, b = x, c, 0
	case h < 3:
		r, g, b = 0, c, x
	case h < 4:
		r, g, b = 0, x, c
	case h < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := value - c
	return pack(r+m, g+m, b+m)
}

func pack(r, g, b float64) uint32 {
	return uint32(math.Round(r))<<16 | uint32(math.Round(g))<<8 | uint32(math.Round(b))
}
