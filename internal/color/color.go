// Package color assigns display colors to players. Colors are decorative
// only; they are stored so a player keeps the same color between visits.
package color

import (
	"fmt"
	"math/rand"
)

// RandomDark returns a random dark hex color that stays readable as a text
// color on a light background.
func RandomDark() string {
	h := rand.Float64() * 360
	s := 0.4 + rand.Float64()*0.3
	l := 0.25 + rand.Float64()*0.2
	r, g, b := hslToRGB(h, s, l)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	c := (1 - abs(2*l-1)) * s
	hh := h / 60
	x := c * (1 - abs(mod2(hh)-1))
	var r, g, b float64
	switch {
	case hh < 1:
		r, g, b = c, x, 0
	case hh < 2:
		r, g, b = x, c, 0
	case hh < 3:
		r, g, b = 0, c, x
	case hh < 4:
		r, g, b = 0, x, c
	case hh < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func mod2(v float64) float64 {
	for v >= 2 {
		v -= 2
	}
	return v
}
