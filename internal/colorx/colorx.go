// Package colorx converts tenant branding colors between hex and HSL and
// picks a readable foreground color for a given background.
package colorx

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidHex = errors.New("colorx: invalid hex color")

type HSL struct {
	H float64 // 0..360
	S float64 // 0..100
	L float64 // 0..100
}

func parseHex(hex string) (r, g, b float64, err error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0, ErrInvalidHex
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, ErrInvalidHex
	}
	r = float64((v >> 16) & 0xFF)
	g = float64((v >> 8) & 0xFF)
	b = float64(v & 0xFF)
	return r, g, b, nil
}

// HexToHSL converts a 6-digit hex color (with or without leading #) to HSL.
func HexToHSL(hex string) (HSL, error) {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return HSL{}, err
	}
	r /= 255
	g /= 255
	b /= 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	var h, s float64
	if max == min {
		// achromatic
		h, s = 0, 0
	} else {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h *= 60
	}

	return HSL{
		H: math.Round(h),
		S: math.Round(s * 100),
		L: math.Round(l * 100),
	}, nil
}

// ContrastColor returns "black" or "white", whichever reads better on the
// given background color. Malformed input gets the default-theme foreground.
func ContrastColor(hex string) string {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return "black"
	}
	luminance := (0.299*r + 0.587*g + 0.114*b) / 255
	if luminance > 0.5 {
		return "black"
	}
	return "white"
}

// CSSValue renders an HSL triple the way CSS custom properties expect it.
func (c HSL) CSSValue() string {
	return strconv.FormatFloat(c.H, 'f', -1, 64) + " " +
		strconv.FormatFloat(c.S, 'f', -1, 64) + "% " +
		strconv.FormatFloat(c.L, 'f', -1, 64) + "%"
}
