// Package gui runs the gallery in a desktop window.
package gui

import (
	"errors"
	"math"
)

var ErrNoWindow = errors.New("gui: built without cgo, no window support")

const (
	winW = 1280
	winH = 720
	// hudH reserves the top rows for the header line.
	hudH   = 40
	margin = 24
)

// Placement positions a tab surface inside the window.
type Placement struct {
	X, Y  float64
	Scale float64
}

// PlaceTab puts a tw x th tab surface in the right-hand panel, scaled to
// fit at most 40% of the window width and never above 2x.
func PlaceTab(ww, wh, tw, th float64) Placement {
	if tw <= 0 || th <= 0 {
		return Placement{Scale: 1}
	}
	scale := math.Min(ww*0.4/tw, (wh-hudH-margin)/th)
	scale = math.Min(scale, 2)
	if scale <= 0 {
		scale = 1
	}
	return Placement{
		X:     ww - tw*scale - margin,
		Y:     hudH,
		Scale: scale,
	}
}

// Contains reports whether window point (x, y) lies on a tw x th surface
// placed at p.
func (p Placement) Contains(x, y, tw, th float64) bool {
	return x >= p.X && y >= p.Y && x < p.X+tw*p.Scale && y < p.Y+th*p.Scale
}

// ToLogical maps a window point onto the placed surface.
func (p Placement) ToLogical(x, y float64) (float64, float64) {
	return (x - p.X) / p.Scale, (y - p.Y) / p.Scale
}

// premultiply converts non-premultiplied RGBA bytes into dst, which must
// be at least as long as src.
func premultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		a := uint32(src[i+3])
		dst[i] = uint8(uint32(src[i]) * a / 255)
		dst[i+1] = uint8(uint32(src[i+1]) * a / 255)
		dst[i+2] = uint8(uint32(src[i+2]) * a / 255)
		dst[i+3] = src[i+3]
	}
}
