package overlay

import (
	"fmt"
	"strings"
)

// Corner is a screen-corner anchor for an icon. CornerOff disables the
// icon entirely while leaving the rest of the overlay active.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
	CornerOff
)

func ParseCorner(s string) (Corner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top-left", "topleft":
		return TopLeft, nil
	case "top-right", "topright":
		return TopRight, nil
	case "bottom-left", "bottomleft":
		return BottomLeft, nil
	case "bottom-right", "bottomright":
		return BottomRight, nil
	case "off", "none", "":
		return CornerOff, nil
	}
	return CornerOff, fmt.Errorf("unknown corner %q", s)
}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return "off"
}

// Monitor describes one output in virtual-desktop coordinates. Scale is
// the content scale factor (1.0 on standard-DPI displays).
type Monitor struct {
	ID     int
	X, Y   int
	Width  int
	Height int
	Scale  float64
}

// Rect is a pixel rectangle in virtual-desktop coordinates.
type Rect struct {
	X, Y, W, H int
}

// IconRect places an icon of the given size in a corner, inset by the
// paddings. Slot shifts the icon horizontally toward the screen center
// so two icons anchored to the same corner sit side by side instead of
// overlapping. Returns false for CornerOff.
func IconRect(m Monitor, c Corner, size, padX, padY, slot int) (Rect, bool) {
	if c == CornerOff {
		return Rect{}, false
	}
	shift := slot * (size + padX)
	var x, y int
	switch c {
	case TopLeft, BottomLeft:
		x = m.X + padX + shift
	default:
		x = m.X + m.Width - size - padX - shift
	}
	switch c {
	case TopLeft, TopRight:
		y = m.Y + padY
	default:
		y = m.Y + m.Height - size - padY
	}
	return Rect{X: x, Y: y, W: size, H: size}, true
}

// BorderRects returns the four edge strips of a frame of the given
// width drawn just inside the monitor bounds, ordered top, bottom,
// left, right. The side strips are shortened so the corners are not
// painted twice.
func BorderRects(m Monitor, width int) [4]Rect {
	return [4]Rect{
		{X: m.X, Y: m.Y, W: m.Width, H: width},
		{X: m.X, Y: m.Y + m.Height - width, W: m.Width, H: width},
		{X: m.X, Y: m.Y + width, W: width, H: m.Height - 2*width},
		{X: m.X + m.Width - width, Y: m.Y + width, W: width, H: m.Height - 2*width},
	}
}

// FullRect covers the whole monitor. Used by the flash overlay.
func FullRect(m Monitor) Rect {
	return Rect{X: m.X, Y: m.Y, W: m.Width, H: m.Height}
}
