package overlay

import (
	"math"
	"sync"

	"blink/engine"
)

// Layout is the static placement configuration of the overlay.
type Layout struct {
	RecCorner Corner
	BufCorner Corner

	Size int // icon diameter in logical pixels
	PadX int // horizontal inset from the screen edge
	PadY int // vertical inset from the screen edge

	BorderWidth int

	BgOpacity     float64 // contrast disc behind each icon, 0 disables
	BgSizePercent float64 // disc diameter as a multiple of Size, e.g. 3.0
	MaxOpacity    float64 // the icons' opacity ceiling, for normalizing fades
}

// Shape selects how an item is drawn.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// Item is one drawable element of a frame, bottom-up paint order.
type Item struct {
	Kind    engine.Kind
	Shape   Shape
	Rect    Rect
	Color   engine.RGBA
	Opacity float64
}

// Frame is everything to draw on one monitor.
type Frame struct {
	Monitor Monitor
	Items   []Item
}

// Manager projects engine snapshots onto per-monitor frames. Layout is
// fixed at construction; the monitor list may change at runtime when
// displays are plugged or unplugged.
type Manager struct {
	mu       sync.RWMutex
	layout   Layout
	monitors []Monitor
}

func NewManager(layout Layout, monitors []Monitor) *Manager {
	return &Manager{layout: layout, monitors: monitors}
}

func (m *Manager) SetMonitors(monitors []Monitor) {
	m.mu.Lock()
	m.monitors = monitors
	m.mu.Unlock()
}

// Project turns one engine snapshot into the frames to draw. Paint
// order within a frame is borders, flash, then icons with their
// contrast discs, so the icons stay readable on top of everything.
func (m *Manager) Project(snaps []engine.Snapshot) []Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byKind := make(map[engine.Kind]engine.Snapshot, len(snaps))
	for _, s := range snaps {
		byKind[s.Kind] = s
	}

	frames := make([]Frame, 0, len(m.monitors))
	for _, mon := range m.monitors {
		frames = append(frames, Frame{Monitor: mon, Items: m.project(mon, byKind)})
	}
	return frames
}

func (m *Manager) project(mon Monitor, byKind map[engine.Kind]engine.Snapshot) []Item {
	scale := mon.Scale
	if scale <= 0 {
		scale = 1
	}
	size := scalePx(m.layout.Size, scale)
	padX := scalePx(m.layout.PadX, scale)
	padY := scalePx(m.layout.PadY, scale)
	borderW := scalePx(m.layout.BorderWidth, scale)

	var items []Item

	for _, k := range []engine.Kind{engine.RecordingBorder, engine.ReplayBorder} {
		s, ok := byKind[k]
		if !ok || !s.Visible || s.Opacity <= 0 {
			continue
		}
		for _, r := range BorderRects(mon, borderW) {
			items = append(items, Item{Kind: k, Shape: ShapeRect, Rect: r, Color: s.Color, Opacity: s.Opacity})
		}
	}

	if s, ok := byKind[engine.FlashOverlay]; ok && s.Visible && s.Opacity > 0 {
		items = append(items, Item{
			Kind:    engine.FlashOverlay,
			Shape:   ShapeRect,
			Rect:    FullRect(mon),
			Color:   s.Color,
			Opacity: s.Opacity,
		})
	}

	recVisible := false
	if s, ok := byKind[engine.RecordingIcon]; ok && s.Visible && s.Opacity > 0 {
		if r, ok := IconRect(mon, m.layout.RecCorner, size, padX, padY, 0); ok {
			recVisible = true
			items = m.appendIcon(items, engine.RecordingIcon, s, r)
		}
	}

	if s, ok := byKind[engine.ReplayIcon]; ok && s.Visible && s.Opacity > 0 {
		// Shift into the second slot when both icons share a corner.
		slot := 0
		if recVisible && m.layout.BufCorner == m.layout.RecCorner {
			slot = 1
		}
		if r, ok := IconRect(mon, m.layout.BufCorner, size, padX, padY, slot); ok {
			items = m.appendIcon(items, engine.ReplayIcon, s, r)
		}
	}

	return items
}

// appendIcon adds the icon and, when configured, the black contrast
// disc behind it. The disc fades with the icon so it never outlines an
// invisible dot.
func (m *Manager) appendIcon(items []Item, k engine.Kind, s engine.Snapshot, r Rect) []Item {
	if m.layout.BgOpacity > 0 && m.layout.BgSizePercent > 0 {
		bgSize := int(math.Round(float64(r.W) * m.layout.BgSizePercent))
		bg := Rect{
			X: r.X + (r.W-bgSize)/2,
			Y: r.Y + (r.H-bgSize)/2,
			W: bgSize,
			H: bgSize,
		}
		progress := 1.0
		if m.layout.MaxOpacity > 0 {
			progress = s.Opacity / m.layout.MaxOpacity
			if progress > 1 {
				progress = 1
			}
		}
		items = append(items, Item{
			Kind:    k,
			Shape:   ShapeCircle,
			Rect:    bg,
			Color:   engine.RGBA{A: 0xFF},
			Opacity: m.layout.BgOpacity * progress,
		})
	}
	return append(items, Item{Kind: k, Shape: ShapeCircle, Rect: r, Color: s.Color, Opacity: s.Opacity})
}

func scalePx(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}
