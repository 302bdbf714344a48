//go:build gui

package gui

import (
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"blink/overlay"
)

// Surface draws one projected frame as absolutely positioned canvas
// primitives. SetFrame is safe from any goroutine; Refresh must run on
// the Fyne thread.
type Surface struct {
	widget.BaseWidget
	mu    sync.Mutex
	frame overlay.Frame
}

func NewSurface() *Surface {
	s := &Surface{}
	s.ExtendBaseWidget(s)
	return s
}

func (s *Surface) SetFrame(f overlay.Frame) {
	s.mu.Lock()
	s.frame = f
	s.mu.Unlock()
}

func (s *Surface) snapshot() overlay.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

func (s *Surface) MinSize() fyne.Size {
	f := s.snapshot()
	return fyne.NewSize(float32(f.Monitor.Width), float32(f.Monitor.Height))
}

func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{surface: s}
}

type surfaceRenderer struct {
	surface *Surface
	objects []fyne.CanvasObject
}

// Layout is a no-op: items carry absolute positions set in Refresh.
func (r *surfaceRenderer) Layout(fyne.Size) {}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return r.surface.MinSize()
}

// Refresh rebuilds the object list from the current frame. Item counts
// are tiny (a handful of rects and circles), so rebuilding beats
// diffing.
func (r *surfaceRenderer) Refresh() {
	frame := r.surface.snapshot()

	objs := make([]fyne.CanvasObject, 0, len(frame.Items))
	for _, item := range frame.Items {
		fill := itemColor(item)
		var obj fyne.CanvasObject
		if item.Shape == overlay.ShapeCircle {
			obj = canvas.NewCircle(fill)
		} else {
			obj = canvas.NewRectangle(fill)
		}
		// Frame coordinates are virtual-desktop; the window is placed at
		// the monitor origin.
		obj.Move(fyne.NewPos(
			float32(item.Rect.X-frame.Monitor.X),
			float32(item.Rect.Y-frame.Monitor.Y),
		))
		obj.Resize(fyne.NewSize(float32(item.Rect.W), float32(item.Rect.H)))
		objs = append(objs, obj)
	}
	r.objects = objs
	canvas.Refresh(r.surface)
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *surfaceRenderer) Destroy() {}

// itemColor folds the animated opacity into the alpha channel.
func itemColor(item overlay.Item) color.Color {
	op := item.Opacity
	if op < 0 {
		op = 0
	}
	if op > 1 {
		op = 1
	}
	return color.NRGBA{
		R: item.Color.R,
		G: item.Color.G,
		B: item.Color.B,
		A: uint8(math.Round(float64(item.Color.A) * op)),
	}
}
