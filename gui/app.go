//go:build gui

package gui

import (
	_ "embed"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/go-gl/glfw/v3.3/glfw"

	"blink/overlay"
)

//go:embed assets/tray.png
var trayIcon []byte

// App owns the Fyne application and the single overlay window. The
// window stays hidden while there is nothing to draw so the desktop is
// untouched when idle.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	surface *Surface
	onReady func(overlay.Monitor)
	monitor overlay.Monitor
	shown   bool
}

// NewApp creates the application shell. onReady runs on its own
// goroutine once the window exists, with the monitor the overlay
// covers.
func NewApp(onReady func(overlay.Monitor)) *App {
	return &App{onReady: onReady}
}

func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.blink.overlay")
	a.fyneApp.Settings().SetTheme(&overlayTheme{})

	if desk, ok := a.fyneApp.(desktop.App); ok {
		icon := fyne.NewStaticResource("tray.png", trayIcon)
		menu := fyne.NewMenu("blink",
			fyne.NewMenuItem("Quit", func() {
				a.fyneApp.Quit()
			}),
		)
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(icon)
	}

	a.monitor = PrimaryMonitor()

	// Frameless splash window so there is no border or title bar.
	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		a.window = drv.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow("blink")
	}

	a.surface = NewSurface()
	a.window.SetContent(a.surface)
	a.window.SetPadded(false)
	a.window.Resize(fyne.NewSize(float32(a.monitor.Width), float32(a.monitor.Height)))

	go a.onReady(a.monitor)

	// Event loop; the window stays hidden until the first visible frame.
	a.fyneApp.Run()
	return nil
}

// PrimaryMonitor reports the primary display's work area, falling back
// to 1080p when no display is available.
func PrimaryMonitor() overlay.Monitor {
	if m := glfw.GetPrimaryMonitor(); m != nil {
		x, y, w, h := m.GetWorkarea()
		scale := 1.0
		if sx, _ := m.GetContentScale(); sx > 0 {
			scale = float64(sx)
		}
		return overlay.Monitor{ID: 0, X: x, Y: y, Width: w, Height: h, Scale: scale}
	}
	return overlay.Monitor{ID: 0, Width: 1920, Height: 1080, Scale: 1}
}

// Apply renders the frame for this app's monitor. Called from the
// engine's tick loop; the Fyne work is marshalled onto the UI thread.
func (a *App) Apply(frames []overlay.Frame) {
	var frame overlay.Frame
	found := false
	for _, f := range frames {
		if f.Monitor.ID == a.monitor.ID {
			frame = f
			found = true
			break
		}
	}
	if !found {
		return
	}

	a.surface.SetFrame(frame)
	visible := len(frame.Items) > 0

	fyne.Do(func() {
		if a.window == nil {
			return
		}
		if visible {
			if !a.shown {
				a.show()
				a.shown = true
			}
			a.surface.Refresh()
		} else if a.shown {
			a.window.Hide()
			a.shown = false
		}
	})
}

// show makes the window visible without stealing focus, pinned above
// everything at the monitor origin. The GLFW attributes must be set
// before the first Show.
func (a *App) show() {
	if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
		glfwWin.SetPos(a.monitor.X, a.monitor.Y)
		glfwWin.SetAttrib(glfw.FocusOnShow, glfw.False)
		glfwWin.SetAttrib(glfw.Floating, glfw.True)
		glfwWin.Show()
	} else {
		a.window.Show()
	}
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}
