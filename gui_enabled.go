//go:build gui

package main

import (
	"runtime"

	"blink/gui"
	"blink/overlay"
)

var guiApp *gui.App

func initGUI() {
	// Fyne/GLFW needs the main OS thread.
	runtime.LockOSThread()

	guiApp = gui.NewApp(func(mon overlay.Monitor) {
		sink = guiApp
		run(mon)
	})
	if err := gui.Run(guiApp); err != nil {
		panic(err)
	}
	// Fyne's event loop returned (tray Quit or window close).
	gracefulShutdown()
}

func quitGUI() {
	if guiApp != nil {
		guiApp.Quit()
	}
}
