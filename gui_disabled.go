//go:build !gui

package main

import (
	"fmt"
	"os"
)

func initGUI() {
	fmt.Fprintln(os.Stderr, "blink: built without GUI support (rebuild with -tags gui), running headless")
	run(fallbackMonitor())
}

func quitGUI() {}
