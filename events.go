package main

import "blink/overlay"

// RenderSink abstracts the display layer so the Fyne overlay and the
// headless mode receive the same per-tick frames.
type RenderSink interface {
	Apply(frames []overlay.Frame)
}

// nopSink discards frames. Used headless, where the engine and event
// plumbing still run for diagnostics but nothing is drawn.
type nopSink struct{}

func (nopSink) Apply([]overlay.Frame) {}
