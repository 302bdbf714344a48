package obsws

import (
	"testing"

	"github.com/andreykaipov/goobs/api/events"

	"blink/engine"
)

func TestTranslateRecordStates(t *testing.T) {
	cases := map[string]engine.Event{
		outputStarted: engine.RecordingStarted,
		outputStopped: engine.RecordingStopped,
		outputPaused:  engine.RecordingPaused,
		outputResumed: engine.RecordingResumed,
	}
	for state, want := range cases {
		got, ok := Translate(&events.RecordStateChanged{OutputState: state})
		if !ok {
			t.Errorf("%s: not translated", state)
			continue
		}
		if got != want {
			t.Errorf("%s: got %s, want %s", state, got, want)
		}
	}
}

func TestTranslateReplayBufferStates(t *testing.T) {
	cases := map[string]engine.Event{
		outputStarted: engine.ReplayBufferStarted,
		outputStopped: engine.ReplayBufferStopped,
	}
	for state, want := range cases {
		got, ok := Translate(&events.ReplayBufferStateChanged{OutputState: state})
		if !ok {
			t.Errorf("%s: not translated", state)
			continue
		}
		if got != want {
			t.Errorf("%s: got %s, want %s", state, got, want)
		}
	}
}

func TestTranslateReplaySaved(t *testing.T) {
	got, ok := Translate(&events.ReplayBufferSaved{SavedReplayPath: "/tmp/Replay.mkv"})
	if !ok || got != engine.ReplaySaved {
		t.Errorf("got (%v, %v), want (replay_saved, true)", got, ok)
	}
}

func TestTranslateIgnoresTransitionalStates(t *testing.T) {
	for _, state := range []string{
		"OBS_WEBSOCKET_OUTPUT_STARTING",
		"OBS_WEBSOCKET_OUTPUT_STOPPING",
		"OBS_WEBSOCKET_OUTPUT_UNKNOWN",
	} {
		if _, ok := Translate(&events.RecordStateChanged{OutputState: state}); ok {
			t.Errorf("translated transitional record state %s", state)
		}
		if _, ok := Translate(&events.ReplayBufferStateChanged{OutputState: state}); ok {
			t.Errorf("translated transitional buffer state %s", state)
		}
	}
}

func TestTranslateIgnoresUnrelatedEvents(t *testing.T) {
	if _, ok := Translate(&events.InputVolumeChanged{}); ok {
		t.Error("translated an unrelated event type")
	}
	if _, ok := Translate("garbage"); ok {
		t.Error("translated a non-event value")
	}
}
