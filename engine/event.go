package engine

// Event is a discrete, zero-payload capture-state notification from the
// host recorder. Events within one indicator's stream are assumed
// monotonic (no two starts without an intervening stop); anything else
// is handled as a forced transition, never an error.
type Event int

const (
	RecordingStarted Event = iota
	RecordingStopped
	RecordingPaused
	RecordingResumed
	ReplayBufferStarted
	ReplayBufferStopped
	ReplaySaved
)

func (e Event) String() string {
	switch e {
	case RecordingStarted:
		return "recording_started"
	case RecordingStopped:
		return "recording_stopped"
	case RecordingPaused:
		return "recording_paused"
	case RecordingResumed:
		return "recording_resumed"
	case ReplayBufferStarted:
		return "replay_buffer_started"
	case ReplayBufferStopped:
		return "replay_buffer_stopped"
	case ReplaySaved:
		return "replay_saved"
	}
	return "unknown"
}
