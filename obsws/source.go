package obsws

import (
	"context"
	"time"

	"github.com/andreykaipov/goobs"
	"github.com/andreykaipov/goobs/api/events"

	"blink/engine"
	"blink/log"
)

// obs-websocket v5 output states. Transitional states (STARTING,
// STOPPING) are deliberately ignored; the overlay only reacts to
// settled ones.
const (
	outputStarted = "OBS_WEBSOCKET_OUTPUT_STARTED"
	outputStopped = "OBS_WEBSOCKET_OUTPUT_STOPPED"
	outputPaused  = "OBS_WEBSOCKET_OUTPUT_PAUSED"
	outputResumed = "OBS_WEBSOCKET_OUTPUT_RESUMED"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Source maintains a connection to OBS's websocket server and feeds
// capture-state changes into the engine. It reconnects forever with
// exponential backoff; the overlay simply shows nothing while OBS is
// away.
type Source struct {
	host     string
	password string
	notify   func(engine.Event)
}

func New(host, password string, notify func(engine.Event)) *Source {
	return &Source{host: host, password: password, notify: notify}
}

// Run blocks until ctx is cancelled, connecting and reconnecting to
// OBS as needed.
func (s *Source) Run(ctx context.Context) {
	backoff := initialBackoff
	for {
		if ctx.Err() != nil {
			return
		}

		client, err := goobs.New(s.host, goobs.WithPassword(s.password))
		if err != nil {
			log.Warnf("obs connect to %s failed: %v, retrying in %s", s.host, err, backoff)
			if !s.wait(ctx, backoff) {
				return
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = initialBackoff
		log.Info("connected to obs")

		s.syncInitialState(client)

		// Listen blocks until the connection drops; Disconnect from a
		// watcher goroutine unblocks it on shutdown.
		stop := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				client.Disconnect()
			case <-stop:
			}
		}()
		client.Listen(s.handle)
		close(stop)

		if ctx.Err() != nil {
			return
		}
		log.Warn("lost connection to obs")
	}
}

// syncInitialState queries the current record and replay-buffer status
// so an overlay started mid-recording shows the right thing without
// waiting for the next state change.
func (s *Source) syncInitialState(client *goobs.Client) {
	if st, err := client.Record.GetRecordStatus(); err != nil {
		log.Warnf("record status query failed: %v", err)
	} else if st.OutputActive {
		s.notify(engine.RecordingStarted)
		if st.OutputPaused {
			s.notify(engine.RecordingPaused)
		}
	}

	if st, err := client.Outputs.GetReplayBufferStatus(); err != nil {
		log.Warnf("replay buffer status query failed: %v", err)
	} else if st.OutputActive {
		s.notify(engine.ReplayBufferStarted)
	}
}

func (s *Source) handle(ev any) {
	if out, ok := Translate(ev); ok {
		s.notify(out)
	}
}

// Translate maps an obs-websocket event to the engine's vocabulary.
// Returns false for everything the overlay does not care about.
func Translate(ev any) (engine.Event, bool) {
	switch e := ev.(type) {
	case *events.RecordStateChanged:
		switch e.OutputState {
		case outputStarted:
			return engine.RecordingStarted, true
		case outputStopped:
			return engine.RecordingStopped, true
		case outputPaused:
			return engine.RecordingPaused, true
		case outputResumed:
			return engine.RecordingResumed, true
		}
	case *events.ReplayBufferStateChanged:
		switch e.OutputState {
		case outputStarted:
			return engine.ReplayBufferStarted, true
		case outputStopped:
			return engine.ReplayBufferStopped, true
		}
	case *events.ReplayBufferSaved:
		return engine.ReplaySaved, true
	}
	return 0, false
}

func (s *Source) wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
