package engine

import (
	"context"
	"time"

	"blink/log"
)

// Player receives the one-shot save-sound request. Implementations run
// playback on their own goroutine; Play must return immediately and its
// failures never propagate back into the state machine.
type Player interface {
	Play(path string, volume float64)
}

type recPhase int

const (
	recIdle recPhase = iota
	recActive
	recPaused
)

type bufPhase int

const (
	bufIdle bufPhase = iota
	bufActive
	bufSaved
)

const eventQueueSize = 64

// Engine owns the five indicator state machines and the animation
// scheduler. Events arrive asynchronously via Notify, are queued, and
// are drained at the start of each Tick, so every state mutation is
// serialized on the tick loop.
type Engine struct {
	opts    Options
	player  Player
	pending chan Event

	inds [kindCount]*indicator
	rec  recPhase
	buf  bufPhase
}

func New(opts Options, player Player) *Engine {
	e := &Engine{
		opts:    opts,
		player:  player,
		pending: make(chan Event, eventQueueSize),
	}
	e.inds[RecordingIcon] = newIndicator(RecordingIcon, opts.RecColor)
	e.inds[ReplayIcon] = newIndicator(ReplayIcon, opts.BufColor)
	e.inds[RecordingBorder] = newIndicator(RecordingBorder, opts.RecBorderColor)
	e.inds[ReplayBorder] = newIndicator(ReplayBorder, opts.BufBorderColor)
	e.inds[FlashOverlay] = newIndicator(FlashOverlay, opts.FlashColor)
	return e
}

// Notify queues an event for the next tick. Safe to call from any
// goroutine; never blocks. If the queue is full the event is dropped
// and logged.
func (e *Engine) Notify(ev Event) {
	select {
	case e.pending <- ev:
	default:
		log.Warnf("event queue full, dropping %s", ev)
	}
}

// Tick drains the queued events, then advances every active animation
// to now. This is the only place indicator state mutates.
func (e *Engine) Tick(now time.Time) {
	for {
		select {
		case ev := <-e.pending:
			e.apply(ev, now)
		default:
			e.advance(now)
			return
		}
	}
}

// Snapshot returns the per-indicator render state as of the last Tick.
func (e *Engine) Snapshot() []Snapshot {
	out := make([]Snapshot, 0, kindCount)
	for _, ind := range e.inds {
		out = append(out, Snapshot{
			Kind:    ind.kind,
			Visible: ind.visible,
			Color:   ind.color,
			Opacity: ind.opacity,
		})
	}
	return out
}

// Shutdown forcibly hides every indicator and cancels all animations
// without firing their completion callbacks.
func (e *Engine) Shutdown() {
	e.rec = recIdle
	e.buf = bufIdle
	for _, ind := range e.inds {
		ind.visible = false
		ind.opacity = 0
		clear(ind.anims)
	}
}

// Run drives the engine at the given tick interval until ctx is done,
// handing the post-tick snapshot to onFrame. This is the only place the
// engine touches the wall clock; tests call Tick directly.
func (e *Engine) Run(ctx context.Context, interval time.Duration, onFrame func([]Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			e.Shutdown()
			if onFrame != nil {
				onFrame(e.Snapshot())
			}
			return
		case now := <-ticker.C:
			e.Tick(now)
			if onFrame != nil {
				onFrame(e.Snapshot())
			}
		}
	}
}

func (e *Engine) apply(ev Event, now time.Time) {
	log.Event(ev.String())
	switch ev {
	case RecordingStarted:
		e.rec = recActive
		e.showRecording(now)
	case RecordingPaused:
		// Pause implies active, so a pause arriving in Idle acts as a
		// forced start.
		e.rec = recPaused
		e.showRecording(now)
	case RecordingResumed:
		e.rec = recActive
		e.showRecording(now)
	case RecordingStopped:
		// Also covers a stop without a matching start: forced to Idle.
		e.rec = recIdle
		e.fadeOut(e.inds[RecordingIcon], now)
		e.fadeOut(e.inds[RecordingBorder], now)
	case ReplayBufferStarted:
		e.buf = bufActive
		e.showReplay(now)
	case ReplayBufferStopped:
		e.buf = bufIdle
		delete(e.inds[ReplayIcon].anims, fieldHold)
		e.fadeOut(e.inds[ReplayIcon], now)
		e.fadeOut(e.inds[ReplayBorder], now)
	case ReplaySaved:
		e.replaySaved(now)
	}
}

func (e *Engine) showRecording(now time.Time) {
	paused := e.rec == recPaused

	icon := e.inds[RecordingIcon]
	iconColor := e.opts.RecColor
	if paused {
		iconColor = e.opts.RecPausedColor
	}
	if !icon.visible {
		icon.visible = true
		icon.opacity = 0
		icon.color = iconColor
		e.fadeTo(icon, e.opts.Opacity, now)
	} else {
		e.crossfade(icon, iconColor, now)
	}

	border := e.inds[RecordingBorder]
	switch {
	case e.opts.RecBorderEnabled:
		borderColor := e.opts.RecBorderColor
		if paused {
			borderColor = e.opts.RecPauseBorderColor
		}
		if !border.visible {
			border.visible = true
			border.opacity = 0
			border.color = borderColor
			e.fadeTo(border, e.opts.Opacity, now)
		} else {
			e.crossfade(border, borderColor, now)
		}
	case e.opts.RecPauseBorderEnabled:
		if paused {
			if !border.visible {
				border.visible = true
				border.opacity = 0
			}
			border.color = e.opts.RecPauseBorderColor
			e.fadeTo(border, e.opts.Opacity, now)
		} else if border.visible {
			e.fadeOut(border, now)
		}
	}
}

func (e *Engine) showReplay(now time.Time) {
	saved := e.buf == bufSaved

	icon := e.inds[ReplayIcon]
	iconColor := e.opts.BufColor
	if saved {
		iconColor = e.opts.BufSavedColor
	}
	if !icon.visible {
		icon.visible = true
		icon.opacity = 0
		icon.color = iconColor
		e.fadeTo(icon, e.opts.Opacity, now)
	} else {
		e.crossfade(icon, iconColor, now)
	}

	border := e.inds[ReplayBorder]
	switch {
	case e.opts.BufBorderEnabled:
		borderColor := e.opts.BufBorderColor
		if saved {
			borderColor = e.opts.BufSaveBorderColor
		}
		if !border.visible {
			border.visible = true
			border.opacity = 0
			border.color = borderColor
			e.fadeTo(border, e.opts.Opacity, now)
		} else {
			e.crossfade(border, borderColor, now)
		}
	case e.opts.BufSaveBorderEnabled:
		if saved {
			if !border.visible {
				border.visible = true
				border.opacity = 0
			}
			border.color = e.opts.BufSaveBorderColor
			e.fadeTo(border, e.opts.Opacity, now)
		} else if border.visible {
			e.fadeOut(border, now)
		}
	}
}

func (e *Engine) replaySaved(now time.Time) {
	// A save implies the buffer is running, even if the start event was
	// missed.
	e.buf = bufSaved
	e.showReplay(now)

	// The Saved→Active revert is a timed self-transition. It lives in
	// the scheduler as a hold on the replay icon, so a second save
	// replaces it and restarts the window instead of stacking.
	e.inds[ReplayIcon].set(animation{
		field:    fieldHold,
		start:    now,
		duration: e.opts.SavedDuration,
		onDone: func(done time.Time) {
			if e.buf != bufSaved {
				return
			}
			e.buf = bufActive
			e.showReplay(done)
		},
	})

	if e.opts.FlashEnabled {
		flash := e.inds[FlashOverlay]
		flash.visible = true
		flash.color = e.opts.FlashColor
		flash.restart(animation{
			field:    fieldOpacity,
			from:     e.opts.FlashOpacity,
			to:       0,
			start:    now,
			duration: e.opts.FlashDuration,
			easing:   EaseOut,
			onDone:   func(time.Time) { flash.visible = false },
		})
	}

	if e.player != nil && e.opts.SaveSoundPath != "" {
		e.player.Play(e.opts.SaveSoundPath, e.opts.SaveSoundVolume)
	}
}

func (e *Engine) fadeTo(ind *indicator, target float64, now time.Time) {
	if _, ok := ind.anims[fieldOpacity]; !ok && ind.opacity == target {
		return
	}
	ind.set(animation{
		field:    fieldOpacity,
		to:       target,
		start:    now,
		duration: e.fadeDur(),
		easing:   EaseOut,
	})
}

func (e *Engine) fadeOut(ind *indicator, now time.Time) {
	if !ind.visible {
		return
	}
	ind.set(animation{
		field:    fieldOpacity,
		to:       0,
		start:    now,
		duration: e.fadeDur(),
		easing:   EaseOut,
		onDone:   func(time.Time) { ind.visible = false },
	})
}

func (e *Engine) crossfade(ind *indicator, to RGBA, now time.Time) {
	if a, ok := ind.anims[fieldColor]; ok {
		if a.toColor == to {
			return
		}
	} else if ind.color == to {
		return
	}
	ind.set(animation{
		field:    fieldColor,
		toColor:  to,
		start:    now,
		duration: e.crossDur(),
		easing:   EaseLinear,
	})
}

func (e *Engine) fadeDur() time.Duration {
	if !e.opts.FadeEnabled {
		return 0
	}
	return e.opts.FadeDuration
}

func (e *Engine) crossDur() time.Duration {
	if !e.opts.FadeEnabled {
		return 0
	}
	return e.opts.CrossFadeDuration
}

// advance steps every active animation to now, snapping finished ones
// exactly to their end value before removal. Completion callbacks run
// after the pass so the transitions they start see consistent state.
func (e *Engine) advance(now time.Time) {
	var done []*animation
	for _, ind := range e.inds {
		for f, a := range ind.anims {
			t, finished := a.eased(now)
			if finished {
				switch f {
				case fieldOpacity:
					ind.opacity = a.to
				case fieldColor:
					ind.color = a.toColor
				}
				delete(ind.anims, f)
				if a.onDone != nil {
					done = append(done, a)
				}
				continue
			}
			switch f {
			case fieldOpacity:
				ind.opacity = a.from + (a.to-a.from)*t
			case fieldColor:
				ind.color = lerpColor(a.fromColor, a.toColor, t)
			}
		}
	}
	for _, a := range done {
		a.onDone(now)
	}
}
