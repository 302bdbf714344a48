package engine

import "time"

// Easing selects the interpolation curve of an animation.
type Easing int

const (
	EaseLinear Easing = iota
	EaseOut           // decelerating: 1-(1-t)^2
)

func (e Easing) at(t float64) float64 {
	switch e {
	case EaseOut:
		u := 1 - t
		return 1 - u*u
	default:
		return t
	}
}

// field identifies which indicator value an animation drives. fieldHold
// animates nothing; it exists so timed self-transitions (the saved-state
// revert) live in the scheduler instead of an ad-hoc timer.
type field int

const (
	fieldOpacity field = iota
	fieldColor
	fieldHold
)

// animation interpolates one indicator field from a start value to an
// end value over a fixed duration. An indicator holds at most one
// animation per field; starting another replaces it without firing the
// old completion callback.
type animation struct {
	field     field
	from, to  float64
	fromColor RGBA
	toColor   RGBA
	start     time.Time
	duration  time.Duration
	easing    Easing

	// onDone runs once, after the field has been snapped to its end
	// value. It receives the tick time so follow-up transitions start
	// from the same instant.
	onDone func(time.Time)
}

// eased returns the eased progress in [0,1] and whether the animation
// has run to completion. A non-positive duration completes immediately.
func (a *animation) eased(now time.Time) (float64, bool) {
	if a.duration <= 0 {
		return 1, true
	}
	t := float64(now.Sub(a.start)) / float64(a.duration)
	if t >= 1 {
		return 1, true
	}
	if t < 0 {
		t = 0
	}
	return a.easing.at(t), false
}
