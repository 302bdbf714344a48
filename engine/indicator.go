package engine

// Kind enumerates the visual indicators the engine drives.
type Kind int

const (
	RecordingIcon Kind = iota
	ReplayIcon
	RecordingBorder
	ReplayBorder
	FlashOverlay
	kindCount
)

func (k Kind) String() string {
	switch k {
	case RecordingIcon:
		return "recording_icon"
	case ReplayIcon:
		return "replay_icon"
	case RecordingBorder:
		return "recording_border"
	case ReplayBorder:
		return "replay_border"
	case FlashOverlay:
		return "flash_overlay"
	}
	return "unknown"
}

// indicator is the mutable state of one visual element. Created at
// startup, mutated only by the engine on its tick loop, never destroyed
// until shutdown.
type indicator struct {
	kind    Kind
	visible bool
	color   RGBA
	opacity float64
	anims   map[field]*animation
}

func newIndicator(k Kind, base RGBA) *indicator {
	return &indicator{kind: k, color: base, anims: make(map[field]*animation)}
}

// set starts an animation on one of the indicator's fields. A running
// animation on the same field is replaced without firing its completion
// callback, and the replacement picks up from the current interpolated
// value so the visible change stays continuous.
func (ind *indicator) set(a animation) {
	switch a.field {
	case fieldOpacity:
		a.from = ind.opacity
	case fieldColor:
		a.fromColor = ind.color
	}
	ind.anims[a.field] = &a
}

// restart starts an animation from its explicit start value, jumping the
// field there immediately. Used by the flash effect, which re-triggers
// from full intensity rather than continuing from the current value.
func (ind *indicator) restart(a animation) {
	if a.field == fieldOpacity {
		ind.opacity = a.from
	}
	ind.anims[a.field] = &a
}

// Snapshot is the read-only render projection of one indicator.
type Snapshot struct {
	Kind    Kind
	Visible bool
	Color   RGBA
	Opacity float64
}
