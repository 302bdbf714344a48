package engine

import "time"

// Options is the immutable configuration snapshot injected at startup.
// The engine never mutates it; a settings change rebuilds the whole
// overlay rather than patching a live engine.
type Options struct {
	Opacity float64 // icon/border opacity ceiling, 0..1

	RecColor       RGBA
	RecPausedColor RGBA
	BufColor       RGBA
	BufSavedColor  RGBA

	FadeEnabled       bool
	FadeDuration      time.Duration
	CrossFadeDuration time.Duration
	SavedDuration     time.Duration // saved sub-state length before auto-revert

	FlashEnabled  bool
	FlashColor    RGBA
	FlashOpacity  float64
	FlashDuration time.Duration

	RecBorderEnabled      bool
	RecPauseBorderEnabled bool // fallback border shown only while paused, when the main one is off
	RecBorderColor        RGBA
	RecPauseBorderColor   RGBA

	BufBorderEnabled     bool
	BufSaveBorderEnabled bool // fallback border shown only during the saved window, when the main one is off
	BufBorderColor       RGBA
	BufSaveBorderColor   RGBA

	SaveSoundPath   string
	SaveSoundVolume float64 // 0..2, 1 = unity gain
}

// DefaultOptions returns the stock settings: red recording dot, orange
// pause, green replay buffer, blue save, half opacity, fades on, flash
// off.
func DefaultOptions() Options {
	return Options{
		Opacity:           0.5,
		RecColor:          RGBA{0xFF, 0x55, 0x55, 0xFF},
		RecPausedColor:    RGBA{0xFF, 0xAA, 0x00, 0xFF},
		BufColor:          RGBA{0x55, 0xFF, 0x55, 0xFF},
		BufSavedColor:     RGBA{0x55, 0x55, 0xFF, 0xFF},
		FadeEnabled:       true,
		FadeDuration:      300 * time.Millisecond,
		CrossFadeDuration: 200 * time.Millisecond,
		SavedDuration:     1500 * time.Millisecond,
		FlashEnabled:      false,
		FlashColor:        RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		FlashOpacity:      1.0,
		FlashDuration:     200 * time.Millisecond,

		RecBorderEnabled:      false,
		RecPauseBorderEnabled: true,
		RecBorderColor:        RGBA{0xFF, 0x55, 0x55, 0xFF},
		RecPauseBorderColor:   RGBA{0xFF, 0xAA, 0x00, 0xFF},

		BufBorderEnabled:     false,
		BufSaveBorderEnabled: true,
		BufBorderColor:       RGBA{0x55, 0xFF, 0x55, 0xFF},
		BufSaveBorderColor:   RGBA{0x55, 0x55, 0xFF, 0xFF},

		SaveSoundPath:   "Saved.wav",
		SaveSoundVolume: 1.0,
	}
}
