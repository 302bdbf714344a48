package sound

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"blink/log"
)

// mixRate is the speaker's fixed sample rate. Files at a different
// rate are resampled on the fly.
const mixRate = beep.SampleRate(44100)

// Speaker plays notification sounds through the default output device.
// Playback is fire and forget: Play returns immediately and any failure
// is logged, never returned.
type Speaker struct {
	once    sync.Once
	initErr error
}

func NewSpeaker() *Speaker {
	return &Speaker{}
}

// Init opens the output device. Safe to call more than once; only the
// first call does the work. Called lazily by Play, but the startup path
// calls it early so device problems surface in the log before the
// first save.
func (s *Speaker) Init() error {
	s.once.Do(func() {
		s.initErr = speaker.Init(mixRate, mixRate.N(100*time.Millisecond))
		if s.initErr != nil {
			log.Errorf("audio device init failed: %v", s.initErr)
		}
	})
	return s.initErr
}

// Play starts playback of the file at path on its own goroutine.
// Volume is linear gain: 1 is unity, 0 is silent, 2 is doubled.
func (s *Speaker) Play(path string, volume float64) {
	go func() {
		if err := s.play(path, volume); err != nil {
			log.PlaybackError(path, err)
			return
		}
		log.Playback(path, volume)
	}()
}

func (s *Speaker) play(path string, volume float64) error {
	if err := s.Init(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decode(path, f)
	if err != nil {
		f.Close()
		return err
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != mixRate {
		src = beep.Resample(4, format.SampleRate, mixRate, streamer)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(withVolume(src, volume), beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("unsupported sound format %q", filepath.Ext(path))
}

// withVolume wraps a streamer in a logarithmic gain stage. beep's
// Volume field is an exponent of Base, so unity gain is 0 and linear
// gain g maps to log2(g) with Base 2.
func withVolume(src beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: src, Base: 2, Silent: true}
	}
	if volume == 1 {
		return src
	}
	return &effects.Volume{Streamer: src, Base: 2, Volume: math.Log2(volume)}
}
