package sound

import "sync"

// Request records one Play call made against a Fake.
type Request struct {
	Path   string
	Volume float64
}

// Fake is an in-memory player for tests. It records requests instead of
// touching the audio device.
type Fake struct {
	mu    sync.Mutex
	calls []Request
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Play(path string, volume float64) {
	f.mu.Lock()
	f.calls = append(f.calls, Request{Path: path, Volume: volume})
	f.mu.Unlock()
}

// Requests returns a copy of the recorded calls in order.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.calls))
	copy(out, f.calls)
	return out
}
