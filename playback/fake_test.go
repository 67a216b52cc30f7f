package playback

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeHandle is an in-memory stand-in for a decoded clip. finish simulates
// the clip draining to its natural end.
type fakeHandle struct {
	mu      sync.Mutex
	name    string
	playing bool
	pos     time.Duration
	dur     time.Duration
	closed  bool
	plays   int
	onEnded func()
}

func (h *fakeHandle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pos = 0
	h.playing = true
	h.plays++
}

func (h *fakeHandle) Resume() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = true
}

func (h *fakeHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = false
}

func (h *fakeHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = false
	h.pos = 0
}

func (h *fakeHandle) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing
}

func (h *fakeHandle) Seek(t time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pos = t
}

func (h *fakeHandle) Position() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pos
}

func (h *fakeHandle) Duration() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dur
}

func (h *fakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// finish drives the handle to its natural end and fires the ended callback.
func (h *fakeHandle) finish() {
	h.mu.Lock()
	h.playing = false
	h.pos = h.dur
	cb := h.onEnded
	h.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// fakeEngine opens fakeHandles and remembers them by clip name.
type fakeEngine struct {
	mu      sync.Mutex
	handles map[string][]*fakeHandle
	opens   int
	failAll bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{handles: make(map[string][]*fakeHandle)}
}

func (e *fakeEngine) Open(name, mime string, data []byte, onEnded func()) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opens++
	if e.failAll {
		return nil, errors.New("decode failed")
	}
	h := &fakeHandle{name: name, dur: 10 * time.Second, onEnded: onEnded}
	e.handles[name] = append(e.handles[name], h)
	return h, nil
}

// last returns the most recently opened handle for a clip name.
func (e *fakeEngine) last(name string) *fakeHandle {
	e.mu.Lock()
	defer e.mu.Unlock()
	hs := e.handles[name]
	if len(hs) == 0 {
		return nil
	}
	return hs[len(hs)-1]
}

func (e *fakeEngine) openCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opens
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
