package playback

import (
	"sync"

	"soundpad/board"
	"soundpad/debug"
)

// Registry maps pad ids to their playable handles. Handles are created
// lazily on the first play request and reused until the pad's clip is
// replaced or deleted. At most one live handle exists per pad id.
//
// End-of-playback notifications from handles are forwarded on the Events
// channel; the coordinator drains it on its run loop.
type Registry struct {
	engine  Engine
	mu      sync.Mutex
	handles map[int]Handle
	events  chan Ended
}

func NewRegistry(engine Engine) *Registry {
	return &Registry{
		engine:  engine,
		handles: make(map[int]Handle),
		events:  make(chan Ended, 64),
	}
}

// Events is the channel end-of-playback notifications arrive on.
func (r *Registry) Events() <-chan Ended {
	return r.events
}

// Resolve returns the pad's handle, creating it from the clip if absent.
// Idempotent per pad while the clip is unchanged: callers must Invalidate
// before replacing a clip.
func (r *Registry) Resolve(padID int, clip *board.Clip) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[padID]; ok {
		return h, nil
	}

	panel := board.PanelOf(padID)
	h, err := r.engine.Open(clip.Name, clip.MIME, clip.Data, func() {
		// audio-callback path: never block
		if !trySend(r.events, Ended{PadID: padID, Panel: panel}) {
			debug.Log("registry", "dropped ended event for pad %d", padID)
		}
	})
	if err != nil {
		return nil, err
	}
	r.handles[padID] = h
	return h, nil
}

// Handle returns the pad's existing handle without creating one.
func (r *Registry) Handle(padID int) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handles[padID]
}

// Invalidate stops any in-flight playback, releases the pad's decode
// resources, and removes the handle. Must run on every path that replaces
// or deletes a pad's clip, or the old audio can keep playing and its ended
// event can fire against the new clip.
func (r *Registry) Invalidate(padID int) {
	r.mu.Lock()
	h, ok := r.handles[padID]
	if ok {
		delete(r.handles, padID)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	h.Stop()
	if err := h.Close(); err != nil {
		debug.Log("registry", "close handle for pad %d: %v", padID, err)
	}
}
