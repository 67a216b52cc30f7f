package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"soundpad/board"
	"soundpad/debug"
	"soundpad/storage"
)

// BlobStore is the persistence surface the coordinator writes through.
// *storage.Store satisfies it; tests substitute an in-memory fake.
type BlobStore interface {
	Put(id int, name, mime string, data []byte) error
	GetAll() ([]storage.Record, error)
	Delete(id int) error
}

// panelState is the transient playback state of one panel. activePad and
// playAllIndex are -1 when unset.
type panelState struct {
	activePad    int
	playAll      bool
	playAllIndex int
}

// persistOp is one queued write-through to the blob store. Ops for the same
// pad id are applied in issuance order, so a delete after a save wins.
type persistOp struct {
	del  bool
	id   int
	name string
	mime string
	data []byte
}

// Coordinator owns all transient playback state: which pad is active per
// panel and the play-all traversal cursors. Every intent and every ended
// notification mutates state under one mutex, so a panel switch is a single
// atomic transition.
//
// Persistence is optimistic write-through: the in-memory binding updates
// immediately and the durable write runs on the coordinator's run loop,
// where a failure is logged and never rolled back.
type Coordinator struct {
	board    *board.Board
	registry *Registry
	store    BlobStore // nil = in-memory only

	mu     sync.Mutex
	panels [board.NumPanels]panelState

	persistCh chan persistOp

	// UpdateCh signals the presentation layer that state changed.
	// Capacity 1; sends never block.
	UpdateCh chan struct{}
}

func NewCoordinator(b *board.Board, r *Registry, store BlobStore) *Coordinator {
	c := &Coordinator{
		board:     b,
		registry:  r,
		store:     store,
		persistCh: make(chan persistOp, 256),
		UpdateCh:  make(chan struct{}, 1),
	}
	for i := range c.panels {
		c.panels[i] = panelState{activePad: -1, playAllIndex: -1}
	}
	return c
}

// Run drains ended notifications and the persistence queue until ctx is
// canceled. Run in a goroutine after construction.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.registry.Events():
			c.onClipEnded(ev.Panel, ev.PadID)
		case op := <-c.persistCh:
			c.persist(op)
		}
	}
}

// LoadPersisted rebinds pads from the blob store. Records with out-of-range
// ids or empty blobs are skipped.
func (c *Coordinator) LoadPersisted() error {
	if c.store == nil {
		return nil
	}
	records, err := c.store.GetAll()
	if err != nil {
		return fmt.Errorf("load persisted pads: %w", err)
	}

	c.mu.Lock()
	for _, rec := range records {
		if len(rec.Data) == 0 {
			continue
		}
		c.board.BindClip(rec.ID, board.Clip{Name: rec.Name, MIME: rec.MIME, Data: rec.Data})
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// LoadClip binds a clip to a pad, invalidating any existing handle first so
// a previously playing instance of the old clip can never resume or report
// a stale end. Out-of-range ids and unsupported content types are silent
// no-ops. The durable write is queued; its failure does not undo the bind.
func (c *Coordinator) LoadClip(padID int, clip board.Clip) {
	if board.PanelOf(padID) == 0 || !board.Supported(clip.MIME) {
		return
	}

	c.mu.Lock()
	c.registry.Invalidate(padID)
	c.board.BindClip(padID, clip)
	panel := board.PanelOf(padID)
	ps := &c.panels[panel-1]
	if ps.activePad == padID {
		// the replaced clip was stopped by the invalidation
		ps.activePad = -1
	}
	c.persistCh <- persistOp{id: padID, name: clip.Name, mime: clip.MIME, data: clip.Data}
	c.mu.Unlock()
	c.notify()
}

// PlayPauseToggle is the single-pad tap intent. Tapping the active pad
// toggles pause/resume in place; tapping any other bound pad starts it from
// the beginning, stopping the panel's previous pad and pausing the other
// panel's active pad.
func (c *Coordinator) PlayPauseToggle(padID int) {
	c.mu.Lock()
	pad := c.board.Pad(padID)
	if pad == nil || pad.Clip == nil {
		c.mu.Unlock()
		return
	}
	panel := board.PanelOf(padID)
	ps := &c.panels[panel-1]

	if ps.activePad == padID {
		if h := c.registry.Handle(padID); h != nil {
			if h.Playing() {
				h.Pause()
			} else {
				h.Resume()
			}
			c.mu.Unlock()
			c.notify()
			return
		}
		// no handle left for the active pad; fall through and rearm
	}

	h, err := c.registry.Resolve(padID, pad.Clip)
	if err != nil {
		// fatal to this pad only; no state changes
		debug.Log("coordinator", "pad %d unplayable: %v", padID, err)
		c.mu.Unlock()
		return
	}

	if ps.activePad >= 0 && ps.activePad != padID {
		if oh := c.registry.Handle(ps.activePad); oh != nil {
			oh.Stop()
		}
	}
	c.silenceOtherLocked(panel)
	ps.activePad = padID
	h.Play()
	c.mu.Unlock()
	c.notify()
}

// TogglePlayAll starts or stops the panel's play-all traversal. Starting
// with a pad already active resumes the traversal at that pad's queue
// position rather than from the top. Stopping pauses the current audio in
// place.
func (c *Coordinator) TogglePlayAll(panel int) {
	if panel < 1 || panel > board.NumPanels {
		return
	}
	c.mu.Lock()
	ps := &c.panels[panel-1]

	if ps.playAll {
		c.stopPlayAllLocked(panel)
		if ps.activePad >= 0 {
			if h := c.registry.Handle(ps.activePad); h != nil {
				h.Pause()
			}
		}
		c.mu.Unlock()
		c.notify()
		return
	}

	queue := c.board.QueueFor(panel)
	if len(queue) == 0 {
		c.mu.Unlock()
		return
	}
	start := 0
	if ps.activePad >= 0 {
		for i, id := range queue {
			if id == ps.activePad {
				start = i
				break
			}
		}
	}
	ps.playAll = true
	c.playQueueAtLocked(panel, start)
	c.mu.Unlock()
	c.notify()
}

// PlayAllNext advances the traversal. Past the last queue entry it exits
// play-all without touching the current audio; there is no wraparound.
func (c *Coordinator) PlayAllNext(panel int) {
	if panel < 1 || panel > board.NumPanels {
		return
	}
	c.mu.Lock()
	ps := &c.panels[panel-1]
	if ps.playAllIndex < 0 {
		c.mu.Unlock()
		return
	}
	next := ps.playAllIndex + 1
	if next >= len(c.board.QueueFor(panel)) {
		c.stopPlayAllLocked(panel)
	} else {
		c.playQueueAtLocked(panel, next)
	}
	c.mu.Unlock()
	c.notify()
}

// PlayAllPrev steps the traversal back one entry; at the first entry it is
// a no-op.
func (c *Coordinator) PlayAllPrev(panel int) {
	if panel < 1 || panel > board.NumPanels {
		return
	}
	c.mu.Lock()
	ps := &c.panels[panel-1]
	if ps.playAllIndex < 0 {
		c.mu.Unlock()
		return
	}
	prev := ps.playAllIndex - 1
	if prev < 0 {
		c.mu.Unlock()
		return
	}
	c.playQueueAtLocked(panel, prev)
	c.mu.Unlock()
	c.notify()
}

// ClosePlayer pauses and rewinds the panel's active pad and clears the
// active marking. The play-all flags are left as they are.
func (c *Coordinator) ClosePlayer(panel int) {
	if panel < 1 || panel > board.NumPanels {
		return
	}
	c.mu.Lock()
	ps := &c.panels[panel-1]
	if ps.activePad < 0 {
		c.mu.Unlock()
		return
	}
	if h := c.registry.Handle(ps.activePad); h != nil {
		h.Stop()
	}
	ps.activePad = -1
	c.mu.Unlock()
	c.notify()
}

// Seek moves the panel's active pad to the given position without changing
// its play/pause state.
func (c *Coordinator) Seek(panel int, t time.Duration) {
	if panel < 1 || panel > board.NumPanels {
		return
	}
	c.mu.Lock()
	ps := &c.panels[panel-1]
	if ps.activePad >= 0 {
		if h := c.registry.Handle(ps.activePad); h != nil {
			h.Seek(t)
		}
	}
	c.mu.Unlock()
	c.notify()
}

// DeletePad stops the pad, releases its handle, clears the slot binding and
// active marking, and queues the durable delete. Safe to call mid-playback.
// The traversal cursor is left alone: play-all position is by queue index,
// so a mid-traversal delete shifts which pad plays next.
func (c *Coordinator) DeletePad(padID int) error {
	c.mu.Lock()
	pad := c.board.Pad(padID)
	if pad == nil {
		c.mu.Unlock()
		return fmt.Errorf("pad %d out of range", padID)
	}
	c.registry.Invalidate(padID)
	c.board.UnbindClip(padID)
	panel := board.PanelOf(padID)
	ps := &c.panels[panel-1]
	if ps.activePad == padID {
		ps.activePad = -1
	}
	c.persistCh <- persistOp{del: true, id: padID}
	c.mu.Unlock()
	c.notify()
	return nil
}

// onClipEnded handles a natural end of playback. Ends reported for a pad
// that is no longer the panel's active pad are stale and ignored.
func (c *Coordinator) onClipEnded(panel, padID int) {
	if panel < 1 || panel > board.NumPanels {
		return
	}
	c.mu.Lock()
	ps := &c.panels[panel-1]
	if ps.activePad != padID {
		c.mu.Unlock()
		return
	}
	if !ps.playAll || ps.playAllIndex < 0 {
		ps.activePad = -1
		c.mu.Unlock()
		c.notify()
		return
	}
	next := ps.playAllIndex + 1
	if next >= len(c.board.QueueFor(panel)) {
		// queue exhausted
		c.stopPlayAllLocked(panel)
		ps.activePad = -1
	} else {
		c.playQueueAtLocked(panel, next)
	}
	c.mu.Unlock()
	c.notify()
}

// playQueueAtLocked plays the queue entry at index, recomputing the queue
// from current bindings. An out-of-range index exits play-all. Callers hold
// c.mu.
func (c *Coordinator) playQueueAtLocked(panel, index int) {
	queue := c.board.QueueFor(panel)
	if index < 0 || index >= len(queue) {
		c.stopPlayAllLocked(panel)
		return
	}
	padID := queue[index]
	pad := c.board.Pad(padID)

	h, err := c.registry.Resolve(padID, pad.Clip)
	if err != nil {
		debug.Log("coordinator", "pad %d unplayable, stopping play-all: %v", padID, err)
		c.stopPlayAllLocked(panel)
		return
	}

	ps := &c.panels[panel-1]
	if ps.activePad >= 0 && ps.activePad != padID {
		if oh := c.registry.Handle(ps.activePad); oh != nil {
			oh.Stop()
		}
	}
	c.silenceOtherLocked(panel)
	ps.activePad = padID
	ps.playAllIndex = index
	h.Play()
}

// stopPlayAllLocked clears the traversal flags only; whether the current
// audio keeps playing is the caller's call. Callers hold c.mu.
func (c *Coordinator) stopPlayAllLocked(panel int) {
	ps := &c.panels[panel-1]
	ps.playAll = false
	ps.playAllIndex = -1
}

// silenceOtherLocked pauses the other panel's active pad and clears its
// active marking: starting playback anywhere silences the opposite panel.
// Callers hold c.mu.
func (c *Coordinator) silenceOtherLocked(panel int) {
	other := 3 - panel
	os := &c.panels[other-1]
	if os.activePad < 0 {
		return
	}
	if h := c.registry.Handle(os.activePad); h != nil {
		h.Pause()
	}
	os.activePad = -1
}

// persist applies one queued blob-store write. Failures are logged;
// in-memory state is the source of truth and is never rolled back.
func (c *Coordinator) persist(op persistOp) {
	if c.store == nil {
		return
	}
	var err error
	if op.del {
		err = c.store.Delete(op.id)
	} else {
		err = c.store.Put(op.id, op.name, op.mime, op.data)
	}
	if err != nil {
		debug.Log("store", "persist pad %d: %v", op.id, err)
	}
}

func (c *Coordinator) notify() {
	trySend(c.UpdateCh, struct{}{})
}
