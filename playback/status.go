package playback

import (
	"time"

	"soundpad/board"
)

// PadView is a render snapshot of one pad.
type PadView struct {
	ID      int
	Name    string
	Bound   bool
	Color   [3]uint8
	Active  bool
	Playing bool
}

// Status is a render snapshot of one panel's player state.
type Status struct {
	ActivePad    int // -1 when no pad is active
	PadName      string
	Playing      bool
	PlayAll      bool
	PlayAllIndex int // -1 outside a traversal
	QueueLen     int
	Position     time.Duration
	Duration     time.Duration
}

// PanelView snapshots the panel's pads for rendering.
func (c *Coordinator) PanelView(panel int) []PadView {
	if panel < 1 || panel > board.NumPanels {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	ps := c.panels[panel-1]
	pads := c.board.PanelPads(panel)
	views := make([]PadView, 0, len(pads))
	for _, pad := range pads {
		v := PadView{ID: pad.ID, Color: pad.Color}
		if pad.Clip != nil {
			v.Bound = true
			v.Name = pad.Clip.Name
		}
		if ps.activePad == pad.ID {
			v.Active = true
			if h := c.registry.Handle(pad.ID); h != nil {
				v.Playing = h.Playing()
			}
		}
		views = append(views, v)
	}
	return views
}

// PanelStatus snapshots the panel's player state for rendering.
func (c *Coordinator) PanelStatus(panel int) Status {
	if panel < 1 || panel > board.NumPanels {
		return Status{ActivePad: -1, PlayAllIndex: -1}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	ps := c.panels[panel-1]
	st := Status{
		ActivePad:    ps.activePad,
		PlayAll:      ps.playAll,
		PlayAllIndex: ps.playAllIndex,
		QueueLen:     len(c.board.QueueFor(panel)),
	}
	if ps.activePad >= 0 {
		if pad := c.board.Pad(ps.activePad); pad != nil && pad.Clip != nil {
			st.PadName = pad.Clip.Name
		}
		if h := c.registry.Handle(ps.activePad); h != nil {
			st.Playing = h.Playing()
			st.Position = h.Position()
			st.Duration = h.Duration()
		}
	}
	return st
}
