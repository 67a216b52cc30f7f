package board

// Panel layout constants. Two fixed panels of 15 pads each; pad ids are
// permanent slots and are never created or destroyed after startup.
const (
	PadsPerPanel = 15
	NumPanels    = 2
	NumPads      = PadsPerPanel * NumPanels
)

// Accepted clip content types. Anything else is rejected silently at bind.
const (
	MIMEMpeg = "audio/mpeg"
	MIMEWav  = "audio/wav"
)

// Clip is a binary audio payload plus its display name.
type Clip struct {
	Name string
	MIME string
	Data []byte
}

// Pad is a fixed slot that holds at most one clip. Color is an opaque
// presentation value assigned at startup.
type Pad struct {
	ID    int
	Clip  *Clip
	Color [3]uint8
}

// Board holds the 30 pad slots. It carries no playback state and no locking;
// the playback coordinator serializes all mutation.
type Board struct {
	pads [NumPads]Pad
}

// New creates a board with empty pads. colors may be nil or shorter than
// NumPads; missing entries stay black.
func New(colors [][3]uint8) *Board {
	b := &Board{}
	for i := range b.pads {
		b.pads[i].ID = i
		if i < len(colors) {
			b.pads[i].Color = colors[i]
		}
	}
	return b
}

// Pad returns the pad for the given id, or nil if out of range.
func (b *Board) Pad(id int) *Pad {
	if id < 0 || id >= NumPads {
		return nil
	}
	return &b.pads[id]
}

// Supported reports whether a content type is an accepted clip type.
func Supported(mime string) bool {
	return mime == MIMEMpeg || mime == MIMEWav
}

// BindClip stores a clip at the pad's slot. Out-of-range ids and
// unsupported content types are silent no-ops.
func (b *Board) BindClip(id int, clip Clip) {
	if id < 0 || id >= NumPads || !Supported(clip.MIME) {
		return
	}
	c := clip
	b.pads[id].Clip = &c
}

// UnbindClip clears the pad's slot. Out-of-range ids are a no-op.
func (b *Board) UnbindClip(id int) {
	if id < 0 || id >= NumPads {
		return
	}
	b.pads[id].Clip = nil
}

// PanelOf returns the panel (1 or 2) a pad id belongs to, or 0 if the id is
// out of range.
func PanelOf(padID int) int {
	if padID < 0 || padID >= NumPads {
		return 0
	}
	return padID/PadsPerPanel + 1
}

// PanelPads returns the pads of a panel in slot order.
func (b *Board) PanelPads(panel int) []*Pad {
	if panel < 1 || panel > NumPanels {
		return nil
	}
	start := (panel - 1) * PadsPerPanel
	pads := make([]*Pad, PadsPerPanel)
	for i := range pads {
		pads[i] = &b.pads[start+i]
	}
	return pads
}

// QueueFor returns, in slot order, the ids of the panel's pads that have a
// clip bound. The queue is recomputed on every call so it always reflects
// current bindings.
func (b *Board) QueueFor(panel int) []int {
	if panel < 1 || panel > NumPanels {
		return nil
	}
	start := (panel - 1) * PadsPerPanel
	var queue []int
	for i := start; i < start+PadsPerPanel; i++ {
		if b.pads[i].Clip != nil {
			queue = append(queue, i)
		}
	}
	return queue
}
