package playback

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"soundpad/board"
)

// engineRate is the fixed speaker sample rate; clips at other rates are
// resampled on the fly.
const engineRate = beep.SampleRate(44100)

// BeepEngine is the production Engine, backed by the gopxl/beep speaker.
type BeepEngine struct {
	rate beep.SampleRate
}

// NewBeepEngine initializes the speaker. Call once per process.
func NewBeepEngine() (*BeepEngine, error) {
	if err := speaker.Init(engineRate, engineRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &BeepEngine{rate: engineRate}, nil
}

// clipReader adapts an in-memory clip to the reader shapes the decoders
// want. Close is a no-op; the bytes stay owned by the board.
type clipReader struct {
	*bytes.Reader
}

func (clipReader) Close() error { return nil }

// Open decodes a clip into a reusable handle. Only MPEG audio and WAV are
// supported.
func (e *BeepEngine) Open(name, mime string, data []byte, onEnded func()) (Handle, error) {
	r := clipReader{bytes.NewReader(data)}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch mime {
	case board.MIMEMpeg:
		stream, format, err = mp3.Decode(r)
	case board.MIMEWav:
		stream, format, err = wav.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported content type %q", mime)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return &beepHandle{
		stream:  stream,
		format:  format,
		rate:    e.rate,
		onEnded: onEnded,
	}, nil
}

// beepHandle is one pad's playback chain. All mutable fields are guarded by
// the speaker lock: control methods bracket speaker.Lock/Unlock, and the
// ended callback runs on the speaker goroutine which already holds it.
type beepHandle struct {
	stream  beep.StreamSeekCloser
	format  beep.Format
	rate    beep.SampleRate
	onEnded func()

	ctrl   *beep.Ctrl
	gen    int // bumped on every (re)arm and stop; stale callbacks compare against it
	closed bool
}

// chain builds the streamer the speaker pulls: the clip, resampled to the
// engine rate when needed.
func (h *beepHandle) chain() beep.Streamer {
	if h.format.SampleRate == h.rate {
		return h.stream
	}
	return beep.Resample(4, h.format.SampleRate, h.rate, h.stream)
}

func (h *beepHandle) Play() {
	speaker.Lock()
	if h.closed {
		speaker.Unlock()
		return
	}
	h.gen++
	gen := h.gen
	if h.ctrl != nil {
		// detach the previous arming so the mixer drops it
		h.ctrl.Streamer = nil
	}
	h.stream.Seek(0)
	ctrl := &beep.Ctrl{Streamer: h.chain()}
	h.ctrl = ctrl
	speaker.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		// speaker goroutine; a stale gen means this arming was replaced
		// or stopped and its end must not be reported
		if h.gen == gen && !h.closed && h.onEnded != nil {
			h.onEnded()
		}
	})))
}

func (h *beepHandle) Resume() {
	speaker.Lock()
	if h.ctrl != nil {
		h.ctrl.Paused = false
	}
	speaker.Unlock()
}

func (h *beepHandle) Pause() {
	speaker.Lock()
	if h.ctrl != nil {
		h.ctrl.Paused = true
	}
	speaker.Unlock()
}

func (h *beepHandle) Stop() {
	speaker.Lock()
	h.gen++
	if h.ctrl != nil {
		h.ctrl.Paused = true
		h.ctrl.Streamer = nil
		h.ctrl = nil
	}
	if !h.closed {
		h.stream.Seek(0)
	}
	speaker.Unlock()
}

func (h *beepHandle) Playing() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return h.ctrl != nil && !h.ctrl.Paused && h.stream.Position() < h.stream.Len()
}

func (h *beepHandle) Seek(t time.Duration) {
	speaker.Lock()
	defer speaker.Unlock()
	if h.closed {
		return
	}
	n := h.format.SampleRate.N(t)
	if n < 0 {
		n = 0
	}
	if max := h.stream.Len(); n > max {
		n = max
	}
	h.stream.Seek(n)
}

func (h *beepHandle) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return h.format.SampleRate.D(h.stream.Position())
}

func (h *beepHandle) Duration() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return h.format.SampleRate.D(h.stream.Len())
}

func (h *beepHandle) Close() error {
	speaker.Lock()
	defer speaker.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.gen++
	if h.ctrl != nil {
		h.ctrl.Streamer = nil
		h.ctrl = nil
	}
	return h.stream.Close()
}
