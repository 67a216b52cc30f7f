package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"soundpad/board"
)

// TriggerController maps note-on messages from a MIDI input to pad
// triggers. Notes baseNote..baseNote+29 address pads 0..29; anything
// outside that range is ignored.
type TriggerController struct {
	id       string
	inPort   drivers.In
	stopFunc func()
	baseNote uint8

	triggers chan PadTrigger
}

// NewTriggerController opens the input port and starts decoding
func NewTriggerController(id string, inPort drivers.In, baseNote uint8) (*TriggerController, error) {
	tc := &TriggerController{
		id:       id,
		inPort:   inPort,
		baseNote: baseNote,
		triggers: make(chan PadTrigger, 32),
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			var channel, note, velocity uint8
			if msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0 {
				pad := int(note) - int(tc.baseNote)
				if pad < 0 || pad >= board.NumPads {
					return
				}
				select {
				case tc.triggers <- PadTrigger{Pad: pad, Velocity: velocity}:
				default:
				}
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		tc.stopFunc = stop
	}

	return tc, nil
}

func (tc *TriggerController) ID() string {
	return tc.id
}

// Triggers returns the channel of decoded pad presses
func (tc *TriggerController) Triggers() <-chan PadTrigger {
	return tc.triggers
}

func (tc *TriggerController) Close() error {
	if tc.stopFunc != nil {
		tc.stopFunc()
	}
	close(tc.triggers)
	return nil
}
