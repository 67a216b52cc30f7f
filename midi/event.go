package midi

// PadTrigger is a pad press decoded from an incoming note
type PadTrigger struct {
	Pad      int // board pad id
	Velocity uint8
}
