package playback

import "time"

// Ended is the end-of-playback notification sent from the registry to the
// coordinator when a pad's clip plays to completion.
type Ended struct {
	PadID int
	Panel int
}

// Handle is the reusable playback object for one pad's clip. A handle is
// created lazily by the registry on the first play request and reused until
// the clip is replaced or deleted. Looping is never enabled.
type Handle interface {
	Play()   // start from the beginning
	Resume() // continue from the paused position
	Pause()
	Stop() // pause and rewind to the start
	Playing() bool

	Seek(t time.Duration) // does not change play/pause state
	Position() time.Duration
	Duration() time.Duration

	Close() error // release decode resources; the handle is dead afterwards
}

// Engine turns a clip's bytes into a playable handle. onEnded fires each
// time the clip plays to its natural end; it must not fire after Stop or
// Close, and never for a playback that was interrupted.
type Engine interface {
	Open(name, mime string, data []byte, onEnded func()) (Handle, error)
}

// trySend is a non-blocking channel send. Notifications are dropped rather
// than ever blocking the audio callback path.
func trySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
