package playback

import "errors"

// State is the lifecycle state of a playback session.
type State string

const (
	// StateAcquiring means the stream resource is being prepared.
	StateAcquiring State = "acquiring"
	// StatePlaying means the stream is ready and counted as a view.
	StatePlaying State = "playing"
	// StateError means acquisition or playback failed fatally.
	StateError State = "error"
	// StateClosed means the viewer ended the session.
	StateClosed State = "closed"
)

var (
	// ErrSessionNotFound is returned when no session exists for the given id.
	ErrSessionNotFound = errors.New("playback session not found")
	// ErrUnsupportedStream is returned when no player can handle the
	// channel's stream.
	ErrUnsupportedStream = errors.New("unsupported stream kind")
)

// Session is a snapshot of a playback session.
type Session struct {
	ID        string
	ChannelID string
	State     State
	// Message carries the failure description when State is StateError.
	Message string
}

// Active reports whether the session still holds or awaits a stream
// resource.
func (s Session) Active() bool {
	return s.State == StateAcquiring || s.State == StatePlaying
}
