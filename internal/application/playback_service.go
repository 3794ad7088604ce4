package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/DavideLaterza81/ItalianTV/internal/metrics"
	"github.com/DavideLaterza81/ItalianTV/internal/playback"
	"github.com/DavideLaterza81/ItalianTV/internal/port/driven"
	"github.com/DavideLaterza81/ItalianTV/internal/stream"
)

// PlaybackService manages playback sessions. Each session walks a fixed
// lifecycle: it starts acquiring, then either plays, fails, or is closed by
// the viewer. A channel view is counted exactly once per session, at open
// time, regardless of how acquisition turns out. Stream resources are
// released synchronously on every exit path.
type PlaybackService struct {
	catalog *CatalogService
	players map[stream.Kind]driven.StreamPlayer
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*playbackSession
}

type playbackSession struct {
	id        string
	channelID string
	state     playback.State
	message   string
	handle    driven.StreamHandle
}

// NewPlaybackService creates a new PlaybackService. players maps each stream
// kind to the adapter that can acquire it.
func NewPlaybackService(catalog *CatalogService, players map[stream.Kind]driven.StreamPlayer, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		catalog:  catalog,
		players:  players,
		logger:   logger,
		sessions: make(map[string]*playbackSession),
	}
}

// Start opens a playback session for the given channel. The returned session
// is acquiring; it transitions to playing or error asynchronously.
// Returns channel.ErrChannelNotFound if the channel does not exist.
func (s *PlaybackService) Start(ctx context.Context, channelID string) (playback.Session, error) {
	rec, err := s.catalog.Get(channelID)
	if err != nil {
		return playback.Session{}, err
	}

	kind := stream.Classify(rec.StreamURL()).Kind
	player, ok := s.players[kind]
	if !ok {
		return playback.Session{}, playback.ErrUnsupportedStream
	}

	sess := &playbackSession{
		id:        uuid.NewString(),
		channelID: channelID,
		state:     playback.StateAcquiring,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	metrics.PlaybackSessionsActive.Inc()

	s.logger.Info("playback session started", "session", sess.id, "channel", channelID, "kind", string(kind))

	// The view counts at open time, once per session, whatever acquisition
	// does afterwards.
	if _, err := s.catalog.RegisterView(ctx, channelID); err != nil {
		s.logger.Error("failed to register view", "channel", channelID, "error", err)
	}

	// Open without holding the lock: the ready callback may fire
	// synchronously.
	id := sess.id
	handle, err := player.Open(ctx, rec.StreamURL(),
		func() { s.streamReady(id) },
		func(err error) { s.streamFailed(id, err) },
	)
	if err != nil {
		s.streamFailed(id, err)
		return s.Get(id)
	}

	s.mu.Lock()
	if sess.state == playback.StateAcquiring || sess.state == playback.StatePlaying {
		sess.handle = handle
		s.mu.Unlock()
	} else {
		// The session ended before acquisition returned; release
		// immediately.
		s.mu.Unlock()
		handle.Close()
	}

	return s.Get(id)
}

// streamReady moves a session to playing. Callbacks for sessions that
// already left the acquiring state are ignored.
func (s *PlaybackService) streamReady(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || sess.state != playback.StateAcquiring {
		s.mu.Unlock()
		return
	}
	sess.state = playback.StatePlaying
	channelID := sess.channelID
	s.mu.Unlock()

	s.logger.Info("playback session playing", "session", id, "channel", channelID)
}

// streamFailed moves a session to the error state and releases its resource.
// Sessions already closed or failed are left alone.
func (s *PlaybackService) streamFailed(id string, cause error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || sess.state == playback.StateClosed || sess.state == playback.StateError {
		s.mu.Unlock()
		return
	}
	sess.state = playback.StateError
	sess.message = cause.Error()
	handle := sess.handle
	sess.handle = nil
	channelID := sess.channelID
	s.mu.Unlock()

	if handle != nil {
		handle.Close()
	}
	metrics.PlaybackSessionsActive.Dec()
	metrics.PlaybackErrors.WithLabelValues(channelID).Inc()

	s.logger.Error("playback session failed", "session", id, "channel", channelID, "error", cause)
}

// Get returns a snapshot of a session.
// Returns playback.ErrSessionNotFound if the session does not exist.
func (s *PlaybackService) Get(id string) (playback.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return playback.Session{}, playback.ErrSessionNotFound
	}
	return snapshot(sess), nil
}

// Close ends a session and releases its stream resource. Closing a session
// that already ended is a no-op.
// Returns playback.ErrSessionNotFound if the session does not exist.
func (s *PlaybackService) Close(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return playback.ErrSessionNotFound
	}
	if sess.state == playback.StateClosed || sess.state == playback.StateError {
		s.mu.Unlock()
		return nil
	}
	wasActive := sess.state == playback.StateAcquiring || sess.state == playback.StatePlaying
	sess.state = playback.StateClosed
	handle := sess.handle
	sess.handle = nil
	s.mu.Unlock()

	if handle != nil {
		handle.Close()
	}
	if wasActive {
		metrics.PlaybackSessionsActive.Dec()
	}

	s.logger.Info("playback session closed", "session", id)
	return nil
}

// CloseAll ends every active session. Used on shutdown.
func (s *PlaybackService) CloseAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id, sess := range s.sessions {
		if sess.state == playback.StateAcquiring || sess.state == playback.StatePlaying {
			ids = append(ids, id)
		}
	}
	s.mu.Unlock()

	for _, id := range ids {
		_ = s.Close(id)
	}
}

func snapshot(sess *playbackSession) playback.Session {
	return playback.Session{
		ID:        sess.id,
		ChannelID: sess.channelID,
		State:     sess.state,
		Message:   sess.message,
	}
}
