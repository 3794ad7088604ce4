package driver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DavideLaterza81/ItalianTV/internal/application"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
	"github.com/DavideLaterza81/ItalianTV/internal/playback"
)

// PlaybackHTTPHandler handles HTTP requests for playback sessions.
type PlaybackHTTPHandler struct {
	service *application.PlaybackService
}

// NewPlaybackHTTPHandler creates a new HTTP handler for playback sessions.
func NewPlaybackHTTPHandler(service *application.PlaybackService) *PlaybackHTTPHandler {
	return &PlaybackHTTPHandler{service: service}
}

// playbackRequest represents the JSON body for starting a session.
type playbackRequest struct {
	ChannelID string `json:"channel_id"`
}

// sessionResponse represents a playback session in JSON format.
type sessionResponse struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	State     string `json:"state"`
	Message   string `json:"message,omitempty"`
}

func toSessionResponse(sess playback.Session) sessionResponse {
	return sessionResponse{
		ID:        sess.ID,
		ChannelID: sess.ChannelID,
		State:     string(sess.State),
		Message:   sess.Message,
	}
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *PlaybackHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/playback")

	// POST /api/playback - start a session
	if r.Method == http.MethodPost && path == "" {
		h.handleStart(w, r)
		return
	}

	// GET /api/playback/{id} - session state
	if r.Method == http.MethodGet && path != "" {
		id := strings.TrimPrefix(path, "/")
		h.handleGet(w, r, id)
		return
	}

	// DELETE /api/playback/{id} - close a session
	if r.Method == http.MethodDelete && path != "" {
		id := strings.TrimPrefix(path, "/")
		h.handleClose(w, r, id)
		return
	}

	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// handleStart handles POST /api/playback
func (h *PlaybackHTTPHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req playbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.service.Start(r.Context(), req.ChannelID)
	if err != nil {
		if errors.Is(err, channel.ErrChannelNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, playback.ErrUnsupportedStream) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// handleGet handles GET /api/playback/{id}
func (h *PlaybackHTTPHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, playback.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

// handleClose handles DELETE /api/playback/{id}
func (h *PlaybackHTTPHandler) handleClose(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Close(id); err != nil {
		if errors.Is(err, playback.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
