package driver

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DavideLaterza81/ItalianTV/internal/application"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
)

// AdminSecretHeader carries the shared secret for admin requests.
const AdminSecretHeader = "X-Admin-Secret"

// AdminHTTPHandler handles HTTP requests for catalog administration. Every
// route except login requires the shared secret header.
type AdminHTTPHandler struct {
	service *application.CatalogService
	secret  string
}

// NewAdminHTTPHandler creates a new HTTP handler for catalog administration.
func NewAdminHTTPHandler(service *application.CatalogService, secret string) *AdminHTTPHandler {
	return &AdminHTTPHandler{service: service, secret: secret}
}

// loginRequest represents the JSON body for an admin login check.
type loginRequest struct {
	Secret string `json:"secret"`
}

// adminChannelRequest represents the JSON body for creating or updating a channel.
type adminChannelRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	StreamURL        string `json:"stream_url"`
	LogoURL          string `json:"logo_url"`
	WebsiteURL       string `json:"website_url"`
	NewsFeedURL      string `json:"news_feed_url"`
	YouTubeChannelID string `json:"youtube_channel_id"`
	Order            *int   `json:"order"`
}

func (h *AdminHTTPHandler) secretMatches(candidate string) bool {
	if h.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(h.secret)) == 1
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *AdminHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/admin")

	// POST /api/admin/login - verify the shared secret
	if r.Method == http.MethodPost && path == "/login" {
		h.handleLogin(w, r)
		return
	}

	if !h.secretMatches(r.Header.Get(AdminSecretHeader)) {
		writeError(w, http.StatusUnauthorized, "invalid admin secret")
		return
	}

	// POST /api/admin/channels - create a channel
	if r.Method == http.MethodPost && path == "/channels" {
		h.handleCreate(w, r)
		return
	}

	// PUT /api/admin/channels/{id} - update a channel
	if r.Method == http.MethodPut && strings.HasPrefix(path, "/channels/") {
		id := strings.TrimPrefix(path, "/channels/")
		h.handleUpdate(w, r, id)
		return
	}

	// DELETE /api/admin/channels/{id} - delete a channel
	if r.Method == http.MethodDelete && strings.HasPrefix(path, "/channels/") {
		id := strings.TrimPrefix(path, "/channels/")
		h.handleDelete(w, r, id)
		return
	}

	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// handleLogin handles POST /api/admin/login
func (h *AdminHTTPHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.secretMatches(req.Secret) {
		writeError(w, http.StatusUnauthorized, "invalid admin secret")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toChannelParams(req adminChannelRequest) application.ChannelParams {
	return application.ChannelParams{
		Name:             req.Name,
		Description:      req.Description,
		Category:         channel.Category(req.Category),
		StreamURL:        req.StreamURL,
		LogoURL:          req.LogoURL,
		WebsiteURL:       req.WebsiteURL,
		NewsFeedURL:      req.NewsFeedURL,
		YouTubeChannelID: req.YouTubeChannelID,
		Order:            req.Order,
	}
}

func writeChannelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, channel.ErrChannelNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, channel.ErrChannelAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, channel.ErrEmptyName),
		errors.Is(err, channel.ErrEmptyStreamURL),
		errors.Is(err, channel.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// handleCreate handles POST /api/admin/channels
func (h *AdminHTTPHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.service.CreateChannel(r.Context(), toChannelParams(req))
	if err != nil {
		writeChannelError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toChannelResponse(rec))
}

// handleUpdate handles PUT /api/admin/channels/{id}
func (h *AdminHTTPHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req adminChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.service.UpdateChannel(r.Context(), id, toChannelParams(req))
	if err != nil {
		writeChannelError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChannelResponse(rec))
}

// handleDelete handles DELETE /api/admin/channels/{id}
func (h *AdminHTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteChannel(r.Context(), id); err != nil {
		writeChannelError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
