package driver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DavideLaterza81/ItalianTV/internal/application"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
	"github.com/DavideLaterza81/ItalianTV/internal/stream"
)

// CatalogHTTPHandler handles HTTP requests for browsing the channel catalog.
type CatalogHTTPHandler struct {
	service *application.CatalogService
}

// NewCatalogHTTPHandler creates a new HTTP handler for the catalog.
func NewCatalogHTTPHandler(service *application.CatalogService) *CatalogHTTPHandler {
	return &CatalogHTTPHandler{service: service}
}

// errorResponse represents a JSON error response.
type errorResponse struct {
	Error string `json:"error"`
}

// channelResponse represents a channel in JSON format.
type channelResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	LogoURL          string `json:"logo_url,omitempty"`
	WebsiteURL       string `json:"website_url,omitempty"`
	StreamURL        string `json:"stream_url"`
	StreamKind       string `json:"stream_kind"`
	EmbedURL         string `json:"embed_url,omitempty"`
	NewsFeedURL      string `json:"news_feed_url,omitempty"`
	YouTubeChannelID string `json:"youtube_channel_id,omitempty"`
	UserAdded        bool   `json:"user_added"`
	Order            *int   `json:"order,omitempty"`
	Rating           int    `json:"rating"`
	ViewCount        int    `json:"view_count"`
}

// featuredResponse represents the featured split of the catalog.
type featuredResponse struct {
	Featured channelResponse   `json:"featured"`
	Others   []channelResponse `json:"others"`
}

// ratingRequest represents the JSON body for rating a channel.
type ratingRequest struct {
	Stars int `json:"stars"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// toChannelResponse converts a channel record to an API response.
func toChannelResponse(rec channel.Record) channelResponse {
	c := stream.Classify(rec.StreamURL())
	return channelResponse{
		ID:               rec.ID(),
		Name:             rec.Name(),
		Description:      rec.Description(),
		Category:         string(rec.Category()),
		LogoURL:          rec.LogoURL(),
		WebsiteURL:       rec.WebsiteURL(),
		StreamURL:        rec.StreamURL(),
		StreamKind:       string(c.Kind),
		EmbedURL:         stream.EmbedURL(c),
		NewsFeedURL:      rec.NewsFeedURL(),
		YouTubeChannelID: rec.YouTubeChannelID(),
		UserAdded:        rec.UserAdded(),
		Order:            rec.Order(),
		Rating:           rec.Rating(),
		ViewCount:        rec.ViewCount(),
	}
}

func toChannelResponses(records []channel.Record) []channelResponse {
	out := make([]channelResponse, len(records))
	for i, rec := range records {
		out[i] = toChannelResponse(rec)
	}
	return out
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *CatalogHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/channels")

	// GET /api/channels - list, optionally filtered by category and q
	if r.Method == http.MethodGet && path == "" {
		h.handleList(w, r)
		return
	}

	// GET /api/channels/top - highest rated channels
	if r.Method == http.MethodGet && path == "/top" {
		h.handleTop(w, r)
		return
	}

	// GET /api/channels/featured - featured channel plus the rest
	if r.Method == http.MethodGet && path == "/featured" {
		h.handleFeatured(w, r)
		return
	}

	// POST /api/channels/{id}/rating - rate a channel
	if r.Method == http.MethodPost && strings.HasSuffix(path, "/rating") {
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/rating")
		h.handleRate(w, r, id)
		return
	}

	// GET /api/channels/{id} - get a specific channel
	if r.Method == http.MethodGet && path != "" {
		id := strings.TrimPrefix(path, "/")
		h.handleGet(w, r, id)
		return
	}

	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// handleList handles GET /api/channels
func (h *CatalogHTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	category := channel.Category(r.URL.Query().Get("category"))
	if category == "" {
		category = channel.CategoryAll
	}
	query := r.URL.Query().Get("q")

	records := h.service.List(category, query)
	writeJSON(w, http.StatusOK, toChannelResponses(records))
}

// handleTop handles GET /api/channels/top
func (h *CatalogHTTPHandler) handleTop(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toChannelResponses(h.service.Top()))
}

// handleFeatured handles GET /api/channels/featured
func (h *CatalogHTTPHandler) handleFeatured(w http.ResponseWriter, r *http.Request) {
	featured, others, ok := h.service.Featured()
	if !ok {
		writeError(w, http.StatusNotFound, "catalog is empty")
		return
	}

	writeJSON(w, http.StatusOK, featuredResponse{
		Featured: toChannelResponse(featured),
		Others:   toChannelResponses(others),
	})
}

// handleGet handles GET /api/channels/{id}
func (h *CatalogHTTPHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, channel.ErrChannelNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toChannelResponse(rec))
}

// handleRate handles POST /api/channels/{id}/rating
func (h *CatalogHTTPHandler) handleRate(w http.ResponseWriter, r *http.Request, id string) {
	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.service.Rate(r.Context(), id, req.Stars)
	if err != nil {
		if errors.Is(err, channel.ErrInvalidRating) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, channel.ErrChannelNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toChannelResponse(rec))
}
