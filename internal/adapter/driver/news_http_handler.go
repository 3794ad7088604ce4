package driver

import (
	"errors"
	"net/http"
	"time"

	"github.com/DavideLaterza81/ItalianTV/internal/application"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
	"github.com/DavideLaterza81/ItalianTV/internal/news"
)

// NewsHTTPHandler handles HTTP requests for headlines and the news ticker.
type NewsHTTPHandler struct {
	newsService *application.NewsService
	catalog     *application.CatalogService
}

// NewNewsHTTPHandler creates a new HTTP handler for news.
func NewNewsHTTPHandler(newsService *application.NewsService, catalog *application.CatalogService) *NewsHTTPHandler {
	return &NewsHTTPHandler{newsService: newsService, catalog: catalog}
}

// newsItemResponse represents a headline in JSON format.
type newsItemResponse struct {
	Title       string `json:"title"`
	Link        string `json:"link,omitempty"`
	Description string `json:"description,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Source      string `json:"source,omitempty"`
}

// tickerItemResponse represents a scrolling-bar headline in JSON format.
type tickerItemResponse struct {
	Title    string `json:"title"`
	Color    string `json:"color"`
	ImageURL string `json:"image_url,omitempty"`
}

func toNewsItemResponses(items []news.Item) []newsItemResponse {
	out := make([]newsItemResponse, len(items))
	for i, it := range items {
		out[i] = newsItemResponse{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			Source:      it.Source,
		}
		if !it.PublishedAt.IsZero() {
			out[i].PublishedAt = it.PublishedAt.Format(time.RFC3339)
		}
	}
	return out
}

// ServeHTTP routes the request to the appropriate handler based on method and path.
func (h *NewsHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch r.URL.Path {
	case "/api/news":
		h.handleNews(w, r)
	case "/api/news/ticker":
		h.handleTicker(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// handleNews handles GET /api/news?channel={id}
func (h *NewsHTTPHandler) handleNews(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get("channel")
	if channelID == "" {
		writeError(w, http.StatusBadRequest, "missing channel parameter")
		return
	}

	rec, err := h.catalog.Get(channelID)
	if err != nil {
		if errors.Is(err, channel.ErrChannelNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	items := h.newsService.Headlines(r.Context(), rec.NewsFeedURL())
	writeJSON(w, http.StatusOK, toNewsItemResponses(items))
}

// handleTicker handles GET /api/news/ticker
func (h *NewsHTTPHandler) handleTicker(w http.ResponseWriter, r *http.Request) {
	items := h.newsService.Ticker(r.Context())

	out := make([]tickerItemResponse, len(items))
	for i, it := range items {
		out[i] = tickerItemResponse{
			Title:    it.Title,
			Color:    it.Color,
			ImageURL: it.ImageURL,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
