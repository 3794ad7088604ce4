package driver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/DavideLaterza81/ItalianTV/internal/application"
)

// AssistantHTTPHandler handles HTTP requests for the channel assistant.
type AssistantHTTPHandler struct {
	service *application.AssistantService
}

// NewAssistantHTTPHandler creates a new HTTP handler for the assistant.
func NewAssistantHTTPHandler(service *application.AssistantService) *AssistantHTTPHandler {
	return &AssistantHTTPHandler{service: service}
}

// assistantRequest represents the JSON body for an assistant question.
type assistantRequest struct {
	Question string `json:"question"`
}

// assistantResponse represents the assistant's answer in JSON format.
type assistantResponse struct {
	Text       string   `json:"text"`
	ChannelIDs []string `json:"channel_ids"`
}

// ServeHTTP handles POST /api/assistant
func (h *AssistantHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "missing question")
		return
	}

	reply := h.service.Ask(r.Context(), req.Question)

	ids := reply.ChannelIDs
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, assistantResponse{
		Text:       reply.Text,
		ChannelIDs: ids,
	})
}
