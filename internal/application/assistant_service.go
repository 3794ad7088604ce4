package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/DavideLaterza81/ItalianTV/internal/assistant"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
	"github.com/DavideLaterza81/ItalianTV/internal/metrics"
	"github.com/DavideLaterza81/ItalianTV/internal/port/driven"
)

const (
	fallbackReplyText = "Mi dispiace, al momento non riesco a connettermi al cervello digitale. Ecco tutti i canali."
	emptyReplyText    = "Non sono riuscito a trovare un suggerimento specifico, ma ecco la lista dei canali!"
)

// AssistantService answers free-text viewer questions with channel
// suggestions. When the recommendation backend is unreachable it degrades to
// an apologetic reply with no suggestions rather than surfacing the failure.
type AssistantService struct {
	recommender driven.Recommender
	catalog     *CatalogService
	logger      *slog.Logger
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(recommender driven.Recommender, catalog *CatalogService, logger *slog.Logger) *AssistantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistantService{
		recommender: recommender,
		catalog:     catalog,
		logger:      logger,
	}
}

// Ask answers a viewer question against the current catalog. Recommended ids
// that do not exist in the catalog are dropped. Ask never returns an error:
// backend failures produce the fallback reply.
func (s *AssistantService) Ask(ctx context.Context, question string) assistant.Reply {
	question = strings.TrimSpace(question)
	records := s.catalog.List(channel.CategoryAll, "")

	reply, err := s.recommender.Recommend(ctx, question, records)
	if err != nil {
		metrics.AssistantRequests.WithLabelValues("error").Inc()
		s.logger.Warn("recommendation backend unavailable", "error", err)
		return assistant.Reply{Text: fallbackReplyText}
	}

	known := make(map[string]bool, len(records))
	for _, rec := range records {
		known[rec.ID()] = true
	}
	valid := make([]string, 0, len(reply.ChannelIDs))
	for _, id := range reply.ChannelIDs {
		if known[id] {
			valid = append(valid, id)
		}
	}
	reply.ChannelIDs = valid

	if reply.Text == "" {
		reply.Text = emptyReplyText
	}

	metrics.AssistantRequests.WithLabelValues("ok").Inc()
	return reply
}
