package driven

import (
	"context"

	"github.com/DavideLaterza81/ItalianTV/internal/assistant"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
)

// Recommender defines the interface for the channel recommendation backend.
// This is a driven port that will be implemented by concrete adapters
// (e.g., an HTTP client for a hosted model).
type Recommender interface {
	// Recommend answers a free-text viewer question against the given
	// catalog.
	Recommend(ctx context.Context, question string, catalog []channel.Record) (assistant.Reply, error)
}
