package driven

import (
	"context"

	"github.com/DavideLaterza81/ItalianTV/internal/news"
)

// NewsFetcher defines the interface for retrieving headlines from external
// RSS sources. This is a driven port that will be implemented by concrete
// adapters (e.g., HTTP client).
type NewsFetcher interface {
	// FetchFeed retrieves and parses the RSS feed at url.
	FetchFeed(ctx context.Context, url string) ([]news.Item, error)

	// FetchTicker retrieves the scrolling-bar headlines from the feed at url.
	FetchTicker(ctx context.Context, url string) ([]news.TickerItem, error)
}
