package application

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/DavideLaterza81/ItalianTV/internal/circuitbreaker"
	"github.com/DavideLaterza81/ItalianTV/internal/metrics"
	"github.com/DavideLaterza81/ItalianTV/internal/news"
	"github.com/DavideLaterza81/ItalianTV/internal/port/driven"
)

const defaultNewsTTL = 5 * time.Minute

// NewsService provides headlines and ticker items for the news overlays.
// Fetches go through a circuit breaker and responses are cached; when the
// upstream is unavailable the service degrades to stale or empty results
// instead of failing.
type NewsService struct {
	fetcher   driven.NewsFetcher
	tickerURL string
	cache     *gocache.Cache
	breaker   circuitbreaker.CircuitBreaker
	logger    *slog.Logger
}

// NewNewsService creates a new NewsService. tickerURL is the feed for the
// scrolling bar. A non-positive ttl falls back to five minutes.
func NewNewsService(fetcher driven.NewsFetcher, tickerURL string, ttl time.Duration, logger *slog.Logger) *NewsService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultNewsTTL
	}

	breaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 3,
		Timeout:          time.Minute,
		Logger:           logger,
		Name:             "news",
		OnStateChange: func(name string, state circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, state.String())
		},
	})

	return &NewsService{
		fetcher:   fetcher,
		tickerURL: tickerURL,
		cache:     gocache.New(ttl, 2*ttl),
		breaker:   breaker,
		logger:    logger,
	}
}

// Headlines returns the parsed items of the feed at url. Failures yield an
// empty slice, never an error: the news overlay is decoration, not a
// dependency.
func (s *NewsService) Headlines(ctx context.Context, url string) []news.Item {
	if url == "" {
		return []news.Item{}
	}

	cacheKey := "feed:" + url
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]news.Item)
	}

	var items []news.Item
	err := s.breaker.Execute(func() error {
		fetched, err := s.fetcher.FetchFeed(ctx, url)
		if err != nil {
			return err
		}
		items = fetched
		return nil
	})
	if err != nil {
		metrics.NewsFetchFailures.WithLabelValues(url).Inc()
		s.logger.Warn("news fetch failed", "feed", url, "error", err)
		return []news.Item{}
	}

	s.cache.Set(cacheKey, items, gocache.DefaultExpiration)
	return items
}

// Ticker returns the scrolling-bar headlines. Failures yield an empty slice.
func (s *NewsService) Ticker(ctx context.Context) []news.TickerItem {
	if s.tickerURL == "" {
		return []news.TickerItem{}
	}

	cacheKey := "ticker:" + s.tickerURL
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]news.TickerItem)
	}

	var items []news.TickerItem
	err := s.breaker.Execute(func() error {
		fetched, err := s.fetcher.FetchTicker(ctx, s.tickerURL)
		if err != nil {
			return err
		}
		items = fetched
		return nil
	})
	if err != nil {
		metrics.NewsFetchFailures.WithLabelValues(s.tickerURL).Inc()
		s.logger.Warn("ticker fetch failed", "feed", s.tickerURL, "error", err)
		return []news.TickerItem{}
	}

	s.cache.Set(cacheKey, items, gocache.DefaultExpiration)
	return items
}
