package application

import (
	"context"

	"github.com/DavideLaterza81/ItalianTV/internal/assistant"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
	"github.com/DavideLaterza81/ItalianTV/internal/news"
	"github.com/DavideLaterza81/ItalianTV/internal/port/driven"
)

// mockCatalogRepository is a mock implementation of driven.CatalogRepository for testing.
type mockCatalogRepository struct {
	loadFunc func(ctx context.Context) ([]channel.Record, bool, error)
	saveFunc func(ctx context.Context, records []channel.Record) error
	pingFunc func(ctx context.Context) error

	saved [][]channel.Record
}

func (m *mockCatalogRepository) Load(ctx context.Context) ([]channel.Record, bool, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return nil, false, nil
}

func (m *mockCatalogRepository) Save(ctx context.Context, records []channel.Record) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, records); err != nil {
			return err
		}
	}
	m.saved = append(m.saved, records)
	return nil
}

func (m *mockCatalogRepository) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

// mockStreamHandle records whether Close was called.
type mockStreamHandle struct {
	closed int
}

func (h *mockStreamHandle) Close() {
	h.closed++
}

// mockStreamPlayer is a mock implementation of driven.StreamPlayer for
// testing. It captures the callbacks so tests can drive the session
// lifecycle by hand.
type mockStreamPlayer struct {
	openErr error

	handle  *mockStreamHandle
	onReady func()
	onError func(error)
}

func (m *mockStreamPlayer) Open(ctx context.Context, url string, onReady func(), onError func(error)) (driven.StreamHandle, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	m.handle = &mockStreamHandle{}
	m.onReady = onReady
	m.onError = onError
	return m.handle, nil
}

// mockNewsFetcher is a mock implementation of driven.NewsFetcher for testing.
type mockNewsFetcher struct {
	fetchFeedFunc   func(ctx context.Context, url string) ([]news.Item, error)
	fetchTickerFunc func(ctx context.Context, url string) ([]news.TickerItem, error)

	feedCalls   int
	tickerCalls int
}

func (m *mockNewsFetcher) FetchFeed(ctx context.Context, url string) ([]news.Item, error) {
	m.feedCalls++
	if m.fetchFeedFunc != nil {
		return m.fetchFeedFunc(ctx, url)
	}
	return []news.Item{}, nil
}

func (m *mockNewsFetcher) FetchTicker(ctx context.Context, url string) ([]news.TickerItem, error) {
	m.tickerCalls++
	if m.fetchTickerFunc != nil {
		return m.fetchTickerFunc(ctx, url)
	}
	return []news.TickerItem{}, nil
}

// mockRecommender is a mock implementation of driven.Recommender for testing.
type mockRecommender struct {
	recommendFunc func(ctx context.Context, question string, catalog []channel.Record) (assistant.Reply, error)
}

func (m *mockRecommender) Recommend(ctx context.Context, question string, catalog []channel.Record) (assistant.Reply, error) {
	if m.recommendFunc != nil {
		return m.recommendFunc(ctx, question, catalog)
	}
	return assistant.Reply{}, nil
}
