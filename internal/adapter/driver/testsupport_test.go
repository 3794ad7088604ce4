package driver

import (
	"context"
	"testing"

	"github.com/DavideLaterza81/ItalianTV/internal/application"
	"github.com/DavideLaterza81/ItalianTV/internal/catalog"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
)

// memoryCatalogRepository is an in-memory driven.CatalogRepository for
// handler tests.
type memoryCatalogRepository struct {
	records []channel.Record
	found   bool
	pingErr error
}

func (m *memoryCatalogRepository) Load(ctx context.Context) ([]channel.Record, bool, error) {
	return m.records, m.found, nil
}

func (m *memoryCatalogRepository) Save(ctx context.Context, records []channel.Record) error {
	m.records = records
	m.found = true
	return nil
}

func (m *memoryCatalogRepository) Ping(ctx context.Context) error {
	return m.pingErr
}

func handlerTemplates(t *testing.T) []channel.Record {
	t.Helper()

	build := func(id, name string, category channel.Category, streamURL string, order int) channel.Record {
		rec, err := channel.New(id, name, "descrizione "+name, category, streamURL)
		if err != nil {
			t.Fatalf("building template %q: %v", id, err)
		}
		return rec.WithOrder(order)
	}

	return []channel.Record{
		build(catalog.HomeChannelID, "StileTV", channel.CategoryLocal, "https://cdn.example.com/stiletv/live.m3u8", 1).
			WithNewsFeedURL("https://feeds.example.com/stiletv.xml"),
		build(catalog.SecondChannelID, "SET", channel.CategoryLocal, "https://cdn.example.com/settv/live.m3u8", 2),
		build("notizie1", "Notizie Uno", channel.CategoryNews, "https://cdn.example.com/notizie1/live.m3u8", 3),
		build("tubetv", "TubeTV", channel.CategoryMusic, "https://www.youtube.com/watch?v=abcdefghijk", 4),
	}
}

func newHandlerCatalog(t *testing.T) *application.CatalogService {
	t.Helper()

	svc := application.NewCatalogService(
		&memoryCatalogRepository{},
		catalog.NewReconciler(handlerTemplates(t), nil),
		nil,
	)
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize catalog: %v", err)
	}
	return svc
}
