package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/DavideLaterza81/ItalianTV/internal/catalog"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
	"github.com/DavideLaterza81/ItalianTV/internal/metrics"
	"github.com/DavideLaterza81/ItalianTV/internal/port/driven"
	"github.com/DavideLaterza81/ItalianTV/internal/stream"
)

// CatalogService provides use cases for the channel catalog. It keeps the
// reconciled catalog in memory and writes every mutation through to the
// repository. All reads and writes go through the service, so the in-memory
// slice and the persisted blob never diverge.
type CatalogService struct {
	repo       driven.CatalogRepository
	reconciler *catalog.Reconciler
	logger     *slog.Logger

	mu      sync.RWMutex
	records []channel.Record
}

// NewCatalogService creates a new CatalogService with the given repository
// and reconciler.
func NewCatalogService(repo driven.CatalogRepository, reconciler *catalog.Reconciler, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:       repo,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Initialize loads the persisted catalog, reconciles it against the built-in
// templates and writes the result back. Must be called once before serving.
func (s *CatalogService) Initialize(ctx context.Context) error {
	persisted, found, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, driven.ErrCorruptCatalog) {
			return err
		}
		s.logger.Warn("persisted catalog is corrupt, rebuilding from templates", "error", err)
		persisted, found = nil, false
	}
	if !found {
		s.logger.Info("no persisted catalog, starting from templates")
	}

	records := s.reconciler.Reconcile(persisted, found)
	metrics.CatalogReconciles.Inc()
	if err := s.repo.Save(ctx, records); err != nil {
		return err
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.Info("catalog initialized", "channels", len(records))
	return nil
}

// List returns the catalog filtered by category and search query, in catalog
// order.
func (s *CatalogService) List(category channel.Category, query string) []channel.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Filter(s.records, category, query)
}

// Top returns the highest rated channels.
func (s *CatalogService) Top() []channel.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.TopRated(s.records, catalog.TopSize)
}

// Featured returns the featured channel and the rest of the catalog. ok is
// false when the catalog is empty.
func (s *CatalogService) Featured() (featured channel.Record, others []channel.Record, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Featured(s.records)
}

// Get retrieves a channel by its id.
// Returns channel.ErrChannelNotFound if the channel does not exist.
func (s *CatalogService) Get(id string) (channel.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return channel.Record{}, channel.ErrChannelNotFound
}

// mutate applies fn to a copy of the current catalog, reconciles the result,
// persists it and swaps it in. The in-memory catalog is untouched if
// persistence fails.
func (s *CatalogService) mutate(ctx context.Context, fn func([]channel.Record) ([]channel.Record, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := make([]channel.Record, len(s.records))
	copy(working, s.records)

	working, err := fn(working)
	if err != nil {
		return err
	}

	records := s.reconciler.Reconcile(working, true)
	metrics.CatalogReconciles.Inc()
	if err := s.repo.Save(ctx, records); err != nil {
		return err
	}

	s.records = records
	return nil
}

// Rate sets the star rating of a channel.
// Returns channel.ErrChannelNotFound if the channel does not exist and
// channel.ErrInvalidRating if stars is out of range.
func (s *CatalogService) Rate(ctx context.Context, id string, stars int) (channel.Record, error) {
	var rated channel.Record
	err := s.mutate(ctx, func(records []channel.Record) ([]channel.Record, error) {
		for i, rec := range records {
			if rec.ID() != id {
				continue
			}
			updated, err := rec.Rate(stars)
			if err != nil {
				return nil, err
			}
			records[i] = updated
			rated = updated
			return records, nil
		}
		return nil, channel.ErrChannelNotFound
	})
	if err != nil {
		return channel.Record{}, err
	}

	metrics.RatingsSubmitted.Inc()
	return rated, nil
}

// RegisterView increments the view counter of a channel.
// Returns channel.ErrChannelNotFound if the channel does not exist.
func (s *CatalogService) RegisterView(ctx context.Context, id string) (channel.Record, error) {
	var viewed channel.Record
	err := s.mutate(ctx, func(records []channel.Record) ([]channel.Record, error) {
		for i, rec := range records {
			if rec.ID() != id {
				continue
			}
			records[i] = rec.IncrementViews()
			viewed = records[i]
			return records, nil
		}
		return nil, channel.ErrChannelNotFound
	})
	if err != nil {
		return channel.Record{}, err
	}

	metrics.ChannelViews.WithLabelValues(id).Inc()
	return viewed, nil
}

// ChannelParams carries the editable fields of a channel.
type ChannelParams struct {
	Name             string
	Description      string
	Category         channel.Category
	StreamURL        string
	LogoURL          string
	WebsiteURL       string
	NewsFeedURL      string
	YouTubeChannelID string
	Order            *int
}

// CreateChannel adds a user channel to the catalog. The id is generated and
// the stream kind is derived from the stream URL.
// Returns channel.ErrChannelAlreadyExists if a channel with the same name
// already exists.
func (s *CatalogService) CreateChannel(ctx context.Context, params ChannelParams) (channel.Record, error) {
	rec, err := channel.New(uuid.NewString(), params.Name, params.Description, params.Category, params.StreamURL)
	if err != nil {
		return channel.Record{}, err
	}

	rec = applyParams(rec, params).AsUserAdded()

	err = s.mutate(ctx, func(records []channel.Record) ([]channel.Record, error) {
		for _, existing := range records {
			if strings.EqualFold(existing.Name(), rec.Name()) {
				return nil, channel.ErrChannelAlreadyExists
			}
		}
		if rec.Order() == nil {
			// Without an explicit order the new channel goes after
			// every explicitly ordered one.
			next := 0
			for _, existing := range records {
				if o := existing.Order(); o != nil && *o > next {
					next = *o
				}
			}
			rec = rec.WithOrder(next + 1)
		}
		return append(records, rec), nil
	})
	if err != nil {
		return channel.Record{}, err
	}

	s.logger.Info("channel created", "id", rec.ID(), "name", rec.Name())
	return s.Get(rec.ID())
}

// UpdateChannel replaces the editable fields of a channel. Descriptive edits
// to built-in channels do not survive reconciliation; their rating, views and
// order do.
// Returns channel.ErrChannelNotFound if the channel does not exist.
func (s *CatalogService) UpdateChannel(ctx context.Context, id string, params ChannelParams) (channel.Record, error) {
	err := s.mutate(ctx, func(records []channel.Record) ([]channel.Record, error) {
		for i, rec := range records {
			if rec.ID() != id {
				continue
			}
			updated, err := channel.New(id, params.Name, params.Description, params.Category, params.StreamURL)
			if err != nil {
				return nil, err
			}
			updated = applyParams(updated, params)
			updated = channel.Reconstruct(
				updated.ID(), updated.Name(), updated.Description(), updated.Category(),
				updated.LogoURL(), updated.WebsiteURL(), updated.StreamURL(), updated.StreamKind(),
				updated.NewsFeedURL(), updated.YouTubeChannelID(),
				rec.UserAdded(), updated.Order(), rec.Rating(), rec.ViewCount(),
			)
			records[i] = updated
			return records, nil
		}
		return nil, channel.ErrChannelNotFound
	})
	if err != nil {
		return channel.Record{}, err
	}

	s.logger.Info("channel updated", "id", id)
	return s.Get(id)
}

// DeleteChannel removes a channel from the catalog. Deleting a built-in
// channel resets it to its template on the next reconcile pass, which happens
// immediately, so the effective result is a metrics reset.
// Returns channel.ErrChannelNotFound if the channel does not exist.
func (s *CatalogService) DeleteChannel(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(records []channel.Record) ([]channel.Record, error) {
		for i, rec := range records {
			if rec.ID() == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, channel.ErrChannelNotFound
	})
	if err != nil {
		return err
	}

	s.logger.Info("channel deleted", "id", id)
	return nil
}

func applyParams(rec channel.Record, params ChannelParams) channel.Record {
	rec = rec.WithStreamKind(string(stream.Classify(rec.StreamURL()).Kind))
	if params.LogoURL != "" {
		rec = rec.WithLogoURL(params.LogoURL)
	}
	if params.WebsiteURL != "" {
		rec = rec.WithWebsiteURL(params.WebsiteURL)
	}
	if params.NewsFeedURL != "" {
		rec = rec.WithNewsFeedURL(params.NewsFeedURL)
	}
	if params.YouTubeChannelID != "" {
		rec = rec.WithYouTubeChannelID(params.YouTubeChannelID)
	}
	if params.Order != nil {
		rec = rec.WithOrder(*params.Order)
	}
	return rec
}
