package driven

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/DavideLaterza81/ItalianTV/internal/channel"
	"github.com/DavideLaterza81/ItalianTV/internal/port/driven"
)

const (
	catalogBucket = "catalog"
	catalogKey    = "channels"
)

// CatalogBoltDBRepository implements the CatalogRepository port using BoltDB.
// The whole catalog is stored as a single JSON blob under one key, so saves
// are atomic and the on-disk shape stays trivially inspectable.
type CatalogBoltDBRepository struct {
	db *bbolt.DB
}

// NewCatalogBoltDBRepository creates a new BoltDB-backed catalog repository.
// It initializes the required bucket if it doesn't exist.
func NewCatalogBoltDBRepository(db *bbolt.DB) (*CatalogBoltDBRepository, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(catalogBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &CatalogBoltDBRepository{db: db}, nil
}

// recordDTO is used for JSON serialization.
type recordDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	LogoURL          string `json:"logo_url,omitempty"`
	WebsiteURL       string `json:"website_url,omitempty"`
	StreamURL        string `json:"stream_url"`
	StreamKind       string `json:"stream_kind,omitempty"`
	NewsFeedURL      string `json:"news_feed_url,omitempty"`
	YouTubeChannelID string `json:"youtube_channel_id,omitempty"`
	UserAdded        bool   `json:"user_added,omitempty"`
	Order            *int   `json:"order,omitempty"`
	Rating           int    `json:"rating"`
	ViewCount        int    `json:"view_count"`
}

func recordToDTO(rec channel.Record) recordDTO {
	return recordDTO{
		ID:               rec.ID(),
		Name:             rec.Name(),
		Description:      rec.Description(),
		Category:         string(rec.Category()),
		LogoURL:          rec.LogoURL(),
		WebsiteURL:       rec.WebsiteURL(),
		StreamURL:        rec.StreamURL(),
		StreamKind:       rec.StreamKind(),
		NewsFeedURL:      rec.NewsFeedURL(),
		YouTubeChannelID: rec.YouTubeChannelID(),
		UserAdded:        rec.UserAdded(),
		Order:            rec.Order(),
		Rating:           rec.Rating(),
		ViewCount:        rec.ViewCount(),
	}
}

func dtoToRecord(dto recordDTO) channel.Record {
	return channel.Reconstruct(
		dto.ID, dto.Name, dto.Description,
		channel.Category(dto.Category),
		dto.LogoURL, dto.WebsiteURL, dto.StreamURL, dto.StreamKind,
		dto.NewsFeedURL, dto.YouTubeChannelID,
		dto.UserAdded, dto.Order, dto.Rating, dto.ViewCount,
	)
}

// Load retrieves the persisted catalog from BoltDB. A missing blob yields
// found=false without an error; an undecodable one yields found=false with
// ErrCorruptCatalog so the caller can log the corruption before rebuilding
// from the built-in templates.
func (r *CatalogBoltDBRepository) Load(ctx context.Context) ([]channel.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var records []channel.Record
	var corrupt error
	found := false

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(catalogBucket))
		if bucket == nil {
			return errors.New("catalog bucket not found")
		}

		data := bucket.Get([]byte(catalogKey))
		if data == nil {
			return nil
		}

		var dtos []recordDTO
		if err := json.Unmarshal(data, &dtos); err != nil {
			corrupt = fmt.Errorf("%w: %v", driven.ErrCorruptCatalog, err)
			return nil
		}

		records = make([]channel.Record, 0, len(dtos))
		for _, dto := range dtos {
			records = append(records, dtoToRecord(dto))
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if corrupt != nil {
		return nil, false, corrupt
	}

	return records, found, nil
}

// Save replaces the persisted catalog in BoltDB.
func (r *CatalogBoltDBRepository) Save(ctx context.Context, records []channel.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dtos := make([]recordDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, recordToDTO(rec))
	}

	data, err := json.Marshal(dtos)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(catalogBucket))
		if bucket == nil {
			return errors.New("catalog bucket not found")
		}
		return bucket.Put([]byte(catalogKey), data)
	})
}

// Ping checks if the BoltDB database is accessible and operational.
func (r *CatalogBoltDBRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(catalogBucket))
		if bucket == nil {
			return errors.New("catalog bucket not found")
		}
		return nil
	})
}
