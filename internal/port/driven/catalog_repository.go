package driven

import (
	"context"
	"errors"

	"github.com/DavideLaterza81/ItalianTV/internal/channel"
)

// ErrCorruptCatalog reports a persisted catalog blob that cannot be decoded.
// Callers may treat it as absent and rebuild from the built-in templates.
var ErrCorruptCatalog = errors.New("persisted catalog is corrupt")

// CatalogRepository defines the interface for catalog persistence operations.
// This is a driven port that will be implemented by concrete adapters (e.g., BoltDB).
type CatalogRepository interface {
	// Load retrieves the persisted catalog. The boolean reports whether a
	// usable catalog was found: a missing blob yields (nil, false, nil) and
	// an undecodable one (nil, false, ErrCorruptCatalog), so callers can
	// fall back to the built-in templates in both cases.
	Load(ctx context.Context) ([]channel.Record, bool, error)

	// Save replaces the persisted catalog with the given records.
	Save(ctx context.Context, records []channel.Record) error

	// Ping checks if the repository (database) is accessible and operational.
	// Returns nil if healthy, otherwise returns an error describing the issue.
	Ping(ctx context.Context) error
}
