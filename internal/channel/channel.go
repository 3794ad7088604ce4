package channel

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyID              = errors.New("channel id cannot be empty")
	ErrEmptyName            = errors.New("channel name cannot be empty")
	ErrEmptyStreamURL       = errors.New("channel stream url cannot be empty")
	ErrInvalidCategory      = errors.New("invalid channel category")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrChannelAlreadyExists = errors.New("channel already exists")
)

// Category classifies a channel. CategoryAll is the filter wildcard and is
// never assigned to a record.
type Category string

// Channel categories. The values are the display names the catalog has used
// since its first release, so they double as the persisted representation.
const (
	CategoryAll           Category = "Tutti"
	CategoryNews          Category = "Notizie"
	CategorySport         Category = "Sport"
	CategoryMusic         Category = "Musica"
	CategoryEntertainment Category = "Intrattenimento"
	CategoryKids          Category = "Bambini"
	CategoryReligion      Category = "Religione"
	CategoryLocal         Category = "Regionali"
	CategoryDocumentary   Category = "Documentari"
)

// Categories returns the categories a record may belong to, in display order.
// CategoryAll is excluded: it means "no filter applied".
func Categories() []Category {
	return []Category{
		CategoryNews,
		CategorySport,
		CategoryMusic,
		CategoryEntertainment,
		CategoryKids,
		CategoryReligion,
		CategoryLocal,
		CategoryDocumentary,
	}
}

// IsAssignable reports whether c is a category a record may carry.
func (c Category) IsAssignable() bool {
	for _, valid := range Categories() {
		if c == valid {
			return true
		}
	}
	return false
}

// DefaultOrder is the effective sort position of a record without an explicit
// order: after every ordered record.
const DefaultOrder = 999

// MaxRating is the upper bound of the user rating scale.
const MaxRating = 5

// Record represents a TV channel in the catalog. It is immutable: mutating
// operations return an updated copy.
type Record struct {
	id               string
	name             string
	description      string
	category         Category
	logoURL          string
	websiteURL       string
	streamURL        string
	streamKind       string
	newsFeedURL      string
	youtubeChannelID string
	userAdded        bool
	order            *int
	rating           int
	viewCount        int
}

// New creates a Record with the given required fields.
// Optional fields are set through the With* methods.
func New(id, name, description string, category Category, streamURL string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrEmptyID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, ErrEmptyName
	}
	if !category.IsAssignable() {
		return Record{}, ErrInvalidCategory
	}
	streamURL = strings.TrimSpace(streamURL)
	if streamURL == "" {
		return Record{}, ErrEmptyStreamURL
	}

	return Record{
		id:          id,
		name:        name,
		description: description,
		category:    category,
		streamURL:   streamURL,
	}, nil
}

// Reconstruct rebuilds a Record from persisted data without validating the
// descriptive fields. Rating is clamped into [0, MaxRating] and the view count
// is floored at zero, so corrupted metrics never violate the catalog bounds.
func Reconstruct(
	id, name, description string,
	category Category,
	logoURL, websiteURL, streamURL, streamKind, newsFeedURL, youtubeChannelID string,
	userAdded bool,
	order *int,
	rating, viewCount int,
) Record {
	if rating < 0 {
		rating = 0
	}
	if rating > MaxRating {
		rating = MaxRating
	}
	if viewCount < 0 {
		viewCount = 0
	}
	return Record{
		id:               id,
		name:             name,
		description:      description,
		category:         category,
		logoURL:          logoURL,
		websiteURL:       websiteURL,
		streamURL:        streamURL,
		streamKind:       streamKind,
		newsFeedURL:      newsFeedURL,
		youtubeChannelID: youtubeChannelID,
		userAdded:        userAdded,
		order:            order,
		rating:           rating,
		viewCount:        viewCount,
	}
}

// ID returns the stable unique identifier of the channel.
func (r Record) ID() string { return r.id }

// Name returns the display name.
func (r Record) Name() string { return r.name }

// Description returns the channel description.
func (r Record) Description() string { return r.description }

// Category returns the channel category.
func (r Record) Category() Category { return r.category }

// LogoURL returns the logo location, possibly empty.
func (r Record) LogoURL() string { return r.logoURL }

// WebsiteURL returns the official website location, possibly empty.
func (r Record) WebsiteURL() string { return r.websiteURL }

// StreamURL returns the opaque stream location. Interpreting it is the stream
// classifier's job.
func (r Record) StreamURL() string { return r.streamURL }

// StreamKind returns the classification hint recorded at creation time.
// It is re-derivable from StreamURL, which stays authoritative.
func (r Record) StreamKind() string { return r.streamKind }

// NewsFeedURL returns the RSS feed location, possibly empty.
func (r Record) NewsFeedURL() string { return r.newsFeedURL }

// YouTubeChannelID returns the external YouTube channel reference, possibly empty.
func (r Record) YouTubeChannelID() string { return r.youtubeChannelID }

// UserAdded reports whether the record was created through the admin flow.
func (r Record) UserAdded() bool { return r.userAdded }

// Order returns the explicit sort position, or nil when none was assigned.
func (r Record) Order() *int { return r.order }

// EffectiveOrder returns the sort position, substituting DefaultOrder when no
// explicit order is assigned.
func (r Record) EffectiveOrder() int {
	if r.order == nil {
		return DefaultOrder
	}
	return *r.order
}

// Rating returns the user rating, 0 when never rated.
func (r Record) Rating() int { return r.rating }

// ViewCount returns the accumulated view counter.
func (r Record) ViewCount() int { return r.viewCount }

// WithLogoURL returns a copy with the logo location set.
func (r Record) WithLogoURL(url string) Record {
	r.logoURL = url
	return r
}

// WithWebsiteURL returns a copy with the website location set.
func (r Record) WithWebsiteURL(url string) Record {
	r.websiteURL = url
	return r
}

// WithNewsFeedURL returns a copy with the RSS feed location set.
func (r Record) WithNewsFeedURL(url string) Record {
	r.newsFeedURL = url
	return r
}

// WithYouTubeChannelID returns a copy with the YouTube channel reference set.
func (r Record) WithYouTubeChannelID(id string) Record {
	r.youtubeChannelID = id
	return r
}

// WithStreamKind returns a copy with the classification hint set.
func (r Record) WithStreamKind(kind string) Record {
	r.streamKind = kind
	return r
}

// WithOrder returns a copy with an explicit sort position.
func (r Record) WithOrder(order int) Record {
	r.order = &order
	return r
}

// AsUserAdded returns a copy marked as created through the admin flow.
func (r Record) AsUserAdded() Record {
	r.userAdded = true
	return r
}

// Rate returns a copy with the user rating set.
// Returns ErrInvalidRating if rating is outside [1, MaxRating].
func (r Record) Rate(rating int) (Record, error) {
	if rating < 1 || rating > MaxRating {
		return Record{}, ErrInvalidRating
	}
	r.rating = rating
	return r, nil
}

// IncrementViews returns a copy with the view counter increased by one.
func (r Record) IncrementViews() Record {
	r.viewCount++
	return r
}

// ResetViews returns a copy with the view counter reset to zero.
func (r Record) ResetViews() Record {
	r.viewCount = 0
	return r
}
