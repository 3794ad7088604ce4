package news

import "time"

// Item is a single headline parsed from an RSS feed.
type Item struct {
	Title       string
	Link        string
	Description string
	PublishedAt time.Time
	Source      string
}

// TickerItem is a short headline for the scrolling news bar. Color and
// ImageURL are hints some feeds carry in non-standard fields; both may be
// empty.
type TickerItem struct {
	Title    string
	Color    string
	ImageURL string
}

// DefaultTickerColor is used when a feed item carries no color hint.
const DefaultTickerColor = "#3b82f6"
