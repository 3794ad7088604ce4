package driven

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/DavideLaterza81/ItalianTV/internal/news"
)

const (
	newsFetchTimeout = 15 * time.Second
	maxSummaryRunes  = 150
)

// NewsRSSFetcher fetches headlines from RSS feeds via HTTP.
// It implements the driven.NewsFetcher port.
type NewsRSSFetcher struct {
	client *http.Client
}

// NewNewsRSSFetcher creates a new RSS fetcher. If client is nil, it creates a
// default HTTP client with a 15-second timeout.
func NewNewsRSSFetcher(client *http.Client) *NewsRSSFetcher {
	if client == nil {
		client = &http.Client{
			Timeout: newsFetchTimeout,
		}
	}
	return &NewsRSSFetcher{client: client}
}

// FetchFeed retrieves and parses the RSS feed at url.
// Returns an error if the HTTP request fails or the XML is malformed.
func (f *NewsRSSFetcher) FetchFeed(ctx context.Context, url string) ([]news.Item, error) {
	doc, err := f.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	items := make([]news.Item, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		items = append(items, news.Item{
			Title:       title,
			Link:        strings.TrimSpace(it.Link),
			Description: summarize(it.Description),
			PublishedAt: parsePubDate(it.PubDate),
			Source:      strings.TrimSpace(doc.Channel.Title),
		})
	}
	return items, nil
}

// FetchTicker retrieves the scrolling-bar headlines from the feed at url.
// Ticker feeds abuse standard RSS fields: the color hint travels in pubDate
// and the image URL in link. Missing colors fall back to the default.
func (f *NewsRSSFetcher) FetchTicker(ctx context.Context, url string) ([]news.TickerItem, error) {
	doc, err := f.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	items := make([]news.TickerItem, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		title := strings.TrimSpace(stripHTML(it.Title))
		if title == "" {
			continue
		}
		color := strings.TrimSpace(it.PubDate)
		if !strings.HasPrefix(color, "#") {
			color = news.DefaultTickerColor
		}
		items = append(items, news.TickerItem{
			Title:    title,
			Color:    color,
			ImageURL: strings.TrimSpace(it.Link),
		})
	}
	return items, nil
}

func (f *NewsRSSFetcher) fetch(ctx context.Context, url string) (*rssXML, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching RSS feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var doc rssXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing RSS feed: %w", err)
	}
	return &doc, nil
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// summarize strips markup from a feed description and truncates it to a
// headline-sized snippet.
func summarize(s string) string {
	clean := strings.TrimSpace(stripHTML(s))
	runes := []rune(clean)
	if len(runes) <= maxSummaryRunes {
		return clean
	}
	return strings.TrimSpace(string(runes[:maxSummaryRunes])) + "..."
}

// parsePubDate parses the publication date formats seen in the wild. Feeds
// that misuse the field yield a zero time.
func parsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// rssXML represents the root element of an RSS feed.
type rssXML struct {
	XMLName xml.Name      `xml:"rss"`
	Channel rssChannelXML `xml:"channel"`
}

// rssChannelXML represents the channel element of an RSS feed.
type rssChannelXML struct {
	Title string       `xml:"title"`
	Items []rssItemXML `xml:"item"`
}

// rssItemXML represents an item element in an RSS feed.
type rssItemXML struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}
