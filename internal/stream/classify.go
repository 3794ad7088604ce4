// Package stream classifies a channel's declared stream location into one of
// the supported delivery kinds. Classification is deterministic and has no
// side effects; it runs at channel creation (the result is persisted as a
// hint) and again at playback time, where the live location string wins.
package stream

import (
	"regexp"
	"strings"
)

// Kind is the delivery mechanism derived from a stream location.
type Kind string

const (
	// KindYouTube plays through the YouTube embedded player.
	KindYouTube Kind = "youtube"
	// KindHLS plays through the adaptive streaming client.
	KindHLS Kind = "hls"
	// KindWebEmbed embeds the location as a generic web page.
	KindWebEmbed Kind = "web"
)

// Classification is the result of classifying a stream location.
// Location is the normalized playback target: the extracted video id for
// KindYouTube, the unchanged location string otherwise.
type Classification struct {
	Kind     Kind
	Location string
}

// mediaSuffixes are the file extensions handled by the adaptive player.
var mediaSuffixes = []string{".m3u8", ".mp4"}

// youtubeIDRegex matches the 11-character video id in the known YouTube URL
// shapes: watch?v=, embed/, shorts/, live/, v/ and youtu.be short links.
var youtubeIDRegex = regexp.MustCompile(
	`(?:youtube\.com/(?:watch\?(?:[^#]*&)?v=|embed/|shorts/|live/|v/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// Classify determines the delivery kind for the given stream location.
// Unrecognized locations degrade to KindWebEmbed; classification never fails.
func Classify(location string) Classification {
	location = strings.TrimSpace(location)

	if isYouTube(location) {
		return Classification{Kind: KindYouTube, Location: extractYouTubeID(location)}
	}

	if hasMediaSuffix(location) {
		return Classification{Kind: KindHLS, Location: location}
	}

	return Classification{Kind: KindWebEmbed, Location: location}
}

// isYouTube reports whether the location carries a known YouTube host marker.
func isYouTube(location string) bool {
	return strings.Contains(location, "youtube.com") || strings.Contains(location, "youtu.be")
}

// extractYouTubeID pulls the 11-character video id out of a YouTube URL.
// If no known URL shape matches, the whole location is returned as a
// best-effort id; it may not play.
func extractYouTubeID(location string) string {
	if m := youtubeIDRegex.FindStringSubmatch(location); m != nil {
		return m[1]
	}
	return location
}

// hasMediaSuffix reports whether the location, ignoring any query string or
// fragment, ends with one of the recognized media file extensions.
func hasMediaSuffix(location string) bool {
	path := location
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.ToLower(path)
	for _, suffix := range mediaSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// EmbedURL returns the URL to load in an embedded player for the given
// classification. For KindHLS it returns the stream location itself.
func EmbedURL(c Classification) string {
	if c.Kind == KindYouTube {
		return "https://www.youtube.com/embed/" + c.Location + "?autoplay=1"
	}
	return c.Location
}

// WatchURL returns the external YouTube watch link for a classified video id.
// Returns the empty string for non-YouTube classifications.
func WatchURL(c Classification) string {
	if c.Kind != KindYouTube {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + c.Location
}

// ChannelURL resolves an external YouTube channel reference to a browsable
// URL. References starting with "UC" are channel ids; anything else is
// assumed to already be a URL.
func ChannelURL(ref string) string {
	if strings.HasPrefix(ref, "UC") {
		return "https://www.youtube.com/channel/" + ref
	}
	return ref
}
