package catalog

import (
	"sort"
	"strings"

	"github.com/DavideLaterza81/ItalianTV/internal/channel"
)

// TopSize is the length of the top-rated ranking shown next to the featured
// channel.
const TopSize = 5

// Filter returns the records matching the given category and search term.
// channel.CategoryAll matches every category; an empty search term matches
// everything, otherwise the term is a case-insensitive substring match over
// name and description. The input order is preserved.
func Filter(records []channel.Record, category channel.Category, search string) []channel.Record {
	search = strings.ToLower(strings.TrimSpace(search))

	matched := make([]channel.Record, 0, len(records))
	for _, rec := range records {
		if category != channel.CategoryAll && rec.Category() != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.Name()), search) &&
			!strings.Contains(strings.ToLower(rec.Description()), search) {
			continue
		}
		matched = append(matched, rec)
	}
	return matched
}

// TopRated returns at most n records sorted by rating descending. Ties keep
// the catalog order. The input slice is not modified.
func TopRated(records []channel.Record, n int) []channel.Record {
	ranked := make([]channel.Record, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating() > ranked[j].Rating()
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Featured splits a filtered list into the featured record and the rest.
// The featured record is the home channel when present, the first record
// otherwise. ok is false when the list is empty. The split only makes sense
// on an unfiltered list; callers showing search or category results use the
// flat list instead.
func Featured(records []channel.Record) (featured channel.Record, others []channel.Record, ok bool) {
	if len(records) == 0 {
		return channel.Record{}, nil, false
	}

	featured = records[0]
	for _, rec := range records {
		if rec.ID() == HomeChannelID {
			featured = rec
			break
		}
	}

	others = make([]channel.Record, 0, len(records)-1)
	for _, rec := range records {
		if rec.ID() != featured.ID() {
			others = append(others, rec)
		}
	}
	return featured, others, true
}
