// Package catalog holds the canonical channel set, the reconciliation engine
// that merges it with persisted state on every load, and the pure ranking
// views derived from the reconciled list.
package catalog

import (
	"log/slog"
	"sort"

	"github.com/DavideLaterza81/ItalianTV/internal/channel"
)

// Reconciler merges the canonical template set with whatever was last
// persisted, producing the ordered runtime catalog. Reconcile is idempotent:
// feeding its own output back in yields the same list.
type Reconciler struct {
	templates []channel.Record
	logger    *slog.Logger
}

// NewReconciler creates a Reconciler for the given template set.
// If logger is nil, slog.Default() is used.
func NewReconciler(templates []channel.Record, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{templates: templates, logger: logger}
}

// Reconcile merges persisted records with the template set. found is false
// when no persisted state exists (fresh install) or when the persisted blob
// could not be parsed; in both cases the result is the template set with all
// view counters at zero.
//
// With persisted state, each template is merged with the persisted record
// sharing its id: descriptive fields always come from the template, while
// rating, view count and explicit order come from the persisted record
// (order falls back to the template's own when absent). Records with
// non-template ids are carried through unchanged, after the merged
// templates. The combined list is then sorted: the home channel first, the
// second channel next, everything else by ascending effective order with
// ties keeping their relative position.
func (r *Reconciler) Reconcile(persisted []channel.Record, found bool) []channel.Record {
	if !found {
		fresh := make([]channel.Record, 0, len(r.templates))
		for _, tpl := range r.templates {
			fresh = append(fresh, tpl.ResetViews())
		}
		sortCatalog(fresh)
		return fresh
	}

	templateIDs := make(map[string]bool, len(r.templates))
	for _, tpl := range r.templates {
		templateIDs[tpl.ID()] = true
	}

	// Partition persisted records by id, keeping only the first occurrence
	// of each id. Later duplicates indicate a corrupted blob; they are
	// dropped and logged, never fatal.
	canonical := make(map[string]channel.Record, len(r.templates))
	var userAdded []channel.Record
	seen := make(map[string]bool, len(persisted))
	for _, rec := range persisted {
		if seen[rec.ID()] {
			r.logger.Warn("dropping duplicate persisted channel",
				"channel_id", rec.ID())
			continue
		}
		seen[rec.ID()] = true

		if templateIDs[rec.ID()] {
			canonical[rec.ID()] = rec
			if rec.UserAdded() {
				// A user-added record colliding with a system id: the system
				// definition wins, only the metrics below survive the merge.
				r.logger.Warn("user-added channel collides with system channel",
					"channel_id", rec.ID())
			}
			continue
		}
		userAdded = append(userAdded, rec)
	}

	merged := make([]channel.Record, 0, len(r.templates)+len(userAdded))
	for _, tpl := range r.templates {
		saved, ok := canonical[tpl.ID()]
		if !ok {
			merged = append(merged, tpl.ResetViews())
			continue
		}
		merged = append(merged, mergeTemplate(tpl, saved))
	}
	merged = append(merged, userAdded...)

	sortCatalog(merged)
	return merged
}

// mergeTemplate combines a template's descriptive fields with the metrics of
// the persisted record sharing its id.
func mergeTemplate(tpl, saved channel.Record) channel.Record {
	order := saved.Order()
	if order == nil {
		order = tpl.Order()
	}
	return channel.Reconstruct(
		tpl.ID(), tpl.Name(), tpl.Description(), tpl.Category(),
		tpl.LogoURL(), tpl.WebsiteURL(), tpl.StreamURL(), tpl.StreamKind(),
		tpl.NewsFeedURL(), tpl.YouTubeChannelID(),
		false, order, saved.Rating(), saved.ViewCount(),
	)
}

// sortCatalog applies the catalog's total order in place. The sort must be
// stable so that records with equal effective order keep their relative
// position.
func sortCatalog(records []channel.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := sortRank(records[i]), sortRank(records[j])
		if ri != rj {
			return ri < rj
		}
		return records[i].EffectiveOrder() < records[j].EffectiveOrder()
	})
}

// sortRank buckets a record: home channel, second channel, everything else.
func sortRank(rec channel.Record) int {
	switch rec.ID() {
	case HomeChannelID:
		return 0
	case SecondChannelID:
		return 1
	default:
		return 2
	}
}
