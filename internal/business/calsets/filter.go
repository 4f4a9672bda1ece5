// Package calsets restricts which sources take part in an aggregation
// run based on a named grouping.
package calsets

import (
	"strings"

	"github.com/aquarion/docket-sub000/internal/model"
)

// Filter resolves a calendar set against the full source list. A nil set
// (unknown name) and the wildcard set both include everything: hiding
// data over an operator typo would make the mistake invisible.
//
// Merge overrides survive the filter only when every source id in their
// dash-joined key is still present; an override that can never apply is
// dropped from the filtered view.
func Filter(sources []*model.Source, overrides []*model.MergeOverride, set *model.CalendarSet) ([]*model.Source, []*model.MergeOverride) {
	if set == nil || set.Wildcard() {
		return sources, overrides
	}

	wanted := make(map[string]struct{}, len(set.SourceIDs))
	for _, id := range set.SourceIDs {
		wanted[id] = struct{}{}
	}

	filtered := make([]*model.Source, 0, len(set.SourceIDs))
	included := make(map[string]struct{}, len(set.SourceIDs))
	for _, s := range sources {
		if _, ok := wanted[s.ID]; ok {
			filtered = append(filtered, s)
			included[s.ID] = struct{}{}
		}
	}

	kept := make([]*model.MergeOverride, 0, len(overrides))
	for _, o := range overrides {
		if overrideApplies(o, included) {
			kept = append(kept, o)
		}
	}

	return filtered, kept
}

func overrideApplies(o *model.MergeOverride, included map[string]struct{}) bool {
	for _, id := range strings.Split(o.Key, "-") {
		if _, ok := included[id]; !ok {
			return false
		}
	}
	return true
}
