package aggregator

import (
	"sort"
	"strings"

	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/aquarion/docket-sub000/internal/pkg/colorutil"
)

const (
	// mergedFallbackColor fills merged events with no configured
	// override.
	mergedFallbackColor = "#AAAAAA"
	// borderDarkenSteps derives a merged event's border from its fill.
	borderDarkenSteps = -25

	neutralColorDay   = "#FFF"
	neutralColorNight = "#000"

	// kindWorkingLocation marks Google's non-schedulable placeholder
	// entries; they carry no displayable occurrence.
	kindWorkingLocation = "workingLocation"

	mergeKeySeparator = "-"
)

// merge folds the per-source fetch results into merged events. Sources
// are processed in their declared order and events in fetcher order, so
// the first occurrence seen for an identity key seeds the merged event's
// fields; later matches only contribute their source id.
func merge(sources []*model.Source, results map[string][]*model.RawEvent, overrides []*model.MergeOverride, theme model.Theme) []*model.MergedEvent {
	byKey := map[string]*model.MergedEvent{}
	var order []string

	for _, source := range sources {
		for _, ev := range results[source.ID] {
			if ev.Kind == kindWorkingLocation {
				continue
			}

			title := displayTitle(ev.Title, isDeclined(ev, source))
			clean := cleanTitle(title)
			key := identityKey(ev.From, ev.To, clean)

			if existing, ok := byKey[key]; ok {
				existing.SourceIDs = append(existing.SourceIDs, source.ID)
				continue
			}

			color := source.Color
			if clean == "" {
				// An event with no visible text must not imply a
				// specific calendar's color swatch.
				color = neutralColor(theme)
			}

			byKey[key] = &model.MergedEvent{
				IdentityKey:     key,
				Title:           title,
				From:            ev.From,
				To:              ev.To,
				AllDay:          ev.AllDay,
				SourceEventID:   ev.SourceEventID,
				SourceIDs:       []string{source.ID},
				BackgroundColor: color,
				BorderColor:     color,
			}
			order = append(order, key)
		}
	}

	res := make([]*model.MergedEvent, 0, len(order))
	for _, key := range order {
		ev := byKey[key]
		if len(ev.SourceIDs) > 1 {
			recolorMerged(ev, sources, overrides)
		}
		res = append(res, ev)
	}

	return res
}

// recolorMerged applies the merge-color rules to an event with more than
// one contributing source.
func recolorMerged(ev *model.MergedEvent, sources []*model.Source, overrides []*model.MergeOverride) {
	ev.SourceIDs = sortedUnique(ev.SourceIDs)
	mergeKey := strings.Join(ev.SourceIDs, mergeKeySeparator)

	ev.BackgroundColor = mergedFallbackColor
	for _, o := range overrides {
		if o.Key == mergeKey {
			ev.BackgroundColor = o.Color
			break
		}
	}
	ev.BorderColor = colorutil.AdjustBrightness(ev.BackgroundColor, borderDarkenSteps)

	byID := make(map[string]*model.Source, len(sources))
	for _, s := range sources {
		byID[s.ID] = s
	}

	var badge strings.Builder
	for _, id := range ev.SourceIDs {
		if s, ok := byID[id]; ok && s.Emoji != "" {
			badge.WriteString(s.Emoji)
		}
	}
	ev.Emoji = badge.String()
}

func neutralColor(theme model.Theme) string {
	if theme == model.ThemeNight {
		return neutralColorNight
	}
	return neutralColorDay
}

func sortedUnique(ids []string) []string {
	sort.Strings(ids)

	res := make([]string, 0, len(ids))
	for i, id := range ids {
		if i == 0 || res[len(res)-1] != id {
			res = append(res, id)
		}
	}
	return res
}
