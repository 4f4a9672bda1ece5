package aggregator

import (
	"testing"
	"time"

	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	holidaysSource = &model.Source{
		ID:       "holidays",
		Kind:     model.SourceKindICal,
		Location: "https://example.com/holidays.ics",
		Color:    "#865A5A",
		Emoji:    "🎉",
		Position: 0,
	}
	teamSource = &model.Source{
		ID:       "team",
		Kind:     model.SourceKindGoogle,
		Location: "team@example.com",
		Color:    "#3388CC",
		Emoji:    "💼",
		Position: 1,
	}
)

func launchDay(title string) *model.RawEvent {
	return &model.RawEvent{
		Title: title,
		From:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		To:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMergeAcrossSources(t *testing.T) {
	sources := []*model.Source{holidaysSource, teamSource}
	results := map[string][]*model.RawEvent{
		"holidays": {launchDay("🎉 Launch Day")},
		"team":     {launchDay("Launch Day")},
	}

	events := merge(sources, results, nil, model.ThemeDay)

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "🎉 Launch Day", ev.Title, "first processed source seeds the title")
	assert.Equal(t, []string{"holidays", "team"}, ev.SourceIDs)
	assert.Equal(t, "#AAAAAA", ev.BackgroundColor)
	assert.Equal(t, "#919191", ev.BorderColor)
	assert.Equal(t, "🎉💼", ev.Emoji)
}

func TestMergeSourceOrderDecidesSeed(t *testing.T) {
	results := map[string][]*model.RawEvent{
		"holidays": {launchDay("🎉 Launch Day")},
		"team":     {launchDay("Launch Day")},
	}

	events := merge([]*model.Source{teamSource, holidaysSource}, results, nil, model.ThemeDay)

	require.Len(t, events, 1)
	assert.Equal(t, "Launch Day", events[0].Title)
	assert.Equal(t, []string{"holidays", "team"}, events[0].SourceIDs, "ids are sorted regardless of processing order")
}

func TestMergeColorOverride(t *testing.T) {
	sources := []*model.Source{holidaysSource, teamSource}
	results := map[string][]*model.RawEvent{
		"holidays": {launchDay("🎉 Launch Day")},
		"team":     {launchDay("Launch Day")},
	}
	overrides := []*model.MergeOverride{{Key: "holidays-team", Color: "#123456"}}

	events := merge(sources, results, overrides, model.ThemeDay)

	require.Len(t, events, 1)
	assert.Equal(t, "#123456", events[0].BackgroundColor)
	assert.Equal(t, "#001b3d", events[0].BorderColor)
}

func TestMergeTimezoneNormalization(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	// Same instant, expressed in different source timezones.
	results := map[string][]*model.RawEvent{
		"holidays": {{
			Title: "Launch Day",
			From:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			To:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		}},
		"team": {{
			Title: "Launch Day",
			From:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).In(loc),
			To:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC).In(loc),
		}},
	}

	events := merge([]*model.Source{holidaysSource, teamSource}, results, nil, model.ThemeDay)

	require.Len(t, events, 1)
	assert.Equal(t, []string{"holidays", "team"}, events[0].SourceIDs)
}

func TestSingleSourceKeepsOwnColor(t *testing.T) {
	results := map[string][]*model.RawEvent{
		"holidays": {launchDay("Launch Day")},
	}

	events := merge([]*model.Source{holidaysSource}, results, nil, model.ThemeDay)

	require.Len(t, events, 1)
	assert.Equal(t, "#865A5A", events[0].BackgroundColor)
	assert.Equal(t, "#865A5A", events[0].BorderColor)
	assert.Empty(t, events[0].Emoji)
}

func TestBlankTitleNeutralColor(t *testing.T) {
	results := map[string][]*model.RawEvent{
		"holidays": {launchDay(" 🎉 ")},
	}

	day := merge([]*model.Source{holidaysSource}, results, nil, model.ThemeDay)
	require.Len(t, day, 1)
	assert.Equal(t, "#FFF", day[0].BackgroundColor)
	assert.Equal(t, "#FFF", day[0].BorderColor)

	night := merge([]*model.Source{holidaysSource}, results, nil, model.ThemeNight)
	require.Len(t, night, 1)
	assert.Equal(t, "#000", night[0].BackgroundColor)
	assert.Equal(t, "#000", night[0].BorderColor)
}

func TestDeclinedOccurrenceKeepsSeparateIdentity(t *testing.T) {
	declined := launchDay("Launch Day")
	declined.Attendees = []model.Attendee{{
		Email:          teamSource.Location,
		ResponseStatus: model.ResponseStatusDeclined,
	}}

	results := map[string][]*model.RawEvent{
		"holidays": {launchDay("Launch Day")},
		"team":     {declined},
	}

	events := merge([]*model.Source{holidaysSource, teamSource}, results, nil, model.ThemeDay)

	require.Len(t, events, 2)
	titles := []string{events[0].Title, events[1].Title}
	assert.Contains(t, titles, "Launch Day")
	assert.Contains(t, titles, "~~Launch Day~~")
}

func TestDeclineOnlyMatchesOwnCalendarLocation(t *testing.T) {
	ev := launchDay("Launch Day")
	ev.Attendees = []model.Attendee{{
		Email:          "someone-else@example.com",
		ResponseStatus: model.ResponseStatusDeclined,
	}}

	results := map[string][]*model.RawEvent{"team": {ev}}
	events := merge([]*model.Source{teamSource}, results, nil, model.ThemeDay)

	require.Len(t, events, 1)
	assert.Equal(t, "Launch Day", events[0].Title)
}

func TestWorkingLocationEntriesSkipped(t *testing.T) {
	office := launchDay("Office")
	office.Kind = "workingLocation"

	results := map[string][]*model.RawEvent{
		"team": {office, launchDay("Launch Day")},
	}

	events := merge([]*model.Source{teamSource}, results, nil, model.ThemeDay)

	require.Len(t, events, 1)
	assert.Equal(t, "Launch Day", events[0].Title)
}

func TestZeroLengthMarkerDoesNotCrash(t *testing.T) {
	marker := &model.RawEvent{
		Title: "Marker",
		From:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		To:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	results := map[string][]*model.RawEvent{"team": {marker}}

	assert.NotPanics(t, func() {
		events := merge([]*model.Source{teamSource}, results, nil, model.ThemeDay)
		assert.Len(t, events, 1)
	})
}

func TestDuplicateWithinOneSourceDeduplicates(t *testing.T) {
	results := map[string][]*model.RawEvent{
		"team": {launchDay("Launch Day"), launchDay("Launch Day")},
	}

	events := merge([]*model.Source{teamSource}, results, nil, model.ThemeDay)

	require.Len(t, events, 1)
	assert.Equal(t, []string{"team"}, events[0].SourceIDs)
	// Still a single-source event after dedup: merged styling applies
	// because more than one occurrence contributed.
	assert.Equal(t, "#AAAAAA", events[0].BackgroundColor)
}
