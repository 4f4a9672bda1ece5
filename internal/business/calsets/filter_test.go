package calsets_test

import (
	"testing"

	"github.com/aquarion/docket-sub000/internal/business/calsets"
	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSources = []*model.Source{
	{ID: "work", Kind: model.SourceKindGoogle, Color: "#3388CC"},
	{ID: "home", Kind: model.SourceKindGoogle, Color: "#865A5A"},
	{ID: "holidays", Kind: model.SourceKindICal, Color: "#00AA00"},
}

var testOverrides = []*model.MergeOverride{
	{Key: "home-work", Color: "#123456"},
	{Key: "holidays-home-work", Color: "#654321"},
}

func TestFilterWildcardKeepsEverything(t *testing.T) {
	set := &model.CalendarSet{Name: "all", SourceIDs: []string{"*"}}

	sources, overrides := calsets.Filter(testSources, testOverrides, set)

	assert.Equal(t, testSources, sources)
	assert.Equal(t, testOverrides, overrides)
}

func TestFilterExplicitIDs(t *testing.T) {
	set := &model.CalendarSet{Name: "personal", SourceIDs: []string{"home", "holidays"}}

	sources, overrides := calsets.Filter(testSources, testOverrides, set)

	require.Len(t, sources, 2)
	assert.Equal(t, "home", sources[0].ID)
	assert.Equal(t, "holidays", sources[1].ID)
	assert.Empty(t, overrides, "overrides referencing excluded sources are dropped")
}

func TestFilterKeepsApplicableOverrides(t *testing.T) {
	set := &model.CalendarSet{Name: "busy", SourceIDs: []string{"home", "work"}}

	sources, overrides := calsets.Filter(testSources, testOverrides, set)

	require.Len(t, sources, 2)
	require.Len(t, overrides, 1)
	assert.Equal(t, "home-work", overrides[0].Key)
}

func TestFilterNilSetIncludesEverything(t *testing.T) {
	sources, overrides := calsets.Filter(testSources, testOverrides, nil)

	assert.Equal(t, testSources, sources)
	assert.Equal(t, testOverrides, overrides)
}

func TestFilterPreservesDeclaredOrder(t *testing.T) {
	set := &model.CalendarSet{Name: "mixed", SourceIDs: []string{"holidays", "work"}}

	sources, _ := calsets.Filter(testSources, testOverrides, set)

	require.Len(t, sources, 2)
	// Declared source order wins, not the order inside the set.
	assert.Equal(t, "work", sources[0].ID)
	assert.Equal(t, "holidays", sources[1].ID)
}
