package calendars

import (
	"github.com/aquarion/docket-sub000/internal/database"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var sourcesQuery = database.PSQL.
	Select(
		"id",
		"kind",
		"location",
		"color",
		"emoji",
		"account",
		"position",
	).
	From(database.SourcesTable)

var setsQuery = database.PSQL.
	Select(
		"name",
		"source_ids",
	).
	From(database.CalendarSetsTable)

var overridesQuery = database.PSQL.
	Select(
		"key",
		"color",
	).
	From(database.MergeOverridesTable)
