package database

import sq "github.com/Masterminds/squirrel"

// PSQL is the statement builder used by all repositories.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	SourcesTable        = "sources"
	CalendarSetsTable   = "calendar_sets"
	MergeOverridesTable = "merge_overrides"
)
