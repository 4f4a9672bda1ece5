package calendars

import (
	"context"
	"errors"
	"fmt"

	"github.com/aquarion/docket-sub000/internal/database"
	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/jackc/pgconn"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

func (*Repository) CreateSource(ctx context.Context, q database.Queryable, source *model.Source) error {
	qb := database.PSQL.
		Insert(database.SourcesTable).
		Columns("id", "kind", "location", "color", "emoji", "account", "position").
		Values(
			source.ID,
			string(source.Kind),
			source.Location,
			source.Color,
			source.Emoji,
			source.Account,
			source.Position,
		)

	if _, err := q.Exec(ctx, qb); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) CreateCalendarSet(ctx context.Context, q database.Queryable, set *model.CalendarSet) error {
	qb := database.PSQL.
		Insert(database.CalendarSetsTable).
		Columns("name", "source_ids").
		Values(set.Name, set.SourceIDs)

	if _, err := q.Exec(ctx, qb); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) CreateMergeOverride(ctx context.Context, q database.Queryable, override *model.MergeOverride) error {
	qb := database.PSQL.
		Insert(database.MergeOverridesTable).
		Columns("key", "color").
		Values(override.Key, override.Color)

	if _, err := q.Exec(ctx, qb); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
