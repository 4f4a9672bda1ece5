package calendars

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aquarion/docket-sub000/internal/database"
	"github.com/aquarion/docket-sub000/internal/model"
)

func (*Repository) DeleteSource(ctx context.Context, q database.Queryable, id string) error {
	qb := database.PSQL.
		Delete(database.SourcesTable).
		Where(sq.Eq{"id": id})

	return deleteOne(ctx, q, qb)
}

func (*Repository) DeleteCalendarSet(ctx context.Context, q database.Queryable, name string) error {
	qb := database.PSQL.
		Delete(database.CalendarSetsTable).
		Where(sq.Eq{"name": name})

	return deleteOne(ctx, q, qb)
}

func (*Repository) DeleteMergeOverride(ctx context.Context, q database.Queryable, key string) error {
	qb := database.PSQL.
		Delete(database.MergeOverridesTable).
		Where(sq.Eq{"key": key})

	return deleteOne(ctx, q, qb)
}

func deleteOne(ctx context.Context, q database.Queryable, qb sq.DeleteBuilder) error {
	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
