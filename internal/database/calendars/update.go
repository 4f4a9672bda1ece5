package calendars

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aquarion/docket-sub000/internal/database"
	"github.com/aquarion/docket-sub000/internal/model"
)

func (*Repository) UpdateSource(ctx context.Context, q database.Queryable, source *model.Source) error {
	qb := database.PSQL.
		Update(database.SourcesTable).
		Set("kind", string(source.Kind)).
		Set("location", source.Location).
		Set("color", source.Color).
		Set("emoji", source.Emoji).
		Set("account", source.Account).
		Set("position", source.Position).
		Where(sq.Eq{"id": source.ID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) UpdateCalendarSet(ctx context.Context, q database.Queryable, set *model.CalendarSet) error {
	qb := database.PSQL.
		Update(database.CalendarSetsTable).
		Set("source_ids", set.SourceIDs).
		Where(sq.Eq{"name": set.Name})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) UpdateMergeOverride(ctx context.Context, q database.Queryable, override *model.MergeOverride) error {
	qb := database.PSQL.
		Update(database.MergeOverridesTable).
		Set("color", override.Color).
		Where(sq.Eq{"key": override.Key})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
