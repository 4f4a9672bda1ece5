package calendars

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aquarion/docket-sub000/internal/database"
	"github.com/aquarion/docket-sub000/internal/model"
)

// GetSources returns all configured sources in declared order.
func (*Repository) GetSources(ctx context.Context, q database.Queryable) ([]*model.Source, error) {
	qb := sourcesQuery.OrderBy("position", "id")

	var dtos []*sourceDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Source, len(dtos))
	for i, d := range dtos {
		res[i] = mapToSource(d)
	}

	return res, nil
}

func (*Repository) GetSourceByID(ctx context.Context, q database.Queryable, id string) (*model.Source, error) {
	qb := sourcesQuery.Where(sq.Eq{"id": id})

	var dtos []*sourceDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToSource(dtos[0]), nil
}

func (*Repository) GetCalendarSets(ctx context.Context, q database.Queryable) ([]*model.CalendarSet, error) {
	qb := setsQuery.OrderBy("name")

	var dtos []*calendarSetDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.CalendarSet, len(dtos))
	for i, d := range dtos {
		res[i] = mapToCalendarSet(d)
	}

	return res, nil
}

func (*Repository) GetCalendarSetByName(ctx context.Context, q database.Queryable, name string) (*model.CalendarSet, error) {
	qb := setsQuery.Where(sq.Eq{"name": name})

	var dtos []*calendarSetDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToCalendarSet(dtos[0]), nil
}

func (*Repository) GetMergeOverrides(ctx context.Context, q database.Queryable) ([]*model.MergeOverride, error) {
	qb := overridesQuery.OrderBy("key")

	var dtos []*mergeOverrideDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.MergeOverride, len(dtos))
	for i, d := range dtos {
		res[i] = mapToMergeOverride(d)
	}

	return res, nil
}
