package calendars

import "github.com/aquarion/docket-sub000/internal/model"

type sourceDTO struct {
	ID       string
	Kind     string
	Location string
	Color    string
	Emoji    string
	Account  string
	Position int
}

type calendarSetDTO struct {
	Name      string
	SourceIDs []string `db:"source_ids"`
}

type mergeOverrideDTO struct {
	Key   string
	Color string
}

func mapToSource(dto *sourceDTO) *model.Source {
	return &model.Source{
		ID:       dto.ID,
		Kind:     model.SourceKind(dto.Kind),
		Location: dto.Location,
		Color:    dto.Color,
		Emoji:    dto.Emoji,
		Account:  dto.Account,
		Position: dto.Position,
	}
}

func mapToCalendarSet(dto *calendarSetDTO) *model.CalendarSet {
	return &model.CalendarSet{
		Name:      dto.Name,
		SourceIDs: dto.SourceIDs,
	}
}

func mapToMergeOverride(dto *mergeOverrideDTO) *model.MergeOverride {
	return &model.MergeOverride{
		Key:   dto.Key,
		Color: dto.Color,
	}
}
