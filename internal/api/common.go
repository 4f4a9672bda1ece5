package api

import (
	"github.com/aquarion/docket-sub000/internal/model"
)

type sourceResp struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Location string `json:"location"`
	Color    string `json:"color"`
	Emoji    string `json:"emoji,omitempty"`
	Account  string `json:"account,omitempty"`
	Position int    `json:"position"`
}

func mapToSourceResp(source *model.Source) (*sourceResp, error) {
	return &sourceResp{
		ID:       source.ID,
		Kind:     string(source.Kind),
		Location: source.Location,
		Color:    source.Color,
		Emoji:    source.Emoji,
		Account:  source.Account,
		Position: source.Position,
	}, nil
}

type calendarSetResp struct {
	Name      string   `json:"name"`
	SourceIDs []string `json:"source_ids"`
}

func mapToCalendarSetResp(set *model.CalendarSet) (*calendarSetResp, error) {
	return &calendarSetResp{
		Name:      set.Name,
		SourceIDs: set.SourceIDs,
	}, nil
}

type mergeOverrideResp struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

func mapToMergeOverrideResp(override *model.MergeOverride) (*mergeOverrideResp, error) {
	return &mergeOverrideResp{
		Key:   override.Key,
		Color: override.Color,
	}, nil
}
