package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/aquarion/docket-sub000/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type calendarSetRequest struct {
	Name      string   `json:"name"`
	SourceIDs []string `json:"source_ids"`
}

func validateCalendarSet(v *validator.Validator, req *calendarSetRequest) {
	v.Check(req.Name != "", "name", "name must be provided")
	v.Check(len(req.SourceIDs) != 0, "source_ids", "at least one source id must be provided")
	for _, id := range req.SourceIDs {
		v.Check(id != "", "source_ids", "source ids must not be empty")
	}
}

func (a *Api) listCalendarSetsHandler(w http.ResponseWriter, r *http.Request) {
	sets, err := a.calendars.GetCalendarSets(r.Context(), a.db)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get calendar sets: %w", err))
		return
	}

	resp, _ := mapSlice(sets, mapToCalendarSetResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) createCalendarSetHandler(w http.ResponseWriter, r *http.Request) {
	req := &calendarSetRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	validateCalendarSet(v, req)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	set := &model.CalendarSet{
		Name:      req.Name,
		SourceIDs: req.SourceIDs,
	}

	if err := a.calendars.CreateCalendarSet(r.Context(), a.db, set); err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyExists):
			a.conflictResponse(w, r, fmt.Sprintf("calendar set %q already exists", req.Name))
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("create calendar set: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (a *Api) updateCalendarSetHandler(w http.ResponseWriter, r *http.Request) {
	req := &calendarSetRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req.Name = chi.URLParam(r, "setName")

	v := validator.New()
	validateCalendarSet(v, req)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	set := &model.CalendarSet{
		Name:      req.Name,
		SourceIDs: req.SourceIDs,
	}

	if err := a.calendars.UpdateCalendarSet(r.Context(), a.db, set); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("update calendar set: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) deleteCalendarSetHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "setName")

	if err := a.calendars.DeleteCalendarSet(r.Context(), a.db, name); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("delete calendar set: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
