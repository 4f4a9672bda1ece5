package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/aquarion/docket-sub000/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type sourceRequest struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Location string `json:"location"`
	Color    string `json:"color"`
	Emoji    string `json:"emoji"`
	Account  string `json:"account"`
	Position int    `json:"position"`
}

func validateSource(v *validator.Validator, req *sourceRequest) {
	v.Check(req.ID != "", "id", "id must be provided")
	v.Check(req.Kind == string(model.SourceKindGoogle) || req.Kind == string(model.SourceKindICal),
		"kind", "kind must be google or ical")
	v.Check(req.Location != "", "location", "location must be provided")
	v.Check(model.ColorPattern.MatchString(req.Color), "color", "color must match #RRGGBB")
	if req.Kind == string(model.SourceKindICal) {
		v.Check(req.Account == "", "account", "account is only valid for google sources")
	}
}

func (a *Api) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := a.calendars.GetSources(r.Context(), a.db)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get sources: %w", err))
		return
	}

	resp, _ := mapSlice(sources, mapToSourceResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) createSourceHandler(w http.ResponseWriter, r *http.Request) {
	req := &sourceRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	validateSource(v, req)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	source := &model.Source{
		ID:       req.ID,
		Kind:     model.SourceKind(req.Kind),
		Location: req.Location,
		Color:    req.Color,
		Emoji:    req.Emoji,
		Account:  req.Account,
		Position: req.Position,
	}

	if err := a.calendars.CreateSource(r.Context(), a.db, source); err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyExists):
			a.conflictResponse(w, r, fmt.Sprintf("source %q already exists", req.ID))
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("create source: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (a *Api) updateSourceHandler(w http.ResponseWriter, r *http.Request) {
	req := &sourceRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req.ID = chi.URLParam(r, "sourceID")

	v := validator.New()
	validateSource(v, req)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	source := &model.Source{
		ID:       req.ID,
		Kind:     model.SourceKind(req.Kind),
		Location: req.Location,
		Color:    req.Color,
		Emoji:    req.Emoji,
		Account:  req.Account,
		Position: req.Position,
	}

	if err := a.calendars.UpdateSource(r.Context(), a.db, source); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("update source: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) deleteSourceHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sourceID")

	if err := a.calendars.DeleteSource(r.Context(), a.db, id); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("delete source: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
